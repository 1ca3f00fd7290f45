// Package dbstore is the SQLite-backed ItemStore over the host list app's
// items database.
package dbstore

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mkarven/listwise/pkg/suggest"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SQLiteStore implements store.ItemStore using GORM over SQLite.
type SQLiteStore struct {
	db     *gorm.DB
	dbPath string

	mu       sync.RWMutex
	onMutate []func()
}

// NewSQLiteStore opens (or creates) the items database at dbPath and
// migrates the schema.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.AutoMigrate(&ItemModel{}); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	return &SQLiteStore{db: db, dbPath: dbPath}, nil
}

// ListAllItems implements suggest.ItemSource. Items across every list are
// returned, archived lists included; the ID ordering keeps snapshots
// deterministic.
func (s *SQLiteStore) ListAllItems(ctx context.Context) ([]suggest.HistoricalItem, error) {
	var models []ItemModel
	if err := s.db.WithContext(ctx).Order("id").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	out := make([]suggest.HistoricalItem, 0, len(models))
	for i := range models {
		out = append(out, models[i].ToHistoricalItem())
	}
	return out, nil
}

// Create implements store.ItemStore.
func (s *SQLiteStore) Create(ctx context.Context, item suggest.HistoricalItem) (suggest.HistoricalItem, error) {
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	if item.CreatedAt.IsZero() {
		item.CreatedAt = time.Now()
	}
	model := fromHistoricalItem(item)
	if err := s.db.WithContext(ctx).Create(&model).Error; err != nil {
		return suggest.HistoricalItem{}, fmt.Errorf("failed to create item: %w", err)
	}
	s.notify()
	return item, nil
}

// Update implements store.ItemStore.
func (s *SQLiteStore) Update(ctx context.Context, item suggest.HistoricalItem) error {
	model := fromHistoricalItem(item)
	result := s.db.WithContext(ctx).Model(&ItemModel{}).Where("id = ?", item.ID).Updates(map[string]any{
		"list_id":        model.ListID,
		"title":          model.Title,
		"description":    model.Description,
		"quantity":       model.Quantity,
		"images":         model.Images,
		"is_crossed_out": model.IsCrossedOut,
		"modified_at":    model.ModifiedAt,
	})
	if result.Error != nil {
		return fmt.Errorf("failed to update item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("item %s not found", item.ID)
	}
	s.notify()
	return nil
}

// Delete implements store.ItemStore.
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	result := s.db.WithContext(ctx).Delete(&ItemModel{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("item %s not found", id)
	}
	s.notify()
	return nil
}

// ToggleCrossedOut implements store.ItemStore.
func (s *SQLiteStore) ToggleCrossedOut(ctx context.Context, id string) error {
	var model ItemModel
	if err := s.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return fmt.Errorf("item %s not found: %w", id, err)
	}
	err := s.db.WithContext(ctx).Model(&model).Updates(map[string]any{
		"is_crossed_out": !model.IsCrossedOut,
		"modified_at":    time.Now(),
	}).Error
	if err != nil {
		return fmt.Errorf("failed to toggle item: %w", err)
	}
	s.notify()
	return nil
}

// OnMutate implements store.ItemStore.
func (s *SQLiteStore) OnMutate(fn func()) {
	s.mu.Lock()
	s.onMutate = append(s.onMutate, fn)
	s.mu.Unlock()
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (s *SQLiteStore) notify() {
	s.mu.RLock()
	hooks := make([]func(), len(s.onMutate))
	copy(hooks, s.onMutate)
	s.mu.RUnlock()

	for _, fn := range hooks {
		fn()
	}
}
