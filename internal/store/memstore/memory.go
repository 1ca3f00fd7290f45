// Package memstore is the map-backed ItemStore used by tests and the demo
// corpus in CLI mode.
package memstore

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mkarven/listwise/pkg/suggest"
)

// MemoryStore holds items in a map guarded by a RWMutex. Snapshots are
// returned in a deterministic order so identical corpora always rank
// identically.
type MemoryStore struct {
	mu       sync.RWMutex
	items    map[string]suggest.HistoricalItem
	onMutate []func()
}

// New creates an empty in-memory store.
func New() *MemoryStore {
	return &MemoryStore{items: make(map[string]suggest.HistoricalItem)}
}

// ListAllItems implements suggest.ItemSource. The snapshot is a copy; the
// engine never observes later mutations through it.
func (s *MemoryStore) ListAllItems(ctx context.Context) ([]suggest.HistoricalItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]suggest.HistoricalItem, 0, len(s.items))
	for _, item := range s.items {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Create implements store.ItemStore. Missing IDs get a fresh uuid; a zero
// CreatedAt is stamped with the current time.
func (s *MemoryStore) Create(ctx context.Context, item suggest.HistoricalItem) (suggest.HistoricalItem, error) {
	if err := ctx.Err(); err != nil {
		return suggest.HistoricalItem{}, err
	}
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	if item.CreatedAt.IsZero() {
		item.CreatedAt = time.Now()
	}

	s.mu.Lock()
	s.items[item.ID] = item
	s.mu.Unlock()

	s.notify()
	return item, nil
}

// Update implements store.ItemStore.
func (s *MemoryStore) Update(ctx context.Context, item suggest.HistoricalItem) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	if _, ok := s.items[item.ID]; !ok {
		s.mu.Unlock()
		return fmt.Errorf("item %s not found", item.ID)
	}
	s.items[item.ID] = item
	s.mu.Unlock()

	s.notify()
	return nil
}

// Delete implements store.ItemStore.
func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	if _, ok := s.items[id]; !ok {
		s.mu.Unlock()
		return fmt.Errorf("item %s not found", id)
	}
	delete(s.items, id)
	s.mu.Unlock()

	s.notify()
	return nil
}

// ToggleCrossedOut implements store.ItemStore.
func (s *MemoryStore) ToggleCrossedOut(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	item, ok := s.items[id]
	if !ok {
		s.mu.Unlock()
		return fmt.Errorf("item %s not found", id)
	}
	item.IsCrossedOut = !item.IsCrossedOut
	item.ModifiedAt = time.Now()
	s.items[id] = item
	s.mu.Unlock()

	s.notify()
	return nil
}

// OnMutate implements store.ItemStore.
func (s *MemoryStore) OnMutate(fn func()) {
	s.mu.Lock()
	s.onMutate = append(s.onMutate, fn)
	s.mu.Unlock()
}

// Close implements store.ItemStore.
func (s *MemoryStore) Close() error {
	return nil
}

func (s *MemoryStore) notify() {
	s.mu.RLock()
	hooks := make([]func(), len(s.onMutate))
	copy(hooks, s.onMutate)
	s.mu.RUnlock()

	for _, fn := range hooks {
		fn()
	}
}
