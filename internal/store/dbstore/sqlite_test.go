package dbstore

import (
	"context"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/mkarven/listwise/pkg/suggest"
)

func TestModelConversionRoundTrip(t *testing.T) {
	item := suggest.HistoricalItem{
		ID:           "id-1",
		ListID:       "list-1",
		Title:        "Milk",
		Description:  "2% organic",
		Quantity:     2,
		Images:       []string{"front.jpg", "back.jpg"},
		CreatedAt:    time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		ModifiedAt:   time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
		IsCrossedOut: true,
	}

	model := fromHistoricalItem(item)
	if model.Images != "front.jpg\nback.jpg" {
		t.Errorf("images column = %q", model.Images)
	}
	back := model.ToHistoricalItem()
	if !reflect.DeepEqual(item, back) {
		t.Errorf("round trip mismatch:\n%+v\n%+v", item, back)
	}
}

func TestModelConversionNoImages(t *testing.T) {
	model := ItemModel{ID: "a", Title: "Milk"}
	if got := model.ToHistoricalItem(); got.Images != nil {
		t.Errorf("empty images column should convert to nil slice, got %v", got.Images)
	}
}

func openTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "items.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLiteCRUD(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	created, err := s.Create(ctx, suggest.HistoricalItem{Title: "Milk", ListID: "groceries"})
	if err != nil {
		t.Fatal(err)
	}
	if created.ID == "" {
		t.Fatal("expected a generated ID")
	}

	items, err := s.ListAllItems(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 1 || items[0].Title != "Milk" {
		t.Fatalf("unexpected listing: %+v", items)
	}

	created.Title = "Oat Milk"
	created.ModifiedAt = time.Now()
	if err := s.Update(ctx, created); err != nil {
		t.Fatal(err)
	}
	items, _ = s.ListAllItems(ctx)
	if items[0].Title != "Oat Milk" {
		t.Errorf("update not persisted: %+v", items[0])
	}

	if err := s.ToggleCrossedOut(ctx, created.ID); err != nil {
		t.Fatal(err)
	}
	items, _ = s.ListAllItems(ctx)
	if !items[0].IsCrossedOut {
		t.Error("toggle not persisted")
	}

	if err := s.Delete(ctx, created.ID); err != nil {
		t.Fatal(err)
	}
	items, _ = s.ListAllItems(ctx)
	if len(items) != 0 {
		t.Errorf("expected empty store after delete, got %+v", items)
	}
}

func TestSQLiteMissingRows(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.Update(ctx, suggest.HistoricalItem{ID: "ghost"}); err == nil {
		t.Error("update of missing row should fail")
	}
	if err := s.Delete(ctx, "ghost"); err == nil {
		t.Error("delete of missing row should fail")
	}
	if err := s.ToggleCrossedOut(ctx, "ghost"); err == nil {
		t.Error("toggle of missing row should fail")
	}
}

func TestSQLiteOnMutate(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	fired := 0
	s.OnMutate(func() { fired++ })

	created, err := s.Create(ctx, suggest.HistoricalItem{Title: "Milk"})
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Delete(ctx, created.ID); err != nil {
		t.Fatal(err)
	}
	if fired != 2 {
		t.Errorf("mutation hook fired %d times, want 2", fired)
	}
}
