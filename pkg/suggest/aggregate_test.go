package suggest

import (
	"testing"
	"time"
)

var aggBase = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func histItem(id, title string, modified time.Time) HistoricalItem {
	return HistoricalItem{
		ID:         id,
		ListID:     "groceries",
		Title:      title,
		CreatedAt:  modified.Add(-time.Hour),
		ModifiedAt: modified,
	}
}

func TestAggregateGroupsByNormalizedTitle(t *testing.T) {
	corpus := []HistoricalItem{
		histItem("a", "Milk", aggBase.AddDate(0, 0, -1)),
		histItem("b", "  MILK ", aggBase.AddDate(0, 0, -10)),
		histItem("c", "Bread", aggBase.AddDate(0, 0, -2)),
	}

	idx := aggregate(corpus, "")
	if len(idx.groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(idx.groups))
	}

	milk, ok := idx.groups["milk"]
	if !ok {
		t.Fatal("missing milk group")
	}
	if milk.count != 2 {
		t.Errorf("milk count = %d, want 2", milk.count)
	}
	if milk.title != "Milk" {
		t.Errorf("representative title = %q, want %q (casing from most recent member)", milk.title, "Milk")
	}
	if milk.representative != "a" {
		t.Errorf("representative id = %q, want %q", milk.representative, "a")
	}
	if !milk.lastUsed.Equal(aggBase.AddDate(0, 0, -1)) {
		t.Errorf("lastUsed = %v, want most recent member timestamp", milk.lastUsed)
	}
	if idx.maxFreq != 2 {
		t.Errorf("maxFreq = %d, want 2", idx.maxFreq)
	}
}

// Adding another spelling of an existing title grows that group instead of
// creating a second one.
func TestAggregateIdempotentGrouping(t *testing.T) {
	corpus := []HistoricalItem{
		histItem("a", "Milk", aggBase.AddDate(0, 0, -1)),
	}
	before := aggregate(corpus, "")

	corpus = append(corpus, histItem("b", "  MILK ", aggBase.AddDate(0, 0, -3)))
	after := aggregate(corpus, "")

	if len(before.groups) != len(after.groups) {
		t.Fatalf("group count changed: %d -> %d", len(before.groups), len(after.groups))
	}
	if after.groups["milk"].count != before.groups["milk"].count+1 {
		t.Errorf("count = %d, want %d", after.groups["milk"].count, before.groups["milk"].count+1)
	}
}

func TestAggregateExcludesEditedItem(t *testing.T) {
	corpus := []HistoricalItem{
		histItem("a", "Milk", aggBase.AddDate(0, 0, -1)),
		histItem("b", "milk", aggBase.AddDate(0, 0, -5)),
	}

	idx := aggregate(corpus, "a")
	milk, ok := idx.groups["milk"]
	if !ok {
		t.Fatal("missing milk group")
	}
	if milk.count != 1 {
		t.Errorf("count = %d, want 1 (excluded item must not be counted)", milk.count)
	}
	if milk.representative == "a" {
		t.Error("excluded item must not be the representative")
	}

	// Excluding the only member removes the group entirely.
	solo := aggregate(corpus[:1], "a")
	if len(solo.groups) != 0 {
		t.Errorf("expected no groups, got %d", len(solo.groups))
	}
}

func TestAggregateUnknownExcludeIsNoop(t *testing.T) {
	corpus := []HistoricalItem{
		histItem("a", "Milk", aggBase.AddDate(0, 0, -1)),
	}
	idx := aggregate(corpus, "not-a-real-id")
	if len(idx.groups) != 1 || idx.groups["milk"].count != 1 {
		t.Error("unknown excludeItemID must not filter anything")
	}
}

func TestAggregateRepresentativeFields(t *testing.T) {
	older := HistoricalItem{
		ID: "old", Title: "Coffee Beans", Description: "dark roast",
		Quantity: 1, ModifiedAt: aggBase.AddDate(0, 0, -20),
	}
	newer := HistoricalItem{
		ID: "new", Title: "coffee beans", Description: "light roast",
		Quantity: 2, Images: []string{"beans.jpg"}, ModifiedAt: aggBase.AddDate(0, 0, -2),
	}

	idx := aggregate([]HistoricalItem{older, newer}, "")
	g := idx.groups["coffee beans"]
	if g == nil {
		t.Fatal("missing group")
	}
	if g.description != "light roast" || g.quantity != 2 || g.representative != "new" {
		t.Errorf("representative fields must come from the most recent member, got %+v", g)
	}
	if len(g.images) != 1 || g.images[0] != "beans.jpg" {
		t.Errorf("images = %v, want pass-through from most recent member", g.images)
	}
}

// CreatedAt stands in for a missing ModifiedAt.
func TestAggregateCreatedAtFallback(t *testing.T) {
	item := HistoricalItem{ID: "a", Title: "Butter", CreatedAt: aggBase.AddDate(0, 0, -4)}
	idx := aggregate([]HistoricalItem{item}, "")
	g := idx.groups["butter"]
	if g == nil {
		t.Fatal("missing group")
	}
	if !g.lastUsed.Equal(item.CreatedAt) {
		t.Errorf("lastUsed = %v, want CreatedAt fallback %v", g.lastUsed, item.CreatedAt)
	}
}

func TestAggregateSkipsEmptyTitles(t *testing.T) {
	corpus := []HistoricalItem{
		{ID: "a", Title: "   ", ModifiedAt: aggBase},
		{ID: "b", Title: "Milk", ModifiedAt: aggBase},
	}
	idx := aggregate(corpus, "")
	if len(idx.groups) != 1 {
		t.Errorf("expected 1 group, got %d", len(idx.groups))
	}
}

func TestPrefixKeys(t *testing.T) {
	corpus := []HistoricalItem{
		histItem("a", "Eggs", aggBase),
		histItem("b", "Eggplant", aggBase),
		histItem("c", "Bread", aggBase),
	}
	idx := aggregate(corpus, "")
	keys := idx.prefixKeys("egg")
	if len(keys) != 2 || !keys["eggs"] || !keys["eggplant"] {
		t.Errorf("prefixKeys(egg) = %v, want eggs and eggplant", keys)
	}
}
