// Package suggest is the core engine: it aggregates the historical item
// corpus into per-title groups, scores them against the typed prefix by
// similarity, frequency and recency, and serves ranked suggestions through a
// TTL cache.
package suggest

import "context"

// ItemSource supplies the corpus snapshot for a query. Implementations own
// the items; the engine only reads. Which lists feed the snapshot (archived
// included or not) is entirely the source's decision.
type ItemSource interface {
	// ListAllItems returns every historical item visible to suggestions,
	// across all lists.
	ListAllItems(ctx context.Context) ([]HistoricalItem, error)
}

// Suggester is the query contract the item-entry UI calls on text change.
type Suggester interface {
	// Query returns ranked suggestions for the typed prefix, excluding the
	// item currently being edited. A prefix shorter than the activation
	// threshold yields an empty slice.
	Query(ctx context.Context, prefix, excludeItemID string, limit int) ([]ItemSuggestion, error)

	// Invalidate drops all cached rankings. Callers invoke it on any
	// list/item mutation.
	Invalidate()

	// Stats reports cache and scan counters.
	Stats() map[string]int
}
