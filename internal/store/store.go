// Package store provides corpus sources for the suggestion engine: the
// interfaces the engine consumes plus in-memory and SQLite-backed
// implementations. The engine only ever reads snapshots; mutations go
// through ItemStore and fire the OnMutate hook so the owner can invalidate
// the engine's cache.
package store

import (
	"context"

	"github.com/mkarven/listwise/pkg/suggest"
)

// ItemStore is a mutable item collection that can also serve as the
// engine's corpus source. Every mutating method fires the mutation hook
// after the change is applied.
type ItemStore interface {
	suggest.ItemSource

	// Create adds an item and returns it with its assigned ID.
	Create(ctx context.Context, item suggest.HistoricalItem) (suggest.HistoricalItem, error)

	// Update replaces the item with the same ID.
	Update(ctx context.Context, item suggest.HistoricalItem) error

	// Delete removes an item by ID.
	Delete(ctx context.Context, id string) error

	// ToggleCrossedOut flips an item's completion state.
	ToggleCrossedOut(ctx context.Context, id string) error

	// OnMutate registers a callback invoked after every successful
	// mutation. Typically wired to suggest.Engine.Invalidate.
	OnMutate(fn func())

	// Close releases any resources.
	Close() error
}
