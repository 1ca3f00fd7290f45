package suggest

import (
	"context"
	"sort"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
)

// Options carries every engine tunable in one place so tuning and tests
// never require code changes. Zero values fall back to the defaults below.
type Options struct {
	Weights         Weights
	RecencyHalfLife time.Duration
	CacheTTL        time.Duration
	CacheMaxEntries int
	MinPrefixRunes  int
	MaxLimit        int
}

// DefaultOptions returns the shipped tuning: 50/30/20 weights, 7-day
// recency half-life, 5-minute cache TTL capped at 100 entries, two-character
// activation threshold, and up to 50 results for a "show all" request.
func DefaultOptions() Options {
	return Options{
		Weights:         DefaultWeights,
		RecencyHalfLife: 7 * 24 * time.Hour,
		CacheTTL:        5 * time.Minute,
		CacheMaxEntries: 100,
		MinPrefixRunes:  2,
		MaxLimit:        50,
	}
}

// Engine implements Suggester over an ItemSource.
type Engine struct {
	source  ItemSource
	opts    Options
	cache   *queryCache
	scans   atomic.Int64
	nowFunc func() time.Time
}

// NewEngine constructs an engine over the given source. Invalid weights are
// replaced by the defaults with a warning rather than failing construction.
func NewEngine(source ItemSource, opts Options) *Engine {
	if !opts.Weights.Valid() {
		log.Warnf("Invalid scoring weights %+v, using defaults", opts.Weights)
		opts.Weights = DefaultWeights
	}
	if opts.RecencyHalfLife <= 0 {
		opts.RecencyHalfLife = DefaultOptions().RecencyHalfLife
	}
	if opts.MinPrefixRunes <= 0 {
		opts.MinPrefixRunes = DefaultOptions().MinPrefixRunes
	}
	if opts.MaxLimit <= 0 {
		opts.MaxLimit = DefaultOptions().MaxLimit
	}
	return &Engine{
		source:  source,
		opts:    opts,
		cache:   newQueryCache(opts.CacheTTL, opts.CacheMaxEntries),
		nowFunc: time.Now,
	}
}

// SetClock overrides the engine's time source. Tests use this to pin "now".
func (e *Engine) SetClock(now func() time.Time) {
	e.nowFunc = now
}

// Query implements Suggester. Degenerate inputs (short prefix, empty corpus,
// everything excluded or zero-similarity) yield an empty slice, never an
// error; the only error path is the source failing to produce a snapshot.
func (e *Engine) Query(ctx context.Context, prefix, excludeItemID string, limit int) ([]ItemSuggestion, error) {
	normalized := NormalizeTitle(prefix)
	if len([]rune(normalized)) < e.opts.MinPrefixRunes {
		return []ItemSuggestion{}, nil
	}
	if limit <= 0 || limit > e.opts.MaxLimit {
		limit = e.opts.MaxLimit
	}

	key := cacheKey{prefix: normalized, excludeID: excludeItemID}
	now := e.nowFunc()
	if cached, ok := e.cache.get(key, now); ok {
		return sliceLimit(cached, limit), nil
	}

	corpus, err := e.source.ListAllItems(ctx)
	if err != nil {
		return nil, err
	}
	ranked, err := e.rank(ctx, corpus, normalized, excludeItemID, now)
	if err != nil {
		return nil, err
	}

	e.cache.put(key, ranked, now)
	return sliceLimit(ranked, limit), nil
}

// rank is the uncached path: aggregate, score, filter, sort. The context is
// checked between stages and periodically inside the scan so a cancelled
// query stops promptly.
func (e *Engine) rank(ctx context.Context, corpus []HistoricalItem, normalizedPrefix, excludeItemID string, now time.Time) ([]ItemSuggestion, error) {
	e.scans.Add(1)

	idx := aggregate(corpus, excludeItemID)
	if len(idx.groups) == 0 {
		return []ItemSuggestion{}, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	prefixed := idx.prefixKeys(normalizedPrefix)

	suggestions := make([]ItemSuggestion, 0, len(prefixed))
	scanned := 0
	for key, g := range idx.groups {
		scanned++
		if scanned%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		var similarity float64
		if key == normalizedPrefix {
			similarity = 1.0
		} else if prefixed[key] {
			similarity = prefixFloor + (1.0-prefixFloor)*float64(len(normalizedPrefix))/float64(len(key))
		} else {
			similarity = Similarity(normalizedPrefix, key)
		}
		if similarity == 0 {
			continue
		}

		combined, recency, frequency := scoreGroup(g, similarity, idx.maxFreq, now, e.opts.RecencyHalfLife, e.opts.Weights)
		suggestions = append(suggestions, ItemSuggestion{
			ID:               g.representative,
			Title:            g.title,
			Description:      g.description,
			Quantity:         g.quantity,
			Images:           g.images,
			Frequency:        g.count,
			LastUsed:         g.lastUsed,
			RecencyScore:     recency,
			FrequencyScore:   frequency,
			Score:            combined,
			TotalOccurrences: g.count,
		})
	}

	sortSuggestions(suggestions)
	return suggestions, nil
}

// sortSuggestions orders by score, then frequency, then lastUsed, all
// descending, with normalized title ascending as the final tie-break so the
// ranking is fully deterministic.
func sortSuggestions(suggestions []ItemSuggestion) {
	sort.Slice(suggestions, func(i, j int) bool {
		a, b := suggestions[i], suggestions[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if a.Frequency != b.Frequency {
			return a.Frequency > b.Frequency
		}
		if !a.LastUsed.Equal(b.LastUsed) {
			return a.LastUsed.After(b.LastUsed)
		}
		return NormalizeTitle(a.Title) < NormalizeTitle(b.Title)
	})
}

func sliceLimit(suggestions []ItemSuggestion, limit int) []ItemSuggestion {
	if limit > 0 && len(suggestions) > limit {
		suggestions = suggestions[:limit]
	}
	out := make([]ItemSuggestion, len(suggestions))
	copy(out, suggestions)
	return out
}

// Invalidate implements Suggester. The host app calls it on any item or
// list mutation; the cache drops everything rather than guessing which
// prefixes the mutation touched.
func (e *Engine) Invalidate() {
	e.cache.invalidate()
}

// ScanCount reports how many uncached corpus scans have run. Tests use it
// to observe cache behavior.
func (e *Engine) ScanCount() int64 {
	return e.scans.Load()
}

// Stats implements Suggester.
func (e *Engine) Stats() map[string]int {
	stats := e.cache.stats()
	stats["corpusScans"] = int(e.scans.Load())
	return stats
}
