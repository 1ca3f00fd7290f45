package suggest

import (
	"sync"
	"time"
)

// cacheKey identifies one cached ranking. Two queries hit the same entry
// only when both the normalized prefix and the excluded item match.
type cacheKey struct {
	prefix    string
	excludeID string
}

type cacheEntry struct {
	suggestions []ItemSuggestion
	computedAt  time.Time
}

// queryCache is a TTL store for ranked results so rapid keystrokes against
// an unchanged corpus skip the rescan. Invalidation is coarse: any corpus
// mutation drops every entry, since the engine cannot tell which prefixes a
// mutation affects. Entries beyond maxEntries evict oldest-computedAt first.
type queryCache struct {
	mu         sync.RWMutex
	entries    map[cacheKey]cacheEntry
	ttl        time.Duration
	maxEntries int

	hits      int64
	misses    int64
	evictions int64
}

func newQueryCache(ttl time.Duration, maxEntries int) *queryCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if maxEntries <= 0 {
		maxEntries = 100
	}
	return &queryCache{
		entries:    make(map[cacheKey]cacheEntry, maxEntries),
		ttl:        ttl,
		maxEntries: maxEntries,
	}
}

// get returns the cached ranking for key if present and still fresh at now.
func (c *queryCache) get(key cacheKey, now time.Time) ([]ItemSuggestion, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if ok && now.Sub(entry.computedAt) < c.ttl {
		c.hits++
		return entry.suggestions, true
	}
	c.misses++
	return nil, false
}

// put stores a ranking, evicting the oldest entry once past capacity.
// Storing a result computed from a since-mutated corpus is harmless: the
// mutation's invalidate call has already run, and a stale-but-valid entry
// only lives until its TTL.
func (c *queryCache) put(key cacheKey, suggestions []ItemSuggestion, now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists && len(c.entries) >= c.maxEntries {
		c.evictOldestLocked()
	}
	c.entries[key] = cacheEntry{suggestions: suggestions, computedAt: now}
}

// invalidate drops every entry.
func (c *queryCache) invalidate() {
	c.mu.Lock()
	c.entries = make(map[cacheKey]cacheEntry, c.maxEntries)
	c.mu.Unlock()
}

func (c *queryCache) evictOldestLocked() {
	var oldestKey cacheKey
	var oldestAt time.Time
	first := true
	for key, entry := range c.entries {
		if first || entry.computedAt.Before(oldestAt) {
			oldestKey = key
			oldestAt = entry.computedAt
			first = false
		}
	}
	if !first {
		delete(c.entries, oldestKey)
		c.evictions++
	}
}

func (c *queryCache) stats() map[string]int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return map[string]int{
		"cacheEntries":   len(c.entries),
		"cacheMax":       c.maxEntries,
		"cacheHits":      int(c.hits),
		"cacheMisses":    int(c.misses),
		"cacheEvictions": int(c.evictions),
	}
}
