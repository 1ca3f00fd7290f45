package suggest

import (
	"testing"
	"time"
)

var cacheNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func TestCacheHitWithinTTL(t *testing.T) {
	c := newQueryCache(5*time.Minute, 10)
	key := cacheKey{prefix: "mi", excludeID: ""}
	ranked := []ItemSuggestion{{Title: "Milk"}}

	c.put(key, ranked, cacheNow)

	got, ok := c.get(key, cacheNow.Add(4*time.Minute))
	if !ok {
		t.Fatal("expected hit within TTL")
	}
	if len(got) != 1 || got[0].Title != "Milk" {
		t.Errorf("unexpected cached result: %+v", got)
	}
}

func TestCacheExpiry(t *testing.T) {
	c := newQueryCache(5*time.Minute, 10)
	key := cacheKey{prefix: "mi"}
	c.put(key, []ItemSuggestion{{Title: "Milk"}}, cacheNow)

	if _, ok := c.get(key, cacheNow.Add(5*time.Minute)); ok {
		t.Error("expected miss at exactly TTL")
	}
	if _, ok := c.get(key, cacheNow.Add(time.Hour)); ok {
		t.Error("expected miss after TTL")
	}
}

func TestCacheKeyIncludesExclusion(t *testing.T) {
	c := newQueryCache(5*time.Minute, 10)
	c.put(cacheKey{prefix: "mi", excludeID: "a"}, []ItemSuggestion{{Title: "Milk"}}, cacheNow)

	if _, ok := c.get(cacheKey{prefix: "mi", excludeID: "b"}, cacheNow); ok {
		t.Error("different excludeID must not share a cache entry")
	}
}

func TestCacheInvalidate(t *testing.T) {
	c := newQueryCache(5*time.Minute, 10)
	key := cacheKey{prefix: "mi"}
	c.put(key, []ItemSuggestion{{Title: "Milk"}}, cacheNow)

	c.invalidate()

	if _, ok := c.get(key, cacheNow); ok {
		t.Error("expected miss after invalidation")
	}
}

func TestCacheEvictsOldestBeyondCap(t *testing.T) {
	c := newQueryCache(5*time.Minute, 2)
	c.put(cacheKey{prefix: "aa"}, nil, cacheNow)
	c.put(cacheKey{prefix: "bb"}, nil, cacheNow.Add(time.Second))
	c.put(cacheKey{prefix: "cc"}, nil, cacheNow.Add(2*time.Second))

	if _, ok := c.get(cacheKey{prefix: "aa"}, cacheNow.Add(3*time.Second)); ok {
		t.Error("oldest entry should have been evicted")
	}
	if _, ok := c.get(cacheKey{prefix: "bb"}, cacheNow.Add(3*time.Second)); !ok {
		t.Error("newer entry should survive eviction")
	}
	if _, ok := c.get(cacheKey{prefix: "cc"}, cacheNow.Add(3*time.Second)); !ok {
		t.Error("newest entry should survive eviction")
	}

	stats := c.stats()
	if stats["cacheEntries"] != 2 {
		t.Errorf("cacheEntries = %d, want 2", stats["cacheEntries"])
	}
	if stats["cacheEvictions"] != 1 {
		t.Errorf("cacheEvictions = %d, want 1", stats["cacheEvictions"])
	}
}

func TestCacheDefaults(t *testing.T) {
	c := newQueryCache(0, 0)
	if c.ttl != 5*time.Minute {
		t.Errorf("default TTL = %v, want 5m", c.ttl)
	}
	if c.maxEntries != 100 {
		t.Errorf("default maxEntries = %d, want 100", c.maxEntries)
	}
}

func TestCacheConcurrentAccess(t *testing.T) {
	c := newQueryCache(5*time.Minute, 50)
	done := make(chan struct{})
	for i := 0; i < 4; i++ {
		go func(n int) {
			defer func() { done <- struct{}{} }()
			for j := 0; j < 200; j++ {
				key := cacheKey{prefix: string(rune('a'+n)) + "x"}
				c.put(key, nil, cacheNow.Add(time.Duration(j)*time.Millisecond))
				c.get(key, cacheNow.Add(time.Duration(j)*time.Millisecond))
				if j%50 == 0 {
					c.invalidate()
				}
			}
		}(i)
	}
	for i := 0; i < 4; i++ {
		<-done
	}
}
