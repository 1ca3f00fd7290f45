package suggest

import (
	"strings"
	"time"

	"github.com/tchap/go-patricia/v2/patricia"
)

// group accumulates every historical item sharing one normalized title.
// Representative fields come from the most recently touched member so the
// suggestion offers the user's latest casing, description and quantity.
type group struct {
	key            string
	title          string
	description    string
	quantity       int
	images         []string
	representative string
	count          int
	lastUsed       time.Time
	repTouched     time.Time
}

// corpusIndex is the output of one aggregation pass: groups by normalized
// title plus a patricia trie over the keys for cheap prefix candidate
// lookups, and the corpus-wide maximum group count for frequency scaling.
type corpusIndex struct {
	groups  map[string]*group
	trie    *patricia.Trie
	maxFreq int
}

// aggregate folds the corpus snapshot into per-title groups, skipping the
// item being edited. Items with empty normalized titles are ignored.
func aggregate(corpus []HistoricalItem, excludeItemID string) *corpusIndex {
	idx := &corpusIndex{
		groups: make(map[string]*group, len(corpus)),
		trie:   patricia.NewTrie(),
	}

	for _, item := range corpus {
		if excludeItemID != "" && item.ID == excludeItemID {
			continue
		}
		key := NormalizeTitle(item.Title)
		if key == "" {
			continue
		}

		touched := item.LastTouched()
		g, ok := idx.groups[key]
		if !ok {
			g = &group{key: key}
			idx.groups[key] = g
			idx.trie.Insert(patricia.Prefix(key), g)
		}
		g.count++
		if touched.After(g.lastUsed) {
			g.lastUsed = touched
		}
		if !ok || touched.After(g.repTouched) {
			g.title = strings.TrimSpace(item.Title)
			g.description = item.Description
			g.quantity = item.Quantity
			g.images = item.Images
			g.representative = item.ID
			g.repTouched = touched
		}
		if g.count > idx.maxFreq {
			idx.maxFreq = g.count
		}
	}
	return idx
}

// prefixKeys returns the normalized titles in the index that start with the
// given normalized prefix.
func (idx *corpusIndex) prefixKeys(normalizedPrefix string) map[string]bool {
	keys := make(map[string]bool)
	_ = idx.trie.VisitSubtree(patricia.Prefix(normalizedPrefix), func(p patricia.Prefix, _ patricia.Item) error {
		keys[string(p)] = true
		return nil
	})
	return keys
}
