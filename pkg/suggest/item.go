package suggest

import (
	"strings"
	"time"
)

// HistoricalItem is one previously-entered list item as supplied by the item
// store. The engine never mutates these; each query operates on a
// point-in-time snapshot.
type HistoricalItem struct {
	ID           string
	ListID       string
	Title        string
	Description  string
	Quantity     int
	Images       []string
	CreatedAt    time.Time
	ModifiedAt   time.Time
	IsCrossedOut bool
}

// LastTouched returns the item's most recent timestamp, preferring
// ModifiedAt and falling back to CreatedAt.
func (h HistoricalItem) LastTouched() time.Time {
	if !h.ModifiedAt.IsZero() {
		return h.ModifiedAt
	}
	return h.CreatedAt
}

// ItemSuggestion is one ranked suggestion produced by a query. All score
// fields are ordinals in [0,100].
type ItemSuggestion struct {
	ID               string
	Title            string
	Description      string
	Quantity         int
	Images           []string
	Frequency        int
	LastUsed         time.Time
	RecencyScore     float64
	FrequencyScore   float64
	Score            float64
	TotalOccurrences int
}

// NormalizeTitle produces the grouping key for a title: surrounding
// whitespace trimmed, case folded, and internal whitespace runs collapsed to
// a single space. "  MILK " and "Milk" normalize to the same key.
func NormalizeTitle(title string) string {
	fields := strings.Fields(strings.ToLower(title))
	return strings.Join(fields, " ")
}
