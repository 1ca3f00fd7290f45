package suggest

import "strings"

// Similarity tiers. Exact matches always beat prefix matches, prefix beats
// substring, substring beats fuzzy, fuzzy beats nothing.
const (
	prefixFloor    = 0.8
	substringFloor = 0.5
	fuzzyCeiling   = 0.5
	minQueryRunes  = 2
)

// Similarity scores how well candidate matches the typed query, in [0,1].
// Comparison is case-insensitive on normalized text. Queries shorter than
// two runes never match anything; the UI only activates suggestions at two
// typed characters.
func Similarity(query, candidate string) float64 {
	q := NormalizeTitle(query)
	c := NormalizeTitle(candidate)

	if len([]rune(q)) < minQueryRunes || c == "" {
		return 0.0
	}
	if q == c {
		return 1.0
	}
	if strings.HasPrefix(c, q) {
		// Shorter unmatched remainder scores higher: "eggs" beats
		// "eggplant" for query "egg".
		coverage := float64(len(q)) / float64(len(c))
		return prefixFloor + (1.0-prefixFloor)*coverage
	}
	if strings.Contains(c, q) {
		coverage := float64(len(q)) / float64(len(c))
		return substringFloor + (prefixFloor-substringFloor-0.01)*coverage
	}
	return fuzzyScore(q, c)
}

// fuzzyScore is the fallback tier: a character-bigram Dice coefficient
// scaled into [0, 0.5). Deterministic, order-insensitive on bigram
// multisets, and 0.0 when the strings share no bigrams at all.
func fuzzyScore(q, c string) float64 {
	qb := bigrams(q)
	cb := bigrams(c)
	if len(qb) == 0 || len(cb) == 0 {
		return 0.0
	}

	counts := make(map[string]int, len(qb))
	for _, b := range qb {
		counts[b]++
	}
	shared := 0
	for _, b := range cb {
		if counts[b] > 0 {
			counts[b]--
			shared++
		}
	}
	if shared == 0 {
		return 0.0
	}
	dice := 2.0 * float64(shared) / float64(len(qb)+len(cb))
	// Scale so even a perfect bigram overlap stays below the substring tier.
	return dice * (fuzzyCeiling - 0.01)
}

func bigrams(s string) []string {
	runes := []rune(s)
	if len(runes) < 2 {
		return nil
	}
	out := make([]string, 0, len(runes)-1)
	for i := 0; i < len(runes)-1; i++ {
		out = append(out, string(runes[i:i+2]))
	}
	return out
}
