package suggest

import (
	"math"
	"time"
)

// Weights controls the blend of the three scoring axes. Similarity must
// dominate so a frequently-bought but unrelated title never outranks what
// the user is actually typing.
type Weights struct {
	Similarity float64
	Frequency  float64
	Recency    float64
}

// DefaultWeights is the 50/30/20 blend shipped with the engine.
var DefaultWeights = Weights{Similarity: 0.5, Frequency: 0.3, Recency: 0.2}

// Valid reports whether the weights can be used: none negative, sum
// positive.
func (w Weights) Valid() bool {
	if w.Similarity < 0 || w.Frequency < 0 || w.Recency < 0 {
		return false
	}
	return w.Similarity+w.Frequency+w.Recency > 0
}

// normalized returns the weights scaled to sum to 1 so the blended score
// stays within [0,100] regardless of how the config expresses them.
func (w Weights) normalized() Weights {
	sum := w.Similarity + w.Frequency + w.Recency
	return Weights{
		Similarity: w.Similarity / sum,
		Frequency:  w.Frequency / sum,
		Recency:    w.Recency / sum,
	}
}

// recencyScore maps the age of lastUsed onto [0,100] with exponential
// half-life decay: 100 at zero age, halving every halfLife, so a 7-day
// half-life lands near 5 for a title untouched in 30 days. Items with no
// timestamp at all score 0.
func recencyScore(lastUsed, now time.Time, halfLife time.Duration) float64 {
	if lastUsed.IsZero() {
		return 0
	}
	age := now.Sub(lastUsed)
	if age <= 0 {
		return 100
	}
	if halfLife <= 0 {
		halfLife = 7 * 24 * time.Hour
	}
	score := 100 * math.Exp2(-age.Hours()/halfLife.Hours())
	return clamp(score, 0, 100)
}

// frequencyScore scales a group's occurrence count against the most common
// title in the corpus, so that title always scores 100 on this axis.
func frequencyScore(count, corpusMax int) float64 {
	if corpusMax <= 0 || count <= 0 {
		return 0
	}
	return clamp(float64(count)/float64(corpusMax)*100, 0, 100)
}

// scoreGroup computes the three ordinals and their blend for one group
// against the typed prefix. similarity is passed in already computed since
// the caller may have resolved it via the prefix index.
func scoreGroup(g *group, similarity float64, corpusMax int, now time.Time, halfLife time.Duration, w Weights) (combined, recency, frequency float64) {
	recency = recencyScore(g.lastUsed, now, halfLife)
	frequency = frequencyScore(g.count, corpusMax)
	simScore := clamp(similarity*100, 0, 100)

	nw := w.normalized()
	combined = clamp(nw.Similarity*simScore+nw.Frequency*frequency+nw.Recency*recency, 0, 100)
	return combined, recency, frequency
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
