// Package query implements the per-input query pipeline: encode, bounded
// neighborhood search, similarity scoring with threshold/cutoff pruning,
// confusable rescoring, variant/transparent expansion, and deterministic
// ranking.
package query

import (
	"math"

	"github.com/fulmenhq/lexigraph/confusable"
	"github.com/fulmenhq/lexigraph/similarity"
)

// Bound expresses a search parameter either as an absolute count or as a
// ratio of a reference length, resolved at query time.
type Bound struct {
	IsRatio bool
	Ratio   float64
	Abs     int
}

// Absolute constructs a fixed-count Bound.
func Absolute(n int) Bound {
	return Bound{Abs: n}
}

// RatioOf constructs a length-relative Bound.
func RatioOf(ratio float64) Bound {
	return Bound{IsRatio: true, Ratio: ratio}
}

// Resolve converts the bound to an absolute integer given a reference
// length (the query's character length for max_anagram_distance, or
// max(|q|,|c|) for max_edit_distance — see DESIGN.md's Open Question
// resolution).
func (b Bound) Resolve(length int) int {
	if !b.IsRatio {
		return b.Abs
	}
	return int(math.Round(b.Ratio * float64(length)))
}

// Parameters bundles every tunable recognized by the query pipeline.
type Parameters struct {
	MaxAnagramDistance Bound
	MaxEditDistance    Bound
	MaxMatches         int // 0 = unlimited
	ScoreThreshold     float64
	CutoffThreshold    float64 // 0 disables cutoff pruning
	StopCriterion      bool

	FreqWeight float64
	Weights    similarity.Weights

	ConfusablePatterns          []confusable.Pattern
	SetConfusablesBeforePruning bool
}

// DefaultParameters returns defaults suitable for exploratory queries: an
// anagram distance of 2, an edit distance of 4, at most 10 matches, a zero
// score threshold, no cutoff, and equal similarity component weights.
func DefaultParameters() Parameters {
	return Parameters{
		MaxAnagramDistance: Absolute(2),
		MaxEditDistance:    Absolute(4),
		MaxMatches:         10,
		ScoreThreshold:     0,
		CutoffThreshold:    0,
		Weights:            similarity.DefaultWeights(),
	}
}
