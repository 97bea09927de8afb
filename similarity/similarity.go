// Package similarity scores a query/candidate text pair using a weighted
// blend of edit distance, longest-common-substring, prefix/suffix overlap,
// and case agreement, built on the Damerau-Levenshtein and substring-match
// primitives in foundry/similarity.
package similarity

import (
	"time"
	"unicode/utf8"

	foundrysim "github.com/fulmenhq/lexigraph/foundry/similarity"
	"github.com/fulmenhq/lexigraph/telemetry"
	"github.com/fulmenhq/lexigraph/telemetry/metrics"
)

// Weights are the five component weights. Score normalizes them to sum to 1
// before scoring; an all-zero Weights falls back to DefaultWeights.
type Weights struct {
	LD     float64
	LCS    float64
	Prefix float64
	Suffix float64
	Case   float64
}

// DefaultWeights gives equal weight to all five components.
func DefaultWeights() Weights {
	return Weights{LD: 0.2, LCS: 0.2, Prefix: 0.2, Suffix: 0.2, Case: 0.2}
}

// Normalize scales w so its components sum to 1. If all components are
// zero, DefaultWeights is substituted.
func (w Weights) Normalize() Weights {
	sum := w.LD + w.LCS + w.Prefix + w.Suffix + w.Case
	if sum <= 0 {
		return DefaultWeights()
	}
	return Weights{
		LD:     w.LD / sum,
		LCS:    w.LCS / sum,
		Prefix: w.Prefix / sum,
		Suffix: w.Suffix / sum,
		Case:   w.Case / sum,
	}
}

// Components holds each score's raw (pre-weighting) value in [0,1], useful
// for diagnostics.
type Components struct {
	LD     float64
	LCS    float64
	Prefix float64
	Suffix float64
	Case   float64
}

// Result is the outcome of scoring one query/candidate pair.
type Result struct {
	Score      float64
	Components Components
	EditDistance int
}

// Score compares query against candidate using w (normalized internally)
// and returns the weighted similarity and its raw components. When query
// equals candidate byte-for-byte, Score is exactly 1.0 regardless of w.
func Score(query, candidate string, w Weights) Result {
	start := time.Now()
	defer func() {
		telemetry.EmitCounter(metrics.SimilarityScoreTotal, 1, nil)
		telemetry.EmitHistogram(metrics.SimilarityScoreMs, time.Since(start), nil)
	}()

	if query == candidate {
		return Result{
			Score: 1.0,
			Components: Components{LD: 1, LCS: 1, Prefix: 1, Suffix: 1, Case: 1},
		}
	}

	w = w.Normalize()
	maxLen := maxRuneLen(query, candidate)
	if maxLen == 0 {
		return Result{Score: 1.0, Components: Components{LD: 1, LCS: 1, Prefix: 1, Suffix: 1, Case: 1}}
	}

	dist, err := foundrysim.DistanceWithAlgorithm(query, candidate, foundrysim.AlgorithmDamerauUnrestricted)
	if err != nil {
		dist = foundrysim.Distance(query, candidate)
	}
	ldScore := 1.0 - float64(dist)/float64(maxLen)
	if ldScore < 0 {
		ldScore = 0
	}

	_, lcsScore := foundrysim.SubstringMatch(query, candidate)

	prefixLen := commonPrefixLen(query, candidate)
	suffixLen := commonSuffixLen(query, candidate)
	prefixScore := float64(prefixLen) / float64(maxLen)
	suffixScore := float64(suffixLen) / float64(maxLen)

	caseScore := 0.0
	if casesAgree(query, candidate) {
		caseScore = 1.0
	}

	components := Components{
		LD:     ldScore,
		LCS:    lcsScore,
		Prefix: prefixScore,
		Suffix: suffixScore,
		Case:   caseScore,
	}

	total := w.LD*components.LD + w.LCS*components.LCS + w.Prefix*components.Prefix +
		w.Suffix*components.Suffix + w.Case*components.Case

	return Result{Score: total, Components: components, EditDistance: dist}
}

func maxRuneLen(a, b string) int {
	la := utf8.RuneCountInString(a)
	lb := utf8.RuneCountInString(b)
	if la > lb {
		return la
	}
	return lb
}

func commonPrefixLen(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	n := 0
	for n < len(ra) && n < len(rb) && ra[n] == rb[n] {
		n++
	}
	return n
}

func commonSuffixLen(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	n := 0
	for n < len(ra) && n < len(rb) && ra[len(ra)-1-n] == rb[len(rb)-1-n] {
		n++
	}
	return n
}

// casesAgree reports whether a and b have the same whole-string ASCII case
// profile: both all lowercase, both all uppercase, both mixed, or neither
// containing an ASCII letter. Non-ASCII letters are not considered.
func casesAgree(a, b string) bool {
	return caseProfile(a) == caseProfile(b)
}

type caseKind int

const (
	caseNone caseKind = iota
	caseLower
	caseUpper
	caseMixed
)

func caseProfile(s string) caseKind {
	sawLower, sawUpper := false, false
	for _, r := range s {
		if 'a' <= r && r <= 'z' {
			sawLower = true
		} else if 'A' <= r && r <= 'Z' {
			sawUpper = true
		}
	}
	switch {
	case sawLower && sawUpper:
		return caseMixed
	case sawLower:
		return caseLower
	case sawUpper:
		return caseUpper
	default:
		return caseNone
	}
}
