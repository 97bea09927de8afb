// Package textsearch runs the per-input query pipeline (package query) over
// every contiguous token n-gram of running text, optionally consolidating
// overlapping segment matches into a single non-overlapping cover via
// shortest-path search over a token-position DAG, optionally rescored by a
// language-model collaborator.
package textsearch

import (
	"time"

	"github.com/fulmenhq/lexigraph/alphabet"
	"github.com/fulmenhq/lexigraph/lexindex"
	"github.com/fulmenhq/lexigraph/lm"
	"github.com/fulmenhq/lexigraph/query"
	"github.com/fulmenhq/lexigraph/telemetry"
	"github.com/fulmenhq/lexigraph/telemetry/metrics"
	"github.com/fulmenhq/lexigraph/vocabulary"
)

// SegmentMatch is one n-gram span's query result.
type SegmentMatch struct {
	ByteBegin int
	ByteEnd   int
	TokenSpan [2]int // [beginTokenIdx, endTokenIdx) in the tokenized input
	Variants  []query.Match
}

// Params controls text search beyond the underlying query.Parameters.
type Params struct {
	Query query.Parameters

	MaxNgram int

	ConsolidateMatches bool
	// MaxSeq bounds how many candidate consolidated paths are considered
	// when an LM collaborator is supplied.
	MaxSeq int
	LM     lm.Collaborator

	// Mixture weights for the LM-rescored path selection; see
	// spec.md §4.9. Ignored when LM is nil.
	VariantWeight float64
	LMWeight      float64
	ContextWeight float64
}

// Search tokenizes text, enumerates every contiguous n-gram of order
// 1..MaxNgram, and queries each. If ConsolidateMatches is false every
// segment match is returned (may overlap); otherwise a single
// non-overlapping cover is selected (see Consolidate).
func Search(text string, alpha *alphabet.Alphabet, idx *lexindex.Index, store *vocabulary.Store, params Params) []SegmentMatch {
	tokens := Tokenize(text)
	maxN := params.MaxNgram
	if maxN < 1 {
		maxN = 1
	}

	var segments []SegmentMatch
	for order := 1; order <= maxN; order++ {
		for start := 0; start+order <= len(tokens); start++ {
			segStart := time.Now()
			end := start + order
			span := joinSpan(text, tokens[start:end])
			variants := query.Run(span, alpha, idx, store, params.Query)
			segments = append(segments, SegmentMatch{
				ByteBegin: tokens[start].Begin,
				ByteEnd:   tokens[end-1].End,
				TokenSpan: [2]int{start, end},
				Variants:  variants,
			})
			telemetry.EmitHistogram(metrics.TextSearchSegmentMs, time.Since(segStart), nil)
		}
	}
	telemetry.EmitCounter(metrics.TextSearchNgramsTotal, float64(len(segments)), nil)

	if !params.ConsolidateMatches {
		return segments
	}

	return Consolidate(segments, len(tokens), params)
}

func joinSpan(text string, span []Token) string {
	if len(span) == 0 {
		return ""
	}
	return text[span[0].Begin:span[len(span)-1].End]
}
