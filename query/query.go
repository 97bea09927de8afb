package query

import (
	"sort"
	"time"
	"unicode/utf8"

	"github.com/fulmenhq/lexigraph/alphabet"
	"github.com/fulmenhq/lexigraph/confusable"
	"github.com/fulmenhq/lexigraph/lexindex"
	"github.com/fulmenhq/lexigraph/neighborhood"
	"github.com/fulmenhq/lexigraph/similarity"
	"github.com/fulmenhq/lexigraph/telemetry"
	"github.com/fulmenhq/lexigraph/telemetry/metrics"
	"github.com/fulmenhq/lexigraph/vocabulary"
)

// Match is one ranked result for a query.
type Match struct {
	EntryID   int
	Text      string
	Score     float64
	DistScore float64 // the LD component of Score, surfaced separately per the documented output shape
	FreqScore float64 // normalized frequency rank within this result set, [0,1]
	Lexicons  []string
	Via       string // set when this match was reached through a Transparent variant
}

type scored struct {
	entryID   int
	refID     int // the entry actually reported (== entryID unless a variant collapsed onto its reference)
	rawScore  float64
	distScore float64
	via       string
}

// Run executes the full C8 pipeline for a single input and returns its
// ranked, deduplicated, truncated matches.
func Run(input string, alpha *alphabet.Alphabet, idx *lexindex.Index, store *vocabulary.Store, params Parameters) []Match {
	start := time.Now()
	telemetry.EmitCounter(metrics.QueryTotal, 1, nil)
	defer func() {
		telemetry.EmitHistogram(metrics.QueryLatencyMs, time.Since(start), nil)
	}()

	encoded := alpha.Encode(input)
	queryLen := len(encoded)

	dA := params.MaxAnagramDistance.Resolve(queryLen)
	candidates := neighborhood.Search(input, alpha, idx, store, neighborhood.Params{
		MaxAnagramDistance: dA,
		StopOnExactMatch:   params.StopCriterion,
	})
	telemetry.EmitCounter(metrics.QueryCandidatesTotal, float64(len(candidates)), nil)

	byRef := make(map[int]*scored) // reference entry id -> best-scoring variant seen so far
	rescaled := 0

	for _, cand := range candidates {
		entry, ok := store.Get(cand.EntryID)
		if !ok {
			continue
		}

		result := similarity.Score(input, entry.Text, params.Weights)
		maxLen := maxRuneLen(input, entry.Text)
		editBound := params.MaxEditDistance.Resolve(maxLen)

		finalScore := result.Score
		if params.SetConfusablesBeforePruning {
			rescale := confusable.Rescale(input, entry.Text, params.ConfusablePatterns)
			if rescale != 1.0 {
				rescaled++
			}
			finalScore *= rescale
		}

		if !params.SetConfusablesBeforePruning {
			if finalScore < params.ScoreThreshold || result.EditDistance > editBound {
				continue
			}
			rescale := confusable.Rescale(input, entry.Text, params.ConfusablePatterns)
			if rescale != 1.0 {
				rescaled++
			}
			finalScore *= rescale
		} else if finalScore < params.ScoreThreshold || result.EditDistance > editBound {
			continue
		}

		refID := entry.ID
		via := ""
		if entry.Kind == vocabulary.Transparent || entry.Kind == vocabulary.VariantOf {
			refEntry, ok := store.Get(entry.VariantRef)
			if !ok {
				continue
			}
			refID = refEntry.ID
			if entry.Kind == vocabulary.Transparent {
				via = entry.Text
			}
			finalScore *= entry.VariantWeight
		}

		existing, seen := byRef[refID]
		if !seen || finalScore > existing.rawScore {
			byRef[refID] = &scored{
				entryID:   entry.ID,
				refID:     refID,
				rawScore:  finalScore,
				distScore: result.Components.LD,
				via:       via,
			}
		}
	}

	matches := make([]Match, 0, len(byRef))
	maxFreq := 0.0
	type withFreq struct {
		m   Match
		raw float64
	}
	withFreqs := make([]withFreq, 0, len(byRef))

	for refID, s := range byRef {
		refEntry, ok := store.Get(refID)
		if !ok {
			continue
		}
		freq := refEntry.TotalFreq()
		if freq > maxFreq {
			maxFreq = freq
		}
		withFreqs = append(withFreqs, withFreq{
			m: Match{
				EntryID:   refID,
				Text:      refEntry.Text,
				Score:     s.rawScore,
				DistScore: s.distScore,
				Lexicons:  refEntry.LexiconTags,
				Via:       s.via,
			},
			raw: freq,
		})
	}

	bestScore := 0.0
	for _, wf := range withFreqs {
		if wf.m.Score > bestScore {
			bestScore = wf.m.Score
		}
	}

	for _, wf := range withFreqs {
		if params.CutoffThreshold > 0 && bestScore > 0 && wf.m.Score < bestScore/params.CutoffThreshold {
			continue
		}
		m := wf.m
		if maxFreq > 0 {
			m.FreqScore = wf.raw / maxFreq
		}
		matches = append(matches, m)
	}

	rankKey := func(m Match) float64 {
		if params.FreqWeight > 0 {
			return (m.Score + params.FreqWeight*m.FreqScore) / (1 + params.FreqWeight)
		}
		return m.Score
	}

	sort.Slice(matches, func(i, j int) bool {
		ki, kj := rankKey(matches[i]), rankKey(matches[j])
		if ki != kj {
			return ki > kj
		}
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		if matches[i].FreqScore != matches[j].FreqScore {
			return matches[i].FreqScore > matches[j].FreqScore
		}
		return matches[i].EntryID < matches[j].EntryID
	})

	if params.MaxMatches > 0 && len(matches) > params.MaxMatches {
		matches = matches[:params.MaxMatches]
	}

	telemetry.EmitCounter(metrics.QueryResultsTotal, float64(len(matches)), nil)
	telemetry.EmitCounter(metrics.QueryConfusableRescaleTotal, float64(rescaled), nil)

	return matches
}

func maxRuneLen(a, b string) int {
	la := utf8.RuneCountInString(a)
	lb := utf8.RuneCountInString(b)
	if la > lb {
		return la
	}
	return lb
}
