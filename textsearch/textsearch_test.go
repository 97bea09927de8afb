package textsearch

import (
	"strings"
	"testing"

	"github.com/fulmenhq/lexigraph/alphabet"
	"github.com/fulmenhq/lexigraph/lexindex"
	"github.com/fulmenhq/lexigraph/query"
	"github.com/fulmenhq/lexigraph/vocabulary"
)

func lowercaseAlphabet(t *testing.T) *alphabet.Alphabet {
	t.Helper()
	classes := make([][]string, 26)
	for i := 0; i < 26; i++ {
		classes[i] = []string{string(rune('a' + i)), string(rune('A' + i))}
	}
	a, err := alphabet.New(classes)
	if err != nil {
		t.Fatalf("alphabet.New: %v", err)
	}
	return a
}

func TestTokenize_TracksByteOffsets(t *testing.T) {
	tokens := Tokenize("the  cat sat")
	want := []Token{
		{Text: "the", Begin: 0, End: 3},
		{Text: "cat", Begin: 5, End: 8},
		{Text: "sat", Begin: 9, End: 12},
	}
	if len(tokens) != len(want) {
		t.Fatalf("expected %d tokens, got %d: %+v", len(want), len(tokens), tokens)
	}
	for i, w := range want {
		if tokens[i] != w {
			t.Fatalf("token %d = %+v, want %+v", i, tokens[i], w)
		}
	}
}

func TestSearch_EnumeratesNgramSegments(t *testing.T) {
	alpha := lowercaseAlphabet(t)
	store := vocabulary.NewStore()
	_, _ = store.Insert("cat", 1, "en", vocabulary.Indexed, vocabulary.FreqSum)
	if err := store.Build(); err != nil {
		t.Fatalf("store.Build: %v", err)
	}
	idx := lexindex.NewIndex(alpha)
	if err := idx.Build(store); err != nil {
		t.Fatalf("index.Build: %v", err)
	}

	params := Params{Query: query.DefaultParameters(), MaxNgram: 2}
	segments := Search("the cat", alpha, idx, store, params)

	// 2 unigrams + 1 bigram = 3 segments.
	if len(segments) != 3 {
		t.Fatalf("expected 3 segments (2 unigrams + 1 bigram), got %d", len(segments))
	}
}

func TestConsolidate_ProducesNonOverlappingCover(t *testing.T) {
	alpha := lowercaseAlphabet(t)
	store := vocabulary.NewStore()
	_, _ = store.Insert("cat", 1, "en", vocabulary.Indexed, vocabulary.FreqSum)
	_, _ = store.Insert("sat", 1, "en", vocabulary.Indexed, vocabulary.FreqSum)
	if err := store.Build(); err != nil {
		t.Fatalf("store.Build: %v", err)
	}
	idx := lexindex.NewIndex(alpha)
	if err := idx.Build(store); err != nil {
		t.Fatalf("index.Build: %v", err)
	}

	params := query.DefaultParameters()
	params.MaxAnagramDistance = query.Absolute(1)
	params.MaxEditDistance = query.Absolute(1)
	tp := Params{Query: params, MaxNgram: 1, ConsolidateMatches: true}
	segments := Search("cat sat", alpha, idx, store, tp)

	covered := map[int]bool{}
	for _, seg := range segments {
		for tok := seg.TokenSpan[0]; tok < seg.TokenSpan[1]; tok++ {
			if covered[tok] {
				t.Fatalf("token %d covered by more than one segment: %+v", tok, segments)
			}
			covered[tok] = true
		}
	}
}

// fakeLM is a minimal lm.Collaborator returning canned log-probabilities
// keyed by the space-joined token sequence, with a very negative default
// for any sequence not explicitly scored.
type fakeLM struct {
	scores map[string]float64
}

func (f *fakeLM) Score(tokens []string) (float64, error) {
	if s, ok := f.scores[strings.Join(tokens, " ")]; ok {
		return s, nil
	}
	return -1e6, nil
}

func (f *fakeLM) Order() int { return 2 }

func (f *fakeLM) NgramLookup(tokens []string) (float64, bool) { return 0, false }

// TestConsolidate_LMRescoring_NormalizesAgainstBestCandidate exercises the
// params.LM != nil path through kShortestPaths/selectByMixture with two
// candidate segmentations whose raw log-probabilities are both deeply
// negative (as a realistic add-one-smoothed model would return), but whose
// relative gap still has a clear best. The bigram segmentation has the
// higher variant score but is the LM's worse candidate; the two-unigram
// segmentation has the lower variant score but is the LM's best candidate.
// With a large LMWeight, selectByMixture must favor the LM's best path once
// its log-probability is normalized to 0 (lm.NormalizeLogRatio), not the
// higher-variant-score path a raw, unnormalized exp(logProb) would default
// to once every candidate's exponential has collapsed toward zero.
func TestConsolidate_LMRescoring_NormalizesAgainstBestCandidate(t *testing.T) {
	bigram := SegmentMatch{
		TokenSpan: [2]int{0, 2},
		Variants:  []query.Match{{Text: "ab", Score: 0.9}},
	}
	unigramA := SegmentMatch{
		TokenSpan: [2]int{0, 1},
		Variants:  []query.Match{{Text: "a", Score: 0.1}},
	}
	unigramB := SegmentMatch{
		TokenSpan: [2]int{1, 2},
		Variants:  []query.Match{{Text: "b", Score: 0.1}},
	}

	model := &fakeLM{scores: map[string]float64{
		"ab":  -120, // worse than best, but far from the only candidate
		"a b": -60,  // the best (least negative) candidate
	}}

	params := Params{
		MaxSeq:        2,
		LM:            model,
		VariantWeight: 1,
		LMWeight:      1000,
		ContextWeight: 0,
	}

	result := Consolidate([]SegmentMatch{bigram, unigramA, unigramB}, 2, params)

	if len(result) != 2 {
		t.Fatalf("expected the two-unigram path to win (2 segments), got %d: %+v", len(result), result)
	}
	for _, seg := range result {
		if seg.TokenSpan[1]-seg.TokenSpan[0] != 1 {
			t.Fatalf("expected unigram segments, got span %v in %+v", seg.TokenSpan, result)
		}
	}
}
