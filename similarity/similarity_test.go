package similarity

import (
	"math"
	"testing"
)

func floatNear(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestScore_IdenticalStringsScoreOne(t *testing.T) {
	r := Score("hello", "hello", DefaultWeights())
	if r.Score != 1.0 {
		t.Fatalf("expected exact match to score 1.0, got %v", r.Score)
	}
}

func TestScore_InRangeZeroToOne(t *testing.T) {
	r := Score("kitten", "sitting", DefaultWeights())
	if r.Score < 0 || r.Score > 1 {
		t.Fatalf("expected score in [0,1], got %v", r.Score)
	}
}

func TestScore_CaseDisagreementScoresZeroCaseComponent(t *testing.T) {
	r := Score("hello", "HELLO", DefaultWeights())
	if r.Components.Case != 0 {
		t.Fatalf("expected case component 0 for all-lower vs all-upper, got %v", r.Components.Case)
	}
}

func TestScore_CaseAgreementScoresOneCaseComponent(t *testing.T) {
	r := Score("hello", "world", DefaultWeights())
	if r.Components.Case != 1 {
		t.Fatalf("expected case component 1 for two all-lowercase strings, got %v", r.Components.Case)
	}
}

func TestScore_PrefixComponent(t *testing.T) {
	r := Score("testing", "tester", DefaultWeights())
	if r.Components.Prefix <= 0 {
		t.Fatalf("expected a nonzero prefix score for shared prefix 'test', got %v", r.Components.Prefix)
	}
}

func TestWeights_NormalizeSumsToOne(t *testing.T) {
	w := Weights{LD: 2, LCS: 2, Prefix: 2, Suffix: 2, Case: 2}.Normalize()
	sum := w.LD + w.LCS + w.Prefix + w.Suffix + w.Case
	if !floatNear(sum, 1.0) {
		t.Fatalf("expected normalized weights to sum to 1, got %v", sum)
	}
}

func TestWeights_NormalizeZeroFallsBackToDefault(t *testing.T) {
	w := Weights{}.Normalize()
	if w != DefaultWeights() {
		t.Fatalf("expected zero weights to fall back to defaults, got %+v", w)
	}
}

func TestScore_HigherWeightOnComponentIncreasesItsInfluence(t *testing.T) {
	allLD := Weights{LD: 1}
	r := Score("abcdef", "abcxyz", allLD)
	if !floatNear(r.Score, r.Components.LD) {
		t.Fatalf("expected score to equal the LD component when LD weight is 1, got score=%v ld=%v", r.Score, r.Components.LD)
	}
}
