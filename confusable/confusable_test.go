package confusable

import "testing"

func TestComputeEditScript_IdenticalStringsAllEqual(t *testing.T) {
	script := ComputeEditScript("cat", "cat")
	for _, op := range script {
		if op.Kind != OpEqual {
			t.Fatalf("expected all-equal script for identical strings, got %+v", script)
		}
	}
	if len(script) != 3 {
		t.Fatalf("expected 3 ops, got %d", len(script))
	}
}

func TestComputeEditScript_MergesDeleteInsertIntoSubstitute(t *testing.T) {
	// "huys" -> "huis": the 'y' at position 2 becomes 'i'.
	script := ComputeEditScript("huys", "huis")
	foundSub := false
	for _, op := range script {
		if op.Kind == OpSubstitute && op.From == "y" && op.To == "i" {
			foundSub = true
		}
	}
	if !foundSub {
		t.Fatalf("expected a y->i substitution op in script: %+v", script)
	}
}

func TestPattern_MatchesSubstitutionAnywhere(t *testing.T) {
	script := ComputeEditScript("huys", "huis")
	p := Pattern{
		Ops:    []PatternOp{{Kind: OpSubstitute, From: []string{"y"}, To: []string{"i"}}},
		Weight: 1.1,
	}
	if !p.Matches(script) {
		t.Fatalf("expected pattern to match y->i substitution in %+v", script)
	}
}

func TestPattern_AnchoredStartRejectsMidScriptMatch(t *testing.T) {
	script := ComputeEditScript("huys", "huis")
	p := Pattern{
		StartAnchor: true,
		Ops:         []PatternOp{{Kind: OpSubstitute, From: []string{"y"}, To: []string{"i"}}},
		Weight:      1.1,
	}
	if p.Matches(script) {
		t.Fatalf("did not expect a start-anchored pattern to match a mid-script substitution")
	}
}

func TestPattern_ContextAlternationMatchesEitherOption(t *testing.T) {
	script := ComputeEditScript("cat", "kat")
	p := Pattern{
		Ops:    []PatternOp{{Kind: OpSubstitute, From: []string{"c", "k"}, To: []string{"k", "c"}}},
		Weight: 0.9,
	}
	if !p.Matches(script) {
		t.Fatalf("expected alternation pattern to match c->k substitution in %+v", script)
	}
}

func TestRescale_MultipliesMatchingWeights(t *testing.T) {
	patterns := []Pattern{
		{Ops: []PatternOp{{Kind: OpSubstitute, From: []string{"y"}, To: []string{"i"}}}, Weight: 1.1},
		{Ops: []PatternOp{{Kind: OpSubstitute, From: []string{"z"}, To: []string{"q"}}}, Weight: 0.5},
	}
	rescale := Rescale("huys", "huis", patterns)
	if rescale != 1.1 {
		t.Fatalf("expected only the matching pattern's weight applied (1.1), got %v", rescale)
	}
}

func TestRescale_NoMatchLeavesRescaleAtOne(t *testing.T) {
	patterns := []Pattern{
		{Ops: []PatternOp{{Kind: OpSubstitute, From: []string{"z"}, To: []string{"q"}}}, Weight: 0.5},
	}
	rescale := Rescale("cat", "bat", patterns)
	if rescale != 1.0 {
		t.Fatalf("expected rescale 1.0 when no pattern matches, got %v", rescale)
	}
}
