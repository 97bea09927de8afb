package alphabet

import (
	"reflect"
	"testing"
)

func lowercaseAlphabet(t *testing.T) *Alphabet {
	t.Helper()
	classes := make([][]string, 26)
	for i := 0; i < 26; i++ {
		letter := string(rune('a' + i))
		upper := string(rune('A' + i))
		classes[i] = []string{letter, upper}
	}
	a, err := New(classes)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	return a
}

func TestEncode_CaseFolding(t *testing.T) {
	a := lowercaseAlphabet(t)

	lower := a.Encode("cat")
	upper := a.Encode("CAT")
	mixed := a.Encode("Cat")

	if !reflect.DeepEqual(lower, upper) {
		t.Fatalf("expected case-insensitive encodings to match: %v vs %v", lower, upper)
	}
	if !reflect.DeepEqual(lower, mixed) {
		t.Fatalf("expected mixed-case encoding to match lowercase: %v vs %v", lower, mixed)
	}
}

func TestEncode_UnknownCharacter(t *testing.T) {
	a := lowercaseAlphabet(t)

	encoded := a.Encode("c@t")
	if len(encoded) != 3 {
		t.Fatalf("expected 3 symbols, got %d: %v", len(encoded), encoded)
	}
	if encoded[1] != a.UnknownClass() {
		t.Fatalf("expected middle symbol to be unknown class, got %d", encoded[1])
	}
}

func TestEncode_PermutationSameMultiset(t *testing.T) {
	a := lowercaseAlphabet(t)

	cat := a.Encode("cat")
	tac := a.Encode("tac")

	catCounts := counts(cat)
	tacCounts := counts(tac)
	if !reflect.DeepEqual(catCounts, tacCounts) {
		t.Fatalf("expected permutations to share the same class multiset: %v vs %v", catCounts, tacCounts)
	}
}

func TestGreedyLongestMatch(t *testing.T) {
	// "ch" and "c" both declared; "ch" must win at each position where it applies.
	classes := [][]string{
		{"ch"},
		{"c"},
		{"h"},
		{"a"},
	}
	a, err := New(classes)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	encoded := a.Encode("cha")
	want := []int{0, 3} // "ch" class, then "a" class
	if !reflect.DeepEqual(encoded, want) {
		t.Fatalf("Encode(\"cha\") = %v, want %v", encoded, want)
	}
}

func TestPrimesAreAssignedInDeclaredOrder(t *testing.T) {
	a := lowercaseAlphabet(t)
	if a.Prime(0) != 2 {
		t.Fatalf("expected first class to receive prime 2, got %d", a.Prime(0))
	}
	if a.Prime(1) != 3 {
		t.Fatalf("expected second class to receive prime 3, got %d", a.Prime(1))
	}
}

func TestNew_RejectsEmptyAlphabet(t *testing.T) {
	if _, err := New(nil); err == nil {
		t.Fatal("expected error for empty alphabet")
	}
}

func counts(encoded []int) map[int]int {
	m := make(map[int]int)
	for _, c := range encoded {
		m[c]++
	}
	return m
}
