package lexindex

import (
	"testing"

	"github.com/fulmenhq/lexigraph/alphabet"
	"github.com/fulmenhq/lexigraph/anagram"
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

func TestBuild_AnagramsShareAPrimaryBucket(t *testing.T) {
	alpha := lowercaseAlphabet(t)
	store := vocabulary.NewStore()
	idCat, _ := store.Insert("cat", 1, "en", vocabulary.Indexed, vocabulary.FreqSum)
	idTac, _ := store.Insert("tac", 1, "en", vocabulary.Indexed, vocabulary.FreqSum)
	idDog, _ := store.Insert("dog", 1, "en", vocabulary.Indexed, vocabulary.FreqSum)
	if err := store.Build(); err != nil {
		t.Fatalf("store.Build: %v", err)
	}

	ix := NewIndex(alpha)
	if err := ix.Build(store); err != nil {
		t.Fatalf("Build: %v", err)
	}

	av := anagram.FromEncoded(alpha.Encode("cat"), alpha.Prime)
	ids, ok := ix.PrimaryLookup(av)
	if !ok {
		t.Fatal("expected primary lookup to find the cat/tac bucket")
	}
	found := map[int]bool{}
	for _, id := range ids {
		found[id] = true
	}
	if !found[idCat] || !found[idTac] {
		t.Fatalf("expected both cat and tac ids in bucket, got %v", ids)
	}
	if found[idDog] {
		t.Fatalf("did not expect dog in the cat/tac bucket: %v", ids)
	}
}

func TestBuild_SecondaryBucketsSortedAscending(t *testing.T) {
	alpha := lowercaseAlphabet(t)
	store := vocabulary.NewStore()
	for _, w := range []string{"bad", "cab", "abc", "dab"} {
		_, _ = store.Insert(w, 1, "en", vocabulary.Indexed, vocabulary.FreqSum)
	}
	if err := store.Build(); err != nil {
		t.Fatalf("store.Build: %v", err)
	}

	ix := NewIndex(alpha)
	if err := ix.Build(store); err != nil {
		t.Fatalf("Build: %v", err)
	}

	values := ix.CharLenRange(3)
	for i := 1; i < len(values); i++ {
		if values[i-1].Cmp(values[i]) > 0 {
			t.Fatalf("expected ascending sort, found %s before %s", values[i-1], values[i])
		}
	}
}

func TestBuild_SkipsLMOnlyEntries(t *testing.T) {
	alpha := lowercaseAlphabet(t)
	store := vocabulary.NewStore()
	_, _ = store.Insert("cat", 1, "en", vocabulary.Indexed, vocabulary.FreqSum)
	_, _ = store.Insert("kat", 1, "lm", vocabulary.LMOnly, vocabulary.FreqSum)
	if err := store.Build(); err != nil {
		t.Fatalf("store.Build: %v", err)
	}

	ix := NewIndex(alpha)
	if err := ix.Build(store); err != nil {
		t.Fatalf("Build: %v", err)
	}

	av := anagram.FromEncoded(alpha.Encode("kat"), alpha.Prime)
	if _, ok := ix.PrimaryLookup(av); ok {
		t.Fatal("expected LM-only entries to be excluded from the index")
	}
}

func TestBuild_IndexesVariantOfEntries(t *testing.T) {
	alpha := lowercaseAlphabet(t)
	store := vocabulary.NewStore()
	refID, _ := store.Insert("cat", 1, "en", vocabulary.Indexed, vocabulary.FreqSum)
	_, _ = store.InsertVariant("kat", refID, 0.5, false, "nl")
	if err := store.Build(); err != nil {
		t.Fatalf("store.Build: %v", err)
	}

	ix := NewIndex(alpha)
	if err := ix.Build(store); err != nil {
		t.Fatalf("Build: %v", err)
	}

	av := anagram.FromEncoded(alpha.Encode("kat"), alpha.Prime)
	if _, ok := ix.PrimaryLookup(av); !ok {
		t.Fatal("expected a Variant-of entry to remain reachable via the index so it can be matched")
	}
}

func TestBuckets_VisitsEveryPrimaryGroup(t *testing.T) {
	alpha := lowercaseAlphabet(t)
	store := vocabulary.NewStore()
	for _, w := range []string{"cat", "tac", "dog"} {
		_, _ = store.Insert(w, 1, "en", vocabulary.Indexed, vocabulary.FreqSum)
	}
	if err := store.Build(); err != nil {
		t.Fatalf("store.Build: %v", err)
	}

	ix := NewIndex(alpha)
	if err := ix.Build(store); err != nil {
		t.Fatalf("Build: %v", err)
	}

	var total int
	var sawMultiEntryBucket bool
	ix.Buckets(func(av anagram.Value, ids []int) bool {
		total += len(ids)
		if len(ids) > 1 {
			sawMultiEntryBucket = true
		}
		return true
	})
	if total != 3 {
		t.Fatalf("expected Buckets to visit all 3 entries across groups, got %d", total)
	}
	if !sawMultiEntryBucket {
		t.Fatal("expected the cat/tac anagram group to appear as a multi-entry bucket")
	}
}

func TestEntriesForValue_BinarySearchMatchesLinearLookup(t *testing.T) {
	alpha := lowercaseAlphabet(t)
	store := vocabulary.NewStore()
	for _, w := range []string{"bad", "cab", "abc", "dab"} {
		_, _ = store.Insert(w, 1, "en", vocabulary.Indexed, vocabulary.FreqSum)
	}
	if err := store.Build(); err != nil {
		t.Fatalf("store.Build: %v", err)
	}

	ix := NewIndex(alpha)
	if err := ix.Build(store); err != nil {
		t.Fatalf("Build: %v", err)
	}

	av := anagram.FromEncoded(alpha.Encode("abc"), alpha.Prime)
	ids, ok := ix.EntriesForValue(3, av)
	if !ok || len(ids) != 2 {
		t.Fatalf("expected the 2 anagrams of abc (cab, abc) bucketed together, got %v ok=%v", ids, ok)
	}
}
