// Package lexindex builds the primary and secondary indices over a
// vocabulary store: a primary index from anagram value to the entry ids
// sharing it, and a secondary index from character length to a sorted
// vector of anagram values, used by neighborhood search to enumerate
// candidates within a bounded anagram distance.
package lexindex

import (
	"errors"
	"sort"

	"github.com/fulmenhq/lexigraph/alphabet"
	"github.com/fulmenhq/lexigraph/anagram"
	"github.com/fulmenhq/lexigraph/vocabulary"
)

// ErrNotBuilt is returned by query operations invoked before Build.
var ErrNotBuilt = errors.New("lexindex: index not built")

// bucket holds one char_len's anagram values alongside the entry ids that
// produced each one, kept parallel and sorted together for binary search.
type bucket struct {
	values  []anagram.Value
	entries [][]int // entries[i] are the ids whose AV equals values[i]
}

// Index is the primary/secondary index pair over a vocabulary.Store. Built
// once via Build; read-only and safe to share across goroutines thereafter.
type Index struct {
	alpha *alphabet.Alphabet

	primary map[string][]int // Value.Key() -> entry ids (unsorted accumulation)
	values  map[string]anagram.Value

	secondary map[int]*bucket // char_len -> bucket, built in phase 2

	built bool
}

// NewIndex prepares an index builder over the given alphabet.
func NewIndex(alpha *alphabet.Alphabet) *Index {
	return &Index{
		alpha:     alpha,
		primary:   make(map[string][]int),
		values:    make(map[string]anagram.Value),
		secondary: make(map[int]*bucket),
	}
}

// Build runs both index phases over every entry in store except LM-only
// ones (Indexed, Transparent and Variant-of entries): phase 1 computes each entry's encoding and anagram value and
// appends it to the relevant primary/secondary accumulators (also recording
// the encoding back onto the vocabulary entry via SetEncoded); phase 2
// sorts each secondary bucket ascending by anagram value. Build is
// idempotent.
func (ix *Index) Build(store *vocabulary.Store) error {
	if ix.built {
		return nil
	}

	// Phase 1: compute + append. Variant-of entries are indexed alongside
	// Indexed and Transparent ones so they remain reachable from
	// neighborhood search; only LM-only entries are excluded from lookup.
	store.Iter(func(e vocabulary.Entry) bool {
		if e.Kind == vocabulary.LMOnly {
			return true
		}
		encoded := ix.alpha.Encode(e.Text)
		av := anagram.FromEncoded(encoded, ix.alpha.Prime)
		key := av.Key()

		store.SetEncoded(e.ID, encoded, key)

		ix.primary[key] = append(ix.primary[key], e.ID)
		ix.values[key] = av

		charLen := len(encoded)
		b, ok := ix.secondary[charLen]
		if !ok {
			b = &bucket{}
			ix.secondary[charLen] = b
		}
		if existing, found := findValueIndex(b.values, av); found {
			b.entries[existing] = append(b.entries[existing], e.ID)
		} else {
			b.values = append(b.values, av)
			b.entries = append(b.entries, []int{e.ID})
		}
		return true
	})

	// Phase 2: sort each bucket ascending.
	for _, b := range ix.secondary {
		sortBucket(b)
	}

	ix.built = true
	return nil
}

// PrimaryLookup returns the entry ids sharing anagram value av, if any.
func (ix *Index) PrimaryLookup(av anagram.Value) ([]int, bool) {
	ids, ok := ix.primary[av.Key()]
	return ids, ok
}

// CharLenRange returns the sorted anagram values present for the given
// character length, or nil if the length has no bucket.
func (ix *Index) CharLenRange(charLen int) []anagram.Value {
	b, ok := ix.secondary[charLen]
	if !ok {
		return nil
	}
	return b.values
}

// EntriesForValue returns the entry ids at position i within a CharLenRange
// slice for the same charLen, looked up by value via binary search since
// Build leaves each bucket sorted ascending.
func (ix *Index) EntriesForValue(charLen int, av anagram.Value) ([]int, bool) {
	b, ok := ix.secondary[charLen]
	if !ok {
		return nil, false
	}
	pos := sort.Search(len(b.values), func(i int) bool {
		return b.values[i].Cmp(av) >= 0
	})
	if pos >= len(b.values) || !b.values[pos].Eq(av) {
		return nil, false
	}
	return b.entries[pos], true
}

// SearchFrom returns the index of the first value in a CharLenRange slice
// that is >= floor, suitable as a starting point for a forward linear scan
// during neighborhood search (step 3's bounded scan from the binary-search
// position).
func SearchFrom(values []anagram.Value, floor anagram.Value) int {
	return sort.Search(len(values), func(i int) bool {
		return values[i].Cmp(floor) >= 0
	})
}

// Buckets calls fn once per distinct anagram value in the primary index,
// passing its Value and the entry ids sharing it, in no particular order.
// Used by the index-dump CLI subcommand; stops early if fn returns false.
func (ix *Index) Buckets(fn func(av anagram.Value, ids []int) bool) {
	for key, ids := range ix.primary {
		if !fn(ix.values[key], ids) {
			return
		}
	}
}

// MinCharLen and MaxCharLen report the bucket range present in the index,
// used to clamp neighborhood search's char_len scan window.
func (ix *Index) MinCharLen() int {
	min := -1
	for l := range ix.secondary {
		if min == -1 || l < min {
			min = l
		}
	}
	return min
}

func (ix *Index) MaxCharLen() int {
	max := -1
	for l := range ix.secondary {
		if l > max {
			max = l
		}
	}
	return max
}

func sortBucket(b *bucket) {
	idx := make([]int, len(b.values))
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(i, j int) bool {
		return b.values[idx[i]].Cmp(b.values[idx[j]]) < 0
	})
	values := make([]anagram.Value, len(b.values))
	entries := make([][]int, len(b.entries))
	for newPos, oldPos := range idx {
		values[newPos] = b.values[oldPos]
		entries[newPos] = b.entries[oldPos]
	}
	b.values = values
	b.entries = entries
}

func findValueIndex(values []anagram.Value, av anagram.Value) (int, bool) {
	for i, v := range values {
		if v.Eq(av) {
			return i, true
		}
	}
	return -1, false
}
