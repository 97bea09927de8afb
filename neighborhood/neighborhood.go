// Package neighborhood implements anagram-distance-bounded candidate search
// over a built lexindex.Index: exact matches, deletion-derived matches, and
// containment matches discovered via the secondary char-length buckets.
package neighborhood

import (
	"time"

	"github.com/fulmenhq/lexigraph/alphabet"
	"github.com/fulmenhq/lexigraph/anagram"
	"github.com/fulmenhq/lexigraph/lexindex"
	"github.com/fulmenhq/lexigraph/telemetry"
	"github.com/fulmenhq/lexigraph/telemetry/metrics"
	"github.com/fulmenhq/lexigraph/vocabulary"
)

// Params bounds a single neighborhood search.
type Params struct {
	// MaxAnagramDistance is d_A: the maximum number of class indices that
	// may be deleted from the query during enumeration.
	MaxAnagramDistance int
	// StopOnExactMatch enables early termination once an exact AV match
	// whose text equals the query verbatim is found.
	StopOnExactMatch bool
}

// Candidate is one surviving entry id paired with the anagram distance at
// which it was discovered (size of the deletion that produced the match,
// from whichever side of the comparison found it first).
type Candidate struct {
	EntryID        int
	AnagramDistance int
}

// Search returns the deduplicated candidate set for query against idx,
// honoring params. store is consulted only for the stop-criterion's
// verbatim-text check.
func Search(query string, alpha *alphabet.Alphabet, idx *lexindex.Index, store *vocabulary.Store, params Params) []Candidate {
	start := time.Now()
	defer func() {
		telemetry.EmitHistogram(metrics.NeighborhoodSearchMs, time.Since(start), nil)
	}()

	encoded := alpha.Encode(query)
	L := len(encoded)
	d := params.MaxAnagramDistance
	if d < 0 {
		d = 0
	}

	found := make(map[int]int) // entry id -> best (smallest) anagram distance seen

	admit := func(ids []int, distance int) {
		for _, id := range ids {
			if best, ok := found[id]; !ok || distance < best {
				found[id] = distance
			}
		}
	}

	// Step 1: exact AV match.
	queryAV := anagram.FromEncoded(encoded, alpha.Prime)
	if ids, ok := idx.PrimaryLookup(queryAV); ok {
		admit(ids, 0)
		if params.StopOnExactMatch && store != nil && hasVerbatimMatch(ids, query, store) {
			return []Candidate{{EntryID: exactEntryID(ids, query, store), AnagramDistance: 0}}
		}
	}

	// Step 2: deletions from the query.
	deletions := anagram.DeletionEnumeration(encoded, d, alpha.Prime)
	telemetry.EmitCounter(metrics.NeighborhoodDeletionsTotal, float64(len(deletions)), nil)
	for _, del := range deletions {
		if del.Size == 0 {
			continue // already handled by step 1
		}
		if ids, ok := idx.PrimaryLookup(del.Value); ok {
			admit(ids, del.Size)
		}
	}

	// Step 3: containment against longer candidates via secondary buckets.
	minLen := L - d
	if minLen < 1 {
		minLen = 1
	}
	maxLen := L + d
	primes := alpha.Primes()

	for charLen := minLen; charLen <= maxLen; charLen++ {
		values := idx.CharLenRange(charLen)
		if len(values) == 0 {
			continue
		}
		for _, del := range deletions {
			budgetRemaining := d - del.Size
			if budgetRemaining < 0 {
				continue
			}
			start := lexindex.SearchFrom(values, del.Value)
			for i := start; i < len(values); i++ {
				candidateAV := values[i]
				if !candidateAV.DivisibleBy(del.Value) {
					continue
				}
				quotient, err := candidateAV.ExactDiv(del.Value)
				if err != nil {
					continue
				}
				if quotient.PrimeFactorCount(primes) > budgetRemaining {
					continue
				}
				if ids, ok := idx.EntriesForValue(charLen, candidateAV); ok {
					admit(ids, del.Size)
				}
			}
		}
	}

	candidates := make([]Candidate, 0, len(found))
	for id, dist := range found {
		candidates = append(candidates, Candidate{EntryID: id, AnagramDistance: dist})
	}
	telemetry.EmitCounter(metrics.NeighborhoodCandidatesSeen, float64(len(candidates)), nil)
	return candidates
}

func hasVerbatimMatch(ids []int, query string, store *vocabulary.Store) bool {
	for _, id := range ids {
		if entry, ok := store.Get(id); ok && entry.Text == query {
			return true
		}
	}
	return false
}

func exactEntryID(ids []int, query string, store *vocabulary.Store) int {
	for _, id := range ids {
		if entry, ok := store.Get(id); ok && entry.Text == query {
			return id
		}
	}
	return ids[0]
}
