// Package alphabet maps Unicode input to small-integer alphabet class
// indices via greedy longest-match, the first stage of the anagram-hashing
// pipeline. Each class is assigned a prime (see the anagram package) so that
// the resulting encoded sequence can be turned into an anagram value.
package alphabet

import (
	"fmt"

	"github.com/clipperhouse/uax29/v2/graphemes"
	"golang.org/x/text/unicode/norm"
)

// UnknownSymbol is the class label reserved for code points that match no
// declared class. It is always assigned the final class index.
const UnknownSymbol = "�"

type candidate struct {
	classIndex int
	clusters   []string
}

// Alphabet is an ordered list of equivalence classes, each carrying a prime
// used to compute anagram values. Built once at load time; read-only
// thereafter and safe to share across goroutines.
type Alphabet struct {
	classes        [][]string // declared symbols per class, in declared order
	primes         []uint64
	unknownClass   int
	byFirstCluster map[string][]candidate
}

// New builds an Alphabet from ordered classes of equivalent symbols. An
// implicit unknown class is appended and receives the next prime in
// sequence. Classes must be non-empty; symbols must be non-empty strings.
func New(classes [][]string) (*Alphabet, error) {
	if len(classes) == 0 {
		return nil, fmt.Errorf("alphabet: at least one class is required")
	}
	primes := primeSequence(len(classes) + 1)

	a := &Alphabet{
		classes:        make([][]string, 0, len(classes)+1),
		primes:         primes,
		byFirstCluster: make(map[string][]candidate),
	}

	for classIdx, symbols := range classes {
		if len(symbols) == 0 {
			return nil, fmt.Errorf("alphabet: class %d has no symbols", classIdx)
		}
		normalized := make([]string, len(symbols))
		for i, sym := range symbols {
			if sym == "" {
				return nil, fmt.Errorf("alphabet: class %d contains an empty symbol", classIdx)
			}
			normalized[i] = norm.NFC.String(sym)
		}
		a.classes = append(a.classes, normalized)
		a.registerCandidates(classIdx, normalized)
	}

	a.unknownClass = len(a.classes)
	a.classes = append(a.classes, []string{UnknownSymbol})

	return a, nil
}

func (a *Alphabet) registerCandidates(classIdx int, symbols []string) {
	for _, sym := range symbols {
		clusters := Clusters(sym)
		if len(clusters) == 0 {
			continue
		}
		key := clusters[0]
		a.byFirstCluster[key] = append(a.byFirstCluster[key], candidate{
			classIndex: classIdx,
			clusters:   clusters,
		})
	}
}

// NumClasses returns the number of declared classes, including the implicit
// unknown class.
func (a *Alphabet) NumClasses() int {
	return len(a.classes)
}

// UnknownClass returns the index of the implicit unknown-character class.
func (a *Alphabet) UnknownClass() int {
	return a.unknownClass
}

// Prime returns the prime assigned to a class index.
func (a *Alphabet) Prime(classIndex int) uint64 {
	return a.primes[classIndex]
}

// Primes returns the full ascending prime sequence assigned to this
// alphabet's classes, used by neighborhood search to bound prime-factor
// counts on index-side quotients.
func (a *Alphabet) Primes() []uint64 {
	return a.primes
}

// Representative returns the canonical (first-declared) symbol for a class,
// used when decoding class indices back to text.
func (a *Alphabet) Representative(classIndex int) string {
	return a.classes[classIndex][0]
}

// Encode maps s to a sequence of class indices via left-to-right greedy
// longest-match: at each position every class is a candidate, and the
// longest matching symbol wins; ties are broken by declared class order.
// Unmatched grapheme clusters map to the unknown class and advance by one
// cluster.
func (a *Alphabet) Encode(s string) []int {
	clusters := Clusters(norm.NFC.String(s))
	encoded := make([]int, 0, len(clusters))

	i := 0
	for i < len(clusters) {
		bestClass := -1
		bestLen := 0

		for _, cand := range a.byFirstCluster[clusters[i]] {
			if matchesAt(clusters, i, cand.clusters) && len(cand.clusters) > bestLen {
				bestLen = len(cand.clusters)
				bestClass = cand.classIndex
			}
		}

		if bestClass == -1 {
			encoded = append(encoded, a.unknownClass)
			i++
			continue
		}

		encoded = append(encoded, bestClass)
		i += bestLen
	}

	return encoded
}

// Decode maps an encoded sequence back to its canonical textual
// representation, joining each class's representative symbol.
func (a *Alphabet) Decode(encoded []int) string {
	s := ""
	for _, classIdx := range encoded {
		s += a.Representative(classIdx)
	}
	return s
}

func matchesAt(clusters []string, pos int, pattern []string) bool {
	if pos+len(pattern) > len(clusters) {
		return false
	}
	for i, p := range pattern {
		if clusters[pos+i] != p {
			return false
		}
	}
	return true
}

// Clusters splits s into extended grapheme clusters per UAX #29.
func Clusters(s string) []string {
	clusters := make([]string, 0, len(s))
	seg := graphemes.FromString(s)
	for seg.Next() {
		clusters = append(clusters, seg.Value())
	}
	return clusters
}

// primeSequence returns the first n positive primes (2, 3, 5, 7, ...), used
// to assign smaller primes to smaller class indices.
func primeSequence(n int) []uint64 {
	primes := make([]uint64, 0, n)
	candidate := uint64(2)
	for len(primes) < n {
		if isPrime(candidate) {
			primes = append(primes, candidate)
		}
		candidate++
	}
	return primes
}

func isPrime(n uint64) bool {
	if n < 2 {
		return false
	}
	if n%2 == 0 {
		return n == 2
	}
	for d := uint64(3); d*d <= n; d += 2 {
		if n%d == 0 {
			return false
		}
	}
	return true
}
