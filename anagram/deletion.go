package anagram

// Deletion pairs the anagram value left behind after removing a multisubset
// of classes with the number of symbols removed (its size).
type Deletion struct {
	Value Value
	Size  int
}

// DeletionEnumeration produces, for an encoded string and a distance budget
// d, one Deletion per distinct multisubset of its class indices of size in
// [0, d]. Because every class carries a unique prime, distinct multisubsets
// necessarily produce distinct quotient values, so no explicit
// deduplication is required: unique prime factorization guarantees it.
//
// primeOf maps a class index to its prime; classes is the encoded string's
// class-index sequence (as produced by alphabet.Encode).
func DeletionEnumeration(classes []int, d int, primeOf func(classIndex int) uint64) []Deletion {
	if d < 0 {
		d = 0
	}

	counts := make(map[int]int)
	for _, c := range classes {
		counts[c]++
	}
	classIndices := make([]int, 0, len(counts))
	for c := range counts {
		classIndices = append(classIndices, c)
	}

	full := FromEncoded(classes, primeOf)

	results := make([]Deletion, 0)
	var removedPrime []Value

	var recurse func(i, remainingBudget, removedSoFar int)
	recurse = func(i, remainingBudget, removedSoFar int) {
		if i == len(classIndices) {
			product := One()
			for _, p := range removedPrime {
				product = product.Mul(p)
			}
			quotient, err := full.ExactDiv(product)
			if err != nil {
				return
			}
			results = append(results, Deletion{Value: quotient, Size: removedSoFar})
			return
		}

		class := classIndices[i]
		maxTake := counts[class]
		if maxTake > remainingBudget {
			maxTake = remainingBudget
		}

		prime := FromUint64(primeOf(class))
		for take := 0; take <= maxTake; take++ {
			for k := 0; k < take; k++ {
				removedPrime = append(removedPrime, prime)
			}
			recurse(i+1, remainingBudget-take, removedSoFar+take)
			removedPrime = removedPrime[:len(removedPrime)-take]
		}
	}

	recurse(0, d, 0)
	return results
}
