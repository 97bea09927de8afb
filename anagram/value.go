// Package anagram implements the prime-factor anagram value (AV) algebra:
// an unbounded positive integer equal to the product of primes assigned to
// each class index of an encoded string. Permutations of the same encoded
// string share an AV, and divisibility between two AVs corresponds to
// multiset containment between their class indices.
package anagram

import (
	"fmt"
	"math/big"
)

// Value is an anagram value: a positive arbitrary-precision integer formed
// by multiplying together the primes of an encoded string's class indices.
type Value struct {
	n *big.Int
}

// One is the anagram value of the empty encoded string.
func One() Value {
	return Value{n: big.NewInt(1)}
}

// FromEncoded computes AV(s) = product of prime(class) for class in s.
func FromEncoded(classes []int, prime func(classIndex int) uint64) Value {
	product := big.NewInt(1)
	factor := new(big.Int)
	for _, c := range classes {
		factor.SetUint64(prime(c))
		product.Mul(product, factor)
	}
	return Value{n: product}
}

// FromUint64 wraps a raw value, useful in tests and for the identity case.
func FromUint64(v uint64) Value {
	return Value{n: new(big.Int).SetUint64(v)}
}

// Mul returns the product of two anagram values (AV(x⊕y) = AV(x)·AV(y)).
func (v Value) Mul(other Value) Value {
	return Value{n: new(big.Int).Mul(v.n, other.n)}
}

// ExactDiv divides v by other, asserting the remainder is zero. Callers must
// only invoke this when DivisibleBy(other) holds.
func (v Value) ExactDiv(other Value) (Value, error) {
	quot, rem := new(big.Int).QuoRem(v.n, other.n, new(big.Int))
	if rem.Sign() != 0 {
		return Value{}, fmt.Errorf("anagram: %s is not evenly divisible by %s", v.n, other.n)
	}
	return Value{n: quot}, nil
}

// Mod returns v mod other.
func (v Value) Mod(other Value) Value {
	return Value{n: new(big.Int).Mod(v.n, other.n)}
}

// DivisibleBy reports whether other divides v exactly: the multiset of
// classes encoded by other is contained in that encoded by v.
func (v Value) DivisibleBy(other Value) bool {
	return new(big.Int).Mod(v.n, other.n).Sign() == 0
}

// Eq reports value equality.
func (v Value) Eq(other Value) bool {
	return v.n.Cmp(other.n) == 0
}

// Cmp compares two anagram values (-1, 0, +1), used to keep secondary-index
// buckets sorted.
func (v Value) Cmp(other Value) int {
	return v.n.Cmp(other.n)
}

// Key returns a canonical string suitable for use as a map key (primary
// index lookup).
func (v Value) Key() string {
	return v.n.Text(36)
}

// String renders the decimal value, mainly for diagnostics.
func (v Value) String() string {
	return v.n.String()
}

// BitLen reports the size of the value in bits. Neighborhood search does not
// use it: its containment scan runs to the end of each bucket.
func (v Value) BitLen() int {
	return v.n.BitLen()
}

// PrimeFactorCount returns the number of prime factors of v counted with
// multiplicity, given the full prime sequence in ascending order. Used by
// neighborhood search to bound an insertion-side quotient's size (at most
// d_A - |deleted| additional factors).
func (v Value) PrimeFactorCount(primesAscending []uint64) int {
	remaining := new(big.Int).Set(v.n)
	count := 0
	divisor := new(big.Int)
	for _, p := range primesAscending {
		if remaining.Cmp(big.NewInt(1)) == 0 {
			break
		}
		divisor.SetUint64(p)
		if divisor.Cmp(remaining) > 0 {
			break
		}
		for {
			q, r := new(big.Int).QuoRem(remaining, divisor, new(big.Int))
			if r.Sign() != 0 {
				break
			}
			remaining = q
			count++
		}
	}
	return count
}
