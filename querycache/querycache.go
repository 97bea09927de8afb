// Package querycache implements the single-threaded per-query result
// cache: a mapping from (encoded input, relevant parameter hash) to a
// previously computed result. Per spec.md §4.11, write contention makes
// this cache a net loss under concurrent access, so it must be confined to
// the single-threaded execution path.
package querycache

import (
	"github.com/fulmenhq/lexigraph/fulhash"
	"github.com/fulmenhq/lexigraph/telemetry"
	"github.com/fulmenhq/lexigraph/telemetry/metrics"
)

// Cache is not safe for concurrent use; callers must confine it to a single
// goroutine (the batch executor's single_thread path).
type Cache[T any] struct {
	entries map[string]T
}

// New returns an empty cache.
func New[T any]() *Cache[T] {
	return &Cache[T]{entries: make(map[string]T)}
}

// Key derives a cache key from the encoded input and a byte-serialized
// view of whichever search parameters affect the result, hashed with
// xxh3-128 for a short, collision-resistant map key.
func Key(encodedInput []int, relevantParams []byte) string {
	buf := make([]byte, 0, len(encodedInput)*4+len(relevantParams))
	for _, c := range encodedInput {
		buf = append(buf, byte(c), byte(c>>8), byte(c>>16), byte(c>>24))
	}
	buf = append(buf, relevantParams...)
	digest, err := fulhash.Hash(buf, fulhash.WithAlgorithm(fulhash.XXH3_128))
	if err != nil {
		// Hash only fails for an unsupported algorithm, which cannot happen
		// with a constant known-good Option; fall back to a degenerate but
		// still-unique key rather than panicking on an unreachable path.
		return string(buf)
	}
	return digest.Hex()
}

// Get returns the cached result for key, if present.
func (c *Cache[T]) Get(key string) (T, bool) {
	v, ok := c.entries[key]
	if ok {
		telemetry.EmitCounter(metrics.QueryCacheHitsTotal, 1, nil)
	} else {
		telemetry.EmitCounter(metrics.QueryCacheMissesTotal, 1, nil)
	}
	return v, ok
}

// Put stores result under key, overwriting any prior entry.
func (c *Cache[T]) Put(key string, result T) {
	c.entries[key] = result
	telemetry.EmitGauge(metrics.QueryCacheSize, float64(len(c.entries)), nil)
}

// Len reports the number of cached entries.
func (c *Cache[T]) Len() int {
	return len(c.entries)
}
