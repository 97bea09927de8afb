// Package batch shards independent queries across a fixed-size worker pool,
// preserving input order in the output. A single_thread mode runs on the
// calling goroutine and consults the per-query cache.
package batch

import (
	"sync"
	"time"

	"github.com/fulmenhq/lexigraph/alphabet"
	"github.com/fulmenhq/lexigraph/lexindex"
	"github.com/fulmenhq/lexigraph/query"
	"github.com/fulmenhq/lexigraph/querycache"
	"github.com/fulmenhq/lexigraph/telemetry"
	"github.com/fulmenhq/lexigraph/telemetry/metrics"
	"github.com/fulmenhq/lexigraph/vocabulary"
)

// Options controls batch execution.
type Options struct {
	// Workers bounds pool size; <=0 defaults to runtime.NumCPU()-equivalent
	// sizing left to the caller (a fixed default of 4 here, since the
	// teacher's own worker pools take an explicit size rather than probing
	// the runtime).
	Workers int

	SingleThread bool
	Cache        *querycache.Cache[[]query.Match] // consulted only when SingleThread
}

// DefaultWorkers is used when Options.Workers is unset.
const DefaultWorkers = 4

// Run executes params over every input in inputs, returning one result per
// input in the same order regardless of completion order.
func Run(inputs []string, alpha *alphabet.Alphabet, idx *lexindex.Index, store *vocabulary.Store, params query.Parameters, opts Options) [][]query.Match {
	telemetry.EmitCounter(metrics.BatchQueriesTotal, float64(len(inputs)), nil)
	results := make([][]query.Match, len(inputs))

	if opts.SingleThread {
		for i, input := range inputs {
			results[i] = runOne(input, alpha, idx, store, params, opts.Cache)
		}
		return results
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}
	if workers > len(inputs) {
		workers = len(inputs)
	}
	if workers == 0 {
		return results
	}

	jobs := make(chan int, len(inputs))
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := range jobs {
				busyStart := time.Now()
				results[i] = query.Run(inputs[i], alpha, idx, store, params)
				telemetry.EmitHistogram(metrics.BatchWorkerBusyMs, time.Since(busyStart), nil)
			}
		}()
	}
	for i := range inputs {
		jobs <- i
	}
	telemetry.EmitGauge(metrics.BatchQueueDepth, float64(len(jobs)), nil)
	close(jobs)
	wg.Wait()

	return results
}

func runOne(input string, alpha *alphabet.Alphabet, idx *lexindex.Index, store *vocabulary.Store, params query.Parameters, cache *querycache.Cache[[]query.Match]) []query.Match {
	if cache == nil {
		return query.Run(input, alpha, idx, store, params)
	}

	encoded := alpha.Encode(input)
	key := querycache.Key(encoded, relevantParamsBytes(params))
	if cached, ok := cache.Get(key); ok {
		return cached
	}

	result := query.Run(input, alpha, idx, store, params)
	cache.Put(key, result)
	return result
}

// relevantParamsBytes serializes only the parameters that affect a query's
// result (not, say, ConfusablePatterns' full content cost if callers choose
// to key on a precomputed hash for those separately) into a stable byte
// sequence suitable for cache-key hashing.
func relevantParamsBytes(p query.Parameters) []byte {
	buf := make([]byte, 0, 64)
	buf = appendFloat(buf, p.ScoreThreshold)
	buf = appendFloat(buf, p.CutoffThreshold)
	buf = appendFloat(buf, p.FreqWeight)
	buf = appendInt(buf, p.MaxMatches)
	buf = appendBound(buf, p.MaxAnagramDistance)
	buf = appendBound(buf, p.MaxEditDistance)
	if p.StopCriterion {
		buf = append(buf, 1)
	}
	return buf
}

func appendFloat(buf []byte, f float64) []byte {
	bits := int64(f * 1e6)
	return appendInt(buf, int(bits))
}

func appendInt(buf []byte, n int) []byte {
	return append(buf, byte(n), byte(n>>8), byte(n>>16), byte(n>>24))
}

func appendBound(buf []byte, b query.Bound) []byte {
	if b.IsRatio {
		buf = append(buf, 1)
		buf = appendFloat(buf, b.Ratio)
	} else {
		buf = append(buf, 0)
		buf = appendInt(buf, b.Abs)
	}
	return buf
}
