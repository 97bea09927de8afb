/*
Package similarity provides text similarity scoring utilities
following the Fulmen Helper Library Standard (2025.10.2).

# Overview

The similarity package implements standardized text comparison capabilities
for fuzzy matching, "Did you mean...?" suggestions, and Unicode-aware text
processing. It provides cross-language API parity with pyfulmen and tsfulmen
helper libraries.

# Text Similarity

The package implements Levenshtein distance calculation using the Wagner-Fischer
dynamic programming algorithm with Unicode-aware character counting.

Distance returns the edit distance between two strings:

	dist := similarity.Distance("kitten", "sitting") // Returns: 3

Score returns a normalized similarity score from 0.0 (different) to 1.0 (identical):

	score := similarity.Score("kitten", "sitting") // Returns: 0.5714...

# Performance

Distance and Score operations target ≤0.5ms p95 latency for 128-character strings
per Crucible standard. Actual performance significantly exceeds this target:

Benchmark results (M1 Pro, 12 cores):
  - Distance (128 chars): ~28 μs/op (17x faster than target)
  - Score (128 chars):    ~28 μs/op (17x faster than target)
  - Distance (short):     ~125 ns/op

Run benchmarks with: go test -bench=. ./foundry/similarity/

Memory allocations are minimal:
  - Short strings: 96-128 B/op, 2 allocs
  - 128-char strings: ~3.3 KB/op, 4 allocs

# Unified API (v2.0.0+)

The v2 API provides algorithm-specific distance and score calculations
following the Crucible Foundry Similarity Standard v2.0.0:

	// Distance-based algorithms
	dist, _ := similarity.DistanceWithAlgorithm("hello", "world",
		similarity.AlgorithmLevenshtein)

	dist, _ := similarity.DistanceWithAlgorithm("hello", "ehllo",
		similarity.AlgorithmDamerauOSA) // Optimal String Alignment

	dist, _ := similarity.DistanceWithAlgorithm("CA", "ABC",
		similarity.AlgorithmDamerauUnrestricted) // True Damerau-Levenshtein

	// Score-based algorithms (similarity from 0.0 to 1.0)
	score, _ := similarity.ScoreWithAlgorithm("martha", "marhta",
		similarity.AlgorithmJaroWinkler, nil)

	score, _ := similarity.ScoreWithAlgorithm("hello", "hello world",
		similarity.AlgorithmSubstring, nil)

Supported algorithms:
  - AlgorithmLevenshtein: Classic edit distance (insertions, deletions, substitutions)
  - AlgorithmDamerauOSA: Optimal String Alignment (adds adjacent transpositions)
  - AlgorithmDamerauUnrestricted: True Damerau-Levenshtein (unrestricted transpositions)
  - AlgorithmJaroWinkler: Similarity metric optimized for short strings with common prefixes
  - AlgorithmSubstring: Longest common substring matching

See ADR-0002 and ADR-0003 for algorithm implementation details and performance benchmarks.

# Telemetry (Optional)

The package supports opt-in counter-only telemetry following ADR-0008 Pattern 1
(performance-sensitive, hot-loop eligible). Telemetry provides production visibility
into algorithm usage, string length distribution, and API misuse without significant
performance impact.

Enable telemetry during application initialization:

	sys, _ := telemetry.NewSystem(telemetry.DefaultConfig())
	similarity.EnableTelemetry(sys)

	// Now all similarity operations emit counters:
	_, _ = similarity.DistanceWithAlgorithm("hello", "world",
		similarity.AlgorithmLevenshtein)
	// Emits: foundry.similarity.distance.calls{algorithm=levenshtein}
	// Emits: foundry.similarity.string_length{bucket=tiny,algorithm=levenshtein}

Telemetry is disabled by default (zero overhead). When enabled, overhead is ~1μs per
operation (acceptable for typical use cases like CLI suggestions and spell checking).

Metrics emitted:
  - foundry.similarity.distance.calls: Counter of DistanceWithAlgorithm calls by algorithm
  - foundry.similarity.score.calls: Counter of ScoreWithAlgorithm calls by algorithm
  - foundry.similarity.string_length: Counter of operations by string length bucket
  - foundry.similarity.fast_path: Counter of fast path hits (identical strings)
  - foundry.similarity.edge_case: Counter of edge cases (empty strings)
  - foundry.similarity.error: Counter of API misuse errors

For applications with ultra-low latency requirements, keep telemetry disabled (default).
See phase3-telemetry-backlog.md for instrumentation details and overhead analysis.

# Algorithm Details

Levenshtein Distance:
  - Wagner-Fischer dynamic programming algorithm
  - Two-row space optimization: O(min(m,n)) space
  - Unicode-aware using rune slices for grapheme counting

Inputs are compared exactly as given: the package does no whitespace
trimming, case folding or accent stripping.

# Conformance

Standard: Crucible Foundry Similarity Standard v2.0.0 (2025.10.3)
  - v1 API (Distance, Score): Standard v1.0.0 (2025.10.2) - Stable
  - v2 API (DistanceWithAlgorithm, ScoreWithAlgorithm): Standard v2.0.0 (2025.10.3) - Stable

Module: lexigraph/foundry/similarity
Version: 0.1.5+
Status: Stable

# References

  - Levenshtein Distance: https://en.wikipedia.org/wiki/Levenshtein_distance
  - Wagner-Fischer Algorithm: https://en.wikipedia.org/wiki/Wagner–Fischer_algorithm
  - Unicode Normalization: https://unicode.org/reports/tr15/
  - Unicode Case Folding: https://www.unicode.org/reports/tr21/tr21-5.html
*/
package similarity
