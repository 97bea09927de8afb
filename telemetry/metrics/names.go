// Package metrics defines the stable metric names, units, and tag keys
// lexigraph emits through telemetry.System.
package metrics

// Query pipeline metrics.
const (
	QueryTotal                  = "query_total"
	QueryLatencyMs              = "query_latency_ms"
	QueryCandidatesTotal        = "query_candidates_total"
	QueryResultsTotal           = "query_results_total"
	QueryConfusableRescaleTotal = "query_confusable_rescale_total"
)

// Neighborhood search metrics (anagram-value deletion enumeration).
const (
	NeighborhoodSearchMs       = "neighborhood_search_ms"
	NeighborhoodCandidatesSeen = "neighborhood_candidates_seen"
	NeighborhoodDeletionsTotal = "neighborhood_deletions_total"
)

// Similarity scoring metrics.
const (
	SimilarityScoreMs    = "similarity_score_ms"
	SimilarityScoreTotal = "similarity_score_total"
)

// Loader metrics.
const (
	LoaderFilesLoadedTotal  = "loader_files_loaded_total"
	LoaderRowsAcceptedTotal = "loader_rows_accepted_total"
	LoaderRowsRejectedTotal = "loader_rows_rejected_total"
	LoaderFileRejectedTotal = "loader_file_rejected_total"
	LoaderLoadMs            = "loader_load_ms"
)

// Batch executor metrics.
const (
	BatchQueriesTotal = "batch_queries_total"
	BatchWorkerBusyMs = "batch_worker_busy_ms"
	BatchQueueDepth   = "batch_queue_depth"
)

// Query cache metrics.
const (
	QueryCacheHitsTotal      = "query_cache_hits_total"
	QueryCacheMissesTotal    = "query_cache_misses_total"
	QueryCacheEvictionsTotal = "query_cache_evictions_total"
	QueryCacheSize           = "query_cache_size"
)

// Text search metrics.
const (
	TextSearchSegmentMs      = "textsearch_segment_ms"
	TextSearchNgramsTotal    = "textsearch_ngrams_total"
	TextSearchLMRescoreTotal = "textsearch_lm_rescore_total"
)

// FulHash module metrics (xxh3/sha256 digests backing querycache fingerprints).
const (
	FulHashOperationsTotalXXH3128 = "fulhash_operations_total_xxh3_128"
	FulHashOperationsTotalSHA256  = "fulhash_operations_total_sha256"
	FulHashHashStringTotal        = "fulhash_hash_string_total"
	FulHashBytesHashedTotal       = "fulhash_bytes_hashed_total"
	FulHashOperationMs            = "fulhash_operation_ms"
)

// Error handling metrics.
const (
	ErrorHandlingWrapsTotal = "error_handling_wraps_total"
	ErrorHandlingWrapMs     = "error_handling_wrap_ms"
)

// Metric units.
const (
	UnitCount   = "count"
	UnitMs      = "ms"
	UnitSeconds = "seconds"
	UnitBytes   = "bytes"
	UnitPercent = "percent"
)

// Standard tag keys.
const (
	TagStatus    = "status"
	TagComponent = "component"
	TagOperation = "operation"
	TagCategory  = "category"
	TagAlgorithm = "algorithm"
	TagErrorType = "error_type"
	TagPhase     = "phase"
	TagResult    = "result"
	TagReason    = "reason"
)

// Standard tag values.
const (
	StatusSuccess = "success"
	StatusFailure = "failure"
	StatusError   = "error"
)

// Result values for TagResult.
const (
	ResultSuccess = "success"
	ResultError   = "error"
)

// Error type values for TagErrorType.
const (
	ErrorTypeValidation = "validation"
	ErrorTypeIO         = "io"
	ErrorTypeTimeout    = "timeout"
	ErrorTypeOther      = "other"
)

// Query pipeline phase values for TagPhase.
const (
	PhaseEncode   = "encode"
	PhaseNeighbor = "neighbor"
	PhaseScore    = "score"
	PhaseRank     = "rank"
)
