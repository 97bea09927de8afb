package metrics_test

import (
	"strings"
	"testing"

	"github.com/fulmenhq/lexigraph/telemetry/metrics"
)

func TestQueryMetricNames(t *testing.T) {
	tests := []struct {
		name     string
		metric   string
		wantUnit string
	}{
		{"query total", metrics.QueryTotal, metrics.UnitCount},
		{"query latency", metrics.QueryLatencyMs, metrics.UnitMs},
		{"query candidates", metrics.QueryCandidatesTotal, metrics.UnitCount},
		{"query results", metrics.QueryResultsTotal, metrics.UnitCount},
		{"confusable rescale", metrics.QueryConfusableRescaleTotal, metrics.UnitCount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if strings.ToLower(tt.metric) != tt.metric {
				t.Errorf("metric %q should be lowercase snake_case", tt.metric)
			}
			if strings.Contains(tt.metric, " ") || strings.Contains(tt.metric, "-") {
				t.Errorf("metric %q should not contain spaces or hyphens", tt.metric)
			}
			if !strings.HasPrefix(tt.metric, "query_") {
				t.Errorf("metric %q should start with query_ prefix", tt.metric)
			}
		})
	}
}

func TestNeighborhoodMetricNames(t *testing.T) {
	for _, m := range []string{
		metrics.NeighborhoodSearchMs,
		metrics.NeighborhoodCandidatesSeen,
		metrics.NeighborhoodDeletionsTotal,
	} {
		if !strings.HasPrefix(m, "neighborhood_") {
			t.Errorf("metric %q should start with neighborhood_ prefix", m)
		}
	}
}

func TestLoaderMetricNames(t *testing.T) {
	for _, m := range []string{
		metrics.LoaderFilesLoadedTotal,
		metrics.LoaderRowsAcceptedTotal,
		metrics.LoaderRowsRejectedTotal,
		metrics.LoaderFileRejectedTotal,
		metrics.LoaderLoadMs,
	} {
		if !strings.HasPrefix(m, "loader_") {
			t.Errorf("metric %q should start with loader_ prefix", m)
		}
	}
}

func TestBatchMetricNames(t *testing.T) {
	for _, m := range []string{
		metrics.BatchQueriesTotal,
		metrics.BatchWorkerBusyMs,
		metrics.BatchQueueDepth,
	} {
		if !strings.HasPrefix(m, "batch_") {
			t.Errorf("metric %q should start with batch_ prefix", m)
		}
	}
}

func TestQueryCacheMetricNames(t *testing.T) {
	for _, m := range []string{
		metrics.QueryCacheHitsTotal,
		metrics.QueryCacheMissesTotal,
		metrics.QueryCacheEvictionsTotal,
		metrics.QueryCacheSize,
	} {
		if !strings.HasPrefix(m, "query_cache_") {
			t.Errorf("metric %q should start with query_cache_ prefix", m)
		}
	}
}

func TestFulHashMetricNames(t *testing.T) {
	tests := []struct {
		name     string
		metric   string
		wantUnit string
	}{
		{"xxh3_128 operations", metrics.FulHashOperationsTotalXXH3128, metrics.UnitCount},
		{"sha256 operations", metrics.FulHashOperationsTotalSHA256, metrics.UnitCount},
		{"hash string total", metrics.FulHashHashStringTotal, metrics.UnitCount},
		{"bytes hashed", metrics.FulHashBytesHashedTotal, metrics.UnitBytes},
		{"operation latency", metrics.FulHashOperationMs, metrics.UnitMs},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !strings.HasPrefix(tt.metric, "fulhash_") {
				t.Errorf("metric %q should start with fulhash_ prefix", tt.metric)
			}
		})
	}
}

func TestLabelConstants(t *testing.T) {
	labels := map[string]string{
		"status":     metrics.TagStatus,
		"component":  metrics.TagComponent,
		"operation":  metrics.TagOperation,
		"phase":      metrics.TagPhase,
		"result":     metrics.TagResult,
		"error_type": metrics.TagErrorType,
		"reason":     metrics.TagReason,
	}

	for expected, actual := range labels {
		if actual != expected {
			t.Errorf("label constant mismatch: expected %q, got %q", expected, actual)
		}
	}
}

func TestPhaseValues(t *testing.T) {
	phases := []string{
		metrics.PhaseEncode,
		metrics.PhaseNeighbor,
		metrics.PhaseScore,
		metrics.PhaseRank,
	}
	expected := []string{"encode", "neighbor", "score", "rank"}

	for i, phase := range phases {
		if phase != expected[i] {
			t.Errorf("phase value mismatch at index %d: expected %q, got %q", i, expected[i], phase)
		}
	}
}

func TestResultValues(t *testing.T) {
	if metrics.ResultSuccess != "success" {
		t.Errorf("ResultSuccess should be %q, got %q", "success", metrics.ResultSuccess)
	}
	if metrics.ResultError != "error" {
		t.Errorf("ResultError should be %q, got %q", "error", metrics.ResultError)
	}
}

func TestErrorTypeValues(t *testing.T) {
	errorTypes := map[string]string{
		"validation": metrics.ErrorTypeValidation,
		"io":         metrics.ErrorTypeIO,
		"timeout":    metrics.ErrorTypeTimeout,
		"other":      metrics.ErrorTypeOther,
	}

	for expected, actual := range errorTypes {
		if actual != expected {
			t.Errorf("error type mismatch: expected %q, got %q", expected, actual)
		}
	}
}
