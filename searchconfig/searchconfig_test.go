package searchconfig

import (
	"os"
	"path/filepath"
	"testing"
)

func TestResolve_Defaults(t *testing.T) {
	values, err := Resolve("")
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if values != Defaults() {
		t.Fatalf("expected built-in defaults, got %+v", values)
	}
}

func TestResolve_UserOverride(t *testing.T) {
	userContent := `search:
  max_matches: 25
  stop_on_exact: true
`
	tmpDir := t.TempDir()
	userFile := filepath.Join(tmpDir, "lexigraph-search.yaml")
	if err := os.WriteFile(userFile, []byte(userContent), 0o600); err != nil {
		t.Fatalf("write user file: %v", err)
	}

	values, err := Resolve(userFile)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if values.MaxMatches != 25 {
		t.Fatalf("expected user override max_matches=25, got %d", values.MaxMatches)
	}
	if !values.StopOnExact {
		t.Fatalf("expected user override stop_on_exact=true")
	}
	// Fields untouched by the override file keep their defaults layered beneath it.
	if values.MaxAnagramDistance != Defaults().MaxAnagramDistance {
		t.Fatalf("expected max_anagram_distance to keep its default, got %d", values.MaxAnagramDistance)
	}
}

func TestResolve_EnvOverride(t *testing.T) {
	t.Setenv("LEXIGRAPH_MAX_MATCHES", "7")
	t.Setenv("LEXIGRAPH_FREQ_WEIGHT", "0.5")

	values, err := Resolve("")
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if values.MaxMatches != 7 {
		t.Fatalf("expected env override max_matches=7, got %d", values.MaxMatches)
	}
	if values.FreqWeight != 0.5 {
		t.Fatalf("expected env override freq_weight=0.5, got %v", values.FreqWeight)
	}
}

func TestResolve_EnvOverride_WinsOverUserFile(t *testing.T) {
	userContent := `search:
  max_matches: 25
`
	tmpDir := t.TempDir()
	userFile := filepath.Join(tmpDir, "lexigraph-search.yaml")
	if err := os.WriteFile(userFile, []byte(userContent), 0o600); err != nil {
		t.Fatalf("write user file: %v", err)
	}
	t.Setenv("LEXIGRAPH_MAX_MATCHES", "9")

	values, err := Resolve(userFile)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if values.MaxMatches != 9 {
		t.Fatalf("expected env var to win over user file, got %d", values.MaxMatches)
	}
}

func TestResolve_SchemaViolation(t *testing.T) {
	t.Setenv("LEXIGRAPH_MAX_MATCHES", "-1")

	if _, err := Resolve(""); err == nil {
		t.Fatalf("expected an error for a negative max_matches")
	}
}

func TestResolve_InvalidEnvValue(t *testing.T) {
	t.Setenv("LEXIGRAPH_MAX_ANAGRAM_DISTANCE", "not-an-int")

	if _, err := Resolve(""); err == nil {
		t.Fatalf("expected an error for a non-integer env value")
	}
}
