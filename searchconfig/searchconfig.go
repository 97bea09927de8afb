// Package searchconfig resolves the query.Parameters tunables (C13) through
// the teacher's layered config package: built-in defaults (embedded YAML)
// overlaid by an XDG/home/cwd config file, then by environment variables,
// validated against an embedded JSON Schema before any CLI flag sees it.
// A schema violation surfaces as an errors.Configuration error from Resolve;
// the CLI logs it and falls back to Defaults().
package searchconfig

import (
	_ "embed"

	"github.com/fulmenhq/lexigraph/config"
	lgerrors "github.com/fulmenhq/lexigraph/errors"
	"github.com/fulmenhq/lexigraph/schema"
)

//go:embed searchconfig.schema.json
var embeddedSchema []byte

// Values holds the resolvable query.Parameters tunables. CLI flags for
// -max-anagram-distance et al. use these as their default value, so the
// effective precedence is: embedded defaults < config file < environment
// variable < explicit CLI flag.
type Values struct {
	MaxAnagramDistance int
	MaxEditDistance    int
	MaxMatches         int
	ScoreThreshold     float64
	CutoffThreshold    float64
	StopOnExact        bool
	FreqWeight         float64
}

// Defaults returns the built-in values, used when no layered config can be
// resolved at all (e.g. the embedded defaults file itself is unreachable).
func Defaults() Values {
	return Values{
		MaxAnagramDistance: 2,
		MaxEditDistance:    4,
		MaxMatches:         10,
		ScoreThreshold:     0,
		CutoffThreshold:    0,
		StopOnExact:        false,
		FreqWeight:         0,
	}
}

var envSpecs = []config.EnvVarSpec{
	{Name: "LEXIGRAPH_MAX_ANAGRAM_DISTANCE", Path: []string{"search", "max_anagram_distance"}, Type: config.EnvInt},
	{Name: "LEXIGRAPH_MAX_EDIT_DISTANCE", Path: []string{"search", "max_edit_distance"}, Type: config.EnvInt},
	{Name: "LEXIGRAPH_MAX_MATCHES", Path: []string{"search", "max_matches"}, Type: config.EnvInt},
	{Name: "LEXIGRAPH_SCORE_THRESHOLD", Path: []string{"search", "score_threshold"}, Type: config.EnvFloat},
	{Name: "LEXIGRAPH_CUTOFF_THRESHOLD", Path: []string{"search", "cutoff_threshold"}, Type: config.EnvFloat},
	{Name: "LEXIGRAPH_STOP_ON_EXACT", Path: []string{"search", "stop_on_exact"}, Type: config.EnvBool},
	{Name: "LEXIGRAPH_FREQ_WEIGHT", Path: []string{"search", "freq_weight"}, Type: config.EnvFloat},
}

// Resolve loads the defaults < file < env layers and returns the merged
// Values. configPath, if non-empty, is tried before the standard
// XDG/home/cwd search locations; if empty, only the standard locations are
// considered (config.GetConfigPaths, app name "lexigraph").
func Resolve(configPath string) (Values, error) {
	envOverrides, err := config.LoadEnvOverrides(envSpecs)
	if err != nil {
		return Values{}, err
	}

	userPaths := config.GetConfigPaths()
	if configPath != "" {
		userPaths = append([]string{configPath}, userPaths...)
	}

	merged, diags, err := config.LoadLayeredConfig(config.LayeredConfigOptions{
		Category:     "search",
		Version:      "v1.0.0",
		DefaultsFile: "search-defaults.yaml",
		UserPaths:    userPaths,
		Schema:       embeddedSchema,
	}, envOverrides)
	if err != nil {
		return Values{}, lgerrors.Configuration("SEARCHCONFIG_LOAD_FAILED", err.Error())
	}
	if len(diags) > 0 {
		return Values{}, lgerrors.Configuration("SEARCHCONFIG_SCHEMA_VIOLATION", schema.DiagnosticsToValidationErrors(diags).Error())
	}

	return fromMap(merged), nil
}

func fromMap(merged map[string]any) Values {
	v := Defaults()
	search, ok := merged["search"].(map[string]any)
	if !ok {
		return v
	}
	if n, ok := asInt(search["max_anagram_distance"]); ok {
		v.MaxAnagramDistance = n
	}
	if n, ok := asInt(search["max_edit_distance"]); ok {
		v.MaxEditDistance = n
	}
	if n, ok := asInt(search["max_matches"]); ok {
		v.MaxMatches = n
	}
	if f, ok := asFloat(search["score_threshold"]); ok {
		v.ScoreThreshold = f
	}
	if f, ok := asFloat(search["cutoff_threshold"]); ok {
		v.CutoffThreshold = f
	}
	if b, ok := search["stop_on_exact"].(bool); ok {
		v.StopOnExact = b
	}
	if f, ok := asFloat(search["freq_weight"]); ok {
		v.FreqWeight = f
	}
	return v
}

// asInt accepts both int (runtime/env overrides, set via Go values directly)
// and float64 (YAML/JSON-decoded numeric literals) representations of an
// integer config value.
func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case float64:
		return int(n), true
	default:
		return 0, false
	}
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	default:
		return 0, false
	}
}
