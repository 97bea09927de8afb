// Package signals provides a platform-portable catalog describing POSIX
// signal semantics (double-tap behavior, Windows fallback messaging) used by
// pkg/signals to implement graceful CLI shutdown between lexigraph queries.
package signals

import "fmt"

// WindowsFallback describes how to report a signal that has no Windows event.
type WindowsFallback struct {
	LogMessage    string
	OperationHint string
	TelemetryEvent string
	TelemetryTags  map[string]string
}

// Signal describes one catalog entry.
type Signal struct {
	ID                     string
	Name                   string
	WindowsEvent           *string
	WindowsFallback        *WindowsFallback
	DoubleTapWindowSeconds *int
	DoubleTapMessage       string
	DoubleTapExitCode      *int
}

// Catalog is a lookup table of known signals, keyed by lowercase catalog ID
// (e.g. "int", "term", "hup").
type Catalog struct {
	version string
	signals map[string]Signal
}

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }

var defaultCatalog = &Catalog{
	version: "1.0.0",
	signals: map[string]Signal{
		"int": {
			ID:                     "int",
			Name:                   "SIGINT",
			WindowsEvent:           strPtr("CTRL_C_EVENT"),
			DoubleTapWindowSeconds: intPtr(2),
			DoubleTapMessage:       "Press Ctrl+C again to force quit",
			DoubleTapExitCode:      intPtr(130),
		},
		"term": {
			ID:           "term",
			Name:         "SIGTERM",
			WindowsEvent: strPtr("CTRL_CLOSE_EVENT"),
		},
		"quit": {
			ID:           "quit",
			Name:         "SIGQUIT",
			WindowsEvent: strPtr("CTRL_BREAK_EVENT"),
		},
		"hup": {
			ID:   "hup",
			Name: "SIGHUP",
			WindowsFallback: &WindowsFallback{
				LogMessage:     "SIGHUP is not supported on Windows; config reload via signal is unavailable",
				OperationHint:  "restart the process to pick up configuration changes",
				TelemetryEvent: "lexigraph.signal.unsupported",
				TelemetryTags:  map[string]string{"signal": "hup"},
			},
		},
		"pipe": {
			ID:   "pipe",
			Name: "SIGPIPE",
			WindowsFallback: &WindowsFallback{
				LogMessage:     "SIGPIPE is not supported on Windows",
				OperationHint:  "broken output pipes surface as write errors instead",
				TelemetryEvent: "lexigraph.signal.unsupported",
				TelemetryTags:  map[string]string{"signal": "pipe"},
			},
		},
		"alrm": {
			ID:   "alrm",
			Name: "SIGALRM",
			WindowsFallback: &WindowsFallback{
				LogMessage:     "SIGALRM is not supported on Windows",
				OperationHint:  "use a context.WithTimeout instead of an alarm signal",
				TelemetryEvent: "lexigraph.signal.unsupported",
				TelemetryTags:  map[string]string{"signal": "alrm"},
			},
		},
		"usr1": {ID: "usr1", Name: "SIGUSR1"},
		"usr2": {ID: "usr2", Name: "SIGUSR2"},
	},
}

// GetDefaultCatalog returns the process-wide signal catalog.
func GetDefaultCatalog() *Catalog {
	return defaultCatalog
}

// GetSignal looks up a signal definition by catalog ID (e.g. "int", "term").
func (c *Catalog) GetSignal(id string) (*Signal, error) {
	sig, ok := c.signals[id]
	if !ok {
		return nil, fmt.Errorf("unknown signal id %q", id)
	}
	return &sig, nil
}

// Version returns the catalog's semantic version.
func (c *Catalog) Version() (string, error) {
	return c.version, nil
}
