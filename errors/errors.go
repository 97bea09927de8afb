// Package errors defines the error taxonomy lexigraph distinguishes per its
// error handling design: configuration errors (fatal at load time),
// input-decoding errors (skip-and-report), and data-format errors (abort the
// offending file's load atomically). There is deliberately no "query-time
// resource error" constructor: the query pipeline's budgets are enforced
// structurally and never fail by allocation.
package errors

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/fulmenhq/lexigraph/telemetry"
	"github.com/fulmenhq/lexigraph/telemetry/metrics"
)

// Severity classifies an ErrorEnvelope's operational impact.
type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// SeverityLevel maps severity names to numeric levels for comparison.
var SeverityLevel = map[Severity]int{
	SeverityInfo:     0,
	SeverityLow:      1,
	SeverityMedium:   2,
	SeverityHigh:     3,
	SeverityCritical: 4,
}

// Kind distinguishes the three reportable error categories of the error
// handling design. A query-time resource error has no Kind: no constructor
// produces one.
type Kind string

const (
	// KindConfiguration: alphabet missing, weights non-finite, distance
	// budget negative, build preconditions not met. Fatal at load time.
	KindConfiguration Kind = "configuration"
	// KindInputDecoding: invalid UTF-8 in a streamed record. The record is
	// skipped and reported; processing continues.
	KindInputDecoding Kind = "input_decoding"
	// KindDataFormat: malformed row in a TSV input. The offending file's
	// load is rejected atomically; no partial vocabulary is admitted.
	KindDataFormat Kind = "data_format"
)

// ErrorEnvelope is a structured, loggable error carrying the kind, a stable
// code, human message, and optional location/context.
type ErrorEnvelope struct {
	Kind          Kind                   `json:"kind"`
	Code          string                 `json:"code"`
	Message       string                 `json:"message"`
	Details       map[string]interface{} `json:"details,omitempty"`
	File          string                 `json:"file,omitempty"`
	Line          int                    `json:"line,omitempty"`
	Timestamp     string                 `json:"timestamp"`
	Severity      Severity               `json:"severity,omitempty"`
	SeverityLevel int                    `json:"severityLevel,omitempty"`
	CorrelationID string                 `json:"correlationId,omitempty"`
	Context       map[string]interface{} `json:"context,omitempty"`
	Original      interface{}            `json:"original,omitempty"`
}

func newEnvelope(kind Kind, code, message string) *ErrorEnvelope {
	wrapStart := time.Now()
	telemetry.EmitCounter(metrics.ErrorHandlingWrapsTotal, 1, map[string]string{"kind": string(kind)})
	defer func() {
		telemetry.EmitHistogram(metrics.ErrorHandlingWrapMs, time.Since(wrapStart), nil)
	}()
	return &ErrorEnvelope{
		Kind:      kind,
		Code:      code,
		Message:   message,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

// Configuration constructs a KindConfiguration error, e.g. a missing
// alphabet file, a non-finite component weight, or a negative distance
// budget caught before build().
func Configuration(code, message string) *ErrorEnvelope {
	return newEnvelope(KindConfiguration, code, message).withSeverity(SeverityCritical)
}

// InputDecoding constructs a KindInputDecoding error for a single malformed
// record that should be skipped, not a whole file abort.
func InputDecoding(code, message, file string, line int) *ErrorEnvelope {
	e := newEnvelope(KindInputDecoding, code, message).withSeverity(SeverityLow)
	e.File = file
	e.Line = line
	return e
}

// DataFormat constructs a KindDataFormat error aborting the load of file at
// line; the caller must not admit any rows from that file.
func DataFormat(code, message, file string, line int) *ErrorEnvelope {
	e := newEnvelope(KindDataFormat, code, message).withSeverity(SeverityHigh)
	e.File = file
	e.Line = line
	return e
}

func (e *ErrorEnvelope) withSeverity(s Severity) *ErrorEnvelope {
	e.Severity = s
	e.SeverityLevel = SeverityLevel[s]
	return e
}

// WithCorrelationID attaches a correlation identifier.
func (e *ErrorEnvelope) WithCorrelationID(id string) *ErrorEnvelope {
	e.CorrelationID = id
	return e
}

// WithContext adds structured context, rejecting values that aren't string,
// number, boolean, or a string array (keeps the envelope JSON-stable).
func (e *ErrorEnvelope) WithContext(context map[string]interface{}) (*ErrorEnvelope, error) {
	if context == nil {
		e.Context = nil
		return e, nil
	}
	validated := make(map[string]interface{}, len(context))
	var problems []string
	for key, value := range context {
		if err := validateContextValue(value); err != nil {
			problems = append(problems, fmt.Sprintf("key %q: %s", key, err))
			continue
		}
		validated[key] = value
	}
	e.Context = validated
	if len(problems) > 0 {
		return e, fmt.Errorf("context validation failed: %s", strings.Join(problems, "; "))
	}
	return e, nil
}

func validateContextValue(value interface{}) error {
	switch v := value.(type) {
	case string, float64, int, bool:
		return nil
	case []interface{}:
		for i, elem := range v {
			if _, ok := elem.(string); !ok {
				return fmt.Errorf("array element at index %d is not a string (got %T)", i, elem)
			}
		}
		return nil
	case []string:
		return nil
	default:
		return fmt.Errorf("invalid type %T, must be string, number, boolean, or string array", value)
	}
}

// WithOriginal records the wrapped original error's message.
func (e *ErrorEnvelope) WithOriginal(original error) *ErrorEnvelope {
	if original != nil {
		e.Original = original.Error()
	}
	return e
}

// WithDetails attaches free-form details.
func (e *ErrorEnvelope) WithDetails(details map[string]interface{}) *ErrorEnvelope {
	e.Details = details
	return e
}

// Error implements the error interface.
func (e *ErrorEnvelope) Error() string {
	if e.File != "" {
		return fmt.Sprintf("[%s:%s] %s (%s:%d)", e.Kind, e.Code, e.Message, e.File, e.Line)
	}
	return fmt.Sprintf("[%s:%s] %s", e.Kind, e.Code, e.Message)
}

// MarshalJSON ensures proper JSON serialization without infinite recursion.
func (e *ErrorEnvelope) MarshalJSON() ([]byte, error) {
	type Alias ErrorEnvelope
	return json.Marshal((*Alias)(e))
}
