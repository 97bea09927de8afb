package logging

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// GenerateCorrelationID generates a time-sortable UUIDv7 for tagging a batch
// run or CLI invocation across its log lines.
//
// UUIDv7 embeds a timestamp in its first 48 bits, so correlation IDs sort
// chronologically and aggregate cleanly in any log viewer.
func GenerateCorrelationID() string {
	return uuid.Must(uuid.NewV7()).String()
}

// IsValidCorrelationID reports whether s parses as a UUID (any version).
func IsValidCorrelationID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}

type correlationIDKey struct{}

// WithCorrelationID returns a context carrying id, retrievable by Logger.WithContext.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationIDKey{}, id)
}

// CorrelationIDFromContext retrieves a correlation ID attached by WithCorrelationID.
func CorrelationIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(correlationIDKey{}).(string)
	return id, ok
}

// NewRunContext is a convenience wrapper generating a fresh correlation ID
// and attaching it to ctx, for use at the start of a batch run or CLI command.
func NewRunContext(ctx context.Context) (context.Context, string) {
	id := GenerateCorrelationID()
	return WithCorrelationID(ctx, id), id
}

// ValidateCorrelationID returns an error if id is not a well-formed UUID.
func ValidateCorrelationID(id string) error {
	if id == "" {
		return fmt.Errorf("correlation ID is empty")
	}
	if !IsValidCorrelationID(id) {
		return fmt.Errorf("invalid correlation ID format: %q", id)
	}
	return nil
}
