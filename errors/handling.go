package errors

import (
	"fmt"
	"log"
)

// ContextStrategy defines how WithContext validation failures are handled
// when the caller does not want to propagate the validation error itself
// (e.g. the loader attaching row context to a DataFormat error).
type ContextStrategy int

const (
	// StrategyLogWarning logs the validation problem but keeps the envelope.
	StrategyLogWarning ContextStrategy = iota
	// StrategyAppendToMessage appends the validation problem to the message.
	StrategyAppendToMessage
	// StrategySilent drops invalid context entries without comment.
	StrategySilent
)

// ErrorHandlingConfig configures ApplyContextWithHandling's behavior.
type ErrorHandlingConfig struct {
	ContextStrategy ContextStrategy
	Logger          *log.Logger
}

// DefaultErrorHandlingConfig returns sensible defaults.
func DefaultErrorHandlingConfig() *ErrorHandlingConfig {
	return &ErrorHandlingConfig{ContextStrategy: StrategyAppendToMessage, Logger: log.Default()}
}

// ApplyContextWithHandling attaches context to envelope, applying config's
// strategy if some entries are rejected by WithContext.
func ApplyContextWithHandling(envelope *ErrorEnvelope, context map[string]interface{}, config *ErrorHandlingConfig) *ErrorEnvelope {
	if config == nil {
		config = DefaultErrorHandlingConfig()
	}
	result, err := envelope.WithContext(context)
	if err == nil {
		return result
	}
	switch config.ContextStrategy {
	case StrategyLogWarning:
		if config.Logger != nil {
			config.Logger.Printf("warning: failed to set context: %v", err)
		}
	case StrategyAppendToMessage:
		envelope.Message = fmt.Sprintf("%s (context error: %v)", envelope.Message, err)
	case StrategySilent:
	}
	return envelope
}

// SafeWithContext attaches context using the default error handling config.
func SafeWithContext(envelope *ErrorEnvelope, context map[string]interface{}) *ErrorEnvelope {
	return ApplyContextWithHandling(envelope, context, nil)
}
