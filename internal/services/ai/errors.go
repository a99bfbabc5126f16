// File: internal/services/ai/errors.go
package ai

import (
	"errors"
	"fmt"
)

type ErrorType string

const (
	ErrTypeConfig      ErrorType = "CONFIG"
	ErrTypeNetwork     ErrorType = "NETWORK"
	ErrTypeProvider    ErrorType = "PROVIDER"
	ErrTypeUnavailable ErrorType = "UNAVAILABLE"
)

type AIError struct {
	Type      ErrorType
	Code      int
	Message   string
	Provider  string
	Operation string
	Cause     error
}

func (e *AIError) Error() string {
	scope := e.Operation
	if e.Provider != "" {
		scope = e.Provider + " " + e.Operation
	}
	if e.Cause != nil {
		return fmt.Sprintf("AI %s error in %s: %s (caused by: %v)",
			e.Type, scope, e.Message, e.Cause)
	}
	return fmt.Sprintf("AI %s error in %s: %s", e.Type, scope, e.Message)
}

func (e *AIError) Unwrap() error { return e.Cause }

func NewConfigError(msg string) *AIError {
	return &AIError{Type: ErrTypeConfig, Message: msg, Operation: "config"}
}

func NewProviderError(provider, operation, msg string, cause error) *AIError {
	return &AIError{Type: ErrTypeProvider, Provider: provider, Operation: operation, Message: msg, Cause: cause}
}

func NewUnavailableError(operation string) *AIError {
	return &AIError{Type: ErrTypeUnavailable, Operation: operation, Message: "no provider produced a response"}
}

// IsUnavailable reports whether err means every provider was skipped or
// failed, including the none-configured case.
func IsUnavailable(err error) bool {
	var aiErr *AIError
	if errors.As(err, &aiErr) {
		return aiErr.Type == ErrTypeUnavailable || aiErr.Type == ErrTypeConfig
	}
	return false
}
