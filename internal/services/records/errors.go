// File: internal/services/records/errors.go
package records

import (
	"errors"
	"fmt"
)

type ErrorType string

const (
	ErrTypeNotFound    ErrorType = "NOT_FOUND"
	ErrTypeValidation  ErrorType = "VALIDATION"
	ErrTypeUnavailable ErrorType = "UNAVAILABLE"
	ErrTypeInternal    ErrorType = "INTERNAL"
)

// RecordError carries the failure class across the service boundary so the
// HTTP layer can pick a status code without matching message strings.
type RecordError struct {
	Type      ErrorType
	Operation string
	Message   string
	Cause     error
}

func (e *RecordError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("records %s error in %s: %s (caused by: %v)",
			e.Type, e.Operation, e.Message, e.Cause)
	}
	return fmt.Sprintf("records %s error in %s: %s", e.Type, e.Operation, e.Message)
}

func (e *RecordError) Unwrap() error { return e.Cause }

func NewNotFoundError(operation string) *RecordError {
	return &RecordError{Type: ErrTypeNotFound, Operation: operation, Message: "medical record not found"}
}

func NewValidationError(operation, msg string) *RecordError {
	return &RecordError{Type: ErrTypeValidation, Operation: operation, Message: msg}
}

func NewUnavailableError(operation string, cause error) *RecordError {
	return &RecordError{Type: ErrTypeUnavailable, Operation: operation, Message: "no AI provider produced a response", Cause: cause}
}

func NewInternalError(operation string, cause error) *RecordError {
	return &RecordError{Type: ErrTypeInternal, Operation: operation, Message: "storage failure", Cause: cause}
}

func IsNotFound(err error) bool    { return hasType(err, ErrTypeNotFound) }
func IsValidation(err error) bool  { return hasType(err, ErrTypeValidation) }
func IsUnavailable(err error) bool { return hasType(err, ErrTypeUnavailable) }

func hasType(err error, t ErrorType) bool {
	var recErr *RecordError
	if errors.As(err, &recErr) {
		return recErr.Type == t
	}
	return false
}
