package core

import (
	"errors"
	"fmt"
)

// ErrorCategory classifies errors for handling decisions.
type ErrorCategory string

const (
	ErrCatRouting   ErrorCategory = "routing"   // Unparseable or unknown command line
	ErrCatExecution ErrorCategory = "execution" // Failure inside a context operation
	ErrCatTimeout   ErrorCategory = "timeout"   // Operation exceeded its wall-clock budget
	ErrCatState     ErrorCategory = "state"     // Conflicting or invalid session state
	ErrCatNotFound  ErrorCategory = "not_found" // Resource not found
	ErrCatInternal  ErrorCategory = "internal"  // Unexpected internal error
)

// DomainError represents a structured error from the domain layer.
type DomainError struct {
	Category ErrorCategory
	Code     string
	Message  string
	Cause    error
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %s (%v)", e.Category, e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Category, e.Code, e.Message)
}

// Unwrap returns the underlying cause.
func (e *DomainError) Unwrap() error {
	return e.Cause
}

// Is checks if this error matches a target.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Category == t.Category && e.Code == t.Code
}

// WithCause wraps an underlying error.
func (e *DomainError) WithCause(cause error) *DomainError {
	e.Cause = cause
	return e
}

// ErrRouting creates a routing error. Routing errors are always recoverable:
// the input line is restored and the terminal bell is rung.
func ErrRouting(code, message string) *DomainError {
	return &DomainError{
		Category: ErrCatRouting,
		Code:     code,
		Message:  message,
	}
}

// ErrExecution creates an execution error.
func ErrExecution(code, message string) *DomainError {
	return &DomainError{
		Category: ErrCatExecution,
		Code:     code,
		Message:  message,
	}
}

// ErrTimeout creates a timeout error.
func ErrTimeout(message string) *DomainError {
	return &DomainError{
		Category: ErrCatTimeout,
		Code:     "TIMEOUT",
		Message:  message,
	}
}

// ErrState creates a state error.
func ErrState(code, message string) *DomainError {
	return &DomainError{
		Category: ErrCatState,
		Code:     code,
		Message:  message,
	}
}

// ErrNotFound creates a not found error.
func ErrNotFound(resource, id string) *DomainError {
	return &DomainError{
		Category: ErrCatNotFound,
		Code:     "NOT_FOUND",
		Message:  fmt.Sprintf("%s not found: %s", resource, id),
	}
}

// GetCategory extracts the error category.
func GetCategory(err error) ErrorCategory {
	var domErr *DomainError
	if errors.As(err, &domErr) {
		return domErr.Category
	}
	return ErrCatInternal
}

// IsCategory checks if an error belongs to a category.
func IsCategory(err error, cat ErrorCategory) bool {
	return GetCategory(err) == cat
}

// HasCode checks if an error carries a specific code.
func HasCode(err error, code string) bool {
	var domErr *DomainError
	if errors.As(err, &domErr) {
		return domErr.Code == code
	}
	return false
}

// Predefined error codes
const (
	CodeUnknownCommand = "UNKNOWN_COMMAND"
	CodeUnknownMethod  = "UNKNOWN_METHOD"
	CodeMethodDenied   = "METHOD_DENIED"
	CodeBadArgument    = "BAD_ARGUMENT"
	CodeEmptyShell     = "EMPTY_SHELL_COMMAND"
	CodePromptPending  = "PROMPT_PENDING"
	CodePromptClosed   = "PROMPT_CLOSED"
	CodeCommandFailed  = "COMMAND_FAILED"
	CodeStateStore     = "STATE_STORE"
)
