package core

import (
	"errors"
	"fmt"
)

// ErrorCategory classifies where in the pipeline an error originated.
type ErrorCategory int

const (
	ErrCategoryNone       ErrorCategory = iota // No error
	ErrCategoryParse                           // Dump not parseable or empty
	ErrCategoryDecision                        // Decision function declined or returned garbage
	ErrCategoryResolution                      // Selected element not relocatable
	ErrCategoryTimeout                         // Dump or decision call timed out
	ErrCategoryDevice                          // adb / device transport failure
	ErrCategoryConfig                          // Invalid configuration
)

// String returns the string representation of ErrorCategory.
func (c ErrorCategory) String() string {
	switch c {
	case ErrCategoryNone:
		return "none"
	case ErrCategoryParse:
		return "parse"
	case ErrCategoryDecision:
		return "decision"
	case ErrCategoryResolution:
		return "resolution"
	case ErrCategoryTimeout:
		return "timeout"
	case ErrCategoryDevice:
		return "device"
	case ErrCategoryConfig:
		return "config"
	default:
		return "unknown"
	}
}

// Transient reports whether errors of this category are safe to retry by
// re-running the whole pipeline stage from scratch. Stale mid-pipeline
// state is never resumed.
func (c ErrorCategory) Transient() bool {
	return c == ErrCategoryTimeout
}

// ExecutionError represents a structured error with category and details.
type ExecutionError struct {
	Category ErrorCategory
	Code     string                 // Machine-readable code: malformed_dump, target_not_found, etc.
	Message  string                 // Human-readable message
	Details  map[string]interface{} // Additional context
	Cause    error                  // Underlying error
}

// Error implements the error interface.
func (e *ExecutionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *ExecutionError) Unwrap() error {
	return e.Cause
}

// Is matches by code so copies made with WithCause/WithDetails still
// compare equal to their sentinel.
func (e *ExecutionError) Is(target error) bool {
	var t *ExecutionError
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code
}

// WithCause returns a copy of the error with the given cause.
func (e *ExecutionError) WithCause(cause error) *ExecutionError {
	return &ExecutionError{
		Category: e.Category,
		Code:     e.Code,
		Message:  e.Message,
		Details:  e.Details,
		Cause:    cause,
	}
}

// WithMessage returns a copy of the error with a custom message.
func (e *ExecutionError) WithMessage(msg string) *ExecutionError {
	return &ExecutionError{
		Category: e.Category,
		Code:     e.Code,
		Message:  msg,
		Details:  e.Details,
		Cause:    e.Cause,
	}
}

// WithDetails returns a copy of the error with additional details.
func (e *ExecutionError) WithDetails(details map[string]interface{}) *ExecutionError {
	merged := make(map[string]interface{})
	for k, v := range e.Details {
		merged[k] = v
	}
	for k, v := range details {
		merged[k] = v
	}
	return &ExecutionError{
		Category: e.Category,
		Code:     e.Code,
		Message:  e.Message,
		Details:  merged,
		Cause:    e.Cause,
	}
}

// Predefined errors. Each kind carries its own human-readable message;
// callers surface these verbatim instead of a generic failure line.
var (
	// Parse stage (permanent - abort the dump step)
	ErrMalformedDump = &ExecutionError{
		Category: ErrCategoryParse,
		Code:     "malformed_dump",
		Message:  "accessibility dump is not well-formed markup",
	}
	ErrEmptyTree = &ExecutionError{
		Category: ErrCategoryParse,
		Code:     "empty_tree",
		Message:  "accessibility dump contains no UI nodes",
	}

	// Decision stage (abort - the user must retry the plan step)
	ErrNoSelection = &ExecutionError{
		Category: ErrCategoryDecision,
		Code:     "no_selection",
		Message:  "decision function did not choose a valid element",
	}

	// Resolution stage (abort the run step - never tap blind)
	ErrTargetNotFound = &ExecutionError{
		Category: ErrCategoryResolution,
		Code:     "target_not_found",
		Message:  "planned element could not be located on the current screen",
	}

	// Timeouts (transient - safe to retry the whole stage from scratch)
	ErrDumpTimeout = &ExecutionError{
		Category: ErrCategoryTimeout,
		Code:     "dump_timeout",
		Message:  "device did not produce a UI dump in time",
	}
	ErrDecisionTimeout = &ExecutionError{
		Category: ErrCategoryTimeout,
		Code:     "decision_timeout",
		Message:  "decision function did not respond in time",
	}

	// Device errors
	ErrDeviceNotFound = &ExecutionError{
		Category: ErrCategoryDevice,
		Code:     "device_not_found",
		Message:  "no connected Android device found",
	}
	ErrADBNotFound = &ExecutionError{
		Category: ErrCategoryDevice,
		Code:     "adb_not_found",
		Message:  "adb binary not found in ANDROID_HOME or PATH",
	}

	// Config errors
	ErrInvalidConfig = &ExecutionError{
		Category: ErrCategoryConfig,
		Code:     "invalid_config",
		Message:  "invalid configuration",
	}
)

// NewExecutionError creates a new ExecutionError with the given parameters.
func NewExecutionError(category ErrorCategory, code, message string) *ExecutionError {
	return &ExecutionError{
		Category: category,
		Code:     code,
		Message:  message,
	}
}
