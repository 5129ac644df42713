// Package errors defines the coded error type returned by every sandbox
// package. Codes are stable and meant to be matched with IsErrorCode rather
// than by comparing messages.
package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown       ErrorCode = "UNKNOWN"
	ErrInternal      ErrorCode = "INTERNAL"
	ErrInvalidInput  ErrorCode = "INVALID_INPUT"
	ErrNotFound      ErrorCode = "NOT_FOUND"
	ErrAlreadyExists ErrorCode = "ALREADY_EXISTS"

	// Registry errors
	ErrDuplicateModule ErrorCode = "DUPLICATE_MODULE"
	ErrUnknownModule   ErrorCode = "UNKNOWN_MODULE"
	ErrRun             ErrorCode = "RUN"

	// Toolbox errors
	ErrContextConflict   ErrorCode = "CONTEXT_CONFLICT"
	ErrExtensionConflict ErrorCode = "EXTENSION_CONFLICT"
	ErrCyclicDependency  ErrorCode = "CYCLIC_DEPENDENCY"

	// Module lifecycle errors
	ErrFactory ErrorCode = "FACTORY"
	ErrInit    ErrorCode = "INIT"
	ErrDestroy ErrorCode = "DESTROY"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
	ErrConfigValid ErrorCode = "CONFIG_INVALID"
)

// SandboxError represents a structured error with code and details
type SandboxError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *SandboxError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *SandboxError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *SandboxError) Is(target error) bool {
	var targetErr *SandboxError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new SandboxError with the given code and message
func New(code ErrorCode, message string) *SandboxError {
	return &SandboxError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new SandboxError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *SandboxError {
	return &SandboxError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a SandboxError
func Wrap(err error, code ErrorCode, message string) *SandboxError {
	if err == nil {
		return nil
	}
	return &SandboxError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *SandboxError {
	if err == nil {
		return nil
	}
	return &SandboxError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *SandboxError) WithDetail(key string, value interface{}) *SandboxError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithDetails adds multiple details to the error
func (e *SandboxError) WithDetails(details map[string]interface{}) *SandboxError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var sbErr *SandboxError
	if errors.As(err, &sbErr) {
		return sbErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a SandboxError
func GetErrorCode(err error) ErrorCode {
	var sbErr *SandboxError
	if errors.As(err, &sbErr) {
		return sbErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a SandboxError
func GetErrorDetails(err error) map[string]interface{} {
	var sbErr *SandboxError
	if errors.As(err, &sbErr) {
		return sbErr.Details
	}
	return nil
}
