// Package errors provides structured error types for cardspace.
//
// Every failure the core can report carries a machine-readable [Code] so that
// the CLI, the HTTP API and tests can react to the category of a failure
// without matching on message text.
//
// # Error Codes
//
//   - LENGTH_MISMATCH: a transition was requested with objects and targets
//     of different lengths. Fatal to that transition.
//   - UNKNOWN_LAYOUT: a layout name outside the known kinds. The selector
//     swallows it; lower layers return it.
//   - DEGENERATE_INPUT: a record count the layout engine cannot place
//     (negative counts).
//   - INVALID_*: input and configuration validation failures
//   - NOT_FOUND, NETWORK_ERROR, UPSTREAM_REJECTED: record provider
//     failures; only NETWORK_ERROR is worth retrying
//   - INTERNAL_ERROR: unexpected internal errors
//
// # Usage
//
//	err := errors.New(errors.ErrCodeLengthMismatch, "%d objects, %d targets", 3, 2)
//	if errors.Is(err, errors.ErrCodeLengthMismatch) {
//	    // refuse the transition
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeNetwork, origErr, "fetch sheet %s", url)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Core geometry and animation errors
	ErrCodeLengthMismatch  Code = "LENGTH_MISMATCH"
	ErrCodeUnknownLayout   Code = "UNKNOWN_LAYOUT"
	ErrCodeDegenerateInput Code = "DEGENERATE_INPUT"

	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"
	ErrCodeInvalidURL    Code = "INVALID_URL"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"

	// Record provider errors
	ErrCodeNotFound Code = "NOT_FOUND"
	ErrCodeNetwork  Code = "NETWORK_ERROR"
	ErrCodeUpstream Code = "UPSTREAM_REJECTED"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
