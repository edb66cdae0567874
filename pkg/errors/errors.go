// Package errors provides structured error types for lockgraph.
//
// Every stage of the pipeline reports failures as an [*Error] carrying a
// [Code]. The CLI maps codes to process exit statuses with [ExitCode], so
// scripts can tell a bad config apart from a failed Graphviz run.
//
// # Error Codes
//
//   - CONFIG: the configuration file is missing, malformed or incomplete
//   - NOT_FOUND: package.json or package-lock.json is absent
//   - PARSE: a manifest file is not valid JSON
//   - RENDER: the layout program failed or could not be started
//   - INTERNAL: anything unexpected
//
// # Usage
//
//	err := errors.New(errors.ErrCodeConfig, "missing keys: %s", keys)
//	if errors.Is(err, errors.ErrCodeConfig) {
//	    // Handle configuration error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeParse, origErr, "decode %s", path)
package errors

import (
	"context"
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for the pipeline stages.
const (
	ErrCodeConfig   Code = "CONFIG"
	ErrCodeNotFound Code = "NOT_FOUND"
	ErrCodeParse    Code = "PARSE"
	ErrCodeRender   Code = "RENDER"
	ErrCodeInternal Code = "INTERNAL"
)

// Process exit statuses. ExitCancelled follows the shell convention for SIGINT.
const (
	ExitOK        = 0
	ExitFailure   = 1
	ExitConfig    = 2
	ExitNotFound  = 3
	ExitParse     = 4
	ExitRender    = 5
	ExitCancelled = 130
)

var exitCodes = map[Code]int{
	ErrCodeConfig:   ExitConfig,
	ErrCodeNotFound: ExitNotFound,
	ErrCodeParse:    ExitParse,
	ErrCodeRender:   ExitRender,
}

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
// For *Error types, the code prefix is dropped and the cause is appended.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		if e.Cause != nil {
			return fmt.Sprintf("%s: %v", e.Message, e.Cause)
		}
		return e.Message
	}
	return err.Error()
}

// ExitCode maps err to a process exit status.
// A nil error yields ExitOK; errors without a known code yield ExitFailure.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	if errors.Is(err, context.Canceled) {
		return ExitCancelled
	}
	if code, ok := exitCodes[GetCode(err)]; ok {
		return code
	}
	return ExitFailure
}
