// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"errors"
	"fmt"
)

// ErrorCategory classifies command errors so callers (the entry point,
// scripts reading the log) can tell bad input from a broken
// environment without parsing message text.
type ErrorCategory string

const (
	// CategoryValidation indicates the input was invalid: malformed
	// term data, a schema mismatch, wrong flag values. Retrying with
	// the same input will not help.
	CategoryValidation ErrorCategory = "validation"

	// CategoryNotFound indicates a referenced file does not exist.
	CategoryNotFound ErrorCategory = "not_found"

	// CategoryInternal indicates an unexpected error: I/O failures
	// other than a missing file, or failures writing output.
	CategoryInternal ErrorCategory = "internal"
)

// ToolError is a categorized error returned by CLI commands. It wraps
// an inner error, preserving the full error chain for errors.Is and
// errors.As while adding category metadata and an optional hint. Use
// the category-specific constructors rather than constructing
// ToolError directly.
type ToolError struct {
	// Category classifies the error for programmatic handling.
	Category ErrorCategory

	// Err is the underlying error with the human-readable message.
	Err error

	// Hint is an optional suggestion shown after the message, such as
	// the command that would have accepted the input.
	Hint string
}

// Error returns the underlying message followed by the hint, if any.
func (e *ToolError) Error() string {
	if e.Hint == "" {
		return e.Err.Error()
	}
	return e.Err.Error() + "\n\n" + e.Hint
}

// Unwrap returns the underlying error.
func (e *ToolError) Unwrap() error { return e.Err }

// WithHint attaches a hint and returns the receiver for chaining.
func (e *ToolError) WithHint(hint string) *ToolError {
	e.Hint = hint
	return e
}

// Validation creates a validation error: the caller provided bad input.
func Validation(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryValidation, Err: fmt.Errorf(format, args...)}
}

// NotFound creates a not-found error: a referenced file does not exist.
func NotFound(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryNotFound, Err: fmt.Errorf(format, args...)}
}

// Internal creates an internal error: an unexpected failure or I/O error.
func Internal(format string, args ...any) *ToolError {
	return &ToolError{Category: CategoryInternal, Err: fmt.Errorf(format, args...)}
}

// CategoryOf returns the category of the first ToolError in err's
// chain, or CategoryInternal when there is none.
func CategoryOf(err error) ErrorCategory {
	var toolError *ToolError
	if errors.As(err, &toolError) {
		return toolError.Category
	}
	return CategoryInternal
}
