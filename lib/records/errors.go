// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package records

import (
	"errors"
	"fmt"

	"github.com/bureau-foundation/termconv/lib/etf"
)

// ShapeError reports a term that does not match the expected schema
// shape. Got is nil when the failure is not about a specific term
// (for example, a conversion error wrapped in Err).
type ShapeError struct {
	Path     string
	Expected string
	Got      etf.Term
	Err      error
}

func (e *ShapeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: expected %s: %v", e.Path, e.Expected, e.Err)
	}
	return fmt.Sprintf("%s: expected %s, got: %s", e.Path, e.Expected, etf.Describe(e.Got))
}

func (e *ShapeError) Unwrap() error { return e.Err }

// MissingFieldError reports a required key absent from a user map.
type MissingFieldError struct {
	Path  string
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s: missing field %q", e.Path, e.Field)
}

// UnexpectedFieldError reports a key in a user map that is not part
// of the schema.
type UnexpectedFieldError struct {
	Path  string
	Field string
}

func (e *UnexpectedFieldError) Error() string {
	return fmt.Sprintf("%s: unexpected field %q", e.Path, e.Field)
}

// IsShapeError reports whether err is any of the schema mismatch
// errors from this package.
func IsShapeError(err error) bool {
	var shapeError *ShapeError
	var missingError *MissingFieldError
	var unexpectedError *UnexpectedFieldError
	return errors.As(err, &shapeError) || errors.As(err, &missingError) || errors.As(err, &unexpectedError)
}
