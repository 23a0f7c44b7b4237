// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import "fmt"

// ExitError signals a non-zero exit code without printing an extra
// error message. The command is expected to have already written its
// own output.
//
// The diag command uses this with --check: a term that decodes but
// does not match any schema exits 2 after printing the term.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit code %d", e.Code)
}

// ExitCode returns the exit code. The entry point checks for this
// interface on returned errors to distinguish "handled non-zero exit"
// from "unexpected error to display".
func (e *ExitError) ExitCode() int {
	return e.Code
}
