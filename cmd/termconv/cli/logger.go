// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"io"
	"log/slog"
	"os"

	"golang.org/x/term"
)

// NewCommandLogger creates a structured logger for command diagnostics
// on stderr at the given minimum level. When stderr is a terminal,
// uses slog.TextHandler for human-readable output. When stderr is
// piped or redirected, uses slog.JSONHandler for machine-parseable
// output.
//
// Callers scope the logger with command-specific context via With():
//
//	logger := cli.NewCommandLogger(level).With(
//	    "command", "users",
//	    "path", path,
//	)
func NewCommandLogger(level slog.Leveler) *slog.Logger {
	return newLogger(os.Stderr, term.IsTerminal(int(os.Stderr.Fd())), level)
}

func newLogger(w io.Writer, terminal bool, level slog.Leveler) *slog.Logger {
	options := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if terminal {
		handler = slog.NewTextHandler(w, options)
	} else {
		handler = slog.NewJSONHandler(w, options)
	}
	return slog.New(handler)
}
