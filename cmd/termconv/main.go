// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/bureau-foundation/termconv/cmd/termconv/commands"
)

func main() {
	if err := run(); err != nil {
		// Commands that report their own outcome (like diag --check)
		// return an ExitError with the desired exit code. Don't print
		// a redundant "error:" line for those.
		if coder, ok := err.(interface{ ExitCode() int }); ok {
			os.Exit(coder.ExitCode())
		}
		printError(os.Stderr, term.IsTerminal(int(os.Stderr.Fd())), err)
		os.Exit(1)
	}
}

func run() error {
	return commands.Root(os.Args[0]).Execute(os.Args[1:])
}

// errorStyle marks the error prefix when stderr is a terminal.
var errorStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("9")).
	Bold(true)

func printError(w io.Writer, terminal bool, err error) {
	prefix := "error:"
	if terminal {
		prefix = errorStyle.Render(prefix)
	}
	fmt.Fprintf(w, "%s %v\n", prefix, err)
}
