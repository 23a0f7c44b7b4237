// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/termconv/cmd/termconv/cli"
	"github.com/bureau-foundation/termconv/lib/etf"
	"github.com/bureau-foundation/termconv/lib/render"
)

type decodeParams struct {
	inputParams
	outputParams
}

// decodeCommand prints any term as structured data without applying a
// record layout.
func decodeCommand(stdio streams) *cli.Command {
	var params decodeParams

	return &cli.Command{
		Name:    "decode",
		Summary: "Decode any term file to structured output",
		Description: `Decode a term file without applying a record layout.

Maps become objects (keys other than atoms and text binaries are
rendered in Erlang notation), tuples and lists become arrays, and
binaries become strings when they are valid UTF-8. Integers beyond
64 bits are kept exact.`,
		Usage: "termconv decode [flags] <file>",
		Examples: []cli.Example{
			{
				Description: "Dump an unknown term file as JSON",
				Command:     "termconv decode state.dat",
			},
			{
				Description: "Decode hex-encoded term bytes from stdin",
				Command:     "echo 836d00000003616263 | termconv decode --hex -",
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("decode", &params)
		},
		Run: func(args []string) error {
			if len(args) != 1 {
				return cli.Validation("usage: termconv decode [flags] <file>")
			}
			path := args[0]

			session, err := newSession("decode", params.inputParams, params.outputParams, stdio)
			if err != nil {
				return err
			}
			term, err := session.decodeTerm(path)
			if err != nil {
				return err
			}
			if err := render.Value(stdio.out, etf.ToNative(term), session.render); err != nil {
				return cli.Internal("writing output: %w", err)
			}
			return nil
		},
	}
}

type diagParams struct {
	inputParams
	Check bool `flag:"check" desc:"report which record layouts the term matches; exit 2 if none"`
}

// diagCommand prints a term in Erlang notation.
func diagCommand(stdio streams) *cli.Command {
	var params diagParams

	return &cli.Command{
		Name:    "diag",
		Summary: "Print a term file in Erlang notation",
		Description: `Print the decoded term in Erlang term notation, for inspecting files
that fail to decode as users or languages.

With --check, also report on stderr which record layouts the term
matches. A term that matches none exits with status 2.`,
		Usage: "termconv diag [flags] <file>",
		Examples: []cli.Example{
			{
				Description: "Inspect a term file",
				Command:     "termconv diag users.dat",
			},
			{
				Description: "Check which record layout a file holds",
				Command:     "termconv diag --check mystery.dat",
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("diag", &params)
		},
		Run: func(args []string) error {
			if len(args) != 1 {
				return cli.Validation("usage: termconv diag [flags] <file>")
			}
			path := args[0]

			session, err := newSession("diag", params.inputParams, outputParams{}, stdio)
			if err != nil {
				return err
			}
			term, err := session.decodeTerm(path)
			if err != nil {
				return err
			}
			if _, err := fmt.Fprintln(stdio.out, etf.Format(term)); err != nil {
				return cli.Internal("writing output: %w", err)
			}

			if !params.Check {
				return nil
			}
			matches := matchingSchemas(term)
			if len(matches) == 0 {
				fmt.Fprintf(stdio.err, "%s: matches no record layout\n", displayPath(path))
				return &cli.ExitError{Code: 2}
			}
			fmt.Fprintf(stdio.err, "%s: matches %s\n", displayPath(path), strings.Join(matches, ", "))
			return nil
		},
	}
}
