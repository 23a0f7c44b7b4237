// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands builds the termconv command tree.
package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/bureau-foundation/termconv/cmd/termconv/cli"
	"github.com/bureau-foundation/termconv/lib/records"
	"github.com/bureau-foundation/termconv/lib/version"
)

// streams are the standard streams a command tree reads and writes.
type streams struct {
	in  io.Reader
	out io.Writer
	err io.Writer
}

// Root builds the complete termconv command tree. program is argv[0];
// it appears verbatim in the usage text.
func Root(program string) *cli.Command {
	return newRoot(program, streams{in: os.Stdin, out: os.Stdout, err: os.Stderr})
}

func newRoot(program string, stdio streams) *cli.Command {
	name := filepath.Base(program)

	subcommands := make([]*cli.Command, 0, len(records.Schemas())+4)
	for _, schema := range records.Schemas() {
		subcommands = append(subcommands, schemaCommand(schema, program, stdio))
	}
	subcommands = append(subcommands,
		decodeCommand(stdio),
		diagCommand(stdio),
		encodeCommand(stdio),
		&cli.Command{
			Name:    "version",
			Summary: "Print version information",
			Run: func(args []string) error {
				_, err := fmt.Fprintf(stdio.out, "%s %s\n", name, version.Full())
				return err
			},
		},
	)

	return &cli.Command{
		Name: name,
		Description: `termconv: decode Erlang term files into structured text.

Reads a file written by term_to_binary/1 holding either API users or
language images, checks it against the record layout, and prints the
records as pretty JSON keyed by id.

With no recognized command, prints a short usage summary and exits 0.`,
		Subcommands: subcommands,
		Examples: []cli.Example{
			{
				Description: "Decode the users file",
				Command:     name + " users users.dat",
			},
			{
				Description: "Decode language images as YAML",
				Command:     name + " languages -f yaml languages.dat",
			},
			{
				Description: "Show the raw term in Erlang notation",
				Command:     name + " diag languages.dat",
			},
			{
				Description: "Build a users file from JSON",
				Command:     name + " encode users users.json > users.dat",
			},
		},
		Run: func(args []string) error {
			return printUsage(stdio.out, program)
		},
	}
}

// printUsage writes the two-line usage summary shown for any argument
// pattern that does not select a command.
func printUsage(w io.Writer, program string) error {
	_, err := fmt.Fprintf(w, "Usage:\n%s users <users.dat>\n%s languages <languages.dat>\n", program, program)
	return err
}
