// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/termconv/cmd/termconv/cli"
	"github.com/bureau-foundation/termconv/lib/etf"
	"github.com/bureau-foundation/termconv/lib/records"
	"github.com/bureau-foundation/termconv/lib/render"
)

type schemaParams struct {
	inputParams
	outputParams
}

// schemaCommand builds the verb that decodes one record file against
// schema. Any argument count other than one path prints the usage
// summary and succeeds.
func schemaCommand(schema records.Schema, program string, stdio streams) *cli.Command {
	var params schemaParams

	return &cli.Command{
		Name:    schema.Name,
		Summary: schema.Summary,
		Description: fmt.Sprintf(`Decode a %s file and print its records keyed by id.

The file must hold a single term written by term_to_binary/1, optionally
compressed by the runtime or wrapped in gzip, zstd, or lz4. Use "-" to
read from stdin.`, schema.Name),
		Usage: fmt.Sprintf("termconv %s [flags] <%s.dat>", schema.Name, schema.Name),
		Examples: []cli.Example{
			{
				Description: "Print records as indented JSON",
				Command:     fmt.Sprintf("termconv %s %s.dat", schema.Name, schema.Name),
			},
			{
				Description: "Print records as YAML",
				Command:     fmt.Sprintf("termconv %s --format yaml %s.dat", schema.Name, schema.Name),
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams(schema.Name, &params)
		},
		Run: func(args []string) error {
			if len(args) != 1 {
				return printUsage(stdio.out, program)
			}
			path := args[0]

			session, err := newSession(schema.Name, params.inputParams, params.outputParams, stdio)
			if err != nil {
				return err
			}

			term, err := session.decodeTerm(path)
			if err != nil {
				return err
			}

			set, err := schema.Decode(term)
			if err != nil {
				toolError := cli.Validation("%s: %w", displayPath(path), err)
				if other, ok := otherSchema(schema, term); ok {
					toolError.WithHint(fmt.Sprintf("The file matches the %s layout. Try 'termconv %s %s'.", other.Name, other.Name, path))
				}
				return toolError
			}
			session.logger.Debug("decoded records", "path", path, "count", len(set))

			if err := render.Records(stdio.out, set, session.render); err != nil {
				return cli.Internal("writing output: %w", err)
			}
			return nil
		},
	}
}

// otherSchema returns the first schema other than tried that accepts
// term.
func otherSchema(tried records.Schema, term etf.Term) (records.Schema, bool) {
	for _, schema := range records.Schemas() {
		if schema.Name == tried.Name {
			continue
		}
		if _, err := schema.Decode(term); err == nil {
			return schema, true
		}
	}
	return records.Schema{}, false
}

// matchingSchemas returns the names of every schema that accepts term.
func matchingSchemas(term etf.Term) []string {
	var names []string
	for _, schema := range records.Schemas() {
		if _, err := schema.Decode(term); err == nil {
			names = append(names, schema.Name)
		}
	}
	return names
}
