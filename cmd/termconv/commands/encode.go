// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/pflag"
	"github.com/tidwall/jsonc"

	"github.com/bureau-foundation/termconv/cmd/termconv/cli"
	"github.com/bureau-foundation/termconv/lib/etf"
	"github.com/bureau-foundation/termconv/lib/records"
	"github.com/bureau-foundation/termconv/lib/source"
)

type encodeParams struct {
	Config   string `flag:"config"     desc:"path to a YAML or TOML config file (default $TERMCONV_CONFIG)"`
	Verbose  bool   `flag:"verbose,v"  desc:"log input details to stderr"`
	Compress int    `flag:"compress"   desc:"zlib compression level 1-9 (0 writes an uncompressed term)"`
	Hex      bool   `flag:"hex,x"      desc:"write hex text instead of raw term bytes"`
}

// encodeCommand groups the per-schema encoders.
func encodeCommand(stdio streams) *cli.Command {
	subcommands := make([]*cli.Command, 0, len(records.Schemas()))
	for _, schema := range records.Schemas() {
		subcommands = append(subcommands, encodeSchemaCommand(schema, stdio))
	}
	return &cli.Command{
		Name:    "encode",
		Summary: "Build a term file from JSON records",
		Description: `Build a term file from the JSON that the matching decode verb prints.

The input is an object of records keyed by id. Comments and trailing
commas are accepted. The output decodes back to the same records.`,
		Subcommands: subcommands,
	}
}

func encodeSchemaCommand(schema records.Schema, stdio streams) *cli.Command {
	var params encodeParams

	return &cli.Command{
		Name:    schema.Name,
		Summary: fmt.Sprintf("Encode JSON %s records as a term file", schema.Name),
		Usage:   fmt.Sprintf("termconv encode %s [flags] <%s.json>", schema.Name, schema.Name),
		Examples: []cli.Example{
			{
				Description: "Write a compressed term file",
				Command:     fmt.Sprintf("termconv encode %s --compress 6 %s.json > %s.dat", schema.Name, schema.Name, schema.Name),
			},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("encode "+schema.Name, &params)
		},
		Run: func(args []string) error {
			if len(args) != 1 {
				return cli.Validation("usage: termconv encode %s [flags] <%s.json>", schema.Name, schema.Name)
			}
			path := args[0]
			if params.Compress < 0 || params.Compress > 9 {
				return cli.Validation("--compress must be between 0 and 9, got %d", params.Compress)
			}

			session, err := newSession("encode "+schema.Name,
				inputParams{Config: params.Config, Verbose: params.Verbose},
				outputParams{}, stdio)
			if err != nil {
				return err
			}

			input, err := session.read(path, source.Options{
				MaxBytes: session.maxSize,
				Stdin:    stdio.in,
			})
			if err != nil {
				return err
			}

			term, err := schema.TermFromJSON(jsonc.ToJSON(input.Data))
			if err != nil {
				return cli.Validation("%s: %w", displayPath(path), err)
			}

			var options []etf.EncodeOption
			if params.Compress > 0 {
				options = append(options, etf.WithCompression(params.Compress))
			}
			data, err := etf.Encode(term, options...)
			if err != nil {
				return cli.Validation("%s: %w", displayPath(path), err)
			}
			session.logger.Debug("encoded term", "path", path, "bytes", len(data))

			if params.Hex {
				_, err = fmt.Fprintln(stdio.out, hex.EncodeToString(data))
			} else {
				_, err = stdio.out.Write(data)
			}
			if err != nil {
				return cli.Internal("writing output: %w", err)
			}
			return nil
		},
	}
}
