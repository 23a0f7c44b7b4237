// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"errors"
	"io/fs"
	"log/slog"

	"github.com/bureau-foundation/termconv/cmd/termconv/cli"
	"github.com/bureau-foundation/termconv/lib/config"
	"github.com/bureau-foundation/termconv/lib/etf"
	"github.com/bureau-foundation/termconv/lib/render"
	"github.com/bureau-foundation/termconv/lib/source"
)

// inputParams are the flags shared by every command that reads a term
// file. Zero values defer to the configuration file.
type inputParams struct {
	Hex     bool   `flag:"hex,x"     desc:"treat input as hex-encoded term bytes"`
	Config  string `flag:"config"    desc:"path to a YAML or TOML config file (default $TERMCONV_CONFIG)"`
	Verbose bool   `flag:"verbose,v" desc:"log input and decode details to stderr"`
}

// outputParams are the flags shared by every command that renders
// structured output. Zero values defer to the configuration file.
type outputParams struct {
	Format  string `flag:"format,f"  desc:"output format: json, yaml, cbor, msgpack (default json)"`
	Compact bool   `flag:"compact,c" desc:"compact output (no indentation)"`
	Indent  int    `flag:"indent"    desc:"spaces per indent level (default 2)"`
	Color   string `flag:"color"     desc:"highlight output: auto, always, never (default auto)"`
}

// session is the resolved configuration for one command invocation.
type session struct {
	logger  *slog.Logger
	render  render.Options
	source  source.Options
	decode  []etf.DecodeOption
	maxSize int64
}

func newSession(command string, input inputParams, output outputParams, stdio streams) (*session, error) {
	cfg, err := config.Resolve(input.Config)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, cli.NotFound("config: %w", err)
		}
		return nil, cli.Validation("config: %w", err)
	}

	// Resolve has validated the level.
	level, _ := cfg.Log.SlogLevel()
	if input.Verbose {
		level = slog.LevelDebug
	}
	logger := cli.NewCommandLogger(level).With("command", command)

	formatName := cfg.Output.Format
	if output.Format != "" {
		formatName = output.Format
	}
	format, err := render.ParseFormat(formatName)
	if err != nil {
		return nil, cli.Validation("%w", err)
	}

	indent := cfg.Output.Indent
	if output.Indent > 0 {
		indent = output.Indent
	}

	colorName := cfg.Output.Color
	if output.Color != "" {
		colorName = output.Color
	}
	colorMode, err := render.ParseColorMode(colorName)
	if err != nil {
		return nil, cli.Validation("%w", err)
	}

	return &session{
		logger: logger,
		render: render.Options{
			Format:  format,
			Indent:  indent,
			Compact: output.Compact,
			Palette: render.Palette(colorMode, stdio.out),
		},
		source: source.Options{
			Hex:      input.Hex,
			MaxBytes: cfg.Decode.MaxInputBytes,
			Stdin:    stdio.in,
		},
		decode: []etf.DecodeOption{
			etf.WithMaxDepth(cfg.Decode.MaxDepth),
			etf.WithMaxInflatedSize(int(cfg.Decode.MaxInputBytes)),
		},
		maxSize: cfg.Decode.MaxInputBytes,
	}, nil
}

// read loads path and logs what was read.
func (s *session) read(path string, options source.Options) (*source.Input, error) {
	input, err := source.Read(path, options)
	if err != nil {
		return nil, inputError(err)
	}
	s.logger.Debug("read input",
		"path", path,
		"bytes", input.RawSize,
		"compression", input.Compression.String(),
		"blake3", input.DigestHex(),
	)
	return input, nil
}

// decodeTerm reads path and decodes the term it holds.
func (s *session) decodeTerm(path string) (etf.Term, error) {
	input, err := s.read(path, s.source)
	if err != nil {
		return nil, err
	}
	term, err := etf.Decode(input.Data, s.decode...)
	if err != nil {
		return nil, cli.Validation("%s: %w", displayPath(path), err)
	}
	s.logger.Debug("decoded term", "path", path, "kind", term.Kind().String())
	return term, nil
}

// inputError categorizes a failure from [source.Read]. A missing file
// is not-found; other filesystem failures are internal; everything
// else is a problem with the input's content.
func inputError(err error) error {
	var pathError *fs.PathError
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return cli.NotFound("%w", err)
	case errors.As(err, &pathError):
		return cli.Internal("%w", err)
	default:
		return cli.Validation("%w", err)
	}
}

func displayPath(path string) string {
	if path == source.StdinPath {
		return "stdin"
	}
	return path
}
