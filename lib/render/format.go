// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package render

import (
	"fmt"
	"strings"
)

// Format selects the output encoding.
type Format string

const (
	FormatJSON    Format = "json"
	FormatYAML    Format = "yaml"
	FormatCBOR    Format = "cbor"
	FormatMsgpack Format = "msgpack"
)

// Formats lists every supported format in help order.
var Formats = []Format{FormatJSON, FormatYAML, FormatCBOR, FormatMsgpack}

// ParseFormat resolves a format name. Matching is case-insensitive and
// "msgp" is accepted as an alias for msgpack.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "cbor":
		return FormatCBOR, nil
	case "msgpack", "msgp":
		return FormatMsgpack, nil
	}
	return "", fmt.Errorf("unknown output format %q (want one of %s)", name, formatList())
}

// Binary reports whether the format produces non-text bytes.
func (f Format) Binary() bool {
	return f == FormatCBOR || f == FormatMsgpack
}

func formatList() string {
	names := make([]string, len(Formats))
	for i, format := range Formats {
		names[i] = string(format)
	}
	return strings.Join(names, ", ")
}

// Options controls rendering.
type Options struct {
	// Format is the output encoding. Empty means JSON.
	Format Format

	// Indent is the number of spaces per nesting level for JSON and
	// YAML. Zero means 2.
	Indent int

	// Compact emits JSON on a single line and YAML in flow style.
	Compact bool

	// Palette is the chroma formatter used to highlight JSON or YAML
	// output ("terminal256", "terminal16m", ...). Empty disables
	// highlighting. Binary formats ignore it.
	Palette string
}

func (o Options) format() Format {
	if o.Format == "" {
		return FormatJSON
	}
	return o.Format
}

func (o Options) indent() int {
	if o.Indent <= 0 {
		return 2
	}
	return o.Indent
}
