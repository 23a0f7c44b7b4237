// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/fxamacker/cbor/v2"
	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"

	"github.com/bureau-foundation/termconv/lib/records"
)

// highlightStyle is the chroma style used for terminal output.
const highlightStyle = "monokai"

// cborEncMode uses Core Deterministic Encoding so identical records
// always produce identical bytes.
var cborEncMode cbor.EncMode

func init() {
	var err error
	cborEncMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("render: CBOR encoder initialization failed: " + err.Error())
	}
}

// Records writes an id-to-record mapping to w. Top-level keys are
// sorted; each record's fields appear in Fields order.
func Records[R records.Record](w io.Writer, set map[string]R, options Options) error {
	return write(w, newDocument(set), options)
}

// Value writes an arbitrary JSON-compatible value (maps with string
// keys, slices, strings, numbers, bools, *big.Int) to w.
func Value(w io.Writer, value any, options Options) error {
	return write(w, value, options)
}

func write(w io.Writer, value any, options Options) error {
	output, err := Marshal(value, options)
	if err != nil {
		return err
	}
	if options.Palette != "" && !options.format().Binary() {
		output, err = highlight(output, options)
		if err != nil {
			return err
		}
	}
	_, err = w.Write(output)
	return err
}

// Marshal encodes value in the selected format without highlighting.
// Text formats end with a newline.
func Marshal(value any, options Options) ([]byte, error) {
	switch format := options.format(); format {
	case FormatJSON:
		return marshalJSON(value, options)
	case FormatYAML:
		return marshalYAML(value, options)
	case FormatCBOR:
		output, err := cborEncMode.Marshal(flatten(value))
		if err != nil {
			return nil, fmt.Errorf("encode CBOR: %w", err)
		}
		return output, nil
	case FormatMsgpack:
		return marshalMsgpack(flatten(value))
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}
}

func marshalJSON(value any, options Options) ([]byte, error) {
	var buffer bytes.Buffer
	encoder := json.NewEncoder(&buffer)
	encoder.SetEscapeHTML(false)
	if !options.Compact {
		encoder.SetIndent("", strings.Repeat(" ", options.indent()))
	}
	if err := encoder.Encode(value); err != nil {
		return nil, fmt.Errorf("encode JSON: %w", err)
	}
	return buffer.Bytes(), nil
}

func marshalYAML(value any, options Options) ([]byte, error) {
	var node yaml.Node
	if err := node.Encode(value); err != nil {
		return nil, fmt.Errorf("encode YAML: %w", err)
	}
	if options.Compact {
		node.Style |= yaml.FlowStyle
	}

	var buffer bytes.Buffer
	encoder := yaml.NewEncoder(&buffer)
	encoder.SetIndent(options.indent())
	if err := encoder.Encode(&node); err != nil {
		return nil, fmt.Errorf("encode YAML: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("encode YAML: %w", err)
	}
	return buffer.Bytes(), nil
}

func marshalMsgpack(value any) ([]byte, error) {
	var buffer bytes.Buffer
	encoder := msgpack.NewEncoder(&buffer)
	encoder.SetSortMapKeys(true)
	if err := encoder.Encode(normalizeValue(value)); err != nil {
		return nil, fmt.Errorf("encode MessagePack: %w", err)
	}
	return buffer.Bytes(), nil
}

// flatten converts a record document to plain maps for encoders that
// do their own key ordering. Other values pass through.
func flatten(value any) any {
	if doc, ok := value.(document); ok {
		return doc.native()
	}
	return value
}

// normalizeValue rewrites types MessagePack has no encoding for.
// Integers beyond 64 bits become decimal strings.
func normalizeValue(v any) any {
	switch value := v.(type) {
	case *big.Int:
		return value.String()
	case map[string]any:
		result := make(map[string]any, len(value))
		for key, element := range value {
			result[key] = normalizeValue(element)
		}
		return result
	case []any:
		result := make([]any, len(value))
		for index, element := range value {
			result[index] = normalizeValue(element)
		}
		return result
	default:
		return v
	}
}

func highlight(source []byte, options Options) ([]byte, error) {
	lexer := "json"
	if options.format() == FormatYAML {
		lexer = "yaml"
	}
	var buffer bytes.Buffer
	if err := quick.Highlight(&buffer, string(source), lexer, options.Palette, highlightStyle); err != nil {
		return nil, fmt.Errorf("highlight %s: %w", lexer, err)
	}
	return buffer.Bytes(), nil
}
