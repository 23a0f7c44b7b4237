// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package render

import (
	"bytes"
	"encoding/json"
	"maps"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/bureau-foundation/termconv/lib/records"
)

// document is an id-to-record mapping with a fixed key order: ids
// sorted, fields in each record's Fields order. It marshals itself for
// the text formats and flattens to plain maps for the binary ones,
// whose encoders sort keys on their own.
type document struct {
	ids    []string
	fields [][]records.Field
}

func newDocument[R records.Record](set map[string]R) document {
	ids := slices.Sorted(maps.Keys(set))
	fields := make([][]records.Field, len(ids))
	for i, id := range ids {
		fields[i] = set[id].Fields()
	}
	return document{ids: ids, fields: fields}
}

func (d document) MarshalJSON() ([]byte, error) {
	var buffer bytes.Buffer
	buffer.WriteByte('{')
	for i, id := range d.ids {
		if i > 0 {
			buffer.WriteByte(',')
		}
		writeJSONString(&buffer, id)
		buffer.WriteString(":{")
		for j, field := range d.fields[i] {
			if j > 0 {
				buffer.WriteByte(',')
			}
			writeJSONString(&buffer, field.Name)
			buffer.WriteByte(':')
			writeJSONString(&buffer, field.Value)
		}
		buffer.WriteByte('}')
	}
	buffer.WriteByte('}')
	return buffer.Bytes(), nil
}

// writeJSONString appends s as a JSON string literal without HTML
// escaping, so "<" and "&" in tokens come through verbatim.
func writeJSONString(buffer *bytes.Buffer, s string) {
	encoder := json.NewEncoder(buffer)
	encoder.SetEscapeHTML(false)
	// Encoding a string cannot fail.
	_ = encoder.Encode(s)
	buffer.Truncate(buffer.Len() - 1)
}

func (d document) MarshalYAML() (any, error) {
	root := &yaml.Node{Kind: yaml.MappingNode}
	for i, id := range d.ids {
		record := &yaml.Node{Kind: yaml.MappingNode}
		for _, field := range d.fields[i] {
			record.Content = append(record.Content, stringNode(field.Name), stringNode(field.Value))
		}
		root.Content = append(root.Content, stringNode(id), record)
	}
	return root, nil
}

func stringNode(value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value}
}

func (d document) native() any {
	result := make(map[string]map[string]string, len(d.ids))
	for i, id := range d.ids {
		record := make(map[string]string, len(d.fields[i]))
		for _, field := range d.fields[i] {
			record[field.Name] = field.Value
		}
		result[id] = record
	}
	return result
}
