// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package records

import (
	"fmt"

	"github.com/bureau-foundation/termconv/lib/etf"
)

func asMap(term etf.Term, path string) (etf.Map, error) {
	value, ok := term.(etf.Map)
	if !ok {
		return nil, &ShapeError{Path: path, Expected: "map", Got: term}
	}
	return value, nil
}

func asTuple(term etf.Term, path string) (etf.Tuple, error) {
	value, ok := term.(etf.Tuple)
	if !ok {
		return nil, &ShapeError{Path: path, Expected: "tuple", Got: term}
	}
	return value, nil
}

// binaryText reads term as a UTF-8 binary.
func binaryText(term etf.Term, path string) (string, error) {
	value, ok := term.(etf.Binary)
	if !ok {
		return "", &ShapeError{Path: path, Expected: "binary", Got: term}
	}
	text, err := value.Text()
	if err != nil {
		return "", &ShapeError{Path: path, Expected: "UTF-8 binary", Got: term, Err: err}
	}
	return text, nil
}

func atomName(term etf.Term, path string) (string, error) {
	value, ok := term.(etf.Atom)
	if !ok {
		return "", &ShapeError{Path: path, Expected: "atom", Got: term}
	}
	return string(value), nil
}

// recordKey reads the binary id of the index'th entry of a top-level
// map.
func recordKey(entry etf.MapEntry, root string, index int) (string, error) {
	return binaryText(entry.Key, fmt.Sprintf("%s key #%d", root, index))
}

func keyPath(base, key string) string {
	return fmt.Sprintf("%s[%q]", base, key)
}

func fieldPath(base, field string) string {
	return base + "." + field
}

func elementPath(base string, index int) string {
	return fmt.Sprintf("%s[%d]", base, index)
}
