// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package etf

import (
	"encoding/base64"
	"unicode/utf8"
)

// ToNative converts term into plain Go values that encoding/json and
// the YAML/CBOR encoders accept:
//
//   - Map becomes map[string]any. Atom and UTF-8 binary keys are used
//     as-is; any other key is rendered with [Format].
//   - Tuple and proper List become []any.
//   - An improper List becomes {"$list": [...], "$tail": ...}.
//   - The atoms true and false become bool; other atoms become string.
//   - A UTF-8 Binary becomes string; other binaries become
//     {"$binary": "<base64>"}.
//   - ByteList becomes string when it is UTF-8, else []any of ints.
//   - Integer, BigInteger, and Float become int64, *big.Int, float64.
func ToNative(term Term) any {
	switch value := term.(type) {
	case Map:
		result := make(map[string]any, len(value))
		for _, entry := range value {
			result[nativeKey(entry.Key)] = ToNative(entry.Value)
		}
		return result

	case Tuple:
		return nativeSlice(value)

	case List:
		elements := nativeSlice(value.Elements)
		if value.Tail == nil {
			return elements
		}
		return map[string]any{"$list": elements, "$tail": ToNative(value.Tail)}

	case Atom:
		switch value {
		case "true":
			return true
		case "false":
			return false
		}
		return string(value)

	case Binary:
		if utf8.Valid(value) {
			return string(value)
		}
		return map[string]any{"$binary": base64.StdEncoding.EncodeToString(value)}

	case ByteList:
		if utf8.Valid(value) {
			return string(value)
		}
		codes := make([]any, len(value))
		for i, b := range value {
			codes[i] = int64(b)
		}
		return codes

	case Integer:
		return int64(value)

	case BigInteger:
		return value.Int

	case Float:
		return float64(value)

	default:
		return nil
	}
}

func nativeSlice(terms []Term) []any {
	result := make([]any, len(terms))
	for i, element := range terms {
		result[i] = ToNative(element)
	}
	return result
}

func nativeKey(key Term) string {
	switch value := key.(type) {
	case Atom:
		return string(value)
	case Binary:
		if utf8.Valid(value) {
			return string(value)
		}
	}
	return Format(key)
}
