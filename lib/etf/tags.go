// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package etf

import "fmt"

// VersionTag is the first byte of every encoded term.
const VersionTag byte = 131

// Tag bytes from the external term format. These values are fixed by
// the Erlang runtime and must match exactly.
const (
	tagNewFloat      byte = 70
	tagCompressed    byte = 80
	tagSmallInteger  byte = 97
	tagInteger       byte = 98
	tagAtom          byte = 100
	tagSmallTuple    byte = 104
	tagLargeTuple    byte = 105
	tagNil           byte = 106
	tagString        byte = 107
	tagList          byte = 108
	tagBinary        byte = 109
	tagSmallBig      byte = 110
	tagLargeBig      byte = 111
	tagSmallAtom     byte = 115
	tagMap           byte = 116
	tagAtomUTF8      byte = 118
	tagSmallAtomUTF8 byte = 119
)

// tagName returns the symbolic name used in the Erlang documentation
// for tag, for error messages.
func tagName(tag byte) string {
	switch tag {
	case VersionTag:
		return "VERSION"
	case tagNewFloat:
		return "NEW_FLOAT_EXT"
	case tagCompressed:
		return "COMPRESSED"
	case tagSmallInteger:
		return "SMALL_INTEGER_EXT"
	case tagInteger:
		return "INTEGER_EXT"
	case tagAtom:
		return "ATOM_EXT"
	case tagSmallTuple:
		return "SMALL_TUPLE_EXT"
	case tagLargeTuple:
		return "LARGE_TUPLE_EXT"
	case tagNil:
		return "NIL_EXT"
	case tagString:
		return "STRING_EXT"
	case tagList:
		return "LIST_EXT"
	case tagBinary:
		return "BINARY_EXT"
	case tagSmallBig:
		return "SMALL_BIG_EXT"
	case tagLargeBig:
		return "LARGE_BIG_EXT"
	case tagSmallAtom:
		return "SMALL_ATOM_EXT"
	case tagMap:
		return "MAP_EXT"
	case tagAtomUTF8:
		return "ATOM_UTF8_EXT"
	case tagSmallAtomUTF8:
		return "SMALL_ATOM_UTF8_EXT"
	default:
		return fmt.Sprintf("tag(%d)", tag)
	}
}
