// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package etf

import (
	"math/big"
	"unicode/utf8"
)

// Kind identifies the variant of a decoded [Term].
type Kind uint8

const (
	KindMap Kind = iota + 1
	KindTuple
	KindAtom
	KindBinary
	KindInteger
	KindBigInteger
	KindFloat
	KindList
	KindByteList
)

// String returns the variant name as it appears in diagnostics.
func (k Kind) String() string {
	switch k {
	case KindMap:
		return "Map"
	case KindTuple:
		return "Tuple"
	case KindAtom:
		return "Atom"
	case KindBinary:
		return "Binary"
	case KindInteger:
		return "Integer"
	case KindBigInteger:
		return "BigInteger"
	case KindFloat:
		return "Float"
	case KindList:
		return "List"
	case KindByteList:
		return "ByteList"
	default:
		return "Unknown"
	}
}

// Term is a decoded value. The concrete types are [Map], [Tuple],
// [Atom], [Binary], [Integer], [BigInteger], [Float], [List], and
// [ByteList]. Callers type-switch on the concrete type.
type Term interface {
	Kind() Kind
}

// MapEntry is one key/value pair of a [Map].
type MapEntry struct {
	Key   Term
	Value Term
}

// Map is an Erlang map. Entries keep the order in which they appeared
// in the encoded bytes. Keys may be any term.
type Map []MapEntry

func (Map) Kind() Kind { return KindMap }

// Tuple is a fixed-arity sequence.
type Tuple []Term

func (Tuple) Kind() Kind { return KindTuple }

// Atom is an interned symbolic name.
type Atom string

func (Atom) Kind() Kind { return KindAtom }

// Binary is a raw byte sequence. Record files store text as binaries;
// use [Binary.Text] to read one as UTF-8.
type Binary []byte

func (Binary) Kind() Kind { return KindBinary }

// Text returns b as a string, or [ErrInvalidUTF8] if b is not valid
// UTF-8.
func (b Binary) Text() (string, error) {
	if !utf8.Valid(b) {
		return "", ErrInvalidUTF8
	}
	return string(b), nil
}

// Integer is a small or fixed-width integer that fits in an int64.
type Integer int64

func (Integer) Kind() Kind { return KindInteger }

// BigInteger holds a bignum that does not fit in an int64.
type BigInteger struct {
	*big.Int
}

func (BigInteger) Kind() Kind { return KindBigInteger }

// Float is an IEEE 754 double.
type Float float64

func (Float) Kind() Kind { return KindFloat }

// List is an Erlang list. Tail is nil for a proper list and holds the
// final non-list element of an improper list otherwise. The empty
// list (NIL_EXT) is List{}.
type List struct {
	Elements []Term
	Tail     Term
}

func (List) Kind() Kind { return KindList }

// Proper reports whether the list ends in the empty list.
func (l List) Proper() bool { return l.Tail == nil }

// ByteList is a list of small integers encoded compactly with
// STRING_EXT. Erlang uses this for charlists such as "abc".
type ByteList []byte

func (ByteList) Kind() Kind { return KindByteList }
