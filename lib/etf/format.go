// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package etf

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Format renders term in Erlang source notation, e.g.
//
//	#{<<"u1">> => #{id => <<"u1">>,token => <<"abc">>}}
//	{<<"Python">>,<<"3.11">>,<<"python:3.11">>}
//
// Map entries are printed in decoded order.
func Format(term Term) string {
	var builder strings.Builder
	writeTerm(&builder, term)
	return builder.String()
}

// Describe returns a short kind-and-value summary of term for error
// messages, e.g. "Atom(id)" or "Tuple({<<\"a\">>,<<\"b\">>})". Long
// renderings are truncated.
func Describe(term Term) string {
	if term == nil {
		return "nil"
	}
	const limit = 60
	rendered := Format(term)
	if len(rendered) > limit {
		cut := limit
		for cut > 0 && !utf8.RuneStart(rendered[cut]) {
			cut--
		}
		rendered = rendered[:cut] + "..."
	}
	return term.Kind().String() + "(" + rendered + ")"
}

func writeTerm(builder *strings.Builder, term Term) {
	switch value := term.(type) {
	case Atom:
		writeAtom(builder, string(value))

	case Binary:
		builder.WriteString("<<")
		if len(value) > 0 && printable(value) {
			builder.WriteString(quote(string(value), '"'))
		} else {
			writeBytes(builder, value)
		}
		builder.WriteString(">>")

	case Tuple:
		builder.WriteByte('{')
		for i, element := range value {
			if i > 0 {
				builder.WriteByte(',')
			}
			writeTerm(builder, element)
		}
		builder.WriteByte('}')

	case Map:
		builder.WriteString("#{")
		for i, entry := range value {
			if i > 0 {
				builder.WriteByte(',')
			}
			writeTerm(builder, entry.Key)
			builder.WriteString(" => ")
			writeTerm(builder, entry.Value)
		}
		builder.WriteByte('}')

	case Integer:
		builder.WriteString(strconv.FormatInt(int64(value), 10))

	case BigInteger:
		if value.Int == nil {
			builder.WriteString("0")
			return
		}
		builder.WriteString(value.Int.String())

	case Float:
		rendered := strconv.FormatFloat(float64(value), 'g', -1, 64)
		if !strings.ContainsAny(rendered, ".eEnI") {
			rendered += ".0"
		}
		builder.WriteString(rendered)

	case List:
		builder.WriteByte('[')
		for i, element := range value.Elements {
			if i > 0 {
				builder.WriteByte(',')
			}
			writeTerm(builder, element)
		}
		if value.Tail != nil {
			builder.WriteByte('|')
			writeTerm(builder, value.Tail)
		}
		builder.WriteByte(']')

	case ByteList:
		if printable(value) {
			builder.WriteString(quote(string(value), '"'))
			return
		}
		builder.WriteByte('[')
		writeBytes(builder, value)
		builder.WriteByte(']')

	case nil:
		builder.WriteString("nil")
	}
}

// writeAtom prints bare atoms when Erlang would accept them unquoted
// and single-quotes everything else.
func writeAtom(builder *strings.Builder, name string) {
	if bareAtom(name) {
		builder.WriteString(name)
		return
	}
	builder.WriteString(quote(name, '\''))
}

func bareAtom(name string) bool {
	if name == "" {
		return false
	}
	first, _ := utf8.DecodeRuneInString(name)
	if first < 'a' || first > 'z' {
		return false
	}
	for _, r := range name {
		if r != '_' && r != '@' && !(r < utf8.RuneSelf && (unicode.IsLetter(r) || unicode.IsDigit(r))) {
			return false
		}
	}
	return true
}

func writeBytes(builder *strings.Builder, data []byte) {
	for i, b := range data {
		if i > 0 {
			builder.WriteByte(',')
		}
		builder.WriteString(strconv.Itoa(int(b)))
	}
}

func printable(data []byte) bool {
	if !utf8.Valid(data) {
		return false
	}
	for _, r := range string(data) {
		if !unicode.IsPrint(r) && r != '\n' && r != '\t' {
			return false
		}
	}
	return true
}

func quote(s string, delimiter byte) string {
	var builder strings.Builder
	builder.WriteByte(delimiter)
	for _, r := range s {
		switch r {
		case rune(delimiter), '\\':
			builder.WriteByte('\\')
			builder.WriteRune(r)
		case '\n':
			builder.WriteString(`\n`)
		case '\t':
			builder.WriteString(`\t`)
		default:
			builder.WriteRune(r)
		}
	}
	builder.WriteByte(delimiter)
	return builder.String()
}
