// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package etf

import (
	"encoding/json"
	"math/big"
	"strings"
	"testing"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name string
		term Term
		want string
	}{
		{"bare atom", Atom("modified"), "modified"},
		{"atom with at sign", Atom("node@host"), "node@host"},
		{"capitalized atom", Atom("Hello"), "'Hello'"},
		{"atom with space", Atom("it's here"), `'it\'s here'`},
		{"empty atom", Atom(""), "''"},
		{"text binary", Binary("python:3.11"), `<<"python:3.11">>`},
		{"binary with quote", Binary(`say "hi"`), `<<"say \"hi\"">>`},
		{"raw binary", Binary{0, 1, 255}, "<<0,1,255>>"},
		{"empty binary", Binary{}, "<<>>"},
		{"tuple", Tuple{Binary("a"), Integer(1)}, `{<<"a">>,1}`},
		{
			"map",
			Map{{Key: Atom("id"), Value: Binary("u1")}, {Key: Atom("token"), Value: Binary("abc")}},
			`#{id => <<"u1">>,token => <<"abc">>}`,
		},
		{"float", Float(3), "3.0"},
		{"fraction", Float(0.5), "0.5"},
		{"negative integer", Integer(-12), "-12"},
		{"big integer", BigInteger{Int: new(big.Int).Lsh(big.NewInt(1), 70)}, "1180591620717411303424"},
		{"empty list", List{}, "[]"},
		{"improper list", List{Elements: []Term{Integer(1)}, Tail: Integer(2)}, "[1|2]"},
		{"charlist", ByteList("abc"), `"abc"`},
		{"byte list", ByteList{1, 2}, "[1,2]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Format(tt.term); got != tt.want {
				t.Errorf("Format = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestDescribe(t *testing.T) {
	if got := Describe(Atom("id")); got != "Atom(id)" {
		t.Errorf("Describe(atom) = %q", got)
	}
	if got := Describe(nil); got != "nil" {
		t.Errorf("Describe(nil) = %q", got)
	}

	long := Binary(strings.Repeat("x", 200))
	got := Describe(long)
	if !strings.HasPrefix(got, `Binary(<<"xxx`) || !strings.HasSuffix(got, "...)") {
		t.Errorf("Describe(long binary) = %q, want truncated Binary(...)", got)
	}
	if len(got) > 80 {
		t.Errorf("Describe(long binary) is %d bytes, want truncation", len(got))
	}
}

func TestToNative(t *testing.T) {
	term := Map{
		{Key: Binary("u1"), Value: Map{
			{Key: Atom("id"), Value: Binary("u1")},
			{Key: Atom("active"), Value: Atom("true")},
			{Key: Atom("roles"), Value: List{Elements: []Term{Atom("admin")}}},
			{Key: Atom("raw"), Value: Binary{0xff}},
			{Key: Integer(3), Value: Tuple{Integer(1), Float(2.5)}},
		}},
	}

	data, err := json.Marshal(ToNative(term))
	if err != nil {
		t.Fatalf("json.Marshal: %v", err)
	}
	want := `{"u1":{"3":[1,2.5],"active":true,"id":"u1","raw":{"$binary":"/w=="},"roles":["admin"]}}`
	if string(data) != want {
		t.Errorf("ToNative JSON = %s\nwant %s", data, want)
	}
}

func TestToNative_ImproperList(t *testing.T) {
	native := ToNative(List{Elements: []Term{Integer(1)}, Tail: Atom("end")})
	data, err := json.Marshal(native)
	if err != nil {
		t.Fatalf("json.Marshal: %v", err)
	}
	if string(data) != `{"$list":[1],"$tail":"end"}` {
		t.Errorf("ToNative JSON = %s", data)
	}
}
