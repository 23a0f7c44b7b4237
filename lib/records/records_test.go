// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package records

import (
	"errors"
	"strings"
	"testing"

	"github.com/bureau-foundation/termconv/lib/etf"
)

func userMap(id, token, created, modified string) etf.Map {
	return etf.Map{
		{Key: etf.Atom("id"), Value: etf.Binary(id)},
		{Key: etf.Atom("token"), Value: etf.Binary(token)},
		{Key: etf.Atom("created"), Value: etf.Binary(created)},
		{Key: etf.Atom("modified"), Value: etf.Binary(modified)},
	}
}

func languageTuple(name, version, image string) etf.Tuple {
	return etf.Tuple{etf.Binary(name), etf.Binary(version), etf.Binary(image)}
}

func TestDecodeLanguages(t *testing.T) {
	term := etf.Map{
		{Key: etf.Binary("py"), Value: languageTuple("Python", "3.11", "python:3.11")},
		{Key: etf.Binary("go"), Value: languageTuple("Go", "1.22", "golang:1.22")},
	}

	set, err := DecodeLanguages(term)
	if err != nil {
		t.Fatalf("DecodeLanguages: %v", err)
	}
	if len(set) != 2 {
		t.Fatalf("got %d languages, want 2", len(set))
	}
	want := Language{ID: "py", Name: "Python", Version: "3.11", Image: "python:3.11"}
	if set["py"] != want {
		t.Errorf("py = %+v, want %+v", set["py"], want)
	}
	if set["go"].Image != "golang:1.22" {
		t.Errorf("go image = %q", set["go"].Image)
	}
}

func TestDecodeLanguages_Empty(t *testing.T) {
	set, err := DecodeLanguages(etf.Map{})
	if err != nil {
		t.Fatalf("DecodeLanguages: %v", err)
	}
	if len(set) != 0 {
		t.Errorf("got %d languages, want 0", len(set))
	}
}

func TestDecodeLanguages_Errors(t *testing.T) {
	tests := []struct {
		name     string
		term     etf.Term
		path     string
		expected string
	}{
		{
			name:     "top level list",
			term:     etf.List{},
			path:     "languages",
			expected: "map",
		},
		{
			name: "two element tuple",
			term: etf.Map{
				{Key: etf.Binary("py"), Value: etf.Tuple{etf.Binary("Python"), etf.Binary("3.11")}},
			},
			path:     `languages["py"]`,
			expected: "3-element tuple",
		},
		{
			name: "four element tuple",
			term: etf.Map{
				{Key: etf.Binary("py"), Value: append(languageTuple("Python", "3.11", "python:3.11"), etf.Binary("extra"))},
			},
			path:     `languages["py"]`,
			expected: "3-element tuple",
		},
		{
			name: "value is a map",
			term: etf.Map{
				{Key: etf.Binary("py"), Value: etf.Map{}},
			},
			path:     `languages["py"]`,
			expected: "tuple",
		},
		{
			name: "atom key",
			term: etf.Map{
				{Key: etf.Atom("py"), Value: languageTuple("Python", "3.11", "python:3.11")},
			},
			path:     "languages key #0",
			expected: "binary",
		},
		{
			name: "integer element",
			term: etf.Map{
				{Key: etf.Binary("py"), Value: etf.Tuple{etf.Binary("Python"), etf.Integer(3), etf.Binary("python:3")}},
			},
			path:     `languages["py"][1]`,
			expected: "binary",
		},
		{
			name: "invalid UTF-8 element",
			term: etf.Map{
				{Key: etf.Binary("py"), Value: etf.Tuple{etf.Binary("Python"), etf.Binary("3"), etf.Binary{0xff}}},
			},
			path:     `languages["py"][2]`,
			expected: "UTF-8 binary",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeLanguages(tt.term)
			var shapeError *ShapeError
			if !errors.As(err, &shapeError) {
				t.Fatalf("error = %v, want *ShapeError", err)
			}
			if shapeError.Path != tt.path {
				t.Errorf("Path = %q, want %q", shapeError.Path, tt.path)
			}
			if shapeError.Expected != tt.expected {
				t.Errorf("Expected = %q, want %q", shapeError.Expected, tt.expected)
			}
			if !IsShapeError(err) {
				t.Error("IsShapeError = false")
			}
		})
	}
}

func TestDecodeLanguages_InvalidUTF8Unwraps(t *testing.T) {
	term := etf.Map{{Key: etf.Binary{0xc3}, Value: languageTuple("a", "b", "c")}}
	_, err := DecodeLanguages(term)
	if !errors.Is(err, etf.ErrInvalidUTF8) {
		t.Fatalf("error = %v, want ErrInvalidUTF8", err)
	}
}

func TestDecodeLanguages_DuplicateKeyLastWins(t *testing.T) {
	term := etf.Map{
		{Key: etf.Binary("py"), Value: languageTuple("Python", "2.7", "python:2.7")},
		{Key: etf.Binary("py"), Value: languageTuple("Python", "3.11", "python:3.11")},
	}
	set, err := DecodeLanguages(term)
	if err != nil {
		t.Fatalf("DecodeLanguages: %v", err)
	}
	if len(set) != 1 || set["py"].Version != "3.11" {
		t.Errorf("set = %+v, want single py at 3.11", set)
	}
}

func TestDecodeUsers(t *testing.T) {
	term := etf.Map{
		{Key: etf.Binary("u1"), Value: userMap("u1", "abc", "2024-01-01", "2024-02-01")},
	}

	set, err := DecodeUsers(term)
	if err != nil {
		t.Fatalf("DecodeUsers: %v", err)
	}
	want := User{ID: "u1", Token: "abc", Created: "2024-01-01", Modified: "2024-02-01"}
	if set["u1"] != want {
		t.Errorf("u1 = %+v, want %+v", set["u1"], want)
	}
}

func TestDecodeUsers_FieldOrderIrrelevant(t *testing.T) {
	inner := etf.Map{
		{Key: etf.Atom("modified"), Value: etf.Binary("m")},
		{Key: etf.Atom("token"), Value: etf.Binary("t")},
		{Key: etf.Atom("id"), Value: etf.Binary("u1")},
		{Key: etf.Atom("created"), Value: etf.Binary("c")},
	}
	set, err := DecodeUsers(etf.Map{{Key: etf.Binary("u1"), Value: inner}})
	if err != nil {
		t.Fatalf("DecodeUsers: %v", err)
	}
	if set["u1"] != (User{ID: "u1", Token: "t", Created: "c", Modified: "m"}) {
		t.Errorf("u1 = %+v", set["u1"])
	}
}

func TestDecodeUsers_KeyAndIDIndependent(t *testing.T) {
	term := etf.Map{
		{Key: etf.Binary("outer"), Value: userMap("inner", "t", "c", "m")},
	}
	set, err := DecodeUsers(term)
	if err != nil {
		t.Fatalf("DecodeUsers: %v", err)
	}
	user, ok := set["outer"]
	if !ok {
		t.Fatalf("set has no entry for outer key: %+v", set)
	}
	if user.ID != "inner" {
		t.Errorf("ID = %q, want inner", user.ID)
	}
}

func TestDecodeUsers_MissingField(t *testing.T) {
	inner := etf.Map{
		{Key: etf.Atom("id"), Value: etf.Binary("u1")},
		{Key: etf.Atom("created"), Value: etf.Binary("c")},
		{Key: etf.Atom("modified"), Value: etf.Binary("m")},
	}
	_, err := DecodeUsers(etf.Map{{Key: etf.Binary("u1"), Value: inner}})

	var missing *MissingFieldError
	if !errors.As(err, &missing) {
		t.Fatalf("error = %v, want *MissingFieldError", err)
	}
	if missing.Field != "token" {
		t.Errorf("Field = %q, want token", missing.Field)
	}
	if err.Error() != `users["u1"]: missing field "token"` {
		t.Errorf("message = %q", err.Error())
	}
	if !IsShapeError(err) {
		t.Error("IsShapeError = false")
	}
}

func TestDecodeUsers_UnexpectedField(t *testing.T) {
	inner := append(userMap("u1", "t", "c", "m"), etf.MapEntry{Key: etf.Atom("role"), Value: etf.Binary("admin")})
	_, err := DecodeUsers(etf.Map{{Key: etf.Binary("u1"), Value: inner}})

	var unexpected *UnexpectedFieldError
	if !errors.As(err, &unexpected) {
		t.Fatalf("error = %v, want *UnexpectedFieldError", err)
	}
	if unexpected.Field != "role" {
		t.Errorf("Field = %q, want role", unexpected.Field)
	}
}

func TestDecodeUsers_Errors(t *testing.T) {
	tests := []struct {
		name     string
		term     etf.Term
		path     string
		expected string
	}{
		{
			name:     "top level tuple",
			term:     etf.Tuple{},
			path:     "users",
			expected: "map",
		},
		{
			name:     "integer key",
			term:     etf.Map{{Key: etf.Integer(1), Value: userMap("u1", "t", "c", "m")}},
			path:     "users key #0",
			expected: "binary",
		},
		{
			name:     "inner value is a tuple",
			term:     etf.Map{{Key: etf.Binary("u1"), Value: etf.Tuple{}}},
			path:     `users["u1"]`,
			expected: "map",
		},
		{
			name: "binary inner key",
			term: etf.Map{{Key: etf.Binary("u1"), Value: etf.Map{
				{Key: etf.Binary("id"), Value: etf.Binary("u1")},
			}}},
			path:     `users["u1"] key`,
			expected: "atom",
		},
		{
			name: "atom inner value",
			term: etf.Map{{Key: etf.Binary("u1"), Value: etf.Map{
				{Key: etf.Atom("token"), Value: etf.Atom("undefined")},
			}}},
			path:     `users["u1"].token`,
			expected: "binary",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeUsers(tt.term)
			var shapeError *ShapeError
			if !errors.As(err, &shapeError) {
				t.Fatalf("error = %v, want *ShapeError", err)
			}
			if shapeError.Path != tt.path {
				t.Errorf("Path = %q, want %q", shapeError.Path, tt.path)
			}
			if shapeError.Expected != tt.expected {
				t.Errorf("Expected = %q, want %q", shapeError.Expected, tt.expected)
			}
		})
	}
}

func TestShapeError_Message(t *testing.T) {
	_, err := DecodeUsers(etf.List{})
	if err == nil {
		t.Fatal("expected error")
	}
	if err.Error() != "users: expected map, got: List([])" {
		t.Errorf("message = %q", err.Error())
	}
}

func TestUsersTerm_RoundTrip(t *testing.T) {
	original := map[string]User{
		"b": {ID: "b", Token: "t2", Created: "c2", Modified: "m2"},
		"a": {ID: "a", Token: "t1", Created: "c1", Modified: "m1"},
	}

	data, err := etf.Encode(UsersTerm(original))
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	term, err := etf.Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	set, err := DecodeUsers(term)
	if err != nil {
		t.Fatalf("DecodeUsers: %v", err)
	}
	if len(set) != 2 || set["a"] != original["a"] || set["b"] != original["b"] {
		t.Errorf("round trip = %+v, want %+v", set, original)
	}

	// Outer entries are sorted so repeated encodes are byte-identical.
	outer := term.(etf.Map)
	if string(outer[0].Key.(etf.Binary)) != "a" {
		t.Errorf("first key = %s, want a", etf.Format(outer[0].Key))
	}
}

func TestLanguagesTerm_RoundTrip(t *testing.T) {
	original := map[string]Language{
		"py": {ID: "py", Name: "Python", Version: "3.11", Image: "python:3.11"},
	}
	data, err := etf.Encode(LanguagesTerm(original), etf.WithCompression(6))
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	term, err := etf.Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	set, err := DecodeLanguages(term)
	if err != nil {
		t.Fatalf("DecodeLanguages: %v", err)
	}
	if set["py"] != original["py"] {
		t.Errorf("py = %+v, want %+v", set["py"], original["py"])
	}
}

func TestSchema_Lookup(t *testing.T) {
	for _, name := range []string{"users", "languages"} {
		schema, ok := Lookup(name)
		if !ok {
			t.Fatalf("Lookup(%q) not found", name)
		}
		if schema.Name != name {
			t.Errorf("Lookup(%q).Name = %q", name, schema.Name)
		}
	}
	if _, ok := Lookup("groups"); ok {
		t.Error("Lookup(groups) found a schema")
	}
}

func TestSchema_Decode(t *testing.T) {
	term := etf.Map{{Key: etf.Binary("py"), Value: languageTuple("Python", "3.11", "python:3.11")}}
	set, err := Languages.Decode(term)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	record := set["py"]
	if record.RecordID() != "py" {
		t.Errorf("RecordID = %q", record.RecordID())
	}
	var names []string
	for _, field := range record.Fields() {
		names = append(names, field.Name)
	}
	if strings.Join(names, ",") != "id,name,version,image" {
		t.Errorf("field order = %v", names)
	}
}

func TestSchema_TermFromJSON(t *testing.T) {
	input := `{"u1": {"id": "u1", "token": "abc", "created": "c", "modified": "m"}}`
	term, err := Users.TermFromJSON([]byte(input))
	if err != nil {
		t.Fatalf("TermFromJSON: %v", err)
	}
	set, err := DecodeUsers(term)
	if err != nil {
		t.Fatalf("DecodeUsers: %v", err)
	}
	if set["u1"].Token != "abc" {
		t.Errorf("token = %q", set["u1"].Token)
	}
}

func TestSchema_TermFromJSON_Errors(t *testing.T) {
	tests := []struct {
		name   string
		schema Schema
		input  string
	}{
		{"unknown field", Users, `{"u1": {"id": "u1", "role": "admin"}}`},
		{"not an object", Users, `[1, 2]`},
		{"trailing value", Languages, `{} {}`},
		{"id mismatch", Languages, `{"py": {"id": "go", "name": "Go", "version": "1", "image": "go"}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.schema.TermFromJSON([]byte(tt.input)); err == nil {
				t.Error("expected error")
			}
		})
	}
}
