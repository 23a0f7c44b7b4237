// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package records

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/bureau-foundation/termconv/lib/etf"
)

// Schema binds a record kind to its term mapping in both directions.
type Schema struct {
	// Name is the CLI verb for the schema ("users", "languages").
	Name string

	// Summary is a one-line description shown in help output.
	Summary string

	decode   func(etf.Term) (map[string]Record, error)
	fromJSON func([]byte) (etf.Term, error)
}

// Decode maps a decoded term to records keyed by id.
func (s Schema) Decode(term etf.Term) (map[string]Record, error) {
	return s.decode(term)
}

// TermFromJSON parses the JSON form produced by the schema's verb
// (an object of records keyed by id) and builds the equivalent term.
// Unknown record fields are rejected.
func (s Schema) TermFromJSON(data []byte) (etf.Term, error) {
	return s.fromJSON(data)
}

// Users maps the users.dat schema.
var Users = Schema{
	Name:    "users",
	Summary: "Decode an API users file",
	decode: func(term etf.Term) (map[string]Record, error) {
		set, err := DecodeUsers(term)
		if err != nil {
			return nil, err
		}
		return widen(set), nil
	},
	fromJSON: func(data []byte) (etf.Term, error) {
		var set map[string]User
		if err := decodeStrict(data, &set); err != nil {
			return nil, fmt.Errorf("%s: %w", usersRoot, err)
		}
		return UsersTerm(set), nil
	},
}

// Languages maps the languages.dat schema.
var Languages = Schema{
	Name:    "languages",
	Summary: "Decode a language images file",
	decode: func(term etf.Term) (map[string]Record, error) {
		set, err := DecodeLanguages(term)
		if err != nil {
			return nil, err
		}
		return widen(set), nil
	},
	fromJSON: func(data []byte) (etf.Term, error) {
		var set map[string]Language
		if err := decodeStrict(data, &set); err != nil {
			return nil, fmt.Errorf("%s: %w", languagesRoot, err)
		}
		for id, language := range set {
			if language.ID != "" && language.ID != id {
				return nil, fmt.Errorf("%s: id %q does not match key", keyPath(languagesRoot, id), language.ID)
			}
		}
		return LanguagesTerm(set), nil
	},
}

// Schemas returns every known schema in help order.
func Schemas() []Schema {
	return []Schema{Users, Languages}
}

// Lookup returns the schema with the given verb name.
func Lookup(name string) (Schema, bool) {
	for _, schema := range Schemas() {
		if schema.Name == name {
			return schema, true
		}
	}
	return Schema{}, false
}

func decodeStrict(data []byte, target any) error {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(target); err != nil {
		return err
	}
	if decoder.More() {
		return fmt.Errorf("unexpected data after JSON value")
	}
	return nil
}
