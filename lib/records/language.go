// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package records

import (
	"slices"

	"github.com/bureau-foundation/termconv/lib/etf"
)

const languagesRoot = "languages"

// Language is a runtime image entry. ID is the key the record was
// stored under; the other fields come from a 3-tuple
// {Name, Version, Image}.
type Language struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Version string `json:"version"`
	Image   string `json:"image"`
}

func (l Language) RecordID() string { return l.ID }

func (l Language) Fields() []Field {
	return []Field{
		{Name: "id", Value: l.ID},
		{Name: "name", Value: l.Name},
		{Name: "version", Value: l.Version},
		{Name: "image", Value: l.Image},
	}
}

// DecodeLanguages maps a term of shape
// #{Id => {Name, Version, Image}} with binary ids and binary tuple
// elements. A later duplicate id replaces an earlier one.
func DecodeLanguages(term etf.Term) (map[string]Language, error) {
	entries, err := asMap(term, languagesRoot)
	if err != nil {
		return nil, err
	}

	result := make(map[string]Language, len(entries))
	for index, entry := range entries {
		id, err := recordKey(entry, languagesRoot, index)
		if err != nil {
			return nil, err
		}
		language, err := toLanguage(id, entry.Value, keyPath(languagesRoot, id))
		if err != nil {
			return nil, err
		}
		result[id] = language
	}
	return result, nil
}

func toLanguage(id string, term etf.Term, path string) (Language, error) {
	tuple, err := asTuple(term, path)
	if err != nil {
		return Language{}, err
	}
	if len(tuple) != 3 {
		return Language{}, &ShapeError{Path: path, Expected: "3-element tuple", Got: term}
	}

	var values [3]string
	for i, element := range tuple {
		values[i], err = binaryText(element, elementPath(path, i))
		if err != nil {
			return Language{}, err
		}
	}

	return Language{
		ID:      id,
		Name:    values[0],
		Version: values[1],
		Image:   values[2],
	}, nil
}

// LanguagesTerm builds the term [DecodeLanguages] reads. The map key
// is the record id; Language.ID is not stored separately. Entries are
// sorted by id so the encoded bytes are deterministic.
func LanguagesTerm(set map[string]Language) etf.Term {
	ids := make([]string, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	entries := make(etf.Map, 0, len(ids))
	for _, id := range ids {
		language := set[id]
		entries = append(entries, etf.MapEntry{
			Key: etf.Binary(id),
			Value: etf.Tuple{
				etf.Binary(language.Name),
				etf.Binary(language.Version),
				etf.Binary(language.Image),
			},
		})
	}
	return entries
}
