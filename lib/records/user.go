// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package records

import (
	"slices"

	"github.com/bureau-foundation/termconv/lib/etf"
)

const usersRoot = "users"

// userFields lists the atom keys of a user map in output order.
var userFields = []string{"id", "token", "created", "modified"}

// User is an API user entry. The map key a user is stored under and
// its ID field are independent values; neither is checked against the
// other.
type User struct {
	ID       string `json:"id"`
	Token    string `json:"token"`
	Created  string `json:"created"`
	Modified string `json:"modified"`
}

func (u User) RecordID() string { return u.ID }

func (u User) Fields() []Field {
	return []Field{
		{Name: "id", Value: u.ID},
		{Name: "token", Value: u.Token},
		{Name: "created", Value: u.Created},
		{Name: "modified", Value: u.Modified},
	}
}

// DecodeUsers maps a term of shape #{Key => #{id => _, token => _,
// created => _, modified => _}} with binary outer keys, atom inner
// keys, and binary inner values. The result is keyed by the outer
// key.
func DecodeUsers(term etf.Term) (map[string]User, error) {
	entries, err := asMap(term, usersRoot)
	if err != nil {
		return nil, err
	}

	result := make(map[string]User, len(entries))
	for index, entry := range entries {
		key, err := recordKey(entry, usersRoot, index)
		if err != nil {
			return nil, err
		}
		user, err := toUser(entry.Value, keyPath(usersRoot, key))
		if err != nil {
			return nil, err
		}
		result[key] = user
	}
	return result, nil
}

func toUser(term etf.Term, path string) (User, error) {
	entries, err := asMap(term, path)
	if err != nil {
		return User{}, err
	}

	lookup := make(map[string]string, len(entries))
	unexpected := ""
	for _, entry := range entries {
		name, err := atomName(entry.Key, path+" key")
		if err != nil {
			return User{}, err
		}
		value, err := binaryText(entry.Value, fieldPath(path, name))
		if err != nil {
			return User{}, err
		}
		if unexpected == "" && !slices.Contains(userFields, name) {
			unexpected = name
		}
		lookup[name] = value
	}

	for _, field := range userFields {
		if _, ok := lookup[field]; !ok {
			return User{}, &MissingFieldError{Path: path, Field: field}
		}
	}
	if unexpected != "" {
		return User{}, &UnexpectedFieldError{Path: path, Field: unexpected}
	}

	return User{
		ID:       lookup["id"],
		Token:    lookup["token"],
		Created:  lookup["created"],
		Modified: lookup["modified"],
	}, nil
}

// UsersTerm builds the term [DecodeUsers] reads, with outer entries
// sorted by key and inner keys in schema order.
func UsersTerm(set map[string]User) etf.Term {
	keys := make([]string, 0, len(set))
	for key := range set {
		keys = append(keys, key)
	}
	slices.Sort(keys)

	entries := make(etf.Map, 0, len(keys))
	for _, key := range keys {
		user := set[key]
		fields := user.Fields()
		inner := make(etf.Map, len(fields))
		for i, field := range fields {
			inner[i] = etf.MapEntry{Key: etf.Atom(field.Name), Value: etf.Binary(field.Value)}
		}
		entries = append(entries, etf.MapEntry{Key: etf.Binary(key), Value: inner})
	}
	return entries
}
