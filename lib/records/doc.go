// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package records maps decoded term trees onto the two record schemas
// stored in exported data files: languages and users.
//
// Both schemas share an outer shape: a map keyed by binaries, where
// each key is a record id. The value shape differs per schema:
//
//	languages: #{<<"py">> => {<<"Python">>, <<"3.11">>, <<"python:3.11">>}}
//	users:     #{<<"u1">> => #{id => <<"u1">>, token => <<"abc">>,
//	                           created => <<"...">>, modified => <<"...">>}}
//
// The mappers fail on the first mismatch. Errors are [*ShapeError],
// [*MissingFieldError], or [*UnexpectedFieldError], each carrying a
// path such as users["u1"].token that locates the offending term.
//
// Records expose their contents through the [Record] interface so the
// render package can serialize either schema without knowing which
// one it holds. [Schema] bundles a schema's name with its mapper and
// its reverse mapping, which the encode command uses to build fixture
// files from JSON.
package records
