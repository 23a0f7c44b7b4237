// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Termconv decodes files written by Erlang's term_to_binary/1 and
// prints their contents as structured text.
//
// The users and languages commands check the decoded term against the
// record layout of an API users file or a language images file and
// print the records as indented JSON keyed by id. The decode, diag,
// and encode commands work with arbitrary terms and build record files
// from JSON.
//
// Any argument pattern that does not select a command prints a short
// usage summary and exits 0. Errors are printed to stderr and exit 1.
package main
