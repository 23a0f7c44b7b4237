// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package render writes decoded records and native values to an output
// stream in one of four encodings: JSON (the default), YAML, CBOR, or
// MessagePack.
//
// Text formats are deterministic: object keys at the top level are
// sorted and record fields follow [records.Record.Fields] order. Output
// is assembled in memory and written in a single call, so a failed
// render never leaves a partial document on the stream.
//
// JSON and YAML can be syntax highlighted for terminals. [Palette]
// picks a chroma formatter from the terminal's color profile.
package render
