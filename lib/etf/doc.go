// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package etf reads and writes the Erlang External Term Format, the
// byte layout produced by term_to_binary/1.
//
// The decoder is a recursive-descent reader that lifts a byte slice
// into a tree of [Term] values. It covers the tags that appear in
// exported record files (maps, tuples, atoms, binaries) plus the
// scalar and list tags those files commonly sit next to. Any other
// tag is a hard failure: the package never skips data it does not
// understand.
//
// A valid input is the version byte 131 followed by exactly one term.
// The term may be wrapped in the COMPRESSED tag, in which case the
// zlib payload is inflated and decoded in place. Trailing bytes after
// the top-level term are rejected.
//
// All failures are reported as [*DecodeError], which carries the byte
// offset and tag being read, and wraps one of the sentinel errors
// ([ErrTruncated], [ErrUnsupportedTag], ...) for errors.Is matching.
//
// [Encode] is the inverse and always picks the smallest tag that fits.
// [Format] renders Erlang source notation for diagnostics, and
// [ToNative] converts a term into plain Go values for JSON output.
package etf
