// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package source loads a term file into memory for decoding.
//
// [Read] takes a path (or "-" for stdin), reads the whole input in one
// pass under a size cap, optionally decodes hex text, and removes one
// layer of gzip, zstd, or LZ4 frame compression when the input starts
// with the matching magic number. The BLAKE3 digest of the bytes as
// read is kept so log lines can identify exactly which input produced
// a result.
package source
