// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package etf

import (
	"errors"
	"fmt"
)

var (
	ErrBadVersion      = errors.New("bad version byte")
	ErrTruncated       = errors.New("truncated input")
	ErrUnsupportedTag  = errors.New("unsupported tag")
	ErrInvalidUTF8     = errors.New("invalid UTF-8")
	ErrTrailingData    = errors.New("trailing data after term")
	ErrDepthExceeded   = errors.New("nesting depth exceeded")
	ErrCompressedSize  = errors.New("compressed term size mismatch")
	ErrTooLarge        = errors.New("term too large")
	ErrUnencodableTerm = errors.New("term cannot be encoded")
)

// DecodeError reports where decoding stopped. Offset is relative to
// the start of the input, or to the start of the inflated payload when
// Compressed is set. Tag is the tag byte whose payload was being read,
// or zero when the failure happened before a tag was consumed.
type DecodeError struct {
	Offset     int
	Tag        byte
	Compressed bool
	Err        error
}

func (e *DecodeError) Error() string {
	where := fmt.Sprintf("byte %d", e.Offset)
	if e.Compressed {
		where = fmt.Sprintf("byte %d of inflated payload", e.Offset)
	}
	if e.Tag != 0 {
		return fmt.Sprintf("etf: %v at %s (%s)", e.Err, where, tagName(e.Tag))
	}
	return fmt.Sprintf("etf: %v at %s", e.Err, where)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// IsDecodeError reports whether err came from decoding malformed
// input, as opposed to I/O or caller misuse.
func IsDecodeError(err error) bool {
	var decodeError *DecodeError
	return errors.As(err, &decodeError) || errors.Is(err, ErrInvalidUTF8)
}
