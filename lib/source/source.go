// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package source

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"unicode"

	"github.com/zeebo/blake3"
)

// DefaultMaxBytes caps both the bytes read and the bytes produced by
// decompression.
const DefaultMaxBytes = 256 << 20

// StdinPath is the path argument that selects standard input.
const StdinPath = "-"

var (
	// ErrTooLarge reports input (raw or inflated) beyond the limit.
	ErrTooLarge = errors.New("input exceeds size limit")

	// ErrEmpty reports an input with no bytes.
	ErrEmpty = errors.New("empty input")
)

// Options controls how [Read] loads an input.
type Options struct {
	// Hex treats the input as hex text. Whitespace between digits is
	// ignored.
	Hex bool

	// MaxBytes bounds the input size. Zero means [DefaultMaxBytes].
	MaxBytes int64

	// Stdin is read when the path is [StdinPath]. Nil means os.Stdin.
	Stdin io.Reader
}

// Input is a fully loaded term file.
type Input struct {
	// Path is the path the input was read from ("-" for stdin).
	Path string

	// Data holds the term bytes after hex decoding and decompression.
	Data []byte

	// RawSize is the number of bytes read from the file or stream.
	RawSize int

	// Compression is the framing removed from the input, if any.
	Compression Compression

	// Digest is the BLAKE3-256 hash of the bytes as read.
	Digest [32]byte
}

// DigestHex returns the digest as lowercase hex.
func (input *Input) DigestHex() string {
	return hex.EncodeToString(input.Digest[:])
}

// Read loads path into memory. A missing file yields an error that
// matches fs.ErrNotExist.
func Read(path string, options Options) (*Input, error) {
	limit := options.MaxBytes
	if limit <= 0 {
		limit = DefaultMaxBytes
	}

	raw, err := readPath(path, options.Stdin, limit)
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("read %s: %w", displayPath(path), ErrEmpty)
	}

	input := &Input{
		Path:    path,
		RawSize: len(raw),
		Digest:  blake3.Sum256(raw),
	}

	data := raw
	if options.Hex {
		data, err = decodeHexInput(data)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", displayPath(path), err)
		}
	}

	input.Data, input.Compression, err = unwrap(data, limit)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", displayPath(path), err)
	}
	return input, nil
}

func readPath(path string, stdin io.Reader, limit int64) ([]byte, error) {
	if path == StdinPath {
		if stdin == nil {
			stdin = os.Stdin
		}
		data, err := readLimited(stdin, limit)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return data, nil
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	data, err := readLimited(file, limit)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}

// readLimited reads r to EOF, failing with ErrTooLarge past limit
// bytes.
func readLimited(r io.Reader, limit int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("%w (%d bytes)", ErrTooLarge, limit)
	}
	return data, nil
}

// decodeHexInput strips whitespace from hex-encoded input and decodes
// it to binary bytes. Whitespace between hex digit pairs is allowed
// (e.g., "83 74 00 00 00 00" or "837400000000").
func decodeHexInput(data []byte) ([]byte, error) {
	cleaned := bytes.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, data)

	if len(cleaned) == 0 {
		return nil, fmt.Errorf("empty input after stripping whitespace from hex")
	}

	decoded := make([]byte, hex.DecodedLen(len(cleaned)))
	count, err := hex.Decode(decoded, cleaned)
	if err != nil {
		return nil, fmt.Errorf("decode hex: %w", err)
	}
	return decoded[:count], nil
}

func displayPath(path string) string {
	if path == StdinPath {
		return "stdin"
	}
	return path
}
