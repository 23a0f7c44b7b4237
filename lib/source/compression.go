// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package source

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression identifies the outer framing removed from an input.
type Compression uint8

const (
	// CompressionNone means the input was used as read.
	CompressionNone Compression = iota

	// CompressionGzip is an RFC 1952 gzip member (1f 8b).
	CompressionGzip

	// CompressionZstd is a zstd frame (28 b5 2f fd).
	CompressionZstd

	// CompressionLZ4 is an LZ4 frame (04 22 4d 18). Raw LZ4 blocks
	// have no magic number and are not recognized.
	CompressionLZ4
)

// String returns the human-readable name of a compression kind.
func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionGzip:
		return "gzip"
	case CompressionZstd:
		return "zstd"
	case CompressionLZ4:
		return "lz4"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(c))
	}
}

var (
	gzipMagic = []byte{0x1f, 0x8b}
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
	lz4Magic  = []byte{0x04, 0x22, 0x4d, 0x18}
)

// Sniff reports the compression framing data starts with.
func Sniff(data []byte) Compression {
	switch {
	case bytes.HasPrefix(data, zstdMagic):
		return CompressionZstd
	case bytes.HasPrefix(data, lz4Magic):
		return CompressionLZ4
	case bytes.HasPrefix(data, gzipMagic):
		return CompressionGzip
	default:
		return CompressionNone
	}
}

// unwrap removes one layer of compression from data. The inflated
// size is bounded by limit.
func unwrap(data []byte, limit int64) ([]byte, Compression, error) {
	compression := Sniff(data)

	var reader io.Reader
	switch compression {
	case CompressionNone:
		return data, compression, nil

	case CompressionGzip:
		gzipReader, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, compression, fmt.Errorf("gzip: %w", err)
		}
		defer gzipReader.Close()
		reader = gzipReader

	case CompressionZstd:
		zstdReader, err := zstd.NewReader(bytes.NewReader(data),
			zstd.WithDecoderConcurrency(1),
			zstd.WithDecoderMaxMemory(uint64(limit)+1),
		)
		if err != nil {
			return nil, compression, fmt.Errorf("zstd: %w", err)
		}
		defer zstdReader.Close()
		reader = zstdReader

	case CompressionLZ4:
		reader = lz4.NewReader(bytes.NewReader(data))
	}

	inflated, err := readLimited(reader, limit)
	if err != nil {
		return nil, compression, fmt.Errorf("%s: %w", compression, err)
	}
	return inflated, compression, nil
}
