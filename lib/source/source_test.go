// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package source

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/zeebo/blake3"
)

// termBytes is an ETF map #{<<"py">> => {<<"a">>,<<"b">>,<<"c">>}}.
var termBytes = []byte{
	131, 116, 0, 0, 0, 1,
	109, 0, 0, 0, 2, 'p', 'y',
	104, 3,
	109, 0, 0, 0, 1, 'a',
	109, 0, 0, 0, 1, 'b',
	109, 0, 0, 0, 1, 'c',
}

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func gzipBytes(t *testing.T, data []byte) []byte {
	t.Helper()
	var buffer bytes.Buffer
	writer := gzip.NewWriter(&buffer)
	if _, err := writer.Write(data); err != nil {
		t.Fatalf("gzip write: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("gzip close: %v", err)
	}
	return buffer.Bytes()
}

func zstdBytes(t *testing.T, data []byte) []byte {
	t.Helper()
	encoder, err := zstd.NewWriter(nil)
	if err != nil {
		t.Fatalf("zstd.NewWriter: %v", err)
	}
	defer encoder.Close()
	return encoder.EncodeAll(data, nil)
}

func lz4Bytes(t *testing.T, data []byte) []byte {
	t.Helper()
	var buffer bytes.Buffer
	writer := lz4.NewWriter(&buffer)
	if _, err := writer.Write(data); err != nil {
		t.Fatalf("lz4 write: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("lz4 close: %v", err)
	}
	return buffer.Bytes()
}

func TestRead_Raw(t *testing.T) {
	path := writeFile(t, "languages.dat", termBytes)

	input, err := Read(path, Options{})
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if !bytes.Equal(input.Data, termBytes) {
		t.Errorf("Data = %x, want %x", input.Data, termBytes)
	}
	if input.Compression != CompressionNone {
		t.Errorf("Compression = %s, want none", input.Compression)
	}
	if input.RawSize != len(termBytes) {
		t.Errorf("RawSize = %d, want %d", input.RawSize, len(termBytes))
	}
	if input.Digest != blake3.Sum256(termBytes) {
		t.Errorf("Digest = %s, want BLAKE3 of the file", input.DigestHex())
	}
	if len(input.DigestHex()) != 64 {
		t.Errorf("DigestHex length = %d, want 64", len(input.DigestHex()))
	}
}

func TestRead_Compressed(t *testing.T) {
	tests := []struct {
		name        string
		wrap        func(*testing.T, []byte) []byte
		compression Compression
	}{
		{"gzip", gzipBytes, CompressionGzip},
		{"zstd", zstdBytes, CompressionZstd},
		{"lz4", lz4Bytes, CompressionLZ4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := tt.wrap(t, termBytes)
			path := writeFile(t, "languages.dat."+tt.name, wrapped)

			input, err := Read(path, Options{})
			if err != nil {
				t.Fatalf("Read: %v", err)
			}
			if !bytes.Equal(input.Data, termBytes) {
				t.Errorf("Data = %x, want %x", input.Data, termBytes)
			}
			if input.Compression != tt.compression {
				t.Errorf("Compression = %s, want %s", input.Compression, tt.compression)
			}
			if input.RawSize != len(wrapped) {
				t.Errorf("RawSize = %d, want %d", input.RawSize, len(wrapped))
			}
			if input.Digest != blake3.Sum256(wrapped) {
				t.Error("Digest is not the hash of the bytes as read")
			}
		})
	}
}

func TestRead_MissingFile(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "missing.dat"), Options{})
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("error = %v, want fs.ErrNotExist", err)
	}
}

func TestRead_Empty(t *testing.T) {
	path := writeFile(t, "empty.dat", nil)
	_, err := Read(path, Options{})
	if !errors.Is(err, ErrEmpty) {
		t.Fatalf("error = %v, want ErrEmpty", err)
	}
}

func TestRead_TooLarge(t *testing.T) {
	path := writeFile(t, "languages.dat", termBytes)
	_, err := Read(path, Options{MaxBytes: 8})
	if !errors.Is(err, ErrTooLarge) {
		t.Fatalf("error = %v, want ErrTooLarge", err)
	}
}

func TestRead_InflatedTooLarge(t *testing.T) {
	payload := bytes.Repeat([]byte{0}, 4096)
	path := writeFile(t, "zeros.gz", gzipBytes(t, payload))
	_, err := Read(path, Options{MaxBytes: 1024})
	if !errors.Is(err, ErrTooLarge) {
		t.Fatalf("error = %v, want ErrTooLarge", err)
	}
}

func TestRead_CorruptCompression(t *testing.T) {
	wrapped := gzipBytes(t, termBytes)
	wrapped = wrapped[:len(wrapped)-6]
	path := writeFile(t, "truncated.gz", wrapped)
	if _, err := Read(path, Options{}); err == nil {
		t.Fatal("expected error for truncated gzip")
	}
}

func TestRead_Stdin(t *testing.T) {
	input, err := Read(StdinPath, Options{Stdin: bytes.NewReader(termBytes)})
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if input.Path != "-" || !bytes.Equal(input.Data, termBytes) {
		t.Errorf("input = %+v", input)
	}
}

func TestRead_Hex(t *testing.T) {
	text := "83 74 00 00 00 00\n"
	input, err := Read(StdinPath, Options{Hex: true, Stdin: strings.NewReader(text)})
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	want := []byte{131, 116, 0, 0, 0, 0}
	if !bytes.Equal(input.Data, want) {
		t.Errorf("Data = %x, want %x", input.Data, want)
	}
}

func TestRead_HexErrors(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"whitespace only", " \n\t"},
		{"odd digits", "837"},
		{"not hex", "zz"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(StdinPath, Options{Hex: true, Stdin: strings.NewReader(tt.text)})
			if err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestSniff(t *testing.T) {
	tests := []struct {
		data []byte
		want Compression
	}{
		{termBytes, CompressionNone},
		{[]byte{0x1f, 0x8b, 8}, CompressionGzip},
		{[]byte{0x28, 0xb5, 0x2f, 0xfd, 0}, CompressionZstd},
		{[]byte{0x04, 0x22, 0x4d, 0x18}, CompressionLZ4},
		{[]byte{0x1f}, CompressionNone},
		{nil, CompressionNone},
	}
	for _, tt := range tests {
		if got := Sniff(tt.data); got != tt.want {
			t.Errorf("Sniff(%x) = %s, want %s", tt.data, got, tt.want)
		}
	}
}

func TestCompression_String(t *testing.T) {
	if CompressionZstd.String() != "zstd" {
		t.Errorf("CompressionZstd.String() = %q", CompressionZstd.String())
	}
	if Compression(9).String() != "unknown(9)" {
		t.Errorf("Compression(9).String() = %q", Compression(9).String())
	}
}
