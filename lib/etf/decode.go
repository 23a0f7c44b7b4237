// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package etf

import (
	"bytes"
	"encoding/binary"
	"io"
	"math"
	"math/big"
	"unicode/utf8"

	"github.com/klauspost/compress/zlib"
)

// DefaultMaxDepth bounds container nesting when no [WithMaxDepth]
// option is given. Record files nest three levels deep; the limit only
// exists to stop crafted input from exhausting the stack.
const DefaultMaxDepth = 512

// DefaultMaxInflatedSize bounds the declared size of a COMPRESSED
// payload when no [WithMaxInflatedSize] option is given.
const DefaultMaxInflatedSize = 256 << 20

type decodeOptions struct {
	maxDepth        int
	maxInflatedSize int
}

// DecodeOption configures [Decode].
type DecodeOption func(*decodeOptions)

// WithMaxDepth sets the maximum container nesting depth.
func WithMaxDepth(depth int) DecodeOption {
	return func(options *decodeOptions) {
		if depth > 0 {
			options.maxDepth = depth
		}
	}
}

// WithMaxInflatedSize sets the largest uncompressed size accepted for
// a COMPRESSED term.
func WithMaxInflatedSize(size int) DecodeOption {
	return func(options *decodeOptions) {
		if size > 0 {
			options.maxInflatedSize = size
		}
	}
}

// Decode parses data as a single versioned term. data must hold the
// version byte, one term, and nothing else.
func Decode(data []byte, opts ...DecodeOption) (Term, error) {
	options := decodeOptions{
		maxDepth:        DefaultMaxDepth,
		maxInflatedSize: DefaultMaxInflatedSize,
	}
	for _, opt := range opts {
		opt(&options)
	}

	if len(data) == 0 {
		return nil, &DecodeError{Offset: 0, Err: ErrTruncated}
	}
	if data[0] != VersionTag {
		return nil, &DecodeError{Offset: 0, Err: ErrBadVersion}
	}

	reader := &decoder{data: data, pos: 1, maxDepth: options.maxDepth}
	if len(data) > 1 && data[1] == tagCompressed {
		payload, err := inflate(data, options.maxInflatedSize)
		if err != nil {
			return nil, err
		}
		reader = &decoder{data: payload, maxDepth: options.maxDepth, compressed: true}
	}

	term, err := reader.term()
	if err != nil {
		return nil, err
	}
	if reader.pos != len(reader.data) {
		return nil, reader.fail(reader.pos, 0, ErrTrailingData)
	}
	return term, nil
}

// inflate unpacks a COMPRESSED wrapper: 131, 80, a 4-byte big-endian
// uncompressed size, then a zlib stream running to the end of data.
func inflate(data []byte, limit int) ([]byte, error) {
	const headerLen = 6
	if len(data) < headerLen {
		return nil, &DecodeError{Offset: len(data), Tag: tagCompressed, Err: ErrTruncated}
	}
	size := binary.BigEndian.Uint32(data[2:headerLen])
	if uint64(size) > uint64(limit) {
		return nil, &DecodeError{Offset: 2, Tag: tagCompressed, Err: ErrTooLarge}
	}

	zr, err := zlib.NewReader(bytes.NewReader(data[headerLen:]))
	if err != nil {
		return nil, &DecodeError{Offset: headerLen, Tag: tagCompressed, Err: err}
	}
	defer zr.Close()

	// Read one byte past the declared size so an oversized stream is
	// caught instead of silently truncated.
	payload, err := io.ReadAll(io.LimitReader(zr, int64(size)+1))
	if err != nil {
		return nil, &DecodeError{Offset: headerLen, Tag: tagCompressed, Err: err}
	}
	if len(payload) != int(size) {
		return nil, &DecodeError{Offset: headerLen, Tag: tagCompressed, Err: ErrCompressedSize}
	}
	return payload, nil
}

type decoder struct {
	data       []byte
	pos        int
	depth      int
	maxDepth   int
	compressed bool
}

func (d *decoder) fail(offset int, tag byte, err error) *DecodeError {
	return &DecodeError{Offset: offset, Tag: tag, Compressed: d.compressed, Err: err}
}

// read consumes exactly n bytes.
func (d *decoder) read(n int, tag byte) ([]byte, error) {
	if n < 0 || n > len(d.data)-d.pos {
		return nil, d.fail(d.pos, tag, ErrTruncated)
	}
	buf := d.data[d.pos : d.pos+n]
	d.pos += n
	return buf, nil
}

func (d *decoder) u8(tag byte) (uint8, error) {
	b, err := d.read(1, tag)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (d *decoder) u16(tag byte) (uint16, error) {
	b, err := d.read(2, tag)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(b), nil
}

func (d *decoder) u32(tag byte) (uint32, error) {
	b, err := d.read(4, tag)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b), nil
}

// capacity returns a safe preallocation size for count elements that
// each occupy at least minBytes of input.
func (d *decoder) capacity(count uint32, minBytes int) int {
	remaining := (len(d.data) - d.pos) / minBytes
	if uint64(count) > uint64(remaining) {
		return remaining
	}
	return int(count)
}

func (d *decoder) enter(offset int, tag byte) error {
	d.depth++
	if d.depth > d.maxDepth {
		return d.fail(offset, tag, ErrDepthExceeded)
	}
	return nil
}

func (d *decoder) leave() { d.depth-- }

func (d *decoder) term() (Term, error) {
	start := d.pos
	tag, err := d.u8(0)
	if err != nil {
		return nil, err
	}

	switch tag {
	case tagSmallInteger:
		value, err := d.u8(tag)
		if err != nil {
			return nil, err
		}
		return Integer(value), nil

	case tagInteger:
		value, err := d.u32(tag)
		if err != nil {
			return nil, err
		}
		return Integer(int32(value)), nil

	case tagNewFloat:
		b, err := d.read(8, tag)
		if err != nil {
			return nil, err
		}
		return Float(math.Float64frombits(binary.BigEndian.Uint64(b))), nil

	case tagAtom, tagAtomUTF8:
		length, err := d.u16(tag)
		if err != nil {
			return nil, err
		}
		return d.atom(start, tag, int(length))

	case tagSmallAtom, tagSmallAtomUTF8:
		length, err := d.u8(tag)
		if err != nil {
			return nil, err
		}
		return d.atom(start, tag, int(length))

	case tagBinary:
		length, err := d.u32(tag)
		if err != nil {
			return nil, err
		}
		b, err := d.read(int(length), tag)
		if err != nil {
			return nil, err
		}
		return Binary(bytes.Clone(b)), nil

	case tagSmallTuple:
		arity, err := d.u8(tag)
		if err != nil {
			return nil, err
		}
		return d.tuple(start, tag, uint32(arity))

	case tagLargeTuple:
		arity, err := d.u32(tag)
		if err != nil {
			return nil, err
		}
		return d.tuple(start, tag, arity)

	case tagMap:
		arity, err := d.u32(tag)
		if err != nil {
			return nil, err
		}
		return d.mapTerm(start, tag, arity)

	case tagNil:
		return List{}, nil

	case tagString:
		length, err := d.u16(tag)
		if err != nil {
			return nil, err
		}
		b, err := d.read(int(length), tag)
		if err != nil {
			return nil, err
		}
		return ByteList(bytes.Clone(b)), nil

	case tagList:
		length, err := d.u32(tag)
		if err != nil {
			return nil, err
		}
		return d.list(start, tag, length)

	case tagSmallBig:
		digits, err := d.u8(tag)
		if err != nil {
			return nil, err
		}
		return d.bigInteger(tag, int(digits))

	case tagLargeBig:
		digits, err := d.u32(tag)
		if err != nil {
			return nil, err
		}
		return d.bigInteger(tag, int(digits))

	default:
		return nil, d.fail(start, tag, ErrUnsupportedTag)
	}
}

// atom reads an atom name. The latin-1 tags are accepted only when the
// bytes are valid UTF-8, which holds for every ASCII name.
func (d *decoder) atom(start int, tag byte, length int) (Term, error) {
	b, err := d.read(length, tag)
	if err != nil {
		return nil, err
	}
	if !utf8.Valid(b) {
		return nil, d.fail(start, tag, ErrInvalidUTF8)
	}
	return Atom(b), nil
}

func (d *decoder) tuple(start int, tag byte, arity uint32) (Term, error) {
	if err := d.enter(start, tag); err != nil {
		return nil, err
	}
	defer d.leave()

	elements := make(Tuple, 0, d.capacity(arity, 1))
	for range arity {
		element, err := d.term()
		if err != nil {
			return nil, err
		}
		elements = append(elements, element)
	}
	return elements, nil
}

func (d *decoder) mapTerm(start int, tag byte, arity uint32) (Term, error) {
	if err := d.enter(start, tag); err != nil {
		return nil, err
	}
	defer d.leave()

	entries := make(Map, 0, d.capacity(arity, 2))
	for range arity {
		key, err := d.term()
		if err != nil {
			return nil, err
		}
		value, err := d.term()
		if err != nil {
			return nil, err
		}
		entries = append(entries, MapEntry{Key: key, Value: value})
	}
	return entries, nil
}

func (d *decoder) list(start int, tag byte, length uint32) (Term, error) {
	if err := d.enter(start, tag); err != nil {
		return nil, err
	}
	defer d.leave()

	elements := make([]Term, 0, d.capacity(length, 1))
	for range length {
		element, err := d.term()
		if err != nil {
			return nil, err
		}
		elements = append(elements, element)
	}

	tail, err := d.term()
	if err != nil {
		return nil, err
	}
	if empty, ok := tail.(List); ok && len(empty.Elements) == 0 && empty.Tail == nil {
		return List{Elements: elements}, nil
	}
	return List{Elements: elements, Tail: tail}, nil
}

// bigInteger reads a sign byte and little-endian base-256 digits.
// Values that fit in an int64 come back as [Integer].
func (d *decoder) bigInteger(tag byte, digits int) (Term, error) {
	sign, err := d.u8(tag)
	if err != nil {
		return nil, err
	}
	magnitude, err := d.read(digits, tag)
	if err != nil {
		return nil, err
	}

	bigEndian := make([]byte, len(magnitude))
	for i, digit := range magnitude {
		bigEndian[len(magnitude)-1-i] = digit
	}
	value := new(big.Int).SetBytes(bigEndian)
	if sign != 0 {
		value.Neg(value)
	}
	if value.IsInt64() {
		return Integer(value.Int64()), nil
	}
	return BigInteger{Int: value}, nil
}
