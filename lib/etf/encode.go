// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package etf

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"math/big"

	"github.com/klauspost/compress/zlib"
)

type encodeOptions struct {
	compress bool
	level    int
}

// EncodeOption configures [Encode].
type EncodeOption func(*encodeOptions)

// WithCompression wraps the encoded term in the COMPRESSED tag using
// zlib at the given level (zlib.BestSpeed through zlib.BestCompression,
// or zlib.DefaultCompression).
func WithCompression(level int) EncodeOption {
	return func(options *encodeOptions) {
		options.compress = true
		options.level = level
	}
}

// Encode writes term in the external term format, including the
// leading version byte.
func Encode(term Term, opts ...EncodeOption) ([]byte, error) {
	var options encodeOptions
	for _, opt := range opts {
		opt(&options)
	}

	body := &encoder{}
	if err := body.term(term); err != nil {
		return nil, err
	}

	if !options.compress {
		return append([]byte{VersionTag}, body.buf...), nil
	}

	if uint64(len(body.buf)) > math.MaxUint32 {
		return nil, fmt.Errorf("%w: %d bytes exceeds COMPRESSED size field", ErrTooLarge, len(body.buf))
	}
	var out bytes.Buffer
	out.WriteByte(VersionTag)
	out.WriteByte(tagCompressed)
	var size [4]byte
	binary.BigEndian.PutUint32(size[:], uint32(len(body.buf)))
	out.Write(size[:])

	zw, err := zlib.NewWriterLevel(&out, options.level)
	if err != nil {
		return nil, fmt.Errorf("zlib writer: %w", err)
	}
	if _, err := zw.Write(body.buf); err != nil {
		return nil, fmt.Errorf("zlib write: %w", err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("zlib close: %w", err)
	}
	return out.Bytes(), nil
}

type encoder struct {
	buf []byte
}

func (e *encoder) putByte(b byte) { e.buf = append(e.buf, b) }

func (e *encoder) u16(v uint16) { e.buf = binary.BigEndian.AppendUint16(e.buf, v) }

func (e *encoder) u32(v uint32) { e.buf = binary.BigEndian.AppendUint32(e.buf, v) }

// length writes a 4-byte length prefix, rejecting counts that do not
// fit the wire field.
func (e *encoder) length(n int) error {
	if uint64(n) > math.MaxUint32 {
		return fmt.Errorf("%w: length %d", ErrTooLarge, n)
	}
	e.u32(uint32(n))
	return nil
}

func (e *encoder) term(term Term) error {
	switch value := term.(type) {
	case Atom:
		return e.atom(value)

	case Binary:
		e.putByte(tagBinary)
		if err := e.length(len(value)); err != nil {
			return err
		}
		e.buf = append(e.buf, value...)
		return nil

	case Tuple:
		if len(value) <= math.MaxUint8 {
			e.putByte(tagSmallTuple)
			e.putByte(byte(len(value)))
		} else {
			e.putByte(tagLargeTuple)
			if err := e.length(len(value)); err != nil {
				return err
			}
		}
		for _, element := range value {
			if err := e.term(element); err != nil {
				return err
			}
		}
		return nil

	case Map:
		e.putByte(tagMap)
		if err := e.length(len(value)); err != nil {
			return err
		}
		for _, entry := range value {
			if err := e.term(entry.Key); err != nil {
				return err
			}
			if err := e.term(entry.Value); err != nil {
				return err
			}
		}
		return nil

	case Integer:
		return e.integer(int64(value))

	case BigInteger:
		if value.Int == nil {
			return fmt.Errorf("%w: nil BigInteger", ErrUnencodableTerm)
		}
		return e.bigInteger(value.Int)

	case Float:
		e.putByte(tagNewFloat)
		e.buf = binary.BigEndian.AppendUint64(e.buf, math.Float64bits(float64(value)))
		return nil

	case List:
		return e.list(value)

	case ByteList:
		if len(value) <= math.MaxUint16 {
			e.putByte(tagString)
			e.u16(uint16(len(value)))
			e.buf = append(e.buf, value...)
			return nil
		}
		elements := make([]Term, len(value))
		for i, b := range value {
			elements[i] = Integer(b)
		}
		return e.list(List{Elements: elements})

	case nil:
		return fmt.Errorf("%w: nil term", ErrUnencodableTerm)

	default:
		return fmt.Errorf("%w: %T", ErrUnencodableTerm, term)
	}
}

func (e *encoder) atom(name Atom) error {
	switch {
	case len(name) <= math.MaxUint8:
		e.putByte(tagSmallAtomUTF8)
		e.putByte(byte(len(name)))
	case len(name) <= math.MaxUint16:
		e.putByte(tagAtomUTF8)
		e.u16(uint16(len(name)))
	default:
		return fmt.Errorf("%w: atom of %d bytes", ErrTooLarge, len(name))
	}
	e.buf = append(e.buf, name...)
	return nil
}

func (e *encoder) integer(value int64) error {
	switch {
	case value >= 0 && value <= math.MaxUint8:
		e.putByte(tagSmallInteger)
		e.putByte(byte(value))
	case value >= math.MinInt32 && value <= math.MaxInt32:
		e.putByte(tagInteger)
		e.u32(uint32(int32(value)))
	default:
		return e.bigInteger(big.NewInt(value))
	}
	return nil
}

func (e *encoder) bigInteger(value *big.Int) error {
	magnitude := new(big.Int).Abs(value).Bytes()
	if len(magnitude) <= math.MaxUint8 {
		e.putByte(tagSmallBig)
		e.putByte(byte(len(magnitude)))
	} else {
		e.putByte(tagLargeBig)
		if err := e.length(len(magnitude)); err != nil {
			return err
		}
	}
	if value.Sign() < 0 {
		e.putByte(1)
	} else {
		e.putByte(0)
	}
	for i := len(magnitude) - 1; i >= 0; i-- {
		e.putByte(magnitude[i])
	}
	return nil
}

func (e *encoder) list(value List) error {
	if len(value.Elements) == 0 && value.Tail == nil {
		e.putByte(tagNil)
		return nil
	}
	e.putByte(tagList)
	if err := e.length(len(value.Elements)); err != nil {
		return err
	}
	for _, element := range value.Elements {
		if err := e.term(element); err != nil {
			return err
		}
	}
	if value.Tail == nil {
		e.putByte(tagNil)
		return nil
	}
	return e.term(value.Tail)
}
