// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package etf

import (
	"math/big"
	"reflect"
	"testing"
)

func TestToNative_Kinds(t *testing.T) {
	huge, _ := new(big.Int).SetString("123456789012345678901234567890", 10)

	tests := []struct {
		name string
		term Term
		want any
	}{
		{"atom", Atom("ok"), "ok"},
		{"true", Atom("true"), true},
		{"false", Atom("false"), false},
		{"text binary", Binary("abc"), "abc"},
		{"raw binary", Binary{0xff, 0x00}, map[string]any{"$binary": "/wA="}},
		{"integer", Integer(-7), int64(-7)},
		{"float", Float(1.5), 1.5},
		{"big integer", BigInteger{Int: huge}, huge},
		{"text byte list", ByteList("hi"), "hi"},
		{"raw byte list", ByteList{0xff, 1}, []any{int64(255), int64(1)}},
		{"tuple", Tuple{Atom("a"), Integer(1)}, []any{"a", int64(1)}},
		{"proper list", List{Elements: []Term{Integer(1)}}, []any{int64(1)}},
		{
			"improper list",
			List{Elements: []Term{Integer(1)}, Tail: Atom("tail")},
			map[string]any{"$list": []any{int64(1)}, "$tail": "tail"},
		},
		{
			"map keys",
			Map{
				{Key: Atom("a"), Value: Integer(1)},
				{Key: Binary("b"), Value: Integer(2)},
				{Key: Integer(3), Value: Integer(3)},
			},
			map[string]any{"a": int64(1), "b": int64(2), "3": int64(3)},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := ToNative(test.term)
			if !reflect.DeepEqual(got, test.want) {
				t.Errorf("ToNative(%s) = %#v, want %#v", Format(test.term), got, test.want)
			}
		})
	}
}
