// Copyright (C) 2017 Google Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package vint_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/Le0X8/dh/core/assert"
	"github.com/Le0X8/dh/core/data/vint"
	"github.com/Le0X8/dh/core/fault"
	"github.com/Le0X8/dh/core/math/i128"
	"lukechampine.com/uint128"
)

var sample = []byte{0xc8, 0xe5, 0x6c}

func TestForwardDecode(t *testing.T) {
	ctx := assert.To(t)
	got, n, err := vint.Decode([]byte{0x90, 0x41}, vint.LE, 1)
	ctx.For("err").ThatError(err).Succeeded()
	ctx.For("value").That(got).Equals(uint128.From64(0x41<<7 | 0x10))
	ctx.For("length").ThatInteger(n).Equals(2)
}

func TestSample(t *testing.T) {
	ctx := assert.To(t)
	for _, test := range []struct {
		name     string
		o        vint.Orientation
		unsigned uint64
		signed   int64
	}{
		{"vu7/vi7", vint.LE, 0x6c<<14 | 0x65<<7 | 0x48, -(0x2c<<14 | 0x65<<7 | 0x48)},
		{"vu7r/vi7r", vint.LER, 0x48<<14 | 0x65<<7 | 0x6c, -(0x08<<14 | 0x65<<7 | 0x6c)},
	} {
		u, n, err := vint.Decode(sample, test.o, 1)
		ctx.For("%s unsigned", test.name).ThatError(err).Succeeded()
		ctx.For("%s unsigned", test.name).That(u).Equals(uint128.From64(test.unsigned))
		ctx.For("%s unsigned length", test.name).ThatInteger(n).Equals(3)

		s, n, err := vint.DecodeInt(sample, test.o, 1)
		ctx.For("%s signed", test.name).ThatError(err).Succeeded()
		ctx.For("%s signed", test.name).That(s).Equals(i128.From64(test.signed))
		ctx.For("%s signed length", test.name).ThatInteger(n).Equals(3)

		data, err := vint.Encode(test.o, 1, uint128.From64(test.unsigned))
		ctx.For("%s encode unsigned", test.name).ThatError(err).Succeeded()
		ctx.For("%s encode unsigned", test.name).ThatSlice(data).Equals(sample)

		data, err = vint.EncodeInt(test.o, 1, i128.From64(test.signed))
		ctx.For("%s encode signed", test.name).ThatError(err).Succeeded()
		ctx.For("%s encode signed", test.name).ThatSlice(data).Equals(sample)
	}
}

func TestEncoding(t *testing.T) {
	ctx := assert.To(t)
	for _, test := range []struct {
		o     vint.Orientation
		size  int
		value uint64
		data  []byte
	}{
		{vint.LE, 1, 0, []byte{0x00}},
		{vint.LE, 1, 127, []byte{0x7f}},
		{vint.LE, 1, 128, []byte{0x80, 0x01}},
		{vint.LER, 1, 128, []byte{0x81, 0x00}},
		{vint.BER, 1, 300, []byte{0x82, 0x2c}},
		{vint.LE, 2, 0x7fff, []byte{0xff, 0x7f}},
		{vint.BE, 2, 0x7fff, []byte{0x7f, 0xff}},
		{vint.LE, 2, 0x8000, []byte{0x00, 0x80, 0x01, 0x00}},
		{vint.BE, 2, 0x8000, []byte{0x80, 0x00, 0x00, 0x01}},
		{vint.BER, 2, 0x8000, []byte{0x80, 0x01, 0x00, 0x00}},
		{vint.LE, 4, 1, []byte{0x01, 0x00, 0x00, 0x00}},
	} {
		data, err := vint.Encode(test.o, test.size, uint128.From64(test.value))
		ctx.For("encode %d %v/%d", test.value, test.o, test.size).ThatError(err).Succeeded()
		ctx.For("encode %d %v/%d", test.value, test.o, test.size).ThatSlice(data).Equals(test.data)
		got, n, err := vint.Decode(test.data, test.o, test.size)
		ctx.For("decode %d %v/%d", test.value, test.o, test.size).ThatError(err).Succeeded()
		ctx.For("decode %d %v/%d", test.value, test.o, test.size).That(got).Equals(uint128.From64(test.value))
		ctx.For("decode %d %v/%d length", test.value, test.o, test.size).ThatInteger(n).Equals(len(test.data))
	}
}

func unsignedValues() []uint128.Uint128 {
	values := []uint128.Uint128{uint128.Zero, uint128.Max}
	for bit := uint(0); bit < 128; bit++ {
		one := uint128.From64(1).Lsh(bit)
		values = append(values, one, one.Sub64(1), one.Or64(0x5a5a))
	}
	return values
}

func signedValues() []i128.Int {
	values := []i128.Int{i128.Zero, i128.Max, i128.Min}
	for _, u := range unsignedValues() {
		v := i128.FromBits(u.Rsh(1))
		values = append(values, v, v.Neg())
	}
	return values
}

func TestRoundTrip(t *testing.T) {
	ctx := assert.To(t)
	for _, o := range vint.Orientations {
		for _, size := range vint.Sizes {
			for _, v := range unsignedValues() {
				buf := &bytes.Buffer{}
				if !ctx.For("write %v %v/%d", v, o, size).ThatError(vint.WriteUint(buf, o, size, v)).Succeeded() {
					continue
				}
				ctx.For("length %v %v/%d", v, o, size).ThatInteger(buf.Len()).Equals(vint.Len(v, size) * size)
				got, err := vint.ReadUint(buf, o, size)
				ctx.For("read %v %v/%d", v, o, size).ThatError(err).Succeeded()
				ctx.For("read %v %v/%d", v, o, size).That(got).Equals(v)
				ctx.For("consumed %v %v/%d", v, o, size).ThatInteger(buf.Len()).Equals(0)
			}
			for _, v := range signedValues() {
				buf := &bytes.Buffer{}
				if !ctx.For("write %v %v/%d", v, o, size).ThatError(vint.WriteInt(buf, o, size, v)).Succeeded() {
					continue
				}
				ctx.For("length %v %v/%d", v, o, size).ThatInteger(buf.Len()).Equals(vint.LenInt(v, size) * size)
				got, err := vint.ReadInt(buf, o, size)
				ctx.For("read %v %v/%d", v, o, size).ThatError(err).Succeeded()
				ctx.For("read %v %v/%d", v, o, size).That(got).Equals(v)
			}
		}
	}
}

func TestMinimal(t *testing.T) {
	ctx := assert.To(t)
	for _, size := range vint.Sizes {
		w := uint(size*8 - 1)
		for groups := 1; groups*int(w) < 128; groups++ {
			top := uint128.From64(1).Lsh(uint(groups) * w)
			data, err := vint.Encode(vint.LE, size, top.Sub64(1))
			ctx.For("fill %d groups of %d", groups, size).ThatError(err).Succeeded()
			ctx.For("fill %d groups of %d", groups, size).ThatInteger(len(data)).Equals(groups * size)
			data, err = vint.Encode(vint.LE, size, top)
			ctx.For("overflow %d groups of %d", groups, size).ThatError(err).Succeeded()
			ctx.For("overflow %d groups of %d", groups, size).ThatInteger(len(data)).Equals((groups + 1) * size)
		}
		ctx.For("max groups %d", size).ThatInteger(vint.Len(uint128.Max, size)).Equals(vint.MaxGroups(size))
		ctx.For("min groups %d", size).ThatInteger(vint.LenInt(i128.Min, size)).Equals(vint.MaxGroups(size))
	}
}

func TestNegativeZero(t *testing.T) {
	ctx := assert.To(t)
	got, _, err := vint.DecodeInt([]byte{0x40}, vint.LE, 1)
	ctx.For("err").ThatError(err).Succeeded()
	ctx.For("value").That(got).Equals(i128.Zero)
}

func TestOverflow(t *testing.T) {
	ctx := assert.To(t)
	// 19 groups of 7 bits can hold 133 bits.
	data := append(bytes.Repeat([]byte{0xff}, 18), 0x7f)
	_, _, err := vint.Decode(data, vint.LE, 1)
	ctx.For("unsigned").ThatError(err).Is(fault.InvalidData)

	data = append(bytes.Repeat([]byte{0x80}, 18), 0x20)
	_, _, err = vint.DecodeInt(data, vint.LE, 1)
	ctx.For("signed").ThatError(err).Is(fault.InvalidData)

	data = bytes.Repeat([]byte{0x80}, 20)
	_, _, err = vint.Decode(data, vint.LE, 1)
	ctx.For("too long").ThatError(err).Is(fault.InvalidData)
}

func TestTruncated(t *testing.T) {
	ctx := assert.To(t)
	_, _, err := vint.Decode([]byte{0x80}, vint.LE, 1)
	ctx.For("partial").ThatError(err).HasCause(io.ErrUnexpectedEOF)
	_, _, err = vint.Decode(nil, vint.LE, 1)
	ctx.For("empty").ThatError(err).HasCause(io.EOF)
	_, _, err = vint.Decode([]byte{0x00}, vint.LE, 2)
	ctx.For("short group").ThatError(err).HasCause(io.ErrUnexpectedEOF)
}

func TestBadSize(t *testing.T) {
	ctx := assert.To(t)
	for _, size := range []int{0, 3, 32} {
		_, err := vint.Encode(vint.LE, size, uint128.Zero)
		ctx.For("encode size %d", size).ThatError(err).Is(fault.InvalidInput)
		_, _, err = vint.Decode(make([]byte, 64), vint.LE, size)
		ctx.For("decode size %d", size).ThatError(err).Is(fault.InvalidInput)
	}
}

func TestOrientation(t *testing.T) {
	ctx := assert.To(t)
	var o vint.Orientation
	ctx.For("set").ThatError(o.Set("BER")).Succeeded()
	ctx.For("set").That(o).Equals(vint.BER)
	ctx.For("reversed").ThatBoolean(o.Reversed()).IsTrue()
	ctx.For("string").ThatString(o.String()).Equals("ber")
	ctx.For("bad").ThatError(o.Set("sideways")).Is(fault.InvalidInput)
}

func TestReversedZeroGroups(t *testing.T) {
	ctx := assert.To(t)
	for _, test := range []struct {
		name   string
		data   []byte
		o      vint.Orientation
		size   int
		expect uint64
	}{
		{"ler trailing zero", []byte{0x81, 0x00}, vint.LER, 1, 128},
		{"ler inner zero", []byte{0x81, 0x80, 0x00}, vint.LER, 1, 1 << 14},
		{"ber trailing zero", []byte{0x80, 0x01, 0x00, 0x00}, vint.BER, 2, 1 << 15},
	} {
		got, n, err := vint.Decode(test.data, test.o, test.size)
		ctx.For("%v", test.name).ThatError(err).Succeeded()
		ctx.For("%v", test.name).That(got).Equals(uint128.From64(test.expect))
		ctx.For("%v length", test.name).ThatInteger(n).Equals(len(test.data))

		data, err := vint.Encode(test.o, test.size, uint128.From64(test.expect))
		ctx.For("%v encode", test.name).ThatError(err).Succeeded()
		ctx.For("%v encode", test.name).ThatSlice(data).Equals(test.data)
	}
}
