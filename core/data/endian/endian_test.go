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

package endian_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/Le0X8/dh/core/assert"
	"github.com/Le0X8/dh/core/data/endian"
	"github.com/Le0X8/dh/core/fault"
	"github.com/Le0X8/dh/core/math/i128"
	"lukechampine.com/uint128"
)

func TestUint(t *testing.T) {
	ctx := assert.To(t)
	for _, test := range []struct {
		order endian.ByteOrder
		size  int
		value uint128.Uint128
		data  []byte
	}{
		{endian.Little, 1, uint128.From64(0x7f), []byte{0x7f}},
		{endian.Big, 2, uint128.From64(0x0102), []byte{0x01, 0x02}},
		{endian.Little, 2, uint128.From64(0x0102), []byte{0x02, 0x01}},
		{endian.Little, 3, uint128.From64(0x010203), []byte{0x03, 0x02, 0x01}},
		{endian.Big, 3, uint128.From64(0x010203), []byte{0x01, 0x02, 0x03}},
		{endian.Big, 8, uint128.From64(0x0102030405060708), []byte{1, 2, 3, 4, 5, 6, 7, 8}},
		{endian.Little, 9, uint128.New(0x0807060504030201, 0x09), []byte{1, 2, 3, 4, 5, 6, 7, 8, 9}},
		{endian.Big, 16, uint128.Max, bytes.Repeat([]byte{0xff}, 16)},
	} {
		buf := &bytes.Buffer{}
		ctx.For("write %v %d", test.order, test.size).ThatError(
			endian.WriteUint(buf, test.order, test.size, test.value)).Succeeded()
		ctx.For("write %v %d", test.order, test.size).ThatSlice(buf.Bytes()).Equals(test.data)
		got, err := endian.ReadUint(bytes.NewReader(test.data), test.order, test.size)
		ctx.For("read %v %d", test.order, test.size).ThatError(err).Succeeded()
		ctx.For("read %v %d", test.order, test.size).That(got).Equals(test.value)
	}
}

func TestUintBound(t *testing.T) {
	ctx := assert.To(t)
	for size := 1; size < endian.MaxSize; size++ {
		limit := uint128.From64(1).Lsh(uint(size) * 8)
		ctx.For("size %d below limit", size).ThatError(
			endian.WriteUint(io.Discard, endian.Little, size, limit.Sub64(1))).Succeeded()
		ctx.For("size %d at limit", size).ThatError(
			endian.WriteUint(io.Discard, endian.Little, size, limit)).Is(fault.InvalidInput)
	}
	ctx.For("size 16 max").ThatError(
		endian.WriteUint(io.Discard, endian.Big, 16, uint128.Max)).Succeeded()
}

func TestInt(t *testing.T) {
	ctx := assert.To(t)
	for _, test := range []struct {
		order endian.ByteOrder
		size  int
		value int64
		data  []byte
	}{
		{endian.Little, 3, -0x010203, []byte{0xfd, 0xfd, 0xfe}},
		{endian.Big, 3, -0x010203, []byte{0xfe, 0xfd, 0xfd}},
		{endian.Little, 1, -1, []byte{0xff}},
		{endian.Little, 1, -128, []byte{0x80}},
		{endian.Big, 2, 0x7fff, []byte{0x7f, 0xff}},
		{endian.Little, 4, -2, []byte{0xfe, 0xff, 0xff, 0xff}},
	} {
		buf := &bytes.Buffer{}
		v := i128.From64(test.value)
		ctx.For("write %d", test.value).ThatError(endian.WriteInt(buf, test.order, test.size, v)).Succeeded()
		ctx.For("write %d", test.value).ThatSlice(buf.Bytes()).Equals(test.data)
		got, err := endian.ReadInt(buf, test.order, test.size)
		ctx.For("read %d", test.value).ThatError(err).Succeeded()
		ctx.For("read %d", test.value).That(got).Equals(v)
	}
	buf := &bytes.Buffer{}
	ctx.For("int128 min").ThatError(endian.WriteInt(buf, endian.Little, 16, i128.Min)).Succeeded()
	got, err := endian.ReadInt(buf, endian.Little, 16)
	ctx.For("int128 min").ThatError(err).Succeeded()
	ctx.For("int128 min").That(got).Equals(i128.Min)
}

func TestIntBound(t *testing.T) {
	ctx := assert.To(t)
	ctx.For("128 in 1 byte").ThatError(
		endian.WriteInt(io.Discard, endian.Little, 1, i128.From64(128))).Is(fault.InvalidInput)
	ctx.For("-129 in 1 byte").ThatError(
		endian.WriteInt(io.Discard, endian.Little, 1, i128.From64(-129))).Is(fault.InvalidInput)
	ctx.For("-0x800000 in 3 bytes").ThatError(
		endian.WriteInt(io.Discard, endian.Little, 3, i128.From64(-0x800000))).Succeeded()
}

func TestSize(t *testing.T) {
	ctx := assert.To(t)
	for _, size := range []int{0, -1, 17} {
		_, err := endian.ReadUint(bytes.NewReader(make([]byte, 32)), endian.Little, size)
		ctx.For("read size %d", size).ThatError(err).Is(fault.InvalidInput)
		ctx.For("write size %d", size).ThatError(
			endian.WriteUint(io.Discard, endian.Little, size, uint128.Zero)).Is(fault.InvalidInput)
	}
}

func TestShortRead(t *testing.T) {
	ctx := assert.To(t)
	_, err := endian.ReadUint(bytes.NewReader([]byte{1, 2}), endian.Little, 4)
	ctx.For("partial").ThatError(err).HasCause(io.ErrUnexpectedEOF)
	_, err = endian.ReadUint(bytes.NewReader(nil), endian.Little, 4)
	ctx.For("empty").ThatError(err).HasCause(io.EOF)
}

func TestByteOrderFlag(t *testing.T) {
	ctx := assert.To(t)
	var o endian.ByteOrder
	ctx.For("be").ThatError(o.Set("BE")).Succeeded()
	ctx.For("be").That(o).Equals(endian.Big)
	ctx.For("string").ThatString(o.String()).Equals("be")
	ctx.For("bad").ThatError(o.Set("middle")).Is(fault.InvalidInput)
}
