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

package binary

import (
	"io"
	"math"

	"github.com/Le0X8/dh/core/data/endian"
	"github.com/Le0X8/dh/core/data/vint"
	"github.com/Le0X8/dh/core/math/i128"
	"github.com/pkg/errors"
	"lukechampine.com/uint128"
)

// writeOps encodes values to a Writable.
type writeOps struct {
	*stream
	dst Writable
}

// Writer encodes values to a Writable backend.
type Writer struct {
	writeOps
}

// NewWriter returns a Writer over dst positioned wherever dst currently is.
func NewWriter(dst Writable) *Writer {
	return &Writer{writeOps{&stream{s: dst}, dst}}
}

// Write implements io.Writer.
func (w writeOps) Write(p []byte) (int, error) {
	if err := w.guard(); err != nil {
		return 0, err
	}
	return w.dst.Write(p)
}

// Alloc grows the backing store to at least size bytes.
func (w writeOps) Alloc(size int64) error {
	if err := w.guard(); err != nil {
		return err
	}
	return w.dst.Alloc(size)
}

// WriteBytes writes all of b.
func (w writeOps) WriteBytes(b []byte) error {
	n, err := w.Write(b)
	if err != nil {
		return errors.Wrapf(err, "after writing %d bytes", n)
	}
	if n != len(b) {
		return io.ErrShortWrite
	}
	return nil
}

// WriteUint writes v as a size byte unsigned integer.
func (w writeOps) WriteUint(order endian.ByteOrder, size int, v uint128.Uint128) error {
	if err := w.guard(); err != nil {
		return err
	}
	return endian.WriteUint(w.dst, order, size, v)
}

// WriteInt writes v as a size byte two's complement integer.
func (w writeOps) WriteInt(order endian.ByteOrder, size int, v i128.Int) error {
	if err := w.guard(); err != nil {
		return err
	}
	return endian.WriteInt(w.dst, order, size, v)
}

// WriteUint8 writes an unsigned, 8 bit integer.
func (w writeOps) WriteUint8(v uint8) error {
	return w.WriteUint(endian.Little, 1, uint128.From64(uint64(v)))
}

// WriteUint16 writes an unsigned, 16 bit integer.
func (w writeOps) WriteUint16(order endian.ByteOrder, v uint16) error {
	return w.WriteUint(order, 2, uint128.From64(uint64(v)))
}

// WriteUint32 writes an unsigned, 32 bit integer.
func (w writeOps) WriteUint32(order endian.ByteOrder, v uint32) error {
	return w.WriteUint(order, 4, uint128.From64(uint64(v)))
}

// WriteUint64 writes an unsigned, 64 bit integer.
func (w writeOps) WriteUint64(order endian.ByteOrder, v uint64) error {
	return w.WriteUint(order, 8, uint128.From64(v))
}

// WriteUint128 writes an unsigned, 128 bit integer.
func (w writeOps) WriteUint128(order endian.ByteOrder, v uint128.Uint128) error {
	return w.WriteUint(order, 16, v)
}

// WriteInt8 writes a signed, 8 bit integer.
func (w writeOps) WriteInt8(v int8) error {
	return w.WriteInt(endian.Little, 1, i128.From64(int64(v)))
}

// WriteInt16 writes a signed, 16 bit integer.
func (w writeOps) WriteInt16(order endian.ByteOrder, v int16) error {
	return w.WriteInt(order, 2, i128.From64(int64(v)))
}

// WriteInt32 writes a signed, 32 bit integer.
func (w writeOps) WriteInt32(order endian.ByteOrder, v int32) error {
	return w.WriteInt(order, 4, i128.From64(int64(v)))
}

// WriteInt64 writes a signed, 64 bit integer.
func (w writeOps) WriteInt64(order endian.ByteOrder, v int64) error {
	return w.WriteInt(order, 8, i128.From64(v))
}

// WriteInt128 writes a signed, 128 bit integer.
func (w writeOps) WriteInt128(order endian.ByteOrder, v i128.Int) error {
	return w.WriteInt(order, 16, v)
}

// WriteFloat32 writes a 32 bit IEEE 754 floating-point value.
func (w writeOps) WriteFloat32(order endian.ByteOrder, v float32) error {
	return w.WriteUint32(order, math.Float32bits(v))
}

// WriteFloat64 writes a 64 bit IEEE 754 floating-point value.
func (w writeOps) WriteFloat64(order endian.ByteOrder, v float64) error {
	return w.WriteUint64(order, math.Float64bits(v))
}

// WriteBool writes true as 1 and false as 0.
func (w writeOps) WriteBool(v bool) error {
	if v {
		return w.WriteUint8(1)
	}
	return w.WriteUint8(0)
}

// WriteVarUint writes v as an unsigned varint.
func (w writeOps) WriteVarUint(o vint.Orientation, size int, v uint128.Uint128) error {
	if err := w.guard(); err != nil {
		return err
	}
	return vint.WriteUint(w.dst, o, size, v)
}

// WriteVarInt writes v as a signed varint.
func (w writeOps) WriteVarInt(o vint.Orientation, size int, v i128.Int) error {
	if err := w.guard(); err != nil {
		return err
	}
	return vint.WriteInt(w.dst, o, size, v)
}

// WriteVU7 writes an unsigned varint of 1 byte groups, low digit first.
func (w writeOps) WriteVU7(v uint128.Uint128) error { return w.WriteVarUint(vint.LE, 1, v) }

// WriteVU7R writes an unsigned varint of 1 byte groups, high digit first.
func (w writeOps) WriteVU7R(v uint128.Uint128) error { return w.WriteVarUint(vint.LER, 1, v) }

// WriteVI7 writes a signed varint of 1 byte groups, low digit first.
func (w writeOps) WriteVI7(v i128.Int) error { return w.WriteVarInt(vint.LE, 1, v) }

// WriteVI7R writes a signed varint of 1 byte groups, high digit first.
func (w writeOps) WriteVI7R(v i128.Int) error { return w.WriteVarInt(vint.LER, 1, v) }

// WriteUTF8 writes the bytes of s.
func (w writeOps) WriteUTF8(s string) error {
	return w.WriteBytes([]byte(s))
}

// WriteBytesAt writes b at pos, leaving the position unchanged.
func (w writeOps) WriteBytesAt(pos int64, b []byte) error {
	return w.At(pos, func() error { return w.WriteBytes(b) })
}

// WriteUintAt writes a size byte unsigned integer at pos, leaving the
// position unchanged.
func (w writeOps) WriteUintAt(pos int64, order endian.ByteOrder, size int, v uint128.Uint128) error {
	return w.At(pos, func() error { return w.WriteUint(order, size, v) })
}

// WriteIntAt writes a size byte signed integer at pos, leaving the position
// unchanged.
func (w writeOps) WriteIntAt(pos int64, order endian.ByteOrder, size int, v i128.Int) error {
	return w.At(pos, func() error { return w.WriteInt(order, size, v) })
}

// WriteVarUintAt writes an unsigned varint at pos, leaving the position
// unchanged.
func (w writeOps) WriteVarUintAt(pos int64, o vint.Orientation, size int, v uint128.Uint128) error {
	return w.At(pos, func() error { return w.WriteVarUint(o, size, v) })
}

// WriteVarIntAt writes a signed varint at pos, leaving the position
// unchanged.
func (w writeOps) WriteVarIntAt(pos int64, o vint.Orientation, size int, v i128.Int) error {
	return w.At(pos, func() error { return w.WriteVarInt(o, size, v) })
}

// WriteUTF8At writes s at pos, leaving the position unchanged.
func (w writeOps) WriteUTF8At(pos int64, s string) error {
	return w.At(pos, func() error { return w.WriteUTF8(s) })
}
