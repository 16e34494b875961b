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
	"unicode/utf8"

	"github.com/Le0X8/dh/core/data/endian"
	"github.com/Le0X8/dh/core/data/vint"
	"github.com/Le0X8/dh/core/fault"
	"github.com/Le0X8/dh/core/math/i128"
	"github.com/pkg/errors"
	"lukechampine.com/uint128"
)

// readOps decodes values from a Readable.
type readOps struct {
	*stream
	src Readable
}

// Reader decodes values from a Readable backend.
type Reader struct {
	readOps
}

// NewReader returns a Reader over src positioned wherever src currently is.
func NewReader(src Readable) *Reader {
	return &Reader{readOps{&stream{s: src}, src}}
}

// Read implements io.Reader.
func (r readOps) Read(p []byte) (int, error) {
	if err := r.guard(); err != nil {
		return 0, err
	}
	return r.src.Read(p)
}

// ReadBytes reads exactly n bytes.
func (r readOps) ReadBytes(n int) ([]byte, error) {
	if n < 0 {
		return nil, errors.Wrapf(fault.InvalidInput, "negative length %d", n)
	}
	out := make([]byte, n)
	err := r.undo(func() error {
		if got, err := io.ReadFull(r.src, out); err != nil {
			return errors.Wrapf(err, "after reading %d bytes", got)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ReadUint reads a size byte unsigned integer.
func (r readOps) ReadUint(order endian.ByteOrder, size int) (v uint128.Uint128, err error) {
	err = r.undo(func() error {
		v, err = endian.ReadUint(r.src, order, size)
		return err
	})
	return v, err
}

// ReadInt reads a size byte two's complement integer.
func (r readOps) ReadInt(order endian.ByteOrder, size int) (v i128.Int, err error) {
	err = r.undo(func() error {
		v, err = endian.ReadInt(r.src, order, size)
		return err
	})
	return v, err
}

// ReadUint8 reads an unsigned, 8 bit integer.
func (r readOps) ReadUint8() (uint8, error) {
	v, err := r.ReadUint(endian.Little, 1)
	return uint8(v.Lo), err
}

// ReadUint16 reads an unsigned, 16 bit integer.
func (r readOps) ReadUint16(order endian.ByteOrder) (uint16, error) {
	v, err := r.ReadUint(order, 2)
	return uint16(v.Lo), err
}

// ReadUint32 reads an unsigned, 32 bit integer.
func (r readOps) ReadUint32(order endian.ByteOrder) (uint32, error) {
	v, err := r.ReadUint(order, 4)
	return uint32(v.Lo), err
}

// ReadUint64 reads an unsigned, 64 bit integer.
func (r readOps) ReadUint64(order endian.ByteOrder) (uint64, error) {
	v, err := r.ReadUint(order, 8)
	return v.Lo, err
}

// ReadUint128 reads an unsigned, 128 bit integer.
func (r readOps) ReadUint128(order endian.ByteOrder) (uint128.Uint128, error) {
	return r.ReadUint(order, 16)
}

// ReadInt8 reads a signed, 8 bit integer.
func (r readOps) ReadInt8() (int8, error) {
	v, err := r.ReadInt(endian.Little, 1)
	return int8(v.Int64()), err
}

// ReadInt16 reads a signed, 16 bit integer.
func (r readOps) ReadInt16(order endian.ByteOrder) (int16, error) {
	v, err := r.ReadInt(order, 2)
	return int16(v.Int64()), err
}

// ReadInt32 reads a signed, 32 bit integer.
func (r readOps) ReadInt32(order endian.ByteOrder) (int32, error) {
	v, err := r.ReadInt(order, 4)
	return int32(v.Int64()), err
}

// ReadInt64 reads a signed, 64 bit integer.
func (r readOps) ReadInt64(order endian.ByteOrder) (int64, error) {
	v, err := r.ReadInt(order, 8)
	return v.Int64(), err
}

// ReadInt128 reads a signed, 128 bit integer.
func (r readOps) ReadInt128(order endian.ByteOrder) (i128.Int, error) {
	return r.ReadInt(order, 16)
}

// ReadFloat32 reads a 32 bit IEEE 754 floating-point value.
func (r readOps) ReadFloat32(order endian.ByteOrder) (float32, error) {
	v, err := r.ReadUint32(order)
	return math.Float32frombits(v), err
}

// ReadFloat64 reads a 64 bit IEEE 754 floating-point value.
func (r readOps) ReadFloat64(order endian.ByteOrder) (float64, error) {
	v, err := r.ReadUint64(order)
	return math.Float64frombits(v), err
}

// ReadBool reads a single byte, returning true if it is not zero.
func (r readOps) ReadBool() (bool, error) {
	v, err := r.ReadUint8()
	return v != 0, err
}

// ReadVarUint reads an unsigned varint.
func (r readOps) ReadVarUint(o vint.Orientation, size int) (v uint128.Uint128, err error) {
	err = r.undo(func() error {
		v, err = vint.ReadUint(r.src, o, size)
		return err
	})
	return v, err
}

// ReadVarInt reads a signed varint.
func (r readOps) ReadVarInt(o vint.Orientation, size int) (v i128.Int, err error) {
	err = r.undo(func() error {
		v, err = vint.ReadInt(r.src, o, size)
		return err
	})
	return v, err
}

// ReadVU7 reads an unsigned varint of 1 byte groups, low digit first.
func (r readOps) ReadVU7() (uint128.Uint128, error) { return r.ReadVarUint(vint.LE, 1) }

// ReadVU7R reads an unsigned varint of 1 byte groups, high digit first.
func (r readOps) ReadVU7R() (uint128.Uint128, error) { return r.ReadVarUint(vint.LER, 1) }

// ReadVI7 reads a signed varint of 1 byte groups, low digit first.
func (r readOps) ReadVI7() (i128.Int, error) { return r.ReadVarInt(vint.LE, 1) }

// ReadVI7R reads a signed varint of 1 byte groups, high digit first.
func (r readOps) ReadVI7R() (i128.Int, error) { return r.ReadVarInt(vint.LER, 1) }

// ReadUTF8 reads n bytes and returns them as a string. It fails with
// InvalidData if the bytes are not valid UTF-8.
func (r readOps) ReadUTF8(n int) (string, error) {
	b, err := r.ReadBytes(n)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(b) {
		return "", errors.Wrapf(fault.InvalidData, "%d bytes are not valid UTF-8", n)
	}
	return string(b), nil
}

// ReadBytesAt reads n bytes at pos, leaving the position unchanged.
func (r readOps) ReadBytesAt(pos int64, n int) (out []byte, err error) {
	err = r.At(pos, func() error {
		out, err = r.ReadBytes(n)
		return err
	})
	return out, err
}

// ReadUintAt reads a size byte unsigned integer at pos, leaving the position
// unchanged.
func (r readOps) ReadUintAt(pos int64, order endian.ByteOrder, size int) (v uint128.Uint128, err error) {
	err = r.At(pos, func() error {
		v, err = r.ReadUint(order, size)
		return err
	})
	return v, err
}

// ReadIntAt reads a size byte signed integer at pos, leaving the position
// unchanged.
func (r readOps) ReadIntAt(pos int64, order endian.ByteOrder, size int) (v i128.Int, err error) {
	err = r.At(pos, func() error {
		v, err = r.ReadInt(order, size)
		return err
	})
	return v, err
}

// ReadVarUintAt reads an unsigned varint at pos, leaving the position
// unchanged.
func (r readOps) ReadVarUintAt(pos int64, o vint.Orientation, size int) (v uint128.Uint128, err error) {
	err = r.At(pos, func() error {
		v, err = r.ReadVarUint(o, size)
		return err
	})
	return v, err
}

// ReadVarIntAt reads a signed varint at pos, leaving the position unchanged.
func (r readOps) ReadVarIntAt(pos int64, o vint.Orientation, size int) (v i128.Int, err error) {
	err = r.At(pos, func() error {
		v, err = r.ReadVarInt(o, size)
		return err
	})
	return v, err
}

// ReadUTF8At reads an n byte string at pos, leaving the position unchanged.
func (r readOps) ReadUTF8At(pos int64, n int) (s string, err error) {
	err = r.At(pos, func() error {
		s, err = r.ReadUTF8(n)
		return err
	})
	return s, err
}

// CopyTo copies n bytes from the current position to w. On failure the
// position is restored, though w may already hold part of the data.
func (r readOps) CopyTo(w io.Writer, n int64) (int64, error) {
	copied := int64(0)
	err := r.undo(func() error {
		var err error
		copied, err = io.CopyN(w, r.src, n)
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		if err != nil {
			return errors.Wrapf(err, "after copying %d bytes", copied)
		}
		return nil
	})
	return copied, err
}

// CopyChunked copies n bytes from the current position to w, through a
// buffer of chunk bytes.
func (r readOps) CopyChunked(w io.Writer, n int64, chunk int) (int64, error) {
	if chunk <= 0 {
		return 0, errors.Wrapf(fault.InvalidInput, "chunk size %d", chunk)
	}
	buf := make([]byte, chunk)
	copied := int64(0)
	err := r.undo(func() error {
		for copied < n {
			part := buf
			if rest := n - copied; rest < int64(chunk) {
				part = buf[:rest]
			}
			if _, err := io.ReadFull(r.src, part); err != nil {
				return errors.Wrapf(err, "after copying %d bytes", copied)
			}
			if _, err := w.Write(part); err != nil {
				return errors.Wrapf(err, "after copying %d bytes", copied)
			}
			copied += int64(len(part))
		}
		return nil
	})
	return copied, err
}
