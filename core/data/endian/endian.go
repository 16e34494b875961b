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

// Package endian implements the fixed-width integer codec: unsigned and
// signed integers of 1 to 16 bytes in little or big endian byte order.
package endian

import (
	"fmt"
	"io"
	"strings"

	"github.com/Le0X8/dh/core/fault"
	"github.com/Le0X8/dh/core/math/i128"
	"github.com/pkg/errors"
	"lukechampine.com/uint128"
)

// MaxSize is the widest integer, in bytes, the codec supports.
const MaxSize = 16

// ByteOrder selects how the bytes of an integer are laid out.
type ByteOrder int

const (
	// Little stores the least significant byte first.
	Little ByteOrder = iota
	// Big stores the most significant byte first.
	Big
)

func (o ByteOrder) String() string {
	switch o {
	case Little:
		return "le"
	case Big:
		return "be"
	default:
		return fmt.Sprintf("ByteOrder<%d>", int(o))
	}
}

// Set parses "le" or "be", so a ByteOrder can be used as a flag.Value.
func (o *ByteOrder) Set(v string) error {
	switch strings.ToLower(v) {
	case "le", "little":
		*o = Little
	case "be", "big":
		*o = Big
	default:
		return errors.Wrapf(fault.InvalidInput, "unknown byte order %q", v)
	}
	return nil
}

// CheckSize returns an InvalidInput error if size is not in [1, MaxSize].
func CheckSize(size int) error {
	if size < 1 || size > MaxSize {
		return errors.Wrapf(fault.InvalidInput, "unsupported integer size %d", size)
	}
	return nil
}

// Decode interprets b, which must hold 1 to 16 bytes, as an unsigned integer.
func Decode(b []byte, order ByteOrder) uint128.Uint128 {
	var tmp [MaxSize]byte
	if order == Big {
		copy(tmp[MaxSize-len(b):], b)
		return uint128.FromBytesBE(tmp[:])
	}
	copy(tmp[:], b)
	return uint128.FromBytes(tmp[:])
}

// Encode stores the low len(b)*8 bits of v into b.
func Encode(b []byte, order ByteOrder, v uint128.Uint128) {
	var tmp [MaxSize]byte
	if order == Big {
		v.PutBytesBE(tmp[:])
		copy(b, tmp[MaxSize-len(b):])
		return
	}
	v.PutBytes(tmp[:])
	copy(b, tmp[:len(b)])
}

// ReadUint reads exactly size bytes from r and returns them as an unsigned
// integer.
func ReadUint(r io.Reader, order ByteOrder, size int) (uint128.Uint128, error) {
	if err := CheckSize(size); err != nil {
		return uint128.Zero, err
	}
	var tmp [MaxSize]byte
	if n, err := io.ReadFull(r, tmp[:size]); err != nil {
		return uint128.Zero, errors.Wrapf(err, "after reading %d bytes", n)
	}
	return Decode(tmp[:size], order), nil
}

// WriteUint writes v to w as a size byte unsigned integer. It fails with
// InvalidInput if v does not fit in size bytes.
func WriteUint(w io.Writer, order ByteOrder, size int, v uint128.Uint128) error {
	if err := CheckSize(size); err != nil {
		return err
	}
	if v.Len() > size*8 {
		return errors.Wrapf(fault.InvalidInput, "%v does not fit in %d bytes", v, size)
	}
	var tmp [MaxSize]byte
	Encode(tmp[:size], order, v)
	return write(w, tmp[:size])
}

// ReadInt reads a size byte two's complement integer from r.
func ReadInt(r io.Reader, order ByteOrder, size int) (i128.Int, error) {
	u, err := ReadUint(r, order, size)
	if err != nil {
		return i128.Zero, err
	}
	return i128.SignExtend(u, uint(size)*8), nil
}

// WriteInt writes v to w as a size byte two's complement integer. It fails
// with InvalidInput if v lies outside the signed range of size bytes.
func WriteInt(w io.Writer, order ByteOrder, size int, v i128.Int) error {
	if err := CheckSize(size); err != nil {
		return err
	}
	if !v.Fits(uint(size) * 8) {
		return errors.Wrapf(fault.InvalidInput, "%v does not fit in %d signed bytes", v, size)
	}
	return WriteUint(w, order, size, i128.Unsigned(v, size))
}

func write(w io.Writer, data []byte) error {
	n, err := w.Write(data)
	if err != nil {
		return errors.Wrapf(err, "after writing %d bytes", n)
	}
	if n != len(data) {
		return io.ErrShortWrite
	}
	return nil
}
