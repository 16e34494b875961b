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

package vint

import (
	"io"

	"github.com/Le0X8/dh/core/data/endian"
	"github.com/Le0X8/dh/core/math/i128"
	"github.com/pkg/errors"
	"lukechampine.com/uint128"
)

// Len returns the number of groups the unsigned encoding of v takes.
func Len(v uint128.Uint128, size int) int {
	n := (v.Len() + int(digitBits(size)) - 1) / int(digitBits(size))
	if n == 0 {
		return 1
	}
	return n
}

// LenInt returns the number of groups the signed encoding of v takes.
func LenInt(v i128.Int, size int) int {
	return (v.Abs().Len() + 1 + int(digitBits(size)) - 1) / int(digitBits(size))
}

// split cuts v into n digits, least significant first.
func split(v uint128.Uint128, size, n int) []uint128.Uint128 {
	w := digitBits(size)
	mask := i128.Mask(w)
	digits := make([]uint128.Uint128, n)
	for i := range digits {
		digits[i] = v.And(mask)
		v = v.Rsh(w)
	}
	return digits
}

// AppendUint appends the unsigned varint encoding of v to dst.
func AppendUint(dst []byte, o Orientation, size int, v uint128.Uint128) ([]byte, error) {
	if err := CheckSize(size); err != nil {
		return dst, err
	}
	return appendDigits(dst, o, size, split(v, size, Len(v, size))), nil
}

// AppendInt appends the signed varint encoding of v to dst.
func AppendInt(dst []byte, o Orientation, size int, v i128.Int) ([]byte, error) {
	if err := CheckSize(size); err != nil {
		return dst, err
	}
	digits := split(v.Abs(), size, LenInt(v, size))
	if v.IsNeg() {
		top := len(digits) - 1
		digits[top] = digits[top].Or(uint128.From64(1).Lsh(digitBits(size) - 1))
	}
	return appendDigits(dst, o, size, digits), nil
}

// appendDigits emits digits, given least significant first, in the stream
// order of o. Every group but the last one emitted has its continuation bit
// set.
func appendDigits(dst []byte, o Orientation, size int, digits []uint128.Uint128) []byte {
	cont := uint128.From64(1).Lsh(digitBits(size))
	n := len(digits)
	for i := 0; i < n; i++ {
		d := digits[i]
		if o.Reversed() {
			d = digits[n-1-i]
		}
		if i < n-1 {
			d = d.Or(cont)
		}
		start := len(dst)
		dst = append(dst, make([]byte, size)...)
		endian.Encode(dst[start:], o.Order(), d)
	}
	return dst
}

// WriteUint writes the unsigned varint encoding of v to w with a single
// Write call.
func WriteUint(w io.Writer, o Orientation, size int, v uint128.Uint128) error {
	data, err := AppendUint(nil, o, size, v)
	if err != nil {
		return err
	}
	return write(w, data)
}

// WriteInt writes the signed varint encoding of v to w with a single Write
// call.
func WriteInt(w io.Writer, o Orientation, size int, v i128.Int) error {
	data, err := AppendInt(nil, o, size, v)
	if err != nil {
		return err
	}
	return write(w, data)
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
