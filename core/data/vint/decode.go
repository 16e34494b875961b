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
	"github.com/Le0X8/dh/core/fault"
	"github.com/Le0X8/dh/core/math/i128"
	"github.com/pkg/errors"
	"lukechampine.com/uint128"
)

// ReadUint reads an unsigned varint from r.
func ReadUint(r io.Reader, o Orientation, size int) (uint128.Uint128, error) {
	digits, err := readDigits(r, o, size)
	if err != nil {
		return uint128.Zero, err
	}
	return accumulate(digits, size)
}

// ReadInt reads a signed varint from r.
func ReadInt(r io.Reader, o Orientation, size int) (i128.Int, error) {
	digits, err := readDigits(r, o, size)
	if err != nil {
		return i128.Zero, err
	}
	return signed(digits, size)
}

// readDigits reads groups up to and including the first one with a clear
// continuation bit, and returns their digits least significant first.
func readDigits(r io.Reader, o Orientation, size int) ([]uint128.Uint128, error) {
	if err := CheckSize(size); err != nil {
		return nil, err
	}
	w := digitBits(size)
	mask := i128.Mask(w)
	most := MaxGroups(size)
	digits := make([]uint128.Uint128, 0, 4)
	for {
		if len(digits) == most {
			return nil, errors.Wrapf(fault.InvalidData, "varint longer than %d groups", most)
		}
		g, err := endian.ReadUint(r, o.Order(), size)
		if err != nil {
			if len(digits) > 0 && errors.Cause(err) == io.EOF {
				err = io.ErrUnexpectedEOF
			}
			return nil, errors.Wrapf(err, "varint truncated after %d groups", len(digits))
		}
		digits = append(digits, g.And(mask))
		if g.Rsh(w).IsZero() {
			break
		}
	}
	if o.Reversed() {
		for i, j := 0, len(digits)-1; i < j; i, j = i+1, j-1 {
			digits[i], digits[j] = digits[j], digits[i]
		}
	}
	return digits, nil
}

// accumulate assembles digits, least significant first, into a value.
// Zero digits are skipped but still occupy their position.
func accumulate(digits []uint128.Uint128, size int) (uint128.Uint128, error) {
	w := digitBits(size)
	v := uint128.Zero
	for i, d := range digits {
		if d.IsZero() {
			continue
		}
		shift := uint(i) * w
		if shift >= 128 || uint(d.Len())+shift > 128 {
			return uint128.Zero, errors.Wrapf(fault.InvalidData, "varint overflows 128 bits at group %d", i)
		}
		v = v.Or(d.Lsh(shift))
	}
	return v, nil
}

// signed splits the sign bit off the most significant digit and applies it
// to the magnitude held by the remaining bits.
func signed(digits []uint128.Uint128, size int) (i128.Int, error) {
	top := len(digits) - 1
	signBit := uint128.From64(1).Lsh(digitBits(size) - 1)
	neg := !digits[top].And(signBit).IsZero()
	digits[top] = digits[top].Xor(digits[top].And(signBit))
	m, err := accumulate(digits, size)
	if err != nil {
		return i128.Zero, err
	}
	limit := i128.Max.Abs()
	if neg {
		limit = i128.Min.Abs()
	}
	if m.Cmp(limit) > 0 {
		return i128.Zero, errors.Wrapf(fault.InvalidData, "varint magnitude %v overflows a signed 128 bit integer", m)
	}
	v := i128.FromBits(m)
	if neg {
		v = v.Neg()
	}
	return v, nil
}
