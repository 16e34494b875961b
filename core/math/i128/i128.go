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

// Package i128 provides a signed 128 bit integer built on the unsigned
// lukechampine.com/uint128 type, together with the bit-identical conversions
// used by the fixed-width and variable-length integer codecs.
package i128

import (
	"math"
	"math/big"

	"github.com/pkg/errors"
	"lukechampine.com/uint128"
)

// Int is a signed 128 bit integer stored as its two's complement bit pattern.
// The zero value is 0.
type Int struct {
	bits uint128.Uint128
}

var (
	// Zero is the Int 0.
	Zero Int
	// Max is the largest value an Int can hold, 2^127 - 1.
	Max = Int{uint128.New(math.MaxUint64, math.MaxInt64)}
	// Min is the smallest value an Int can hold, -2^127.
	Min = Int{uint128.New(0, 1<<63)}
)

// From64 returns v as an Int.
func From64(v int64) Int {
	hi := uint64(0)
	if v < 0 {
		hi = math.MaxUint64
	}
	return Int{uint128.New(uint64(v), hi)}
}

// FromBits reinterprets the bit pattern u as a two's complement Int.
// No arithmetic conversion takes place.
func FromBits(u uint128.Uint128) Int {
	return Int{u}
}

// FromBig converts b to an Int, failing if it lies outside [Min, Max].
func FromBig(b *big.Int) (Int, error) {
	abs := new(big.Int).Abs(b)
	if b.Sign() >= 0 {
		if abs.BitLen() > 127 {
			return Zero, errors.Errorf("%v overflows a signed 128 bit integer", b)
		}
		return Int{uint128.FromBig(abs)}, nil
	}
	if abs.BitLen() > 128 || (abs.BitLen() == 128 && abs.Cmp(Min.Abs().Big()) != 0) {
		return Zero, errors.Errorf("%v overflows a signed 128 bit integer", b)
	}
	return Int{uint128.FromBig(abs)}.Neg(), nil
}

// Parse parses a base-10 (or 0x / 0b / 0o prefixed) signed integer.
func Parse(s string) (Int, error) {
	b, ok := new(big.Int).SetString(s, 0)
	if !ok {
		return Zero, errors.Errorf("invalid integer %q", s)
	}
	return FromBig(b)
}

// Bits returns the two's complement bit pattern of i.
func (i Int) Bits() uint128.Uint128 {
	return i.bits
}

// IsNeg returns true if i < 0.
func (i Int) IsNeg() bool {
	return i.bits.Hi>>63 != 0
}

// Sign returns -1, 0 or +1 depending on the sign of i.
func (i Int) Sign() int {
	switch {
	case i.IsNeg():
		return -1
	case i.bits.IsZero():
		return 0
	default:
		return 1
	}
}

// Neg returns -i. Negating Min wraps around to Min.
func (i Int) Neg() Int {
	return Int{uint128.Zero.SubWrap(i.bits)}
}

// Abs returns the magnitude of i. The magnitude of Min is 2^127, which is
// representable as an unsigned value.
func (i Int) Abs() uint128.Uint128 {
	if i.IsNeg() {
		return i.Neg().bits
	}
	return i.bits
}

// Cmp compares i and o and returns -1, 0 or +1.
func (i Int) Cmp(o Int) int {
	a, b := i.bits, o.bits
	a.Hi ^= 1 << 63
	b.Hi ^= 1 << 63
	return a.Cmp(b)
}

// IsInt64 returns true if i can be represented as an int64.
func (i Int) IsInt64() bool {
	return i.Fits(64)
}

// Int64 returns the low 64 bits of i as an int64.
func (i Int) Int64() int64 {
	return int64(i.bits.Lo)
}

// Fits returns true if i lies in the signed range of a width bit integer,
// that is [-2^(width-1), 2^(width-1)).
func (i Int) Fits(width uint) bool {
	if width >= 128 {
		return true
	}
	if width == 0 {
		return false
	}
	v := i.bits
	if i.IsNeg() {
		v = uint128.New(^v.Lo, ^v.Hi)
	}
	return v.Len() < int(width)
}

// Big returns i as a *big.Int.
func (i Int) Big() *big.Int {
	if i.IsNeg() {
		return new(big.Int).Neg(i.Abs().Big())
	}
	return i.bits.Big()
}

// String returns the base-10 representation of i.
func (i Int) String() string {
	if i.IsNeg() {
		return "-" + i.Abs().String()
	}
	return i.bits.String()
}
