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

package i128

import "lukechampine.com/uint128"

// Mask returns a value with the low width bits set.
func Mask(width uint) uint128.Uint128 {
	if width >= 128 {
		return uint128.Max
	}
	return uint128.From64(1).Lsh(width).SubWrap(uint128.From64(1))
}

// Unsigned returns the low size*8 bits of v's two's complement pattern, ready
// to be written as a size byte unsigned integer. A size of 16 passes the full
// pattern through unchanged.
func Unsigned(v Int, size int) uint128.Uint128 {
	return v.bits.And(Mask(uint(size) * 8))
}

// SignExtend interprets the low width bits of u as a two's complement number.
func SignExtend(u uint128.Uint128, width uint) Int {
	if width >= 128 {
		return Int{u}
	}
	m := Mask(width)
	v := u.And(m)
	if !v.Rsh(width - 1).And64(1).IsZero() {
		v = v.Or(uint128.New(^m.Lo, ^m.Hi))
	}
	return Int{v}
}
