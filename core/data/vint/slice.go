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
	"bytes"

	"github.com/Le0X8/dh/core/math/i128"
	"lukechampine.com/uint128"
)

// Encode returns the unsigned varint encoding of v.
func Encode(o Orientation, size int, v uint128.Uint128) ([]byte, error) {
	return AppendUint(nil, o, size, v)
}

// EncodeInt returns the signed varint encoding of v.
func EncodeInt(o Orientation, size int, v i128.Int) ([]byte, error) {
	return AppendInt(nil, o, size, v)
}

// Decode decodes an unsigned varint from the start of data and returns it
// with the number of bytes it occupied.
func Decode(data []byte, o Orientation, size int) (uint128.Uint128, int, error) {
	r := bytes.NewReader(data)
	v, err := ReadUint(r, o, size)
	if err != nil {
		return uint128.Zero, 0, err
	}
	return v, len(data) - r.Len(), nil
}

// DecodeInt decodes a signed varint from the start of data and returns it
// with the number of bytes it occupied.
func DecodeInt(data []byte, o Orientation, size int) (i128.Int, int, error) {
	r := bytes.NewReader(data)
	v, err := ReadInt(r, o, size)
	if err != nil {
		return i128.Zero, 0, err
	}
	return v, len(data) - r.Len(), nil
}
