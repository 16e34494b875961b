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

// Package vint implements variable-length integers built from fixed size
// groups. The top bit of every group is a continuation flag and the remaining
// bits are one digit of the value.
//
// Groups are 1, 2, 4, 8 or 16 bytes wide and each group is stored in little
// or big endian byte order. Forward orientations store the least significant
// digit first, like LEB128. Reversed orientations store the most significant
// digit first and still end at the first group with a clear continuation bit.
//
// Reversed data is only guaranteed to decode correctly when it was produced
// by this package; it is not a general self-describing format.
//
// Signed values use a sign and magnitude layout: the highest bit of the
// highest digit is the sign and the rest of the digits hold the magnitude.
// Encoders always pick the fewest groups that leave that bit free.
package vint

import (
	"fmt"
	"strings"

	"github.com/Le0X8/dh/core/data/endian"
	"github.com/Le0X8/dh/core/fault"
	"github.com/pkg/errors"
)

// Orientation is the combination of digit order and group byte order.
type Orientation int

const (
	// LE stores the low digit first with little endian groups.
	LE Orientation = iota
	// BE stores the low digit first with big endian groups.
	BE
	// LER stores the high digit first with little endian groups.
	LER
	// BER stores the high digit first with big endian groups.
	BER
)

// Orientations lists every supported orientation.
var Orientations = []Orientation{LE, BE, LER, BER}

// Sizes lists every supported group size in bytes.
var Sizes = []int{1, 2, 4, 8, 16}

var orientationNames = []string{"le", "be", "ler", "ber"}

func (o Orientation) String() string {
	if o < LE || o > BER {
		return fmt.Sprintf("Orientation<%d>", int(o))
	}
	return orientationNames[o]
}

// Set parses an orientation name, so an Orientation can be used as a
// flag.Value.
func (o *Orientation) Set(v string) error {
	for i, n := range orientationNames {
		if strings.EqualFold(n, v) {
			*o = Orientation(i)
			return nil
		}
	}
	return errors.Wrapf(fault.InvalidInput, "unknown orientation %q", v)
}

// Order returns the byte order used inside each group.
func (o Orientation) Order() endian.ByteOrder {
	if o == BE || o == BER {
		return endian.Big
	}
	return endian.Little
}

// Reversed returns true if the most significant digit is stored first.
func (o Orientation) Reversed() bool {
	return o == LER || o == BER
}

// CheckSize returns an InvalidInput error if size is not a supported group
// size.
func CheckSize(size int) error {
	for _, s := range Sizes {
		if s == size {
			return nil
		}
	}
	return errors.Wrapf(fault.InvalidInput, "unsupported varint group size %d", size)
}

// digitBits returns the number of value bits carried by one group.
func digitBits(size int) uint {
	return uint(size)*8 - 1
}

// MaxGroups returns the largest number of groups a 128 bit value of either
// signedness can need with the given group size.
func MaxGroups(size int) int {
	w := int(digitBits(size))
	return (128 + w - 1) / w
}
