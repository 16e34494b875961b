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

package main

import (
	"math/big"
	"regexp"
	"strconv"
	"strings"

	"github.com/Le0X8/dh/core/data/endian"
	"github.com/Le0X8/dh/core/data/vint"
	"github.com/Le0X8/dh/core/fault"
	"github.com/Le0X8/dh/core/math/i128"
	"github.com/pkg/errors"
	"lukechampine.com/uint128"
)

type kind int

const (
	fixedKind kind = iota
	varKind
	floatKind
)

// format describes how a single value is laid out in a stream.
//
// Names are of the form:
//
//	u16 i24be u128le        fixed width, 8 to 128 bits
//	vu7 vi15be vu31r vi7ber variable length, 7 15 31 63 or 127 digit bits
//	f32 f64be               IEEE floating point
type format struct {
	name   string
	kind   kind
	signed bool
	order  endian.ByteOrder
	orient vint.Orientation
	size   int
}

var (
	fixedPattern = regexp.MustCompile(`^([ui])(\d+)(le|be)?$`)
	varPattern   = regexp.MustCompile(`^v([ui])(7|15|31|63|127)(le|be)?(r)?$`)
	floatPattern = regexp.MustCompile(`^f(32|64)(le|be)?$`)
)

func (f format) String() string { return f.name }

// Set parses a type name, so a format can be used as a flag.Value.
func (f *format) Set(name string) error {
	parsed, err := parseFormat(name)
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

func parseOrder(s string) endian.ByteOrder {
	if s == "be" {
		return endian.Big
	}
	return endian.Little
}

func parseFormat(name string) (format, error) {
	name = strings.ToLower(name)
	f := format{name: name}
	if m := fixedPattern.FindStringSubmatch(name); m != nil {
		bits, _ := strconv.Atoi(m[2])
		if bits == 0 || bits%8 != 0 || bits > endian.MaxSize*8 {
			return f, errors.Wrapf(fault.InvalidInput, "type %q: width must be a multiple of 8 up to 128", name)
		}
		f.kind, f.signed, f.order, f.size = fixedKind, m[1] == "i", parseOrder(m[3]), bits/8
		return f, nil
	}
	if m := varPattern.FindStringSubmatch(name); m != nil {
		bits, _ := strconv.Atoi(m[2])
		f.kind, f.signed, f.size = varKind, m[1] == "i", (bits+1)/8
		switch {
		case m[3] == "be" && m[4] == "r":
			f.orient = vint.BER
		case m[3] == "be":
			f.orient = vint.BE
		case m[4] == "r":
			f.orient = vint.LER
		default:
			f.orient = vint.LE
		}
		return f, nil
	}
	if m := floatPattern.FindStringSubmatch(name); m != nil {
		bits, _ := strconv.Atoi(m[1])
		f.kind, f.signed, f.order, f.size = floatKind, true, parseOrder(m[2]), bits/8
		return f, nil
	}
	return f, errors.Wrapf(fault.InvalidInput, "unknown type %q", name)
}

type valueReader interface {
	ReadUint(order endian.ByteOrder, size int) (uint128.Uint128, error)
	ReadInt(order endian.ByteOrder, size int) (i128.Int, error)
	ReadVarUint(o vint.Orientation, size int) (uint128.Uint128, error)
	ReadVarInt(o vint.Orientation, size int) (i128.Int, error)
	ReadFloat32(order endian.ByteOrder) (float32, error)
	ReadFloat64(order endian.ByteOrder) (float64, error)
}

type valueWriter interface {
	WriteUint(order endian.ByteOrder, size int, v uint128.Uint128) error
	WriteInt(order endian.ByteOrder, size int, v i128.Int) error
	WriteVarUint(o vint.Orientation, size int, v uint128.Uint128) error
	WriteVarInt(o vint.Orientation, size int, v i128.Int) error
	WriteFloat32(order endian.ByteOrder, v float32) error
	WriteFloat64(order endian.ByteOrder, v float64) error
}

// read reads a single value from r and returns it formatted in base 10.
func (f format) read(r valueReader) (string, error) {
	switch {
	case f.kind == floatKind && f.size == 4:
		v, err := r.ReadFloat32(f.order)
		return strconv.FormatFloat(float64(v), 'g', -1, 32), err
	case f.kind == floatKind:
		v, err := r.ReadFloat64(f.order)
		return strconv.FormatFloat(v, 'g', -1, 64), err
	case f.kind == varKind && f.signed:
		v, err := r.ReadVarInt(f.orient, f.size)
		return v.String(), err
	case f.kind == varKind:
		v, err := r.ReadVarUint(f.orient, f.size)
		return v.String(), err
	case f.signed:
		v, err := r.ReadInt(f.order, f.size)
		return v.String(), err
	default:
		v, err := r.ReadUint(f.order, f.size)
		return v.String(), err
	}
}

// write parses text and writes it to w.
func (f format) write(w valueWriter, text string) error {
	switch {
	case f.kind == floatKind:
		v, err := strconv.ParseFloat(text, f.size*8)
		if err != nil {
			return errors.Wrapf(fault.InvalidInput, "%v: %q is not a number", f.name, text)
		}
		if f.size == 4 {
			return w.WriteFloat32(f.order, float32(v))
		}
		return w.WriteFloat64(f.order, v)
	case f.signed:
		v, err := i128.Parse(text)
		if err != nil {
			return errors.Wrapf(fault.InvalidInput, "%v: %v", f.name, err)
		}
		if f.kind == varKind {
			return w.WriteVarInt(f.orient, f.size, v)
		}
		return w.WriteInt(f.order, f.size, v)
	default:
		v, err := parseUnsigned(text)
		if err != nil {
			return errors.Wrapf(fault.InvalidInput, "%v: %v", f.name, err)
		}
		if f.kind == varKind {
			return w.WriteVarUint(f.orient, f.size, v)
		}
		return w.WriteUint(f.order, f.size, v)
	}
}

func parseUnsigned(s string) (uint128.Uint128, error) {
	b, ok := new(big.Int).SetString(s, 0)
	if !ok || b.Sign() < 0 || b.BitLen() > 128 {
		return uint128.Zero, errors.Errorf("invalid unsigned integer %q", s)
	}
	return uint128.FromBig(b), nil
}
