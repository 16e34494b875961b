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
	"bytes"
	"encoding/hex"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/Le0X8/dh/core/app"
	"github.com/Le0X8/dh/core/app/flags"
	"github.com/Le0X8/dh/core/assert"
	"github.com/Le0X8/dh/core/fault"
	"github.com/Le0X8/dh/core/log"
	"github.com/Le0X8/dh/core/os/flock"
)

// run binds the exported flags of verb, parses args into them and runs it,
// returning what it printed.
func run(t *testing.T, verb app.Action, args ...string) (string, error) {
	s := flags.Set{}
	s.Init("test", io.Discard)
	s.Bind("", verb, "")
	if err := s.Parse(args...); err != nil {
		t.Fatal(err)
	}
	buf := &bytes.Buffer{}
	old := stdout
	stdout = buf
	defer func() { stdout = old }()
	err := verb.Run(log.Testing(t), &s.Raw)
	return buf.String(), err
}

func tempFile(t *testing.T, data []byte) string {
	path := filepath.Join(t.TempDir(), "data.bin")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestVerbsRegistered(t *testing.T) {
	ctx := assert.To(t)
	for _, name := range []string{"encode", "decode", "dump", "patch"} {
		ctx.For(name).ThatSlice(app.FilterVerbs(name)).IsLength(1)
	}
	ctx.For("prefix").ThatSlice(app.FilterVerbs("d")).IsLength(2)
}

func TestEncodeDecodeVerbs(t *testing.T) {
	ctx := assert.To(t)
	out, err := run(t, &encodeVerb{}, "vu7", "300", "1")
	ctx.For("encode").ThatError(err).Succeeded()
	ctx.For("encode").ThatString(out).Equals("ac 02 01\n")

	out, err = run(t, &encodeVerb{}, "-compact", "u16be", "258")
	ctx.For("compact").ThatError(err).Succeeded()
	ctx.For("compact").ThatString(out).Equals("0102\n")

	out, err = run(t, &decodeVerb{}, "vu7", "ac02", "01")
	ctx.For("decode").ThatError(err).Succeeded()
	ctx.For("decode").ThatString(out).Equals("300\n1\n")

	out, err = run(t, &decodeVerb{}, "-count", "1", "vu7", "ac02", "01")
	ctx.For("count").ThatError(err).Succeeded()
	ctx.For("count").ThatString(out).Equals("300\n")

	_, err = run(t, &decodeVerb{}, "q9", "00")
	ctx.For("bad type").ThatError(err).Is(fault.InvalidInput)
}

func TestDumpVerb(t *testing.T) {
	ctx := assert.To(t)
	data := []byte{0, 1, 2, 3, 4, 5, 6, 7}
	path := tempFile(t, data)

	out, err := run(t, newDumpVerb(), "-offset", "2", "-length", "4", "-chunk", "3", "-type", "u16be", path)
	ctx.For("typed").ThatError(err).Succeeded()
	ctx.For("typed").ThatString(out).Equals("00000002: 515\n00000004: 1029\n")

	out, err = run(t, newDumpVerb(), "-offset", "2", "-chunk", "3", path)
	ctx.For("hex").ThatError(err).Succeeded()
	ctx.For("hex").ThatString(out).Equals(hex.Dump(data[2:]))

	out, err = run(t, newDumpVerb(), "-mapped", "-lock", path)
	ctx.For("mapped").ThatError(err).Succeeded()
	ctx.For("mapped").ThatString(out).Equals(hex.Dump(data))
	other, err := os.Open(path)
	if ctx.For("open").ThatError(err).Succeeded() {
		ctx.For("released").ThatError(flock.New(other).TryLock()).Succeeded()
		other.Close()
	}

	_, err = run(t, newDumpVerb(), "-offset", "6", "-length", "4", path)
	ctx.For("outside").ThatError(err).Is(fault.OutOfBounds)

	_, err = run(t, newDumpVerb(), "-type", "u24", path)
	ctx.For("partial value").ThatError(err).Is(fault.OutOfBounds)
}

func TestPatchVerb(t *testing.T) {
	ctx := assert.To(t)
	path := tempFile(t, []byte{0, 0, 0, 0})

	_, err := run(t, newPatchVerb(), "-offset", "1", "-lock", path, "u16be", "0x0102")
	ctx.For("patch").ThatError(err).Succeeded()
	got, _ := os.ReadFile(path)
	ctx.For("patch").ThatSlice(got).Equals([]byte{0, 1, 2, 0})

	_, err = run(t, newPatchVerb(), "-offset", "6", path, "u8", "9")
	ctx.For("extend").ThatError(err).Succeeded()
	got, _ = os.ReadFile(path)
	ctx.For("extend").ThatSlice(got).Equals([]byte{0, 1, 2, 0, 0, 0, 9})

	_, err = run(t, newPatchVerb(), "-length", "3", path, "u16le", "0x0a0b", "0x0c0d")
	ctx.For("limited").ThatError(err).Is(fault.OutOfBounds)
	got, _ = os.ReadFile(path)
	ctx.For("limited").ThatSlice(got).Equals([]byte{0x0b, 0x0a, 2, 0, 0, 0, 9})

	_, err = run(t, newPatchVerb(), "-offset", "8", "-length", "2", path, "vu7", "5")
	ctx.For("alloc").ThatError(err).Succeeded()
	got, _ = os.ReadFile(path)
	ctx.For("alloc").ThatSlice(got).Equals([]byte{0x0b, 0x0a, 2, 0, 0, 0, 9, 0, 5, 0})
}
