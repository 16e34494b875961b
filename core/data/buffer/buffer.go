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

// Package buffer provides in-memory backends for the binary package.
//
// Owned buffers belong to the stream and are returned as binary.Owned on
// close. Borrowed buffers are returned as binary.Ref, and mutable borrowed
// buffers as binary.MutRef so the caller sees any growth.
package buffer

import (
	"io"

	"github.com/Le0X8/dh/core/data/binary"
	"github.com/Le0X8/dh/core/fault"
	"github.com/pkg/errors"
)

// memory is a byte slice with a cursor. The cursor always lies in
// [0, len(*data)].
type memory struct {
	data *[]byte
	pos  int64
}

func (m *memory) Read(p []byte) (int, error) {
	data := *m.data
	if m.pos >= int64(len(data)) {
		if len(p) == 0 {
			return 0, nil
		}
		return 0, io.EOF
	}
	n := copy(p, data[m.pos:])
	m.pos += int64(n)
	return n, nil
}

// Write overwrites bytes at the cursor and appends whatever runs past the
// end.
func (m *memory) Write(p []byte) (int, error) {
	data := *m.data
	if m.pos > int64(len(data)) {
		return 0, errors.Wrapf(fault.OutOfBounds, "write at %d past end %d", m.pos, len(data))
	}
	n := copy(data[m.pos:], p)
	if n < len(p) {
		data = append(data, p[n:]...)
		*m.data = data
	}
	m.pos += int64(len(p))
	return len(p), nil
}

func (m *memory) Seek(offset int64, whence int) (int64, error) {
	var base int64
	switch whence {
	case io.SeekStart:
	case io.SeekCurrent:
		base = m.pos
	case io.SeekEnd:
		base = int64(len(*m.data))
	default:
		return 0, errors.Wrapf(fault.InvalidInput, "whence %d", whence)
	}
	abs := base + offset
	if (offset > 0 && abs < base) || abs < 0 || abs > int64(len(*m.data)) {
		return 0, errors.Wrapf(fault.OutOfBounds, "seek to %d in buffer of %d bytes", abs, len(*m.data))
	}
	m.pos = abs
	return abs, nil
}

// Alloc zero-extends the buffer to at least size bytes.
func (m *memory) Alloc(size int64) error {
	data := *m.data
	if size <= int64(len(data)) {
		return nil
	}
	*m.data = append(data, make([]byte, size-int64(len(data)))...)
	return nil
}

func (m *memory) Lock(block bool) error { return nil }
func (m *memory) Unlock() error         { return nil }

type owned struct{ memory }

func (o *owned) Close() (binary.Data, error) { return binary.Owned(*o.data), nil }

type ref struct{ memory }

func (r *ref) Close() (binary.Data, error) { return binary.Ref(*r.data), nil }

type mutRef struct{ memory }

func (r *mutRef) Close() (binary.Data, error) { return binary.MutRef{Ptr: r.data}, nil }

func newOwned(data []byte) *owned {
	return &owned{memory{data: &data}}
}

// Read returns a Reader that owns data.
func Read(data []byte) *binary.Reader {
	return binary.NewReader(newOwned(data))
}

// ReadRef returns a Reader that borrows data.
func ReadRef(data []byte) *binary.Reader {
	return binary.NewReader(&ref{memory{data: &data}})
}

// Write returns a Writer that owns data, positioned at its start.
func Write(data []byte) *binary.Writer {
	return binary.NewWriter(newOwned(data))
}

// WriteRef returns a Writer over the caller's slice. Growth is stored back
// through data.
func WriteRef(data *[]byte) *binary.Writer {
	return binary.NewWriter(&mutRef{memory{data: data}})
}

// WriteNew returns a Writer over a new zeroed buffer of size bytes.
func WriteNew(size int) *binary.Writer {
	return Write(make([]byte, size))
}

// Rw returns a ReadWriter that owns data.
func Rw(data []byte) *binary.ReadWriter {
	return binary.NewReadWriter(newOwned(data))
}

// RwRef returns a ReadWriter over the caller's slice. Growth is stored back
// through data.
func RwRef(data *[]byte) *binary.ReadWriter {
	return binary.NewReadWriter(&mutRef{memory{data: data}})
}

// RwNew returns a ReadWriter over a new zeroed buffer of size bytes.
func RwNew(size int) *binary.ReadWriter {
	return Rw(make([]byte, size))
}
