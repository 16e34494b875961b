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

// Package binary provides typed, seekable access to byte streams.
//
// A backend only implements the primitives of Readable, Writable or
// ReadWritable: read, write, seek, lock, unlock, alloc and close. Wrapping it
// with NewReader, NewWriter or NewReadWriter adds the fixed-width, varint,
// text and positioning helpers on top of those primitives.
package binary

import "io"

// Seekable is the set of primitives shared by every backend.
type Seekable interface {
	io.Seeker
	// Lock takes an advisory exclusive lock on the backing store. If block is
	// false and the lock is held elsewhere Lock fails immediately.
	// In-memory backends treat this as a no-op.
	Lock(block bool) error
	// Unlock releases a lock taken by Lock.
	Unlock() error
	// Close flushes the backend and hands back whatever it was built from.
	Close() (Data, error)
}

// Readable is a backend that can be read from.
type Readable interface {
	Seekable
	io.Reader
}

// Writable is a backend that can be written to.
type Writable interface {
	Seekable
	io.Writer
	// Alloc grows the backing store to at least size bytes. It never shrinks
	// it.
	Alloc(size int64) error
}

// ReadWritable is a backend that can be both read and written.
type ReadWritable interface {
	Readable
	Writable
}

// Data is what closing a backend returns: one of Owned, Ref or MutRef, or
// nil for backends that were not built from a byte slice.
type Data interface {
	isData()
}

// Owned is a buffer that was owned by the closed backend.
type Owned []byte

// Ref is the read-only slice the closed backend was borrowing.
type Ref []byte

// MutRef is the mutable slice the closed backend was borrowing. Writes that
// grew the buffer are visible through Ptr.
type MutRef struct {
	Ptr *[]byte
}

func (Owned) isData()  {}
func (Ref) isData()    {}
func (MutRef) isData() {}

// Bytes returns the byte slice held by d, or nil if there is none.
func Bytes(d Data) []byte {
	switch d := d.(type) {
	case Owned:
		return d
	case Ref:
		return d
	case MutRef:
		if d.Ptr != nil {
			return *d.Ptr
		}
	}
	return nil
}
