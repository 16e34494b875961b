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

package binary

import (
	"io"

	"github.com/Le0X8/dh/core/fault"
	"github.com/pkg/errors"
)

// stream holds the positioning and lifecycle helpers shared by Reader,
// Writer and ReadWriter.
type stream struct {
	s          Seekable
	checkedOut bool
	closed     bool
}

func (b *stream) guard() error {
	switch {
	case b.closed:
		return fault.Closed
	case b.checkedOut:
		return fault.CheckedOut
	default:
		return nil
	}
}

// Seek implements io.Seeker.
func (b *stream) Seek(offset int64, whence int) (int64, error) {
	if err := b.guard(); err != nil {
		return 0, err
	}
	return b.s.Seek(offset, whence)
}

// Pos returns the current position.
func (b *stream) Pos() (int64, error) {
	return b.Seek(0, io.SeekCurrent)
}

// To moves to the absolute position pos.
func (b *stream) To(pos int64) error {
	_, err := b.Seek(pos, io.SeekStart)
	return err
}

// Jump moves delta bytes from the current position.
func (b *stream) Jump(delta int64) error {
	_, err := b.Seek(delta, io.SeekCurrent)
	return err
}

// Rewind moves to the start of the stream.
func (b *stream) Rewind() error {
	return b.To(0)
}

// End moves to the end of the stream.
func (b *stream) End() error {
	_, err := b.Seek(0, io.SeekEnd)
	return err
}

// Size returns the size of the stream without moving the current position.
func (b *stream) Size() (int64, error) {
	pos, err := b.Pos()
	if err != nil {
		return 0, err
	}
	size, err := b.Seek(0, io.SeekEnd)
	if err != nil {
		return 0, err
	}
	if err := b.To(pos); err != nil {
		return 0, err
	}
	return size, nil
}

// At moves to pos, runs f and then moves back to where the stream was, even
// if f failed.
func (b *stream) At(pos int64, f func() error) error {
	prev, err := b.Pos()
	if err != nil {
		return err
	}
	if err := b.To(pos); err != nil {
		return err
	}
	onErr := fault.One{}
	onErr.Collect(f())
	onErr.Collect(b.To(prev))
	return onErr.First()
}

// undo runs f and, if it fails, moves back to where the stream was before f
// ran. Operations built from several backend calls use it so that a failure
// part way through leaves the position untouched.
func (b *stream) undo(f func() error) error {
	prev, err := b.Pos()
	if err != nil {
		return err
	}
	err = f()
	if err != nil {
		b.s.Seek(prev, io.SeekStart)
	}
	return err
}

// Lock takes an advisory lock on the backing store.
func (b *stream) Lock(block bool) error {
	if err := b.guard(); err != nil {
		return err
	}
	return b.s.Lock(block)
}

// Unlock releases the lock taken by Lock.
func (b *stream) Unlock() error {
	if err := b.guard(); err != nil {
		return err
	}
	return b.s.Unlock()
}

// Close closes the backend and returns what it was built from. The stream
// cannot be used afterwards.
func (b *stream) Close() (Data, error) {
	if err := b.guard(); err != nil {
		return nil, err
	}
	b.closed = true
	data, err := b.s.Close()
	if err != nil {
		return data, errors.Wrap(err, "closing stream")
	}
	return data, nil
}
