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
	"math"

	"github.com/Le0X8/dh/core/fault"
	"github.com/pkg/errors"
)

// Bounded restricts a backend to the window [start, end). Every read and
// write must lie entirely inside the window, and positions are reported
// relative to start. A rejected operation leaves the backend untouched.
type Bounded struct {
	s          Seekable
	start, end int64
	released   bool
	release    func()
}

func newBounded(s Seekable, start, length int64, release func()) (*Bounded, error) {
	if start < 0 || length < 0 || length > math.MaxInt64-start {
		return nil, errors.Wrapf(fault.InvalidInput, "window at %d of %d bytes", start, length)
	}
	if _, err := s.Seek(start, io.SeekStart); err != nil {
		return nil, errors.Wrapf(err, "seeking to window start %d", start)
	}
	return &Bounded{s: s, start: start, end: start + length, release: release}, nil
}

// Bounds returns the absolute start and end of the window.
func (b *Bounded) Bounds() (start, end int64) {
	return b.start, b.end
}

func (b *Bounded) check(n int) error {
	pos, err := b.s.Seek(0, io.SeekCurrent)
	if err != nil {
		return err
	}
	if pos < b.start || pos+int64(n) > b.end {
		return errors.Wrapf(fault.OutOfBounds, "%d bytes at %d outside window [%d, %d)", n, pos, b.start, b.end)
	}
	return nil
}

// Read implements io.Reader.
func (b *Bounded) Read(p []byte) (int, error) {
	r, ok := b.s.(io.Reader)
	if !ok {
		return 0, errors.Wrap(fault.Unsupported, "reading a write only stream")
	}
	if err := b.check(len(p)); err != nil {
		return 0, err
	}
	return r.Read(p)
}

// Write implements io.Writer.
func (b *Bounded) Write(p []byte) (int, error) {
	w, ok := b.s.(io.Writer)
	if !ok {
		return 0, errors.Wrap(fault.Unsupported, "writing a read only stream")
	}
	if err := b.check(len(p)); err != nil {
		return 0, err
	}
	return w.Write(p)
}

// Seek implements io.Seeker. The target may be anywhere in [start, end].
func (b *Bounded) Seek(offset int64, whence int) (int64, error) {
	var base int64
	switch whence {
	case io.SeekStart:
		base = b.start
	case io.SeekEnd:
		base = b.end
	case io.SeekCurrent:
		pos, err := b.s.Seek(0, io.SeekCurrent)
		if err != nil {
			return 0, err
		}
		base = pos
	default:
		return 0, errors.Wrapf(fault.InvalidInput, "whence %d", whence)
	}
	abs := base + offset
	if (offset > 0 && abs < base) || abs < b.start || abs > b.end {
		return 0, errors.Wrapf(fault.OutOfBounds, "seek to %d outside window [%d, %d]", abs, b.start, b.end)
	}
	if _, err := b.s.Seek(abs, io.SeekStart); err != nil {
		return 0, err
	}
	return abs - b.start, nil
}

// Lock locks the underlying backend.
func (b *Bounded) Lock(block bool) error { return b.s.Lock(block) }

// Unlock unlocks the underlying backend.
func (b *Bounded) Unlock() error { return b.s.Unlock() }

// Alloc always fails, a window cannot grow.
func (b *Bounded) Alloc(size int64) error {
	return errors.Wrapf(fault.Unsupported, "allocating %d bytes in a bounded window", size)
}

// Close hands the underlying stream back to its owner. It neither flushes
// nor closes the backend.
func (b *Bounded) Close() (Data, error) {
	if !b.released {
		b.released = true
		if b.release != nil {
			b.release()
		}
	}
	return nil, nil
}

// limit checks s out to a new window of length bytes at start.
func (s *stream) limit(start, length int64) (*Bounded, error) {
	if err := s.guard(); err != nil {
		return nil, err
	}
	b, err := newBounded(s.s, start, length, func() { s.checkedOut = false })
	if err != nil {
		return nil, err
	}
	s.checkedOut = true
	return b, nil
}

// LimitedReader is a Reader confined to a window of its parent. The parent
// cannot be used until the view is closed or Unlimit is called.
type LimitedReader struct {
	*Reader
	parent *Reader
	bound  *Bounded
}

// Limit returns a view of length bytes starting at the absolute position
// start, positioned at its beginning.
func (r *Reader) Limit(start, length int64) (*LimitedReader, error) {
	b, err := r.limit(start, length)
	if err != nil {
		return nil, err
	}
	return &LimitedReader{NewReader(b), r, b}, nil
}

// Bounds returns the absolute start and end of the window.
func (l *LimitedReader) Bounds() (start, end int64) { return l.bound.Bounds() }

// Unlimit ends the view and returns the parent.
func (l *LimitedReader) Unlimit() *Reader {
	l.closed = true
	l.bound.Close()
	return l.parent
}

// LimitedWriter is a Writer confined to a window of its parent. The parent
// cannot be used until the view is closed or Unlimit is called.
type LimitedWriter struct {
	*Writer
	parent *Writer
	bound  *Bounded
}

// Limit returns a view of length bytes starting at the absolute position
// start, positioned at its beginning.
func (w *Writer) Limit(start, length int64) (*LimitedWriter, error) {
	b, err := w.limit(start, length)
	if err != nil {
		return nil, err
	}
	return &LimitedWriter{NewWriter(b), w, b}, nil
}

// Bounds returns the absolute start and end of the window.
func (l *LimitedWriter) Bounds() (start, end int64) { return l.bound.Bounds() }

// Unlimit ends the view and returns the parent.
func (l *LimitedWriter) Unlimit() *Writer {
	l.closed = true
	l.bound.Close()
	return l.parent
}

// LimitedReadWriter is a ReadWriter confined to a window of its parent. The
// parent cannot be used until the view is closed or Unlimit is called.
type LimitedReadWriter struct {
	*ReadWriter
	parent *ReadWriter
	bound  *Bounded
}

// Limit returns a view of length bytes starting at the absolute position
// start, positioned at its beginning.
func (rw *ReadWriter) Limit(start, length int64) (*LimitedReadWriter, error) {
	b, err := rw.limit(start, length)
	if err != nil {
		return nil, err
	}
	return &LimitedReadWriter{NewReadWriter(b), rw, b}, nil
}

// Bounds returns the absolute start and end of the window.
func (l *LimitedReadWriter) Bounds() (start, end int64) { return l.bound.Bounds() }

// Unlimit ends the view and returns the parent.
func (l *LimitedReadWriter) Unlimit() *ReadWriter {
	l.closed = true
	l.bound.Close()
	return l.parent
}
