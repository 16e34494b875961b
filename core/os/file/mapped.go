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

package file

import (
	"bytes"
	"io"
	"os"

	"github.com/Le0X8/dh/core/data/binary"
	"github.com/Le0X8/dh/core/fault"
	"github.com/Le0X8/dh/core/os/flock"
	"github.com/edsrzf/mmap-go"
	"github.com/pkg/errors"
)

// mapped reads a file through a read-only memory mapping.
type mapped struct {
	*bytes.Reader
	m    mmap.MMap
	f    *os.File
	lock *flock.Mutex
}

// OpenMapped opens the file at path for reading through a read-only memory
// mapping. The file must not change size while it is mapped.
func OpenMapped(path string) (*binary.Reader, error) {
	f, err := open(path, os.O_RDONLY)
	if err != nil {
		return nil, err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, errors.Wrapf(err, "mapping %v", path)
	}
	out := &mapped{f: f, lock: flock.New(f)}
	if info.Size() > 0 {
		if out.m, err = mmap.Map(f, mmap.RDONLY, 0); err != nil {
			f.Close()
			return nil, errors.Wrapf(err, "mapping %v", path)
		}
	}
	out.Reader = bytes.NewReader(out.m)
	return binary.NewReader(out), nil
}

// Seek implements io.Seeker, refusing to move past the end of the mapping.
func (m *mapped) Seek(offset int64, whence int) (int64, error) {
	size := m.Size()
	var base int64
	switch whence {
	case io.SeekStart:
	case io.SeekCurrent:
		base = size - int64(m.Len())
	case io.SeekEnd:
		base = size
	default:
		return 0, errors.Wrapf(fault.InvalidInput, "whence %d", whence)
	}
	abs := base + offset
	if (offset > 0 && abs < base) || abs < 0 || abs > size {
		return 0, errors.Wrapf(fault.OutOfBounds, "seek to %d in mapping of %d bytes", abs, size)
	}
	return m.Reader.Seek(abs, io.SeekStart)
}

func (m *mapped) Lock(block bool) error {
	if block {
		return m.lock.Lock()
	}
	return m.lock.TryLock()
}

func (m *mapped) Unlock() error { return m.lock.Unlock() }

// Close unmaps the file, unlocks it and closes it.
func (m *mapped) Close() (binary.Data, error) {
	onErr := fault.One{}
	if m.m != nil {
		onErr.Collect(m.m.Unmap())
		m.m = nil
	}
	m.Reader = bytes.NewReader(nil)
	onErr.Collect(m.lock.Unlock())
	onErr.Collect(m.f.Close())
	return nil, onErr.First()
}
