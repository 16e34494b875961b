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

// Package file provides file backends for the binary package.
//
// Files are opened without truncation, so writes overwrite existing contents
// and may extend the file. Closing a file syncs it if it was writable,
// releases any advisory lock and closes the handle, reporting the first
// failure of those steps.
package file

import (
	"os"

	"github.com/Le0X8/dh/core/data/binary"
	"github.com/Le0X8/dh/core/fault"
	"github.com/Le0X8/dh/core/os/flock"
	"github.com/pkg/errors"
)

type file struct {
	*os.File
	lock     *flock.Mutex
	writable bool
}

func newFile(f *os.File, writable bool) *file {
	return &file{File: f, lock: flock.New(f), writable: writable}
}

// Lock takes an advisory exclusive lock on the file.
func (f *file) Lock(block bool) error {
	if block {
		return f.lock.Lock()
	}
	return f.lock.TryLock()
}

// Unlock releases the advisory lock.
func (f *file) Unlock() error {
	return f.lock.Unlock()
}

// Alloc grows the file to at least size bytes.
func (f *file) Alloc(size int64) error {
	info, err := f.Stat()
	if err != nil {
		return errors.Wrapf(err, "allocating %v", f.Name())
	}
	if size <= info.Size() {
		return nil
	}
	if err := allocate(f.File, size); err != nil {
		return errors.Wrapf(err, "allocating %d bytes for %v", size, f.Name())
	}
	return nil
}

// Close syncs, unlocks and closes the file.
func (f *file) Close() (binary.Data, error) {
	onErr := fault.One{}
	if f.writable {
		onErr.Collect(f.Sync())
	}
	onErr.Collect(f.lock.Unlock())
	onErr.Collect(f.File.Close())
	return nil, onErr.First()
}

func open(path string, flag int) (*os.File, error) {
	f, err := os.OpenFile(path, flag, 0644)
	if err != nil {
		return nil, errors.Wrapf(err, "opening %v", path)
	}
	return f, nil
}

// OpenR opens the file at path for reading.
func OpenR(path string) (*binary.Reader, error) {
	f, err := open(path, os.O_RDONLY)
	if err != nil {
		return nil, err
	}
	return binary.NewReader(newFile(f, false)), nil
}

// OpenW opens the file at path for writing, creating it if needed.
func OpenW(path string) (*binary.Writer, error) {
	f, err := open(path, os.O_WRONLY|os.O_CREATE)
	if err != nil {
		return nil, err
	}
	return binary.NewWriter(newFile(f, true)), nil
}

// OpenRW opens the file at path for reading and writing, creating it if
// needed.
func OpenRW(path string) (*binary.ReadWriter, error) {
	f, err := open(path, os.O_RDWR|os.O_CREATE)
	if err != nil {
		return nil, err
	}
	return binary.NewReadWriter(newFile(f, true)), nil
}

// Create creates or truncates the file at path and opens it for reading and
// writing.
func Create(path string) (*binary.ReadWriter, error) {
	f, err := open(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC)
	if err != nil {
		return nil, err
	}
	return binary.NewReadWriter(newFile(f, true)), nil
}
