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

// Package flock provides advisory inter-process locks on open files.
package flock

import (
	"os"
	"sync"

	"github.com/pkg/errors"
)

// Mutex is an advisory exclusive lock on an open file. Only processes that
// also take advisory locks on the file are excluded.
type Mutex struct {
	f      *os.File
	tm     sync.Mutex
	locked bool
}

// New returns a Mutex for f. The Mutex created by New does not hold the lock.
func New(f *os.File) *Mutex {
	return &Mutex{f: f}
}

// Locked returns true if the Mutex holds the lock.
func (m *Mutex) Locked() bool {
	m.tm.Lock()
	defer m.tm.Unlock()
	return m.locked
}

// TryLock attempts to acquire the lock once, without waiting. If another
// holder has the lock the error from the operating system is returned.
// Calling TryLock while holding the lock does nothing.
func (m *Mutex) TryLock() error {
	return m.lock(false)
}

// Lock acquires the lock, waiting until any other holder releases it.
// Calling Lock while holding the lock does nothing.
func (m *Mutex) Lock() error {
	return m.lock(true)
}

func (m *Mutex) lock(block bool) error {
	m.tm.Lock()
	defer m.tm.Unlock()
	if m.locked {
		return nil
	}
	if err := sysLock(m.f, block); err != nil {
		return errors.Wrapf(err, "locking %v", m.f.Name())
	}
	m.locked = true
	return nil
}

// Unlock releases the lock. Calling Unlock without holding the lock does
// nothing.
func (m *Mutex) Unlock() error {
	m.tm.Lock()
	defer m.tm.Unlock()
	if !m.locked {
		return nil
	}
	if err := sysUnlock(m.f); err != nil {
		return errors.Wrapf(err, "unlocking %v", m.f.Name())
	}
	m.locked = false
	return nil
}
