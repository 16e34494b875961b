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

package flock_test

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Le0X8/dh/core/assert"
	"github.com/Le0X8/dh/core/os/flock"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

func open(t *testing.T, path string) *os.File {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0644)
	assert.To(t).For("open %v", path).ThatError(err).Succeeded()
	t.Cleanup(func() { f.Close() })
	return f
}

func TestMutex(t *testing.T) {
	ctx := assert.To(t)
	path := filepath.Join(t.TempDir(), "locked.bin")
	a := flock.New(open(t, path))
	b := flock.New(open(t, path))

	// Single lock and unlock
	ctx.For("a try lock").ThatError(a.TryLock()).Succeeded()
	ctx.For("a locked").ThatBoolean(a.Locked()).IsTrue()
	ctx.For("a unlock").ThatError(a.Unlock()).Succeeded()
	ctx.For("a unlocked").ThatBoolean(a.Locked()).IsFalse()

	// Double lock and unlock
	ctx.For("a lock").ThatError(a.Lock()).Succeeded()
	ctx.For("a lock again").ThatError(a.TryLock()).Succeeded()
	ctx.For("a unlock").ThatError(a.Unlock()).Succeeded()
	ctx.For("a unlock again").ThatError(a.Unlock()).Succeeded()

	// Exclusion
	ctx.For("a try lock").ThatError(a.TryLock()).Succeeded()
	ctx.For("b try lock").ThatError(b.TryLock()).Failed()
	ctx.For("b not locked").ThatBoolean(b.Locked()).IsFalse()
	ctx.For("a unlock").ThatError(a.Unlock()).Succeeded()
	ctx.For("b try lock").ThatError(b.TryLock()).Succeeded()

	// Blocking
	done := make(chan error)
	go func() {
		err := a.Lock()
		done <- err
	}()
	select {
	case <-done:
		ctx.For("a acquired while b holds the lock").Error()
	case <-time.After(100 * time.Millisecond):
	}
	ctx.For("b unlock").ThatError(b.Unlock()).Succeeded()
	ctx.For("a lock").ThatError(<-done).Succeeded()
	ctx.For("a unlock").ThatError(a.Unlock()).Succeeded()
}

func TestContention(t *testing.T) {
	ctx := assert.To(t)
	path := filepath.Join(t.TempDir(), "contended.bin")
	const count = 8
	mutexes := make([]*flock.Mutex, count)
	for i := range mutexes {
		mutexes[i] = flock.New(open(t, path))
	}

	holders := int32(0)
	g := errgroup.Group{}
	for i, m := range mutexes {
		i, m := i, m
		g.Go(func() error {
			if err := m.Lock(); err != nil {
				return err
			}
			if n := atomic.AddInt32(&holders, 1); n != 1 {
				return errors.Errorf("handle %d shares the lock with %d others", i, n-1)
			}
			time.Sleep(time.Millisecond)
			atomic.AddInt32(&holders, -1)
			return m.Unlock()
		})
	}
	ctx.For("contention").ThatError(g.Wait()).Succeeded()
}
