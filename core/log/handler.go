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

package log

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

// Handler is the handler of log messages.
type Handler interface {
	Handle(*Message)
	Close()
}

type handler struct {
	handle func(*Message)
	close  func()
}

func (h handler) Handle(m *Message) { h.handle(m) }
func (h handler) Close() {
	if h.close != nil {
		h.close()
	}
}

// NewHandler returns a Handler that calls handle for each message and close
// when the handler is closed. close can be nil.
func NewHandler(handle func(*Message), close func()) Handler {
	return handler{handle, close}
}

type handlerKeyTy string

const handlerKey handlerKeyTy = "log.handlerKey"

// PutHandler returns a new context with the Handler assigned to w.
func PutHandler(ctx context.Context, w Handler) context.Context {
	return context.WithValue(ctx, handlerKey, w)
}

// GetHandler returns the Handler assigned to ctx.
func GetHandler(ctx context.Context) Handler {
	out, _ := ctx.Value(handlerKey).(Handler)
	return out
}

// Print formats m as a single line.
func Print(m *Message) string {
	parts := make([]string, 0, 4)
	if !m.Time.IsZero() {
		parts = append(parts, m.Time.Format("15:04:05.000"))
	}
	parts = append(parts, m.Severity.Short()+":")
	if m.Tag != "" {
		parts = append(parts, fmt.Sprintf("[%s]", m.Tag))
	}
	parts = append(parts, m.Text)
	line := strings.Join(parts, " ")
	if len(m.Values) > 0 {
		t := make([]string, len(m.Values))
		for i, v := range m.Values {
			t[i] = fmt.Sprintf("%v: %v", v.Name, v.Value)
		}
		line += fmt.Sprintf(" (%v)", strings.Join(t, ", "))
	}
	return line
}

// Writer returns a Handler that writes each message as a line to w.
// Writes are serialized.
func Writer(w io.Writer) Handler {
	mutex := sync.Mutex{}
	return handler{
		handle: func(m *Message) {
			mutex.Lock()
			defer mutex.Unlock()
			fmt.Fprintln(w, Print(m))
		},
	}
}

// Stderr returns a Handler that writes to os.Stderr.
func Stderr() Handler { return Writer(os.Stderr) }

// Buffer returns a Handler that collects the printed messages, and a function
// returning everything collected so far.
func Buffer() (Handler, func() []string) {
	mutex := sync.Mutex{}
	lines := []string{}
	h := handler{
		handle: func(m *Message) {
			mutex.Lock()
			defer mutex.Unlock()
			lines = append(lines, Print(m))
		},
	}
	return h, func() []string {
		mutex.Lock()
		defer mutex.Unlock()
		return append([]string{}, lines...)
	}
}
