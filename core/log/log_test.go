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

package log_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Le0X8/dh/core/assert"
	"github.com/Le0X8/dh/core/log"
)

func testContext() (context.Context, func() []string) {
	h, lines := log.Buffer()
	ctx := log.PutHandler(context.Background(), h)
	ctx = log.PutClock(ctx, log.NoClock)
	return ctx, lines
}

func TestLogging(t *testing.T) {
	ctx, lines := testContext()
	ctx = log.PutTag(ctx, "dump")
	log.I(ctx, "read %d bytes", 4)
	log.W(ctx, "short")
	assert.To(t).For("lines").ThatSlice(lines()).Equals([]string{
		"I: [dump] read 4 bytes",
		"W: [dump] short",
	})
}

func TestFilter(t *testing.T) {
	ctx, lines := testContext()
	ctx = log.PutFilter(ctx, log.SeverityFilter(log.Warning))
	log.D(ctx, "hidden")
	log.I(ctx, "hidden")
	log.E(ctx, "shown")
	assert.To(t).For("lines").ThatSlice(lines()).Equals([]string{"E: shown"})
}

func TestValues(t *testing.T) {
	ctx, lines := testContext()
	ctx = log.V{"size": 2, "file": "a.bin"}.Bind(ctx)
	log.Bind(ctx, log.V{"size": 4}).I("value")
	assert.To(t).For("lines").ThatSlice(lines()).Equals([]string{
		"I: value (file: a.bin, size: 4)",
	})
}

func TestClock(t *testing.T) {
	ctx, lines := testContext()
	at := time.Date(2020, 1, 2, 3, 4, 5, 6000000, time.UTC)
	ctx = log.PutClock(ctx, log.FixedClock(at))
	log.I(ctx, "tick")
	assert.To(t).For("lines").ThatSlice(lines()).Equals([]string{"03:04:05.006 I: tick"})
}

func TestNoHandler(t *testing.T) {
	l := log.From(context.Background())
	assert.To(t).For("active").That(l.Active(log.Fatal)).Equals(false)
	l.E("dropped")
}

func TestErr(t *testing.T) {
	cause := errors.New("disk full")
	ctx, _ := testContext()
	err := log.Errf(ctx, cause, "writing %s", "out.bin")
	assert.To(t).For("message").ThatString(err.Error()).Equals("writing out.bin\n   Cause: disk full")
	assert.To(t).For("cause").ThatError(err).HasCause(cause)
	assert.To(t).For("is").That(errors.Is(err, cause)).Equals(true)
}

func TestSeveritySet(t *testing.T) {
	for _, test := range []struct {
		in       string
		expected log.Severity
	}{
		{"debug", log.Debug},
		{"W", log.Warning},
		{"Error", log.Error},
	} {
		var s log.Severity
		assert.To(t).For("set %q", test.in).ThatError(s.Set(test.in)).Succeeded()
		assert.To(t).For("set %q", test.in).That(s).Equals(test.expected)
	}
	var s log.Severity
	assert.To(t).For("bad").ThatError(s.Set("loud")).Failed()
}
