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


package assert_test

import (
	"context"
	"testing"

	"github.com/Le0X8/dh/core/assert"
	"github.com/Le0X8/dh/core/log"
)

func TestContextOutput(t *testing.T) {
	h, lines := log.Buffer()
	ctx := log.PutHandler(context.Background(), h)
	a := assert.To(ctx)
	a.For("match").That(1).Equals(1)
	a.For("mismatch").That(1).Equals(2)

	check := assert.To(t)
	got := lines()
	if !check.For("messages").ThatSlice(got).IsLength(1) {
		return
	}
	check.For("severity").ThatString(got[0]).Contains("E: ")
	check.For("title").ThatString(got[0]).Contains("mismatch")
}
