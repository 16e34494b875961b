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

// Package fault holds the error kinds shared by the stream packages.
//
// Every failure returned by a stream wraps exactly one of the kinds below (or
// an io error such as io.ErrUnexpectedEOF), so callers can branch on
// errors.Cause(err) or errors.Is(err, kind).
package fault

// Const is the type for constant error values.
type Const string

// Error implements error for Const returning the string value of the const.
func (e Const) Error() string { return string(e) }

const (
	// InvalidInput is returned when a value or argument cannot be represented,
	// such as an integer that does not fit the requested byte width.
	InvalidInput = Const("invalid input")
	// OutOfBounds is returned when an access falls outside a bounded view.
	OutOfBounds = Const("out of bounds")
	// InvalidData is returned when the bytes of a stream cannot be decoded.
	InvalidData = Const("invalid data")
	// Unsupported is returned by operations a backend cannot perform.
	Unsupported = Const("unsupported operation")
	// CheckedOut is returned when a stream is used while a bounded view over
	// it is still live.
	CheckedOut = Const("stream is checked out by a bounded view")
	// Closed is returned when a stream is used after Close.
	Closed = Const("stream is closed")
)
