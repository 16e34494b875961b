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


package main

// EncodeFlags are the flags of the encode verb.
type EncodeFlags struct {
	Compact bool `help:"do not separate the bytes with spaces"`
}

// DecodeFlags are the flags of the decode verb.
type DecodeFlags struct {
	Count int `help:"the number of values to decode, 0 decodes until the input is used up"`
}

// RegionFlags select a region of a file.
type RegionFlags struct {
	Offset int64 `help:"the position of the first byte"`
	Length int64 `help:"the number of bytes, -1 for no limit"`
	Lock   bool  `help:"hold an exclusive lock on the file"`
}

// DumpFlags are the flags of the dump verb.
type DumpFlags struct {
	RegionFlags
	Chunk  int    `help:"the read buffer size for hex dumps"`
	Mapped bool   `help:"memory map the file instead of reading it"`
	Type   format `help:"decode values of this type instead of printing hex"`
}

// PatchFlags are the flags of the patch verb.
type PatchFlags struct {
	RegionFlags
}
