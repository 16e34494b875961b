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

package vint_test

import (
	"fmt"

	"github.com/Le0X8/dh/core/data/vint"
	"github.com/Le0X8/dh/core/math/i128"
	"lukechampine.com/uint128"
)

func ExampleEncode() {
	for _, o := range vint.Orientations {
		data, _ := vint.Encode(o, 1, uint128.From64(300))
		fmt.Printf("%v: % x\n", o, data)
	}
	// Output:
	// le: ac 02
	// be: ac 02
	// ler: 82 2c
	// ber: 82 2c
}

func ExampleDecodeInt() {
	v, n, _ := vint.DecodeInt([]byte{0xc8, 0xe5, 0x6c}, vint.LE, 1)
	fmt.Println(v, n)
	// Output:
	// -733896 3
}

func ExampleEncodeInt() {
	data, _ := vint.EncodeInt(vint.BE, 2, i128.From64(-1))
	fmt.Printf("% x\n", data)
	// Output:
	// 40 01
}
