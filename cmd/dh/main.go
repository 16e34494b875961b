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

// The dh command encodes, decodes, dumps and patches binary values held in
// memory or in files.
package main

import (
	"io"
	"os"

	"github.com/Le0X8/dh/core/app"
)

// stdout receives the results of every verb.
var stdout io.Writer = os.Stdout

func main() {
	app.ShortHelp = "dh: A tool for reading and writing fixed width and variable length integers."
	app.ShortUsage = "<verb> [verb flags] <args>"
	app.Run(app.VerbMain)
}
