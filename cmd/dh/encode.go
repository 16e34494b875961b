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

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/Le0X8/dh/core/app"
	"github.com/Le0X8/dh/core/data/binary"
	"github.com/Le0X8/dh/core/data/buffer"
	"github.com/Le0X8/dh/core/log"
)

type encodeVerb struct{ EncodeFlags }

func init() {
	verb := &encodeVerb{}
	app.AddVerb(&app.Verb{
		Name:       "encode",
		ShortHelp:  "Encode values and print them as hex",
		ShortUsage: "<type> <value>...",
		Action:     verb,
	})
}

func (verb *encodeVerb) Run(ctx context.Context, flags *flag.FlagSet) error {
	if flags.NArg() < 2 {
		app.Usage(ctx, "Expected a type and at least one value, got %d arguments", flags.NArg())
		return nil
	}
	f, err := parseFormat(flags.Arg(0))
	if err != nil {
		return err
	}
	data, err := encodeValues(ctx, f, flags.Args()[1:])
	if err != nil {
		return err
	}
	fmt.Fprintln(stdout, formatHex(data, verb.Compact))
	return nil
}

func encodeValues(ctx context.Context, f format, values []string) ([]byte, error) {
	w := buffer.RwNew(0)
	for i, v := range values {
		if err := f.write(w, v); err != nil {
			return nil, log.Errf(ctx, err, "Encoding value %d", i)
		}
	}
	data, err := w.Close()
	if err != nil {
		return nil, err
	}
	out := binary.Bytes(data)
	log.Bind(ctx, log.V{"type": f.name, "values": len(values), "bytes": len(out)}).D("Encoded")
	return out, nil
}

func formatHex(data []byte, compact bool) string {
	sep := " "
	if compact {
		sep = ""
	}
	parts := make([]string, len(data))
	for i, b := range data {
		parts[i] = fmt.Sprintf("%02x", b)
	}
	return strings.Join(parts, sep)
}
