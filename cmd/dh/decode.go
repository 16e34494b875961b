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
	"encoding/hex"
	"flag"
	"fmt"
	"strings"

	"github.com/Le0X8/dh/core/app"
	"github.com/Le0X8/dh/core/data/buffer"
	"github.com/Le0X8/dh/core/fault"
	"github.com/Le0X8/dh/core/log"
	"github.com/pkg/errors"
)

type decodeVerb struct{ DecodeFlags }

func init() {
	verb := &decodeVerb{}
	app.AddVerb(&app.Verb{
		Name:       "decode",
		ShortHelp:  "Decode values from hex and print them",
		ShortUsage: "<type> <hex>...",
		Action:     verb,
	})
}

func (verb *decodeVerb) Run(ctx context.Context, flags *flag.FlagSet) error {
	if flags.NArg() < 2 {
		app.Usage(ctx, "Expected a type and hex input, got %d arguments", flags.NArg())
		return nil
	}
	f, err := parseFormat(flags.Arg(0))
	if err != nil {
		return err
	}
	data, err := parseHex(strings.Join(flags.Args()[1:], ""))
	if err != nil {
		return err
	}
	values, err := decodeValues(ctx, f, data, verb.Count)
	for _, v := range values {
		fmt.Fprintln(stdout, v)
	}
	return err
}

func parseHex(s string) ([]byte, error) {
	s = strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\n', ':', '-':
			return -1
		}
		return r
	}, s)
	s = strings.TrimPrefix(strings.ToLower(s), "0x")
	data, err := hex.DecodeString(s)
	if err != nil {
		return nil, errors.Wrapf(fault.InvalidInput, "bad hex input: %v", err)
	}
	return data, nil
}

// decodeValues decodes up to count values of f from data, or all of them if
// count is 0. Values decoded before a failure are returned with the error.
func decodeValues(ctx context.Context, f format, data []byte, count int) ([]string, error) {
	r := buffer.ReadRef(data)
	defer r.Close()
	out := []string{}
	for count == 0 || len(out) < count {
		pos, err := r.Pos()
		if err != nil {
			return out, err
		}
		if pos >= int64(len(data)) {
			break
		}
		v, err := f.read(r)
		if err != nil {
			return out, log.Errf(ctx, err, "Decoding value %d at offset %d", len(out), pos)
		}
		out = append(out, v)
	}
	log.Bind(ctx, log.V{"type": f.name, "values": len(out)}).D("Decoded")
	return out, nil
}
