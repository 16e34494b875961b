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

	"github.com/Le0X8/dh/core/app"
	"github.com/Le0X8/dh/core/fault"
	"github.com/Le0X8/dh/core/log"
	"github.com/Le0X8/dh/core/os/file"
	"github.com/pkg/errors"
)

type patchVerb struct{ PatchFlags }

func newPatchVerb() *patchVerb {
	return &patchVerb{PatchFlags{RegionFlags{Length: -1}}}
}

func init() {
	verb := newPatchVerb()
	app.AddVerb(&app.Verb{
		Name:       "patch",
		ShortHelp:  "Write values into a file, creating it if needed",
		ShortUsage: "<file> <type> <value>...",
		Action:     verb,
	})
}

func (verb *patchVerb) Run(ctx context.Context, flags *flag.FlagSet) (err error) {
	if flags.NArg() < 3 {
		app.Usage(ctx, "Expected a file, a type and at least one value, got %d arguments", flags.NArg())
		return nil
	}
	path := flags.Arg(0)
	f, err := parseFormat(flags.Arg(1))
	if err != nil {
		return err
	}
	if verb.Offset < 0 {
		return errors.Wrapf(fault.InvalidInput, "offset %d", verb.Offset)
	}
	ctx = log.V{"file": path}.Bind(ctx)
	values := flags.Args()[2:]

	rw, err := file.OpenRW(path)
	if err != nil {
		return err
	}
	defer func() {
		var e fault.One
		e.Collect(err)
		_, cerr := rw.Close()
		e.Collect(cerr)
		err = e.First()
	}()
	if verb.Lock {
		if err := rw.Lock(true); err != nil {
			return log.Err(ctx, err, "Locking file")
		}
	}

	if verb.Length < 0 {
		if err := rw.To(verb.Offset); err != nil {
			return err
		}
		return writeValues(ctx, rw, f, values)
	}
	if err := rw.Alloc(verb.Offset + verb.Length); err != nil {
		return err
	}
	view, err := rw.Limit(verb.Offset, verb.Length)
	if err != nil {
		return err
	}
	defer view.Close()
	return writeValues(ctx, view, f, values)
}

func writeValues(ctx context.Context, w valueWriter, f format, values []string) error {
	for i, v := range values {
		if err := f.write(w, v); err != nil {
			return log.Errf(ctx, err, "Writing value %d", i)
		}
	}
	log.Bind(ctx, log.V{"type": f.name, "values": len(values)}).D("Patched")
	return nil
}
