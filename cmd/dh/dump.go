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

	"github.com/Le0X8/dh/core/app"
	"github.com/Le0X8/dh/core/data/binary"
	"github.com/Le0X8/dh/core/fault"
	"github.com/Le0X8/dh/core/log"
	"github.com/Le0X8/dh/core/os/file"
	"github.com/pkg/errors"
)

type dumpVerb struct{ DumpFlags }

func newDumpVerb() *dumpVerb {
	return &dumpVerb{DumpFlags{RegionFlags: RegionFlags{Length: -1}, Chunk: 4096}}
}

func init() {
	verb := newDumpVerb()
	app.AddVerb(&app.Verb{
		Name:       "dump",
		ShortHelp:  "Print a region of a file as hex or as typed values",
		ShortUsage: "<file>",
		Action:     verb,
	})
}

func (verb *dumpVerb) Run(ctx context.Context, flags *flag.FlagSet) (err error) {
	if flags.NArg() != 1 {
		app.Usage(ctx, "Exactly one file expected, got %d", flags.NArg())
		return nil
	}

	path := flags.Arg(0)
	ctx = log.V{"file": path}.Bind(ctx)
	open := file.OpenR
	if verb.Mapped {
		open = file.OpenMapped
	}
	r, err := open(path)
	if err != nil {
		return err
	}
	defer func() {
		var e fault.One
		e.Collect(err)
		_, cerr := r.Close()
		e.Collect(cerr)
		err = e.First()
	}()

	if verb.Lock {
		if err := r.Lock(false); err != nil {
			return log.Err(ctx, err, "File is locked")
		}
		defer func() {
			var e fault.One
			e.Collect(err)
			e.Collect(r.Unlock())
			err = e.First()
		}()
	}

	size, err := r.Size()
	if err != nil {
		return err
	}
	length := verb.Length
	if length < 0 {
		length = size - verb.Offset
	}
	if verb.Offset < 0 || length < 0 || verb.Offset+length > size {
		return errors.Wrapf(fault.OutOfBounds, "region [%d, %d) of a %d byte file", verb.Offset, verb.Offset+length, size)
	}
	view, err := r.Limit(verb.Offset, length)
	if err != nil {
		return err
	}
	defer view.Close()
	log.Bind(ctx, log.V{"offset": verb.Offset, "length": length}).D("Dumping")

	if verb.Type.name == "" {
		return dumpHex(view, length, verb.Chunk)
	}
	return dumpValues(ctx, view, verb.Type, verb.Offset)
}

func dumpHex(view *binary.LimitedReader, length int64, chunk int) error {
	d := hex.Dumper(stdout)
	if _, err := view.CopyChunked(d, length, chunk); err != nil {
		return err
	}
	return d.Close()
}

func dumpValues(ctx context.Context, view *binary.LimitedReader, f format, base int64) error {
	size, err := view.Size()
	if err != nil {
		return err
	}
	for {
		pos, err := view.Pos()
		if err != nil {
			return err
		}
		if pos >= size {
			return nil
		}
		v, err := f.read(view)
		if err != nil {
			return log.Errf(ctx, err, "Decoding %v at offset %d", f.name, base+pos)
		}
		fmt.Fprintf(stdout, "%08x: %s\n", base+pos, v)
	}
}
