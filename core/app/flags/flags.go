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


// Package flags binds command line flags to the fields of a struct.
package flags

import (
	"flag"
	"fmt"
	"io"
	"reflect"
	"strings"
	"time"
)

// Set is a flag set whose flags are bound with Bind.
type Set struct {
	// Raw is the underlying flag set
	Raw flag.FlagSet
}

// Init names the set and sets where usage and parse errors are written.
func (s *Set) Init(name string, output io.Writer) {
	s.Raw.Init(name, flag.ContinueOnError)
	s.Raw.SetOutput(output)
}

// Bind uses reflection to bind flag values to value, which must be a
// pointer. It will recurse into nested structures adding all leaf fields.
//
// A field is named after its lower cased field name, prefixed by the names
// of the structures it is nested in. The `name` tag replaces the field's part
// of the name, the `fullname` tag replaces the whole name and the `help` tag
// sets the usage text. Embedded structures add no name part. The value held
// by a field when it is bound becomes the flag's default.
func (s *Set) Bind(name string, value interface{}, help string) {
	switch val := value.(type) {
	case *bool:
		s.Raw.BoolVar(val, name, *val, help)
		return
	case *int:
		s.Raw.IntVar(val, name, *val, help)
		return
	case *int64:
		s.Raw.Int64Var(val, name, *val, help)
		return
	case *uint:
		s.Raw.UintVar(val, name, *val, help)
		return
	case *uint64:
		s.Raw.Uint64Var(val, name, *val, help)
		return
	case *float64:
		s.Raw.Float64Var(val, name, *val, help)
		return
	case *string:
		s.Raw.StringVar(val, name, *val, help)
		return
	case *time.Duration:
		s.Raw.DurationVar(val, name, *val, help)
		return
	case flag.Value:
		s.Raw.Var(val, name, help)
		return
	}
	rv := reflect.ValueOf(value)

	if rv.Kind() != reflect.Ptr {
		panic(fmt.Sprintf("Flag value not a pointer: %v", rv.Type()))
	}

	switch e := rv.Elem(); e.Kind() {
	case reflect.Struct:
		t := e.Type()
		for i := 0; i < e.NumField(); i++ {
			tf := t.Field(i)
			if tf.PkgPath != "" {
				continue // Unexported.
			}
			field := e.Field(i)
			if !field.CanSet() {
				panic(fmt.Sprintf("Unsettable field %q : %v", tf.Name, field.Type()))
			}
			fname := strings.ToLower(tf.Name)
			fullname := tf.Tag.Get("fullname")
			if tf.Anonymous {
				fname = ""
			}
			if partial := tf.Tag.Get("name"); partial != "" {
				fname = partial
			}
			switch {
			case fullname != "":
				// all done
			case fname == "":
				fullname = name
			case name == "":
				fullname = fname
			default:
				fullname = name + "-" + fname
			}
			s.Bind(fullname, field.Addr().Interface(), tf.Tag.Get("help"))
		}
	default:
		panic(fmt.Sprintf("Unhandled flag type: %v", rv.Type()))
	}
}

// Parse processes the args to fill in the flags.
// see flag.Parse for more details.
func (s *Set) Parse(args ...string) error {
	return s.Raw.Parse(args)
}

// Args returns the unprocessed part of the command line passed to Parse.
func (s *Set) Args() []string {
	return s.Raw.Args()
}
