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


package app

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/Le0X8/dh/core/app/flags"
)

// Verb holds information about a runnable api command.
type Verb struct {
	Name       string    // The name of the command
	Action     Action    // The action to run, its exported fields are bound as flags
	ShortHelp  string    // Help for the purpose of the command
	ShortUsage string    // Help for how to use the command
	Flags      flags.Set // The command line flags it accepts
	verbs      []*Verb
}

// Action is the interface for verb actions.
type Action interface {
	// Run is the method to perform the action associated with a verb.
	// flags holds the parsed flag set, its Args are the non-flag arguments.
	Run(ctx context.Context, flags *flag.FlagSet) error
}

var globalVerbs Verb

// Add adds a new verb to the supported set, it will panic if a
// duplicate name is encountered.
func (v *Verb) Add(child *Verb) {
	for _, existing := range v.verbs {
		if existing.Name == child.Name {
			panic(fmt.Errorf("Duplicate verb name %s", child.Name))
		}
	}
	child.Flags.Raw.Init(child.Name, flag.ContinueOnError)
	if child.Action != nil {
		child.Flags.Bind("", child.Action, "")
	}
	v.verbs = append(v.verbs, child)
}

// Filter returns the filtered list of verbs who's names match the specified
// prefix. An exact match always wins.
func (v *Verb) Filter(prefix string) (result []*Verb) {
	for _, child := range v.verbs {
		if child.Name == prefix {
			return []*Verb{child}
		}
		if strings.HasPrefix(child.Name, prefix) {
			result = append(result, child)
		}
	}
	return result
}

// Invoke runs a verb, handing it the command line arguments it should process.
func (v *Verb) Invoke(ctx context.Context, args []string) error {
	if len(args) < 1 {
		Usage(ctx, "Must supply a verb to %s", Name)
		return nil
	}
	verb := args[0]
	matches := v.Filter(verb)
	switch len(matches) {
	case 1:
		selected := matches[0]
		stderr := getStderr(ctx)
		selected.Flags.Raw.SetOutput(stderr)
		selected.Flags.Raw.Usage = func() {
			fmt.Fprintf(stderr, "Usage: %s %s %s\n%s\n", Name, selected.Name, selected.ShortUsage, selected.ShortHelp)
			selected.Flags.Raw.PrintDefaults()
		}
		if err := selected.Flags.Parse(args[1:]...); err != nil {
			panic(UsageExit)
		}
		if selected.Action == nil {
			return fmt.Errorf("Verb '%s' has no action", selected.Name)
		}
		return selected.Action.Run(ctx, &selected.Flags.Raw)
	case 0:
		Usage(ctx, "Verb '%s' is unknown", verb)
	default:
		Usage(ctx, "Verb '%s' is ambiguous", verb)
	}
	return nil
}

// AddVerb adds a new verb to the supported set, it will panic if a
// duplicate name is encountered.
func AddVerb(v *Verb) {
	globalVerbs.Add(v)
}

// FilterVerbs returns the filtered list of verbs who's names match the specified
// prefix.
func FilterVerbs(prefix string) (result []*Verb) {
	return globalVerbs.Filter(prefix)
}

// VerbMain is a task that can be handed to Run to invoke the verb handling system.
func VerbMain(ctx context.Context) error {
	return globalVerbs.Invoke(ctx, globalVerbs.Flags.Args())
}
