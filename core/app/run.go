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

// Package app provides the start up, flag handling and verb dispatch shared
// by the dh command line tools.
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/Le0X8/dh/core/app/flags"
	"github.com/Le0X8/dh/core/log"
)

var (
	// Name is the full name of the application
	Name = filepath.Base(os.Args[0])
	// ExitFuncForTesting can be set to change the behaviour when there is a command line parsing failure.
	// It defaults to os.Exit
	ExitFuncForTesting = os.Exit
	// ShortHelp should be set to add a help message to the usage text.
	ShortHelp = ""
	// ShortUsage is usage text for the additional non-flag arguments.
	ShortUsage = ""
)

// ExitCode is the type for named return values from the application main entry point.
type ExitCode int

const (
	// SuccessExit is the exit code for successful completion.
	SuccessExit = ExitCode(0)
	// FatalExit is the exit code if the task failed.
	FatalExit = ExitCode(1)
	// UsageExit is the exit code if the command line could not be understood.
	UsageExit = ExitCode(2)
)

// Task is the signature of the function handed to Run.
type Task func(ctx context.Context) error

// AppFlags are the global flags accepted ahead of the verb.
type AppFlags struct {
	LogLevel log.Severity `name:"log-level" help:"the minimum severity of messages to log (debug, info, warning, error)"`
}

// Run parses the command line, builds a logging context from the global
// flags and runs main, then exits the process with the resulting ExitCode.
func Run(main Task) {
	ExitFuncForTesting(int(RunArgs(main, os.Args[1:], os.Stderr)))
}

// RunArgs is Run without the process exit. Usage text and log messages are
// written to stderr.
func RunArgs(main Task, args []string, stderr io.Writer) (code ExitCode) {
	appFlags := AppFlags{LogLevel: log.Info}
	globalVerbs.Flags = flags.Set{}
	globalVerbs.Flags.Init(Name, stderr)
	globalVerbs.Flags.Bind("", &appFlags, "")
	globalVerbs.Flags.Raw.Usage = func() { printUsage(stderr, "") }
	if err := globalVerbs.Flags.Parse(args...); err != nil {
		return UsageExit
	}

	ctx := log.PutHandler(context.Background(), log.Writer(stderr))
	ctx = log.PutFilter(ctx, log.SeverityFilter(appFlags.LogLevel))
	ctx = log.PutTag(ctx, Name)
	ctx = putStderr(ctx, stderr)

	defer func() {
		switch cause := recover().(type) {
		case nil:
		case ExitCode:
			code = cause
		default:
			panic(cause)
		}
	}()

	if err := main(ctx); err != nil {
		log.E(ctx, "%v", err)
		return FatalExit
	}
	return SuccessExit
}

type stderrKeyTy string

const stderrKey stderrKeyTy = "app.stderrKey"

func putStderr(ctx context.Context, w io.Writer) context.Context {
	return context.WithValue(ctx, stderrKey, w)
}

func getStderr(ctx context.Context) io.Writer {
	if w, ok := ctx.Value(stderrKey).(io.Writer); ok {
		return w
	}
	return os.Stderr
}

// Usage prints message with the formatting args, then the command line
// usage, and stops the application with UsageExit.
func Usage(ctx context.Context, message string, args ...interface{}) {
	printUsage(getStderr(ctx), message, args...)
	panic(UsageExit)
}

func printUsage(w io.Writer, message string, args ...interface{}) {
	if message != "" {
		fmt.Fprintf(w, message, args...)
		fmt.Fprintln(w)
	}
	if ShortHelp != "" {
		fmt.Fprintln(w, ShortHelp)
	}
	fmt.Fprintf(w, "Usage: %s [global flags] %s\n", Name, ShortUsage)
	fmt.Fprintln(w, "Global flags:")
	globalVerbs.Flags.Raw.PrintDefaults()
	if len(globalVerbs.verbs) > 0 {
		fmt.Fprintln(w, "Verbs:")
		for _, v := range globalVerbs.verbs {
			fmt.Fprintf(w, "  %-8s %s\n", v.Name, v.ShortHelp)
		}
	}
}
