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

// Package app provides the small command-line harness shared by the three
// compile-* verbs and bspinfo: flag parsing, a usage printer, and a uniform
// Run entry point that maps a returned error to a process exit code via
// core/fault. This is a single-verb harness (each binary in cmd/ is already
// one verb) rather than a verb tree with reflection-bound flag structs
// (see DESIGN.md).
package app

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/mapkit/qbsp/core/fault"
	"github.com/mapkit/qbsp/core/log"
)

// Name is the name of the running binary, used in usage messages.
var Name string

// Action is implemented by a cmd/ verb's body.
type Action interface {
	// Run executes the verb against the already-parsed flag set.
	Run(ctx context.Context, flags *flag.FlagSet) error
}

// Usage prints a usage message and the flag defaults, then exits with
// status 1 (spec.md §6 exit code for usage errors).
func Usage(ctx context.Context, flags *flag.FlagSet, format string, args ...interface{}) {
	if format != "" {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
	}
	fmt.Fprintf(os.Stderr, "Usage: %s [flags] <args>\n", Name)
	flags.PrintDefaults()
	os.Exit(1)
}

// Run parses os.Args[1:] with flags, invokes action.Run, and translates any
// returned error into the exit code spec.md §6 assigns to its fault.Kind
// (falling back to 1 for a plain, unkinded error). It never returns.
func Run(ctx context.Context, flags *flag.FlagSet, action Action) {
	flags.Parse(os.Args[1:])
	err := action.Run(ctx, flags)
	if err == nil {
		os.Exit(0)
	}
	log.Err(ctx, err, "compile failed")
	os.Exit(fault.KindOf(err).ExitCode())
}
