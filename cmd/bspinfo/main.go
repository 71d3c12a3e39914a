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

// Command bspinfo prints a per-lump size summary of a compiled .bsp file.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/mapkit/qbsp/core/app"
	"github.com/mapkit/qbsp/core/fault"
	"github.com/mapkit/qbsp/internal/format"
)

type action struct{}

func (action) Run(ctx context.Context, flags *flag.FlagSet) error {
	if flags.NArg() < 1 {
		app.Usage(ctx, flags, "missing bsp path argument")
	}
	f, err := os.Open(flags.Arg(0))
	if err != nil {
		return fault.New(fault.IoError, err, "opening bsp file")
	}
	defer f.Close()

	model, err := format.ReadBSP(f)
	if err != nil {
		return err
	}
	fmt.Print(format.Summarize(model))
	return nil
}

func main() {
	app.Name = "bspinfo"
	flags := flag.NewFlagSet("bspinfo", flag.ExitOnError)
	app.Run(context.Background(), flags, action{})
}
