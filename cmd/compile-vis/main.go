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

// Command compile-vis runs PVSSolver over a map document's portal graph and
// writes a .bsp with the visibility lump filled in. spec.md §6 describes
// compile-vis as consuming the .prt file compile-geometry emits; since
// vis.Build needs the live *tree.Node graph a .prt text file doesn't carry,
// this binary re-runs Geometry in-process rather than parsing .prt back into
// a tree (see DESIGN.md's pipeline.Session note).
package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"

	"github.com/mapkit/qbsp/core/app"
	"github.com/mapkit/qbsp/core/fault"
	"github.com/mapkit/qbsp/internal/brush"
	"github.com/mapkit/qbsp/internal/format"
	"github.com/mapkit/qbsp/internal/mapdata"
	"github.com/mapkit/qbsp/internal/pipeline"
	"github.com/mapkit/qbsp/internal/portal"
)

type action struct {
	out        *string
	target     *string
	maxEdges   *int
	transwater *bool
	transsky   *bool
}

func (a action) Run(ctx context.Context, flags *flag.FlagSet) error {
	if flags.NArg() < 1 {
		app.Usage(ctx, flags, "missing map document argument")
	}
	doc, err := readDocument(flags.Arg(0))
	if err != nil {
		return err
	}

	dialect, err := dialectFor(*a.target)
	if err != nil {
		return err
	}

	opts := pipeline.GeometryOptions{
		Fill:            portal.FillOptions{Transwater: *a.transwater, Transsky: *a.transsky},
		MaxEdges:        *a.maxEdges,
		DefaultContents: brush.Solid,
	}

	sess, err := pipeline.Geometry(ctx, doc, opts)
	if err != nil {
		return err
	}
	if err := pipeline.Vis(ctx, sess); err != nil {
		return err
	}

	model := pipeline.BuildModel(sess, dialect)
	return writeBSP(*a.out, model)
}

func writeBSP(outPath string, model *format.Model) error {
	f, err := os.Create(outPath)
	if err != nil {
		return fault.New(fault.IoError, err, "creating bsp file")
	}
	defer f.Close()
	return format.WriteBSP(f, model)
}

func readDocument(path string) (mapdata.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return mapdata.Document{}, fault.New(fault.IoError, err, "reading map document")
	}
	var doc mapdata.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return mapdata.Document{}, fault.New(fault.ParseError, err, "decoding map document")
	}
	return doc, nil
}

func dialectFor(name string) (format.Dialect, error) {
	switch name {
	case "bsp29", "":
		return format.DialectQuake, nil
	case "bsp2":
		return format.DialectBSP2, nil
	case "2psb":
		return format.DialectBSP2RMQ, nil
	}
	return format.Dialect{}, fault.New(fault.ParseError, nil, "unknown target dialect %q", name)
}

func main() {
	app.Name = "compile-vis"
	flags := flag.NewFlagSet("compile-vis", flag.ExitOnError)
	a := action{
		out:        flags.String("o", "", "output .bsp path"),
		target:     flags.String("target", "bsp29", "output dialect: bsp29, bsp2, or 2psb"),
		maxEdges:   flags.Int("maxedges", 0, "renderer max-edges-per-face cap (0 = default)"),
		transwater: flags.Bool("transwater", false, "treat water as transparent to the outside-fill flood"),
		transsky:   flags.Bool("transsky", false, "treat sky as transparent to the outside-fill flood"),
	}
	app.Run(context.Background(), flags, a)
}
