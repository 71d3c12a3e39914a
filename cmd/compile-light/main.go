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

// Command compile-light runs LightmapCore over a map document's sealed,
// vis-solved geometry and writes a finished .bsp with the lighting lump
// filled in. Like compile-vis, it re-runs Geometry and Vis in-process
// instead of reading back a partial .bsp, for the reason noted in
// compile-vis's package doc and DESIGN.md.
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
	"github.com/mapkit/qbsp/internal/light"
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

	extra            *float64
	phong            *bool
	phongAngle       *float64
	dirt             *bool
	dirtDepth        *float64
	dirtScale        *float64
	dirtGain         *float64
	dirtAngle        *float64
	dirtRays         *int
	bounce           *bool
	bounceScale      *float64
	bounceColorScale *float64
	gridSpacing      *float64
	sunSamples       *int
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

	geomOpts := pipeline.GeometryOptions{
		Fill:            portal.FillOptions{Transwater: *a.transwater, Transsky: *a.transsky},
		MaxEdges:        *a.maxEdges,
		DefaultContents: brush.Solid,
	}
	sess, err := pipeline.Geometry(ctx, doc, geomOpts)
	if err != nil {
		return err
	}
	if err := pipeline.Vis(ctx, sess); err != nil {
		return err
	}

	lightOpts := light.Options{
		LuxelSize:        float32(*a.extra),
		Phong:            *a.phong,
		PhongAngleDeg:    float32(*a.phongAngle),
		Dirt:             *a.dirt,
		DirtDepth:        float32(*a.dirtDepth),
		DirtScale:        float32(*a.dirtScale),
		DirtGain:         float32(*a.dirtGain),
		DirtAngleDeg:     float32(*a.dirtAngle),
		DirtRays:         *a.dirtRays,
		Bounce:           *a.bounce,
		BounceScale:      float32(*a.bounceScale),
		BounceColorScale: float32(*a.bounceColorScale),
		GridSpacing:      float32(*a.gridSpacing),
		SunSamples:       *a.sunSamples,
	}
	lights, world, err := pipeline.ParseLights(sess)
	if err != nil {
		return err
	}
	lightOpts.Minlight = world.Minlight
	lightOpts.MinlightColor = world.MinlightColor
	if err := pipeline.Light(ctx, sess, lights, lightOpts); err != nil {
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
	app.Name = "compile-light"
	flags := flag.NewFlagSet("compile-light", flag.ExitOnError)
	a := action{
		out:        flags.String("o", "", "output .bsp path"),
		target:     flags.String("target", "bsp29", "output dialect: bsp29, bsp2, or 2psb"),
		maxEdges:   flags.Int("maxedges", 0, "renderer max-edges-per-face cap (0 = default)"),
		transwater: flags.Bool("transwater", false, "treat water as transparent to the outside-fill flood"),
		transsky:   flags.Bool("transsky", false, "treat sky as transparent to the outside-fill flood"),

		extra:            flags.Float64("extra", light.DefaultLuxelSize, "world units per lightmap sample"),
		phong:            flags.Bool("phong", false, "smooth face normals across shared edges below -phongangle"),
		phongAngle:       flags.Float64("phongangle", 0, "phong smoothing angle threshold, in degrees"),
		dirt:             flags.Bool("dirt", false, "bake ambient occlusion into the lightmap"),
		dirtDepth:        flags.Float64("dirtdepth", light.DefaultDirtDepth, "ambient occlusion ray depth"),
		dirtScale:        flags.Float64("dirtscale", 1, "ambient occlusion contrast scale"),
		dirtGain:         flags.Float64("dirtgain", 1, "ambient occlusion gain"),
		dirtAngle:        flags.Float64("dirtangle", light.DefaultDirtAngleDeg, "ambient occlusion hemisphere angle, in degrees"),
		dirtRays:         flags.Int("dirtrays", light.DefaultDirtRays, "ambient occlusion hemisphere sample count"),
		bounce:           flags.Bool("bounce", false, "add one bounce of indirect lighting"),
		bounceScale:      flags.Float64("bouncescale", 1, "indirect lighting intensity scale"),
		bounceColorScale: flags.Float64("bouncecolorscale", 1, "indirect lighting color bleed scale"),
		gridSpacing:      flags.Float64("lightgrid", light.DefaultGridSpacing, "light grid cell size for dynamic entities"),
		sunSamples:       flags.Int("sunsamples", light.DefaultSunSamples, "sky-dome hemisphere sample count per sun ray"),
	}
	app.Run(context.Background(), flags, a)
}
