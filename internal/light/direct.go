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

package light

import (
	"math/rand"

	"github.com/mapkit/qbsp/internal/geo"
	"github.com/mapkit/qbsp/internal/tree"
)

// traceBias lifts a sample point off its surface along the normal before
// tracing to a light, the standard fix for a trace immediately reporting
// its own face as an occluder.
const traceBias = 0.25

// StyleBuffer is the accumulated lighting for one lightmap style across an
// entire FaceGrid, row major and parallel to FaceGrid.Points.
type StyleBuffer struct {
	Style int
	Color []geo.Vec3
}

// FaceLightmap is everything baked for a single face: its luxel grid and
// one StyleBuffer per distinct light.Style the grid was touched by.
type FaceLightmap struct {
	FaceIndex int
	Width     int
	Height    int
	Styles    []StyleBuffer
}

// addStyle sums buf into fl's matching style (creating it if absent).
func (fl *FaceLightmap) addStyle(buf *StyleBuffer) {
	dst := fl.styleBuffer(buf.Style, len(buf.Color))
	for i, c := range buf.Color {
		dst.Color[i] = dst.Color[i].Add(c)
	}
}

func (fl *FaceLightmap) styleBuffer(style int, n int) *StyleBuffer {
	for i := range fl.Styles {
		if fl.Styles[i].Style == style {
			return &fl.Styles[i]
		}
	}
	fl.Styles = append(fl.Styles, StyleBuffer{Style: style, Color: make([]geo.Vec3, n)})
	return &fl.Styles[len(fl.Styles)-1]
}

// accumulateDirect casts one shadow ray per (sample, light) pair and adds
// the light's Lambertian contribution into the matching style buffer,
// skipping samples the trace finds occluded. Sun lights instead fire
// opts.SunSamples hemisphere rays per sample, approximating the sky dome
// rather than a single directional beam (spec.md §4.8).
func accumulateDirect(gctx *geo.Context, root *tree.Node, grid *FaceGrid, lights []Light, opts Options) *FaceLightmap {
	fl := &FaceLightmap{FaceIndex: grid.FaceIndex, Width: grid.Width, Height: grid.Height}
	n := len(grid.Points)
	rng := rand.New(rand.NewSource(1))
	for _, l := range lights {
		buf := fl.styleBuffer(l.Style, n)
		for i := 0; i < n; i++ {
			if !grid.Valid[i] {
				continue
			}
			p := grid.Points[i]
			normal := grid.Normals[i]
			bias := p.Add(normal.Scale(traceBias))

			if l.Kind == KindSun {
				frac := sunDome(gctx, root, bias, normal, l.Dir.Normalize().Neg(), opts.SunSamples, rng)
				if frac <= 0 {
					continue
				}
				contribution := geo.Vec3(l.Color).Scale(l.Intensity * frac / 255)
				buf.Color[i] = buf.Color[i].Add(contribution)
				continue
			}

			toLight := l.Origin.Sub(bias)
			dist := toLight.Magnitude()
			if dist < 1e-6 {
				continue
			}
			dir := toLight.Scale(1 / dist)

			if l.Kind == KindSpot && !l.inCone(dir.Neg()) {
				continue
			}
			var lambert float32
			if l.Kind == KindSurface {
				// The emitter's own facing direction gates emission, the
				// same cosEmit test bounce.go uses for patch emitters,
				// rather than the receiving surface's normal.
				lambert = l.Dir.Normalize().Dot(dir.Neg())
			} else {
				lambert = normal.Dot(dir)
			}
			if lambert <= 0 {
				continue
			}
			atten := l.attenuate(dist)
			if atten <= 0 {
				continue
			}
			if occluded(gctx, root, bias, l.Origin) {
				continue
			}
			contribution := geo.Vec3(l.Color).Scale(atten * lambert / 255)
			buf.Color[i] = buf.Color[i].Add(contribution)
		}
	}
	return fl
}

// sunDome estimates the fraction of a sun/sky light reaching p: the direct
// beam along dir counts in full, then samples-1 further hemisphere rays
// around normal are cast and counted when skyVisible reports they escape to
// sky, approximating the rest of the sky dome's contribution the way
// light.hh's -sunsamples setting describes. samples <= 1 falls back to the
// single direct beam.
func sunDome(gctx *geo.Context, root *tree.Node, p, normal, dir geo.Vec3, samples int, rng *rand.Rand) float32 {
	if samples < 1 {
		samples = 1
	}
	lambert := normal.Dot(dir)
	var sum float32
	if lambert > 0 && skyVisible(gctx, root, p, p.Add(dir.Scale(geo.WorldExtent))) {
		sum += lambert
	}
	for i := 1; i < samples; i++ {
		s := hemisphereSample(rng, normal)
		l := normal.Dot(s)
		if l <= 0 {
			continue
		}
		if !skyVisible(gctx, root, p, p.Add(s.Scale(geo.WorldExtent))) {
			continue
		}
		sum += l
	}
	return sum / float32(samples)
}

// applyMinlight raises every style-0 luxel fl covers to at least
// opts.MinlightColor scaled by opts.Minlight, creating the style-0 buffer
// if no light touched this face, so a sealed, unlit room still bakes to the
// worldspawn "_minlight"/"_minlight_color" floor (spec.md §8 scenario F).
// A no-op when opts.Minlight <= 0.
func applyMinlight(fl *FaceLightmap, grid *FaceGrid, opts Options) {
	if opts.Minlight <= 0 {
		return
	}
	floor := geo.Vec3(opts.MinlightColor).Scale(opts.Minlight / 255)
	buf := fl.styleBuffer(0, len(grid.Points))
	for i := range grid.Points {
		if !grid.Valid[i] {
			continue
		}
		c := buf.Color[i]
		buf.Color[i] = geo.Vec3{maxF(c[0], floor[0]), maxF(c[1], floor[1]), maxF(c[2], floor[2])}
	}
}

func maxF(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
