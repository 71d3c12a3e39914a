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

// Package light implements LightmapCore (spec.md §4.8): per-face lightmap
// UV parameterization, occlusion-aware direct and one-bounce indirect
// lighting, phong-smoothed normals, dirt (ambient occlusion), multi-style
// packing, and the light grid octree dynamic entities sample at runtime.
// Option names and defaults mirror light.hh's settings block.
package light

// Options configures a lighting Run; field names and defaults follow
// include/light/light.hh's settings (dirt*, phong*, bounce*).
type Options struct {
	LuxelSize float32 // world units per lightmap sample; light.hh calls this -extra/-lightmapscale

	Phong         bool
	PhongAngleDeg float32 // vertices sharing an edge smooth together below this angle

	Dirt         bool
	DirtDepth    float32
	DirtScale    float32
	DirtGain     float32
	DirtAngleDeg float32
	DirtRays     int // hemisphere samples per point; 0 uses DefaultDirtRays

	Bounce           bool
	BounceScale      float32
	BounceColorScale float32

	GridSpacing float32 // light grid cell size; 0 uses DefaultGridSpacing

	SunSamples int // hemisphere samples per sun ray for the sky dome; 0 uses DefaultSunSamples

	// Minlight is the worldspawn "_minlight"/"_minlight_color" floor: every
	// style-0 luxel is raised to at least MinlightColor scaled by Minlight
	// if it would otherwise bake dimmer. Minlight <= 0 disables the floor
	// entirely, so it is never defaulted the way the other fields are.
	Minlight      float32
	MinlightColor Color
}

const (
	DefaultLuxelSize    = 16
	DefaultDirtDepth    = 128
	DefaultDirtAngleDeg = 88
	DefaultDirtRays     = 162
	DefaultGridSpacing  = 64
	DefaultSunSamples   = 64
)

func (o Options) normalized() Options {
	if o.LuxelSize <= 0 {
		o.LuxelSize = DefaultLuxelSize
	}
	if o.DirtDepth <= 0 {
		o.DirtDepth = DefaultDirtDepth
	}
	if o.DirtAngleDeg <= 0 {
		o.DirtAngleDeg = DefaultDirtAngleDeg
	}
	if o.DirtRays <= 0 {
		o.DirtRays = DefaultDirtRays
	}
	if o.GridSpacing <= 0 {
		o.GridSpacing = DefaultGridSpacing
	}
	if o.DirtScale == 0 {
		o.DirtScale = 1
	}
	if o.DirtGain == 0 {
		o.DirtGain = 1
	}
	if o.BounceScale == 0 && o.Bounce {
		o.BounceScale = 1
	}
	if o.SunSamples <= 0 {
		o.SunSamples = DefaultSunSamples
	}
	if o.Minlight > 0 && o.MinlightColor == (Color{}) {
		o.MinlightColor = Color{255, 255, 255}
	}
	return o
}
