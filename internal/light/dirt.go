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
	"math"
	"math/rand"

	"github.com/mapkit/qbsp/internal/geo"
	"github.com/mapkit/qbsp/internal/tree"
)

// hemisphereSample returns a cosine-weighted direction within the
// hemisphere around normal, using the standard disk-projection transform
// (two uniform randoms u, v map to a disk, then lifted onto the
// hemisphere), matching light.hh's dirt sampler.
func hemisphereSample(rng *rand.Rand, normal geo.Vec3) geo.Vec3 {
	u := rng.Float32()
	v := rng.Float32()
	r := float32(math.Sqrt(float64(u)))
	theta := 2 * math.Pi * float64(v)
	x := r * float32(math.Cos(theta))
	y := r * float32(math.Sin(theta))
	z := float32(math.Sqrt(float64(1 - u)))

	s, t := axes(normal)
	return s.Scale(x).Add(t.Scale(y)).Add(normal.Scale(z)).Normalize()
}

// computeDirt returns, for every luxel of grid, an ambient occlusion
// multiplier in [0, 1]: 1 means fully unoccluded, scaled and gained per
// opts.DirtScale/opts.DirtGain the way light.hh's -dirtscale/-dirtgain flags
// do. Rays that escape further than opts.DirtDepth before hitting anything
// count as fully unoccluded, since distant geometry contributes no
// meaningful occlusion at this point.
func computeDirt(gctx *geo.Context, root *tree.Node, grid *FaceGrid, opts Options) []float32 {
	rng := rand.New(rand.NewSource(1))
	out := make([]float32, len(grid.Points))
	maxAngle := float32(math.Cos(float64(opts.DirtAngleDeg) * math.Pi / 180))

	for i := range grid.Points {
		if !grid.Valid[i] {
			continue
		}
		p := grid.Points[i].Add(grid.Normals[i].Scale(traceBias))
		n := grid.Normals[i]

		var hits int
		for r := 0; r < opts.DirtRays; r++ {
			dir := hemisphereSample(rng, n)
			if dir.Dot(n) < maxAngle {
				continue
			}
			end := p.Add(dir.Scale(opts.DirtDepth))
			if occluded(gctx, root, p, end) {
				hits++
			}
		}
		occlusion := float32(hits) / float32(opts.DirtRays)
		dirt := occlusion * opts.DirtScale
		if dirt > 1 {
			dirt = 1
		}
		dirt = float32(math.Pow(float64(dirt), float64(opts.DirtGain)))
		out[i] = 1 - dirt
	}
	return out
}

// applyDirt scales every style's luxel by its ambient occlusion multiplier.
func applyDirt(fl *FaceLightmap, dirt []float32) {
	for s := range fl.Styles {
		buf := fl.Styles[s].Color
		for i, d := range dirt {
			buf[i] = buf[i].Scale(d)
		}
	}
}
