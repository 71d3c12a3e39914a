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

	"github.com/mapkit/qbsp/internal/geo"
	"github.com/mapkit/qbsp/internal/tree"
)

// bouncePatch is one face treated as a flat area emitter for the indirect
// pass: its average direct-lit color radiating from its centroid. Only the
// base (style 0) direct lighting ever bounces, matching light.hh's
// single-bounce "-bounce" pass, which does not re-propagate switchable
// styles.
type bouncePatch struct {
	faceIndex int
	origin    geo.Vec3
	normal    geo.Vec3
	emission  geo.Vec3
}

// buildBouncePatches averages each face's valid style-0 luxels into one
// emitter patch; faces with no style-0 buffer or no valid samples are
// skipped.
func buildBouncePatches(grids []*FaceGrid, lightmaps []*FaceLightmap) []bouncePatch {
	patches := make([]bouncePatch, 0, len(grids))
	for i, g := range grids {
		fl := lightmaps[i]
		var base *StyleBuffer
		for s := range fl.Styles {
			if fl.Styles[s].Style == 0 {
				base = &fl.Styles[s]
				break
			}
		}
		if base == nil {
			continue
		}
		var originSum, normalSum, colorSum geo.Vec3
		var n int
		for j, valid := range g.Valid {
			if !valid {
				continue
			}
			originSum = originSum.Add(g.Points[j])
			normalSum = normalSum.Add(g.Normals[j])
			colorSum = colorSum.Add(base.Color[j])
			n++
		}
		if n == 0 {
			continue
		}
		patches = append(patches, bouncePatch{
			faceIndex: g.FaceIndex,
			origin:    originSum.Scale(1 / float32(n)),
			normal:    normalSum.Scale(1 / float32(n)).Normalize(),
			emission:  colorSum.Scale(1 / float32(n)),
		})
	}
	return patches
}

// accumulateBounce adds one-bounce indirect light from patches into a new
// style-0 StyleBuffer for grid, a point-to-patch form factor estimate
// (cosine falloff at both ends over squared distance) rather than a true
// hemicube solve.
func accumulateBounce(gctx *geo.Context, root *tree.Node, grid *FaceGrid, patches []bouncePatch, opts Options) *StyleBuffer {
	buf := &StyleBuffer{Style: 0, Color: make([]geo.Vec3, len(grid.Points))}
	for i := range grid.Points {
		if !grid.Valid[i] {
			continue
		}
		p := grid.Points[i].Add(grid.Normals[i].Scale(traceBias))
		n := grid.Normals[i]

		var total geo.Vec3
		for _, patch := range patches {
			if patch.faceIndex == grid.FaceIndex {
				continue
			}
			toPatch := patch.origin.Sub(p)
			dist := toPatch.Magnitude()
			if dist < 1 {
				dist = 1
			}
			dir := toPatch.Scale(1 / dist)
			cosRecv := n.Dot(dir)
			cosEmit := patch.normal.Dot(dir.Neg())
			if cosRecv <= 0 || cosEmit <= 0 {
				continue
			}
			if occluded(gctx, root, p, patch.origin) {
				continue
			}
			formFactor := cosRecv * cosEmit / (float32(math.Pi) * dist * dist)
			total = total.Add(patch.emission.Scale(formFactor * opts.BounceScale))
		}
		if opts.BounceColorScale != 0 {
			total = total.Scale(opts.BounceColorScale)
		}
		buf.Color[i] = total
	}
	return buf
}
