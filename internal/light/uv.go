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
	"github.com/mapkit/qbsp/internal/face"
	"github.com/mapkit/qbsp/internal/geo"
)

// maxLuxelsPerAxis bounds a single face's lightmap so a degenerate sliver
// polygon with a tiny luxel size can't allocate an unbounded grid.
const maxLuxelsPerAxis = 256

// FaceGrid is one face's lightmap sample grid: Width*Height luxels in row
// major order, each either a valid world-space sample point or skipped
// because it falls outside the face's polygon.
type FaceGrid struct {
	FaceIndex int
	Width     int
	Height    int
	Points    []geo.Vec3
	Normals   []geo.Vec3
	Valid     []bool
}

// axes picks an in-plane (s, t) basis for n, matching the classic texture
// axis convention: project away from whichever world axis n is most
// parallel to so the basis never degenerates.
func axes(n geo.Vec3) (s, t geo.Vec3) {
	up := geo.Vec3{0, 0, 1}
	if f := n.Dot(up); f > 0.999 || f < -0.999 {
		up = geo.Vec3{0, 1, 0}
	}
	s = n.Cross(up).Normalize()
	t = n.Cross(s).Normalize()
	return s, t
}

func project(p, origin, s, t geo.Vec3) (float32, float32) {
	d := p.Sub(origin)
	return d.Dot(s), d.Dot(t)
}

// pointInPolygon2D is the standard even-odd ray cast test.
func pointInPolygon2D(poly [][2]float32, x, y float32) bool {
	in := false
	n := len(poly)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		xi, yi := poly[i][0], poly[i][1]
		xj, yj := poly[j][0], poly[j][1]
		if (yi > y) != (yj > y) {
			t := (y-yi)/(yj-yi)*(xj-xi) + xi
			if x < t {
				in = !in
			}
		}
	}
	return in
}

// buildFaceGrid projects f onto its plane's basis, lays out a regular
// world-unit grid of luxels over its bounding rectangle, and keeps only the
// samples that land inside the polygon. normalAt resolves a pool vertex's
// (possibly phong-smoothed) normal; it falls back to the face's flat plane
// normal for points it has no opinion about.
func buildFaceGrid(idx int, f *face.Face, pool *face.Pool, flatNormal geo.Vec3, luxelSize float32, normalAt func(vert int) (geo.Vec3, bool)) *FaceGrid {
	if len(f.Verts) < 3 {
		return nil
	}
	origin := pool.Vec(f.Verts[0])
	s, t := axes(flatNormal)

	poly := make([][2]float32, len(f.Verts))
	minS, minT := float32(1e30), float32(1e30)
	maxS, maxT := float32(-1e30), float32(-1e30)
	for i, v := range f.Verts {
		ps, pt := project(pool.Vec(v), origin, s, t)
		poly[i] = [2]float32{ps, pt}
		minS, maxS = minOf(minS, ps), maxOf(maxS, ps)
		minT, maxT = minOf(minT, pt), maxOf(maxT, pt)
	}

	w := clampDim((maxS-minS)/luxelSize + 1)
	h := clampDim((maxT-minT)/luxelSize + 1)

	g := &FaceGrid{FaceIndex: idx, Width: w, Height: h}
	g.Points = make([]geo.Vec3, w*h)
	g.Normals = make([]geo.Vec3, w*h)
	g.Valid = make([]bool, w*h)

	// averaged vertex normal fallback: if every vertex of the face agrees on
	// a phong normal, interpolate those instead of the flat one.
	vertNormals := make([]geo.Vec3, len(f.Verts))
	havePhong := normalAt != nil
	for i, v := range f.Verts {
		if normalAt == nil {
			vertNormals[i] = flatNormal
		} else if n, ok := normalAt(v); ok {
			vertNormals[i] = n
		} else {
			havePhong = false
			vertNormals[i] = flatNormal
		}
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			ps := minS + float32(x)*luxelSize
			pt := minT + float32(y)*luxelSize
			i := y*w + x
			if !pointInPolygon2D(poly, ps, pt) {
				continue
			}
			world := origin.Add(s.Scale(ps)).Add(t.Scale(pt))
			g.Points[i] = world
			g.Valid[i] = true
			if havePhong {
				g.Normals[i] = barycentricNormal(poly, vertNormals, ps, pt)
			} else {
				g.Normals[i] = flatNormal
			}
		}
	}
	return g
}

// barycentricNormal blends the polygon's per-vertex normals with inverse
// squared distance weights from (x, y), returning a vertex's own normal when
// (x, y) sits on that vertex. It is a cheap stand-in for true barycentric
// interpolation and does not equal it, not even for a triangle.
func barycentricNormal(poly [][2]float32, normals []geo.Vec3, x, y float32) geo.Vec3 {
	var sum geo.Vec3
	var wsum float32
	for i, p := range poly {
		dx, dy := p[0]-x, p[1]-y
		d := dx*dx + dy*dy
		w := float32(1)
		if d > 1e-6 {
			w = 1 / d
		} else {
			return normals[i]
		}
		sum = sum.Add(normals[i].Scale(w))
		wsum += w
	}
	if wsum == 0 {
		return sum
	}
	return sum.Scale(1 / wsum).Normalize()
}

func clampDim(v float32) int {
	n := int(v)
	if n < 1 {
		n = 1
	}
	if n > maxLuxelsPerAxis {
		n = maxLuxelsPerAxis
	}
	return n
}

func minOf(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func maxOf(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
