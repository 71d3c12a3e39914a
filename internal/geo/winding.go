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

package geo

import "github.com/mapkit/qbsp/core/math/f32"

// Winding is an ordered, convex, coplanar sequence of points.
type Winding []f32.Vec3

// Copy returns an independent copy of w.
func (w Winding) Copy() Winding {
	if w == nil {
		return nil
	}
	c := make(Winding, len(w))
	copy(c, w)
	return c
}

// Flip reverses the winding order, turning a front-facing polygon into a
// back-facing one (or vice versa).
func (w Winding) Flip() Winding {
	n := len(w)
	f := make(Winding, n)
	for i, p := range w {
		f[n-1-i] = p
	}
	return f
}

// Plane derives the supporting plane of w from its first three points.
func (w Winding) Plane() (Plane, bool) {
	if len(w) < 3 {
		return Plane{}, false
	}
	return NewPlane(w[0], w[1], w[2])
}

// Area returns the polygon's area via triangle-fan summation.
func (w Winding) Area() float32 {
	if len(w) < 3 {
		return 0
	}
	var total float32
	for i := 1; i < len(w)-1; i++ {
		d1 := w[i].Sub(w[0])
		d2 := w[i+1].Sub(w[0])
		total += d1.Cross(d2).Magnitude()
	}
	return total * 0.5
}

// Centroid returns the arithmetic mean of w's vertices. Callers that need
// the area-weighted centroid of a non-convex or highly elongated winding
// should triangulate explicitly; for the convex windings this package
// produces, the vertex mean is an adequate center for BSP heuristics.
func (w Winding) Centroid() f32.Vec3 {
	var sum f32.Vec3
	for _, p := range w {
		sum = sum.Add(p)
	}
	if len(w) == 0 {
		return sum
	}
	return sum.Scale(1.0 / float32(len(w)))
}

// Bounds returns the axis-aligned (min, max) bounding box of w.
func (w Winding) Bounds() (min, max f32.Vec3) {
	if len(w) == 0 {
		return
	}
	min, max = w[0], w[0]
	for _, p := range w[1:] {
		min = min.Min(p)
		max = max.Max(p)
	}
	return
}

// Radius returns the maximum distance from the centroid to any vertex, used
// by PVSSolver's portal-radius culling (spec.md §4.7).
func (w Winding) Radius() float32 {
	c := w.Centroid()
	var r float32
	for _, p := range w {
		if d := p.Sub(c).Magnitude(); d > r {
			r = d
		}
	}
	return r
}

// Side classifies a vertex against a plane using OnEpsilon.
type Side int

const (
	Front Side = iota
	Back
	On
)

// ClassifyPoint returns how p relates to pl, using OnEpsilon.
func ClassifyPoint(pl Plane, p f32.Vec3) Side {
	d := pl.Distance(p)
	switch {
	case d > OnEpsilon:
		return Front
	case d < -OnEpsilon:
		return Back
	default:
		return On
	}
}

// Clip partitions w by pl into front and back sub-windings. Either result
// may be nil if w lies entirely on one side. Vertices within OnEpsilon of
// pl are emitted into both sides without being split (spec.md §4.1).
func (w Winding) Clip(pl Plane) (front, back Winding) {
	n := len(w)
	if n == 0 {
		return nil, nil
	}
	dists := make([]float32, n+1)
	sides := make([]Side, n+1)
	var counts [3]int
	for i, p := range w {
		d := pl.Distance(p)
		dists[i] = d
		switch {
		case d > OnEpsilon:
			sides[i] = Front
		case d < -OnEpsilon:
			sides[i] = Back
		default:
			sides[i] = On
		}
		counts[sides[i]]++
	}
	dists[n] = dists[0]
	sides[n] = sides[0]

	if counts[Back] == 0 {
		return w.Copy(), nil
	}
	if counts[Front] == 0 {
		return nil, w.Copy()
	}

	f := make(Winding, 0, n+4)
	b := make(Winding, 0, n+4)

	for i := 0; i < n; i++ {
		p1 := w[i]
		if sides[i] == On {
			f = append(f, p1)
			b = append(b, p1)
		} else if sides[i] == Front {
			f = append(f, p1)
		} else {
			b = append(b, p1)
		}

		if sides[i+1] == On || sides[i+1] == sides[i] {
			continue
		}

		p2 := w[(i+1)%n]
		t := dists[i] / (dists[i] - dists[i+1])
		mid := lerpOnPlane(pl, p1, p2, t)
		f = append(f, mid)
		b = append(b, mid)
	}
	return f, b
}

// lerpOnPlane interpolates between p1 and p2 by t, snapping the coordinate
// of any axis the plane is exactly axis-aligned on to ±pl.Dist to avoid
// round-off drift (spec.md §4.1's "round-off policy").
func lerpOnPlane(pl Plane, p1, p2 f32.Vec3, t float32) f32.Vec3 {
	mid := p1.Lerp(p2, t)
	for j := 0; j < 3; j++ {
		switch pl.Normal[j] {
		case 1:
			mid[j] = pl.Dist
		case -1:
			mid[j] = -pl.Dist
		}
	}
	return mid
}

// BaseWindingForPlane produces a square winding of side ~2*extent, aligned
// to pl and centered at extent*pl.Normal projected onto pl.
func BaseWindingForPlane(pl Plane, extent float32) Winding {
	// Choose the axial direction furthest from pl.Normal as a temporary up,
	// then orthonormalize against the plane normal.
	up := f32.Vec3{0, 0, 1}
	ax, ay, az := f32.Abs(pl.Normal[0]), f32.Abs(pl.Normal[1]), f32.Abs(pl.Normal[2])
	if ax >= ay && ax >= az {
		up = f32.Vec3{0, 0, 1}
	} else if az >= ax && az >= ay {
		up = f32.Vec3{1, 0, 0}
	}
	v := up.Dot(pl.Normal)
	up = up.Sub(pl.Normal.Scale(v)).Normalize()
	right := up.Cross(pl.Normal)

	org := pl.Normal.Scale(pl.Dist)
	up = up.Scale(extent)
	right = right.Scale(extent)

	return Winding{
		org.Sub(right).Add(up),
		org.Add(right).Add(up),
		org.Add(right).Sub(up),
		org.Sub(right).Sub(up),
	}
}
