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

// AABB is an axis-aligned bounding box.
type AABB struct {
	Min, Max f32.Vec3
}

// EmptyAABB returns an AABB primed so the first Add call becomes its bounds.
func EmptyAABB() AABB {
	const inf = 1 << 30
	return AABB{
		Min: f32.Vec3{inf, inf, inf},
		Max: f32.Vec3{-inf, -inf, -inf},
	}
}

// Add grows b to include p.
func (b AABB) Add(p f32.Vec3) AABB {
	return AABB{Min: b.Min.Min(p), Max: b.Max.Max(p)}
}

// Union returns the smallest AABB containing both b and o.
func (b AABB) Union(o AABB) AABB {
	return AABB{Min: b.Min.Min(o.Min), Max: b.Max.Max(o.Max)}
}

// Valid reports whether b has been grown by at least one point.
func (b AABB) Valid() bool {
	return b.Min[0] <= b.Max[0] && b.Min[1] <= b.Max[1] && b.Min[2] <= b.Max[2]
}

// Disjoint reports whether b and o do not overlap (CSG's fast AABB reject,
// spec.md §4.3 step 1).
func (b AABB) Disjoint(o AABB) bool {
	for i := 0; i < 3; i++ {
		if b.Max[i] < o.Min[i] || o.Max[i] < b.Min[i] {
			return true
		}
	}
	return false
}

// Contains reports whether p lies within b (inclusive).
func (b AABB) Contains(p f32.Vec3) bool {
	for i := 0; i < 3; i++ {
		if p[i] < b.Min[i] || p[i] > b.Max[i] {
			return false
		}
	}
	return true
}

// SideOfPlane does a fast AABB/plane classification: it returns Front if
// every corner is in front, Back if every corner is behind, and On if the
// box straddles the plane (TreeBuilder's fast reject, spec.md §4.4 step 3).
func (b AABB) SideOfPlane(pl Plane) Side {
	var mind, maxd float32 = 1 << 30, -(1 << 30)
	for i := 0; i < 8; i++ {
		p := f32.Vec3{
			pick(i&1 != 0, b.Min[0], b.Max[0]),
			pick(i&2 != 0, b.Min[1], b.Max[1]),
			pick(i&4 != 0, b.Min[2], b.Max[2]),
		}
		d := pl.Distance(p)
		if d < mind {
			mind = d
		}
		if d > maxd {
			maxd = d
		}
	}
	switch {
	case mind > -OnEpsilon:
		return Front
	case maxd < OnEpsilon:
		return Back
	default:
		return On
	}
}

func pick(cond bool, a, b float32) float32 {
	if cond {
		return b
	}
	return a
}

// SquaredHalfExtents returns the sum of the squares of b's half-extents,
// used by TreeBuilder's spatial-distribution splitter score (spec.md §4.4).
func (b AABB) SquaredHalfExtents() float32 {
	var sum float32
	for i := 0; i < 3; i++ {
		h := (b.Max[i] - b.Min[i]) * 0.5
		sum += h * h
	}
	return sum
}
