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

package brush

import (
	"github.com/mapkit/qbsp/core/fault"
	"github.com/mapkit/qbsp/internal/geo"
)

// Side is one planar boundary of a Brush.
type Side struct {
	PlaneID  int
	Winding  geo.Winding
	TexInfo  int
	Surface  SurfaceFlags
	Contents Contents

	// OnNode marks that this side's plane has been consumed as a tree
	// split (spec.md §3); TreeBuilder sets this, not BrushModel.
	OnNode bool
	// Visible is cleared for sides CSG determined are entirely hidden
	// inside another brush of the same class.
	Visible bool

	// BrushID identifies the originating brush, preserved through CSG so
	// markfaces can be traced back to their source for diagnostics.
	BrushID int
}

// Brush is a convex polyhedron: the intersection of its sides' back
// half-spaces (spec.md §3).
type Brush struct {
	ID       int
	Sides    []Side
	Contents Contents
	AABB     geo.AABB
}

// InputSide is one plane of a brush as read from the map document, before
// windings are derived.
type InputSide struct {
	PlaneID    int
	TexInfo    int
	Surface    SurfaceFlags
}

// New derives a Brush's side windings by clipping a huge base winding for
// each plane against the negated planes of every other side (spec.md §4.2).
// Sides that clip to empty are discarded. A brush with fewer than 4
// surviving sides is rejected with a ParseError.
func New(ctx *geo.Context, id int, contents Contents, inputs []InputSide) (*Brush, error) {
	b := &Brush{ID: id, Contents: contents}
	b.AABB = geo.EmptyAABB()

	for _, in := range inputs {
		pl := ctx.Planes.Plane(in.PlaneID)
		w := geo.BaseWindingForPlane(pl, geo.WorldExtent)
		for _, other := range inputs {
			if other.PlaneID == in.PlaneID {
				continue
			}
			opl := ctx.Planes.Plane(other.PlaneID)
			_, back := w.Clip(opl)
			w = back
			if len(w) == 0 {
				break
			}
		}
		if len(w) < 3 {
			continue
		}
		b.Sides = append(b.Sides, Side{
			PlaneID:  in.PlaneID,
			Winding:  w,
			TexInfo:  in.TexInfo,
			Surface:  in.Surface,
			Contents: contents,
			Visible:  true,
			BrushID:  id,
		})
		for _, p := range w {
			b.AABB = b.AABB.Add(p)
		}
	}

	if len(b.Sides) < 4 {
		return nil, fault.New(fault.ParseError, nil,
			"brush %d has only %d valid sides after clipping, need >= 4", id, len(b.Sides))
	}
	return b, nil
}

// ContainsPoint reports whether p lies inside every side's back half-space,
// i.e. inside the brush's volume (spec.md §8 property 3 / §8 scenario uses).
func (b *Brush) ContainsPoint(ctx *geo.Context, p geo.Vec3) bool {
	for _, s := range b.Sides {
		pl := ctx.Planes.Plane(s.PlaneID)
		if pl.Distance(p) > geo.OnEpsilon {
			return false
		}
	}
	return true
}
