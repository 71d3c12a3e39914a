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

// Package csg implements pairwise brush overlap removal for brushes of
// equal content class (spec.md §4.3): for each brush B, every side fragment
// entirely hidden inside some other brush C of the same CSG class is
// discarded; the survivors carry B's original brush identity and serve only
// as BSP splitter candidates and leaf-content markfaces, with no expectation
// of closure.
package csg

import (
	"context"
	"sort"

	"github.com/mapkit/qbsp/core/app/status"
	"github.com/mapkit/qbsp/core/log"
	"github.com/mapkit/qbsp/internal/brush"
	"github.com/mapkit/qbsp/internal/geo"
)

// Stats counts recoverable anomalies for the final errors/warnings summary
// (spec.md §7).
type Stats struct {
	BrushesDropped int
	ContentConflicts int
}

// Run performs CSG over brushes in map order (brushes[i].ID must equal i,
// "later wins" precedence is by index). It returns the new, possibly
// non-closed brushes that TreeBuilder should partition on.
func Run(ctx context.Context, gctx *geo.Context, brushes []*brush.Brush) ([]*brush.Brush, Stats) {
	task := status.Start(ctx, "csg")
	defer task.Finish(ctx)

	out := make([]*brush.Brush, 0, len(brushes))
	var stats Stats
	for _, b := range brushes {
		sides := clipBrush(gctx, b, brushes)
		if len(sides) == 0 {
			stats.BrushesDropped++
			continue
		}
		nb := &brush.Brush{ID: b.ID, Contents: b.Contents, AABB: geo.EmptyAABB()}
		nb.Sides = sides
		for _, s := range sides {
			for _, p := range s.Winding {
				nb.AABB = nb.AABB.Add(p)
			}
		}
		out = append(out, nb)
	}
	task.Warnf(ctx, "csg: %d brushes dropped (zero surviving sides)", stats.BrushesDropped)
	log.I(ctx).Log("csg: %d brushes in, %d brushes out", len(brushes), len(out))
	return out, stats
}

// clipBrush returns the surviving side fragments of b after removing
// overlap with every other same-class brush.
func clipBrush(gctx *geo.Context, b *brush.Brush, all []*brush.Brush) []brush.Side {
	var survivors []brush.Side
	for _, side := range b.Sides {
		frags := []geo.Winding{side.Winding}
		for _, c := range all {
			if c.ID == b.ID || !brush.SameCSGClass(b.Contents, c.Contents) {
				continue
			}
			if b.AABB.Disjoint(c.AABB) {
				continue
			}
			frags = clipFragmentsToBrush(gctx, frags, side, b.ID, c)
			if len(frags) == 0 {
				break
			}
		}
		for _, f := range frags {
			if len(f) < 3 {
				continue
			}
			s := side
			s.Winding = f
			survivors = append(survivors, s)
		}
	}
	return survivors
}

// clipFragmentsToBrush clips every fragment in frags (all lying on side's
// plane, owned by brush ownerID) against every plane of c, keeping the
// portion outside c and applying the map-order precedence rule to any
// portion that is exactly coincident with one of c's planes (spec.md §4.3
// step 4).
func clipFragmentsToBrush(gctx *geo.Context, frags []geo.Winding, side brush.Side, ownerID int, c *brush.Brush) []geo.Winding {
	sidePlane := gctx.Planes.Plane(side.PlaneID)

	var kept []geo.Winding
	remaining := frags
	for _, cside := range c.Sides {
		cPlane := gctx.Planes.Plane(cside.PlaneID)
		var next []geo.Winding
		for _, frag := range remaining {
			front, back := frag.Clip(cPlane)
			if len(front) >= 3 {
				kept = append(kept, front)
			}
			if len(back) >= 3 {
				// This fragment's plane may be exactly the coincident
				// surface of c's plane; apply precedence there instead of
				// continuing to clip it away as interior.
				if coincident(sidePlane, cPlane) {
					if dot := sidePlane.Normal.Dot(cPlane.Normal); dot < 0 {
						// Opposite-facing coincident planes: always clip off.
						continue
					}
					if ownerID > c.ID {
						// Later brush wins: this fragment survives as-is.
						kept = append(kept, back)
						continue
					}
					// Earlier brush discards in favor of c.
					continue
				}
				next = append(next, back)
			}
		}
		remaining = next
		if len(remaining) == 0 {
			break
		}
	}
	// Anything still "remaining" after all of c's planes is strictly
	// interior to c (not coincident with any face) and is discarded.
	return kept
}

func coincident(a, b geo.Plane) bool {
	d := a.Normal.Dot(b.Normal)
	if d < 0 {
		d = -d
	}
	if 1-d > geo.EqualEpsilon*10 {
		return false
	}
	return absf(a.Dist-b.Dist) < geo.PointEqualEpsilon || absf(a.Dist+b.Dist) < geo.PointEqualEpsilon
}

func absf(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

// SortByOrder is a convenience for callers that need brushes re-sorted into
// map order (by ID) before calling Run, e.g. after a parallel parse stage.
func SortByOrder(brushes []*brush.Brush) {
	sort.Slice(brushes, func(i, j int) bool { return brushes[i].ID < brushes[j].ID })
}
