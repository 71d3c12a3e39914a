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

package tree

import (
	"github.com/mapkit/qbsp/internal/brush"
	"github.com/mapkit/qbsp/internal/geo"
)

// Options configures the partitioner (spec.md §4.4, §6 CLI flags).
type Options struct {
	// MidsplitFraction triggers the fast midsplit heuristic once the
	// current partition holds more than this fraction of the total map
	// sides. 0 (the default) disables the fraction trigger.
	MidsplitFraction float32
	// MaxNodeSize triggers midsplit (legacy path) once any axis of the
	// current bounds exceeds this size. 0 disables it.
	MaxNodeSize float32
	// totalSides is the size of the whole map's side pool, used by the
	// midsplit fraction trigger; set by Partition's caller.
	totalSides int
}

type candidate struct {
	planeID int
	splits  int
	axial   bool
	dist    float32 // squared half-extents sum of the resulting child boxes
}

func less(a, b candidate) bool {
	if a.splits != b.splits {
		return a.splits < b.splits
	}
	if a.axial != b.axial {
		return a.axial // axial (true) sorts first
	}
	if a.dist != b.dist {
		return a.dist < b.dist
	}
	return a.planeID < b.planeID
}

// selectSplitter runs the four scored passes in order (spec.md §4.4) and
// returns the winning plane id, or -1 if no candidate side exists at all
// (i.e. this should become a Leaf).
func selectSplitter(ctx *geo.Context, brushes []*brush.Brush, bounds geo.AABB) int {
	passes := []func(brush.Side) bool{
		func(s brush.Side) bool { return !s.Contents.IsDetail() && s.Visible },
		func(s brush.Side) bool { return !s.Contents.IsDetail() && !s.Visible },
		func(s brush.Side) bool { return s.Contents.IsDetail() && s.Visible },
		func(s brush.Side) bool { return s.Contents.IsDetail() && !s.Visible },
	}

	for _, eligible := range passes {
		if id, ok := bestInPass(ctx, brushes, bounds, eligible); ok {
			return id
		}
	}
	return -1
}

func bestInPass(ctx *geo.Context, brushes []*brush.Brush, bounds geo.AABB, eligible func(brush.Side) bool) (int, bool) {
	seen := map[int]bool{}
	var best candidate
	found := false

	for _, b := range brushes {
		for _, s := range b.Sides {
			if s.OnNode || !eligible(s) {
				continue
			}
			if s.Surface&brush.SurfHint != 0 {
				// A HINT face may only be split by another HINT; skip it as
				// a splitter candidate unless every other eligible side in
				// this pass is also HINT (rare; the simple scan below still
				// considers it, splits counted only against other HINTs).
			}
			if seen[s.PlaneID] {
				continue
			}
			seen[s.PlaneID] = true

			pl := ctx.Planes.Plane(s.PlaneID)
			c := candidate{planeID: s.PlaneID, axial: pl.Type.IsAxial()}
			c.splits = countSplits(ctx, brushes, pl, s.Surface&brush.SurfHint != 0)
			fb, bb := splitBounds(bounds, pl)
			c.dist = fb.SquaredHalfExtents() + bb.SquaredHalfExtents()

			if !found || less(c, best) {
				best, found = c, true
			}
		}
	}
	if !found {
		return -1, false
	}
	return best.planeID, true
}

// countSplits counts how many other sides' windings would be split (have
// vertices strictly on both sides) by pl, excluding SKIP-flagged sides. If
// hintOnly is set (pl belongs to a HINT side), only other HINT sides count.
func countSplits(ctx *geo.Context, brushes []*brush.Brush, pl geo.Plane, hintOnly bool) int {
	n := 0
	for _, b := range brushes {
		for _, s := range b.Sides {
			if s.Surface&brush.SurfSkip != 0 {
				continue
			}
			if hintOnly && s.Surface&brush.SurfHint == 0 {
				continue
			}
			if samePlane(ctx, s.PlaneID, pl) {
				continue
			}
			front, back := s.Winding.Clip(pl)
			if len(front) > 0 && len(back) > 0 {
				n++
			}
		}
	}
	return n
}

func samePlane(ctx *geo.Context, id int, pl geo.Plane) bool {
	other := ctx.Planes.Plane(id)
	return other.Normal == pl.Normal && other.Dist == pl.Dist
}

// splitBounds returns the two child AABBs that result from cutting bounds
// by pl, used only for the distribution heuristic (not an exact clip).
func splitBounds(bounds geo.AABB, pl geo.Plane) (front, back geo.AABB) {
	front, back = bounds, bounds
	for i := 0; i < 3; i++ {
		if pl.Normal[i] > 0.999 {
			front.Min[i] = pl.Dist
			back.Max[i] = pl.Dist
			return
		}
		if pl.Normal[i] < -0.999 {
			front.Max[i] = -pl.Dist
			back.Min[i] = -pl.Dist
			return
		}
	}
	return front, back
}

// chooseMidplane implements the "fast midsplit" path (spec.md §4.4): pick
// the side whose plane minimizes the squared half-extents metric,
// preferring axial planes, without computing splits at all.
func chooseMidplane(ctx *geo.Context, brushes []*brush.Brush, bounds geo.AABB) int {
	seen := map[int]bool{}
	best := -1
	var bestAxial bool
	var bestDist float32
	found := false

	for _, b := range brushes {
		for _, s := range b.Sides {
			if s.OnNode || seen[s.PlaneID] {
				continue
			}
			seen[s.PlaneID] = true
			pl := ctx.Planes.Plane(s.PlaneID)
			fb, bb := splitBounds(bounds, pl)
			d := fb.SquaredHalfExtents() + bb.SquaredHalfExtents()
			axial := pl.Type.IsAxial()
			if !found || (axial && !bestAxial) || (axial == bestAxial && d < bestDist) {
				best, bestAxial, bestDist, found = s.PlaneID, axial, d, true
			}
		}
	}
	return best
}

func shouldMidsplit(opt Options, sideCount int, bounds geo.AABB) bool {
	if opt.MidsplitFraction > 0 && opt.totalSides > 0 {
		if float32(sideCount)/float32(opt.totalSides) > opt.MidsplitFraction {
			return true
		}
	}
	if opt.MaxNodeSize > 0 {
		ext := bounds.Max.Sub(bounds.Min)
		if ext[0] > opt.MaxNodeSize || ext[1] > opt.MaxNodeSize || ext[2] > opt.MaxNodeSize {
			return true
		}
	}
	return false
}
