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

package vis

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/mapkit/qbsp/core/app/status"
	"github.com/mapkit/qbsp/core/log"
	"github.com/mapkit/qbsp/internal/geo"
)

// basePortalVis computes p's trivial mightsee set: every leaf reachable by
// flood-filling through portals whose winding isn't entirely behind p's own
// plane (flow.cc's BasePortalVis — the cheap over-approximation PortalFlow
// then narrows).
func (g *Graph) basePortalVis(p *dirPortal) {
	seen := NewBits(g.NumLeafs)
	var walk func(leaf int)
	walk = func(leaf int) {
		if seen.Get(leaf) {
			return
		}
		seen.Set(leaf)
		for _, q := range g.byLeaf[leaf] {
			if len(clipFront(q.Winding, p.Plane)) == 0 {
				continue // q lies entirely behind p; nothing through it is visible from p
			}
			walk(q.Dst)
		}
	}
	seen.Set(p.Dst)
	walk(p.Dst)
	p.mightsee = seen
}

// flow narrows p.mightsee into p.vis by recursively clipping the viewing
// window through every intervening portal and, from the second hop on,
// sharpening that window against the up-to-four separating-plane tests
// ClipToSeparators runs (flow.cc's RecursiveLeafFlow). The first hop has no
// prior pass winding to separate against, matching the original's "second
// leaf can only be blocked if coplanar" special case.
func (g *Graph) flow(p *dirPortal) {
	vis := NewBits(g.NumLeafs)
	vis.Set(p.Dst)
	g.recurse(p, p.Dst, p.Winding, nil, p.Plane, p.Plane, vis)
	p.vis = vis
}

// recurse walks from leaf, clipping the source window (sourceW, as seen
// from behind srcPlane) and the pass window (passW, the narrowing view
// already accumulated through the portals visited so far, on passPlane)
// through each of leaf's portals in turn. passW is nil only on the first
// hop out of the originating portal.
func (g *Graph) recurse(src *dirPortal, leaf int, sourceW, passW geo.Winding, srcPlane, passPlane geo.Plane, vis Bits) {
	for _, q := range g.byLeaf[leaf] {
		if !src.mightsee.Get(q.Dst) {
			continue
		}
		if q.mightsee != nil && !q.mightsee.AddsNew(vis) {
			continue // nothing reachable through q is new; not worth descending
		}
		if coplanarOpposing(passPlane, q.Plane) {
			continue // can't step back out through the face we just came in
		}

		target := clipFront(q.Winding, srcPlane)
		if len(target) == 0 {
			continue
		}
		target = clipFront(target, passPlane)
		if len(target) == 0 {
			continue
		}
		source := clipFront(sourceW, q.Plane.Negate())
		if len(source) == 0 {
			continue
		}

		if passW != nil {
			target = clipToSeparators(sourceW, passW, target, false)
			if len(target) == 0 {
				continue
			}
			target = clipToSeparators(passW, sourceW, target, true)
			if len(target) == 0 {
				continue
			}
			source = clipToSeparators(target, passW, source, false)
			if len(source) == 0 {
				continue
			}
			source = clipToSeparators(passW, target, source, true)
			if len(source) == 0 {
				continue
			}
		}

		vis.Set(q.Dst)
		g.recurse(src, q.Dst, source, target, srcPlane, q.Plane, vis)
	}
}

// Result is PVSSolver's output: one RLE-compressed visibility row per
// visible leaf, indexed by VisLeafNum.
type Result struct {
	NumLeafs   int
	Compressed [][]byte
}

// Run computes BasePortalVis then PortalFlow for every directed portal in g,
// concurrently (spec.md §4.7's parallel-for-per-portal model), then folds
// each leaf's bordering portals' vis sets into that leaf's PVS row and
// run-length compresses it for the format lump.
func Run(ctx context.Context, g *Graph) (*Result, error) {
	task := status.Start(ctx, "vis")
	defer task.Finish(ctx)

	eg, _ := errgroup.WithContext(ctx)
	for _, p := range g.all {
		p := p
		eg.Go(func() error {
			g.basePortalVis(p)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	eg, _ = errgroup.WithContext(ctx)
	for _, p := range g.all {
		p := p
		eg.Go(func() error {
			g.flow(p)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	rows := make([]Bits, g.NumLeafs)
	for i := range rows {
		rows[i] = NewBits(g.NumLeafs)
		rows[i].Set(i)
	}
	for _, p := range g.all {
		rows[p.Src].Or(p.vis)
	}

	out := &Result{NumLeafs: g.NumLeafs, Compressed: make([][]byte, g.NumLeafs)}
	for i, row := range rows {
		out.Compressed[i] = CompressRLE(row.Bytes(g.NumLeafs))
	}
	log.I(ctx).Log("vis: %d leafs, %d directed portals", g.NumLeafs, len(g.all))
	return out, nil
}

// CompressRLE applies Quake's decompression-friendly zero-run encoding: a
// literal non-zero byte passes through unchanged, a run of zero bytes
// becomes a 0x00 followed by the run length (capped at 255, like the
// original format).
func CompressRLE(raw []byte) []byte {
	var out []byte
	for i := 0; i < len(raw); {
		if raw[i] != 0 {
			out = append(out, raw[i])
			i++
			continue
		}
		j := i
		for j < len(raw) && raw[j] == 0 && j-i < 255 {
			j++
		}
		out = append(out, 0, byte(j-i))
		i = j
	}
	return out
}
