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

package portal

import (
	"bufio"
	"container/list"
	"context"
	"fmt"
	"io"

	"github.com/mapkit/qbsp/core/fault"
	"github.com/mapkit/qbsp/internal/brush"
	"github.com/mapkit/qbsp/internal/geo"
	"github.com/mapkit/qbsp/internal/tree"
)

// FillOptions gates which content boundaries outside-fill treats as
// transparent, mirroring qbsp's -transwater/-transsky flags (SPEC_FULL.md's
// supplemented feature list).
type FillOptions struct {
	Transwater bool
	Transsky   bool
	LeakDist   float32 // spacing between dots in the .pts trail; 0 defaults to 2.
}

// Occupant is one non-worldspawn entity's placement, used to seed the flood.
type Occupant struct {
	Index  int
	Origin geo.Vec3
}

// passable reports whether a player's view (and the flood fill) can cross p,
// per outside.cc's Portal_Passable / q3map's convention. Crossing between a
// liquid and a non-liquid leaf takes opt.Transwater, and crossing between a
// sky and a non-sky leaf takes opt.Transsky.
func passable(p *Portal, opt FillOptions) bool {
	a, b := p.Nodes[0].Contents, p.Nodes[1].Contents
	if a&brush.Solid != 0 && a&brush.Detail == 0 {
		return false
	}
	if b&brush.Solid != 0 && b&brush.Detail == 0 {
		return false
	}
	if isLiquid(a) != isLiquid(b) && !opt.Transwater {
		return false
	}
	if (a&brush.Sky != 0) != (b&brush.Sky != 0) && !opt.Transsky {
		return false
	}
	return true
}

func isLiquid(c brush.Contents) bool {
	return c&(brush.Lava|brush.Slime|brush.Water) != 0
}

// FindOccupied assigns leaf.Occupant (the entity index) to every leaf
// containing a non-worldspawn entity origin, skipping origins that land in
// an opaque leaf and leaves that already have one (outside.cc's
// FindOccupiedLeafs). It returns the occupied leaves in entity order.
func FindOccupied(gctx *geo.Context, root *tree.Node, ents []Occupant) []*tree.Node {
	var out []*tree.Node
	for _, e := range ents {
		leaf := tree.PointLeaf(gctx, root, e.Origin)
		if leaf.Contents&brush.Solid != 0 && leaf.Contents&brush.Detail == 0 {
			continue
		}
		if leaf.Occupant >= 0 {
			continue
		}
		leaf.Occupant = e.Index
		out = append(out, leaf)
	}
	return out
}

// Flood runs BFSFloodFillFromOccupiedLeafs (outside.cc): starting from every
// occupied leaf at distance 1, it visits every leaf reachable through a
// passable portal and records the BFS distance in leaf.OccupiedDist. outside
// is always opaque (its Contents is Solid), so the flood itself never steps
// into it, exactly like qbsp's Portal_Passable special-casing outside_node;
// instead, once the flood settles, Flood checks outside's own portal list
// directly: any real leaf bordering the void that the flood reached is a
// leak. Otherwise FillVoid can seal every unreached leaf that is neither
// sky nor solid.
func Flood(occupied []*tree.Node, outside *tree.Node, opt FillOptions) (leaked bool, trail []geo.Vec3) {
	type qe struct {
		node *tree.Node
		dist int
	}
	q := list.New()
	for _, leaf := range occupied {
		q.PushBack(qe{leaf, 1})
	}

	for q.Len() > 0 {
		e := q.Remove(q.Front()).(qe)
		if e.node.OccupiedDist != 0 {
			continue
		}
		e.node.OccupiedDist = e.dist
		for _, p := range Leafs(e.node) {
			if !passable(p, opt) {
				continue
			}
			neighbour := p.Other(e.node)
			if neighbour.OccupiedDist == 0 {
				q.PushBack(qe{neighbour, e.dist + 1})
			}
		}
	}

	for _, p := range Leafs(outside) {
		if leaf := p.Other(outside); leaf.OccupiedDist > 0 {
			return true, leakTrail(leaf, p, opt)
		}
	}
	return false, nil
}

// leakTrail reconstructs the path outside.cc's MakeLeakLine/WriteLeakLine
// walk: from the leaf bordering the void that the flood reached, repeatedly
// step to the passable neighbour with the smallest OccupiedDist until an
// occupant leaf (OccupiedDist == 1) is reached, then emits evenly spaced
// points along the portal midpoints from the occupant out to leak, the
// portal between outleaf and the void.
func leakTrail(outleaf *tree.Node, leak *Portal, opt FillOptions) []geo.Vec3 {
	portals := []*Portal{leak}
	node := outleaf
	for node.OccupiedDist != 1 {
		var best *tree.Node
		var bestPortal *Portal
		bestDist := node.OccupiedDist
		for _, p := range Leafs(node) {
			if !passable(p, opt) {
				continue
			}
			n := p.Other(node)
			if n.OccupiedDist > 0 && n.OccupiedDist < bestDist {
				best, bestPortal, bestDist = n, p, n.OccupiedDist
			}
		}
		if best == nil {
			break
		}
		portals = append(portals, bestPortal)
		node = best
	}

	dist := opt.LeakDist
	if dist <= 0 {
		dist = 2
	}
	var pts []geo.Vec3
	prev := node.AABB.Min.Add(node.AABB.Max).Scale(0.5) // approximate occupant origin
	for i := len(portals) - 1; i >= 0; i-- {
		cur := portals[i].Winding.Centroid()
		pts = append(pts, sampleTrail(prev, cur, dist)...)
		prev = cur
	}
	return pts
}

func sampleTrail(a, b geo.Vec3, step float32) []geo.Vec3 {
	v := b.Sub(a)
	d := v.Magnitude()
	if d == 0 {
		return nil
	}
	dir := v.Scale(1 / d)
	var out []geo.Vec3
	for remaining, p := d, a; remaining > step; remaining, p = remaining-step, p.Add(dir.Scale(step)) {
		out = append(out, p)
	}
	return out
}

// WritePTS writes pts as a .pts leak file (one "x y z" line per point),
// matching qbsp's plain-text trail format (spec.md §6).
func WritePTS(w io.Writer, pts []geo.Vec3) error {
	bw := bufio.NewWriter(w)
	for _, p := range pts {
		if _, err := fmt.Fprintf(bw, "%f %f %f\n", p[0], p[1], p[2]); err != nil {
			return fault.New(fault.IoError, err, "writing leak trail")
		}
	}
	return bw.Flush()
}

// FillVoid converts every unreached leaf (OccupiedDist == 0) that is neither
// sky nor already solid into CONTENTS_SOLID, the same "seal the outside"
// step qbsp's OutLeafsToSolid performs once it is known there is no leak. It
// returns how many leaves were sealed.
func FillVoid(ctx context.Context, root *tree.Node) int {
	n := 0
	tree.Walk(root, func(node *tree.Node) {
		if !node.IsLeaf || node.OccupiedDist != 0 {
			return
		}
		if node.Contents&brush.Sky != 0 || node.Contents&brush.Solid != 0 {
			return
		}
		node.Contents = brush.Solid
		n++
	})
	return n
}
