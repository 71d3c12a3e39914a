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

// Package portal implements PortalExtractor and the outside-fill leak check
// (spec.md §4.5): it walks the finished BSP tree once to build the portal
// graph connecting adjacent leaves, then floods that graph from every
// occupied leaf to find unreachable void space (or, if the flood escapes the
// map entirely, to report a leak).
package portal

import (
	"github.com/mapkit/qbsp/internal/brush"
	"github.com/mapkit/qbsp/internal/geo"
	"github.com/mapkit/qbsp/internal/tree"
)

// Pad is the distance the world bounds are expanded by before the six
// outside portals are built (spec.md §4.5).
const Pad = 32

// Portal is a winding shared by exactly two leaves (spec.md §3). Nodes[0]
// owns the half-space where Plane.Distance >= 0; Nodes[1] owns the other.
//
// The classic id-software qbsp builds this graph by threading portals onto
// intrusive per-node linked lists (portal_t.next[2]) as it descends the
// tree, splitting and re-parenting each portal in place. That relies on a
// mutable doubly-threaded list and is awkward to express without sharing
// pointers in ways the Go race detector would flag under the tree package's
// eventual parallel build. Extract below gets the identical leaf-pair
// portals from a plain top-down recursion that carries both candidate
// leaves at once (resolve), at the cost of revisiting some interior nodes
// that the in-place version would have touched only once; correctness is
// the same either way and the recursion is easier to follow (see
// DESIGN.md).
type Portal struct {
	Plane   geo.Plane
	Winding geo.Winding
	Nodes   [2]*tree.Node
}

// Other returns the neighbouring leaf of p as seen from n.
func (p *Portal) Other(n *tree.Node) *tree.Node {
	if p.Nodes[0] == n {
		return p.Nodes[1]
	}
	return p.Nodes[0]
}

// Leafs returns every portal touching n (either Nodes slot), attached by
// Extract. n.Portals is the opaque slot tree.Node exposes for exactly this
// purpose (see node.go's doc comment on the field).
func Leafs(n *tree.Node) []*Portal {
	list, _ := n.Portals.([]*Portal)
	return list
}

func attach(n *tree.Node, p *Portal) {
	list, _ := n.Portals.([]*Portal)
	n.Portals = append(list, p)
}

// Extract builds the full portal graph for root: the six portals bounding
// the world (expanded by Pad) against a shared "outside" sentinel leaf,
// clipped down through the tree to the leaves they touch, then, for every
// interior node, the node's plane clipped to the node's region and split
// down through its two children into leaf-pair portals (spec.md §4.5). It
// returns every portal and the sentinel outside leaf, which the caller
// (outside-fill) treats as solid.
func Extract(gctx *geo.Context, root *tree.Node, worldBounds geo.AABB) (portals []*Portal, outside *tree.Node) {
	pad := geo.Vec3{Pad, Pad, Pad}
	bounds := geo.AABB{Min: worldBounds.Min.Sub(pad), Max: worldBounds.Max.Add(pad)}
	outside = tree.NewLeaf(-1, bounds, brush.Solid)

	var box []geo.Plane
	for axis := 0; axis < 3; axis++ {
		for _, sign := range [2]float32{1, -1} {
			pl, w := boundaryFace(bounds, axis, sign)
			box = append(box, pl)
			resolve(gctx, outside, root, w, pl, &portals)
		}
	}

	// region holds planes whose back half-spaces bound n's volume.
	var walk func(n *tree.Node, region []geo.Plane)
	walk = func(n *tree.Node, region []geo.Plane) {
		if !n.IsLeaf {
			pl := gctx.Planes.Plane(n.PlaneID)
			w := geo.BaseWindingForPlane(pl, geo.WorldExtent)
			for _, c := range region {
				_, w = w.Clip(c)
			}
			resolve(gctx, n.Children[0], n.Children[1], w, pl, &portals)
			walk(n.Children[0], append(region[:len(region):len(region)], pl.Negate()))
			walk(n.Children[1], append(region[:len(region):len(region)], pl))
		}
	}
	walk(root, box)
	return portals, outside
}

// resolve recursively clips w (a fragment lying entirely on pl) down through
// nFront's and nBack's subtrees until both are leaves, at which point it has
// found the exact leaf pair that shares that fragment and emits a Portal.
func resolve(gctx *geo.Context, nFront, nBack *tree.Node, w geo.Winding, pl geo.Plane, out *[]*Portal) {
	if len(w) < 3 {
		return
	}
	if nFront.IsLeaf && nBack.IsLeaf {
		if nFront == nBack {
			return
		}
		p := &Portal{Plane: pl, Winding: w, Nodes: [2]*tree.Node{nFront, nBack}}
		attach(nFront, p)
		attach(nBack, p)
		*out = append(*out, p)
		return
	}
	if !nFront.IsLeaf {
		qp := gctx.Planes.Plane(nFront.PlaneID)
		front, back := w.Clip(qp)
		resolve(gctx, nFront.Children[0], nBack, front, pl, out)
		resolve(gctx, nFront.Children[1], nBack, back, pl, out)
		return
	}
	qp := gctx.Planes.Plane(nBack.PlaneID)
	front, back := w.Clip(qp)
	resolve(gctx, nFront, nBack.Children[0], front, pl, out)
	resolve(gctx, nFront, nBack.Children[1], back, pl, out)
}

// facePlane returns the outward-facing plane of one of bounds's six faces.
func facePlane(bounds geo.AABB, axis int, sign float32) geo.Plane {
	var normal geo.Vec3
	var dist float32
	if sign > 0 {
		normal[axis] = 1
		dist = bounds.Max[axis]
	} else {
		normal[axis] = -1
		dist = -bounds.Min[axis]
	}
	return geo.Plane{Normal: normal, Dist: dist, Type: geo.PlaneType(axis)}
}

// boundaryFace returns the outward-facing plane and its rectangular winding
// for one of the six faces of bounds.
func boundaryFace(bounds geo.AABB, axis int, sign float32) (geo.Plane, geo.Winding) {
	pl := facePlane(bounds, axis, sign)
	w := geo.BaseWindingForPlane(pl, geo.WorldExtent)
	// Restrict the infinite base winding to the box by clipping it against
	// the other five faces (their back half-spaces are inside the box).
	for a := 0; a < 3; a++ {
		for _, s := range [2]float32{1, -1} {
			if a == axis && s == sign {
				continue
			}
			_, w = w.Clip(facePlane(bounds, a, s))
			if len(w) == 0 {
				return pl, w
			}
		}
	}
	return pl, w
}
