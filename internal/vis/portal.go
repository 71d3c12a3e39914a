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

// Package vis implements PVSSolver (spec.md §4.7): BasePortalVis, the cheap
// might-see flood that trivially rejects portals behind a source plane, and
// PortalFlow, the recursive leaf-to-leaf visibility refinement that clips
// the viewing window through every intervening portal and sharpens it
// against the separating-plane tests ClipToSeparators runs. Both are
// grounded on vis/flow.cc's RecursiveLeafFlow and ClipToSeparators.
package vis

import (
	"github.com/mapkit/qbsp/internal/brush"
	"github.com/mapkit/qbsp/internal/geo"
	"github.com/mapkit/qbsp/internal/portal"
	"github.com/mapkit/qbsp/internal/tree"
)

// dirPortal is one directed traversal of a leaf-pair portal: Plane's normal
// points from Src into Dst, matching flow.cc's "plane of portal, point
// normal into the neighbor leaf" convention.
type dirPortal struct {
	Plane   geo.Plane
	Winding geo.Winding
	Src     int
	Dst     int

	mightsee Bits // filled by BasePortalVis
	vis      Bits // filled by PortalFlow
}

// Graph is the directed-portal view of the leaf-pair portal list that the
// solver flows visibility through.
type Graph struct {
	NumLeafs int
	byLeaf   map[int][]*dirPortal
	all      []*dirPortal
}

// visibleLeaf reports whether n is a leaf PVS should reason about: every
// solid leaf is invisible by construction and carries no portals worth
// flowing through.
func visibleLeaf(n *tree.Node) bool {
	return n.IsLeaf && n.Contents&brush.Solid == 0
}

// Build assigns VisLeafNum to every visible leaf in root and constructs the
// directed portal graph PortalFlow operates over, keeping only portals
// between two visible leafs (spec.md §4.7's input contract).
func Build(root *tree.Node, portals []*portal.Portal) *Graph {
	g := &Graph{byLeaf: map[int][]*dirPortal{}}
	tree.Walk(root, func(n *tree.Node) {
		if visibleLeaf(n) {
			n.VisLeafNum = g.NumLeafs
			g.NumLeafs++
		} else if n.IsLeaf {
			n.VisLeafNum = -1
		}
	})

	for _, p := range portals {
		a, b := p.Nodes[0], p.Nodes[1]
		if !visibleLeaf(a) || !visibleLeaf(b) {
			continue
		}
		fwd := &dirPortal{Plane: p.Plane.Negate(), Winding: p.Winding, Src: a.VisLeafNum, Dst: b.VisLeafNum}
		bwd := &dirPortal{Plane: p.Plane, Winding: p.Winding, Src: b.VisLeafNum, Dst: a.VisLeafNum}
		g.byLeaf[a.VisLeafNum] = append(g.byLeaf[a.VisLeafNum], fwd)
		g.byLeaf[b.VisLeafNum] = append(g.byLeaf[b.VisLeafNum], bwd)
		g.all = append(g.all, fwd, bwd)
	}
	return g
}

func clipFront(w geo.Winding, pl geo.Plane) geo.Winding {
	front, _ := w.Clip(pl)
	return front
}

func coplanarOpposing(a, b geo.Plane) bool {
	return a.Normal.Add(b.Normal).Magnitude() < geo.EqualEpsilon*10
}
