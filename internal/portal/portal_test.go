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
	"context"
	"testing"

	"github.com/mapkit/qbsp/internal/brush"
	"github.com/mapkit/qbsp/internal/geo"
	"github.com/mapkit/qbsp/internal/tree"
)

// twoLeafWorld builds the simplest possible tree: a single splitting plane
// at x=0 inside a [-64,64]^3 box, giving one interior node and two empty
// leaves, both of which border the void directly — a map this shallow
// always leaks, which is exactly what TestFloodDetectsLeak wants.
func twoLeafWorld(t *testing.T) (*geo.Context, *tree.Node, geo.AABB) {
	t.Helper()
	gctx := geo.NewContext()
	pl, ok := geo.NewPlane(geo.Vec3{0, 0, 1}, geo.Vec3{0, 0, 0}, geo.Vec3{0, 1, 0})
	if !ok {
		t.Fatal("degenerate plane")
	}
	planeID := gctx.Planes.Intern(pl)

	bounds := geo.AABB{Min: geo.Vec3{-64, -64, -64}, Max: geo.Vec3{64, 64, 64}}
	front := tree.NewLeaf(0, geo.AABB{Min: geo.Vec3{0, -64, -64}, Max: bounds.Max}, 0)
	back := tree.NewLeaf(1, geo.AABB{Min: bounds.Min, Max: geo.Vec3{0, 64, 64}}, 0)
	root := tree.NewInterior(2, bounds, planeID, front, back)
	return gctx, root, bounds
}

// sealedBoxWorld builds a small empty leaf strictly inside inner, surrounded
// on all six sides by a solid slab leaf reaching out to outer, so the
// world is airtight: no leaf borders the void directly.
func sealedBoxWorld(gctx *geo.Context, outer, inner geo.AABB) *tree.Node {
	id := 0
	alloc := func() int { n := id; id++; return n }
	return buildSealedBox(gctx, outer, inner, 0, alloc)
}

func buildSealedBox(gctx *geo.Context, bounds, inner geo.AABB, axis int, alloc func() int) *tree.Node {
	if axis == 6 {
		return tree.NewLeaf(alloc(), bounds, 0)
	}
	a := axis / 2
	isMin := axis%2 == 0

	var normal geo.Vec3
	var dist float32
	slab := bounds
	inside := bounds
	if isMin {
		normal[a] = 1
		dist = inner.Min[a]
		slab.Max[a] = inner.Min[a]
		inside.Min[a] = inner.Min[a]
	} else {
		normal[a] = -1
		dist = -inner.Max[a]
		slab.Min[a] = inner.Max[a]
		inside.Max[a] = inner.Max[a]
	}
	pl := geo.Plane{Normal: normal, Dist: dist, Type: geo.PlaneType(a)}
	planeID := gctx.Planes.Intern(pl)
	// Derive front/back against the plane stored under planeID so
	// Children[0] always matches Distance >= 0.
	canon := gctx.Planes.Plane(planeID)

	insideNode := buildSealedBox(gctx, inside, inner, axis+1, alloc)
	slabNode := tree.NewLeaf(alloc(), slab, brush.Solid)
	if canon.Distance(inside.Min.Add(inside.Max).Scale(0.5)) >= 0 {
		return tree.NewInterior(alloc(), bounds, planeID, insideNode, slabNode)
	}
	return tree.NewInterior(alloc(), bounds, planeID, slabNode, insideNode)
}

func TestExtractProducesLeafPairPortals(t *testing.T) {
	gctx, root, bounds := twoLeafWorld(t)
	portals, outside := Extract(gctx, root, bounds)
	if len(portals) == 0 {
		t.Fatal("expected at least one portal")
	}
	for _, p := range portals {
		if p.Nodes[0] == p.Nodes[1] {
			t.Fatalf("degenerate self portal: %+v", p)
		}
		if !p.Nodes[0].IsLeaf || !p.Nodes[1].IsLeaf {
			t.Fatalf("portal does not connect two leaves: %+v", p)
		}
	}

	front, back := root.Children[0], root.Children[1]
	var sawInterior bool
	for _, p := range Leafs(front) {
		if p.Other(front) == back {
			sawInterior = true
		}
	}
	if !sawInterior {
		t.Error("expected a portal directly between the two leaves on the splitting plane")
	}

	if len(Leafs(outside)) == 0 {
		t.Error("expected the outside sentinel to carry portals too")
	}
}

func TestFloodSealsClosedWorldWithoutLeak(t *testing.T) {
	gctx := geo.NewContext()
	outer := geo.AABB{Min: geo.Vec3{-128, -128, -128}, Max: geo.Vec3{128, 128, 128}}
	inner := geo.AABB{Min: geo.Vec3{-32, -32, -32}, Max: geo.Vec3{32, 32, 32}}
	root := sealedBoxWorld(gctx, outer, inner)
	_, outside := Extract(gctx, root, outer)

	occupied := FindOccupied(gctx, root, []Occupant{{Index: 1, Origin: geo.Vec3{0, 0, 0}}})
	if len(occupied) != 1 {
		t.Fatalf("expected 1 occupied leaf, got %d", len(occupied))
	}

	leaked, trail := Flood(occupied, outside, FillOptions{})
	if leaked {
		t.Fatalf("sealed box world should not leak, trail=%v", trail)
	}

	var empty *tree.Node
	tree.Walk(root, func(n *tree.Node) {
		if n.IsLeaf && n.Contents == 0 {
			empty = n
		}
	})
	if empty == nil || empty.OccupiedDist == 0 {
		t.Error("the empty interior leaf should have been reached by the flood")
	}

	sealed := FillVoid(context.Background(), root)
	if sealed != 0 {
		t.Errorf("every leaf in this world is either solid or reached; nothing to seal, got %d", sealed)
	}
}

func TestFloodDetectsLeak(t *testing.T) {
	gctx, root, bounds := twoLeafWorld(t)
	_, outside := Extract(gctx, root, bounds)

	occupied := FindOccupied(gctx, root, []Occupant{{Index: 1, Origin: geo.Vec3{32, 0, 0}}})
	leaked, trail := Flood(occupied, outside, FillOptions{})
	if !leaked {
		t.Fatal("a two-leaf world with no solid shell must leak")
	}
	if len(trail) == 0 {
		t.Error("expected a non-empty leak trail")
	}
}
