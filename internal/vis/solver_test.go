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
	"testing"

	"github.com/mapkit/qbsp/internal/brush"
	"github.com/mapkit/qbsp/internal/geo"
	"github.com/mapkit/qbsp/internal/portal"
	"github.com/mapkit/qbsp/internal/tree"
)

// threeInARow builds three empty leafs in a row (x in [0,1], [1,2], [2,3]),
// each separated by a solid wall-free split, so every leaf sees every other.
func threeInARow(t *testing.T) (*tree.Node, []*portal.Portal) {
	t.Helper()
	gctx := geo.NewContext()
	plA, ok := geo.NewPlane(geo.Vec3{1, 0, 0}, geo.Vec3{1, 1, 0}, geo.Vec3{1, 0, 1})
	if !ok {
		t.Fatal("degenerate plane A")
	}
	plB, ok := geo.NewPlane(geo.Vec3{2, 0, 0}, geo.Vec3{2, 1, 0}, geo.Vec3{2, 0, 1})
	if !ok {
		t.Fatal("degenerate plane B")
	}
	idA := gctx.Planes.Intern(plA)
	idB := gctx.Planes.Intern(plB)

	leaf0 := tree.NewLeaf(0, geo.AABB{Min: geo.Vec3{0, -8, -8}, Max: geo.Vec3{1, 8, 8}}, 0)
	leaf1 := tree.NewLeaf(1, geo.AABB{Min: geo.Vec3{1, -8, -8}, Max: geo.Vec3{2, 8, 8}}, 0)
	leaf2 := tree.NewLeaf(2, geo.AABB{Min: geo.Vec3{2, -8, -8}, Max: geo.Vec3{3, 8, 8}}, 0)

	right := tree.NewInterior(3, geo.AABB{Min: geo.Vec3{1, -8, -8}, Max: geo.Vec3{3, 8, 8}}, idB, leaf2, leaf1)
	root := tree.NewInterior(4, geo.AABB{Min: geo.Vec3{0, -8, -8}, Max: geo.Vec3{3, 8, 8}}, idA, right, leaf0)

	bounds := geo.AABB{Min: geo.Vec3{0, -8, -8}, Max: geo.Vec3{3, 8, 8}}
	portals, _ := portal.Extract(gctx, root, bounds)
	return root, portals
}

func TestGraphBuildAssignsVisLeafNums(t *testing.T) {
	root, portals := threeInARow(t)
	g := Build(root, portals)
	if g.NumLeafs != 3 {
		t.Fatalf("expected 3 visible leafs, got %d", g.NumLeafs)
	}
	tree.Walk(root, func(n *tree.Node) {
		if n.IsLeaf && n.Contents&brush.Solid == 0 && n.VisLeafNum < 0 {
			t.Errorf("leaf %d never got a VisLeafNum", n.ID)
		}
	})
}

func TestRunEveryLeafSeesItself(t *testing.T) {
	root, portals := threeInARow(t)
	g := Build(root, portals)
	res, err := Run(context.Background(), g)
	if err != nil {
		t.Fatal(err)
	}
	if res.NumLeafs != 3 {
		t.Fatalf("expected 3 leafs, got %d", res.NumLeafs)
	}
	for i, row := range res.Compressed {
		if len(row) == 0 {
			t.Errorf("leaf %d has an empty compressed row", i)
		}
	}
}

func TestRunEndLeafsSeeEachOther(t *testing.T) {
	root, portals := threeInARow(t)
	g := Build(root, portals)
	if _, err := Run(context.Background(), g); err != nil {
		t.Fatal(err)
	}
	// Leaf 0 and leaf 2 are only connected through leaf 1's two flush, full
	// width portals, so a straight-through sightline exists.
	var p0, p2 *dirPortal
	for _, p := range g.all {
		if p.Src == 0 {
			p0 = p
		}
		if p.Src == 2 {
			p2 = p
		}
	}
	if p0 == nil || p2 == nil {
		t.Fatal("expected directed portals from both end leafs")
	}
	if !p0.vis.Get(2) {
		t.Error("leaf 0 should see leaf 2 through the straight corridor")
	}
	if !p2.vis.Get(0) {
		t.Error("leaf 2 should see leaf 0 through the straight corridor")
	}
}

func TestCompressRLERoundTripsThroughLength(t *testing.T) {
	raw := []byte{0, 0, 0, 5, 6, 0, 0, 0, 0, 0, 7}
	got := CompressRLE(raw)
	// decompress inline: 0 byte means "N zero bytes follow in the run length byte"
	var out []byte
	for i := 0; i < len(got); {
		if got[i] != 0 {
			out = append(out, got[i])
			i++
			continue
		}
		n := int(got[i+1])
		for k := 0; k < n; k++ {
			out = append(out, 0)
		}
		i += 2
	}
	if len(out) != len(raw) {
		t.Fatalf("round trip length mismatch: got %d, want %d", len(out), len(raw))
	}
	for i := range raw {
		if out[i] != raw[i] {
			t.Fatalf("round trip mismatch at %d: got %d, want %d", i, out[i], raw[i])
		}
	}
}
