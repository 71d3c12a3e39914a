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
	"context"
	"testing"

	"github.com/mapkit/qbsp/internal/brush"
	"github.com/mapkit/qbsp/internal/geo"
)

func cube(t *testing.T, gctx *geo.Context, id int, contents brush.Contents, c geo.Vec3, h float32) *brush.Brush {
	t.Helper()
	faces := [6][3]geo.Vec3{
		{{c[0] + h, c[1] - h, c[2] - h}, {c[0] + h, c[1] + h, c[2] - h}, {c[0] + h, c[1] + h, c[2] + h}},
		{{c[0] - h, c[1] + h, c[2] - h}, {c[0] - h, c[1] - h, c[2] - h}, {c[0] - h, c[1] - h, c[2] + h}},
		{{c[0] + h, c[1] + h, c[2] - h}, {c[0] - h, c[1] + h, c[2] - h}, {c[0] - h, c[1] + h, c[2] + h}},
		{{c[0] - h, c[1] - h, c[2] - h}, {c[0] + h, c[1] - h, c[2] - h}, {c[0] + h, c[1] - h, c[2] + h}},
		{{c[0] - h, c[1] - h, c[2] + h}, {c[0] + h, c[1] - h, c[2] + h}, {c[0] + h, c[1] + h, c[2] + h}},
		{{c[0] + h, c[1] - h, c[2] - h}, {c[0] - h, c[1] - h, c[2] - h}, {c[0] - h, c[1] + h, c[2] - h}},
	}
	var inputs []brush.InputSide
	for _, f := range faces {
		pl, ok := geo.NewPlane(f[0], f[1], f[2])
		if !ok {
			t.Fatal("degenerate cube face")
		}
		inputs = append(inputs, brush.InputSide{PlaneID: gctx.Planes.Intern(pl)})
	}
	b, err := brush.New(gctx, id, contents, inputs)
	if err != nil {
		t.Fatalf("unexpected error building cube: %v", err)
	}
	return b
}

func TestBuildEmptyBrushListIsOneLeaf(t *testing.T) {
	gctx := geo.NewContext()
	bd := NewBuilder(gctx, Options{}, 0)
	bounds := geo.AABB{Min: geo.Vec3{-64, -64, -64}, Max: geo.Vec3{64, 64, 64}}
	root := bd.Build(context.Background(), nil, bounds)
	if !root.IsLeaf {
		t.Fatal("expected a single leaf for an empty brush list")
	}
	if root.Contents != 0 {
		t.Errorf("expected empty contents, got %v", root.Contents)
	}
}

func TestBuildSingleBrushProducesSolidLeaf(t *testing.T) {
	gctx := geo.NewContext()
	b := cube(t, gctx, 0, brush.Solid, geo.Vec3{0, 0, 0}, 16)
	bounds := geo.AABB{Min: geo.Vec3{-64, -64, -64}, Max: geo.Vec3{64, 64, 64}}
	bd := NewBuilder(gctx, Options{}, len(b.Sides))
	root := bd.Build(context.Background(), []*brush.Brush{b}, bounds)

	var sawSolid bool
	Walk(root, func(n *Node) {
		if n.IsLeaf && n.Contents&brush.Solid != 0 {
			sawSolid = true
		}
	})
	if !sawSolid {
		t.Error("expected a solid leaf somewhere under the cube's brush")
	}
}

func TestPointLeafClassifiesInsideAndOutside(t *testing.T) {
	gctx := geo.NewContext()
	b := cube(t, gctx, 0, brush.Solid, geo.Vec3{0, 0, 0}, 16)
	bounds := geo.AABB{Min: geo.Vec3{-64, -64, -64}, Max: geo.Vec3{64, 64, 64}}
	bd := NewBuilder(gctx, Options{}, len(b.Sides))
	root := bd.Build(context.Background(), []*brush.Brush{b}, bounds)

	inside := PointLeaf(gctx, root, geo.Vec3{0, 0, 0})
	if inside.Contents&brush.Solid == 0 {
		t.Error("expected the cube's center to land in a solid leaf")
	}
	outside := PointLeaf(gctx, root, geo.Vec3{40, 40, 40})
	if outside.Contents&brush.Solid != 0 {
		t.Error("expected a far corner to land outside the solid leaf")
	}
}

func TestShouldMidsplitOnMaxNodeSize(t *testing.T) {
	bounds := geo.AABB{Min: geo.Vec3{-512, -512, -512}, Max: geo.Vec3{512, 512, 512}}
	opt := Options{MaxNodeSize: 256}
	if !shouldMidsplit(opt, 10, bounds) {
		t.Error("expected a 1024-unit box to exceed a 256-unit MaxNodeSize trigger")
	}
	small := geo.AABB{Min: geo.Vec3{-8, -8, -8}, Max: geo.Vec3{8, 8, 8}}
	if shouldMidsplit(opt, 10, small) {
		t.Error("expected a small box not to trigger midsplit")
	}
}

func TestShouldMidsplitOnFraction(t *testing.T) {
	bounds := geo.AABB{Min: geo.Vec3{-8, -8, -8}, Max: geo.Vec3{8, 8, 8}}
	opt := Options{MidsplitFraction: 0.5}
	opt.totalSides = 100
	if !shouldMidsplit(opt, 60, bounds) {
		t.Error("expected 60/100 sides to exceed a 0.5 fraction trigger")
	}
	if shouldMidsplit(opt, 10, bounds) {
		t.Error("expected 10/100 sides not to trigger the fraction path")
	}
}

func TestSelectSplitterPrefersAxialFewerSplits(t *testing.T) {
	gctx := geo.NewContext()
	b := cube(t, gctx, 0, brush.Solid, geo.Vec3{0, 0, 0}, 16)
	bounds := geo.AABB{Min: geo.Vec3{-64, -64, -64}, Max: geo.Vec3{64, 64, 64}}
	planeID := selectSplitter(gctx, []*brush.Brush{b}, bounds)
	if planeID < 0 {
		t.Fatal("expected a valid splitter for a solid cube")
	}
	pl := gctx.Planes.Plane(planeID)
	if !pl.Type.IsAxial() {
		t.Error("expected an axial plane to win against a cube's all-axial faces")
	}
}
