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

package light

import (
	"math/rand"
	"testing"

	"github.com/mapkit/qbsp/internal/brush"
	"github.com/mapkit/qbsp/internal/face"
	"github.com/mapkit/qbsp/internal/geo"
	"github.com/mapkit/qbsp/internal/tree"
)

// openWorld is a single large empty leaf: every trace within its bounds is
// unoccluded.
func openWorld() (*geo.Context, *tree.Node) {
	gctx := geo.NewContext()
	leaf := tree.NewLeaf(0, geo.AABB{Min: geo.Vec3{-64, -64, -64}, Max: geo.Vec3{64, 64, 64}}, 0)
	return gctx, leaf
}

// wallWorld splits x=0: x>0 is open, x<0 is solid, so a trace crossing x=0
// is occluded and one that stays on the positive side is not.
func wallWorld(t *testing.T) (*geo.Context, *tree.Node) {
	t.Helper()
	gctx := geo.NewContext()
	pl, ok := geo.NewPlane(geo.Vec3{0, 0, 0}, geo.Vec3{0, 1, 0}, geo.Vec3{0, 0, 1})
	if !ok {
		t.Fatal("degenerate plane")
	}
	planeID := gctx.Planes.Intern(pl)
	front := tree.NewLeaf(0, geo.AABB{Min: geo.Vec3{0, -16, -16}, Max: geo.Vec3{16, 16, 16}}, 0)
	back := tree.NewLeaf(1, geo.AABB{Min: geo.Vec3{-16, -16, -16}, Max: geo.Vec3{0, 16, 16}}, brush.Solid)
	root := tree.NewInterior(2, geo.AABB{Min: geo.Vec3{-16, -16, -16}, Max: geo.Vec3{16, 16, 16}}, planeID, front, back)
	return gctx, root
}

func squareFace() (*face.Face, *face.Pool) {
	pool := face.NewPool()
	verts := []geo.Vec3{{0, 0, 0}, {4, 0, 0}, {4, 4, 0}, {0, 4, 0}}
	idx := make([]int, len(verts))
	for i, v := range verts {
		idx[i] = pool.Intern(v)
	}
	return &face.Face{PlaneID: 0, TexInfo: 0, Verts: idx}, pool
}

func TestOccludedThroughSolidLeaf(t *testing.T) {
	gctx, root := wallWorld(t)
	if !occluded(gctx, root, geo.Vec3{-8, 0, 0}, geo.Vec3{8, 0, 0}) {
		t.Error("segment crossing the solid half should be occluded")
	}
}

func TestOccludedStayingOnOpenSide(t *testing.T) {
	gctx, root := wallWorld(t)
	if occluded(gctx, root, geo.Vec3{1, 0, 0}, geo.Vec3{8, 0, 0}) {
		t.Error("segment confined to the open half should not be occluded")
	}
}

func TestBuildFaceGridProducesValidSamples(t *testing.T) {
	f, pool := squareFace()
	grid := buildFaceGrid(0, f, pool, geo.Vec3{0, 0, 1}, 1, nil)
	if grid == nil {
		t.Fatal("expected a non-nil grid for a valid quad")
	}
	if grid.Width < 4 || grid.Height < 4 {
		t.Fatalf("grid too small for a 4x4 quad at luxel size 1: %dx%d", grid.Width, grid.Height)
	}
	var validCount int
	for _, v := range grid.Valid {
		if v {
			validCount++
		}
	}
	if validCount == 0 {
		t.Error("expected at least one valid sample inside the quad")
	}
}

func TestAccumulateDirectLitByPointLight(t *testing.T) {
	gctx, root := openWorld()
	f, pool := squareFace()
	grid := buildFaceGrid(0, f, pool, geo.Vec3{0, 0, 1}, 1, nil)
	lights := []Light{{
		Kind:      KindPoint,
		Origin:    geo.Vec3{2, 2, 10},
		Color:     Color{255, 255, 255},
		Intensity: 1000,
		Style:     0,
	}}
	fl := accumulateDirect(gctx, root, grid, lights, Options{})
	if len(fl.Styles) != 1 || fl.Styles[0].Style != 0 {
		t.Fatalf("expected one style-0 buffer, got %+v", fl.Styles)
	}
	var anyLit bool
	for i, valid := range grid.Valid {
		if valid && (fl.Styles[0].Color[i] != geo.Vec3{}) {
			anyLit = true
		}
	}
	if !anyLit {
		t.Error("expected at least one luxel to receive direct light")
	}
}

func TestAccumulateDirectBlockedBySolidWall(t *testing.T) {
	gctx, root := wallWorld(t)
	pool := face.NewPool()
	verts := []geo.Vec3{{1, 0, 0}, {1, 4, 0}, {1, 4, 4}, {1, 0, 4}}
	idx := make([]int, len(verts))
	for i, v := range verts {
		idx[i] = pool.Intern(v)
	}
	f := &face.Face{PlaneID: 0}
	f.Verts = idx
	grid := buildFaceGrid(0, f, pool, geo.Vec3{-1, 0, 0}, 1, nil)

	light := []Light{{Kind: KindPoint, Origin: geo.Vec3{-8, 2, 2}, Color: Color{255, 255, 255}, Intensity: 1000}}
	fl := accumulateDirect(gctx, root, grid, light, Options{})
	for i, valid := range grid.Valid {
		if valid && (fl.Styles[0].Color[i] != geo.Vec3{}) {
			t.Errorf("luxel %d should be shadowed by the solid wall between it and the light", i)
		}
	}
}

func TestComputePhongNormalsAveragesSharedVertex(t *testing.T) {
	a := &face.Face{Verts: []int{0, 1, 2}}
	b := &face.Face{Verts: []int{1, 3, 2}}
	faces := []*face.Face{a, b}
	normals := []geo.Vec3{{0, 0, 1}, {0, 0, 1}}
	pn := computePhongNormals(faces, normals, 89)
	if _, ok := pn[1]; !ok {
		t.Fatal("expected vertex 1, shared by both faces, to get a smoothed normal")
	}
	if _, ok := pn[0]; ok {
		t.Error("vertex 0 belongs to only one face and should have no phong entry")
	}
}

// skyWorld is a single leaf flagged Solid|Sky: occluded() treats it as
// blocking, skyVisible() treats it as open sky.
func skyWorld() (*geo.Context, *tree.Node) {
	gctx := geo.NewContext()
	leaf := tree.NewLeaf(0, geo.AABB{Min: geo.Vec3{-64, -64, -64}, Max: geo.Vec3{64, 64, 64}}, brush.Solid|brush.Sky)
	return gctx, leaf
}

func TestAttenuateModes(t *testing.T) {
	tests := []struct {
		name  string
		l     Light
		dist  float32
		want  float32
	}{
		{"inverse-square default", Light{Intensity: 1000}, 10, 1000.0 / 100},
		{"inverse-square with wait", Light{Intensity: 1000, Wait: 2}, 10, 1000.0 / 200},
		{"linear within range", Light{Delay: DelayLinear, Intensity: 1000, Range: 100}, 50, 500},
		{"linear past range", Light{Delay: DelayLinear, Intensity: 1000, Range: 100}, 150, 0},
		{"inverse", Light{Delay: DelayInverse, Intensity: 1000}, 10, 100},
		{"no attenuation", Light{Delay: DelayNone, Intensity: 1000}, 500, 1000},
		{"local minlight within range", Light{Delay: DelayLocalMinlight, Intensity: 32, Range: 64}, 32, 32},
		{"local minlight past range", Light{Delay: DelayLocalMinlight, Intensity: 32, Range: 64}, 128, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.l.attenuate(tc.dist); got != tc.want {
				t.Errorf("attenuate(%v) = %v, want %v", tc.dist, got, tc.want)
			}
		})
	}
}

func TestInConeWithinAndOutsideAngle(t *testing.T) {
	l := Light{Kind: KindSpot, Dir: geo.Vec3{0, 0, -1}, SpotAngleDeg: 20}
	if !l.inCone(geo.Vec3{0, 0, -1}) {
		t.Error("direction matching the aim exactly should be in cone")
	}
	if l.inCone(geo.Vec3{1, 0, 0}) {
		t.Error("a direction perpendicular to the aim should be outside a 20-degree cone")
	}
}

func TestApplyMinlightFloorsUnlitFace(t *testing.T) {
	f, pool := squareFace()
	grid := buildFaceGrid(0, f, pool, geo.Vec3{0, 0, 1}, 1, nil)
	fl := &FaceLightmap{FaceIndex: 0, Width: grid.Width, Height: grid.Height}
	opts := Options{Minlight: 32, MinlightColor: Color{255, 0, 0}}
	applyMinlight(fl, grid, opts)
	if len(fl.Styles) != 1 || fl.Styles[0].Style != 0 {
		t.Fatalf("expected a style-0 floor buffer, got %+v", fl.Styles)
	}
	for i, valid := range grid.Valid {
		if !valid {
			continue
		}
		want := geo.Vec3{32, 0, 0}
		if fl.Styles[0].Color[i] != want {
			t.Errorf("luxel %d = %v, want %v", i, fl.Styles[0].Color[i], want)
		}
	}
}

func TestApplyMinlightDoesNotDimAnAlreadyLitFace(t *testing.T) {
	f, pool := squareFace()
	grid := buildFaceGrid(0, f, pool, geo.Vec3{0, 0, 1}, 1, nil)
	fl := &FaceLightmap{FaceIndex: 0, Width: grid.Width, Height: grid.Height}
	buf := fl.styleBuffer(0, len(grid.Points))
	for i := range buf.Color {
		buf.Color[i] = geo.Vec3{64, 64, 64}
	}
	applyMinlight(fl, grid, Options{Minlight: 32, MinlightColor: Color{255, 0, 0}})
	for i, valid := range grid.Valid {
		if !valid {
			continue
		}
		want := geo.Vec3{64, 64, 64}
		if fl.Styles[0].Color[i] != want {
			t.Errorf("luxel %d = %v, want unchanged %v", i, fl.Styles[0].Color[i], want)
		}
	}
}

func TestAccumulateDirectSpotLightRequiresCone(t *testing.T) {
	gctx, root := openWorld()
	f, pool := squareFace()
	grid := buildFaceGrid(0, f, pool, geo.Vec3{0, 0, 1}, 1, nil)
	lights := []Light{{
		Kind:         KindSpot,
		Origin:       geo.Vec3{2, 2, 10},
		Dir:          geo.Vec3{1, 0, 0}, // aimed away from the face
		SpotAngleDeg: 10,
		Color:        Color{255, 255, 255},
		Intensity:    1000,
	}}
	fl := accumulateDirect(gctx, root, grid, lights, Options{})
	for i, valid := range grid.Valid {
		if valid && fl.Styles[0].Color[i] != (geo.Vec3{}) {
			t.Errorf("luxel %d should be dark: spot light is aimed away from the face", i)
		}
	}
}

func TestSunDomeBlockedBySolidCountsAsDark(t *testing.T) {
	gctx, root := wallWorld(t)
	rng := rand.New(rand.NewSource(1))
	frac := sunDome(gctx, root, geo.Vec3{-8, 0, 0}, geo.Vec3{-1, 0, 0}, geo.Vec3{1, 0, 0}, 8, rng)
	if frac != 0 {
		t.Errorf("sunDome = %v, want 0 when every ray is blocked by solid", frac)
	}
}

func TestSunDomePassesThroughSkyLeaf(t *testing.T) {
	gctx, root := skyWorld()
	rng := rand.New(rand.NewSource(1))
	frac := sunDome(gctx, root, geo.Vec3{0, 0, 0}, geo.Vec3{0, 0, 1}, geo.Vec3{0, 0, 1}, 1, rng)
	if frac <= 0 {
		t.Errorf("sunDome = %v, want > 0 when the only leaf is sky-flagged", frac)
	}
}

func TestBuildGridMarksSolidRegionOccluded(t *testing.T) {
	gctx, root := wallWorld(t)
	bounds := geo.AABB{Min: geo.Vec3{-16, -16, -16}, Max: geo.Vec3{16, 16, 16}}
	g := BuildGrid(gctx, root, nil, bounds, Options{GridSpacing: 8})
	var sawOccluded, sawOpen bool
	for _, s := range g.Samples {
		if s.Origin[0] < -1 {
			sawOccluded = sawOccluded || s.Occluded
		}
		if s.Origin[0] > 1 {
			sawOpen = sawOpen || !s.Occluded
		}
	}
	if !sawOccluded {
		t.Error("expected at least one occluded sample on the solid side")
	}
	if !sawOpen {
		t.Error("expected at least one open sample on the open side")
	}
	if g.Root == nil {
		t.Fatal("expected a non-nil octree root")
	}
}
