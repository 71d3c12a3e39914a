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

package geo

import "testing"

func TestNewPlaneRejectsDegenerate(t *testing.T) {
	_, ok := NewPlane(Vec3{0, 0, 0}, Vec3{1, 1, 1}, Vec3{2, 2, 2})
	if ok {
		t.Fatal("expected collinear points to be rejected")
	}
}

func TestNewPlaneOrientation(t *testing.T) {
	pl, ok := NewPlane(Vec3{0, 0, 0}, Vec3{1, 0, 0}, Vec3{1, 1, 0})
	if !ok {
		t.Fatal("unexpected degenerate plane")
	}
	if pl.Normal != (Vec3{0, 0, 1}) {
		t.Errorf("expected +Z normal, got %v", pl.Normal)
	}
	if pl.Type != AxialZ {
		t.Errorf("expected AxialZ, got %v", pl.Type)
	}
}

func TestPlaneTableInternsCanonicalNegatedPairs(t *testing.T) {
	t.Parallel()
	tbl := NewPlaneTable()
	pl, ok := NewPlane(Vec3{0, 0, 0}, Vec3{1, 0, 0}, Vec3{1, 1, 0})
	if !ok {
		t.Fatal("unexpected degenerate plane")
	}
	id := tbl.Intern(pl)
	if id%2 != 0 {
		t.Errorf("first interned plane should land on an even id, got %d", id)
	}
	if again := tbl.Intern(pl); again != id {
		t.Errorf("interning the same plane twice should be idempotent: got %d, want %d", again, id)
	}
	negID := tbl.Intern(pl.Negate())
	if negID != Opposite(id) {
		t.Errorf("negated plane should intern at id^1: got %d, want %d", negID, Opposite(id))
	}
	if tbl.Len() != 2 {
		t.Errorf("expected one canonical/negated pair, got %d entries", tbl.Len())
	}
}

func TestWindingClipSplitsAcrossPlane(t *testing.T) {
	square := Winding{
		{-1, -1, 0}, {1, -1, 0}, {1, 1, 0}, {-1, 1, 0},
	}
	pl := Plane{Normal: Vec3{1, 0, 0}, Dist: 0, Type: AxialX}
	front, back := square.Clip(pl)
	if len(front) == 0 || len(back) == 0 {
		t.Fatalf("expected the plane to split the square, got front=%d back=%d", len(front), len(back))
	}
	for _, p := range front {
		if ClassifyPoint(pl, p) == Back {
			t.Errorf("front winding contains a back-side point: %v", p)
		}
	}
	for _, p := range back {
		if ClassifyPoint(pl, p) == Front {
			t.Errorf("back winding contains a front-side point: %v", p)
		}
	}
}

func TestWindingClipEntirelyInFront(t *testing.T) {
	square := Winding{
		{1, -1, 0}, {3, -1, 0}, {3, 1, 0}, {1, 1, 0},
	}
	pl := Plane{Normal: Vec3{1, 0, 0}, Dist: 0, Type: AxialX}
	front, back := square.Clip(pl)
	if back != nil {
		t.Errorf("expected nil back winding, got %v", back)
	}
	if len(front) != len(square) {
		t.Errorf("expected the whole winding untouched, got %d points", len(front))
	}
}

func TestWindingAreaOfUnitSquare(t *testing.T) {
	square := Winding{
		{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0},
	}
	if a := square.Area(); a != 1 {
		t.Errorf("expected area 1, got %v", a)
	}
}

func TestBaseWindingForPlaneLiesOnPlane(t *testing.T) {
	pl := Plane{Normal: Vec3{0, 0, 1}, Dist: 5, Type: AxialZ}
	w := BaseWindingForPlane(pl, 64)
	for _, p := range w {
		if d := pl.Distance(p); f32Abs(d) > 1e-3 {
			t.Errorf("base winding point %v is off-plane by %v", p, d)
		}
	}
}

func f32Abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

func TestAABBDisjoint(t *testing.T) {
	a := AABB{Min: Vec3{0, 0, 0}, Max: Vec3{1, 1, 1}}
	b := AABB{Min: Vec3{2, 2, 2}, Max: Vec3{3, 3, 3}}
	if !a.Disjoint(b) {
		t.Error("expected disjoint boxes")
	}
	c := AABB{Min: Vec3{0.5, 0.5, 0.5}, Max: Vec3{2, 2, 2}}
	if a.Disjoint(c) {
		t.Error("expected overlapping boxes")
	}
}

func TestAABBSideOfPlane(t *testing.T) {
	box := AABB{Min: Vec3{-1, -1, -1}, Max: Vec3{1, 1, 1}}
	pl := Plane{Normal: Vec3{1, 0, 0}, Dist: 5, Type: AxialX}
	if s := box.SideOfPlane(pl); s != Back {
		t.Errorf("expected Back, got %v", s)
	}
	straddle := Plane{Normal: Vec3{1, 0, 0}, Dist: 0, Type: AxialX}
	if s := box.SideOfPlane(straddle); s != On {
		t.Errorf("expected On for a straddling plane, got %v", s)
	}
}
