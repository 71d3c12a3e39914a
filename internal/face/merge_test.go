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

package face

import (
	"testing"

	"github.com/mapkit/qbsp/internal/geo"
)

// twoSquares returns two unit squares on the z=0 plane sharing the edge
// x=1, together spanning x in [0,2], y in [0,1].
func twoSquares() (geo.Winding, geo.Winding) {
	a := geo.Winding{
		{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0},
	}
	b := geo.Winding{
		{1, 0, 0}, {2, 0, 0}, {2, 1, 0}, {1, 1, 0},
	}
	return a, b
}

func TestTryMergeAdjacentSquares(t *testing.T) {
	a, b := twoSquares()
	merged, ok := tryMerge(a, b)
	if !ok {
		t.Fatal("expected squares sharing an edge to merge")
	}
	if len(merged) != 4 {
		t.Fatalf("expected a 2x1 rectangle (4 verts after collinear drop), got %d: %v", len(merged), merged)
	}

	wantMin, wantMax := geo.Vec3{0, 0, 0}, geo.Vec3{2, 1, 0}
	gotMin, gotMax := merged[0], merged[0]
	for _, v := range merged {
		gotMin = gotMin.Min(v)
		gotMax = gotMax.Max(v)
	}
	if gotMin != wantMin || gotMax != wantMax {
		t.Errorf("merged bounds = [%v, %v], want [%v, %v]", gotMin, gotMax, wantMin, wantMax)
	}
}

func TestTryMergeDisjointFails(t *testing.T) {
	a := geo.Winding{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}}
	b := geo.Winding{{5, 0, 0}, {6, 0, 0}, {6, 1, 0}, {5, 1, 0}}
	if _, ok := tryMerge(a, b); ok {
		t.Fatal("windings sharing no edge must not merge")
	}
}

func TestMergeCoplanarConvergesToOne(t *testing.T) {
	a, b := twoSquares()
	out := mergeCoplanar([]geo.Winding{a, b})
	if len(out) != 1 {
		t.Fatalf("expected the two squares to collapse to one face, got %d", len(out))
	}
}
