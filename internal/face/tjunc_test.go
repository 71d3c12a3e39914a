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

// TestCreateSuperfaceInsertsTJunction builds one big quad and a lone
// mid-edge vertex from an unrelated, finer-subdivided neighbour, and checks
// the superface picks that vertex up instead of leaving a crack.
func TestCreateSuperfaceInsertsTJunction(t *testing.T) {
	pool := NewPool()
	a := pool.Intern(geo.Vec3{0, 0, 0})
	b := pool.Intern(geo.Vec3{2, 0, 0})
	c := pool.Intern(geo.Vec3{2, 1, 0})
	d := pool.Intern(geo.Vec3{0, 1, 0})
	mid := pool.Intern(geo.Vec3{1, 0, 0}) // lies exactly on edge a->b

	super := createSuperface([]int{a, b, c, d}, pool)
	if len(super) != 5 {
		t.Fatalf("expected the midpoint to be inserted (5 verts), got %d: %v", len(super), super)
	}
	found := false
	n := len(super)
	for i, v := range super {
		if v == mid {
			found = true
			if super[(i-1+n)%n] != a || super[(i+1)%n] != b {
				t.Errorf("midpoint should sit between a and b in the ring, got neighbours %v", super)
			}
		}
	}
	if !found {
		t.Error("midpoint vertex missing from superface")
	}
}

func TestSplitOverflowPreservesSharedEdge(t *testing.T) {
	verts := make([]int, 70)
	for i := range verts {
		verts[i] = i
	}
	frags := splitOverflow(verts, 64)
	if len(frags) != 2 {
		t.Fatalf("expected 2 fragments, got %d", len(frags))
	}
	if frags[0][len(frags[0])-1] != frags[1][0] {
		t.Error("fragments must share their boundary vertex")
	}
	for _, f := range frags {
		if len(f) > 64 {
			t.Errorf("fragment exceeds maxEdges: %d", len(f))
		}
	}
}
