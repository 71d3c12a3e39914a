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

import "github.com/mapkit/qbsp/internal/geo"

// mergeCoplanar repeatedly merges pairs of windings in ws that share exactly
// one edge walked in opposite directions, until no more merges are found
// (spec.md §4.6's coplanar merge pass). ws must all lie on the same plane
// and share the same texinfo; that grouping is the caller's job.
func mergeCoplanar(ws []geo.Winding) []geo.Winding {
	for {
		merged := false
	pair:
		for i := 0; i < len(ws); i++ {
			for j := i + 1; j < len(ws); j++ {
				if w, ok := tryMerge(ws[i], ws[j]); ok {
					ws[i] = w
					ws = append(ws[:j], ws[j+1:]...)
					merged = true
					break pair
				}
			}
		}
		if !merged {
			return ws
		}
	}
}

// tryMerge splices b into a across their shared edge, if they have exactly
// one: an edge a[i]->a[i+1] that equals b[j+1]->b[j] reversed. Both windings
// are convex and wound consistently (same plane orientation), so the result
// of a single splice is itself a simple, consistently-wound polygon;
// dropCollinear then removes any vertex the splice left redundant (the two
// faces met along a rectangle's long edge, say, leaving one straight run).
func tryMerge(a, b geo.Winding) (geo.Winding, bool) {
	na, nb := len(a), len(b)
	for i := 0; i < na; i++ {
		p1, p2 := a[i], a[(i+1)%na]
		for j := 0; j < nb; j++ {
			q1, q2 := b[j], b[(j+1)%nb]
			if !closeVec(p1, q2) || !closeVec(p2, q1) {
				continue
			}
			out := make(geo.Winding, 0, na+nb-2)
			for k := 1; k <= na-1; k++ {
				out = append(out, a[(i+1+k)%na])
			}
			for k := 1; k <= nb-1; k++ {
				out = append(out, b[(j+1+k)%nb])
			}
			if len(out) < 3 {
				continue
			}
			return dropCollinear(out), true
		}
	}
	return nil, false
}

// dropCollinear removes vertices whose incident edges are parallel, the
// degenerate "extra point on a straight edge" case a merge leaves behind.
func dropCollinear(w geo.Winding) geo.Winding {
	if len(w) < 3 {
		return w
	}
	var out geo.Winding
	n := len(w)
	for i := 0; i < n; i++ {
		prev := w[(i-1+n)%n]
		cur := w[i]
		next := w[(i+1)%n]
		e1 := cur.Sub(prev)
		e2 := next.Sub(cur)
		if e1.Cross(e2).Magnitude() < geo.EqualEpsilon {
			continue
		}
		out = append(out, cur)
	}
	if len(out) < 3 {
		return w
	}
	return out
}

func closeVec(a, b geo.Vec3) bool {
	return a.Sub(b).Magnitude() < geo.PointEqualEpsilon
}
