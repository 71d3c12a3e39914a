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

// DefaultMaxEdges is the fallback vertex count a single output face is cut
// down to once it grows past the point a renderer's fixed-size face struct
// can hold (spec.md §4.6's supplemented maxedges feature; qbsp's default).
const DefaultMaxEdges = 64

// createSuperface walks the ring of verts (pool indices) and, for every
// edge, inserts every other pooled vertex that lies exactly on that edge
// between its endpoints (tjunc.cc's CreateSuperFace/TestEdge): another face
// merged onto this plane may have a vertex partway along one of this face's
// edges, and leaving it unlisted here is exactly what produces a T-junction
// crack at render time.
func createSuperface(verts []int, pool *Pool) []int {
	n := len(verts)
	if n < 3 {
		return verts
	}
	all := make([]int, pool.Len())
	for i := range all {
		all[i] = i
	}

	var out []int
	for i := 0; i < n; i++ {
		v1, v2 := verts[i], verts[(i+1)%n]
		start := pool.Vec(v1)
		end := pool.Vec(v2)
		delta := end.Sub(start)
		length := delta.Magnitude()
		if length == 0 {
			continue
		}
		dir := delta.Scale(1 / length)
		testEdge(pool, v1, v2, 0, length, start, dir, all, &out)
	}
	return out
}

// testEdge is tjunc.cc's TestEdge: it recursively narrows the open interval
// (lo, hi) along the edge p1->p2 until no pooled vertex lies strictly
// between its endpoints, then appends p1 — the edge's contribution once it
// is known to be junction-free.
func testEdge(pool *Pool, p1, p2 int, lo, hi float32, edgeStart, edgeDir geo.Vec3, candidates []int, out *[]int) {
	if p1 == p2 {
		return
	}
	for k, j := range candidates {
		if j == p1 || j == p2 {
			continue
		}
		dist, ok := pointOnEdge(pool.Vec(j), edgeStart, edgeDir, lo, hi)
		if !ok {
			continue
		}
		testEdge(pool, p1, j, lo, dist, edgeStart, edgeDir, candidates[k+1:], out)
		testEdge(pool, j, p2, dist, hi, edgeStart, edgeDir, candidates[k+1:], out)
		return
	}
	*out = append(*out, p1)
}

// pointOnEdge reports how far along edgeStart+t*edgeDir the point p sits,
// if it lies within OnEpsilon of the line and strictly inside (lo, hi).
func pointOnEdge(p, edgeStart, edgeDir geo.Vec3, lo, hi float32) (float32, bool) {
	delta := p.Sub(edgeStart)
	dist := delta.Dot(edgeDir)
	if dist <= lo || dist >= hi {
		return 0, false
	}
	exact := edgeStart.Add(edgeDir.Scale(dist))
	if exact.Sub(p).Magnitude() > geo.OnEpsilon {
		return 0, false
	}
	return dist, true
}

// splitOverflow cuts verts into fragments of at most maxEdges vertices,
// reusing the boundary vertex between consecutive fragments so they still
// share an edge (tjunc.cc's SplitFaceIntoFragments).
func splitOverflow(verts []int, maxEdges int) [][]int {
	if len(verts) <= maxEdges || maxEdges < 3 {
		return [][]int{verts}
	}
	out := [][]int{append([]int(nil), verts[:maxEdges]...)}
	rest := append(append([]int(nil), verts[maxEdges-1:]...), verts[0])
	for len(rest) > maxEdges {
		frag := append(append([]int(nil), rest[:maxEdges-1]...), verts[0])
		out = append(out, frag)
		rest = append([]int(nil), rest[maxEdges-2:]...)
	}
	out = append(out, rest)
	return out
}
