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
	"math"

	"github.com/mapkit/qbsp/internal/face"
	"github.com/mapkit/qbsp/internal/geo"
)

// PhongNormals maps a shared Pool vertex index to its smoothed normal.
// Vertices absent from the map have no phong data and fall back to their
// owning face's flat plane normal.
//
// This groups every face touching a vertex into a single smoothed normal
// rather than light.hh's per-face-pair seam detection (which would let one
// vertex carry a different smoothed normal on each side of a hard edge);
// flattening that into one normal per vertex is a deliberate simplification
// that loses hard-edge fidelity on vertices shared by faces on both sides
// of a crease, but keeps the grouping a single linear pass.
type PhongNormals map[int]geo.Vec3

// computePhongNormals groups faceNormals (one flat normal per face, same
// order as faces) by shared vertex and averages the ones within
// angleDeg of the first normal seen at that vertex.
func computePhongNormals(faces []*face.Face, faceNormals []geo.Vec3, angleDeg float32) PhongNormals {
	cos := float32(math.Cos(float64(angleDeg) * math.Pi / 180))

	byVertex := map[int][]geo.Vec3{}
	for fi, f := range faces {
		n := faceNormals[fi]
		for _, v := range f.Verts {
			byVertex[v] = append(byVertex[v], n)
		}
	}

	out := make(PhongNormals, len(byVertex))
	for v, normals := range byVertex {
		if len(normals) < 2 {
			continue
		}
		ref := normals[0]
		var sum geo.Vec3
		var count int
		for _, n := range normals {
			if n.Dot(ref) >= cos {
				sum = sum.Add(n)
				count++
			}
		}
		if count < 2 {
			continue
		}
		out[v] = sum.Normalize()
	}
	return out
}

// lookup adapts PhongNormals to the normalAt callback buildFaceGrid wants.
func (p PhongNormals) lookup(vert int) (geo.Vec3, bool) {
	n, ok := p[vert]
	return n, ok
}
