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

// Pool is the append-only vertex table shared by every face FaceBuilder
// produces (spec.md §4.6). A point already within PointEqualEpsilon of an
// interned entry reuses its index rather than creating a duplicate, which is
// what lets the T-junction repair pass treat "the same point on two
// different faces" as literally the same vertex.
type Pool struct {
	verts []geo.Vec3
}

// NewPool returns an empty vertex pool.
func NewPool() *Pool {
	return &Pool{}
}

// Intern returns the index of v in the pool, adding it if no existing entry
// is within PointEqualEpsilon.
func (p *Pool) Intern(v geo.Vec3) int {
	for i, e := range p.verts {
		if e.Sub(v).Magnitude() < geo.PointEqualEpsilon {
			return i
		}
	}
	p.verts = append(p.verts, v)
	return len(p.verts) - 1
}

// Vec returns the position of the i'th pool entry.
func (p *Pool) Vec(i int) geo.Vec3 {
	return p.verts[i]
}

// Len returns how many distinct vertices the pool holds.
func (p *Pool) Len() int {
	return len(p.verts)
}

// All returns every pooled vertex, indexed by pool index.
func (p *Pool) All() []geo.Vec3 {
	return p.verts
}
