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

import (
	"fmt"
	"sync"

	"github.com/mapkit/qbsp/core/math/f32"
)

// PlaneTable interns Planes by value into a stable, densely-numbered table.
// Every even id's odd neighbor (id^1) is its negation; this is the global
// plane table described in spec.md §3 and §5 ("Plane interning table:
// guarded by a single lock taken only during insertion").
type PlaneTable struct {
	mu     sync.Mutex
	planes []Plane
	lookup map[quantizedPlane]int
}

// NewPlaneTable returns an empty PlaneTable.
func NewPlaneTable() *PlaneTable {
	return &PlaneTable{lookup: map[quantizedPlane]int{}}
}

type quantizedPlane struct {
	nx, ny, nz, d int64
}

func quantize(pl Plane) quantizedPlane {
	const scale = 1.0 / EqualEpsilon
	return quantizedPlane{
		nx: int64(pl.Normal[0] * scale),
		ny: int64(pl.Normal[1] * scale),
		nz: int64(pl.Normal[2] * scale),
		d:  int64(pl.Dist * scale),
	}
}

// Intern files pl under its canonical orientation, creating both that plane
// and its negation if this is the first time the plane's surface has been
// seen, and returns the id of pl's own orientation: the even id when pl is
// canonical, the odd one when it is the negation. Interning the same plane
// again returns the same id, and Intern(-p) == Intern(p) ^ 1 (spec.md §8
// property 1).
func (t *PlaneTable) Intern(pl Plane) int {
	canon := Canonicalize(pl)
	flip := 0
	if canon.Normal != pl.Normal {
		flip = 1
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	key := quantize(canon)
	if id, ok := t.lookup[key]; ok {
		return id ^ flip
	}
	id := len(t.planes)
	t.planes = append(t.planes, canon, canon.Negate())
	t.lookup[key] = id
	t.lookup[quantize(canon.Negate())] = id + 1
	return id ^ flip
}

// Plane returns the plane with the given id.
func (t *PlaneTable) Plane(id int) Plane {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.planes[id]
}

// Len returns the number of interned planes, including negated pairs.
func (t *PlaneTable) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.planes)
}

// Opposite returns the id of the negation of id.
func Opposite(id int) int { return id ^ 1 }

// Context centralizes every piece of global mutable state a compile job
// needs: the plane table and (via embedding by the brush package) the
// texinfo table and vertex/edge pools. Lifecycle is tied to one compile job
// (spec.md §9 "Global mutable state ... centralize in a CompileContext
// passed explicitly; no process singletons").
type Context struct {
	Planes *PlaneTable

	// Epsilon overrides OnEpsilon when non-zero, letting a CLI flag
	// (-epsilon E in spec.md §6) scale it to the map's extent.
	Epsilon float32
}

// NewContext returns a fresh Context for one compile job.
func NewContext() *Context {
	return &Context{Planes: NewPlaneTable(), Epsilon: OnEpsilon}
}

func (c *Context) String() string {
	return fmt.Sprintf("Context{planes=%d}", c.Planes.Len())
}

// Vec3 is re-exported for packages that only need the geometry kernel's
// vector type without importing core/math/f32 directly.
type Vec3 = f32.Vec3
