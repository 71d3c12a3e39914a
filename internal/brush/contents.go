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

// Package brush implements BrushModel (spec.md §4.2): convex brushes as an
// intersection of oriented half-spaces, with the derived face windings,
// texture projection, and content-flag lattice.
package brush

// Contents is a bitmask of the content classes named in spec.md §3.
type Contents uint32

const (
	Solid Contents = 1 << iota
	Window
	Aux
	Lava
	Slime
	Water
	Mist
	PlayerClip
	MonsterClip
	Origin
	AreaPortal
	Detail
	DetailWall
	DetailFence
	DetailIllusionary
	Translucent
	Hint
	Skip
	Sky
	MirrorInside
	MirrorInsideSet
	SuppressClippingSameType
)

// liquid is the set of mutually-exclusive-per-brush liquid classes.
const liquid = Lava | Slime | Water

// IsDetail reports whether c is any of the DETAIL variants.
func (c Contents) IsDetail() bool {
	return c&(Detail|DetailWall|DetailFence|DetailIllusionary) != 0
}

// IsStructural is the negation of IsDetail, except DETAIL_SOLID (plain
// Detail|Solid) still counts as structural for leak purposes even though it
// is detail for PVS clustering (spec.md §4.2).
func (c Contents) IsStructural() bool {
	if c&Solid != 0 && c&Detail != 0 {
		return true
	}
	return !c.IsDetail()
}

// Opaque reports whether c blocks outside-fill flood by default. Liquids
// only block the flood when the corresponding -transwater/-transsky flag is
// NOT set; that gating lives in the portal package, not here.
func (c Contents) Opaque() bool {
	return c&Solid != 0 && c&Detail == 0
}

// Merge OR-combines two brushes' content flags the way a leaf's Contents
// field merges every brush touching it (spec.md §3): SOLID dominates and
// strips DETAIL.
func Merge(a, b Contents) Contents {
	m := a | b
	if m&Solid != 0 {
		m &^= Detail
	}
	return m
}

// ClusterMerge computes a detail-subtree cluster's content flags from its
// descendants: OR of all descendants, except SOLID is cleared unless ALL
// descendants are solid, so a partially open cluster remains seeable-into
// (spec.md §3).
func ClusterMerge(descendants []Contents) Contents {
	var all Contents
	allSolid := len(descendants) > 0
	for _, d := range descendants {
		all |= d
		if d&Solid == 0 {
			allSolid = false
		}
	}
	if all&Solid != 0 && !allSolid {
		all &^= Solid
	}
	return all
}

// SameCSGClass reports whether a and b should be clipped against each other
// during CSG (spec.md §4.2's types_equal): liquids are mutually exclusive in
// a single brush, so two different liquid classes are never the same CSG
// class. Two sets with the same liquid bits (including none at all, as for
// any two liquid-free sets) are the same class; a liquid set and a set with
// different liquid bits are the same class only if their non-liquid bits are
// equal.
func SameCSGClass(a, b Contents) bool {
	al, bl := a&liquid, b&liquid
	if al != 0 && bl != 0 && al != bl {
		return false
	}
	return a&^liquid == b&^liquid || al == bl
}
