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

// Package mapdata defines the parsed textual-map document that feeds
// BrushModel: entities, their key/value dicts, and their brushes' raw
// planes and texture projections (spec.md §6). Tokenizing a .map file into
// this shape is out of scope (spec.md §1); this package is consumed, not
// produced, here. What it does own is Lower, which turns the parsed
// contract into the already-interned-plane, already-canonicalized-texinfo
// form brush.New expects.
package mapdata

import (
	"fmt"

	"github.com/mapkit/qbsp/internal/brush"
)

// RawSide is one face of a parsed brush: the three CCW-from-outside points
// that define its plane, its texture projection in whichever of the three
// encodings the map document used, and an optional content-flag override
// from the extended trailing "{contents flags value}" triple (spec.md §6).
// ContentsOverride applies only when HasContentsOverride is set; otherwise
// the brush keeps the contents Lower was given.
type RawSide struct {
	Plane      [3]Point
	Projection brush.Projection
	Surface    brush.SurfaceFlags
	MipTex     string

	HasContentsOverride bool
	ContentsOverride    brush.Contents
}

// Point is a raw 3-vector from the map document, kept distinct from
// geo.Vec3/f32.Vec3 so this package has no dependency on the geometry
// kernel's internal representation until Lower runs.
type Point [3]float32

// RawBrush is a brush as written in the map document: an unordered list of
// bounding sides, no windings derived yet.
type RawBrush struct {
	Sides []RawSide
}

// Entity is one map document entity: a flat key/value dictionary (spec.md
// §6's "key->value") plus the brushes it owns. Point entities (lights,
// spawn points, ...) have no brushes.
type Entity struct {
	KeyValues map[string]string
	Brushes   []RawBrush
}

// Document is a full parsed map: an ordered sequence of entities, the first
// of which is conventionally "worldspawn".
type Document struct {
	Entities []Entity
}

// Classname returns the entity's "classname" key, or "" if unset.
func (e Entity) Classname() string { return e.KeyValues["classname"] }

// Origin parses the entity's "origin" key as "x y z", returning the zero
// point if the key is absent or malformed.
func (e Entity) Origin() (Point, bool) {
	v, ok := e.KeyValues["origin"]
	if !ok {
		return Point{}, false
	}
	var p Point
	n, err := fmt.Sscanf(v, "%f %f %f", &p[0], &p[1], &p[2])
	if err != nil || n != 3 {
		return Point{}, false
	}
	return p, true
}
