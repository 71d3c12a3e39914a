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

const (
	// OnEpsilon is the signed-distance tolerance within which a winding
	// vertex is classified ON a clipping plane rather than front/back
	// (spec.md §4.1). 1e-4 of world units, matching the source's default.
	OnEpsilon = 1e-4

	// EqualEpsilon is the tolerance used when interning planes by value.
	EqualEpsilon = 1e-5

	// PointEqualEpsilon is the tolerance used to deduplicate vertices in
	// the shared vertex pool and to test brush face/plane coincidence.
	PointEqualEpsilon = 1e-3

	// MaxWindingPoints bounds a winding's vertex count before it must be
	// doubled and reallocated (spec.md §4.1).
	MaxWindingPoints = 64

	// WorldExtent is the half-size of the box BaseWindingForPlane projects
	// onto a plane; large enough to exceed any real map's bounds.
	WorldExtent = 1 << 18
)
