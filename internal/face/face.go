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

// Package face implements FaceBuilder (spec.md §4.6): it merges the raw
// brush-side fragments TreeBuilder peeled off each interior node's splitting
// plane into the smallest set of coplanar polygons, repairs the T-junctions
// that merge leaves behind against faces from other nodes sharing the same
// pool vertices, and splits any face that still exceeds the renderer's
// maxedges limit.
package face

import "github.com/mapkit/qbsp/internal/brush"

// Face is one output polygon, wound consistently with its plane's normal.
// Verts indexes the shared Pool the Builder that produced this Face owns.
type Face struct {
	NodeID   int
	PlaneID  int
	TexInfo  int
	Contents brush.Contents
	BrushID  int
	Verts    []int
}
