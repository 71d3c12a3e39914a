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

// Package pipeline wires GeomKernel through LightmapCore into the three
// phases spec.md §6's CLI surface describes: compile-geometry (map document
// to a sealed BSP tree, portals, and faces), compile-vis (PVS), and
// compile-light (the lightmap bake). The three phases are illustrated as
// separate binaries there, but share one in-process Session here rather
// than reloading state from a .prt round trip — see DESIGN.md for why.
package pipeline

import (
	"github.com/mapkit/qbsp/internal/brush"
	"github.com/mapkit/qbsp/internal/face"
	"github.com/mapkit/qbsp/internal/geo"
	"github.com/mapkit/qbsp/internal/light"
	"github.com/mapkit/qbsp/internal/mapdata"
	"github.com/mapkit/qbsp/internal/portal"
	"github.com/mapkit/qbsp/internal/tree"
	"github.com/mapkit/qbsp/internal/vis"
)

// Session accumulates every phase's output so later phases (and FormatShim
// assembly) can reach back into earlier ones.
type Session struct {
	GCtx *geo.Context
	Doc  mapdata.Document

	TexInfo *mapdata.TexInfoTable
	MipTex  *mapdata.MipTexTable
	Brushes []*brush.Brush

	Bounds geo.AABB
	Root   *tree.Node

	Portals *portal.Result

	FacePool *face.Pool
	Faces    []*face.Face

	VisGraph  *vis.Graph
	VisResult *vis.Result

	Lights      []light.Light
	LightResult *light.Result
}
