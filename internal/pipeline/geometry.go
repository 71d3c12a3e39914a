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

package pipeline

import (
	"context"

	"github.com/mapkit/qbsp/core/app/status"
	"github.com/mapkit/qbsp/core/fault"
	"github.com/mapkit/qbsp/internal/brush"
	"github.com/mapkit/qbsp/internal/csg"
	"github.com/mapkit/qbsp/internal/face"
	"github.com/mapkit/qbsp/internal/geo"
	"github.com/mapkit/qbsp/internal/mapdata"
	"github.com/mapkit/qbsp/internal/portal"
	"github.com/mapkit/qbsp/internal/tree"
)

// GeometryOptions configures the map-document-to-sealed-tree phase.
type GeometryOptions struct {
	Tree            tree.Options
	Fill            portal.FillOptions
	MaxEdges        int
	DefaultContents brush.Contents
}

// Geometry lowers doc into brushes, runs CSG, partitions the BSP tree,
// extracts and floods portals, and merges the resulting split-plane
// fragments into faces (spec.md §4.2-§4.6). A leak is returned as both a
// non-nil Session (so the caller can still retrieve the leak trail) and a
// *fault.Error of kind Leak; every other error aborts with a nil Session.
func Geometry(ctx context.Context, doc mapdata.Document, opts GeometryOptions) (*Session, error) {
	task := status.Start(ctx, "geometry")
	defer task.Finish(ctx)

	gctx := geo.NewContext()
	tt := mapdata.NewTexInfoTable()
	mt := mapdata.NewMipTexTable()

	entityBrushes, err := mapdata.Lower(gctx, doc, tt, mt, opts.DefaultContents)
	if err != nil {
		return nil, err
	}
	brushes := make([]*brush.Brush, len(entityBrushes))
	for i, eb := range entityBrushes {
		brushes[i] = eb.Brush
	}

	bounds := geo.EmptyAABB()
	for _, b := range brushes {
		bounds = bounds.Union(b.AABB)
	}

	csgOut, _ := csg.Run(ctx, gctx, brushes)

	totalSides := 0
	for _, b := range csgOut {
		totalSides += len(b.Sides)
	}
	builder := tree.NewBuilder(gctx, opts.Tree, totalSides)
	root := builder.Build(ctx, csgOut, bounds)

	sess := &Session{
		GCtx:    gctx,
		Doc:     doc,
		TexInfo: tt,
		MipTex:  mt,
		Brushes: csgOut,
		Bounds:  bounds,
		Root:    root,
	}

	occupants := occupantsFromDoc(doc)
	portalResult, err := portal.Run(ctx, gctx, root, bounds, occupants, opts.Fill)
	sess.Portals = portalResult
	if err != nil && !fault.Is(err, fault.Leak) {
		return nil, err
	}
	leakErr := err

	fb := face.NewBuilder(opts.MaxEdges)
	sess.Faces = fb.Build(ctx, root)
	sess.FacePool = fb.Pool()

	return sess, leakErr
}

// occupantsFromDoc seeds the outside-fill flood with every entity that
// isn't the world itself, keyed by its position in doc.Entities (outside.cc
// floods from every point entity's origin, not just player starts).
func occupantsFromDoc(doc mapdata.Document) []portal.Occupant {
	var out []portal.Occupant
	for i, ent := range doc.Entities {
		if ent.Classname() == "worldspawn" {
			continue
		}
		origin, ok := ent.Origin()
		if !ok {
			continue
		}
		out = append(out, portal.Occupant{Index: i, Origin: geo.Vec3{origin[0], origin[1], origin[2]}})
	}
	return out
}
