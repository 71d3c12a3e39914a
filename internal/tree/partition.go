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

package tree

import (
	"context"

	"github.com/mapkit/qbsp/core/app/status"
	"github.com/mapkit/qbsp/core/log"
	"github.com/mapkit/qbsp/internal/brush"
	"github.com/mapkit/qbsp/internal/geo"
)

// Builder runs the recursive partitioner and hands out stable node ids.
type Builder struct {
	gctx    *geo.Context
	opt     Options
	nextID  int
	MaxDepth int
}

// NewBuilder returns a Builder ready to Partition the CSG output.
func NewBuilder(gctx *geo.Context, opt Options, totalSides int) *Builder {
	opt.totalSides = totalSides
	return &Builder{gctx: gctx, opt: opt}
}

func (bd *Builder) allocID() int {
	id := bd.nextID
	bd.nextID++
	return id
}

// Build runs Partition over the whole CSG output and returns the root node
// (spec.md §4.4).
func (bd *Builder) Build(ctx context.Context, brushes []*brush.Brush, bounds geo.AABB) *Node {
	task := status.Start(ctx, "tree")
	defer task.Finish(ctx)
	root := bd.partition(brushes, bounds, 0)
	log.I(ctx).Log("tree: %d nodes", bd.nextID)
	return root
}

// partition implements spec.md §4.4's recursive Partition(brushes, bounds).
func (bd *Builder) partition(brushes []*brush.Brush, bounds geo.AABB, depth int) *Node {
	if len(brushes) == 0 {
		return NewLeaf(bd.allocID(), bounds, 0)
	}

	sideCount := 0
	for _, b := range brushes {
		sideCount += len(b.Sides)
	}

	var planeID int
	if shouldMidsplit(bd.opt, sideCount, bounds) {
		planeID = chooseMidplane(bd.gctx, brushes, bounds)
	} else {
		planeID = selectSplitter(bd.gctx, brushes, bounds)
	}

	if planeID < 0 {
		return bd.leafFromBrushes(brushes, bounds)
	}

	pl := bd.gctx.Planes.Plane(planeID)
	frontBrushes, backBrushes, onPlane := bd.classify(brushes, planeID, pl)

	frontBounds := boundsOf(frontBrushes, bounds)
	backBounds := boundsOf(backBrushes, bounds)

	id := bd.allocID()
	front := bd.partition(frontBrushes, frontBounds, depth+1)
	back := bd.partition(backBrushes, backBounds, depth+1)
	node := NewInterior(id, bounds, planeID, front, back)
	node.SplitSides = onPlane
	return node
}

// leafFromBrushes builds a Leaf whose Contents is the OR-merge of every
// brush touching it and whose MarkFaces records which brush sides bound it
// (spec.md §3's leaf content invariant).
func (bd *Builder) leafFromBrushes(brushes []*brush.Brush, bounds geo.AABB) *Node {
	var contents brush.Contents
	var marks []MarkFace
	for _, b := range brushes {
		contents = brush.Merge(contents, b.Contents)
		for i := range b.Sides {
			marks = append(marks, MarkFace{BrushID: b.ID, Side: i})
		}
	}
	leaf := NewLeaf(bd.allocID(), bounds, contents)
	leaf.MarkFaces = marks
	return leaf
}

// classify splits every brush's sides by the chosen plane. A side that lies
// exactly on it is marked OnNode, so it is never chosen as a splitter again,
// and stays with the child the brush lies in: the back child for a side on
// planeID, the front child for one on its opposite. A brush whose sides are
// all consumed that way still reaches a leaf. BrushID and Visible are kept
// across the cut so CSG identity survives for leaf-content merging and
// FaceBuilder's markfaces. Only sides whose own
// plane matches planeID's orientation (not its opposite) contribute a
// SplitSide: the reverse face of a razor-thin brush never becomes a node
// face in this scheme, matching qbsp's convention of building faces from
// the splitting brush's own outward side.
func (bd *Builder) classify(brushes []*brush.Brush, planeID int, pl geo.Plane) (front, back []*brush.Brush, onPlane []brush.Side) {
	for _, b := range brushes {
		var fs, bs []brush.Side
		for _, s := range b.Sides {
			if s.PlaneID == planeID || s.PlaneID == geo.Opposite(planeID) {
				if s.PlaneID == planeID && s.Visible {
					onPlane = append(onPlane, s)
				}
				s.OnNode = true
				if s.PlaneID == planeID {
					bs = append(bs, s)
				} else {
					fs = append(fs, s)
				}
				continue
			}
			fw, bw := s.Winding.Clip(pl)
			if len(fw) >= 3 {
				fs = append(fs, withWinding(s, fw))
			}
			if len(bw) >= 3 {
				bs = append(bs, withWinding(s, bw))
			}
		}
		if len(fs) > 0 {
			front = append(front, &brush.Brush{ID: b.ID, Contents: b.Contents, Sides: fs})
		}
		if len(bs) > 0 {
			back = append(back, &brush.Brush{ID: b.ID, Contents: b.Contents, Sides: bs})
		}
	}
	return front, back, onPlane
}

func withWinding(s brush.Side, w geo.Winding) brush.Side {
	s.Winding = w
	return s
}

func boundsOf(brushes []*brush.Brush, fallback geo.AABB) geo.AABB {
	b := geo.EmptyAABB()
	any := false
	for _, br := range brushes {
		for _, s := range br.Sides {
			for _, p := range s.Winding {
				b = b.Add(p)
				any = true
			}
		}
	}
	if !any {
		return fallback
	}
	return b
}
