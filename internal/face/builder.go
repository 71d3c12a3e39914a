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

import (
	"context"

	"github.com/mapkit/qbsp/core/app/status"
	"github.com/mapkit/qbsp/core/log"
	"github.com/mapkit/qbsp/internal/brush"
	"github.com/mapkit/qbsp/internal/geo"
	"github.com/mapkit/qbsp/internal/tree"
)

// Builder owns the vertex pool every Face it produces shares.
type Builder struct {
	pool     *Pool
	maxEdges int
}

// NewBuilder returns a Builder. maxEdges <= 0 uses DefaultMaxEdges.
func NewBuilder(maxEdges int) *Builder {
	if maxEdges <= 0 {
		maxEdges = DefaultMaxEdges
	}
	return &Builder{pool: NewPool(), maxEdges: maxEdges}
}

// Pool returns the shared vertex table, needed by FormatShim to emit actual
// vertex lumps alongside the faces.
func (b *Builder) Pool() *Pool {
	return b.pool
}

// Build runs the merge and T-junction repair passes over every interior
// node's SplitSides and records each node's resulting face indices in
// Node.Faces. It returns the flat slice those indices refer into.
func (b *Builder) Build(ctx context.Context, root *tree.Node) []*Face {
	task := status.Start(ctx, "faces")
	defer task.Finish(ctx)

	type prelim struct {
		node *tree.Node
		face *Face
	}
	var prelims []prelim
	tree.Walk(root, func(n *tree.Node) {
		if n.IsLeaf || len(n.SplitSides) == 0 {
			return
		}
		for _, f := range b.mergeNode(n) {
			prelims = append(prelims, prelim{n, f})
		}
	})

	var out []*Face
	nodeFaces := map[*tree.Node][]int{}
	var overflows int
	for _, pr := range prelims {
		super := createSuperface(pr.face.Verts, b.pool)
		if len(super) < 3 {
			super = pr.face.Verts
		}
		frags := splitOverflow(super, b.maxEdges)
		if len(frags) > 1 {
			overflows++
		}
		for _, fr := range frags {
			if len(fr) < 3 {
				continue
			}
			nf := &Face{
				NodeID:   pr.node.ID,
				PlaneID:  pr.face.PlaneID,
				TexInfo:  pr.face.TexInfo,
				Contents: pr.face.Contents,
				BrushID:  pr.face.BrushID,
				Verts:    fr,
			}
			idx := len(out)
			out = append(out, nf)
			nodeFaces[pr.node] = append(nodeFaces[pr.node], idx)
		}
	}
	for n, idxs := range nodeFaces {
		n.Faces = idxs
	}

	log.I(ctx).Log("faces: %d faces after merge and t-junction repair (%d fragmented)", len(out), overflows)
	return out
}

// mergeNode groups n.SplitSides by texinfo (all already share n's plane),
// merges each group's windings as far as they'll go, and interns the
// results into the shared pool.
func (b *Builder) mergeNode(n *tree.Node) []*Face {
	var order []int
	groups := map[int][]brush.Side{}
	for _, s := range n.SplitSides {
		if _, ok := groups[s.TexInfo]; !ok {
			order = append(order, s.TexInfo)
		}
		groups[s.TexInfo] = append(groups[s.TexInfo], s)
	}

	var out []*Face
	for _, tex := range order {
		sides := groups[tex]
		windings := make([]geo.Winding, len(sides))
		for i, s := range sides {
			windings[i] = s.Winding
		}
		merged := mergeCoplanar(windings)
		for _, w := range merged {
			f := &Face{
				NodeID:   n.ID,
				PlaneID:  n.PlaneID,
				TexInfo:  tex,
				Contents: sides[0].Contents,
				BrushID:  sides[0].BrushID,
			}
			for _, v := range w {
				f.Verts = append(f.Verts, b.pool.Intern(v))
			}
			out = append(out, f)
		}
	}
	return out
}
