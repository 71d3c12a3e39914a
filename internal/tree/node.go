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

// Package tree implements TreeBuilder (spec.md §4.4): the recursive
// hyperplane partitioner that turns the CSG output brushes into the BSP
// tree, plus the heuristic splitter chooser and the "fast midsplit" path
// for oversized nodes.
package tree

import (
	"github.com/mapkit/qbsp/internal/brush"
	"github.com/mapkit/qbsp/internal/geo"
)

// Node is a tagged union of Interior and Leaf, per spec.md §3. The Tree
// uniquely owns its Nodes; Portal and Face attach to a Node only after it
// is built, by PortalExtractor and FaceBuilder respectively — both are
// defined in their own packages and refer back to a Node by pointer, so
// this package exposes the generic slots they populate (Portals, Faces)
// without importing either package.
type Node struct {
	ID   int
	AABB geo.AABB

	// Interior fields. PlaneID is -1 for a Leaf.
	PlaneID  int
	Children [2]*Node

	// Leaf fields.
	IsLeaf       bool
	Contents     brush.Contents
	Occupant     int // entity index that first reached this leaf, or -1
	OccupiedDist int // BFS distance from the nearest occupant, for leak trace
	VisCluster   int
	VisLeafNum   int

	// Faces holds, for an Interior node, the indices (into the FaceBuilder
	// output slice) of the merged polygons that lie on this node's
	// splitting plane.
	Faces []int

	// SplitSides holds, for an Interior node, the raw visible brush-side
	// fragments classify() peeled off the splitting plane before recursing
	// into the children (spec.md §4.6's FaceBuilder input). Unmerged, not
	// T-junction repaired; FaceBuilder consumes this and fills in Faces.
	SplitSides []brush.Side

	// Portals is the head of this leaf's portal linked list, as an opaque
	// pointer PortalExtractor owns the concrete type of (spec.md §3's
	// Portal.next[2] threading). Left untyped here to avoid an import
	// cycle between tree and portal.
	Portals interface{}

	// MarkFaces lists the brush sides (by brush ID, side index) whose
	// volume touches this leaf, used to compute Contents and as FaceBuilder
	// input.
	MarkFaces []MarkFace
}

// MarkFace identifies one brush side that contributed to a leaf's content
// or boundary.
type MarkFace struct {
	BrushID int
	Side    int
}

// NewLeaf returns a Leaf node with merged content flags.
func NewLeaf(id int, aabb geo.AABB, contents brush.Contents) *Node {
	return &Node{ID: id, AABB: aabb, IsLeaf: true, Contents: contents, Occupant: -1, VisLeafNum: -1}
}

// NewInterior returns an Interior node splitting on planeID.
func NewInterior(id int, aabb geo.AABB, planeID int, front, back *Node) *Node {
	return &Node{ID: id, AABB: aabb, PlaneID: planeID, Children: [2]*Node{front, back}}
}

// Walk calls visit for every node in the subtree rooted at n, pre-order.
func Walk(n *Node, visit func(*Node)) {
	if n == nil {
		return
	}
	visit(n)
	if !n.IsLeaf {
		Walk(n.Children[0], visit)
		Walk(n.Children[1], visit)
	}
}

// Leaves returns every leaf in the subtree rooted at n.
func Leaves(n *Node) []*Node {
	var out []*Node
	Walk(n, func(x *Node) {
		if x.IsLeaf {
			out = append(out, x)
		}
	})
	return out
}

// PointLeaf descends the tree to find the leaf containing p (spec.md §8
// property 5).
func PointLeaf(ctx *geo.Context, n *Node, p geo.Vec3) *Node {
	for !n.IsLeaf {
		pl := ctx.Planes.Plane(n.PlaneID)
		if pl.Distance(p) >= 0 {
			n = n.Children[0]
		} else {
			n = n.Children[1]
		}
	}
	return n
}
