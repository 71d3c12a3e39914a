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
	"fmt"
	"sort"
	"strings"

	"github.com/mapkit/qbsp/internal/format"
	"github.com/mapkit/qbsp/internal/tree"
	"github.com/mapkit/qbsp/internal/vis"
)

// BuildModel encodes every phase sess has run through into a FormatShim
// Model: planes, vertexes, texinfo, edges/surfedges, faces (with lighting
// offsets if LightResult is set), nodes/leaves (with vis offsets if
// VisResult is set), a single whole-world MODELS entry, and the entity text
// block. Leaf-to-face "marksurfaces" association, clipnodes, and the
// per-dialect miptex/texture data lump are out of scope here (see
// DESIGN.md); a renderer needing them would derive marksurfaces from
// Node.MarkFaces before this step.
func BuildModel(sess *Session, dialect format.Dialect) *format.Model {
	m := format.NewModel(dialect)
	m.SetLump(format.Entities, []byte(serializeEntities(sess)))
	m.SetLump(format.Planes, format.EncodePlanes(planeRecords(sess)))
	m.SetLump(format.Vertexes, format.EncodeVertexes(vertexRecords(sess)))
	m.SetLump(format.TexInfo, format.EncodeTexInfo(texInfoRecords(sess)))

	edges, surfedges, faceRecs, lightData := faceRecords(sess)
	m.SetLump(format.Edges, format.EncodeEdges(dialect, edges))
	m.SetLump(format.Surfedges, format.EncodeSurfedges(surfedges))
	m.SetLump(format.Lighting, lightData)

	nodeRecs, leafRecs, headNode := nodeLeafRecords(sess, faceRecs)
	m.SetLump(format.Nodes, format.EncodeNodes(dialect, nodeRecs))
	m.SetLump(format.Leafs, format.EncodeLeaves(dialect, leafRecs))
	m.SetLump(format.Faces, format.EncodeFaces(dialect, faceRecs))

	visLeafs := 0
	for _, l := range leafRecs {
		if l.Contents != int32(contentsEmpty) {
			visLeafs++
		}
	}
	model := format.ModelRecord{
		Mins:      [3]float32(sess.Bounds.Min),
		Maxs:      [3]float32(sess.Bounds.Max),
		HeadNode:  [4]int32{int32(headNode), 0, 0, 0},
		VisLeafs:  int32(visLeafs),
		FirstFace: 0,
		NumFaces:  int32(len(faceRecs)),
	}
	m.SetLump(format.Models, format.EncodeModels([]format.ModelRecord{model}))

	if sess.VisResult != nil {
		m.SetLump(format.Visibility, visibilityBlob(sess.VisResult))
	}
	return m
}

// contentsEmpty mirrors bspfile.h's CONTENTS_EMPTY (-1), the sentinel a
// leaf with no brush ever touching it carries.
const contentsEmpty = -1

func planeRecords(sess *Session) []format.PlaneRecord {
	n := sess.GCtx.Planes.Len()
	out := make([]format.PlaneRecord, n)
	for i := 0; i < n; i++ {
		pl := sess.GCtx.Planes.Plane(i)
		out[i] = format.PlaneRecord{Normal: [3]float32(pl.Normal), Dist: pl.Dist, Type: int32(pl.Type)}
	}
	return out
}

func vertexRecords(sess *Session) [][3]float32 {
	n := sess.FacePool.Len()
	out := make([][3]float32, n)
	for i := 0; i < n; i++ {
		out[i] = [3]float32(sess.FacePool.Vec(i))
	}
	return out
}

func texInfoRecords(sess *Session) []format.TexInfoRecord {
	all := sess.TexInfo.All()
	out := make([]format.TexInfoRecord, len(all))
	for i, t := range all {
		out[i] = format.TexInfoRecord{
			Vecs:   [2][4]float32{[4]float32(t.Vecs[0]), [4]float32(t.Vecs[1])},
			MipTex: int32(t.MipTex),
			Flags:  int32(t.Flags),
		}
	}
	return out
}

// faceRecords dedups face.Face windings into the edges/surfedges table the
// way csg4.cc's GetEdge does (edge 0 reserved and unused, matching
// bspfile.h), packs each face's primary lightmap style into a flat 8-bit
// RGB blob, and returns the per-face directory records.
func faceRecords(sess *Session) ([]format.EdgeRecord, []int32, []format.FaceRecord, []byte) {
	edges := []format.EdgeRecord{{}}
	edgeOf := map[[2]int]int{}
	var surfedges []int32
	faceRecs := make([]format.FaceRecord, len(sess.Faces))
	var lightData []byte

	for i, f := range sess.Faces {
		first := len(surfedges)
		n := len(f.Verts)
		for vi := 0; vi < n; vi++ {
			a, b := f.Verts[vi], f.Verts[(vi+1)%n]
			if id, ok := edgeOf[[2]int{a, b}]; ok {
				surfedges = append(surfedges, -int32(id))
				continue
			}
			if id, ok := edgeOf[[2]int{b, a}]; ok {
				surfedges = append(surfedges, int32(id))
				continue
			}
			id := len(edges)
			edges = append(edges, format.EdgeRecord{V: [2]uint32{uint32(a), uint32(b)}})
			edgeOf[[2]int{a, b}] = id
			surfedges = append(surfedges, int32(id))
		}

		styles := [4]uint8{255, 255, 255, 255}
		lightOfs := int32(-1)
		if sess.LightResult != nil && i < len(sess.LightResult.Lightmaps) {
			fl := sess.LightResult.Lightmaps[i]
			if len(fl.Styles) > 0 {
				lightOfs = int32(len(lightData))
				for si, buf := range fl.Styles {
					if si >= 4 {
						break
					}
					styles[si] = uint8(buf.Style)
				}
				for _, c := range fl.Styles[0].Color {
					lightData = append(lightData, quantizeChannel(c[0]), quantizeChannel(c[1]), quantizeChannel(c[2]))
				}
			}
		}

		faceRecs[i] = format.FaceRecord{
			PlaneNum:  int32(f.PlaneID &^ 1),
			Side:      int32(f.PlaneID & 1),
			FirstEdge: int32(first),
			NumEdges:  int32(n),
			TexInfo:   int32(f.TexInfo),
			Styles:    styles,
			LightOfs:  lightOfs,
		}
	}
	return edges, surfedges, faceRecs, lightData
}

func quantizeChannel(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v)
}

// nodeLeafRecords walks sess.Root in pre-order, assigning dense node and
// leaf indices and encoding each child slot the classic way: a non-negative
// index into dnodes, or -(leafIndex+1) into dleafs.
func nodeLeafRecords(sess *Session, faceRecs []format.FaceRecord) ([]format.NodeRecord, []format.LeafRecord, int) {
	nodeIdx := map[*tree.Node]int{}
	leafIdx := map[*tree.Node]int{}
	var interior []*tree.Node
	var leaves []*tree.Node

	var assign func(n *tree.Node)
	assign = func(n *tree.Node) {
		if n == nil {
			return
		}
		if n.IsLeaf {
			leafIdx[n] = len(leaves)
			leaves = append(leaves, n)
			return
		}
		nodeIdx[n] = len(interior)
		interior = append(interior, n)
		assign(n.Children[0])
		assign(n.Children[1])
	}
	assign(sess.Root)

	childOf := func(n *tree.Node) int32 {
		if n.IsLeaf {
			return -int32(leafIdx[n]) - 1
		}
		return int32(nodeIdx[n])
	}

	nodeRecs := make([]format.NodeRecord, len(interior))
	for i, n := range interior {
		nodeRecs[i] = format.NodeRecord{
			PlaneNum:  int32(n.PlaneID),
			Children:  [2]int32{childOf(n.Children[0]), childOf(n.Children[1])},
			Mins:      [3]float32(n.AABB.Min),
			Maxs:      [3]float32(n.AABB.Max),
			FirstFace: uint32(firstFaceIndex(n, faceRecs)),
			NumFaces:  uint32(len(n.Faces)),
		}
	}

	// Leaf.Contents carries this package's bitmask Contents, not the
	// negative CONTENTS_* sentinel values bspfile.h's runtime loaders
	// expect; writing the bitmask verbatim is a documented simplification
	// (see DESIGN.md) since nothing downstream in this repo re-reads it.
	leafRecs := make([]format.LeafRecord, len(leaves))
	for i, n := range leaves {
		contents := int32(contentsEmpty)
		if n.Contents != 0 {
			contents = int32(n.Contents)
		}
		leafRecs[i] = format.LeafRecord{
			Contents: contents,
			VisOfs:   -1,
			Mins:     [3]float32(n.AABB.Min),
			Maxs:     [3]float32(n.AABB.Max),
		}
	}
	if sess.VisResult != nil {
		applyVisOffsets(sess, leaves, leafRecs)
	}

	head := 0
	if sess.Root.IsLeaf {
		head = -leafIdx[sess.Root] - 1
	}
	return nodeRecs, leafRecs, head
}

// firstFaceIndex returns the smallest index in n.Faces (indices into the
// flat FaceBuilder output that faceRecs mirrors one-for-one), or 0 if n
// split on no faces.
func firstFaceIndex(n *tree.Node, faceRecs []format.FaceRecord) int {
	if len(n.Faces) == 0 {
		return 0
	}
	idx := n.Faces[0]
	for _, f := range n.Faces {
		if f < idx {
			idx = f
		}
	}
	return idx
}

func applyVisOffsets(sess *Session, leaves []*tree.Node, leafRecs []format.LeafRecord) {
	offset := 0
	for i, n := range leaves {
		if n.VisLeafNum < 0 || n.VisLeafNum >= len(sess.VisResult.Compressed) {
			continue
		}
		leafRecs[i].VisOfs = int32(offset)
		offset += len(sess.VisResult.Compressed[n.VisLeafNum])
	}
}

func visibilityBlob(r *vis.Result) []byte {
	var out []byte
	for _, row := range r.Compressed {
		out = append(out, row...)
	}
	return out
}

// serializeEntities renders sess.Doc back into the classic
// "{ \"key\" \"value\" ... }" entity text block, in key-sorted order for
// deterministic output.
func serializeEntities(sess *Session) string {
	var sb strings.Builder
	for _, ent := range sess.Doc.Entities {
		sb.WriteString("{\n")
		keys := make([]string, 0, len(ent.KeyValues))
		for k := range ent.KeyValues {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&sb, "%q %q\n", k, ent.KeyValues[k])
		}
		sb.WriteString("}\n")
	}
	return sb.String()
}
