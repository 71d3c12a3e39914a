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

package format

import (
	"bytes"

	"github.com/mapkit/qbsp/core/data/binary"
)

// PlaneRecord is one PLANES lump entry (bspfile.h's dplane_t); its layout
// does not vary across dialects.
type PlaneRecord struct {
	Normal [3]float32
	Dist   float32
	Type   int32
}

// EncodePlanes serializes ps in file order.
func EncodePlanes(ps []PlaneRecord) []byte {
	var buf bytes.Buffer
	w := binary.NewWriter(&buf)
	for _, p := range ps {
		w.Float32(p.Normal[0])
		w.Float32(p.Normal[1])
		w.Float32(p.Normal[2])
		w.Float32(p.Dist)
		w.Int32(p.Type)
	}
	return buf.Bytes()
}

// DecodePlanes is EncodePlanes's inverse.
func DecodePlanes(data []byte) []PlaneRecord {
	const recSize = 3*4 + 4 + 4
	r := binary.NewReader(bytes.NewReader(data))
	out := make([]PlaneRecord, len(data)/recSize)
	for i := range out {
		out[i] = PlaneRecord{
			Normal: [3]float32{r.Float32(), r.Float32(), r.Float32()},
			Dist:   r.Float32(),
			Type:   r.Int32(),
		}
	}
	return out
}

// EncodeVertexes serializes a flat list of points (dvertex_t).
func EncodeVertexes(pts [][3]float32) []byte {
	var buf bytes.Buffer
	w := binary.NewWriter(&buf)
	for _, p := range pts {
		w.Float32(p[0])
		w.Float32(p[1])
		w.Float32(p[2])
	}
	return buf.Bytes()
}

// DecodeVertexes is EncodeVertexes's inverse.
func DecodeVertexes(data []byte) [][3]float32 {
	const recSize = 3 * 4
	r := binary.NewReader(bytes.NewReader(data))
	out := make([][3]float32, len(data)/recSize)
	for i := range out {
		out[i] = [3]float32{r.Float32(), r.Float32(), r.Float32()}
	}
	return out
}

// EncodeSurfedges serializes the surfedges lump: a signed edge index per
// entry, negated when the edge is walked tail-to-head for this face.
func EncodeSurfedges(v []int32) []byte {
	var buf bytes.Buffer
	w := binary.NewWriter(&buf)
	for _, e := range v {
		w.Int32(e)
	}
	return buf.Bytes()
}

// DecodeSurfedges is EncodeSurfedges's inverse.
func DecodeSurfedges(data []byte) []int32 {
	r := binary.NewReader(bytes.NewReader(data))
	out := make([]int32, len(data)/4)
	for i := range out {
		out[i] = r.Int32()
	}
	return out
}

// EdgeRecord is one EDGES lump entry: the pair of vertex indices the edge
// spans (bsp29_dedge_t's uint16 pair widened to bsp2_dedge_t's uint32 pair
// per m.Dialect).
type EdgeRecord struct {
	V [2]uint32
}

// EncodeEdges serializes es, using 16-bit vertex indices for DialectQuake
// and 32-bit for every wider dialect.
func EncodeEdges(dialect Dialect, es []EdgeRecord) []byte {
	var buf bytes.Buffer
	w := binary.NewWriter(&buf)
	for _, e := range es {
		if dialect == DialectQuake {
			w.Uint16(uint16(e.V[0]))
			w.Uint16(uint16(e.V[1]))
		} else {
			w.Uint32(e.V[0])
			w.Uint32(e.V[1])
		}
	}
	return buf.Bytes()
}

// DecodeEdges is EncodeEdges's inverse.
func DecodeEdges(dialect Dialect, data []byte) []EdgeRecord {
	recSize := 4
	if dialect != DialectQuake {
		recSize = 8
	}
	r := binary.NewReader(bytes.NewReader(data))
	out := make([]EdgeRecord, len(data)/recSize)
	for i := range out {
		if dialect == DialectQuake {
			out[i] = EdgeRecord{V: [2]uint32{uint32(r.Uint16()), uint32(r.Uint16())}}
		} else {
			out[i] = EdgeRecord{V: [2]uint32{r.Uint32(), r.Uint32()}}
		}
	}
	return out
}

// TexInfoRecord is one TEXINFO lump entry (texinfo_t); its layout does not
// vary across dialects.
type TexInfoRecord struct {
	Vecs   [2][4]float32
	MipTex int32
	Flags  int32
}

// EncodeTexInfo serializes ts in file order.
func EncodeTexInfo(ts []TexInfoRecord) []byte {
	var buf bytes.Buffer
	w := binary.NewWriter(&buf)
	for _, t := range ts {
		for _, v := range t.Vecs {
			for _, f := range v {
				w.Float32(f)
			}
		}
		w.Int32(t.MipTex)
		w.Int32(t.Flags)
	}
	return buf.Bytes()
}

// DecodeTexInfo is EncodeTexInfo's inverse.
func DecodeTexInfo(data []byte) []TexInfoRecord {
	const recSize = 2*4*4 + 4 + 4
	r := binary.NewReader(bytes.NewReader(data))
	out := make([]TexInfoRecord, len(data)/recSize)
	for i := range out {
		var t TexInfoRecord
		for a := range t.Vecs {
			for b := range t.Vecs[a] {
				t.Vecs[a][b] = r.Float32()
			}
		}
		t.MipTex = r.Int32()
		t.Flags = r.Int32()
		out[i] = t
	}
	return out
}

// FaceRecord is one FACES lump entry (bsp29_dface_t / bsp2_dface_t).
type FaceRecord struct {
	PlaneNum  int32
	Side      int32
	FirstEdge int32
	NumEdges  int32
	TexInfo   int32
	Styles    [4]uint8
	LightOfs  int32
}

// EncodeFaces serializes fs, narrowing PlaneNum/Side/NumEdges/TexInfo to
// int16 for DialectQuake.
func EncodeFaces(dialect Dialect, fs []FaceRecord) []byte {
	var buf bytes.Buffer
	w := binary.NewWriter(&buf)
	narrow := dialect == DialectQuake
	for _, f := range fs {
		if narrow {
			w.Int16(int16(f.PlaneNum))
			w.Int16(int16(f.Side))
		} else {
			w.Int32(f.PlaneNum)
			w.Int32(f.Side)
		}
		w.Int32(f.FirstEdge)
		if narrow {
			w.Int16(int16(f.NumEdges))
			w.Int16(int16(f.TexInfo))
		} else {
			w.Int32(f.NumEdges)
			w.Int32(f.TexInfo)
		}
		for _, s := range f.Styles {
			w.Uint8(s)
		}
		w.Int32(f.LightOfs)
	}
	return buf.Bytes()
}

// DecodeFaces is EncodeFaces's inverse.
func DecodeFaces(dialect Dialect, data []byte) []FaceRecord {
	narrow := dialect == DialectQuake
	recSize := 20
	if !narrow {
		recSize = 28
	}
	r := binary.NewReader(bytes.NewReader(data))
	out := make([]FaceRecord, len(data)/recSize)
	for i := range out {
		var f FaceRecord
		if narrow {
			f.PlaneNum = int32(r.Int16())
			f.Side = int32(r.Int16())
		} else {
			f.PlaneNum = r.Int32()
			f.Side = r.Int32()
		}
		f.FirstEdge = r.Int32()
		if narrow {
			f.NumEdges = int32(r.Int16())
			f.TexInfo = int32(r.Int16())
		} else {
			f.NumEdges = r.Int32()
			f.TexInfo = r.Int32()
		}
		for s := range f.Styles {
			f.Styles[s] = r.Uint8()
		}
		f.LightOfs = r.Int32()
		out[i] = f
	}
	return out
}

// NodeRecord is one NODES lump entry (bsp29_dnode_t / bsp2rmq_dnode_t /
// bsp2_dnode_t).
type NodeRecord struct {
	PlaneNum  int32
	Children  [2]int32
	Mins      [3]float32
	Maxs      [3]float32
	FirstFace uint32
	NumFaces  uint32
}

// EncodeNodes serializes ns. DialectQuake narrows Children to int16 and
// Mins/Maxs to int16; DialectBSP2RMQ widens Children to int32 but keeps
// int16 bounds; DialectBSP2 widens everything to float32 bounds.
func EncodeNodes(dialect Dialect, ns []NodeRecord) []byte {
	var buf bytes.Buffer
	w := binary.NewWriter(&buf)
	for _, n := range ns {
		w.Int32(n.PlaneNum)
		if dialect == DialectQuake {
			w.Int16(int16(n.Children[0]))
			w.Int16(int16(n.Children[1]))
		} else {
			w.Int32(n.Children[0])
			w.Int32(n.Children[1])
		}
		if dialect == DialectBSP2 {
			for _, v := range n.Mins {
				w.Float32(v)
			}
			for _, v := range n.Maxs {
				w.Float32(v)
			}
		} else {
			for _, v := range n.Mins {
				w.Int16(int16(v))
			}
			for _, v := range n.Maxs {
				w.Int16(int16(v))
			}
		}
		w.Uint32(n.FirstFace)
		w.Uint32(n.NumFaces)
	}
	return buf.Bytes()
}

func nodeRecSize(dialect Dialect) int {
	size := 4 // planenum
	if dialect == DialectQuake {
		size += 4 // 2x int16 children
	} else {
		size += 8 // 2x int32 children
	}
	if dialect == DialectBSP2 {
		size += 24 // 6x float32 bounds
	} else {
		size += 12 // 6x int16 bounds
	}
	return size + 8 // firstface, numfaces
}

// DecodeNodes is EncodeNodes's inverse.
func DecodeNodes(dialect Dialect, data []byte) []NodeRecord {
	recSize := nodeRecSize(dialect)
	r := binary.NewReader(bytes.NewReader(data))
	out := make([]NodeRecord, len(data)/recSize)
	for i := range out {
		var n NodeRecord
		n.PlaneNum = r.Int32()
		if dialect == DialectQuake {
			n.Children = [2]int32{int32(r.Int16()), int32(r.Int16())}
		} else {
			n.Children = [2]int32{r.Int32(), r.Int32()}
		}
		if dialect == DialectBSP2 {
			n.Mins = [3]float32{r.Float32(), r.Float32(), r.Float32()}
			n.Maxs = [3]float32{r.Float32(), r.Float32(), r.Float32()}
		} else {
			n.Mins = [3]float32{float32(r.Int16()), float32(r.Int16()), float32(r.Int16())}
			n.Maxs = [3]float32{float32(r.Int16()), float32(r.Int16()), float32(r.Int16())}
		}
		n.FirstFace = r.Uint32()
		n.NumFaces = r.Uint32()
		out[i] = n
	}
	return out
}

// LeafRecord is one LEAVES lump entry.
type LeafRecord struct {
	Contents         int32
	VisOfs           int32
	Mins             [3]float32
	Maxs             [3]float32
	FirstMarkSurface uint32
	NumMarkSurfaces  uint32
	Ambient          [4]uint8
}

// EncodeLeaves serializes ls, following the same per-dialect bounds
// narrowing EncodeNodes uses.
func EncodeLeaves(dialect Dialect, ls []LeafRecord) []byte {
	var buf bytes.Buffer
	w := binary.NewWriter(&buf)
	for _, l := range ls {
		w.Int32(l.Contents)
		w.Int32(l.VisOfs)
		if dialect == DialectBSP2 {
			for _, v := range l.Mins {
				w.Float32(v)
			}
			for _, v := range l.Maxs {
				w.Float32(v)
			}
		} else {
			for _, v := range l.Mins {
				w.Int16(int16(v))
			}
			for _, v := range l.Maxs {
				w.Int16(int16(v))
			}
		}
		w.Uint32(l.FirstMarkSurface)
		w.Uint32(l.NumMarkSurfaces)
		for _, a := range l.Ambient {
			w.Uint8(a)
		}
	}
	return buf.Bytes()
}

func leafRecSize(dialect Dialect) int {
	size := 8 // contents, visofs
	if dialect == DialectBSP2 {
		size += 24
	} else {
		size += 12
	}
	return size + 8 + 4 // firstmarksurface, nummarksurfaces, 4x ambient
}

// DecodeLeaves is EncodeLeaves's inverse.
func DecodeLeaves(dialect Dialect, data []byte) []LeafRecord {
	recSize := leafRecSize(dialect)
	r := binary.NewReader(bytes.NewReader(data))
	out := make([]LeafRecord, len(data)/recSize)
	for i := range out {
		var l LeafRecord
		l.Contents = r.Int32()
		l.VisOfs = r.Int32()
		if dialect == DialectBSP2 {
			l.Mins = [3]float32{r.Float32(), r.Float32(), r.Float32()}
			l.Maxs = [3]float32{r.Float32(), r.Float32(), r.Float32()}
		} else {
			l.Mins = [3]float32{float32(r.Int16()), float32(r.Int16()), float32(r.Int16())}
			l.Maxs = [3]float32{float32(r.Int16()), float32(r.Int16()), float32(r.Int16())}
		}
		l.FirstMarkSurface = r.Uint32()
		l.NumMarkSurfaces = r.Uint32()
		for a := range l.Ambient {
			l.Ambient[a] = r.Uint8()
		}
		out[i] = l
	}
	return out
}

// ModelRecord is one MODELS lump entry (dmodel_t); its layout does not vary
// across dialects.
type ModelRecord struct {
	Mins, Maxs [3]float32
	Origin     [3]float32
	HeadNode   [4]int32
	VisLeafs   int32
	FirstFace  int32
	NumFaces   int32
}

// EncodeModels serializes ms in file order.
func EncodeModels(ms []ModelRecord) []byte {
	var buf bytes.Buffer
	w := binary.NewWriter(&buf)
	for _, m := range ms {
		for _, v := range m.Mins {
			w.Float32(v)
		}
		for _, v := range m.Maxs {
			w.Float32(v)
		}
		for _, v := range m.Origin {
			w.Float32(v)
		}
		for _, h := range m.HeadNode {
			w.Int32(h)
		}
		w.Int32(m.VisLeafs)
		w.Int32(m.FirstFace)
		w.Int32(m.NumFaces)
	}
	return buf.Bytes()
}

// DecodeModels is EncodeModels's inverse.
func DecodeModels(data []byte) []ModelRecord {
	const recSize = 3*4*3 + 4*4 + 4*3
	r := binary.NewReader(bytes.NewReader(data))
	out := make([]ModelRecord, len(data)/recSize)
	for i := range out {
		var m ModelRecord
		m.Mins = [3]float32{r.Float32(), r.Float32(), r.Float32()}
		m.Maxs = [3]float32{r.Float32(), r.Float32(), r.Float32()}
		m.Origin = [3]float32{r.Float32(), r.Float32(), r.Float32()}
		for h := range m.HeadNode {
			m.HeadNode[h] = r.Int32()
		}
		m.VisLeafs = r.Int32()
		m.FirstFace = r.Int32()
		m.NumFaces = r.Int32()
		out[i] = m
	}
	return out
}
