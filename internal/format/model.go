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

// Package format implements FormatShim (spec.md §4.9): a generic in-memory
// lump model, the handful of on-disk dialects spec.md §6 names, binary
// lump I/O on top of core/data/binary, the .prt/.pts ASCII side files
// PortalExtractor's output feeds, a JSON sidecar for data the base dialect
// has no lump for, and a bspinfo-style summary for round-trip verification.
package format

// LumpID names one of the fixed-size directory slots a dialect's header
// describes, in bspfile.h's LUMP_* ordering.
type LumpID int

const (
	Entities LumpID = iota
	Planes
	Textures
	Vertexes
	Visibility
	Nodes
	TexInfo
	Faces
	Lighting
	Clipnodes
	Leafs
	Marksurfaces
	Edges
	Surfedges
	Models
	NumLumps
)

func (id LumpID) String() string {
	switch id {
	case Entities:
		return "ENTITIES"
	case Planes:
		return "PLANES"
	case Textures:
		return "TEXTURES"
	case Vertexes:
		return "VERTEXES"
	case Visibility:
		return "VISIBILITY"
	case Nodes:
		return "NODES"
	case TexInfo:
		return "TEXINFO"
	case Faces:
		return "FACES"
	case Lighting:
		return "LIGHTING"
	case Clipnodes:
		return "CLIPNODES"
	case Leafs:
		return "LEAFS"
	case Marksurfaces:
		return "MARKSURFACES"
	case Edges:
		return "EDGES"
	case Surfedges:
		return "SURFEDGES"
	case Models:
		return "MODELS"
	}
	return "UNKNOWN"
}

// Dialect identifies one of the on-disk BSP variants bspfile.h defines, by
// the 4-byte value that sits where a plain version int usually goes (the
// BSP2 dialects pack a 4-character magic into the same field, so treating
// the field as an opaque int32 handles both uniformly).
type Dialect struct {
	Name    string
	Version int32
}

var (
	// DialectQuake is the original 1996 Quake format (BSPVERSION 29).
	DialectQuake = Dialect{Name: "bsp29", Version: 29}
	// DialectBSP2 extends every index field to 32 bits for maps exceeding
	// bsp29's MAX_MAP_* limits.
	DialectBSP2 = Dialect{Name: "bsp2", Version: int32('B') | int32('S')<<8 | int32('P')<<16 | int32('2')<<24}
	// DialectBSP2RMQ is the 2PSB layout some Remake Quake-era tools expect:
	// 32-bit children and indices like BSP2, but bsp29's int16 node and leaf
	// bounds.
	DialectBSP2RMQ = Dialect{Name: "2psb", Version: int32('B')<<24 | int32('S')<<16 | int32('P')<<8 | int32('2')}
)

func dialectFor(version int32) (Dialect, bool) {
	for _, d := range []Dialect{DialectQuake, DialectBSP2, DialectBSP2RMQ} {
		if d.Version == version {
			return d, true
		}
	}
	return Dialect{}, false
}

// Model is a generic in-memory BSP: a dialect tag plus every lump's raw
// encoded bytes. Higher layers (pipeline) decode/encode individual lumps'
// fixed-size records against the dialect's field widths; Model itself only
// owns the directory and byte payloads, matching FormatShim's
// "format-agnostic in-memory model with dialect-specific codecs" design.
type Model struct {
	Dialect Dialect
	Lumps   [NumLumps][]byte
}

// NewModel returns an empty Model for the given dialect.
func NewModel(d Dialect) *Model {
	return &Model{Dialect: d}
}

// Lump returns the raw bytes of lump id, or nil if it has never been set.
func (m *Model) Lump(id LumpID) []byte {
	return m.Lumps[id]
}

// SetLump replaces lump id's raw bytes.
func (m *Model) SetLump(id LumpID, data []byte) {
	m.Lumps[id] = data
}
