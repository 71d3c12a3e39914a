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

package mapdata

import (
	"github.com/mapkit/qbsp/core/fault"
	"github.com/mapkit/qbsp/internal/brush"
	"github.com/mapkit/qbsp/internal/geo"
)

// MipTexTable assigns stable indices to miptex names, mirroring FindMiptex's
// dedup-by-name table in csg4.cc.
type MipTexTable struct {
	names []string
	index map[string]int
}

// NewMipTexTable returns an empty MipTexTable.
func NewMipTexTable() *MipTexTable {
	return &MipTexTable{index: map[string]int{}}
}

// Intern returns name's stable index, assigning a new one on first sight.
func (mt *MipTexTable) Intern(name string) int {
	if id, ok := mt.index[name]; ok {
		return id
	}
	id := len(mt.names)
	mt.names = append(mt.names, name)
	mt.index[name] = id
	return id
}

// Names returns every interned miptex name, indexed by its Intern-assigned id.
func (mt *MipTexTable) Names() []string { return mt.names }

// EntityBrush pairs a brush.Brush with the index of the Document entity it
// came from, since BrushModel itself has no notion of entities.
type EntityBrush struct {
	EntityIndex int
	Brush       *brush.Brush
}

// Lower derives planes, canonical texinfo, and brush.Brush values for every
// brush in doc, interning planes into gctx.Planes and texinfo/miptex names
// into tt/mt. Brush ids are assigned sequentially across the whole
// document. defaultContents classifies a RawBrush with no recognized
// content keyword (e.g. plain "SOLID" for anything but the func_detail /
// trigger / water classes a real frontend would key off classname for).
func Lower(gctx *geo.Context, doc Document, tt *TexInfoTable, mt *MipTexTable, defaultContents brush.Contents) ([]EntityBrush, error) {
	var out []EntityBrush
	nextID := 0
	for ei, ent := range doc.Entities {
		for _, rb := range ent.Brushes {
			inputs, contents, err := lowerBrush(gctx, rb, tt, mt, defaultContents)
			if err != nil {
				if fe, ok := err.(*fault.Error); ok {
					return nil, fe.With("entity", ei)
				}
				return nil, err
			}
			b, err := brush.New(gctx, nextID, contents, inputs)
			if err != nil {
				return nil, err
			}
			nextID++
			out = append(out, EntityBrush{EntityIndex: ei, Brush: b})
		}
	}
	return out, nil
}

func lowerBrush(gctx *geo.Context, rb RawBrush, tt *TexInfoTable, mt *MipTexTable, defaultContents brush.Contents) ([]brush.InputSide, brush.Contents, error) {
	contents := defaultContents
	inputs := make([]brush.InputSide, 0, len(rb.Sides))
	for _, rs := range rb.Sides {
		pl, ok := geo.NewPlane(toVec3(rs.Plane[0]), toVec3(rs.Plane[1]), toVec3(rs.Plane[2]))
		if !ok {
			return nil, 0, fault.New(fault.ParseError, nil, "brush side has a degenerate plane")
		}
		planeID := gctx.Planes.Intern(pl)

		vecs := brush.Canonicalize(rs.Projection, pl.Normal)
		ti := brush.TexInfo{
			Vecs:   vecs,
			Flags:  rs.Surface,
			MipTex: mt.Intern(rs.MipTex),
			Value:  0,
		}
		texID := tt.Intern(ti)

		if rs.HasContentsOverride {
			contents = rs.ContentsOverride
		}

		inputs = append(inputs, brush.InputSide{
			PlaneID: planeID,
			TexInfo: texID,
			Surface: rs.Surface,
		})
	}
	return inputs, contents, nil
}

func toVec3(p Point) geo.Vec3 { return geo.Vec3{p[0], p[1], p[2]} }
