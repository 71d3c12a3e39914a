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

package brush

import (
	"math"

	"github.com/mapkit/qbsp/core/math/f32"
)

// SurfaceFlags is a bitmask of per-face semantic bits (spec.md GLOSSARY).
type SurfaceFlags uint32

const (
	SurfLight SurfaceFlags = 1 << iota
	SurfSky
	SurfWarp
	SurfNoDraw
	SurfHint
	SurfSkip
	SurfTrans33
	SurfTrans66
)

// TexInfo is the canonical, post-parse texture-projection record (spec.md
// §3): vecs[0] and vecs[1] are (tangent, bitangent) with their projection
// offset folded into the 4th component, so UV = dot(vecs[i].xyz, P) +
// vecs[i].w.
type TexInfo struct {
	Vecs    [2]f32.Vec4
	Flags   SurfaceFlags
	MipTex  int
	Value   int
}

// UV projects a world point p into this TexInfo's texture space.
func (t TexInfo) UV(p f32.Vec3) (u, v float32) {
	u = t.Vecs[0].XYZ().Dot(p) + t.Vecs[0][3]
	v = t.Vecs[1].XYZ().Dot(p) + t.Vecs[1][3]
	return
}

// Projection is a tagged variant of the three texture-projection encodings
// spec.md §6 and §9 name. Exactly one of the three payload fields is valid,
// selected by Kind.
type Projection struct {
	Kind ProjectionKind

	// QuakeED
	Shift       [2]float32
	Rotate      float32
	Scale       [2]float32
	TX2         bool // "etp" variant: quake-ed + tx2 bool (spec.md §9)

	// Valve220: explicit 4-vecs-per-axis.
	Axis  [2]f32.Vec3
	ValveShift [2]float32
	ValveScale [2]float32

	// BrushPrimitives: 2x3 matrix mapping world-relative-to-face-plane
	// coordinates directly to texture space.
	Matrix [2][3]float32

	TextureWidth, TextureHeight int
}

type ProjectionKind int

const (
	QuakeED ProjectionKind = iota
	Valve220
	BrushPrimitives
)

// Canonicalize converts a parsed Projection plus the face's plane normal
// into the post-parse Vecs form used everywhere after parse (spec.md §9
// "Deep polymorphism over texture projection").
func Canonicalize(p Projection, normal f32.Vec3) [2]f32.Vec4 {
	switch p.Kind {
	case Valve220:
		return [2]f32.Vec4{
			p.Axis[0].Scale(1 / nonZero(p.ValveScale[0])).W(p.ValveShift[0]),
			p.Axis[1].Scale(1 / nonZero(p.ValveScale[1])).W(p.ValveShift[1]),
		}
	case BrushPrimitives:
		return [2]f32.Vec4{
			f32.Vec3{p.Matrix[0][0], p.Matrix[0][1], p.Matrix[0][2]}.W(0),
			f32.Vec3{p.Matrix[1][0], p.Matrix[1][1], p.Matrix[1][2]}.W(0),
		}
	default: // QuakeED
		return quakeEDVecs(p, normal)
	}
}

// quakeEDVecs derives the tangent/bitangent from the dominant axis of
// normal the way the original id-Software tools do: pick one of three
// baseaxis triples by which axis normal is most aligned with, then rotate
// and scale into texture space.
func quakeEDVecs(p Projection, normal f32.Vec3) [2]f32.Vec4 {
	var baseU, baseV f32.Vec3
	ax, ay, az := f32.Abs(normal[0]), f32.Abs(normal[1]), f32.Abs(normal[2])
	switch {
	case az >= ax && az >= ay:
		baseU, baseV = f32.Vec3{1, 0, 0}, f32.Vec3{0, -1, 0}
	case ax >= ay && ax >= az:
		baseU, baseV = f32.Vec3{0, 1, 0}, f32.Vec3{0, 0, -1}
	default:
		baseU, baseV = f32.Vec3{1, 0, 0}, f32.Vec3{0, 0, -1}
	}

	rad := float64(p.Rotate) * math.Pi / 180
	s, c := float32(math.Sin(rad)), float32(math.Cos(rad))
	ru := f32.Vec3{baseU[0]*c - baseV[0]*s, baseU[1]*c - baseV[1]*s, baseU[2]*c - baseV[2]*s}
	rv := f32.Vec3{baseU[0]*s + baseV[0]*c, baseU[1]*s + baseV[1]*c, baseU[2]*s + baseV[2]*c}

	su, sv := nonZero(p.Scale[0]), nonZero(p.Scale[1])
	return [2]f32.Vec4{
		ru.Scale(1 / su).W(p.Shift[0]),
		rv.Scale(1 / sv).W(p.Shift[1]),
	}
}

func nonZero(v float32) float32 {
	if v == 0 {
		return 1
	}
	return v
}
