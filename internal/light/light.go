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

package light

import (
	"math"

	"github.com/mapkit/qbsp/internal/geo"
)

// Kind distinguishes the light source shapes light.hh's entity parser
// recognizes: point, spot (cone-limited point), sun (directional plus
// sky-dome hemisphere samples), and surface (a facing-direction-gated
// emitter standing in for a texture-derived area light, spec.md §4.8's
// "surface" source; see DESIGN.md for what's simplified in this kind).
type Kind int

const (
	KindPoint Kind = iota
	KindSpot
	KindSun
	KindSurface
)

// Delay selects the attenuation formula a point/spot light uses, following
// the per-light "delay" key spec.md §4.8 names. DelayInverseSquare is the
// zero value so a light with no delay key set keeps this package's
// original sole formula.
type Delay int

const (
	DelayInverseSquare Delay = iota
	DelayLinear
	DelayInverse
	DelayNone
	DelayLocalMinlight
)

// DefaultSpotAngleDeg is the cone half-angle a spot light uses when its
// "_cone" key is absent, matching common Quake-family mapping convention.
const DefaultSpotAngleDeg = 20

// Color is a linear RGB triple in the 0..255 reference range light tools
// traditionally use (so existing map "_color" values need no rescaling).
type Color geo.Vec3

// Light is one emitter parsed from the map's entity list.
type Light struct {
	Kind  Kind
	Delay Delay

	// Point/spot lights.
	Origin geo.Vec3
	Wait   float32 // inverse-square falloff exponent scale; 0 defaults to 1
	Range  float32 // linear/local-minlight cutoff distance; 0 derives from Intensity and Wait

	// Sun direction, spot aim direction, or surface facing normal.
	Dir geo.Vec3

	SpotAngleDeg float32 // spot cone half-angle; 0 uses DefaultSpotAngleDeg

	Color     Color
	Intensity float32
	Style     int // lightmap style index this emitter writes into
}

func (l Light) waitOrDefault() float32 {
	if l.Wait <= 0 {
		return 1
	}
	return l.Wait
}

// rangeOrDefault derives a cutoff range from Intensity and Wait when Range
// was not set explicitly, per spec.md §4.8 ("range derived from the light
// value and wait if not specified").
func (l Light) rangeOrDefault() float32 {
	if l.Range > 0 {
		return l.Range
	}
	return l.Intensity * l.waitOrDefault()
}

func (l Light) spotAngleOrDefault() float32 {
	if l.SpotAngleDeg > 0 {
		return l.SpotAngleDeg
	}
	return DefaultSpotAngleDeg
}

// attenuate returns the intensity fraction remaining at dist from a
// point/spot light, per whichever of the five delay-keyed formulae
// spec.md §4.8 names l.Delay selects.
func (l Light) attenuate(dist float32) float32 {
	if dist < 1 {
		dist = 1
	}
	switch l.Delay {
	case DelayLinear:
		frac := 1 - dist/l.rangeOrDefault()
		if frac < 0 {
			frac = 0
		}
		return l.Intensity * frac
	case DelayInverse:
		return l.Intensity / dist
	case DelayNone:
		return l.Intensity
	case DelayLocalMinlight:
		if dist <= l.rangeOrDefault() {
			return l.Intensity
		}
		return 0
	default: // DelayInverseSquare
		return l.Intensity / (dist * dist * l.waitOrDefault())
	}
}

// inCone reports whether dirFromLight (unit vector from the light's origin
// toward the sample) falls within a spot light's aim cone.
func (l Light) inCone(dirFromLight geo.Vec3) bool {
	aim := l.Dir.Normalize()
	cosHalf := float32(math.Cos(float64(l.spotAngleOrDefault()) * math.Pi / 180))
	return dirFromLight.Dot(aim) >= cosHalf
}
