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
	"fmt"
	"math"
	"strconv"

	"github.com/mapkit/qbsp/core/fault"
	"github.com/mapkit/qbsp/internal/geo"
	"github.com/mapkit/qbsp/internal/light"
)

// switchableStyleStart is the first lightmap style index the compiler
// reserves for run-time-toggled ("switchable") lights, per light.hh's
// compilerstyle_start default of 32. Indices 32..254 belong to the
// compiler's auto-allocation; a user-authored style landing in that range
// is a collision.
const switchableStyleStart = 32
const switchableStyleEnd = 254

// WorldLight carries the worldspawn-scoped lighting settings that don't
// belong to any single entity: the "_minlight"/"_minlight_color" floor
// spec.md §8 scenario F exercises.
type WorldLight struct {
	Minlight      float32
	MinlightColor light.Color
}

// ParseLights extracts every "light" classname entity from sess.Doc into
// the Light records LightmapCore bakes against, following light.hh's
// light/wait/_color/_sunlight key conventions, plus worldspawn's minlight
// floor. Entities with a "targetname" (toggled by a trigger at run time)
// and no explicit "style" key are auto-assigned the next free switchable
// index starting at switchableStyleStart; an explicit user style that
// collides with one already claimed in that range is a fault.ParseError.
//
// A "light" entity with a "_cone" key is parsed as a spot light (aim taken
// from its "mangle" key, a yaw/pitch/roll triple in degrees, the same
// convention light.hh uses for sunvec/sun2vec); a "light_surface" entity is
// parsed as a facing-direction-gated area emitter standing in for a
// texture-derived surface light (see DESIGN.md for what's simplified
// there). "delay" selects the point/spot attenuation formula and an
// explicit "_range" overrides the derived cutoff distance.
func ParseLights(sess *Session) ([]light.Light, WorldLight, error) {
	var out []light.Light
	var switchable []int
	used := map[int]bool{}
	next := switchableStyleStart
	var world WorldLight
	for _, ent := range sess.Doc.Entities {
		switch ent.Classname() {
		case "light":
			origin, _ := ent.Origin()
			l := light.Light{
				Kind:      light.KindPoint,
				Origin:    geo.Vec3{origin[0], origin[1], origin[2]},
				Intensity: floatKey(ent.KeyValues, "light", 300),
				Wait:      floatKey(ent.KeyValues, "wait", 0),
				Range:     floatKey(ent.KeyValues, "_range", 0),
				Delay:     light.Delay(intKey(ent.KeyValues, "delay", int(light.DelayInverseSquare))),
				Color:     colorKey(ent.KeyValues),
				Style:     intKey(ent.KeyValues, "style", 0),
			}
			if _, ok := ent.KeyValues["_cone"]; ok {
				l.Kind = light.KindSpot
				l.SpotAngleDeg = floatKey(ent.KeyValues, "_cone", 0)
				l.Dir = mangleKey(ent.KeyValues, geo.Vec3{0, 0, -1})
			}
			if _, explicit := ent.KeyValues["style"]; explicit {
				if l.Style >= switchableStyleStart && l.Style <= switchableStyleEnd {
					if used[l.Style] {
						return nil, world, fault.New(fault.ParseError, nil,
							"light style %d collides with another switchable style in the compiler's %d..%d range",
							l.Style, switchableStyleStart, switchableStyleEnd)
					}
					used[l.Style] = true
				}
			} else if _, toggled := ent.KeyValues["targetname"]; toggled {
				switchable = append(switchable, len(out))
			}
			out = append(out, l)
		case "light_surface":
			origin, _ := ent.Origin()
			out = append(out, light.Light{
				Kind:      light.KindSurface,
				Origin:    geo.Vec3{origin[0], origin[1], origin[2]},
				Dir:       mangleKey(ent.KeyValues, geo.Vec3{0, 0, 1}),
				Intensity: floatKey(ent.KeyValues, "light", 300),
				Wait:      floatKey(ent.KeyValues, "wait", 0),
				Delay:     light.Delay(intKey(ent.KeyValues, "delay", int(light.DelayInverseSquare))),
				Color:     colorKey(ent.KeyValues),
				Style:     intKey(ent.KeyValues, "style", 0),
			})
		case "light_sun", "worldspawn":
			if _, ok := ent.KeyValues["_sun_mangle"]; ok {
				out = append(out, light.Light{
					Kind:      light.KindSun,
					Dir:       geo.Vec3{0, 0, -1},
					Intensity: floatKey(ent.KeyValues, "_sunlight", 0),
					Color:     colorKey(ent.KeyValues),
				})
			}
			if ent.Classname() == "worldspawn" {
				if v := floatKey(ent.KeyValues, "_minlight", 0); v > 0 {
					world.Minlight = v
					world.MinlightColor = minlightColorKey(ent.KeyValues)
				}
			}
		}
	}
	for _, idx := range switchable {
		for used[next] {
			next++
		}
		if next > switchableStyleEnd {
			return nil, world, fault.New(fault.ParseError, nil,
				"ran out of switchable light styles (range %d..%d exhausted)",
				switchableStyleStart, switchableStyleEnd)
		}
		out[idx].Style = next
		used[next] = true
		next++
	}
	return out, world, nil
}

func floatKey(kv map[string]string, key string, def float32) float32 {
	v, ok := kv[key]
	if !ok {
		return def
	}
	f, err := strconv.ParseFloat(v, 32)
	if err != nil {
		return def
	}
	return float32(f)
}

func intKey(kv map[string]string, key string, def int) int {
	v, ok := kv[key]
	if !ok {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func colorKey(kv map[string]string) light.Color {
	v, ok := kv["_color"]
	if !ok {
		return light.Color{255, 255, 255}
	}
	var r, g, b float32
	if n, err := fmt.Sscanf(v, "%f %f %f", &r, &g, &b); err != nil || n != 3 {
		return light.Color{255, 255, 255}
	}
	return light.Color{r, g, b}
}

// minlightColorKey reads worldspawn's "_minlight_color", defaulting to
// white like colorKey does for "_color".
func minlightColorKey(kv map[string]string) light.Color {
	v, ok := kv["_minlight_color"]
	if !ok {
		return light.Color{255, 255, 255}
	}
	var r, g, b float32
	if n, err := fmt.Sscanf(v, "%f %f %f", &r, &g, &b); err != nil || n != 3 {
		return light.Color{255, 255, 255}
	}
	return light.Color{r, g, b}
}

// mangleKey parses a "mangle" yaw/pitch/roll triple (degrees) into a unit
// direction vector, the convention light.hh uses for sunvec/sun2vec and
// that this package reuses for a spot light's aim and a surface light's
// facing normal. Roll is ignored, same as Quake's light tools: it has no
// effect on a pure direction vector. def is returned unparsed when
// "mangle" is absent or malformed.
func mangleKey(kv map[string]string, def geo.Vec3) geo.Vec3 {
	v, ok := kv["mangle"]
	if !ok {
		return def
	}
	var yaw, pitch, roll float32
	if n, err := fmt.Sscanf(v, "%f %f %f", &yaw, &pitch, &roll); err != nil || n < 2 {
		return def
	}
	yr := float64(yaw) * math.Pi / 180
	pr := float64(pitch) * math.Pi / 180
	cp := math.Cos(pr)
	return geo.Vec3{
		float32(math.Cos(yr) * cp),
		float32(math.Sin(yr) * cp),
		float32(math.Sin(pr)),
	}
}

// Light runs LightmapCore over sess.Faces with lights, storing the bake
// result on sess for BuildModel to pack into the lighting lump.
func Light(ctx context.Context, sess *Session, lights []light.Light, opts light.Options) error {
	sess.Lights = lights
	result, err := light.Run(ctx, sess.GCtx, sess.Root, sess.Faces, sess.FacePool, lights, sess.Bounds, opts)
	if err != nil {
		return err
	}
	sess.LightResult = result
	return nil
}
