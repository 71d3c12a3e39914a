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

package vis

import (
	"github.com/mapkit/qbsp/core/math/f32"
	"github.com/mapkit/qbsp/internal/geo"
)

// maxSeparators bounds how many edge/vertex pairs clipToSeparators tries
// before giving up on a winding pair, mirroring flow.cc's MAX_SEPARATORS
// array cap on the separating planes a single ClipToSeparators call
// collects.
const maxSeparators = 1024

// clipToSeparators narrows target by every valid separating plane formed
// from an edge of source and a vertex of pass (flow.cc's ClipToSeparators):
// for each edge of source, it hunts for a vertex of pass that defines a
// plane with every other vertex of source strictly behind it and every
// other vertex of pass on or in front of it. Such a plane is the tightest
// bound the source/pass silhouette pair casts through target, and is what
// turns PortalFlow's plain winding-clip chain into the full separating-plane
// refinement: two convex windows can still fail to see each other through a
// non-convex portal chain even when their individual clip windows overlap,
// and only this edge-to-vertex sweep catches that.
//
// flipClip reverses which side of each separator target keeps, matching the
// two orientations RecursiveLeafFlow needs a source/pass winding pair tested
// in: PortalFlow runs this four times per hop, source against pass with
// flipClip false then pass against source with it true, once each to narrow
// the pass-side target and once each to narrow the source-side window.
func clipToSeparators(source, pass, target geo.Winding, flipClip bool) geo.Winding {
	if len(source) == 0 || len(pass) == 0 {
		return target
	}
	n := len(source)
	tried := 0
	for i := 0; i < n && len(target) > 0; i++ {
		l := (i + 1) % n
		edge := source[l].Sub(source[i])

		for j := 0; j < len(pass); j++ {
			if tried >= maxSeparators {
				return target
			}
			tried++

			toVertex := pass[j].Sub(source[i])
			normal := edge.Cross(toVertex)
			lenSq := normal.SqrMagnitude()
			if lenSq < geo.OnEpsilon {
				continue // edge and vertex are collinear; no plane to test
			}
			normal = normal.Scale(1 / f32.Sqrt(lenSq))
			dist := normal.Dot(pass[j])

			// Find which side of the candidate plane source's other
			// vertices fall on; a plane source straddles, or is wholly
			// coplanar with, isn't a separator.
			flip, foundSide := false, false
			for k := 0; k < n; k++ {
				if k == i || k == l {
					continue
				}
				d := normal.Dot(source[k]) - dist
				if d < -geo.OnEpsilon {
					foundSide = true
					break
				}
				if d > geo.OnEpsilon {
					flip, foundSide = true, true
					break
				}
			}
			if !foundSide {
				continue
			}
			if flip {
				normal = normal.Neg()
				dist = -dist
			}

			// Now require every other pass vertex to be on or in front of
			// the (possibly flipped) plane.
			blocked := false
			onFront, onPlane := 0, 0
			for k := 0; k < len(pass); k++ {
				if k == j {
					continue
				}
				d := normal.Dot(pass[k]) - dist
				switch {
				case d < -geo.OnEpsilon:
					blocked = true
				case d > geo.OnEpsilon:
					onFront++
				default:
					onPlane++
				}
				if blocked {
					break
				}
			}
			if blocked {
				continue // pass straddles the candidate; not a separator
			}
			if onFront == 0 && onPlane == 0 {
				continue // pass has no other vertices to separate against
			}

			if flipClip {
				normal = normal.Neg()
				dist = -dist
			}

			target = clipFront(target, geo.Plane{Normal: normal, Dist: dist})
			if len(target) == 0 {
				return nil
			}
		}
	}
	return target
}
