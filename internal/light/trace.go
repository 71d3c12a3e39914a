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
	"github.com/mapkit/qbsp/internal/brush"
	"github.com/mapkit/qbsp/internal/geo"
	"github.com/mapkit/qbsp/internal/tree"
)

// occluded reports whether the segment a->b passes through any opaque leaf,
// the same recursive plane-split hull trace used throughout the qbsp tool
// family's collision and visibility queries: at each interior node it
// classifies both endpoints against the splitting plane and recurses only
// into the children the segment actually crosses.
func occluded(gctx *geo.Context, n *tree.Node, a, b geo.Vec3) bool {
	if n.IsLeaf {
		return n.Contents.Opaque()
	}
	pl := gctx.Planes.Plane(n.PlaneID)
	da := pl.Distance(a)
	db := pl.Distance(b)

	if da >= -geo.OnEpsilon && db >= -geo.OnEpsilon {
		return occluded(gctx, n.Children[0], a, b)
	}
	if da < geo.OnEpsilon && db < geo.OnEpsilon {
		return occluded(gctx, n.Children[1], a, b)
	}

	t := da / (da - db)
	mid := a.Add(b.Sub(a).Scale(t))
	if da >= 0 {
		return occluded(gctx, n.Children[0], a, mid) || occluded(gctx, n.Children[1], mid, b)
	}
	return occluded(gctx, n.Children[1], a, mid) || occluded(gctx, n.Children[0], mid, b)
}

// skyVisible traces a->b the same way occluded does, but a leaf flagged
// brush.Sky counts as open sky rather than a blocker: a sky-textured brush
// is still CONTENTS_SOLID for collision, yet light.hh's sun sampler must
// pass through it to reach the dome. The whole path must clear, so a
// sub-segment hitting ordinary solid fails the trace even if a later
// sub-segment would have reached sky.
func skyVisible(gctx *geo.Context, n *tree.Node, a, b geo.Vec3) bool {
	if n.IsLeaf {
		return n.Contents&brush.Sky != 0 || !n.Contents.Opaque()
	}
	pl := gctx.Planes.Plane(n.PlaneID)
	da := pl.Distance(a)
	db := pl.Distance(b)

	if da >= -geo.OnEpsilon && db >= -geo.OnEpsilon {
		return skyVisible(gctx, n.Children[0], a, b)
	}
	if da < geo.OnEpsilon && db < geo.OnEpsilon {
		return skyVisible(gctx, n.Children[1], a, b)
	}

	t := da / (da - db)
	mid := a.Add(b.Sub(a).Scale(t))
	if da >= 0 {
		return skyVisible(gctx, n.Children[0], a, mid) && skyVisible(gctx, n.Children[1], mid, b)
	}
	return skyVisible(gctx, n.Children[1], a, mid) && skyVisible(gctx, n.Children[0], mid, b)
}
