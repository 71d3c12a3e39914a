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
	"github.com/mapkit/qbsp/internal/geo"
	"github.com/mapkit/qbsp/internal/tree"
)

// gridMaxDepth and gridMinDimension bound the octree subdivision lightgrid.cc's
// MakeOctreeLump uses: stop recursing past gridMaxDepth levels, and don't
// bother subdividing a run of fewer than gridMinDimension samples on any
// axis.
const (
	gridMaxDepth     = 5
	gridMinDimension = 4
)

// GridSample is one regularly-spaced probe dynamic entities interpolate
// between at runtime.
type GridSample struct {
	Origin   geo.Vec3
	Color    geo.Vec3
	Occluded bool
}

// GridNode is one octree node over the Grid's sample lattice. A leaf (every
// Children entry nil) names the single SampleIndex covering its box;
// SampleIndex is -1 for every non-leaf.
type GridNode struct {
	Mins, Size  [3]int
	Children    [8]*GridNode
	SampleIndex int
}

// Grid is the light grid octree: a regular lattice of GridSamples plus the
// octree that compresses runs of identically-occluded samples, following
// lightgrid.cc's lightgrid_raw_data layout.
type Grid struct {
	Mins    geo.Vec3
	Dist    geo.Vec3
	Size    [3]int
	Samples []GridSample
	Root    *GridNode
}

func (g *Grid) index(x, y, z int) int {
	return g.Size[0]*g.Size[1]*z + g.Size[0]*y + x
}

// BuildGrid lays a lattice of spacing-separated points over bounds, probes
// each for occlusion and ambient light, and compresses the result into an
// octree.
func BuildGrid(gctx *geo.Context, root *tree.Node, lights []Light, bounds geo.AABB, opts Options) *Grid {
	opts = opts.normalized()
	spacing := opts.GridSpacing

	g := &Grid{
		Mins: bounds.Min,
		Dist: geo.Vec3{spacing, spacing, spacing},
	}
	for i := 0; i < 3; i++ {
		extent := bounds.Max[i] - bounds.Min[i]
		n := int(extent/spacing) + 2
		if n < 1 {
			n = 1
		}
		g.Size[i] = n
	}

	g.Samples = make([]GridSample, g.Size[0]*g.Size[1]*g.Size[2])
	for z := 0; z < g.Size[2]; z++ {
		for y := 0; y < g.Size[1]; y++ {
			for x := 0; x < g.Size[0]; x++ {
				p := g.Mins.Add(geo.Vec3{float32(x) * spacing, float32(y) * spacing, float32(z) * spacing})
				leaf := tree.PointLeaf(gctx, root, p)
				s := GridSample{Origin: p, Occluded: leaf.Contents.Opaque()}
				if !s.Occluded {
					s.Color = sampleAmbient(gctx, root, p, lights)
					if opts.Minlight > 0 {
						floor := geo.Vec3(opts.MinlightColor).Scale(opts.Minlight / 255)
						s.Color = geo.Vec3{maxF(s.Color[0], floor[0]), maxF(s.Color[1], floor[1]), maxF(s.Color[2], floor[2])}
					}
				}
				g.Samples[g.index(x, y, z)] = s
			}
		}
	}

	g.Root = g.buildOctree([3]int{0, 0, 0}, g.Size, 0)
	return g
}

// sampleAmbient sums every light's unshadowed-by-cosine contribution at p,
// a cheap omnidirectional estimate appropriate for a dynamic model that can
// face any direction, still respecting occlusion.
func sampleAmbient(gctx *geo.Context, root *tree.Node, p geo.Vec3, lights []Light) geo.Vec3 {
	var total geo.Vec3
	for _, l := range lights {
		var atten float32
		var target geo.Vec3
		switch l.Kind {
		case KindSun:
			atten = l.Intensity
			target = p.Add(l.Dir.Normalize().Neg().Scale(geo.WorldExtent))
		default:
			toPoint := p.Sub(l.Origin)
			dist := toPoint.Magnitude()
			if l.Kind == KindSpot && dist > 1e-6 && !l.inCone(toPoint.Scale(1/dist)) {
				continue
			}
			atten = l.attenuate(dist)
			target = l.Origin
		}
		if atten <= 0 {
			continue
		}
		if occluded(gctx, root, p, target) {
			continue
		}
		total = total.Add(geo.Vec3(l.Color).Scale(atten / 255))
	}
	return total
}

func (g *Grid) buildOctree(mins, size [3]int, depth int) *GridNode {
	if size[0]*size[1]*size[2] == 1 {
		return &GridNode{Mins: mins, Size: size, SampleIndex: g.index(mins[0], mins[1], mins[2])}
	}

	occludedCount, total := 0, 0
	for z := mins[2]; z < mins[2]+size[2]; z++ {
		for y := mins[1]; y < mins[1]+size[1]; y++ {
			for x := mins[0]; x < mins[0]+size[0]; x++ {
				total++
				if g.Samples[g.index(x, y, z)].Occluded {
					occludedCount++
				}
			}
		}
	}
	uniform := occludedCount == 0 || occludedCount == total
	tooSmall := depth >= gridMaxDepth
	for i := 0; i < 3; i++ {
		if size[i] < gridMinDimension {
			tooSmall = true
		}
	}
	if uniform || tooSmall {
		return &GridNode{Mins: mins, Size: size, SampleIndex: g.index(mins[0], mins[1], mins[2])}
	}

	div := [3]int{mins[0] + size[0]/2, mins[1] + size[1]/2, mins[2] + size[2]/2}
	node := &GridNode{Mins: mins, Size: size, SampleIndex: -1}
	for i := 0; i < 8; i++ {
		childMins, childSize := octant(i, mins, size, div)
		if childSize[0] == 0 || childSize[1] == 0 || childSize[2] == 0 {
			continue
		}
		node.Children[i] = g.buildOctree(childMins, childSize, depth+1)
	}
	return node
}

// octant returns octant i's (mins, size), matching MakeOctreeLump's
// get_octant: bit 4 picks the X half, bit 2 picks Y, bit 1 picks Z.
func octant(i int, mins, size, div [3]int) (childMins, childSize [3]int) {
	bits := [3]int{4, 2, 1}
	for axis := 0; axis < 3; axis++ {
		if i&bits[axis] != 0 {
			childMins[axis] = div[axis]
			childSize[axis] = mins[axis] + size[axis] - div[axis]
		} else {
			childMins[axis] = mins[axis]
			childSize[axis] = div[axis] - mins[axis]
		}
	}
	return childMins, childSize
}
