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
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/mapkit/qbsp/core/app/status"
	"github.com/mapkit/qbsp/core/log"
	"github.com/mapkit/qbsp/internal/face"
	"github.com/mapkit/qbsp/internal/geo"
	"github.com/mapkit/qbsp/internal/tree"
)

// Result is everything a compile job needs to write the BSP's lighting
// lumps: one FaceGrid/FaceLightmap pair per input face plus the level-wide
// light grid octree.
type Result struct {
	Grids     []*FaceGrid
	Lightmaps []*FaceLightmap
	Grid      *Grid
}

// Run bakes lighting for every face in faces against root's geometry and
// lights, following the phase order light.hh's main loop uses: direct
// first (every style simultaneously), then dirt, then a single indirect
// bounce seeded from the direct pass, then the level-wide light grid.
func Run(ctx context.Context, gctx *geo.Context, root *tree.Node, faces []*face.Face, pool *face.Pool, lights []Light, bounds geo.AABB, opts Options) (*Result, error) {
	opts = opts.normalized()
	task := status.Start(ctx, "light")
	defer task.Finish(ctx)

	flatNormals := make([]geo.Vec3, len(faces))
	for i, f := range faces {
		flatNormals[i] = gctx.Planes.Plane(f.PlaneID).Normal
	}

	var phong PhongNormals
	if opts.Phong {
		angle := opts.PhongAngleDeg
		if angle <= 0 {
			angle = 89
		}
		phong = computePhongNormals(faces, flatNormals, angle)
	}

	grids := make([]*FaceGrid, len(faces))
	lightmaps := make([]*FaceLightmap, len(faces))

	g, gctx2 := errgroup.WithContext(ctx)
	for i := range faces {
		i := i
		g.Go(func() error {
			select {
			case <-gctx2.Done():
				return gctx2.Err()
			default:
			}
			var normalAt func(int) (geo.Vec3, bool)
			if phong != nil {
				normalAt = phong.lookup
			}
			grid := buildFaceGrid(i, faces[i], pool, flatNormals[i], opts.LuxelSize, normalAt)
			if grid == nil {
				return nil
			}
			fl := accumulateDirect(gctx, root, grid, lights, opts)
			applyMinlight(fl, grid, opts)
			if opts.Dirt {
				dirt := computeDirt(gctx, root, grid, opts)
				applyDirt(fl, dirt)
			}
			grids[i] = grid
			lightmaps[i] = fl
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if opts.Bounce {
		patches := buildBouncePatches(grids, lightmaps)
		bg, bctx := errgroup.WithContext(ctx)
		for i := range faces {
			i := i
			if grids[i] == nil {
				continue
			}
			bg.Go(func() error {
				select {
				case <-bctx.Done():
					return bctx.Err()
				default:
				}
				buf := accumulateBounce(gctx, root, grids[i], patches, opts)
				lightmaps[i].addStyle(buf)
				return nil
			})
		}
		if err := bg.Wait(); err != nil {
			return nil, err
		}
	}

	grid := BuildGrid(gctx, root, lights, bounds, opts)

	log.I(ctx).Log("light: baked %d faces, grid %dx%dx%d", len(faces), grid.Size[0], grid.Size[1], grid.Size[2])
	return &Result{Grids: grids, Lightmaps: lightmaps, Grid: grid}, nil
}
