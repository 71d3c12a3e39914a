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

package portal

import (
	"context"

	"github.com/mapkit/qbsp/core/app/status"
	"github.com/mapkit/qbsp/core/fault"
	"github.com/mapkit/qbsp/core/log"
	"github.com/mapkit/qbsp/internal/geo"
	"github.com/mapkit/qbsp/internal/tree"
)

// Result is what the pipeline needs out of the portal stage: the graph (for
// PVSSolver), whether the map leaked, and the leak trail if so.
type Result struct {
	Portals []*Portal
	Leaked  bool
	Trail   []geo.Vec3
	Sealed  int
}

// Run extracts the portal graph, floods it from ents, and either seals
// unreachable void leaves or reports a leak (spec.md §4.5). A leak is
// reported as a *fault.Error of kind Leak, not a plain error, so the CLI
// layer maps it to exit code 3 (spec.md §6) while still returning the trail
// for the caller to write out.
func Run(ctx context.Context, gctx *geo.Context, root *tree.Node, worldBounds geo.AABB, ents []Occupant, opt FillOptions) (*Result, error) {
	task := status.Start(ctx, "portals")
	defer task.Finish(ctx)

	portals, outside := Extract(gctx, root, worldBounds)
	log.I(ctx).Log("portals: %d leaf-pair portals", len(portals))

	occupied := FindOccupied(gctx, root, ents)
	if len(occupied) == 0 {
		task.Warnf(ctx, "portals: no occupied leafs found (map has no entities off the origin?)")
	}

	leaked, trail := Flood(occupied, outside, opt)
	if leaked {
		return &Result{Portals: portals, Leaked: true, Trail: trail},
			fault.New(fault.Leak, nil, "entity sees outside the world (%d point leak trail)", len(trail))
	}

	sealed := FillVoid(ctx, root)
	log.I(ctx).Log("portals: sealed %d void leafs", sealed)
	return &Result{Portals: portals, Sealed: sealed}, nil
}
