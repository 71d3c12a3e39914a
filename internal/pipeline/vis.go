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

	"github.com/mapkit/qbsp/internal/vis"
)

// Vis runs PVSSolver over sess.Root and sess.Portals.Portals, storing both
// the directed-portal graph and the per-leaf compressed rows on sess.
func Vis(ctx context.Context, sess *Session) error {
	sess.VisGraph = vis.Build(sess.Root, sess.Portals.Portals)
	result, err := vis.Run(ctx, sess.VisGraph)
	if err != nil {
		return err
	}
	sess.VisResult = result
	return nil
}
