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
	"testing"

	"github.com/mapkit/qbsp/internal/geo"
)

func rect(x float32, yMin, yMax, zMin, zMax float32) geo.Winding {
	return geo.Winding{
		{x, yMin, zMin},
		{x, yMax, zMin},
		{x, yMax, zMax},
		{x, yMin, zMax},
	}
}

// TestClipToSeparatorsRejectsDisjointTunnel builds the classic two-window
// case a plain plane clip chain can't catch: source (x=0) and pass (x=1)
// share no y range at all, so no straight line can pass through both and
// also land back inside target's (x=2) y range. The separating plane
// ClipToSeparators finds along source's far edge and pass's near vertex
// must clip target to nothing.
func TestClipToSeparatorsRejectsDisjointTunnel(t *testing.T) {
	source := rect(0, 0, 10, 0, 10)
	pass := rect(1, 20, 30, 0, 10)
	target := rect(2, 0, 10, 0, 10)

	got := clipToSeparators(source, pass, target, false)
	if len(got) != 0 {
		t.Errorf("expected target fully clipped away by the disjoint tunnel, got %d points: %v", len(got), got)
	}
}

// TestClipToSeparatorsKeepsFlushCorridor mirrors solver_test.go's
// threeInARow straight corridor: source and pass are the same flush window
// repeated down a hallway, so nothing should separate them from target.
func TestClipToSeparatorsKeepsFlushCorridor(t *testing.T) {
	source := rect(0, 0, 10, 0, 10)
	pass := rect(1, 0, 10, 0, 10)
	target := rect(2, 0, 10, 0, 10)

	got := clipToSeparators(source, pass, target, false)
	if len(got) == 0 {
		t.Error("a flush straight corridor should not be separated away")
	}
}

func TestClipToSeparatorsNoopOnEmptyInputs(t *testing.T) {
	target := rect(2, 0, 10, 0, 10)
	if got := clipToSeparators(nil, rect(1, 0, 10, 0, 10), target, false); len(got) != len(target) {
		t.Error("an empty source should leave target untouched")
	}
	if got := clipToSeparators(rect(0, 0, 10, 0, 10), nil, target, false); len(got) != len(target) {
		t.Error("an empty pass should leave target untouched")
	}
}
