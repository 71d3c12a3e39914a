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

package format

import (
	"encoding/json"
	"io"

	"github.com/mapkit/qbsp/core/fault"
)

// Sidecar carries the handful of settings and derived values spec.md §6's
// CLI surface needs to survive a round trip through separate
// compile-geometry/compile-vis/compile-light invocations, but that the
// base dialects have no dedicated lump for: the lightmap styles actually
// used (so compile-light can detect a collision in the 32..254 switchable
// range), and the dirt/phong/bounce settings the bake ran with, so
// bspinfo-style tooling can report how a .bsp's lighting was produced.
type Sidecar struct {
	Styles        []int    `json:"styles,omitempty"`
	DirtEnabled   bool     `json:"dirtEnabled,omitempty"`
	PhongEnabled  bool     `json:"phongEnabled,omitempty"`
	BounceEnabled bool     `json:"bounceEnabled,omitempty"`
	Warnings      []string `json:"warnings,omitempty"`
}

// WriteSidecar writes s as indented JSON to w.
func WriteSidecar(w io.Writer, s *Sidecar) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return fault.New(fault.IoError, err, "writing sidecar")
	}
	return nil
}

// ReadSidecar decodes a Sidecar previously written by WriteSidecar.
func ReadSidecar(r io.Reader) (*Sidecar, error) {
	var s Sidecar
	if err := json.NewDecoder(r).Decode(&s); err != nil {
		return nil, fault.New(fault.ParseError, err, "reading sidecar")
	}
	return &s, nil
}
