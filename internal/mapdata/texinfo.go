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

package mapdata

import "github.com/mapkit/qbsp/internal/brush"

// TexInfoTable dedups canonicalized brush.TexInfo records into a stable,
// densely-numbered list, the way FindTexinfo dedups mtexinfo_t entries in
// csg4.cc before a texinfo lump is ever written: two sides with identical
// projection, flags, and miptex share one index.
type TexInfoTable struct {
	entries []brush.TexInfo
	lookup  map[brush.TexInfo]int
}

// NewTexInfoTable returns an empty TexInfoTable.
func NewTexInfoTable() *TexInfoTable {
	return &TexInfoTable{lookup: map[brush.TexInfo]int{}}
}

// Intern returns t's stable index, appending it if this exact record has
// not been seen before.
func (tt *TexInfoTable) Intern(t brush.TexInfo) int {
	if id, ok := tt.lookup[t]; ok {
		return id
	}
	id := len(tt.entries)
	tt.entries = append(tt.entries, t)
	tt.lookup[t] = id
	return id
}

// Len returns the number of distinct texinfo records interned so far.
func (tt *TexInfoTable) Len() int { return len(tt.entries) }

// All returns every interned record, indexed by its Intern-assigned id.
func (tt *TexInfoTable) All() []brush.TexInfo { return tt.entries }
