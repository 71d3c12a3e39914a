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

import "fmt"

// Summarize returns a bspinfo.cc-style per-lump byte count report, the
// cheapest possible check that a round trip through ReadBSP/WriteBSP
// preserved every lump exactly.
func Summarize(m *Model) string {
	s := fmt.Sprintf("dialect: %s (version %#x)\n", m.Dialect.Name, uint32(m.Dialect.Version))
	var total int
	for i := 0; i < int(NumLumps); i++ {
		n := len(m.Lumps[i])
		total += n
		s += fmt.Sprintf("%-14s %8d bytes\n", LumpID(i), n)
	}
	s += fmt.Sprintf("%-14s %8d bytes\n", "total", total)
	return s
}
