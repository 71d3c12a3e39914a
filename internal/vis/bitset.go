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

import "math/bits"

// Bits is a fixed-size per-leaf visibility set, the Go stand-in for vis.cc's
// leafbits_t: one bit per potentially-visible-set leaf.
type Bits []uint64

// NewBits returns a zeroed set sized to hold n leaf bits.
func NewBits(n int) Bits {
	return make(Bits, (n+63)/64)
}

// Set marks leaf i visible.
func (b Bits) Set(i int) {
	b[i/64] |= 1 << uint(i%64)
}

// Get reports whether leaf i is marked visible.
func (b Bits) Get(i int) bool {
	return b[i/64]&(1<<uint(i%64)) != 0
}

// Clone returns an independent copy.
func (b Bits) Clone() Bits {
	c := make(Bits, len(b))
	copy(c, b)
	return c
}

// And returns the bitwise intersection of b and o.
func (b Bits) And(o Bits) Bits {
	out := make(Bits, len(b))
	for i := range b {
		out[i] = b[i] & o[i]
	}
	return out
}

// Or ORs o into b in place.
func (b Bits) Or(o Bits) {
	for i := range b {
		b[i] |= o[i]
	}
}

// AddsNew reports whether b has any bit set that vis does not, i.e. whether
// recursing through a portal whose mightsee set is b could still reveal a
// leaf the flow hasn't already proven visible (flow.cc's "more" check that
// bounds RecursiveLeafFlow's recursion to productive steps only).
func (b Bits) AddsNew(vis Bits) bool {
	for i := range b {
		if b[i]&^vis[i] != 0 {
			return true
		}
	}
	return false
}

// Count returns how many bits are set.
func (b Bits) Count() int {
	n := 0
	for _, w := range b {
		n += bits.OnesCount64(w)
	}
	return n
}

// Bytes packs the first n bits into a little-endian byte slice, the layout
// the on-disk PVS lump and RLE compressor expect.
func (b Bits) Bytes(n int) []byte {
	out := make([]byte, (n+7)/8)
	for i := 0; i < n; i++ {
		if b.Get(i) {
			out[i/8] |= 1 << uint(i%8)
		}
	}
	return out
}
