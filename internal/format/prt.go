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
	"bufio"
	"fmt"
	"io"

	"github.com/mapkit/qbsp/core/fault"
	"github.com/mapkit/qbsp/internal/portal"
	"github.com/mapkit/qbsp/internal/tree"
)

// prtMagic is the PRT1 header line prtfile.cc recognizes; this package
// never emits the PRT2/PRT1-AM cluster variants since nothing upstream of
// it produces detail clusters yet.
const prtMagic = "PRT1"

// WritePRT serializes root's leaf-to-leaf portal graph in the classic PRT1
// text format vis reads back: a header line of leaf and portal counts,
// then per portal a "points leaf0 leaf1" line followed by its winding's
// points as "(x y z )" triples. Leaf numbering is assigned here,
// independently of any vis.Graph numbering, by walking root's leaves in
// the same order (skip opaque leaves) vis.Build uses — the two numbering
// passes are required to agree since compile-vis re-derives it from the
// .prt file alone, with no access to the tree that produced it.
func WritePRT(w io.Writer, root *tree.Node, portals []*portal.Portal) error {
	leafNum := map[*tree.Node]int{}
	for _, n := range tree.Leaves(root) {
		if n.Contents.Opaque() {
			continue
		}
		leafNum[n] = len(leafNum)
	}

	type entry struct {
		l0, l1 int
		w      portal.Portal
	}
	var entries []entry
	for _, p := range portals {
		n0, ok0 := leafNum[p.Nodes[0]]
		n1, ok1 := leafNum[p.Nodes[1]]
		if !ok0 || !ok1 {
			continue
		}
		entries = append(entries, entry{n0, n1, *p})
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%s\n%d %d\n", prtMagic, len(leafNum), len(entries))
	for _, e := range entries {
		fmt.Fprintf(bw, "%d %d %d ", len(e.w.Winding), e.l0, e.l1)
		for _, v := range e.w.Winding {
			fmt.Fprintf(bw, "(%f %f %f ) ", v[0], v[1], v[2])
		}
		fmt.Fprint(bw, "\n")
	}
	if err := bw.Flush(); err != nil {
		return fault.New(fault.IoError, err, "writing portal file")
	}
	return nil
}
