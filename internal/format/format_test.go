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
	"bytes"
	"testing"

	"github.com/mapkit/qbsp/internal/geo"
	"github.com/mapkit/qbsp/internal/portal"
	"github.com/mapkit/qbsp/internal/tree"
)

func sampleModel() *Model {
	m := NewModel(DialectBSP2)
	m.SetLump(Entities, []byte(`{"classname" "worldspawn"}`))
	m.SetLump(Planes, []byte{1, 2, 3, 4, 5})
	m.SetLump(Vertexes, []byte{9, 9, 9})
	return m
}

func TestWriteReadBSPRoundTrips(t *testing.T) {
	want := sampleModel()
	var buf bytes.Buffer
	if err := WriteBSP(&buf, want); err != nil {
		t.Fatal(err)
	}
	got, err := ReadBSP(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if got.Dialect != want.Dialect {
		t.Errorf("dialect = %+v, want %+v", got.Dialect, want.Dialect)
	}
	for i := 0; i < int(NumLumps); i++ {
		if !bytes.Equal(got.Lumps[i], want.Lumps[i]) {
			t.Errorf("lump %s = %v, want %v", LumpID(i), got.Lumps[i], want.Lumps[i])
		}
	}
}

func TestReadBSPRejectsUnknownVersion(t *testing.T) {
	var buf bytes.Buffer
	m := NewModel(Dialect{Name: "bogus", Version: 0xDEAD})
	if err := WriteBSP(&buf, m); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadBSP(&buf); err == nil {
		t.Fatal("expected an error reading an unrecognized dialect version")
	}
}

func TestSummarizeListsEveryLump(t *testing.T) {
	s := Summarize(sampleModel())
	for _, want := range []string{"ENTITIES", "PLANES", "VERTEXES", "total"} {
		if !bytes.Contains([]byte(s), []byte(want)) {
			t.Errorf("summary missing %q:\n%s", want, s)
		}
	}
}

func TestSidecarRoundTrips(t *testing.T) {
	want := &Sidecar{Styles: []int{0, 32, 33}, DirtEnabled: true}
	var buf bytes.Buffer
	if err := WriteSidecar(&buf, want); err != nil {
		t.Fatal(err)
	}
	got, err := ReadSidecar(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Styles) != 3 || !got.DirtEnabled {
		t.Errorf("sidecar round trip mismatch: %+v", got)
	}
}

func TestWritePRTCountsLeavesAndPortals(t *testing.T) {
	gctx := geo.NewContext()
	pl, ok := geo.NewPlane(geo.Vec3{1, 0, 0}, geo.Vec3{1, 1, 0}, geo.Vec3{1, 0, 1})
	if !ok {
		t.Fatal("degenerate plane")
	}
	planeID := gctx.Planes.Intern(pl)
	leafA := tree.NewLeaf(0, geo.AABB{Min: geo.Vec3{0, -8, -8}, Max: geo.Vec3{1, 8, 8}}, 0)
	leafB := tree.NewLeaf(1, geo.AABB{Min: geo.Vec3{1, -8, -8}, Max: geo.Vec3{2, 8, 8}}, 0)
	root := tree.NewInterior(2, geo.AABB{Min: geo.Vec3{0, -8, -8}, Max: geo.Vec3{2, 8, 8}}, planeID, leafB, leafA)

	portals, _ := portal.Extract(gctx, root, root.AABB)

	var buf bytes.Buffer
	if err := WritePRT(&buf, root, portals); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !bytes.HasPrefix([]byte(out), []byte(prtMagic)) {
		t.Errorf("expected output to start with %s, got %q", prtMagic, out[:len(prtMagic)])
	}
	if !bytes.Contains([]byte(out), []byte("2 ")) {
		t.Errorf("expected the header to report 2 leafs:\n%s", out)
	}
}
