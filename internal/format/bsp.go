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
	"io"

	"github.com/mapkit/qbsp/core/data/binary"
	"github.com/mapkit/qbsp/core/fault"
)

// lumpAlign is the zero-padding every lump is rounded up to, matching the
// original tool's 4-byte lump alignment.
const lumpAlign = 4

func padLen(n int) int {
	if r := n % lumpAlign; r != 0 {
		return n + (lumpAlign - r)
	}
	return n
}

// ReadBSP decodes a dialect header, its fixed NumLumps-entry directory, and
// every lump's bytes from r (bspfile.h's dheader_t, generalized over
// dialects).
func ReadBSP(r io.Reader) (*Model, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fault.New(fault.IoError, err, "reading bsp stream")
	}
	br := binary.NewReader(bytes.NewReader(raw))
	version := br.Int32()
	dialect, ok := dialectFor(version)
	if !ok {
		return nil, fault.New(fault.ParseError, nil, "unrecognized bsp version/magic %#x", uint32(version))
	}

	type dir struct{ ofs, length int32 }
	dirs := make([]dir, NumLumps)
	for i := range dirs {
		dirs[i] = dir{ofs: br.Int32(), length: br.Int32()}
	}
	if err := br.Error(); err != nil {
		return nil, fault.New(fault.IoError, err, "reading bsp directory")
	}

	m := NewModel(dialect)
	for i, d := range dirs {
		if d.length == 0 {
			continue
		}
		start, end := int(d.ofs), int(d.ofs)+int(d.length)
		if start < 0 || end > len(raw) || start > end {
			return nil, fault.New(fault.ParseError, nil, "lump %s out of bounds", LumpID(i))
		}
		data := make([]byte, d.length)
		copy(data, raw[start:end])
		m.Lumps[i] = data
	}
	return m, nil
}

// WriteBSP encodes m's header, directory, and lump bytes (each padded to
// lumpAlign) to w.
func WriteBSP(w io.Writer, m *Model) error {
	headerLen := 4 + int(NumLumps)*8
	offsets := make([]int32, NumLumps)
	lengths := make([]int32, NumLumps)
	offset := headerLen
	for i := 0; i < int(NumLumps); i++ {
		data := m.Lumps[i]
		offsets[i] = int32(offset)
		lengths[i] = int32(len(data))
		offset += padLen(len(data))
	}

	bw := binary.NewWriter(w)
	bw.Int32(m.Dialect.Version)
	for i := 0; i < int(NumLumps); i++ {
		bw.Int32(offsets[i])
		bw.Int32(lengths[i])
	}
	var zero [lumpAlign]byte
	for i := 0; i < int(NumLumps); i++ {
		data := m.Lumps[i]
		bw.Data(data)
		if pad := padLen(len(data)) - len(data); pad > 0 {
			bw.Data(zero[:pad])
		}
	}
	if err := bw.Error(); err != nil {
		return fault.New(fault.IoError, err, "writing bsp stream")
	}
	return nil
}
