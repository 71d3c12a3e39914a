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

// Package binary provides little-endian typed readers and writers for the
// fixed-size lump records FormatShim's dialects describe. Every on-disk BSP
// dialect spec.md §4.9/§6 names is little-endian, so this package hard-codes
// byte order rather than carrying a parameterized endianness setting.
package binary

import (
	"encoding/binary"
	"io"
)

// Reader provides methods for decoding little-endian values from a stream,
// sticking at the first error the way bufio.Scanner does.
type Reader interface {
	io.Reader
	// Data reads len(p) bytes in their entirety.
	Data(p []byte)
	Int8() int8
	Uint8() uint8
	Int16() int16
	Uint16() uint16
	Int32() int32
	Uint32() uint32
	Int64() int64
	Uint64() uint64
	Float32() float32
	// CString reads a NUL-terminated string, used for the entities lump.
	CString() string
	// Error returns the first error encountered, or nil.
	Error() error
	// SetError latches err so all further reads become no-ops.
	SetError(error)
}

type reader struct {
	r   io.Reader
	tmp [8]byte
	err error
}

// NewReader returns a Reader over r.
func NewReader(r io.Reader) Reader { return &reader{r: r} }

func (s *reader) Read(p []byte) (int, error) {
	if s.err != nil {
		return 0, s.err
	}
	n, err := io.ReadFull(s.r, p)
	if err != nil {
		s.err = err
	}
	return n, err
}

func (s *reader) Data(p []byte) { s.Read(p) }

func (s *reader) Error() error     { return s.err }
func (s *reader) SetError(e error) { s.err = e }

func (s *reader) Uint8() uint8 {
	s.Read(s.tmp[:1])
	return s.tmp[0]
}

func (s *reader) Int8() int8 { return int8(s.Uint8()) }

func (s *reader) Uint16() uint16 {
	s.Read(s.tmp[:2])
	return binary.LittleEndian.Uint16(s.tmp[:2])
}

func (s *reader) Int16() int16 { return int16(s.Uint16()) }

func (s *reader) Uint32() uint32 {
	s.Read(s.tmp[:4])
	return binary.LittleEndian.Uint32(s.tmp[:4])
}

func (s *reader) Int32() int32 { return int32(s.Uint32()) }

func (s *reader) Uint64() uint64 {
	s.Read(s.tmp[:8])
	return binary.LittleEndian.Uint64(s.tmp[:8])
}

func (s *reader) Int64() int64 { return int64(s.Uint64()) }

func (s *reader) Float32() float32 {
	return float32FromBits(s.Uint32())
}

func (s *reader) CString() string {
	var buf []byte
	for s.err == nil {
		b := s.Uint8()
		if s.err != nil || b == 0 {
			break
		}
		buf = append(buf, b)
	}
	return string(buf)
}
