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

package binary

import (
	"encoding/binary"
	"io"
	"math"
)

// Writer provides methods for encoding little-endian values to a stream.
type Writer interface {
	io.Writer
	Data([]byte)
	Int8(int8)
	Uint8(uint8)
	Int16(int16)
	Uint16(uint16)
	Int32(int32)
	Uint32(uint32)
	Int64(int64)
	Uint64(uint64)
	Float32(float32)
	// CString writes s followed by a NUL terminator.
	CString(s string)
	Error() error
	SetError(error)
}

type writer struct {
	w   io.Writer
	tmp [8]byte
	err error
}

// NewWriter returns a Writer over w.
func NewWriter(w io.Writer) Writer { return &writer{w: w} }

func (s *writer) Write(p []byte) (int, error) {
	if s.err != nil {
		return 0, s.err
	}
	n, err := s.w.Write(p)
	if err != nil {
		s.err = err
	}
	return n, err
}

func (s *writer) Data(p []byte) { s.Write(p) }

func (s *writer) Error() error     { return s.err }
func (s *writer) SetError(e error) { s.err = e }

func (s *writer) Uint8(v uint8) {
	s.tmp[0] = v
	s.Write(s.tmp[:1])
}

func (s *writer) Int8(v int8) { s.Uint8(uint8(v)) }

func (s *writer) Uint16(v uint16) {
	binary.LittleEndian.PutUint16(s.tmp[:2], v)
	s.Write(s.tmp[:2])
}

func (s *writer) Int16(v int16) { s.Uint16(uint16(v)) }

func (s *writer) Uint32(v uint32) {
	binary.LittleEndian.PutUint32(s.tmp[:4], v)
	s.Write(s.tmp[:4])
}

func (s *writer) Int32(v int32) { s.Uint32(uint32(v)) }

func (s *writer) Uint64(v uint64) {
	binary.LittleEndian.PutUint64(s.tmp[:8], v)
	s.Write(s.tmp[:8])
}

func (s *writer) Int64(v int64) { s.Uint64(uint64(v)) }

func (s *writer) Float32(v float32) {
	s.Uint32(math.Float32bits(v))
}

func (s *writer) CString(str string) {
	s.Write([]byte(str))
	s.Uint8(0)
}

func float32FromBits(b uint32) float32 { return math.Float32frombits(b) }
