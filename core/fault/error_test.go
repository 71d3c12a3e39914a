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

package fault_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/mapkit/qbsp/core/fault"
)

func TestNewFormatsMessage(t *testing.T) {
	err := fault.New(fault.ParseError, nil, "brush %d has %d sides", 7, 3)
	if got, want := err.Error(), "ParseError: brush 7 has 3 sides"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestNewWrapsCause(t *testing.T) {
	cause := errors.New("disk full")
	err := fault.New(fault.IoError, cause, "writing lump")
	if err.Cause() == nil {
		t.Fatal("Cause() = nil, want non-nil")
	}
	if got := err.Error(); got == "" {
		t.Error("Error() is empty")
	}
	if errors.Unwrap(err).Error() != cause.Error() {
		t.Errorf("Unwrap() = %v, want an error wrapping %v", errors.Unwrap(err), cause)
	}
}

func TestWithAppendsDetail(t *testing.T) {
	err := fault.New(fault.GeometryOverflow, nil, "face exceeds vertex cap").
		With("face", 12).With("plane", 4)
	want := "GeometryOverflow: face exceeds vertex cap face=12 plane=4"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestIsAndKindOf(t *testing.T) {
	err := fault.New(fault.Leak, nil, "entity outside world")
	wrapped := fmt.Errorf("compile failed: %w", err)

	if !fault.Is(wrapped, fault.Leak) {
		t.Error("Is(wrapped, Leak) = false, want true")
	}
	if fault.Is(wrapped, fault.IoError) {
		t.Error("Is(wrapped, IoError) = true, want false")
	}
	if got := fault.KindOf(wrapped); got != fault.Leak {
		t.Errorf("KindOf(wrapped) = %v, want %v", got, fault.Leak)
	}
	if got := fault.KindOf(errors.New("plain")); got != fault.Unknown {
		t.Errorf("KindOf(plain) = %v, want %v", got, fault.Unknown)
	}
}

func TestKindExitCode(t *testing.T) {
	for _, test := range []struct {
		kind fault.Kind
		code int
	}{
		{fault.ParseError, 2},
		{fault.Leak, 3},
		{fault.DialectOverflow, 4},
		{fault.IoError, 5},
		{fault.OracleError, 5},
		{fault.ContentConflict, 1},
		{fault.Unknown, 1},
	} {
		if got := test.kind.ExitCode(); got != test.code {
			t.Errorf("%v.ExitCode() = %v, want %v", test.kind, got, test.code)
		}
	}
}

func TestKindString(t *testing.T) {
	if got, want := fault.ParseError.String(), "ParseError"; got != want {
		t.Errorf("ParseError.String() = %q, want %q", got, want)
	}
	if got, want := fault.Kind(99).String(), "Unknown"; got != want {
		t.Errorf("Kind(99).String() = %q, want %q", got, want)
	}
}
