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

package f32_test

import (
	"testing"

	"github.com/mapkit/qbsp/core/math/f32"
)

func TestV3SqrMagnitude(t *testing.T) {
	for _, test := range []struct {
		v f32.Vec3
		r float32
	}{
		{f32.Vec3{0, 0, 0}, 0},
		{f32.Vec3{1, 0, 0}, 1},
		{f32.Vec3{0, 2, 0}, 4},
		{f32.Vec3{0, 0, -3}, 9},
		{f32.Vec3{1, 1, 1}, 3},
	} {
		if got := test.v.SqrMagnitude(); got != test.r {
			t.Errorf("%v.SqrMagnitude() = %v, want %v", test.v, got, test.r)
		}
	}
}

func TestV3Magnitude(t *testing.T) {
	for _, test := range []struct {
		v f32.Vec3
		r float32
	}{
		{f32.Vec3{0, 0, 0}, 0},
		{f32.Vec3{1, 0, 0}, 1},
		{f32.Vec3{0, 2, 0}, 2},
		{f32.Vec3{0, 0, -3}, 3},
		{f32.Vec3{1, 1, 1}, f32.Sqrt(3)},
	} {
		if got := test.v.Magnitude(); got != test.r {
			t.Errorf("%v.Magnitude() = %v, want %v", test.v, got, test.r)
		}
	}
}

func TestV3Scale(t *testing.T) {
	for _, test := range []struct {
		v f32.Vec3
		s float32
		r f32.Vec3
	}{
		{f32.Vec3{1, 0, 0}, -1, f32.Vec3{-1, 0, 0}},
		{f32.Vec3{0, 2, 0}, -2, f32.Vec3{0, -4, 0}},
		{f32.Vec3{0, 0, 3}, -3, f32.Vec3{0, 0, -9}},
		{f32.Vec3{1, 1, 1}, 0, f32.Vec3{0, 0, 0}},
	} {
		if got := test.v.Scale(test.s); got != test.r {
			t.Errorf("%v.Scale(%v) = %v, want %v", test.v, test.s, got, test.r)
		}
	}
}

func TestV3Normalize(t *testing.T) {
	for _, test := range []struct {
		v f32.Vec3
		r f32.Vec3
	}{
		{f32.Vec3{0, 0, 0}, f32.Vec3{0, 0, 0}},
		{f32.Vec3{1, 0, 0}, f32.Vec3{1, 0, 0}},
		{f32.Vec3{0, -2, 0}, f32.Vec3{0, -1, 0}},
		{f32.Vec3{0, 0, 3}, f32.Vec3{0, 0, 1}},
		{f32.Vec3{1, 2, -2}, f32.Vec3{1. / 3, 2. / 3, -2. / 3}},
	} {
		if got := test.v.Normalize(); got != test.r {
			t.Errorf("%v.Normalize() = %v, want %v", test.v, got, test.r)
		}
	}
}

func TestV3W(t *testing.T) {
	for _, test := range []struct {
		v f32.Vec3
		w float32
		r f32.Vec4
	}{
		{f32.Vec3{0, 0, 0}, -4, f32.Vec4{0, 0, 0, -4}},
		{f32.Vec3{1, 2, 3}, 4, f32.Vec4{1, 2, 3, 4}},
	} {
		if got := test.v.W(test.w); got != test.r {
			t.Errorf("%v.W(%v) = %v, want %v", test.v, test.w, got, test.r)
		}
	}
}

func TestAdd3D(t *testing.T) {
	for _, test := range []struct {
		a, b, r f32.Vec3
	}{
		{f32.Vec3{0, 0, 0}, f32.Vec3{0, 0, 0}, f32.Vec3{0, 0, 0}},
		{f32.Vec3{1, 2, 3}, f32.Vec3{0, 0, 0}, f32.Vec3{1, 2, 3}},
		{f32.Vec3{0, 0, 0}, f32.Vec3{3, 2, 1}, f32.Vec3{3, 2, 1}},
		{f32.Vec3{1, 2, 3}, f32.Vec3{-1, -2, -3}, f32.Vec3{0, 0, 0}},
	} {
		if got := f32.Add3D(test.a, test.b); got != test.r {
			t.Errorf("Add3D(%v, %v) = %v, want %v", test.a, test.b, got, test.r)
		}
	}
}

func TestSub3D(t *testing.T) {
	for _, test := range []struct {
		a, b, r f32.Vec3
	}{
		{f32.Vec3{0, 0, 0}, f32.Vec3{0, 0, 0}, f32.Vec3{0, 0, 0}},
		{f32.Vec3{1, 2, 3}, f32.Vec3{0, 0, 0}, f32.Vec3{1, 2, 3}},
		{f32.Vec3{0, 0, 0}, f32.Vec3{3, 2, 1}, f32.Vec3{-3, -2, -1}},
		{f32.Vec3{1, 2, 3}, f32.Vec3{-1, -2, -3}, f32.Vec3{2, 4, 6}},
	} {
		if got := f32.Sub3D(test.a, test.b); got != test.r {
			t.Errorf("Sub3D(%v, %v) = %v, want %v", test.a, test.b, got, test.r)
		}
	}
}

func TestCross3D(t *testing.T) {
	for _, test := range []struct {
		a, b, r f32.Vec3
	}{
		{f32.Vec3{0, 0, 0}, f32.Vec3{0, 0, 0}, f32.Vec3{0, 0, 0}},
		{f32.Vec3{1, 0, 0}, f32.Vec3{0, 4, 0}, f32.Vec3{0, 0, 4}},
		{f32.Vec3{0, 2, 0}, f32.Vec3{0, 0, 5}, f32.Vec3{10, 0, 0}},
		{f32.Vec3{0, 0, 3}, f32.Vec3{6, 0, 0}, f32.Vec3{0, 18, 0}},
	} {
		if got := f32.Cross3D(test.a, test.b); got != test.r {
			t.Errorf("Cross3D(%v, %v) = %v, want %v", test.a, test.b, got, test.r)
		}
	}
}

func TestDot3D(t *testing.T) {
	for _, test := range []struct {
		a, b f32.Vec3
		r    float32
	}{
		{f32.Vec3{1, 0, 0}, f32.Vec3{1, 0, 0}, 1},
		{f32.Vec3{1, 0, 0}, f32.Vec3{0, 1, 0}, 0},
		{f32.Vec3{1, 2, 3}, f32.Vec3{4, 5, 6}, 32},
	} {
		if got := f32.Dot3D(test.a, test.b); got != test.r {
			t.Errorf("Dot3D(%v, %v) = %v, want %v", test.a, test.b, got, test.r)
		}
	}
}

func TestV3MinMax(t *testing.T) {
	a := f32.Vec3{1, 5, -3}
	b := f32.Vec3{4, 2, -1}
	if got, want := a.Min(b), (f32.Vec3{1, 2, -3}); got != want {
		t.Errorf("Min(%v, %v) = %v, want %v", a, b, got, want)
	}
	if got, want := a.Max(b), (f32.Vec3{4, 5, -1}); got != want {
		t.Errorf("Max(%v, %v) = %v, want %v", a, b, got, want)
	}
}

func TestV4XYZ(t *testing.T) {
	for _, test := range []struct {
		v f32.Vec4
		r f32.Vec3
	}{
		{f32.Vec4{0, 0, 0, 0}, f32.Vec3{0, 0, 0}},
		{f32.Vec4{1, 2, 3, 4}, f32.Vec3{1, 2, 3}},
	} {
		if got := test.v.XYZ(); got != test.r {
			t.Errorf("%v.XYZ() = %v, want %v", test.v, got, test.r)
		}
	}
}

func TestV4Scale(t *testing.T) {
	for _, test := range []struct {
		v f32.Vec4
		s float32
		r f32.Vec4
	}{
		{f32.Vec4{1, 0, 0, 0}, -1, f32.Vec4{-1, 0, 0, 0}},
		{f32.Vec4{0, 2, 0, 0}, -2, f32.Vec4{0, -4, 0, 0}},
		{f32.Vec4{1, 1, 1, 1}, 0, f32.Vec4{0, 0, 0, 0}},
	} {
		if got := test.v.Scale(test.s); got != test.r {
			t.Errorf("%v.Scale(%v) = %v, want %v", test.v, test.s, got, test.r)
		}
	}
}

func TestAdd4D(t *testing.T) {
	for _, test := range []struct {
		a, b, r f32.Vec4
	}{
		{f32.Vec4{0, 0, 0, 0}, f32.Vec4{0, 0, 0, 0}, f32.Vec4{0, 0, 0, 0}},
		{f32.Vec4{1, 2, 3, 4}, f32.Vec4{-1, -2, -3, -4}, f32.Vec4{0, 0, 0, 0}},
	} {
		if got := f32.Add4D(test.a, test.b); got != test.r {
			t.Errorf("Add4D(%v, %v) = %v, want %v", test.a, test.b, got, test.r)
		}
	}
}

func TestAbsClamp(t *testing.T) {
	if got, want := f32.Abs(-3), float32(3); got != want {
		t.Errorf("Abs(-3) = %v, want %v", got, want)
	}
	if got, want := f32.Clamp(15, 0, 10), float32(10); got != want {
		t.Errorf("Clamp(15, 0, 10) = %v, want %v", got, want)
	}
	if got, want := f32.Clamp(-5, 0, 10), float32(0); got != want {
		t.Errorf("Clamp(-5, 0, 10) = %v, want %v", got, want)
	}
}
