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

// Package f32 provides float32 vector and scalar math used by the geometry
// kernel: plane normals, winding vertices, and texinfo axes are all Vec3s
// built on this package.
package f32

import "math"

// Sqrt returns the square root of v.
func Sqrt(v float32) float32 { return float32(math.Sqrt(float64(v))) }

// Abs returns the absolute value of v.
func Abs(v float32) float32 { return float32(math.Abs(float64(v))) }

// MinOf returns the minimum value of all the arguments.
func MinOf(a float32, b ...float32) float32 {
	v := a
	for _, x := range b {
		if x < v {
			v = x
		}
	}
	return v
}

// MaxOf returns the maximum value of all the arguments.
func MaxOf(a float32, b ...float32) float32 {
	v := a
	for _, x := range b {
		if x > v {
			v = x
		}
	}
	return v
}

// Clamp restricts v to the inclusive range [min, max].
func Clamp(v, min, max float32) float32 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
