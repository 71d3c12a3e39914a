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

package f32

// Vec3 is a three element vector of float32.
// The elements are in the order X, Y, Z.
type Vec3 [3]float32

// SqrMagnitude returns the squared magnitude of the vector.
func (v Vec3) SqrMagnitude() float32 {
	return v[0]*v[0] + v[1]*v[1] + v[2]*v[2]
}

// Magnitude returns the magnitude of the vector.
func (v Vec3) Magnitude() float32 {
	return Sqrt(v.SqrMagnitude())
}

// Scale returns the element-wise scaling of v with s.
func (v Vec3) Scale(s float32) Vec3 {
	return Vec3{v[0] * s, v[1] * s, v[2] * s}
}

// Normalize returns the normalized vector of v. The zero vector normalizes
// to itself rather than a vector of NaNs.
func (v Vec3) Normalize() Vec3 {
	m := v.Magnitude()
	if m == 0 {
		return v
	}
	return v.Scale(1.0 / m)
}

// W returns a Vec4 with the first three elements set to v and the fourth
// set to w.
func (v Vec3) W(w float32) Vec4 {
	return Vec4{v[0], v[1], v[2], w}
}

// Add returns the element-wise addition of v and o.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v[0] + o[0], v[1] + o[1], v[2] + o[2]}
}

// Sub returns the element-wise subtraction of o from v.
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v[0] - o[0], v[1] - o[1], v[2] - o[2]}
}

// Dot returns the dot product of v and o.
func (v Vec3) Dot(o Vec3) float32 {
	return v[0]*o[0] + v[1]*o[1] + v[2]*o[2]
}

// Cross returns the cross product of v and o.
func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		v[1]*o[2] - v[2]*o[1],
		v[2]*o[0] - v[0]*o[2],
		v[0]*o[1] - v[1]*o[0],
	}
}

// Neg returns the element-wise negation of v.
func (v Vec3) Neg() Vec3 {
	return Vec3{-v[0], -v[1], -v[2]}
}

// Min returns the element-wise minimum of v and o.
func (v Vec3) Min(o Vec3) Vec3 {
	return Vec3{MinOf(v[0], o[0]), MinOf(v[1], o[1]), MinOf(v[2], o[2])}
}

// Max returns the element-wise maximum of v and o.
func (v Vec3) Max(o Vec3) Vec3 {
	return Vec3{MaxOf(v[0], o[0]), MaxOf(v[1], o[1]), MaxOf(v[2], o[2])}
}

// Lerp linearly interpolates between v and o by t in [0,1].
func (v Vec3) Lerp(o Vec3, t float32) Vec3 {
	return v.Add(o.Sub(v).Scale(t))
}

// Add3D returns the element-wise addition of vector a and b.
func Add3D(a, b Vec3) Vec3 { return a.Add(b) }

// Sub3D returns the element-wise subtraction of vector b from a.
func Sub3D(a, b Vec3) Vec3 { return a.Sub(b) }

// Cross3D returns the cross product of vector a and b.
func Cross3D(a, b Vec3) Vec3 { return a.Cross(b) }

// Dot3D returns the dot product of vector a and b.
func Dot3D(a, b Vec3) float32 { return a.Dot(b) }
