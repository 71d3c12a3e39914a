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
package sint_test

import (
	"fmt"

	"github.com/mapkit/qbsp/core/math/sint"
)

func ExampleClamp() {
	for _, n := range []int{-5, 0, 3, 10, 100} {
		fmt.Printf("Clamp(%v, 0, 10): %v\n", n, sint.Clamp(n, 0, 10))
	}
	// Output:
	// Clamp(-5, 0, 10): 0
	// Clamp(0, 0, 10): 0
	// Clamp(3, 0, 10): 3
	// Clamp(10, 0, 10): 10
	// Clamp(100, 0, 10): 10
}

func ExampleNextPow2() {
	for _, n := range []int{0, 1, 2, 3, 5, 64, 65} {
		fmt.Printf("NextPow2(%v): %v\n", n, sint.NextPow2(n))
	}
	// Output:
	// NextPow2(0): 1
	// NextPow2(1): 1
	// NextPow2(2): 2
	// NextPow2(3): 4
	// NextPow2(5): 8
	// NextPow2(64): 64
	// NextPow2(65): 128
}
