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

package log

import (
	"context"
	"fmt"
	"os"
)

var stderr = os.Stderr

func sprintf(format string, args ...interface{}) string {
	if len(args) == 0 {
		return format
	}
	return fmt.Sprintf(format, args...)
}

// D is shorthand for At(ctx, Debug). Kept short for call sites that log a
// lot.
func D(ctx context.Context) Logger { return At(ctx, Debug) }

// I is shorthand for At(ctx, Info).
func I(ctx context.Context) Logger { return At(ctx, Info) }

// W is shorthand for At(ctx, Warning).
func W(ctx context.Context) Logger { return At(ctx, Warning) }

// E is shorthand for At(ctx, Error).
func E(ctx context.Context) Logger { return At(ctx, Error) }
