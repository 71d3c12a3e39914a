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

import "context"

// Err logs err at Error severity with the given message and returns err
// unchanged, so call sites can write `return log.Err(ctx, err, "doing X")`.
func Err(ctx context.Context, err error, message string) error {
	if err == nil {
		return nil
	}
	E(ctx).Cause(err).Log(message)
	return err
}

// Errf is like Err but accepts a format string.
func Errf(ctx context.Context, err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	E(ctx).Cause(err).Log(format, args...)
	return err
}
