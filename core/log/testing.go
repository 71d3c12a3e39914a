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
	"sync"
	"testing"
)

// Testing returns a context bound to a Handler that forwards every message
// to t.Log, so test output stays interleaved with `go test -v`'s own log.
func Testing(t *testing.T) context.Context {
	ctx := context.Background()
	ctx = Bind(ctx, HandlerFunc(func(m Message) {
		t.Logf("[%s] %s", m.Severity.Short(), m.Text)
	}))
	return BindFilter(ctx, func(Severity) bool { return true })
}

// Recorder is a Handler that stores every Message it receives, for tests
// that assert on the shape of emitted diagnostics rather than just side
// effects.
type Recorder struct {
	mu       sync.Mutex
	Messages []Message
}

// Handle implements Handler.
func (r *Recorder) Handle(m Message) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Messages = append(r.Messages, m)
}

// Count returns the number of recorded messages at or above severity s.
func (r *Recorder) Count(s Severity) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, m := range r.Messages {
		if m.Severity >= s {
			n++
		}
	}
	return n
}
