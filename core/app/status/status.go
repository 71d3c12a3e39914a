// Copyright (C) 2018 Google Inc.
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

// Package status reports the progress of the compile pipeline's phases
// (BrushModel, CSG, TreeBuilder, ...), trimmed to what a batch CLI tool
// needs: named phases with a start time and a final count of errors/
// warnings, printed as the single summary line spec.md §7 requires ("tools
// print a final errors/warnings summary line").
package status

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/mapkit/qbsp/core/log"
)

// Task represents one phase of the pipeline (csg, tree, portals, ...).
type Task struct {
	name    string
	begun   time.Time
	errors  int64
	warns   int64
	mutex   sync.Mutex
	entries []string
}

// Start begins a named phase and logs it at Info severity.
func Start(ctx context.Context, name string) *Task {
	log.I(ctx).Log("%s: starting", name)
	return &Task{name: name, begun: time.Now()}
}

// Warnf records and logs a recoverable anomaly (degenerate face, collapsed
// edge, unused plane, ...) without aborting the phase.
func (t *Task) Warnf(ctx context.Context, format string, args ...interface{}) {
	atomic.AddInt64(&t.warns, 1)
	log.W(ctx).Log(format, args...)
	t.record(fmt.Sprintf(format, args...))
}

// Errorf records a fatal-adjacent anomaly that is still being counted rather
// than aborting immediately (e.g. ContentConflict resolved by "later wins").
func (t *Task) Errorf(ctx context.Context, format string, args ...interface{}) {
	atomic.AddInt64(&t.errors, 1)
	log.E(ctx).Log(format, args...)
	t.record(fmt.Sprintf(format, args...))
}

func (t *Task) record(s string) {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	t.entries = append(t.entries, s)
}

// Errors returns the number of Errorf calls made against t.
func (t *Task) Errors() int { return int(atomic.LoadInt64(&t.errors)) }

// Warnings returns the number of Warnf calls made against t.
func (t *Task) Warnings() int { return int(atomic.LoadInt64(&t.warns)) }

// Finish logs the phase's duration and error/warning counts, and returns
// them so the orchestrator can roll them into the final summary line.
func (t *Task) Finish(ctx context.Context) (errors, warnings int) {
	d := time.Since(t.begun)
	log.I(ctx).Log("%s: done in %s (%d errors, %d warnings)", t.name, d, t.Errors(), t.Warnings())
	return t.Errors(), t.Warnings()
}

// Summary is the running errors/warnings total for a whole CLI invocation.
type Summary struct {
	Errors   int
	Warnings int
}

// Add folds a finished Task's counts into s.
func (s *Summary) Add(errors, warnings int) {
	s.Errors += errors
	s.Warnings += warnings
}

// Print writes the final "errors/warnings" summary line spec.md §7 requires.
func (s *Summary) Print(ctx context.Context) {
	log.I(ctx).Log("%d errors, %d warnings", s.Errors, s.Warnings)
}
