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

import "time"

// Value is a single key/value pair attached to a Message by With/V.
type Value struct {
	Key   string
	Value interface{}
}

// Message is the fully resolved record passed to a Handler.
type Message struct {
	Severity Severity
	Text     string
	Tag      string
	Time     time.Time
	Values   []Value
	Cause    error
}
