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
	"fmt"
	"io"
	"sync"
)

// ToWriter returns a Handler that formats each Message as a single line and
// writes it to w. Writes are serialized with a mutex since w (typically
// os.Stderr) is shared across parallel-for workers.
func ToWriter(w io.Writer) Handler {
	var mu sync.Mutex
	return HandlerFunc(func(m Message) {
		mu.Lock()
		defer mu.Unlock()
		fmt.Fprintf(w, "[%s]", m.Severity.Short())
		if m.Tag != "" {
			fmt.Fprintf(w, "[%s]", m.Tag)
		}
		fmt.Fprintf(w, " %s", m.Text)
		for _, v := range m.Values {
			fmt.Fprintf(w, " %s=%v", v.Key, v.Value)
		}
		if m.Cause != nil {
			fmt.Fprintf(w, ": %v", m.Cause)
		}
		fmt.Fprintln(w)
	})
}
