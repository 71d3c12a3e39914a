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

package fault

import (
	"fmt"

	"github.com/pkg/errors"
)

// Error is a structured, kinded error. It conforms to the error interface
// and to the Cause() interface github.com/pkg/errors uses for unwrapping.
type Error struct {
	kind   Kind
	msg    string
	cause  error
	detail []Detail
}

// Detail is a single named field attached to an Error, e.g. the face
// number and plane id a GeometryOverflow occurred at.
type Detail struct {
	Key   string
	Value interface{}
}

// New returns a new Error of the given kind wrapping cause, which may be
// nil for a freshly originated error.
func New(kind Kind, cause error, format string, args ...interface{}) *Error {
	e := &Error{kind: kind, msg: fmt.Sprintf(format, args...), cause: cause}
	if cause != nil {
		e.cause = errors.WithStack(cause)
	}
	return e
}

// With attaches a structured detail field and returns e for chaining.
func (e *Error) With(key string, value interface{}) *Error {
	e.detail = append(e.detail, Detail{Key: key, Value: value})
	return e
}

// Kind returns the error's classification.
func (e *Error) Kind() Kind { return e.kind }

// Cause implements the github.com/pkg/errors Causer interface.
func (e *Error) Cause() error { return e.cause }

// Unwrap implements the standard library's errors.Unwrap protocol.
func (e *Error) Unwrap() error { return e.cause }

func (e *Error) Error() string {
	s := fmt.Sprintf("%s: %s", e.kind, e.msg)
	for _, d := range e.detail {
		s += fmt.Sprintf(" %s=%v", d.Key, d.Value)
	}
	if e.cause != nil {
		s += fmt.Sprintf(": %v", e.cause)
	}
	return s
}

// Is reports whether err is a *Error of the given kind, looking through any
// wrapping the standard errors package understands.
func Is(err error, kind Kind) bool {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.kind == kind
	}
	return false
}

// KindOf returns the Kind of err if it is a *Error, or Unknown otherwise.
func KindOf(err error) Kind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.kind
	}
	return Unknown
}
