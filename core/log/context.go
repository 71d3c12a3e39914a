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
	"time"
)

type contextKeyType string

const (
	handlerKey contextKeyType = "log.handler"
	filterKey  contextKeyType = "log.filter"
	tagKey     contextKeyType = "log.tag"
	valuesKey  contextKeyType = "log.values"
)

// Filter reports whether a message at the given severity should be handled.
type Filter func(Severity) bool

// NewContext returns parent unchanged. A context with no Handler or Filter
// bound already logs to stderr at Info and above.
func NewContext(parent context.Context) context.Context {
	return parent
}

// Bind installs handler as the Handler used by Logger calls derived from ctx.
func Bind(ctx context.Context, h Handler) context.Context {
	return context.WithValue(ctx, handlerKey, h)
}

// BindFilter installs f as the minimum-severity gate for ctx.
func BindFilter(ctx context.Context, f Filter) context.Context {
	return context.WithValue(ctx, filterKey, f)
}

// Tag returns a context with tag attached to every Message logged from it.
func Tag(ctx context.Context, tag string) context.Context {
	return context.WithValue(ctx, tagKey, tag)
}

// V is a list of key/value pairs that can be bound onto a context with Bind
// and are copied onto every Message logged from the resulting context.
type V map[string]interface{}

// Bind returns a context carrying v in addition to any values already bound.
func (v V) Bind(ctx context.Context) context.Context {
	merged := append([]Value{}, valuesFrom(ctx)...)
	for k, val := range v {
		merged = append(merged, Value{Key: k, Value: val})
	}
	return context.WithValue(ctx, valuesKey, merged)
}

func valuesFrom(ctx context.Context) []Value {
	if v, ok := ctx.Value(valuesKey).([]Value); ok {
		return v
	}
	return nil
}

func handlerFrom(ctx context.Context) Handler {
	if h, ok := ctx.Value(handlerKey).(Handler); ok {
		return h
	}
	return ToWriter(stderr)
}

func filterFrom(ctx context.Context) Filter {
	if f, ok := ctx.Value(filterKey).(Filter); ok {
		return f
	}
	return func(s Severity) bool { return s >= Info }
}

func tagFrom(ctx context.Context) string {
	if t, ok := ctx.Value(tagKey).(string); ok {
		return t
	}
	return ""
}

// Logger accumulates a Message for a single logging statement.
type Logger struct {
	ctx      context.Context
	severity Severity
	active   bool
	values   []Value
	cause    error
}

// At constructs a Logger at the given severity, inactive if the context's
// Filter rejects that severity.
func At(ctx context.Context, s Severity) Logger {
	return Logger{
		ctx:      ctx,
		severity: s,
		active:   filterFrom(ctx)(s),
		values:   valuesFrom(ctx),
	}
}

func from(ctx context.Context, s Severity) Logger { return At(ctx, s) }

// From returns the ambient Logger at Info severity, for call sites that only
// have a plain context.Context and want the package-level helpers below.
func From(ctx context.Context) Logger { return At(ctx, Info) }

func (l Logger) with(k string, v interface{}) Logger {
	if !l.active {
		return l
	}
	l.values = append(append([]Value{}, l.values...), Value{Key: k, Value: v})
	return l
}

// With attaches a key/value pair to the message.
func (l Logger) With(k string, v interface{}) Logger { return l.with(k, v) }

// Cause attaches an underlying error to the message.
func (l Logger) Cause(err error) Logger {
	l.cause = err
	return l
}

// Log emits the message, formatted with fmt.Sprintf(format, args...).
func (l Logger) Log(format string, args ...interface{}) {
	if !l.active {
		return
	}
	handlerFrom(l.ctx).Handle(Message{
		Severity: l.severity,
		Text:     sprintf(format, args...),
		Tag:      tagFrom(l.ctx),
		Time:     time.Now(),
		Values:   l.values,
		Cause:    l.cause,
	})
}
