// Package log carries logging attributes on a [context.Context] for the
// default [slog.Logger].
//
// Packages in this module log with the package-level [slog] functions and a
// Context; callers that want attributes attached to every record for the
// duration of an operation use [With], and install [WrapHandler] around their
// handler to have them emitted.
package log

import (
	"context"
	"log/slog"
	"slices"
)

type ctxkey struct{}

// AttrsKey is the [context.Context] key for the attributes added by [With].
//
// The value is a [slog.Value] of kind "Group".
var attrsKey ctxkey

// With returns a context with the key/value arguments recorded for logging.
//
// Later values for the same key replace earlier ones.
func With(ctx context.Context, args ...any) context.Context {
	attrs := slog.Group("", args...).Value.Group()
	if v, ok := ctx.Value(attrsKey).(slog.Value); ok {
		attrs = append(v.Group(), attrs...)
	}
	seen := make(map[string]struct{}, len(attrs))
	slices.Reverse(attrs)
	attrs = slices.DeleteFunc(attrs, func(a slog.Attr) bool {
		_, dup := seen[a.Key]
		seen[a.Key] = struct{}{}
		return dup
	})
	slices.Reverse(attrs)
	return context.WithValue(ctx, attrsKey, slog.GroupValue(attrs...))
}

// Attrs reports the attributes recorded on the context.
func Attrs(ctx context.Context) []slog.Attr {
	v, ok := ctx.Value(attrsKey).(slog.Value)
	if !ok {
		return nil
	}
	return v.Group()
}

// WrapHandler wraps the provided handler so that attributes recorded with
// [With] are added to every record.
func WrapHandler(next slog.Handler) slog.Handler {
	return handler{next: next}
}

var _ slog.Handler = handler{}

type handler struct {
	next slog.Handler
}

// Enabled implements [slog.Handler].
func (h handler) Enabled(ctx context.Context, l slog.Level) bool {
	return h.next.Enabled(ctx, l)
}

// Handle implements [slog.Handler].
func (h handler) Handle(ctx context.Context, r slog.Record) error {
	if as := Attrs(ctx); len(as) != 0 {
		r = r.Clone()
		r.AddAttrs(as...)
	}
	return h.next.Handle(ctx, r)
}

// WithAttrs implements [slog.Handler].
func (h handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return handler{next: h.next.WithAttrs(attrs)}
}

// WithGroup implements [slog.Handler].
func (h handler) WithGroup(name string) slog.Handler {
	return handler{next: h.next.WithGroup(name)}
}
