// Package test holds helpers for tests in this module.
package test

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/geoprobe/geoprobe/internal/log"
)

// Setup installs the dispatching handler as the default exactly once.
var setup = sync.OnceFunc(func() {
	slog.SetDefault(slog.New(dispatch(nil)))
})

type ctxKey struct{}

var handlerKey ctxKey

// Dispatch implements [slog.Handler] by looking up the "real" handler in the
// [context.Context] passed to Enabled and Handle. WithAttrs and WithGroup calls
// are recorded and replayed against the found handler.
//
// Records logged with a Context that carries no handler are dropped.
type dispatch []func(slog.Handler) slog.Handler

func (d dispatch) lookup(ctx context.Context) (slog.Handler, bool) {
	if ctx == nil {
		return nil, false
	}
	h, ok := ctx.Value(handlerKey).(slog.Handler)
	return h, ok
}

// Enabled implements [slog.Handler].
func (d dispatch) Enabled(ctx context.Context, l slog.Level) bool {
	h, ok := d.lookup(ctx)
	return ok && h.Enabled(ctx, l)
}

// Handle implements [slog.Handler].
func (d dispatch) Handle(ctx context.Context, r slog.Record) error {
	h, ok := d.lookup(ctx)
	if !ok {
		return nil
	}
	for _, op := range d {
		h = op(h)
	}
	return h.Handle(ctx, r)
}

// WithAttrs implements [slog.Handler].
func (d dispatch) WithAttrs(attrs []slog.Attr) slog.Handler {
	return append(d[:len(d):len(d)], func(h slog.Handler) slog.Handler {
		return h.WithAttrs(attrs)
	})
}

// WithGroup implements [slog.Handler].
func (d dispatch) WithGroup(name string) slog.Handler {
	return append(d[:len(d):len(d)], func(h slog.Handler) slog.Handler {
		return h.WithGroup(name)
	})
}

// Logging returns a [context.Context] that makes the default [slog.Logger]
// write to the test's log output.
//
// Attributes added with [log.With] are included.
func Logging(t testing.TB, parent ...context.Context) context.Context {
	setup()
	ctx := context.Background()
	if len(parent) > 0 {
		ctx = parent[0]
	}
	start := time.Now()
	h := slog.NewTextHandler(&tbWriter{t: t}, &slog.HandlerOptions{
		Level: slog.LevelDebug,
		ReplaceAttr: func(g []string, a slog.Attr) slog.Attr {
			if g == nil && a.Key == slog.TimeKey {
				return slog.String(slog.TimeKey, "+"+time.Since(start).String())
			}
			return a
		},
	})
	return context.WithValue(ctx, handlerKey, log.WrapHandler(h))
}

// TbWriter sends each write to [testing.TB.Log].
type tbWriter struct {
	t testing.TB
}

func (w *tbWriter) Write(b []byte) (int, error) {
	w.t.Helper()
	w.t.Log(strings.TrimSuffix(string(b), "\n"))
	return len(b), nil
}
