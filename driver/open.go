package driver

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/geoprobe/geoprobe"
	"github.com/geoprobe/geoprobe/internal/log"
	"github.com/geoprobe/geoprobe/stream"
)

// Open offers the named file to each candidate driver and returns the first
// dataset produced.
//
// A driver answering "not mine" passes the input on to the next one. An error
// from a driver ends the attempt: the driver already committed to the input.
// If no driver claims the file, the returned error wraps [ErrNoDriver].
func (c *Catalog) Open(ctx context.Context, filename string, opts *Options) (geoprobe.Dataset, error) {
	ctx = log.With(ctx, "attempt", uuid.NewString(), "file", filename)
	ctx, span := tracer.Start(ctx, "Catalog.Open",
		trace.WithAttributes(attribute.String("geoprobe.file", filename)))
	defer span.End()

	info, err := c.openInfo(ctx, filename, opts)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "open failed")
		return nil, err
	}
	defer info.Stream.Close()

	for _, d := range c.candidates(info) {
		ds, err := d.Open(ctx, info)
		if err != nil {
			span.SetAttributes(attribute.String("geoprobe.driver", d.Name))
			span.RecordError(err)
			span.SetStatus(codes.Error, "driver open failed")
			return nil, fmt.Errorf("driver: %s: %w", d.Name, err)
		}
		if ds != nil {
			span.SetAttributes(attribute.String("geoprobe.driver", d.Name))
			slog.DebugContext(ctx, "opened", "driver", d.Name)
			return ds, nil
		}
		slog.DebugContext(ctx, "not claimed", "driver", d.Name)
	}
	span.SetStatus(codes.Error, "no driver")
	return nil, fmt.Errorf("driver: %s: %w", filename, ErrNoDriver)
}

// Identify reports the name of the first candidate driver that recognizes the
// named file, along with its verdict. If no driver does, the name is empty and
// the verdict is [geoprobe.Reject]; that's not an error.
func (c *Catalog) Identify(ctx context.Context, filename string, opts *Options) (string, geoprobe.Verdict, error) {
	ctx = log.With(ctx, "attempt", uuid.NewString(), "file", filename)
	ctx, span := tracer.Start(ctx, "Catalog.Identify",
		trace.WithAttributes(attribute.String("geoprobe.file", filename)))
	defer span.End()

	info, err := c.openInfo(ctx, filename, opts)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "open failed")
		return "", geoprobe.Reject, err
	}
	defer info.Stream.Close()

	for _, d := range c.candidates(info) {
		if v := d.Identify(ctx, info); v.Matched() {
			span.SetAttributes(
				attribute.String("geoprobe.driver", d.Name),
				attribute.String("geoprobe.verdict", v.String()),
			)
			return d.Name, v, nil
		}
	}
	return "", geoprobe.Reject, nil
}

func (c *Catalog) openInfo(ctx context.Context, filename string, opts *Options) (*OpenInfo, error) {
	if opts == nil {
		opts = new(Options)
	}
	s, err := stream.Open(ctx, filename)
	if err != nil {
		return nil, &geoprobe.Error{
			Op:    "driver.Open",
			Kind:  geoprobe.ErrPrecondition,
			Inner: err,
		}
	}
	return &OpenInfo{
		Filename:       filename,
		Access:         opts.Access,
		AllowedDrivers: opts.AllowedDrivers,
		Stream:         s,
	}, nil
}
