package driver

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// TelemetrySchemaVersion is the OpenTelemetry "telemetry schema" version for
// this package.
const telemetrySchemaVersion = `0.1.0`

// Tracer singleton for this package.
var tracer trace.Tracer

func init() {
	tracer = otel.Tracer("github.com/geoprobe/geoprobe/driver",
		trace.WithInstrumentationVersion(telemetrySchemaVersion),
	)
}
