package nas

import (
	"bytes"
	"context"
	"log/slog"

	"github.com/geoprobe/geoprobe"
	"github.com/geoprobe/geoprobe/config"
	"github.com/geoprobe/geoprobe/driver"
	"github.com/geoprobe/geoprobe/stream"
)

var bom = []byte{0xEF, 0xBB, 0xBF}

// QuickCheck reports whether the header could be the start of an XML
// document: after an optional UTF-8 byte order mark and any ASCII whitespace,
// the next byte must be '<'.
func quickCheck(header []byte) bool {
	i := 0
	if bytes.HasPrefix(header, bom) {
		i = len(bom)
	}
	for i < len(header) && isSpace(header[i]) {
		i++
	}
	return i < len(header) && header[i] == '<'
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

// Identify implements [driver.IdentifyFunc].
func (d *Driver) Identify(ctx context.Context, info *driver.OpenInfo) geoprobe.Verdict {
	v, r := d.identify(ctx, info)
	identifyCounter.WithLabelValues(v.String(), string(r)).Inc()
	return v
}

func (d *Driver) identify(ctx context.Context, info *driver.OpenInfo) (geoprobe.Verdict, reason) {
	if info.Stream == nil {
		return geoprobe.Reject, reasonNoStream
	}
	if !quickCheck(info.Stream.Header()) {
		return geoprobe.Reject, reasonNotXML
	}
	if info.IsSingleAllowedDriver(DriverName) {
		return geoprobe.ForceAccept, reasonPinned
	}
	return d.deepCheck(ctx, info.Stream)
}

// DeepCheck looks for content evidence in a grown prefix.
//
// Ingest invalidates any earlier view of the header, so the buffer is only
// fetched after it. The evidence window is IngestSize bytes even if another
// driver already grew the shared stream further.
func (d *Driver) deepCheck(ctx context.Context, s stream.Handle) (geoprobe.Verdict, reason) {
	if !s.Ingest(IngestSize) {
		return geoprobe.Reject, reasonIngest
	}
	buf := s.Header()
	buf = buf[:min(len(buf), IngestSize)]

	if !bytes.Contains(buf, marker) {
		return geoprobe.Reject, reasonNoMarker
	}
	ind, ok := LoadIndicators(d.Config).Find(buf)
	if !ok {
		return geoprobe.Reject, reasonNoIndicator
	}
	if !config.Has(d.Config, KeyGFSTemplate) {
		d.logger().DebugContext(ctx, "file could be recognized by the NAS driver; "+
			"define the "+KeyGFSTemplate+" configuration option to enable it",
			"file", s.Name(),
			"indicator", ind)
		return geoprobe.Reject, reasonDisabled
	}
	return geoprobe.Accept, reasonMatched
}

func (d *Driver) logger() *slog.Logger {
	if d.Logger != nil {
		return d.Logger
	}
	return slog.Default()
}
