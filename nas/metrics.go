package nas

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Reason records which step of identification decided the verdict.
type reason string

const (
	reasonNoStream    reason = "no_stream"
	reasonNotXML      reason = "not_xml"
	reasonPinned      reason = "pinned"
	reasonIngest      reason = "ingest_failed"
	reasonNoMarker    reason = "no_marker"
	reasonNoIndicator reason = "no_indicator"
	reasonDisabled    reason = "disabled"
	reasonMatched     reason = "matched"
)

var identifyCounter = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "geoprobe",
	Subsystem: "nas",
	Name:      "identify_total",
	Help:      "Identification attempts by verdict and the check that decided it.",
}, []string{"verdict", "reason"})
