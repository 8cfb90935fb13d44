package driver

import (
	"context"
	"strings"

	"github.com/geoprobe/geoprobe"
)

// Capabilities are flags advertised by a driver.
type Capabilities uint

const (
	// CapVector marks a driver that produces vector datasets.
	CapVector Capabilities = 1 << iota
	// CapVirtualIO marks a driver that can identify and open inputs read
	// through a decompression layer.
	CapVirtualIO
)

// Has reports whether all flags in f are set.
func (c Capabilities) Has(f Capabilities) bool {
	return c&f == f
}

func (c Capabilities) String() string {
	var fs []string
	if c.Has(CapVector) {
		fs = append(fs, "vector")
	}
	if c.Has(CapVirtualIO) {
		fs = append(fs, "virtualio")
	}
	return strings.Join(fs, "|")
}

// IdentifyFunc decides whether the input described by the OpenInfo is in the
// driver's format.
//
// Implementations must not close the OpenInfo's Stream.
type IdentifyFunc func(context.Context, *OpenInfo) geoprobe.Verdict

// OpenFunc opens the input described by the OpenInfo.
//
// A nil Dataset with a nil error means "not mine": the catalog offers the
// input to the next driver. Implementations may only close the OpenInfo's
// Stream when they go on to return a Dataset or an error.
type OpenFunc func(context.Context, *OpenInfo) (geoprobe.Dataset, error)

// Descriptor describes a driver and holds its entry points.
type Descriptor struct {
	_ noCopy
	// Name is the short, unique name of the driver. Lookups are
	// case-insensitive.
	Name string
	// LongName is a human-readable name.
	LongName string
	// Extension is the default file extension, without a leading dot.
	Extension string
	// HelpTopic is the path of the driver's documentation page.
	HelpTopic string
	// SQLDialects lists the SQL dialects datasets from this driver support.
	SQLDialects  []string
	Capabilities Capabilities
	Identify     IdentifyFunc
	Open         OpenFunc
}

// NoCopy is a trick to get `go vet` to complain about accidental copying.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}
