package driver

import (
	"slices"
	"strings"

	"github.com/geoprobe/geoprobe"
	"github.com/geoprobe/geoprobe/stream"
)

// OpenInfo describes one attempt to identify or open an input.
type OpenInfo struct {
	// Filename is the name the input was opened by. Drivers that construct a
	// dataset re-open the input by this name.
	Filename string
	Access   geoprobe.Access
	// AllowedDrivers restricts the drivers considered. Empty means all.
	AllowedDrivers []string
	// Stream is the prefix of the input. It's shared by every driver offered
	// the input during one attempt.
	Stream stream.Handle
}

// IsAllowedDriver reports whether the named driver may be considered.
func (o *OpenInfo) IsAllowedDriver(name string) bool {
	if len(o.AllowedDrivers) == 0 {
		return true
	}
	return slices.ContainsFunc(o.AllowedDrivers, func(n string) bool {
		return strings.EqualFold(n, name)
	})
}

// IsSingleAllowedDriver reports whether the caller pinned identification to
// exactly the named driver.
func (o *OpenInfo) IsSingleAllowedDriver(name string) bool {
	return len(o.AllowedDrivers) == 1 && strings.EqualFold(o.AllowedDrivers[0], name)
}
