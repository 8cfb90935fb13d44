package nas

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/geoprobe/geoprobe"
	"github.com/geoprobe/geoprobe/config"
	"github.com/geoprobe/geoprobe/driver"
)

// Driver identifies and opens NAS documents.
type Driver struct {
	// Config supplies the driver's options. A nil Config has no options set,
	// so the driver never accepts on content.
	Config config.Provider
	// Factory constructs datasets for accepted files.
	Factory DatasetFactory
	// Logger receives diagnostics. If nil, the default logger is used.
	Logger *slog.Logger
}

// New returns a Driver reading options from p and opening datasets with a
// [GFSFactory] using the same options.
func New(p config.Provider) *Driver {
	return &Driver{
		Config:  p,
		Factory: &GFSFactory{Config: p},
	}
}

var (
	_ driver.IdentifyFunc = (*Driver)(nil).Identify
	_ driver.OpenFunc     = (*Driver)(nil).Open
)

// Open implements [driver.OpenFunc].
//
// Files that aren't recognized, and any request for update access, get a
// "not mine" answer. Once a file is recognized, the sniffing stream is closed
// and the dataset is constructed from the filename; a failure from that point
// on is reported as an error.
func (d *Driver) Open(ctx context.Context, info *driver.OpenInfo) (geoprobe.Dataset, error) {
	if info.Access == geoprobe.AccessUpdate {
		return nil, nil
	}
	if !d.Identify(ctx, info).Matched() {
		return nil, nil
	}
	if err := info.Stream.Close(); err != nil {
		d.logger().DebugContext(ctx, "error closing sniffing stream", "reason", err)
	}

	f := d.Factory
	if f == nil {
		f = &GFSFactory{Config: d.Config}
	}
	ds, err := f.Open(ctx, info.Filename)
	var gErr *geoprobe.Error
	switch {
	case err == nil:
	case errors.As(err, &gErr):
		return nil, fmt.Errorf("nas: %w", err)
	default:
		return nil, &geoprobe.Error{
			Op:      "nas.Open",
			Kind:    geoprobe.ErrInvalid,
			Message: "unable to construct dataset",
			Inner:   err,
		}
	}
	if ds == nil {
		return nil, &geoprobe.Error{
			Op:      "nas.Open",
			Kind:    geoprobe.ErrInternal,
			Message: "factory returned no dataset",
		}
	}
	return ds, nil
}

// Descriptor returns the catalog entry for the driver.
func (d *Driver) Descriptor() *driver.Descriptor {
	return &driver.Descriptor{
		Name:         DriverName,
		LongName:     "NAS - ALKIS",
		Extension:    "xml",
		HelpTopic:    "drivers/vector/nas.html",
		SQLDialects:  []string{"OGRSQL", "SQLITE"},
		Capabilities: driver.CapVector | driver.CapVirtualIO,
		Identify:     d.Identify,
		Open:         d.Open,
	}
}

// Register adds the driver to the catalog. Registering when a driver named
// [DriverName] is already present is a no-op.
func (d *Driver) Register(c *driver.Catalog) error {
	if c.Lookup(DriverName) != nil {
		return nil
	}
	err := c.Register(d.Descriptor())
	switch {
	case errors.Is(err, nil): // OK
	case errors.Is(err, driver.ErrAlreadyRegistered): // Lost a race, skip.
	default:
		return err
	}
	return nil
}

// Register adds a driver configured from the process environment to the
// [driver.Default] catalog.
func Register() error {
	return New(config.Env{}).Register(driver.Default)
}
