// Package driver is the catalog of format drivers.
//
// Drivers register a [Descriptor] once, usually from an exported Register
// function called during program initialization. Callers then hand a filename
// to [Catalog.Open] or [Catalog.Identify], which offer the input to every
// allowed driver in registration order.
package driver

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/geoprobe/geoprobe"
	"github.com/geoprobe/geoprobe/stream"
)

var (
	// ErrAlreadyRegistered is returned when a name is attempted to be
	// registered more than once.
	ErrAlreadyRegistered = errors.New("driver: name already registered")
	// ErrBadName is returned when a descriptor is malformed.
	ErrBadName = errors.New("driver: bad name")
	// ErrNoDriver is returned when no driver recognizes an input.
	ErrNoDriver = errors.New("driver: no driver recognized the input")
)

// Default is the process-wide catalog.
var Default = NewCatalog()

// Register adds the descriptor to the [Default] catalog.
func Register(d *Descriptor) error {
	return Default.Register(d)
}

// Catalog is a set of drivers keyed by case-insensitive name.
//
// A Catalog is safe for concurrent use.
type Catalog struct {
	mu     sync.RWMutex
	lookup map[string]*Descriptor
	order  []string
}

// NewCatalog returns an empty Catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		lookup: make(map[string]*Descriptor),
	}
}

// Register adds the descriptor to the catalog.
//
// Register reports an error wrapping [ErrAlreadyRegistered] if a driver with
// the same name is present; the catalog is left unchanged in that case.
func (c *Catalog) Register(d *Descriptor) error {
	switch {
	case d == nil:
		return errName("", errors.New("nil descriptor"))
	case strings.TrimSpace(d.Name) == "":
		return errName(d.Name, errors.New("empty name"))
	case d.Identify == nil || d.Open == nil:
		return errName(d.Name, errors.New("missing entry point"))
	}
	key := strings.ToLower(d.Name)
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.lookup[key]; exists {
		return errRegistered(d.Name)
	}
	c.lookup[key] = d
	c.order = append(c.order, key)
	return nil
}

// Deregister removes the named driver, reporting whether it was present.
func (c *Catalog) Deregister(name string) bool {
	key := strings.ToLower(name)
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.lookup[key]; !ok {
		return false
	}
	delete(c.lookup, key)
	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return true
}

// Lookup returns the named driver, or nil.
func (c *Catalog) Lookup(name string) *Descriptor {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lookup[strings.ToLower(name)]
}

// Names reports the registered driver names, as passed to Register, in
// registration order.
func (c *Catalog) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	ret := make([]string, len(c.order))
	for i, k := range c.order {
		ret[i] = c.lookup[k].Name
	}
	return ret
}

// Candidates returns the drivers allowed by the OpenInfo that can read its
// Stream, in registration order.
func (c *Catalog) candidates(info *OpenInfo) []*Descriptor {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var comp bool
	if info.Stream != nil {
		comp = info.Stream.Compression() != stream.None
	}
	ret := make([]*Descriptor, 0, len(c.order))
	for _, k := range c.order {
		d := c.lookup[k]
		if !info.IsAllowedDriver(d.Name) {
			continue
		}
		if comp && !d.Capabilities.Has(CapVirtualIO) {
			continue
		}
		ret = append(ret, d)
	}
	return ret
}

// Options configures an Open or Identify call.
type Options struct {
	Access geoprobe.Access
	// AllowedDrivers restricts the drivers considered. Naming exactly one
	// driver lets it accept on structure alone.
	AllowedDrivers []string
}

type regErr struct {
	name  string
	inner error
}

func errName(name string, err error) error {
	return &regErr{name: name, inner: err}
}

func errRegistered(name string) error {
	return &regErr{name: name, inner: ErrAlreadyRegistered}
}

func (e *regErr) Error() string {
	if e.inner == ErrAlreadyRegistered {
		return fmt.Sprintf("driver: name already registered: %q", e.name)
	}
	return fmt.Sprintf("driver: bad descriptor %q: %v", e.name, e.inner)
}

func (e *regErr) Is(tgt error) bool {
	return e.inner != ErrAlreadyRegistered && tgt == ErrBadName
}

func (e *regErr) Unwrap() error {
	return e.inner
}
