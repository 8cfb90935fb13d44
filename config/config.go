// Package config provides the configuration lookups drivers consult while
// identifying and opening files.
//
// Options are flat string keys mapped to string values. Drivers receive a
// [Provider] instead of reading process state directly, so callers decide
// whether options come from the environment, a file, command line flags, or
// some combination.
package config

import (
	"os"
)

// Provider looks up configuration options.
//
// Get reports the value for key and whether the key is set at all. A key set
// to the empty string is present.
type Provider interface {
	Get(key string) (string, bool)
}

// GetDefault returns the value of key from p, or def if the key is unset.
func GetDefault(p Provider, key, def string) string {
	if p == nil {
		return def
	}
	if v, ok := p.Get(key); ok {
		return v
	}
	return def
}

// Has reports whether key is set in p.
func Has(p Provider, key string) bool {
	if p == nil {
		return false
	}
	_, ok := p.Get(key)
	return ok
}

// Map is a Provider backed by a map.
type Map map[string]string

// Get implements [Provider].
func (m Map) Get(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

// Env is a Provider backed by the process environment.
type Env struct{}

// Get implements [Provider].
func (Env) Get(key string) (string, bool) {
	return os.LookupEnv(key)
}

// Chain is a Provider that consults each member in order and returns the first
// hit.
type Chain []Provider

// Get implements [Provider].
func (c Chain) Get(key string) (string, bool) {
	for _, p := range c {
		if p == nil {
			continue
		}
		if v, ok := p.Get(key); ok {
			return v, true
		}
	}
	return "", false
}

var (
	_ Provider = Map(nil)
	_ Provider = Env{}
	_ Provider = Chain(nil)
)
