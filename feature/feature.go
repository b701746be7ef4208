// Package feature provides runtime-toggleable flags for experimental
// language constructs.
//
// A construct is either stable or gated on a [Flag]. The association is
// expressed by a [Gate] value, which is either absent (stable) or holds a
// flag whose live state is consulted on every query.
package feature

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
)

// ErrUnknownFeature is returned when enabling a flag that was never
// registered.
var ErrUnknownFeature = errors.New("feature: unknown feature")

// Flag reports whether an experimental feature is currently enabled.
type Flag interface {
	Name() string
	Enabled() bool
}

// Feature is a named flag with an atomically updated state.
type Feature struct {
	name        string
	description string
	enabled     atomic.Bool
}

// Name returns the flag name used on the command line and in config files.
func (f *Feature) Name() string { return f.name }

// Description returns a one-line description.
func (f *Feature) Description() string { return f.description }

// Enabled reports the current state.
func (f *Feature) Enabled() bool { return f.enabled.Load() }

// SetEnabled changes the state. Modules gated on f observe the change on
// their next query.
func (f *Feature) SetEnabled(on bool) { f.enabled.Store(on) }

// String returns the feature name.
func (f *Feature) String() string { return f.name }

// Gate is an optional association between a construct and a Flag.
// The zero value is a stable (ungated) gate.
type Gate struct {
	flag    Flag
	present bool
}

// Stable returns a gate with no flag.
func Stable() Gate {
	return Gate{}
}

// Experimental returns a gate bound to f. It panics if f is nil.
func Experimental(f Flag) Gate {
	if f == nil {
		panic("feature: Experimental called with nil flag")
	}
	return Gate{flag: f, present: true}
}

// Flag returns the associated flag, if any.
func (g Gate) Flag() (Flag, bool) {
	return g.flag, g.present
}

// IsExperimental reports whether a flag is associated.
func (g Gate) IsExperimental() bool {
	return g.present
}

// IsEnabled reports whether the gated construct may be used: always for a
// stable gate, otherwise whatever the flag currently says.
func (g Gate) IsEnabled() bool {
	if !g.present {
		return true
	}
	return g.flag.Enabled()
}

// Set is a registry of features. It is safe for concurrent use.
type Set struct {
	mu       sync.RWMutex
	features map[string]*Feature
}

// NewSet creates an empty registry.
func NewSet() *Set {
	return &Set{features: make(map[string]*Feature)}
}

// Register adds a disabled feature. Registering an existing name returns
// the feature already registered.
func (s *Set) Register(name, description string) *Feature {
	s.mu.Lock()
	defer s.mu.Unlock()
	if f, ok := s.features[name]; ok {
		return f
	}
	f := &Feature{name: name, description: description}
	s.features[name] = f
	return f
}

// Lookup returns the feature registered under name.
func (s *Set) Lookup(name string) (*Feature, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	f, ok := s.features[name]
	return f, ok
}

// Enabled reports whether the named feature exists and is enabled.
func (s *Set) Enabled(name string) bool {
	f, ok := s.Lookup(name)
	return ok && f.Enabled()
}

// Enable turns on the named features.
func (s *Set) Enable(names ...string) error {
	for _, name := range names {
		f, ok := s.Lookup(name)
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnknownFeature, name)
		}
		f.SetEnabled(true)
	}
	return nil
}

// EnableAll turns on every registered feature.
func (s *Set) EnableAll() {
	for _, f := range s.Features() {
		f.SetEnabled(true)
	}
}

// Features returns all registered features sorted by name.
func (s *Set) Features() []*Feature {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Feature, 0, len(s.features))
	for _, f := range s.features {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].name < out[j].name })
	return out
}
