package module

import (
	"sort"
	"sync"
)

// Registry owns the builtin modules of a process. Modules are registered
// once at startup and live for the lifetime of the registry; lookups hand
// out references, never copies.
type Registry struct {
	mu      sync.RWMutex
	modules map[string]AbstractModule
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{modules: make(map[string]AbstractModule)}
}

// Register adds a module under name, replacing any previous registration.
func (r *Registry) Register(name string, m AbstractModule) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.modules[name] = m
}

// Unregister removes a module. This is useful for testing.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.modules, name)
}

// Lookup returns the module registered under name.
func (r *Registry) Lookup(name string) (AbstractModule, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.modules[name]
	return m, ok
}

// IsRegistered checks if a module with the given name is registered.
func (r *Registry) IsRegistered(name string) bool {
	_, ok := r.Lookup(name)
	return ok
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.modules))
	for name := range r.modules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
