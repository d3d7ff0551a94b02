package registry

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
)

// ErrUnknownComponent is returned when a kind name is not registered.
var ErrUnknownComponent = errors.New("unknown component")

// Module is the interface that all component modules must implement to be registered.
type Module interface {
	Register(r *Registry)
}

// Registry holds all the registered components for a single application instance.
type Registry struct {
	mu         sync.RWMutex
	components map[string]*Component
}

// New creates and initializes a new Registry instance.
func New() *Registry {
	return &Registry{
		components: make(map[string]*Component),
	}
}

// NewWithModules creates a registry and lets every module register into it.
func NewWithModules(modules ...Module) *Registry {
	r := New()
	for _, m := range modules {
		m.Register(r)
	}
	return r
}

// RegisterComponent adds a component under its Name. Registering the same
// name twice, or a component without a continuum, is a programmer error.
func (r *Registry) RegisterComponent(c *Component) {
	if c == nil || c.Name == "" {
		panic("component must have a name")
	}
	if c.Continuum == nil {
		panic(fmt.Sprintf("component '%s' has no continuum function", c.Name))
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.components[c.Name]; exists {
		panic(fmt.Sprintf("component with name '%s' already registered", c.Name))
	}
	slog.Debug("Registering component.", "name", c.Name, "type", c.Type.String(), "params", len(c.Params))
	r.components[c.Name] = c
}

// Lookup returns the component registered under name.
func (r *Registry) Lookup(name string) (*Component, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.components[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownComponent, name)
	}
	return c, nil
}

// Has reports whether a component is registered under name.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.components[name]
	return ok
}

// Names returns the sorted list of registered kind names.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.components))
	for name := range r.components {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
