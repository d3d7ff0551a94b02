package spectral

import (
	"fmt"
	"sort"

	"github.com/specialistvlad/xspecgo/internal/dag"
	"github.com/specialistvlad/xspecgo/internal/paramid"
	"github.com/specialistvlad/xspecgo/internal/registry"
)

// Parameters holds parameter values keyed by component display name, then
// parameter name.
type Parameters map[string]registry.Values

// ParametersFromFlat builds Parameters from `display.param` keys.
func ParametersFromFlat(flat map[string]float64) (Parameters, error) {
	p := make(Parameters)
	for key, v := range flat {
		addr, err := paramid.Parse(key)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnknownParameter, err)
		}
		p.Set(addr, v)
	}
	return p, nil
}

// Set stores v under addr.
func (p Parameters) Set(addr paramid.Address, v float64) {
	values, ok := p[addr.Component]
	if !ok {
		values = make(registry.Values)
		p[addr.Component] = values
	}
	values[addr.Param] = v
}

// Get returns the value stored under addr.
func (p Parameters) Get(addr paramid.Address) (float64, bool) {
	v, ok := p[addr.Component][addr.Param]
	return v, ok
}

// Flatten returns the values keyed by `display.param`.
func (p Parameters) Flatten() map[string]float64 {
	flat := make(map[string]float64)
	for component, values := range p {
		for param, v := range values {
			flat[paramid.New(component, param).String()] = v
		}
	}
	return flat
}

// ComponentRef describes one component node of a model.
type ComponentRef struct {
	ID          dag.NodeID
	DisplayName string
	Kind        string
	Type        registry.Type
	Component   *registry.Component
	// Kwargs are the explicitly bound overrides.
	Kwargs registry.Values
}

// Components returns the model's component nodes in topological order.
func (m *Model) Components() []ComponentRef {
	var refs []ComponentRef
	for _, id := range m.order {
		n, _ := m.graph.Node(id)
		if n.Type != dag.ComponentNode {
			continue
		}
		kwargs := make(registry.Values, len(n.Component.Kwargs))
		for k, v := range n.Component.Kwargs {
			kwargs[k] = v
		}
		refs = append(refs, ComponentRef{
			ID:          id,
			DisplayName: n.Component.DisplayName,
			Kind:        n.Component.Kind,
			Type:        n.Component.Component.Type,
			Component:   n.Component.Component,
			Kwargs:      kwargs,
		})
	}
	return refs
}

// ParameterNames returns the address of every parameter, by component in
// topological order, then by declaration order within a component.
func (m *Model) ParameterNames() []paramid.Address {
	var names []paramid.Address
	for _, ref := range m.Components() {
		for _, p := range ref.Component.Params {
			names = append(names, paramid.New(ref.DisplayName, p.Name))
		}
	}
	return names
}

// ParameterCount returns the number of scalar parameters of the model.
func (m *Model) ParameterCount() int {
	count := 0
	for _, ref := range m.Components() {
		count += len(ref.Component.Params)
	}
	return count
}

// Params returns the initial parameter values: component defaults overridden
// by bound kwargs.
func (m *Model) Params() Parameters {
	p := make(Parameters)
	for _, ref := range m.Components() {
		values := ref.Component.Defaults()
		for k, v := range ref.Kwargs {
			values[k] = v
		}
		p[ref.DisplayName] = values
	}
	return p
}

// Bind overlays params on the initial values and returns the values of each
// component node. A display name or parameter name that does not exist in
// the model is an error wrapping ErrUnknownParameter.
func (m *Model) Bind(params Parameters) (map[dag.NodeID]registry.Values, error) {
	initial := m.Params()
	byName := make(map[string]dag.NodeID, len(initial))
	for _, ref := range m.Components() {
		byName[ref.DisplayName] = ref.ID
	}

	components := make([]string, 0, len(params))
	for name := range params {
		components = append(components, name)
	}
	sort.Strings(components)
	for _, name := range components {
		values, ok := initial[name]
		if !ok {
			return nil, fmt.Errorf("%w: model has no component %q", ErrUnknownParameter, name)
		}
		for param, v := range params[name] {
			if _, ok := values[param]; !ok {
				return nil, fmt.Errorf("%w: %s", ErrUnknownParameter, paramid.New(name, param))
			}
			values[param] = v
		}
	}

	bound := make(map[dag.NodeID]registry.Values, len(initial))
	for name, values := range initial {
		bound[byName[name]] = values
	}
	return bound, nil
}
