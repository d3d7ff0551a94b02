package registry

import (
	"fmt"
	"strings"
)

// Type tells the graph how a component is combined into a model.
type Type int

const (
	// InvalidType is the zero value and is rejected at model construction.
	InvalidType Type = iota
	// Additive components are source emission terms.
	Additive
	// Multiplicative components are attenuation terms.
	Multiplicative
)

// String returns the lower-case name of the type.
func (t Type) String() string {
	switch t {
	case Additive:
		return "additive"
	case Multiplicative:
		return "multiplicative"
	default:
		return fmt.Sprintf("invalid(%d)", int(t))
	}
}

// Valid reports whether t is one of the known component types.
func (t Type) Valid() bool {
	return t == Additive || t == Multiplicative
}

// Values holds the parameter values of one component instance, keyed by
// parameter name.
type Values map[string]float64

// ContinuumFunc evaluates the smooth part of a component at each energy
// (keV). It must return a new slice of the same length.
type ContinuumFunc func(p Values, energies []float64) []float64

// FineStructureFunc returns the analytic line flux over each bin together
// with the energy that represents the bin for multiplicative scaling.
type FineStructureFunc func(p Values, eLow, eHigh []float64) (flux, mean []float64)

// Param describes a single named scalar parameter and its initial value.
type Param struct {
	Name        string
	Default     float64
	Unit        string
	Description string
}

// Component is the immutable definition of an atomic spectral function.
type Component struct {
	// Name is the kind name as written in expressions, e.g. "Powerlaw".
	Name        string
	Type        Type
	Description string
	Params      []Param

	Continuum     ContinuumFunc
	FineStructure FineStructureFunc
}

// Kind returns the lower-cased component name used as the namespace prefix.
func (c *Component) Kind() string {
	return strings.ToLower(c.Name)
}

// HasFineStructure reports whether the component declares analytic lines.
func (c *Component) HasFineStructure() bool {
	return c.FineStructure != nil
}

// Param returns the declared parameter with the given name.
func (c *Component) Param(name string) (Param, bool) {
	for _, p := range c.Params {
		if p.Name == name {
			return p, true
		}
	}
	return Param{}, false
}

// Defaults returns a fresh map of every declared parameter at its default.
func (c *Component) Defaults() Values {
	v := make(Values, len(c.Params))
	for _, p := range c.Params {
		v[p.Name] = p.Default
	}
	return v
}

// Evaluate computes the continuum of c at the given energies without building
// a model. Overrides replace defaults; unknown names are rejected.
func (c *Component) Evaluate(overrides Values, energies []float64) ([]float64, error) {
	values, err := c.bind(overrides)
	if err != nil {
		return nil, err
	}
	return c.Continuum(values, energies), nil
}

// EvaluateLines computes the fine structure of c over the given bins without
// building a model. Components without lines return zero flux and the bin
// centres.
func (c *Component) EvaluateLines(overrides Values, eLow, eHigh []float64) (flux, mean []float64, err error) {
	values, err := c.bind(overrides)
	if err != nil {
		return nil, nil, err
	}
	if c.FineStructure == nil {
		flux = make([]float64, len(eLow))
		mean = make([]float64, len(eLow))
		for i := range eLow {
			mean[i] = (eLow[i] + eHigh[i]) / 2
		}
		return flux, mean, nil
	}
	flux, mean = c.FineStructure(values, eLow, eHigh)
	return flux, mean, nil
}

func (c *Component) bind(overrides Values) (Values, error) {
	values := c.Defaults()
	for name, v := range overrides {
		if _, ok := values[name]; !ok {
			return nil, fmt.Errorf("component %s has no parameter %q", c.Name, name)
		}
		values[name] = v
	}
	return values, nil
}
