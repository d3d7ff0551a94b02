package config

import (
	"errors"
	"fmt"
)

// Run is the unified, format-agnostic description of one flux evaluation.
type Run struct {
	// Model is the model expression, e.g. "Tbabs() * Powerlaw()".
	Model string
	// Mode is "photon" or "energy". Empty means photon.
	Mode string
	// Bins describes a generated grid. At most one of Bins and Edges is set.
	Bins  *Bins
	Edges []float64
	// Parameters override initial values, keyed by component display name
	// and then parameter name.
	Parameters map[string]map[string]float64
	// Sources lists the files the run was read from.
	Sources []string
}

// Bins describes a generated energy grid in keV.
type Bins struct {
	Low     float64
	High    float64
	Count   int
	Spacing string
}

var (
	// ErrInvalidRun is returned when a run configuration is incomplete or
	// contradicts itself.
	ErrInvalidRun = errors.New("invalid run configuration")
)

// Validate reports the first structural problem of r.
func (r *Run) Validate() error {
	if r.Model == "" {
		return fmt.Errorf("%w: no model expression", ErrInvalidRun)
	}
	switch r.Mode {
	case "", "photon", "energy":
	default:
		return fmt.Errorf("%w: mode must be 'photon' or 'energy', got %q", ErrInvalidRun, r.Mode)
	}
	if r.Bins != nil && len(r.Edges) > 0 {
		return fmt.Errorf("%w: bins and edges are mutually exclusive", ErrInvalidRun)
	}
	return nil
}

// SetParameter records an override, rejecting a second value for the same
// parameter.
func (r *Run) SetParameter(component, param string, v float64) error {
	if r.Parameters == nil {
		r.Parameters = make(map[string]map[string]float64)
	}
	values, ok := r.Parameters[component]
	if !ok {
		values = make(map[string]float64)
		r.Parameters[component] = values
	}
	if _, dup := values[param]; dup {
		return fmt.Errorf("%w: parameter %s.%s is set more than once", ErrInvalidRun, component, param)
	}
	values[param] = v
	return nil
}
