package hcl

import "github.com/hashicorp/hcl/v2"

// fileRoot is the set of top-level attributes and blocks a run file may
// contain.
type fileRoot struct {
	Model      *string            `hcl:"model,optional"`
	Mode       *string            `hcl:"mode,optional"`
	Edges      []float64          `hcl:"edges,optional"`
	Bins       *binsBlock         `hcl:"bins,block"`
	Parameters []*parametersBlock `hcl:"parameters,block"`
}

// binsBlock represents a `bins` block describing a generated grid.
type binsBlock struct {
	Low     float64 `hcl:"low"`
	High    float64 `hcl:"high"`
	Count   int     `hcl:"count"`
	Spacing *string `hcl:"spacing,optional"`
}

// parametersBlock represents a `parameters "<display_name>"` block whose
// attributes are parameter overrides.
type parametersBlock struct {
	Component string   `hcl:"component,label"`
	Body      hcl.Body `hcl:",remain"`
}
