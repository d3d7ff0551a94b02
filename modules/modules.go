// Package modules lists the component modules compiled into the binary.
package modules

import (
	"github.com/specialistvlad/xspecgo/internal/registry"
	"github.com/specialistvlad/xspecgo/modules/additive"
	"github.com/specialistvlad/xspecgo/modules/multiplicative"
)

// Core is the definitive list of all built-in component modules.
var Core = []registry.Module{
	&additive.Module{},
	&multiplicative.Module{},
}

// NewRegistry returns a fresh registry populated with the core modules.
func NewRegistry() *registry.Registry {
	return registry.NewWithModules(Core...)
}
