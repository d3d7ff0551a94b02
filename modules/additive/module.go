// Package additive provides the built-in emission components: continua such
// as power laws and black bodies, and analytic emission lines.
package additive

import (
	"github.com/specialistvlad/xspecgo/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers every additive component with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterComponent(Powerlaw())
	r.RegisterComponent(AdditiveConstant())
	r.RegisterComponent(Logparabola())
	r.RegisterComponent(Blackbody())
	r.RegisterComponent(Gauss())
	r.RegisterComponent(Lorentz())
}
