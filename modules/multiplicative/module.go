// Package multiplicative provides the built-in attenuation components.
package multiplicative

import (
	"math"

	"github.com/specialistvlad/xspecgo/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers every multiplicative component with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterComponent(Tbabs())
	r.RegisterComponent(Expfac())
	r.RegisterComponent(MultiplicativeConstant())
}

// crossSection1keV is the effective photoelectric cross-section at 1 keV
// in units of 1e-22 cm^2, for nh given in 1e22 cm^-2.
const crossSection1keV = 2.4

// Tbabs is interstellar absorption exp(-nh sigma(E)) with sigma(E) taken as
// a E^-8/3 power law normalised at 1 keV.
func Tbabs() *registry.Component {
	return &registry.Component{
		Name:        "Tbabs",
		Type:        registry.Multiplicative,
		Description: "Interstellar absorption with a power-law cross-section.",
		Params: []registry.Param{
			{Name: "nh", Default: 1, Unit: "1e22 cm^-2", Description: "Equivalent hydrogen column density"},
		},
		Continuum: func(p registry.Values, energies []float64) []float64 {
			nh := p["nh"]
			out := make([]float64, len(energies))
			for i, e := range energies {
				out[i] = math.Exp(-nh * crossSection1keV * math.Pow(e, -8.0/3.0))
			}
			return out
		},
	}
}

// Expfac is 1 + A exp(-factor E) above start and 1 below it.
func Expfac() *registry.Component {
	return &registry.Component{
		Name:        "Expfac",
		Type:        registry.Multiplicative,
		Description: "An exponential modification of the spectrum above a start energy.",
		Params: []registry.Param{
			{Name: "A", Default: 1, Description: "Amplitude"},
			{Name: "factor", Default: 1, Unit: "1/keV", Description: "Exponential factor"},
			{Name: "start", Default: 1, Unit: "keV", Description: "Start energy of the modification"},
		},
		Continuum: func(p registry.Values, energies []float64) []float64 {
			a, factor, start := p["A"], p["factor"], p["start"]
			out := make([]float64, len(energies))
			for i, e := range energies {
				out[i] = 1
				if e >= start {
					out[i] += a * math.Exp(-factor*e)
				}
			}
			return out
		},
	}
}

// MultiplicativeConstant scales the spectrum by K.
func MultiplicativeConstant() *registry.Component {
	return &registry.Component{
		Name:        "MultiplicativeConstant",
		Type:        registry.Multiplicative,
		Description: "A constant multiplicative factor.",
		Params: []registry.Param{
			{Name: "K", Default: 1, Description: "Factor"},
		},
		Continuum: func(p registry.Values, energies []float64) []float64 {
			out := make([]float64, len(energies))
			for i := range energies {
				out[i] = p["K"]
			}
			return out
		},
	}
}
