package additive

import (
	"math"

	"github.com/specialistvlad/xspecgo/internal/registry"
)

// Powerlaw is K E^-alpha.
func Powerlaw() *registry.Component {
	return &registry.Component{
		Name:        "Powerlaw",
		Type:        registry.Additive,
		Description: "A power law model.",
		Params: []registry.Param{
			{Name: "alpha", Default: 1.3, Description: "Photon index of the power law"},
			{Name: "norm", Default: 1e-4, Unit: "photons/cm^2/s", Description: "Normalization"},
		},
		Continuum: func(p registry.Values, energies []float64) []float64 {
			alpha, norm := p["alpha"], p["norm"]
			out := make([]float64, len(energies))
			for i, e := range energies {
				out[i] = norm * math.Pow(e, -alpha)
			}
			return out
		},
	}
}

// AdditiveConstant is a flat spectrum K.
func AdditiveConstant() *registry.Component {
	return &registry.Component{
		Name:        "AdditiveConstant",
		Type:        registry.Additive,
		Description: "A constant model.",
		Params: []registry.Param{
			{Name: "norm", Default: 1, Unit: "photons/cm^2/s", Description: "Normalization"},
		},
		Continuum: func(p registry.Values, energies []float64) []float64 {
			out := make([]float64, len(energies))
			for i := range energies {
				out[i] = p["norm"]
			}
			return out
		},
	}
}

// Logparabola is K (E/1keV)^-(a + b log E), with the pivot fixed at 1 keV.
func Logparabola() *registry.Component {
	return &registry.Component{
		Name:        "Logparabola",
		Type:        registry.Additive,
		Description: "A LogParabola model with the pivot energy fixed at 1 keV.",
		Params: []registry.Param{
			{Name: "a", Default: 11.0 / 3.0, Description: "Slope at the pivot energy"},
			{Name: "b", Default: 0.2, Description: "Curvature"},
			{Name: "norm", Default: 1, Unit: "photons/cm^2/s", Description: "Normalization at the pivot energy"},
		},
		Continuum: func(p registry.Values, energies []float64) []float64 {
			a, b, norm := p["a"], p["b"], p["norm"]
			out := make([]float64, len(energies))
			for i, e := range energies {
				out[i] = norm * math.Pow(e, -(a+b*math.Log(e)))
			}
			return out
		},
	}
}

// blackbodyConstant converts L39/D10^2 into photons/cm^2/s/keV.
const blackbodyConstant = 8.0525

// Blackbody is K 8.0525 E^2 / ((kT)^4 (exp(E/kT) - 1)).
func Blackbody() *registry.Component {
	return &registry.Component{
		Name:        "Blackbody",
		Type:        registry.Additive,
		Description: "A black body model.",
		Params: []registry.Param{
			{Name: "kT", Default: 11.0 / 3.0, Unit: "keV", Description: "Temperature"},
			{Name: "norm", Default: 1, Description: "L39/D10^2"},
		},
		Continuum: func(p registry.Values, energies []float64) []float64 {
			kT, norm := p["kT"], p["norm"]
			out := make([]float64, len(energies))
			for i, e := range energies {
				out[i] = norm * blackbodyConstant * e * e / (math.Pow(kT, 4) * math.Expm1(e/kT))
			}
			return out
		},
	}
}
