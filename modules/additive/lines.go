package additive

import (
	"math"

	"github.com/specialistvlad/xspecgo/internal/registry"
	"gonum.org/v1/gonum/stat/distuv"
)

var lineParams = []registry.Param{
	{Name: "E_l", Default: 1, Unit: "keV", Description: "Energy of the line"},
	{Name: "sigma", Default: 1, Unit: "keV", Description: "Width of the line"},
	{Name: "norm", Default: 1, Unit: "photons/cm^2/s", Description: "Normalization"},
}

// zeroContinuum is used by line components, whose flux is carried entirely
// by the fine structure.
func zeroContinuum(_ registry.Values, energies []float64) []float64 {
	return make([]float64, len(energies))
}

func binCentres(eLow, eHigh []float64) []float64 {
	mean := make([]float64, len(eLow))
	for i := range eLow {
		mean[i] = (eLow[i] + eHigh[i]) / 2
	}
	return mean
}

// Gauss is a Gaussian line of total flux K centred on E_l.
func Gauss() *registry.Component {
	return &registry.Component{
		Name:        "Gauss",
		Type:        registry.Additive,
		Description: "A Gaussian line profile.",
		Params:      append([]registry.Param(nil), lineParams...),
		Continuum:   zeroContinuum,
		FineStructure: func(p registry.Values, eLow, eHigh []float64) ([]float64, []float64) {
			dist := distuv.Normal{Mu: p["E_l"], Sigma: p["sigma"]}
			norm := p["norm"]
			flux := make([]float64, len(eLow))
			for i := range eLow {
				flux[i] = norm * (dist.CDF(eHigh[i]) - dist.CDF(eLow[i]))
			}
			return flux, binCentres(eLow, eHigh)
		},
	}
}

// Lorentz is a Lorentzian line with FWHM sigma centred on E_l.
func Lorentz() *registry.Component {
	return &registry.Component{
		Name:        "Lorentz",
		Type:        registry.Additive,
		Description: "A Lorentzian line profile.",
		Params:      append([]registry.Param(nil), lineParams...),
		Continuum:   zeroContinuum,
		FineStructure: func(p registry.Values, eLow, eHigh []float64) ([]float64, []float64) {
			lineEnergy, sigma, norm := p["E_l"], p["sigma"], p["norm"]
			primitive := func(e float64) float64 {
				return norm * math.Atan((e-lineEnergy)/(sigma/2)) / math.Pi
			}
			flux := make([]float64, len(eLow))
			for i := range eLow {
				flux[i] = primitive(eHigh[i]) - primitive(eLow[i])
			}
			return flux, binCentres(eLow, eHigh)
		},
	}
}
