package flux

import "github.com/specialistvlad/xspecgo/internal/spectral"

var defaultEvaluator = New()

// PhotonFlux returns the photon flux of m in each bin using DefaultFloor.
func PhotonFlux(m *spectral.Model, params spectral.Parameters, eLow, eHigh []float64) ([]float64, error) {
	return defaultEvaluator.PhotonFlux(m, params, eLow, eHigh)
}

// EnergyFlux returns the energy flux of m in each bin using DefaultFloor.
func EnergyFlux(m *spectral.Model, params spectral.Parameters, eLow, eHigh []float64) ([]float64, error) {
	return defaultEvaluator.EnergyFlux(m, params, eLow, eHigh)
}

// Continuum evaluates the raw continuum of m at each energy, without
// integration, lines or floor.
func Continuum(m *spectral.Model, params spectral.Parameters, energies []float64) ([]float64, error) {
	rt, err := newRuntime(m, params)
	if err != nil {
		return nil, err
	}
	return rt.continuum(energies)
}
