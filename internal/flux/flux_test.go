package flux_test

import (
	"math"
	"sync"
	"testing"

	"github.com/specialistvlad/xspecgo/internal/flux"
	"github.com/specialistvlad/xspecgo/internal/registry"
	"github.com/specialistvlad/xspecgo/internal/spectral"
	"github.com/specialistvlad/xspecgo/modules"
	"github.com/specialistvlad/xspecgo/modules/additive"
	"github.com/specialistvlad/xspecgo/modules/multiplicative"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var reg = modules.NewRegistry()

func mustModel(t *testing.T, expr string) *spectral.Model {
	t.Helper()
	m, err := spectral.FromString(reg, expr)
	require.NoError(t, err, expr)
	return m
}

// logTrapezoid is the reference rule: 0.5 * dlogE * (f(lo)*lo^p + f(hi)*hi^p).
func logTrapezoid(f func(float64) float64, lo, hi, p float64) float64 {
	return 0.5 * math.Log(hi/lo) * (f(lo)*math.Pow(lo, p) + f(hi)*math.Pow(hi, p))
}

func TestPhotonFlux_Powerlaw(t *testing.T) {
	m := mustModel(t, "Powerlaw(alpha=1.3, norm=1e-4)")
	eLow, eHigh := []float64{1, 2}, []float64{2, 3}

	got, err := flux.PhotonFlux(m, nil, eLow, eHigh)
	require.NoError(t, err)
	require.Len(t, got, 2)

	pl := func(e float64) float64 { return 1e-4 * math.Pow(e, -1.3) }
	analytic := func(lo, hi float64) float64 {
		return 1e-4 * (math.Pow(lo, -0.3) - math.Pow(hi, -0.3)) / 0.3
	}
	for i := range eLow {
		assert.InEpsilon(t, logTrapezoid(pl, eLow[i], eHigh[i], 1), got[i], 1e-6)
		// The single-panel rule stays within a percent of the exact integral.
		assert.InEpsilon(t, analytic(eLow[i], eHigh[i]), got[i], 1e-2)
	}
}

func TestEnergyFlux_Powerlaw(t *testing.T) {
	// E^-2 * E^2 is flat in log space, so the rule is exact.
	m := mustModel(t, "Powerlaw(alpha=2, norm=1)")
	got, err := flux.EnergyFlux(m, nil, []float64{1, 2}, []float64{2, 4})
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{math.Ln2, math.Ln2}, got, 1e-12)

	photon, err := flux.PhotonFlux(m, nil, []float64{1}, []float64{2})
	require.NoError(t, err)
	assert.InDelta(t, 0.5*math.Ln2*1.5, photon[0], 1e-12)
}

func TestFlux_Additivity(t *testing.T) {
	eLow := []float64{0.5, 1, 2, 5, 6.3}
	eHigh := []float64{1, 2, 5, 6.3, 8}

	a := mustModel(t, "Powerlaw(norm=1) + Gauss(E_l=6.4, sigma=0.2)")
	b := mustModel(t, "Tbabs(nh=0.1) * Blackbody(kT=2)")
	sum, err := a.Add(b)
	require.NoError(t, err)

	for _, eval := range []func(*spectral.Model, spectral.Parameters, []float64, []float64) ([]float64, error){flux.PhotonFlux, flux.EnergyFlux} {
		fa, err := eval(a, nil, eLow, eHigh)
		require.NoError(t, err)
		fb, err := eval(b, nil, eLow, eHigh)
		require.NoError(t, err)
		fsum, err := eval(sum, nil, eLow, eHigh)
		require.NoError(t, err)
		for i := range fsum {
			assert.InEpsilon(t, fa[i]+fb[i], fsum[i], 1e-12, "bin %d", i)
		}
	}
}

func TestContinuum_Multiplicativity(t *testing.T) {
	energies := []float64{0.3, 1, 2.5, 7}
	a := mustModel(t, "Tbabs(nh=0.4)")
	b := mustModel(t, "Expfac(A=2, factor=0.5, start=2)")
	prod, err := a.Mul(b)
	require.NoError(t, err)

	ca, err := flux.Continuum(a, nil, energies)
	require.NoError(t, err)
	cb, err := flux.Continuum(b, nil, energies)
	require.NoError(t, err)
	cp, err := flux.Continuum(prod, nil, energies)
	require.NoError(t, err)
	for i := range energies {
		assert.InDelta(t, ca[i]*cb[i], cp[i], 1e-15)
	}
}

func TestFlux_AbsorbedPowerlaw(t *testing.T) {
	m := mustModel(t, "Tbabs()*Powerlaw(norm=1)")
	assert.Equal(t, "Tbabs() * Powerlaw(norm=1)", m.String())

	eLow, eHigh := []float64{0.5, 1, 3}, []float64{1, 3, 10}
	knots := []float64{0.5, 1, 3, 10}

	tb, err := multiplicative.Tbabs().Evaluate(nil, knots)
	require.NoError(t, err)
	pl, err := additive.Powerlaw().Evaluate(registry.Values{"norm": 1}, knots)
	require.NoError(t, err)
	cont, err := flux.Continuum(m, nil, knots)
	require.NoError(t, err)
	for i := range knots {
		assert.InDelta(t, tb[i]*pl[i], cont[i], 1e-15)
	}

	got, err := flux.PhotonFlux(m, nil, eLow, eHigh)
	require.NoError(t, err)
	for i := range eLow {
		want := 0.5 * math.Log(eHigh[i]/eLow[i]) * (cont[i]*eLow[i] + cont[i+1]*eHigh[i])
		assert.InEpsilon(t, want, got[i], 1e-12)
	}
}

func TestFlux_LineScaledAtMeanEnergy(t *testing.T) {
	m := mustModel(t, "Tbabs(nh=5) * (Powerlaw(norm=1) + Gauss(E_l=6.4, sigma=0.1))")
	continuumOnly := mustModel(t, "Tbabs(nh=5) * Powerlaw(norm=1)")
	eLow, eHigh := []float64{6, 6.5}, []float64{6.5, 7}

	total, err := flux.PhotonFlux(m, nil, eLow, eHigh)
	require.NoError(t, err)
	cont, err := flux.PhotonFlux(continuumOnly, nil, eLow, eHigh)
	require.NoError(t, err)

	line, mean, err := additive.Gauss().EvaluateLines(registry.Values{"E_l": 6.4, "sigma": 0.1}, eLow, eHigh)
	require.NoError(t, err)
	atMean, err := multiplicative.Tbabs().Evaluate(registry.Values{"nh": 5}, mean)
	require.NoError(t, err)
	atEdge, err := multiplicative.Tbabs().Evaluate(registry.Values{"nh": 5}, eLow)
	require.NoError(t, err)

	for i := range eLow {
		assert.InDelta(t, line[i]*atMean[i], total[i]-cont[i], 1e-12, "bin %d", i)
		assert.Greater(t, math.Abs(line[i]*atEdge[i]-(total[i]-cont[i])), 1e-4, "bin %d", i)
	}

	energy, err := flux.EnergyFlux(m, nil, eLow, eHigh)
	require.NoError(t, err)
	energyCont, err := flux.EnergyFlux(continuumOnly, nil, eLow, eHigh)
	require.NoError(t, err)
	for i := range eLow {
		assert.InDelta(t, line[i]*atMean[i]*mean[i], energy[i]-energyCont[i], 1e-12)
	}
}

func TestFlux_NestedAttenuationAppliedOnce(t *testing.T) {
	m := mustModel(t, "Tbabs(nh=2) * (Expfac(A=1, factor=0.1, start=1) * Gauss(E_l=3, sigma=0.5))")
	eLow, eHigh := []float64{2, 3}, []float64{3, 4}

	got, err := flux.New(flux.WithFloor(0)).PhotonFlux(m, nil, eLow, eHigh)
	require.NoError(t, err)

	line, mean, err := additive.Gauss().EvaluateLines(registry.Values{"E_l": 3, "sigma": 0.5}, eLow, eHigh)
	require.NoError(t, err)
	tb, err := multiplicative.Tbabs().Evaluate(registry.Values{"nh": 2}, mean)
	require.NoError(t, err)
	ex, err := multiplicative.Expfac().Evaluate(registry.Values{"A": 1, "factor": 0.1, "start": 1}, mean)
	require.NoError(t, err)

	for i := range eLow {
		assert.InDelta(t, line[i]*tb[i]*ex[i], got[i], 1e-12)
	}
}

func TestFlux_MultiplicativeOnly(t *testing.T) {
	m := mustModel(t, "MultiplicativeConstant(K=3)")
	got, err := flux.New(flux.WithFloor(0)).PhotonFlux(m, nil, []float64{1}, []float64{2})
	require.NoError(t, err)
	assert.InDelta(t, 0.5*math.Ln2*(3+6), got[0], 1e-12)
}

func TestFlux_Floor(t *testing.T) {
	m := mustModel(t, "Powerlaw(norm=1e-12)")
	eLow, eHigh := []float64{1, 2}, []float64{2, 3}

	got, err := flux.PhotonFlux(m, nil, eLow, eHigh)
	require.NoError(t, err)
	assert.Equal(t, []float64{flux.DefaultFloor, flux.DefaultFloor}, got)

	raw, err := flux.New(flux.WithFloor(1e-30)).PhotonFlux(m, nil, eLow, eHigh)
	require.NoError(t, err)
	for _, v := range raw {
		assert.Less(t, v, flux.DefaultFloor)
		assert.Greater(t, v, 0.0)
	}

	lines := mustModel(t, "Gauss(E_l=50, sigma=0.01)")
	got, err = flux.EnergyFlux(lines, nil, eLow, eHigh)
	require.NoError(t, err)
	for _, v := range got {
		assert.GreaterOrEqual(t, v, flux.DefaultFloor)
	}
	assert.Equal(t, flux.DefaultFloor, flux.New().Floor())
}

func TestFlux_Parameters(t *testing.T) {
	eLow, eHigh := []float64{1, 2}, []float64{2, 3}
	m := mustModel(t, "Powerlaw() + Powerlaw(norm=1)")

	params := spectral.Parameters{
		"powerlaw_1": {"alpha": 2, "norm": 0.5},
		"powerlaw_2": {"alpha": 1},
	}
	got, err := flux.PhotonFlux(m, params, eLow, eHigh)
	require.NoError(t, err)

	want := mustModel(t, "Powerlaw(alpha=2, norm=0.5) + Powerlaw(alpha=1, norm=1)")
	expected, err := flux.PhotonFlux(want, nil, eLow, eHigh)
	require.NoError(t, err)
	assert.InDeltaSlice(t, expected, got, 1e-15)

	_, err = flux.PhotonFlux(m, spectral.Parameters{"powerlaw_3": {"alpha": 1}}, eLow, eHigh)
	assert.ErrorIs(t, err, spectral.ErrUnknownParameter)
	_, err = flux.PhotonFlux(m, spectral.Parameters{"powerlaw_1": {"beta": 1}}, eLow, eHigh)
	assert.ErrorIs(t, err, spectral.ErrUnknownParameter)
}

func TestFlux_RoundTripEvaluatesEqually(t *testing.T) {
	eLow := []float64{0.5, 1, 2, 6}
	eHigh := []float64{1, 2, 6, 7}
	for _, expr := range []string{
		"Tbabs(nh=0.3) * (Powerlaw(alpha=1.7, norm=0.01) + Gauss(E_l=6.4, sigma=0.1, norm=0.001))",
		"(Blackbody(kT=0.8) + Logparabola(b=0.1)) * Expfac(start=2)",
		"Powerlaw(norm=1) + Lorentz(E_l=1.5, sigma=0.05)",
	} {
		t.Run(expr, func(t *testing.T) {
			m := mustModel(t, expr)
			again := mustModel(t, m.String())
			assert.Equal(t, m.String(), again.String())
			assert.Equal(t, m.ParameterNames(), again.ParameterNames())

			f1, err := flux.PhotonFlux(m, nil, eLow, eHigh)
			require.NoError(t, err)
			f2, err := flux.PhotonFlux(again, nil, eLow, eHigh)
			require.NoError(t, err)
			assert.Equal(t, f1, f2)
		})
	}
}

func TestFlux_InvalidBins(t *testing.T) {
	m := mustModel(t, "Powerlaw()")
	testCases := []struct {
		name        string
		eLow, eHigh []float64
	}{
		{name: "empty", eLow: nil, eHigh: nil},
		{name: "length mismatch", eLow: []float64{1, 2}, eHigh: []float64{2}},
		{name: "reversed bin", eLow: []float64{2}, eHigh: []float64{1}},
		{name: "zero width", eLow: []float64{1}, eHigh: []float64{1}},
		{name: "non-positive edge", eLow: []float64{0}, eHigh: []float64{1}},
		{name: "not increasing", eLow: []float64{1, 1}, eHigh: []float64{2, 3}},
		{name: "NaN edge", eLow: []float64{math.NaN()}, eHigh: []float64{1}},
		{name: "infinite edge", eLow: []float64{1}, eHigh: []float64{math.Inf(1)}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := flux.PhotonFlux(m, nil, tc.eLow, tc.eHigh)
			assert.ErrorIs(t, err, flux.ErrInvalidBins)
		})
	}
}

func TestFlux_Concurrent(t *testing.T) {
	m := mustModel(t, "Tbabs(nh=0.3) * (Powerlaw(norm=1) + Gauss(E_l=2, sigma=0.3))")
	eLow, eHigh := []float64{1, 2, 3}, []float64{2, 3, 4}
	want, err := flux.PhotonFlux(m, nil, eLow, eHigh)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(alpha float64) {
			defer wg.Done()
			got, err := flux.PhotonFlux(m, spectral.Parameters{"powerlaw_1": {"alpha": alpha}}, eLow, eHigh)
			assert.NoError(t, err)
			if alpha == 1.3 {
				assert.Equal(t, want, got)
			}
		}(1.3 + float64(i%2))
	}
	wg.Wait()
}

func TestMode_String(t *testing.T) {
	assert.Equal(t, "photon", flux.Photon.String())
	assert.Equal(t, "energy", flux.Energy.String())
}

func TestFlux_FloorCoversDegenerateParameters(t *testing.T) {
	eLow, eHigh := []float64{1, 2}, []float64{2, 3}
	for _, expr := range []string{
		"Gauss(E_l=2, sigma=0)",
		"Blackbody(kT=0)",
		"Tbabs() * Lorentz(sigma=0)",
	} {
		t.Run(expr, func(t *testing.T) {
			m := mustModel(t, expr)
			for _, eval := range []func(*spectral.Model, spectral.Parameters, []float64, []float64) ([]float64, error){flux.PhotonFlux, flux.EnergyFlux} {
				got, err := eval(m, nil, eLow, eHigh)
				require.NoError(t, err)
				for i, v := range got {
					assert.False(t, math.IsNaN(v), "bin %d is NaN", i)
					assert.GreaterOrEqual(t, v, flux.DefaultFloor, "bin %d", i)
				}
			}
		})
	}
}
