package testutil

import "github.com/specialistvlad/xspecgo/internal/registry"

// SimpleModule registers two components with trivially integrable shapes:
// Flat, an additive constant spectrum, and Half, a multiplicative factor of
// one half.
type SimpleModule struct{}

// Register implements registry.Module.
func (SimpleModule) Register(r *registry.Registry) {
	r.RegisterComponent(&registry.Component{
		Name:   "Flat",
		Type:   registry.Additive,
		Params: []registry.Param{{Name: "norm", Default: 1}},
		Continuum: func(p registry.Values, e []float64) []float64 {
			out := make([]float64, len(e))
			for i := range out {
				out[i] = p["norm"]
			}
			return out
		},
	})
	r.RegisterComponent(&registry.Component{
		Name: "Half",
		Type: registry.Multiplicative,
		Continuum: func(_ registry.Values, e []float64) []float64 {
			out := make([]float64, len(e))
			for i := range out {
				out[i] = 0.5
			}
			return out
		},
	})
}
