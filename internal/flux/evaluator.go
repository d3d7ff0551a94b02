package flux

import (
	"fmt"
	"math"

	"github.com/specialistvlad/xspecgo/internal/dag"
	"github.com/specialistvlad/xspecgo/internal/registry"
	"github.com/specialistvlad/xspecgo/internal/spectral"
	"gonum.org/v1/gonum/integrate"
)

// Mode selects what an evaluation integrates.
type Mode int

const (
	// Photon integrates photon flux, photons/cm^2/s per bin.
	Photon Mode = iota
	// Energy integrates energy flux, keV/cm^2/s per bin.
	Energy
)

// String returns "photon" or "energy".
func (m Mode) String() string {
	switch m {
	case Photon:
		return "photon"
	case Energy:
		return "energy"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// Evaluator computes binned fluxes. It holds no per-call state and may be
// shared between goroutines.
type Evaluator struct {
	floor float64
}

// New creates an Evaluator with the given options applied over the
// defaults.
func New(opts ...Option) *Evaluator {
	e := &Evaluator{floor: DefaultFloor}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Floor returns the clipping floor.
func (e *Evaluator) Floor() float64 {
	return e.floor
}

// PhotonFlux returns the photon flux of m in each bin.
func (e *Evaluator) PhotonFlux(m *spectral.Model, params spectral.Parameters, eLow, eHigh []float64) ([]float64, error) {
	return e.Evaluate(m, params, eLow, eHigh, Photon)
}

// EnergyFlux returns the energy flux of m in each bin.
func (e *Evaluator) EnergyFlux(m *spectral.Model, params spectral.Parameters, eLow, eHigh []float64) ([]float64, error) {
	return e.Evaluate(m, params, eLow, eHigh, Energy)
}

// Evaluate returns the flux of m in each bin [eLow[i], eHigh[i]). params
// override the model's initial values and may be nil.
func (e *Evaluator) Evaluate(m *spectral.Model, params spectral.Parameters, eLow, eHigh []float64, mode Mode) ([]float64, error) {
	if err := ValidateBins(eLow, eHigh); err != nil {
		return nil, err
	}
	rt, err := newRuntime(m, params)
	if err != nil {
		return nil, err
	}

	curve, err := rt.continuum(knots(eLow, eHigh))
	if err != nil {
		return nil, err
	}
	total := integrateLogTrapezoid(curve, eLow, eHigh, mode)

	lines := rt.fineStructure(eLow, eHigh, mode)
	for i := range total {
		v := total[i] + lines[i]
		// NaN compares false, so degenerate parameters also land on the floor.
		if !(v >= e.floor) {
			v = e.floor
		}
		total[i] = v
	}
	return total, nil
}

// integrateLogTrapezoid integrates the continuum over each bin with the
// substitution u = log E, so the integrand gains a factor E. Energy flux
// weights by E once more. curve[i] and curve[i+1] are the values at the low
// and high edge of bin i.
func integrateLogTrapezoid(curve, eLow, eHigh []float64, mode Mode) []float64 {
	power := 1.0
	if mode == Energy {
		power = 2
	}
	out := make([]float64, len(eLow))
	x := make([]float64, 2)
	f := make([]float64, 2)
	for i := range eLow {
		x[0], x[1] = math.Log(eLow[i]), math.Log(eHigh[i])
		f[0] = curve[i] * math.Pow(eLow[i], power)
		f[1] = curve[i+1] * math.Pow(eHigh[i], power)
		out[i] = integrate.Trapezoidal(x, f)
	}
	return out
}

// runtime owns the parameter values of one evaluation.
type runtime struct {
	model  *spectral.Model
	graph  *dag.Graph
	values map[dag.NodeID]registry.Values
}

func newRuntime(m *spectral.Model, params spectral.Parameters) (*runtime, error) {
	values, err := m.Bind(params)
	if err != nil {
		return nil, err
	}
	return &runtime{model: m, graph: m.Graph(), values: values}, nil
}

// continuum evaluates every node in topological order and returns the array
// of the sink's predecessor.
func (rt *runtime) continuum(energies []float64) ([]float64, error) {
	head, err := rt.model.Head()
	if err != nil {
		return nil, err
	}

	arrays := make(map[dag.NodeID][]float64, rt.graph.Len())
	for _, id := range rt.model.Order() {
		n, _ := rt.graph.Node(id)
		switch n.Type {
		case dag.ComponentNode:
			arrays[id] = n.Component.Component.Continuum(rt.values[id], energies)
		case dag.OperationNode:
			preds := rt.graph.Predecessors(id)
			arrays[id] = n.Operation.Combine(arrays[preds[0]], arrays[preds[1]])
		}
	}
	return arrays[head], nil
}

// fineStructure sums the scaled line flux of every additive root that
// declares fine structure.
func (rt *runtime) fineStructure(eLow, eHigh []float64, mode Mode) []float64 {
	total := make([]float64, len(eLow))
	for _, root := range rt.graph.Roots() {
		n, _ := rt.graph.Node(root)
		if n.Type != dag.ComponentNode {
			continue
		}
		c := n.Component.Component
		if c.Type != registry.Additive || !c.HasFineStructure() {
			continue
		}

		flux, mean := c.FineStructure(rt.values[root], eLow, eHigh)
		for _, mul := range rt.attenuators(root) {
			m, _ := rt.graph.Node(mul)
			factor := m.Component.Component.Continuum(rt.values[mul], mean)
			for i := range flux {
				flux[i] *= factor[i]
			}
		}
		for i := range flux {
			if mode == Energy {
				flux[i] *= mean[i]
			}
			total[i] += flux[i]
		}
	}
	return total
}

// attenuators returns the multiplicative components applied to root: the
// nodes on the shortest path from root to the sink are visited from the sink
// backwards and each contributes its multiplicative ancestors. A component
// reached twice is applied once.
func (rt *runtime) attenuators(root dag.NodeID) []dag.NodeID {
	path := rt.graph.ShortestPath(root, rt.model.Out())
	seen := make(map[dag.NodeID]bool)
	var found []dag.NodeID
	for i := len(path) - 1; i >= 0; i-- {
		for _, id := range rt.multiplicativeAncestors(path[i]) {
			if !seen[id] {
				seen[id] = true
				found = append(found, id)
			}
		}
	}
	return found
}

// multiplicativeAncestors returns, for a mul operation node, its
// multiplicative component predecessors, recursing through predecessors that
// are themselves mul operations. Any other node yields nothing.
func (rt *runtime) multiplicativeAncestors(id dag.NodeID) []dag.NodeID {
	n, _ := rt.graph.Node(id)
	if n.Type != dag.OperationNode || n.Operation.Op != dag.OpMul {
		return nil
	}
	var found []dag.NodeID
	for _, pred := range rt.graph.Predecessors(id) {
		p, _ := rt.graph.Node(pred)
		switch {
		case p.Type == dag.ComponentNode && p.Component.Component.Type == registry.Multiplicative:
			found = append(found, pred)
		case p.Type == dag.OperationNode && p.Operation.Op == dag.OpMul:
			found = append(found, rt.multiplicativeAncestors(pred)...)
		}
	}
	return found
}
