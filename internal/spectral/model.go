package spectral

import (
	"fmt"
	"math"

	"github.com/specialistvlad/xspecgo/internal/dag"
	"github.com/specialistvlad/xspecgo/internal/registry"
	"gonum.org/v1/gonum/floats"
)

// Model is an immutable spectral model. All methods are safe for concurrent
// use.
type Model struct {
	graph *dag.Graph
	out   dag.NodeID
	order []dag.NodeID
}

// operations maps each supported operator to its combine function and
// symbol.
var operations = map[dag.Op]dag.OperationInfo{
	dag.OpAdd: {Op: dag.OpAdd, Symbol: "+", Combine: addArrays},
	dag.OpMul: {Op: dag.OpMul, Symbol: "*", Combine: mulArrays},
}

func addArrays(left, right []float64) []float64 {
	return floats.AddTo(make([]float64, len(left)), left, right)
}

func mulArrays(left, right []float64) []float64 {
	return floats.MulTo(make([]float64, len(left)), left, right)
}

// FromComponent builds the two-node model component -> out. kwargs override
// the component's parameter defaults and are the only values String renders.
func FromComponent(c *registry.Component, kwargs registry.Values) (*Model, error) {
	if c == nil {
		return nil, fmt.Errorf("%w: component is nil", ErrInvalidComponent)
	}
	if !c.Type.Valid() {
		return nil, fmt.Errorf("%w: %s has type %s, want additive or multiplicative", ErrInvalidComponent, c.Name, c.Type)
	}
	if c.Continuum == nil {
		return nil, fmt.Errorf("%w: %s has no continuum function", ErrInvalidComponent, c.Name)
	}

	bound := make(registry.Values, len(kwargs))
	for name, v := range kwargs {
		if _, ok := c.Param(name); !ok {
			return nil, fmt.Errorf("%w: %s has no parameter %q", ErrInvalidComponent, c.Name, name)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%w: %s parameter %q must be finite, got %v", ErrInvalidComponent, c.Name, name, v)
		}
		bound[name] = v
	}

	g := dag.New()
	id := g.AddComponent(&dag.ComponentInfo{
		Kind:      c.Kind(),
		Component: c,
		Kwargs:    bound,
	})
	out := g.AddOut()
	if err := g.AddEdge(id, out); err != nil {
		return nil, err
	}
	return newModel(g)
}

// New looks kind up in reg and builds a single-component model from it.
func New(reg *registry.Registry, kind string, kwargs registry.Values) (*Model, error) {
	c, err := reg.Lookup(kind)
	if err != nil {
		return nil, err
	}
	return FromComponent(c, kwargs)
}

// Compose returns a new model in which the outputs of a and b, in that
// order, feed one operation node. Neither operand is modified.
func Compose(a, b *Model, op dag.Op) (*Model, error) {
	info, ok := operations[op]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedOperation, op)
	}
	if a == nil || b == nil {
		return nil, fmt.Errorf("%w: cannot compose a nil model", ErrInvalidComponent)
	}

	g := dag.New()
	heads := make([]dag.NodeID, 0, 2)
	for _, operand := range []*Model{a, b} {
		head, err := operand.head()
		if err != nil {
			return nil, err
		}
		mapping := g.Import(operand.graph, operand.out)
		heads = append(heads, mapping[head])
	}
	opID := g.AddOperation(&info)
	for _, head := range heads {
		if err := g.AddEdge(head, opID); err != nil {
			return nil, err
		}
	}
	out := g.AddOut()
	if err := g.AddEdge(opID, out); err != nil {
		return nil, err
	}
	return newModel(g)
}

// Add returns m + other.
func (m *Model) Add(other *Model) (*Model, error) {
	return Compose(m, other, dag.OpAdd)
}

// Mul returns m * other.
func (m *Model) Mul(other *Model) (*Model, error) {
	return Compose(m, other, dag.OpMul)
}

// newModel validates g, lays it out and resolves its namespace.
func newModel(g *dag.Graph) (*Model, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	out, err := g.Out()
	if err != nil {
		return nil, err
	}
	order, err := g.TopologicalOrder()
	if err != nil {
		return nil, err
	}
	if err := g.AssignDepths(out); err != nil {
		return nil, err
	}
	if err := resolveNamespace(g, order); err != nil {
		return nil, err
	}
	return &Model{graph: g, out: out, order: order}, nil
}

// head returns the unique predecessor of the sink.
func (m *Model) head() (dag.NodeID, error) {
	preds := m.graph.Predecessors(m.out)
	if len(preds) != 1 {
		return 0, fmt.Errorf("%w: out node has %d predecessors, want 1", ErrGraphInvariant, len(preds))
	}
	return preds[0], nil
}

// Graph returns a deep copy of the model's graph with the same node ids.
func (m *Model) Graph() *dag.Graph {
	return m.graph.Clone()
}

// Out returns the id of the sink node.
func (m *Model) Out() dag.NodeID {
	return m.out
}

// Head returns the id of the sink's unique predecessor.
func (m *Model) Head() (dag.NodeID, error) {
	return m.head()
}

// Order returns the node ids in topological order.
func (m *Model) Order() []dag.NodeID {
	return append([]dag.NodeID(nil), m.order...)
}

// Layers groups node ids by layout depth.
func (m *Model) Layers() [][]dag.NodeID {
	return m.graph.Layers()
}
