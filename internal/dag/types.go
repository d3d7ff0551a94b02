package dag

import (
	"fmt"

	"github.com/specialistvlad/xspecgo/internal/registry"
)

// NodeID addresses a node inside one Graph.
type NodeID int

// NodeType distinguishes between the node variants of a model graph.
type NodeType int

const (
	// ComponentNode references a registered spectral component.
	ComponentNode NodeType = iota
	// OperationNode combines exactly two inbound flux arrays.
	OperationNode
	// OutNode is the unique sink of a graph.
	OutNode
)

// String returns the lower-case name of the node type.
func (t NodeType) String() string {
	switch t {
	case ComponentNode:
		return "component"
	case OperationNode:
		return "operation"
	case OutNode:
		return "out"
	default:
		return fmt.Sprintf("unknown(%d)", int(t))
	}
}

// Op is a binary composition operator.
type Op int

const (
	OpAdd Op = iota
	OpMul
)

// String returns "add" or "mul".
func (o Op) String() string {
	switch o {
	case OpAdd:
		return "add"
	case OpMul:
		return "mul"
	default:
		return fmt.Sprintf("op(%d)", int(o))
	}
}

// Valid reports whether o is one of the supported operators.
func (o Op) Valid() bool {
	return o == OpAdd || o == OpMul
}

// CombineFunc merges the continuum arrays of an operation's two operands.
type CombineFunc func(left, right []float64) []float64

// ComponentInfo is the payload of a component node.
type ComponentInfo struct {
	// Kind is the lower-cased component name, the namespace prefix.
	Kind string
	// DisplayName is the resolved, graph-unique name, e.g. "powerlaw_2".
	DisplayName string
	Component   *registry.Component
	// Kwargs are the explicitly bound parameter overrides.
	Kwargs registry.Values
}

// OperationInfo is the payload of an operation node.
type OperationInfo struct {
	Op      Op
	Symbol  string
	Combine CombineFunc
}

// Node is a single vertex of the model graph. Exactly one of Component and
// Operation is set for component and operation nodes; out nodes carry
// neither.
type Node struct {
	ID        NodeID
	Type      NodeType
	Component *ComponentInfo
	Operation *OperationInfo
	// Depth is the layout layer: the longest path length of the graph minus
	// the distance from this node to the sink.
	Depth int
}

// clone returns a deep copy of the node payload under a new id.
func (n *Node) clone(id NodeID) *Node {
	c := &Node{ID: id, Type: n.Type, Depth: n.Depth}
	if n.Component != nil {
		info := *n.Component
		if n.Component.Kwargs != nil {
			info.Kwargs = make(registry.Values, len(n.Component.Kwargs))
			for k, v := range n.Component.Kwargs {
				info.Kwargs[k] = v
			}
		}
		c.Component = &info
	}
	if n.Operation != nil {
		info := *n.Operation
		c.Operation = &info
	}
	return c
}
