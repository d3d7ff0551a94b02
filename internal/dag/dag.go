package dag

import (
	"errors"
	"fmt"
)

// ErrGraphInvariant is returned when a graph violates the structural rules
// of a model graph.
var ErrGraphInvariant = errors.New("graph invariant violated")

// Graph is an arena of nodes with ordered predecessor and successor lists.
// It is not safe for concurrent mutation; once built it may be read from any
// number of goroutines.
type Graph struct {
	nodes []*Node
	preds [][]NodeID
	succs [][]NodeID
}

// New creates and returns an initialized, empty Graph.
func New() *Graph {
	return &Graph{}
}

func (g *Graph) add(n *Node) NodeID {
	id := NodeID(len(g.nodes))
	n.ID = id
	g.nodes = append(g.nodes, n)
	g.preds = append(g.preds, nil)
	g.succs = append(g.succs, nil)
	return id
}

// AddComponent appends a component node.
func (g *Graph) AddComponent(info *ComponentInfo) NodeID {
	return g.add(&Node{Type: ComponentNode, Component: info})
}

// AddOperation appends an operation node.
func (g *Graph) AddOperation(info *OperationInfo) NodeID {
	return g.add(&Node{Type: OperationNode, Operation: info})
}

// AddOut appends a sink node.
func (g *Graph) AddOut() NodeID {
	return g.add(&Node{Type: OutNode})
}

func (g *Graph) has(id NodeID) bool {
	return id >= 0 && int(id) < len(g.nodes)
}

// AddEdge creates a directed edge from the `from` node to the `to` node. The
// edge is appended to the end of `to`'s predecessor list, which fixes operand
// order. An error is returned if either node does not exist or if the edge
// would create a self-reference.
func (g *Graph) AddEdge(from, to NodeID) error {
	if from == to {
		return fmt.Errorf("self-referential edge not allowed: %d -> %d", from, from)
	}
	if !g.has(from) {
		return fmt.Errorf("source node not found: %d", from)
	}
	if !g.has(to) {
		return fmt.Errorf("destination node not found: %d", to)
	}
	g.succs[from] = append(g.succs[from], to)
	g.preds[to] = append(g.preds[to], from)
	return nil
}

// Len returns the number of nodes.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// Node returns a copy of the node with the given id. Changing the copy does
// not change the graph.
func (g *Graph) Node(id NodeID) (*Node, bool) {
	if !g.has(id) {
		return nil, false
	}
	return g.nodes[id].clone(id), true
}

// Nodes returns copies of all nodes in id order.
func (g *Graph) Nodes() []*Node {
	out := make([]*Node, len(g.nodes))
	for i, n := range g.nodes {
		out[i] = n.clone(n.ID)
	}
	return out
}

// SetDisplayName names the component node id.
func (g *Graph) SetDisplayName(id NodeID, name string) error {
	if !g.has(id) {
		return fmt.Errorf("node not found: %d", id)
	}
	n := g.nodes[id]
	if n.Type != ComponentNode || n.Component == nil {
		return fmt.Errorf("%w: node %d is a %s node, not a component", ErrGraphInvariant, id, n.Type)
	}
	n.Component.DisplayName = name
	return nil
}

// Predecessors returns the ids of the nodes with an edge into id, in edge
// insertion order.
func (g *Graph) Predecessors(id NodeID) []NodeID {
	if !g.has(id) {
		return nil
	}
	return append([]NodeID(nil), g.preds[id]...)
}

// Successors returns the ids of the nodes id has an edge into.
func (g *Graph) Successors(id NodeID) []NodeID {
	if !g.has(id) {
		return nil
	}
	return append([]NodeID(nil), g.succs[id]...)
}

// InDegree returns the number of inbound edges of id.
func (g *Graph) InDegree(id NodeID) int {
	if !g.has(id) {
		return 0
	}
	return len(g.preds[id])
}

// OutDegree returns the number of outbound edges of id.
func (g *Graph) OutDegree(id NodeID) int {
	if !g.has(id) {
		return 0
	}
	return len(g.succs[id])
}

// Roots returns the ids of all nodes without predecessors, in id order.
func (g *Graph) Roots() []NodeID {
	var roots []NodeID
	for id := range g.nodes {
		if len(g.preds[id]) == 0 {
			roots = append(roots, NodeID(id))
		}
	}
	return roots
}

// Outs returns the ids of all out nodes, in id order.
func (g *Graph) Outs() []NodeID {
	var outs []NodeID
	for _, n := range g.nodes {
		if n.Type == OutNode {
			outs = append(outs, n.ID)
		}
	}
	return outs
}

// Out returns the id of the unique sink.
func (g *Graph) Out() (NodeID, error) {
	outs := g.Outs()
	if len(outs) != 1 {
		return 0, fmt.Errorf("%w: expected exactly one out node, found %d", ErrGraphInvariant, len(outs))
	}
	return outs[0], nil
}

// Import copies every node of other except the ones listed in skip into g
// under fresh ids, together with every edge whose endpoints were both copied.
// It returns the mapping from other's ids to g's ids.
func (g *Graph) Import(other *Graph, skip ...NodeID) map[NodeID]NodeID {
	skipped := make(map[NodeID]bool, len(skip))
	for _, id := range skip {
		skipped[id] = true
	}

	mapping := make(map[NodeID]NodeID, len(other.nodes))
	for _, n := range other.nodes {
		if skipped[n.ID] {
			continue
		}
		mapping[n.ID] = g.add(n.clone(0))
	}
	// Walk predecessor lists so operand order survives the copy.
	for to, preds := range other.preds {
		newTo, ok := mapping[NodeID(to)]
		if !ok {
			continue
		}
		for _, from := range preds {
			if newFrom, ok := mapping[from]; ok {
				g.succs[newFrom] = append(g.succs[newFrom], newTo)
				g.preds[newTo] = append(g.preds[newTo], newFrom)
			}
		}
	}
	return mapping
}

// Clone returns a deep copy of g with identical ids.
func (g *Graph) Clone() *Graph {
	c := New()
	c.Import(g)
	return c
}
