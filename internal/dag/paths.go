package dag

import (
	"fmt"
	"sort"
)

// TopologicalOrder returns every node id such that each edge u->v has u
// before v. Among nodes that are ready at the same time the smallest id goes
// first, so the order depends only on the graph's structure and ids.
func (g *Graph) TopologicalOrder() ([]NodeID, error) {
	inDegree := make([]int, len(g.nodes))
	var ready []NodeID
	for id := range g.nodes {
		inDegree[id] = len(g.preds[id])
		if inDegree[id] == 0 {
			ready = append(ready, NodeID(id))
		}
	}

	order := make([]NodeID, 0, len(g.nodes))
	for len(ready) > 0 {
		id := ready[0]
		ready = ready[1:]
		order = append(order, id)

		released := false
		for _, next := range g.succs[id] {
			inDegree[next]--
			if inDegree[next] == 0 {
				ready = append(ready, next)
				released = true
			}
		}
		if released {
			sort.Slice(ready, func(i, j int) bool { return ready[i] < ready[j] })
		}
	}

	if len(order) != len(g.nodes) {
		return nil, fmt.Errorf("%w: cycle detected, %d of %d nodes could not be ordered", ErrGraphInvariant, len(g.nodes)-len(order), len(g.nodes))
	}
	return order, nil
}

// DetectCycles checks the graph for any cycles. It returns a non-nil error
// if a cycle is found, indicating the first node involved in the detected cycle.
func (g *Graph) DetectCycles() error {
	// Classic depth-first search with three sets of nodes:
	// permanent: fully visited and not part of a cycle.
	// temporary: currently in the recursion stack.
	// unvisited: all other nodes.
	permanent := make(map[NodeID]bool)
	temporary := make(map[NodeID]bool)

	var visit func(id NodeID) error
	visit = func(id NodeID) error {
		if permanent[id] {
			return nil
		}
		if temporary[id] {
			return fmt.Errorf("%w: cycle detected involving node %d", ErrGraphInvariant, id)
		}

		temporary[id] = true
		for _, next := range g.succs[id] {
			if err := visit(next); err != nil {
				return err
			}
		}
		delete(temporary, id)
		permanent[id] = true
		return nil
	}

	for id := range g.nodes {
		if !permanent[NodeID(id)] {
			if err := visit(NodeID(id)); err != nil {
				return err
			}
		}
	}
	return nil
}

// ShortestPath returns the node ids of a shortest directed path from `from`
// to `to`, both included, or nil when `to` is unreachable.
func (g *Graph) ShortestPath(from, to NodeID) []NodeID {
	if !g.has(from) || !g.has(to) {
		return nil
	}
	parent := map[NodeID]NodeID{from: from}
	queue := []NodeID{from}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		if id == to {
			break
		}
		for _, next := range g.succs[id] {
			if _, seen := parent[next]; !seen {
				parent[next] = id
				queue = append(queue, next)
			}
		}
	}
	if _, ok := parent[to]; !ok {
		return nil
	}

	var path []NodeID
	for id := to; ; id = parent[id] {
		path = append(path, id)
		if id == from {
			break
		}
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// ShortestPathLength returns the number of edges on a shortest path from
// `from` to `to`, or -1 when `to` is unreachable.
func (g *Graph) ShortestPathLength(from, to NodeID) int {
	path := g.ShortestPath(from, to)
	if path == nil {
		return -1
	}
	return len(path) - 1
}

// LongestPathLength returns the number of edges on the longest path of the
// graph. The graph must be acyclic.
func (g *Graph) LongestPathLength() (int, error) {
	order, err := g.TopologicalOrder()
	if err != nil {
		return 0, err
	}
	dist := make([]int, len(g.nodes))
	longest := 0
	for _, id := range order {
		for _, next := range g.succs[id] {
			if dist[id]+1 > dist[next] {
				dist[next] = dist[id] + 1
				if dist[next] > longest {
					longest = dist[next]
				}
			}
		}
	}
	return longest, nil
}

// AssignDepths sets every node's Depth to the longest path length of the
// graph minus its distance to out.
func (g *Graph) AssignDepths(out NodeID) error {
	longest, err := g.LongestPathLength()
	if err != nil {
		return err
	}
	for _, n := range g.nodes {
		d := g.ShortestPathLength(n.ID, out)
		if d < 0 {
			return fmt.Errorf("%w: node %d has no path to out", ErrGraphInvariant, n.ID)
		}
		n.Depth = longest - d
	}
	return nil
}

// Layers groups node ids by Depth, from depth 0 upwards.
func (g *Graph) Layers() [][]NodeID {
	maxDepth := 0
	for _, n := range g.nodes {
		if n.Depth > maxDepth {
			maxDepth = n.Depth
		}
	}
	if len(g.nodes) == 0 {
		return nil
	}
	layers := make([][]NodeID, maxDepth+1)
	for _, n := range g.nodes {
		layers[n.Depth] = append(layers[n.Depth], n.ID)
	}
	return layers
}
