package dag

import (
	"errors"
	"fmt"
)

// Validate checks the structural rules of a model graph and returns every
// violation joined into one error. Each violation wraps ErrGraphInvariant.
//
// The rules are: exactly one out node, with one predecessor and no
// successors; component nodes have no predecessors and one successor;
// operation nodes have two predecessors and one successor; the graph is
// acyclic; every node reaches out.
func (g *Graph) Validate() error {
	var errs []error
	violation := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrGraphInvariant}, args...)...))
	}

	outs := g.Outs()
	if len(outs) != 1 {
		violation("expected exactly one out node, found %d", len(outs))
	}

	for _, n := range g.nodes {
		in, out := len(g.preds[n.ID]), len(g.succs[n.ID])
		switch n.Type {
		case OutNode:
			if in != 1 || out != 0 {
				violation("out node %d has %d predecessors and %d successors, want 1 and 0", n.ID, in, out)
			}
		case ComponentNode:
			if n.Component == nil || n.Component.Component == nil {
				violation("component node %d has no component", n.ID)
			}
			if in != 0 || out != 1 {
				violation("component node %d has %d predecessors and %d successors, want 0 and 1", n.ID, in, out)
			}
		case OperationNode:
			if n.Operation == nil || !n.Operation.Op.Valid() {
				violation("operation node %d has no valid operator", n.ID)
			}
			if in != 2 || out != 1 {
				violation("operation node %d has %d predecessors and %d successors, want 2 and 1", n.ID, in, out)
			}
		default:
			violation("node %d has unknown type %s", n.ID, n.Type)
		}
	}

	if err := g.DetectCycles(); err != nil {
		errs = append(errs, err)
	} else if len(outs) == 1 {
		for _, n := range g.nodes {
			if g.ShortestPath(n.ID, outs[0]) == nil {
				violation("node %d does not reach out", n.ID)
			}
		}
	}

	return errors.Join(errs...)
}
