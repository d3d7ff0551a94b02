package spectral

import (
	"strconv"

	"github.com/specialistvlad/xspecgo/internal/dag"
)

// resolveNamespace names every component node kind_k, where k counts the
// occurrences of kind in order. Names are derived from Kind only, so running
// it again yields the same result.
func resolveNamespace(g *dag.Graph, order []dag.NodeID) error {
	seen := make(map[string]int)
	for _, id := range order {
		n, _ := g.Node(id)
		if n.Type != dag.ComponentNode {
			continue
		}
		seen[n.Component.Kind]++
		if err := g.SetDisplayName(id, n.Component.Kind+"_"+strconv.Itoa(seen[n.Component.Kind])); err != nil {
			return err
		}
	}
	return nil
}
