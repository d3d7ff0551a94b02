package spectral

import (
	"fmt"
	"strings"

	"github.com/specialistvlad/xspecgo/internal/dag"
	"github.com/specialistvlad/xspecgo/internal/exprsyntax"
)

// String renders the model as a canonical infix expression, e.g.
// "Tbabs(nh=0.3) * (Powerlaw() + Gauss(E_l=6.4))". Only explicitly bound
// parameters are written. Every operation is parenthesised except the
// outermost one.
func (m *Model) String() string {
	head, err := m.head()
	if err != nil {
		return ""
	}
	var sb strings.Builder
	m.render(&sb, head)
	s := sb.String()
	if n, _ := m.graph.Node(head); n.Type == dag.OperationNode {
		s = s[1 : len(s)-1]
	}
	return s
}

func (m *Model) render(sb *strings.Builder, id dag.NodeID) {
	n, _ := m.graph.Node(id)
	switch n.Type {
	case dag.ComponentNode:
		c := n.Component
		sb.WriteString(c.Component.Name)
		sb.WriteByte('(')
		first := true
		for _, p := range c.Component.Params {
			v, ok := c.Kwargs[p.Name]
			if !ok {
				continue
			}
			if !first {
				sb.WriteString(", ")
			}
			first = false
			sb.WriteString(p.Name)
			sb.WriteByte('=')
			sb.WriteString(exprsyntax.FormatNumber(v))
		}
		sb.WriteByte(')')
	case dag.OperationNode:
		preds := m.graph.Predecessors(id)
		sb.WriteByte('(')
		for i, pred := range preds {
			if i > 0 {
				sb.WriteString(" " + n.Operation.Symbol + " ")
			}
			m.render(sb, pred)
		}
		sb.WriteByte(')')
	}
}

// Mermaid renders the graph as a left-to-right Mermaid flowchart.
func (m *Model) Mermaid() string {
	var sb strings.Builder
	sb.WriteString("graph LR\n")
	for _, n := range m.graph.Nodes() {
		switch n.Type {
		case dag.ComponentNode:
			number := n.Component.DisplayName[strings.LastIndexByte(n.Component.DisplayName, '_')+1:]
			fmt.Fprintf(&sb, "    n%d(\"%s (%s)\")\n", n.ID, n.Component.Component.Name, number)
		case dag.OperationNode:
			symbol := n.Operation.Symbol
			if n.Operation.Op == dag.OpMul {
				symbol = "x"
			}
			fmt.Fprintf(&sb, "    n%d{%s}\n", n.ID, symbol)
		case dag.OutNode:
			fmt.Fprintf(&sb, "    n%d(\"Output\")\n", n.ID)
		}
	}
	for _, n := range m.graph.Nodes() {
		for _, next := range m.graph.Successors(n.ID) {
			fmt.Fprintf(&sb, "    n%d --> n%d\n", n.ID, next)
		}
	}
	return sb.String()
}
