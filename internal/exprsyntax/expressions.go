package exprsyntax

import (
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/hashicorp/hcl/v2/hclwrite"
)

// Usage lists the names a model expression refers to.
type Usage struct {
	// Components holds every called component name, sorted, each once.
	Components []string
	// References holds bare identifiers such as `Powerlaw` written without a
	// call, sorted by TraversalKey.
	References []hcl.Traversal
}

// TraversalKey renders t as source text, e.g. "Powerlaw".
func TraversalKey(t hcl.Traversal) string {
	return string(hclwrite.TokensForTraversal(t).Bytes())
}

// Analyze collects the component calls and bare references of expr.
func Analyze(expr hclsyntax.Expression) Usage {
	if expr == nil {
		return Usage{}
	}

	calls := make(map[string]struct{})
	collectCalls(expr, calls)
	components := make([]string, 0, len(calls))
	for name := range calls {
		components = append(components, name)
	}
	sort.Strings(components)

	byKey := make(map[string]hcl.Traversal)
	for _, traversal := range expr.Variables() {
		byKey[TraversalKey(traversal)] = traversal
	}
	keys := make([]string, 0, len(byKey))
	for k := range byKey {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	references := make([]hcl.Traversal, 0, len(keys))
	for _, k := range keys {
		references = append(references, byKey[k])
	}

	return Usage{Components: components, References: references}
}

// collectCalls walks the model grammar: parentheses, binary operators and
// calls whose keyword arguments arrive as one object. Anything else is left
// for the model builder to reject.
func collectCalls(expr hclsyntax.Expression, calls map[string]struct{}) {
	switch e := expr.(type) {
	case *hclsyntax.ParenthesesExpr:
		collectCalls(e.Expression, calls)
	case *hclsyntax.BinaryOpExpr:
		collectCalls(e.LHS, calls)
		collectCalls(e.RHS, calls)
	case *hclsyntax.FunctionCallExpr:
		calls[e.Name] = struct{}{}
		for _, arg := range e.Args {
			if obj, ok := arg.(*hclsyntax.ObjectConsExpr); ok {
				for _, item := range obj.Items {
					collectCalls(item.ValueExpr, calls)
				}
				continue
			}
			collectCalls(arg, calls)
		}
	}
}
