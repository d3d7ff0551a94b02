package spectral

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/specialistvlad/xspecgo/internal/dag"
	"github.com/specialistvlad/xspecgo/internal/exprsyntax"
	"github.com/specialistvlad/xspecgo/internal/registry"
)

// expressionFilename labels diagnostics produced while parsing models.
const expressionFilename = "<model>"

// FromString parses a model expression such as
// "Tbabs(nh=0.3) * (Powerlaw() + Gauss(E_l=6.4))" against reg.
//
// The grammar is binary + and *, parentheses, and calls of registered
// components with no arguments or with name=number keyword arguments.
// Nothing else is evaluated. Malformed input yields an error wrapping
// ErrParse; calls of unregistered names wrap registry.ErrUnknownComponent.
func FromString(reg *registry.Registry, text string) (*Model, error) {
	expr, diags := exprsyntax.ParseExpression([]byte(text), expressionFilename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("%w: %w", ErrParse, diags)
	}

	usage := exprsyntax.Analyze(expr)
	for _, name := range usage.Components {
		if !reg.Has(name) {
			return nil, fmt.Errorf("%w: %q", ErrUnknownComponent, name)
		}
	}
	if refs := usage.References; len(refs) > 0 {
		return nil, fmt.Errorf("%w: %s: %q is not a call, write %s()", ErrParse,
			refs[0].SourceRange(), exprsyntax.TraversalKey(refs[0]), exprsyntax.TraversalKey(refs[0]))
	}

	return build(reg, expr)
}

func build(reg *registry.Registry, expr hclsyntax.Expression) (*Model, error) {
	switch e := expr.(type) {
	case *hclsyntax.ParenthesesExpr:
		return build(reg, e.Expression)

	case *hclsyntax.BinaryOpExpr:
		var op dag.Op
		switch e.Op {
		case hclsyntax.OpAdd:
			op = dag.OpAdd
		case hclsyntax.OpMultiply:
			op = dag.OpMul
		default:
			return nil, fmt.Errorf("%w: %s: only + and * are allowed", ErrParse, e.Range())
		}
		left, err := build(reg, e.LHS)
		if err != nil {
			return nil, err
		}
		right, err := build(reg, e.RHS)
		if err != nil {
			return nil, err
		}
		return Compose(left, right, op)

	case *hclsyntax.FunctionCallExpr:
		kwargs, err := callKwargs(e)
		if err != nil {
			return nil, err
		}
		return New(reg, e.Name, kwargs)

	default:
		return nil, fmt.Errorf("%w: %s: unsupported expression", ErrParse, expr.Range())
	}
}

// callKwargs decodes the keyword arguments of a component call, which arrive
// as a single object argument.
func callKwargs(call *hclsyntax.FunctionCallExpr) (registry.Values, error) {
	if call.ExpandFinal {
		return nil, fmt.Errorf("%w: %s: argument expansion is not allowed", ErrParse, call.Range())
	}
	switch len(call.Args) {
	case 0:
		return nil, nil
	case 1:
	default:
		return nil, fmt.Errorf("%w: %s: %s arguments must be written as name=value", ErrParse, call.Range(), call.Name)
	}

	obj, ok := call.Args[0].(*hclsyntax.ObjectConsExpr)
	if !ok {
		return nil, fmt.Errorf("%w: %s: %s arguments must be written as name=value", ErrParse, call.Range(), call.Name)
	}

	kwargs := make(registry.Values, len(obj.Items))
	for _, item := range obj.Items {
		name := hcl.ExprAsKeyword(item.KeyExpr)
		if name == "" {
			return nil, fmt.Errorf("%w: %s: argument name must be an identifier", ErrParse, item.KeyExpr.Range())
		}
		if _, dup := kwargs[name]; dup {
			return nil, fmt.Errorf("%w: %s: duplicate argument %q", ErrParse, item.KeyExpr.Range(), name)
		}
		v, diags := exprsyntax.NumberValue(item.ValueExpr)
		if diags.HasErrors() {
			return nil, fmt.Errorf("%w: %w", ErrParse, diags)
		}
		kwargs[name] = v
	}
	return kwargs, nil
}
