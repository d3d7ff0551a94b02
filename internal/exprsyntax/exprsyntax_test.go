package exprsyntax_test

import (
	"testing"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/specialistvlad/xspecgo/internal/exprsyntax"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// parseExpr is a test helper to quickly get an hcl.Expression from a string.
func parseExpr(t *testing.T, exprStr string) hclsyntax.Expression {
	t.Helper()
	expr, diags := exprsyntax.ParseExpression([]byte(exprStr), "test")
	require.False(t, diags.HasErrors(), "Expression parsing failed: %s", diags.Error())
	return expr
}

func TestRewriteKeywordArgs(t *testing.T) {
	testCases := []struct {
		name string
		src  string
		want string
	}{
		{name: "no arguments", src: "Powerlaw()", want: "Powerlaw()"},
		{name: "single kwarg", src: "Powerlaw(alpha=2)", want: "Powerlaw({alpha=2})"},
		{name: "spaced kwargs", src: "Gauss( E_l = 6.4, sigma = 0.1 )", want: "Gauss({ E_l = 6.4, sigma = 0.1 })"},
		{name: "grouping parens untouched", src: "Tbabs() * (Powerlaw(norm=1) + Gauss())", want: "Tbabs() * (Powerlaw({norm=1}) + Gauss())"},
		{name: "positional untouched", src: "Powerlaw(2)", want: "Powerlaw(2)"},
		{name: "nested", src: "((A(x=1)))", want: "((A({x=1})))"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			out, diags := exprsyntax.RewriteKeywordArgs([]byte(tc.src), "test")
			require.False(t, diags.HasErrors(), diags.Error())
			assert.Equal(t, tc.want, string(out))
		})
	}
}

func TestParseExpression(t *testing.T) {
	expr := parseExpr(t, "Tbabs(nh = 0.3) * (Powerlaw() + Gauss(E_l = 6.4))")
	mul, ok := expr.(*hclsyntax.BinaryOpExpr)
	require.True(t, ok)
	assert.Equal(t, hclsyntax.OpMultiply, mul.Op)

	call, ok := mul.LHS.(*hclsyntax.FunctionCallExpr)
	require.True(t, ok)
	assert.Equal(t, "Tbabs", call.Name)
	require.Len(t, call.Args, 1)
	obj, ok := call.Args[0].(*hclsyntax.ObjectConsExpr)
	require.True(t, ok)
	require.Len(t, obj.Items, 1)
	assert.Equal(t, "nh", hcl.ExprAsKeyword(obj.Items[0].KeyExpr))

	_, ok = mul.RHS.(*hclsyntax.ParenthesesExpr)
	assert.True(t, ok)
}

func TestParseExpression_Errors(t *testing.T) {
	for _, src := range []string{"Powerlaw(", "Powerlaw() +", "", "Powerlaw())"} {
		t.Run(src, func(t *testing.T) {
			_, diags := exprsyntax.ParseExpression([]byte(src), "test")
			assert.True(t, diags.HasErrors())
		})
	}
}

func TestNumberValue(t *testing.T) {
	testCases := []struct {
		src       string
		want      float64
		expectErr bool
	}{
		{src: "1.5", want: 1.5},
		{src: "-2", want: -2},
		{src: "1e-4", want: 1e-4},
		{src: `"3.25"`, want: 3.25},
		{src: "true", expectErr: true},
		{src: "null", expectErr: true},
		{src: "foo", expectErr: true},
		{src: "max(1, 2)", expectErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.src, func(t *testing.T) {
			v, diags := exprsyntax.NumberValue(parseExpr(t, tc.src))
			if tc.expectErr {
				assert.True(t, diags.HasErrors())
				return
			}
			require.False(t, diags.HasErrors(), diags.Error())
			assert.Equal(t, tc.want, v)
		})
	}
}

func TestFormatNumber_RoundTrip(t *testing.T) {
	for _, v := range []float64{1.3, 1e-4, -2.5, 0, 11.0 / 3, 6.02e23, 1e-30, -4.5e-12, 1e300} {
		s := exprsyntax.FormatNumber(v)
		got, diags := exprsyntax.NumberValue(parseExpr(t, s))
		require.False(t, diags.HasErrors(), diags.Error())
		assert.Equal(t, v, got, s)
	}
	assert.Equal(t, "1.3", exprsyntax.FormatNumber(1.3))
	assert.Equal(t, "2", exprsyntax.FormatNumber(2))
	assert.Equal(t, "0.0001", exprsyntax.FormatNumber(1e-4))
	assert.Equal(t, "1e-30", exprsyntax.FormatNumber(1e-30))
	assert.Equal(t, "6.02e+23", exprsyntax.FormatNumber(6.02e23))
}

func TestAnalyze(t *testing.T) {
	testCases := []struct {
		name       string
		src        string
		components []string
		references []string
	}{
		{name: "single call", src: "Powerlaw()", components: []string{"Powerlaw"}},
		{
			name:       "nested operators dedupe",
			src:        "Tbabs() * (Powerlaw(alpha = 2) + Gauss() + Powerlaw())",
			components: []string{"Gauss", "Powerlaw", "Tbabs"},
		},
		{
			name:       "bare references",
			src:        "Tbabs * (Bare + Powerlaw())",
			components: []string{"Powerlaw"},
			references: []string{"Bare", "Tbabs"},
		},
		{
			name:       "keyword names are not references",
			src:        "Gauss(E_l = 6.4, sigma = 0.1)",
			components: []string{"Gauss"},
		},
		{
			name:       "call inside a keyword value",
			src:        "Powerlaw(alpha = Tbabs())",
			components: []string{"Powerlaw", "Tbabs"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			usage := exprsyntax.Analyze(parseExpr(t, tc.src))
			if tc.components == nil {
				tc.components = []string{}
			}
			assert.Equal(t, tc.components, usage.Components)

			refs := make([]string, 0, len(usage.References))
			for _, r := range usage.References {
				refs = append(refs, exprsyntax.TraversalKey(r))
			}
			if tc.references == nil {
				tc.references = []string{}
			}
			assert.Equal(t, tc.references, refs)
		})
	}

	assert.Equal(t, exprsyntax.Usage{}, exprsyntax.Analyze(nil))
}
