package exprsyntax

import (
	"fmt"
	"strconv"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// NumberValue evaluates expr without any variables or functions in scope and
// decodes the result as a float64. Strings holding numbers are converted.
func NumberValue(expr hcl.Expression) (float64, hcl.Diagnostics) {
	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return 0, diags
	}

	invalid := func(detail string) hcl.Diagnostics {
		return append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Invalid number",
			Detail:   detail,
			Subject:  expr.Range().Ptr(),
		})
	}

	if val.IsNull() || !val.IsKnown() {
		return 0, invalid("A numeric value is required.")
	}
	num, err := convert.Convert(val, cty.Number)
	if err != nil {
		return 0, invalid(fmt.Sprintf("A numeric value is required: %s.", err))
	}
	var f float64
	if err := gocty.FromCtyValue(num, &f); err != nil {
		return 0, invalid(fmt.Sprintf("The value cannot be represented as a float: %s.", err))
	}
	return f, diags
}

// FormatNumber renders v as the shortest HCL number literal that parses back
// to v, switching to exponent form for very small or large magnitudes, e.g.
// 1e-30. v must be finite.
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
