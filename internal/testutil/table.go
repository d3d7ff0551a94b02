package testutil

import (
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// FluxRow is one parsed line of the flux table.
type FluxRow struct {
	Low  float64
	High float64
	Flux float64
}

// ParseFluxTable parses the `e_low e_high flux` table written by the app.
func ParseFluxTable(t *testing.T, output string) []FluxRow {
	t.Helper()

	lines := strings.Split(strings.TrimSpace(output), "\n")
	require.NotEmpty(t, lines)
	require.Equal(t, []string{"e_low", "e_high", "flux"}, strings.Fields(lines[0]), "unexpected table header")

	rows := make([]FluxRow, 0, len(lines)-1)
	for _, line := range lines[1:] {
		fields := strings.Fields(line)
		require.Len(t, fields, 3, "malformed row %q", line)
		var values [3]float64
		for i, f := range fields {
			v, err := strconv.ParseFloat(f, 64)
			require.NoError(t, err, "malformed number in row %q", line)
			values[i] = v
		}
		rows = append(rows, FluxRow{Low: values[0], High: values[1], Flux: values[2]})
	}
	return rows
}
