package cli

import (
	"bytes"
	"testing"

	"github.com/specialistvlad/xspecgo/internal/app"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	testCases := []struct {
		name     string
		args     []string
		want     *app.Config
		wantExit bool
		wantCode int
		wantMsg  string
	}{
		{
			name: "run path with defaults",
			args: []string{"run.hcl"},
			want: &app.Config{RunPath: "run.hcl", LogFormat: "text", LogLevel: "warn"},
		},
		{
			name: "every flag",
			args: []string{
				"-expr", "Tbabs() * Powerlaw()",
				"-emin", "0.3", "-emax", "8", "-bins", "20", "-spacing", "LINEAR",
				"-energy-flux", "-params",
				"-log-format", "JSON", "-log-level", "debug",
				"runs/",
			},
			want: &app.Config{
				RunPath:    "runs/",
				Expr:       "Tbabs() * Powerlaw()",
				EMin:       0.3,
				EMax:       8,
				Bins:       20,
				Spacing:    "linear",
				EnergyFlux: true,
				ShowParams: true,
				LogFormat:  "json",
				LogLevel:   "debug",
			},
		},
		{
			name:     "no input prints usage",
			args:     nil,
			wantExit: true,
		},
		{
			name:     "help",
			args:     []string{"-h"},
			wantExit: true,
		},
		{
			name:     "unknown flag",
			args:     []string{"-workers", "4"},
			wantCode: 2,
			wantMsg:  "flag provided but not defined: -workers",
		},
		{
			name:     "two run paths",
			args:     []string{"a.hcl", "b.hcl"},
			wantCode: 2,
			wantMsg:  "expected at most one RUN_PATH, got 2",
		},
		{
			name:     "bad log format",
			args:     []string{"-log-format", "xml", "run.hcl"},
			wantCode: 2,
			wantMsg:  `invalid log format "xml"`,
		},
		{
			name:     "bad log level",
			args:     []string{"-log-level", "trace", "run.hcl"},
			wantCode: 2,
			wantMsg:  `invalid log level "trace"`,
		},
		{
			name:     "bad spacing",
			args:     []string{"-spacing", "cubic", "run.hcl"},
			wantCode: 2,
			wantMsg:  "invalid spacing",
		},
		{
			name:     "conflicting outputs",
			args:     []string{"-mermaid", "-params", "-expr", "Powerlaw()"},
			wantCode: 2,
			wantMsg:  "mutually exclusive",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			out := &bytes.Buffer{}
			cfg, shouldExit, err := Parse(tc.args, out)

			if tc.wantCode != 0 {
				var exitErr *ExitError
				require.ErrorAs(t, err, &exitErr)
				assert.Equal(t, tc.wantCode, exitErr.Code)
				assert.Contains(t, exitErr.Message, tc.wantMsg)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.wantExit, shouldExit)
			if tc.wantExit {
				assert.Nil(t, cfg)
				assert.Contains(t, out.String(), "Usage:")
				return
			}
			assert.Equal(t, tc.want, cfg)
		})
	}
}
