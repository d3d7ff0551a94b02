package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/specialistvlad/xspecgo/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("xspec", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
xspec - Compose spectral models and evaluate their binned flux.

Usage:
  xspec [options] [RUN_PATH]

Arguments:
  RUN_PATH
    Path to a single .hcl run file or a directory containing .hcl files.

Grid flags left at zero fall back to the run file, then to
0.5-10 keV in 100 log-spaced bins.

Options:
`)
		flagSet.PrintDefaults()
	}

	exprFlag := flagSet.String("expr", "", "Model expression, e.g. 'Tbabs(nh = 0.3) * Powerlaw()'. Overrides the run file.")
	eminFlag := flagSet.Float64("emin", 0, "Lower edge of the energy grid in keV.")
	emaxFlag := flagSet.Float64("emax", 0, "Upper edge of the energy grid in keV.")
	binsFlag := flagSet.Int("bins", 0, "Number of energy bins.")
	spacingFlag := flagSet.String("spacing", "", "Bin spacing. Options: 'log' or 'linear'.")
	energyFluxFlag := flagSet.Bool("energy-flux", false, "Integrate energy flux instead of photon flux.")
	mermaidFlag := flagSet.Bool("mermaid", false, "Print the model graph as a Mermaid flowchart and exit.")
	paramsFlag := flagSet.Bool("params", false, "Print the model's parameter table and exit.")
	logFormatFlag := flagSet.String("log-format", app.DefaultLogFormat, "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", app.DefaultLogLevel, "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	if flagSet.NArg() > 1 {
		return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("expected at most one RUN_PATH, got %d", flagSet.NArg())}
	}
	path := flagSet.Arg(0)
	slog.Debug("Run path determined.", "path", path)

	if path == "" && *exprFlag == "" {
		slog.Debug("No run path or expression provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	config, err := app.NewConfig(app.Config{
		RunPath:    path,
		Expr:       *exprFlag,
		EMin:       *eminFlag,
		EMax:       *emaxFlag,
		Bins:       *binsFlag,
		Spacing:    strings.ToLower(*spacingFlag),
		EnergyFlux: *energyFluxFlag,
		Mermaid:    *mermaidFlag,
		ShowParams: *paramsFlag,
		LogFormat:  strings.ToLower(*logFormatFlag),
		LogLevel:   strings.ToLower(*logLevelFlag),
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
