package app

import (
	"context"
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/specialistvlad/xspecgo/internal/config"
	"github.com/specialistvlad/xspecgo/internal/ctxlog"
	"github.com/specialistvlad/xspecgo/internal/energy"
	"github.com/specialistvlad/xspecgo/internal/flux"
	"github.com/specialistvlad/xspecgo/internal/paramid"
	"github.com/specialistvlad/xspecgo/internal/spectral"
)

// Run executes one evaluation: it resolves the run configuration, builds the
// model and writes the requested output.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	run, err := a.resolveRun(ctx)
	if err != nil {
		return err
	}

	model, err := spectral.FromString(a.registry, run.Model)
	if err != nil {
		return fmt.Errorf("failed to build model: %w", err)
	}
	a.logger.Debug("Model built.", "model", model.String(), "parameter_count", model.ParameterCount())

	if a.config.Mermaid {
		_, err := fmt.Fprintln(a.outW, model.Mermaid())
		return err
	}

	params := parametersFromRun(run)
	if _, err := model.Bind(params); err != nil {
		return fmt.Errorf("failed to bind parameters: %w", err)
	}

	if a.config.ShowParams {
		return a.writeParameters(model, params)
	}

	grid, err := gridFromRun(run)
	if err != nil {
		return err
	}
	mode := flux.Photon
	if run.Mode == "energy" {
		mode = flux.Energy
	}

	values, err := a.evaluator.Evaluate(model, params, grid.Low, grid.High, mode)
	if err != nil {
		return fmt.Errorf("flux evaluation failed: %w", err)
	}
	a.logger.Info("Flux evaluated.", "model", model.String(), "mode", mode.String(), "bins", grid.Len())

	return a.writeFlux(grid, values)
}

// resolveRun loads the run file, if any, and overlays the command-line
// settings on it.
func (a *App) resolveRun(ctx context.Context) (*config.Run, error) {
	run := &config.Run{}
	if a.config.RunPath != "" {
		if a.loader == nil {
			return nil, errors.New("a run path was given but no loader is configured")
		}
		loaded, err := a.loader.Load(ctx, a.config.RunPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load run configuration: %w", err)
		}
		run = loaded
		a.logger.Debug("Run configuration loaded.", "sources", run.Sources)
	}

	if a.config.Expr != "" {
		run.Model = a.config.Expr
	}
	if a.config.EnergyFlux {
		run.Mode = "energy"
	}

	if a.config.overridesGrid() || (run.Bins == nil && len(run.Edges) == 0) {
		bins := config.Bins{Low: DefaultEMin, High: DefaultEMax, Count: DefaultBins, Spacing: DefaultSpace}
		if run.Bins != nil {
			bins = *run.Bins
		}
		if a.config.EMin != 0 {
			bins.Low = a.config.EMin
		}
		if a.config.EMax != 0 {
			bins.High = a.config.EMax
		}
		if a.config.Bins != 0 {
			bins.Count = a.config.Bins
		}
		if a.config.Spacing != "" {
			bins.Spacing = a.config.Spacing
		}
		run.Bins = &bins
		run.Edges = nil
	}

	if err := run.Validate(); err != nil {
		return nil, err
	}
	return run, nil
}

func gridFromRun(run *config.Run) (energy.Grid, error) {
	if len(run.Edges) > 0 {
		return energy.FromEdges(run.Edges)
	}
	spacing, err := energy.ParseSpacing(run.Bins.Spacing)
	if err != nil {
		return energy.Grid{}, err
	}
	return energy.NewGrid(run.Bins.Low, run.Bins.High, run.Bins.Count, spacing)
}

func parametersFromRun(run *config.Run) spectral.Parameters {
	params := make(spectral.Parameters, len(run.Parameters))
	for component, values := range run.Parameters {
		for name, v := range values {
			params.Set(paramid.New(component, name), v)
		}
	}
	return params
}

func (a *App) writeFlux(grid energy.Grid, values []float64) error {
	w := tabwriter.NewWriter(a.outW, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "e_low\te_high\tflux")
	for i, v := range values {
		fmt.Fprintf(w, "%.6g\t%.6g\t%.6g\n", grid.Low[i], grid.High[i], v)
	}
	return w.Flush()
}

func (a *App) writeParameters(model *spectral.Model, params spectral.Parameters) error {
	bound, err := model.Bind(params)
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(a.outW, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "parameter\tvalue\tunit\tdescription")
	for _, ref := range model.Components() {
		for _, p := range ref.Component.Params {
			fmt.Fprintf(w, "%s\t%.6g\t%s\t%s\n", paramid.New(ref.DisplayName, p.Name), bound[ref.ID][p.Name], p.Unit, p.Description)
		}
	}
	return w.Flush()
}
