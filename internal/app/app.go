package app

import (
	"io"
	"log/slog"

	"github.com/specialistvlad/xspecgo/internal/config"
	"github.com/specialistvlad/xspecgo/internal/flux"
	"github.com/specialistvlad/xspecgo/internal/registry"
	"github.com/specialistvlad/xspecgo/modules"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW      io.Writer
	logger    *slog.Logger
	config    *Config
	registry  *registry.Registry
	loader    config.Loader
	evaluator *flux.Evaluator
}

// NewApp is the constructor for the main application. Results are written to
// outW and logs to logW. When no modules are given the core component
// modules are registered. An unknown log level or format is an error.
func NewApp(outW, logW io.Writer, cfg *Config, loader config.Loader, mods ...registry.Module) (*App, error) {
	logger, err := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	if err != nil {
		return nil, err
	}
	logger.Debug("Logger configured successfully.")

	if len(mods) == 0 {
		mods = modules.Core
	}
	reg := registry.NewWithModules(mods...)
	logger.Debug("All component modules registered.", "count", len(mods), "components", reg.Names())

	return &App{
		outW:      outW,
		logger:    logger,
		config:    cfg,
		registry:  reg,
		loader:    loader,
		evaluator: flux.New(),
	}, nil
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}
