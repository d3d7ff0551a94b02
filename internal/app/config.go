package app

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/specialistvlad/xspecgo/internal/energy"
)

// Defaults used when neither the run file nor a flag sets a grid value.
const (
	DefaultEMin  = 0.5
	DefaultEMax  = 10.0
	DefaultBins  = 100
	DefaultSpace = "log"
)

// Config holds all the necessary configuration for an App instance to run.
// Zero values of the grid fields mean "not set on the command line".
type Config struct {
	RunPath string // .hcl run file or directory
	Expr    string // model expression, overrides the run file

	EMin    float64
	EMax    float64
	Bins    int
	Spacing string

	EnergyFlux bool
	Mermaid    bool
	ShowParams bool

	LogFormat string
	LogLevel  string
}

// NewConfig validates cfg and returns a copy of it.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.RunPath == "" && cfg.Expr == "" {
		return nil, errors.New("a run path or a model expression is required")
	}
	if cfg.Mermaid && cfg.ShowParams {
		return nil, errors.New("mermaid and params output are mutually exclusive")
	}
	if cfg.Bins < 0 {
		return nil, fmt.Errorf("bins must be positive, got %d", cfg.Bins)
	}
	for _, e := range []struct {
		name string
		v    float64
	}{{"emin", cfg.EMin}, {"emax", cfg.EMax}} {
		if e.v < 0 || math.IsNaN(e.v) || math.IsInf(e.v, 0) {
			return nil, fmt.Errorf("%s must be a positive finite energy, got %v", e.name, e.v)
		}
	}
	if _, err := newLogger(cfg.LogLevel, cfg.LogFormat, io.Discard); err != nil {
		return nil, err
	}
	if cfg.Spacing != "" {
		if _, err := energy.ParseSpacing(cfg.Spacing); err != nil {
			return nil, err
		}
	}
	return &cfg, nil
}

// overridesGrid reports whether any grid flag was given.
func (c *Config) overridesGrid() bool {
	return c.EMin != 0 || c.EMax != 0 || c.Bins != 0 || c.Spacing != ""
}
