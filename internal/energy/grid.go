// Package energy builds energy bin grids for flux evaluation.
package energy

import (
	"fmt"
	"strings"

	"github.com/specialistvlad/xspecgo/internal/flux"
	"gonum.org/v1/gonum/floats"
)

// Spacing selects how grid edges are distributed.
type Spacing int

const (
	// Log spaces edges evenly in log E.
	Log Spacing = iota
	// Linear spaces edges evenly in E.
	Linear
)

// String returns "log" or "linear".
func (s Spacing) String() string {
	switch s {
	case Log:
		return "log"
	case Linear:
		return "linear"
	default:
		return fmt.Sprintf("spacing(%d)", int(s))
	}
}

// ParseSpacing parses "log" or "linear", case-insensitively. The empty
// string is Log.
func ParseSpacing(s string) (Spacing, error) {
	switch strings.ToLower(s) {
	case "", "log":
		return Log, nil
	case "linear":
		return Linear, nil
	default:
		return 0, fmt.Errorf("invalid spacing %q: must be 'log' or 'linear'", s)
	}
}

// Grid is a sequence of contiguous bins [Low[i], High[i]).
type Grid struct {
	Low  []float64
	High []float64
}

// NewGrid returns count contiguous bins covering [low, high).
func NewGrid(low, high float64, count int, spacing Spacing) (Grid, error) {
	if count < 1 {
		return Grid{}, fmt.Errorf("%w: bin count must be positive, got %d", flux.ErrInvalidBins, count)
	}
	if !(low > 0) || !(high > low) {
		return Grid{}, fmt.Errorf("%w: range [%v, %v) must be positive and increasing", flux.ErrInvalidBins, low, high)
	}

	edges := make([]float64, count+1)
	switch spacing {
	case Log:
		floats.LogSpan(edges, low, high)
	case Linear:
		floats.Span(edges, low, high)
	default:
		return Grid{}, fmt.Errorf("unsupported spacing %s", spacing)
	}
	return FromEdges(edges)
}

// FromEdges returns the bins between consecutive edges.
func FromEdges(edges []float64) (Grid, error) {
	if len(edges) < 2 {
		return Grid{}, fmt.Errorf("%w: need at least two edges, got %d", flux.ErrInvalidBins, len(edges))
	}
	g := Grid{
		Low:  append([]float64(nil), edges[:len(edges)-1]...),
		High: append([]float64(nil), edges[1:]...),
	}
	if err := flux.ValidateBins(g.Low, g.High); err != nil {
		return Grid{}, err
	}
	return g, nil
}

// Len returns the number of bins.
func (g Grid) Len() int {
	return len(g.Low)
}

// Centres returns the midpoint of every bin.
func (g Grid) Centres() []float64 {
	c := make([]float64, len(g.Low))
	floats.AddTo(c, g.Low, g.High)
	floats.Scale(0.5, c)
	return c
}
