package config

import "context"

// Loader is the interface for a format-specific run configuration loader.
type Loader interface {
	// Load reads configuration from the given paths and merges it into a
	// single Run.
	Load(ctx context.Context, paths ...string) (*Run, error)
}
