// Package registry provides the central "glue" for the component system.
//
// The Registry stores the mapping between the kind names used in model
// expressions (e.g., "Powerlaw") and the compiled Go descriptors that
// implement each spectral component. Modules register their components once
// during startup; after that the registry is treated as read-only and is safe
// for concurrent lookups by the expression parser.
package registry
