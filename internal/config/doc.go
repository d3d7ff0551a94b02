// Package config defines the format-agnostic model of a flux run: which model
// expression to evaluate, over which energy bins, in which mode, and with
// which parameter overrides. Concrete loaders, such as the HCL one, live in
// separate packages.
package config
