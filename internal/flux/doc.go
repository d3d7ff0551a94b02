// Package flux evaluates spectral models over energy bins.
//
// The continuum of a model is evaluated at the bin edges, combined through
// the model's operations and integrated per bin with the trapezoidal rule in
// log-energy space. Emission lines are added separately from their analytic
// fine structure, scaled by every multiplicative component that attenuates
// them, evaluated at the line's mean energy in the bin.
package flux
