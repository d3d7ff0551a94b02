// Package spectral builds and describes spectral models: immutable values
// wrapping a validated, namespace-resolved dag.Graph.
//
// A Model is created from a single component with FromComponent or New, or by
// composing two models with Compose, Add or Mul. Operands are never
// modified; composition copies both graphs into a fresh arena. Models render
// to a canonical infix expression with String and are rebuilt from one with
// FromString.
package spectral
