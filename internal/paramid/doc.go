/*
Package paramid provides a structured representation for parameter
addresses within a resolved model, based on the canonical format
`component.parameter`, e.g. `powerlaw_1.alpha`.

The component segment is the namespace-resolved display name of a component
node; the parameter segment is a name declared by its component kind.
*/
package paramid
