// Package dag holds the graph representation of a spectral model: an arena of
// tagged nodes (components, operations, and the single "out" sink) addressed
// by integer ids that are only meaningful inside the graph that issued them.
//
// Graphs are grown by appending nodes and edges and are merged by importing
// another graph's arena under fresh ids. There is no global identifier space,
// so two graphs never share a node.
package dag
