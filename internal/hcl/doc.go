// Package hcl provides the concrete HCL implementation of the config.Loader
// interface. It is responsible for run file discovery, parsing, decoding and
// CTY-to-Go value binding.
package hcl
