// Package exprsyntax holds the HCL-level helpers behind the model expression
// language: keyword-argument rewriting, expression parsing, numeric literal
// decoding and formatting, and analysis of the components an expression
// calls.
package exprsyntax
