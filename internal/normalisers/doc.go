// Package normalisers provides implementations of the Normaliser interface
// for reference document formats. Each normaliser knows how to extract text
// from a specific MIME type.
//
// Normalisers are registered with a Registry at startup; DefaultRegistry
// wires the built-in set.
package normalisers
