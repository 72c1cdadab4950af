// Package fuzz implements the schema-directed fuzzer: valid-instance
// generation, named semantic mutations that violate a schema while staying
// well-formed JSON, and named syntactic mutations that corrupt serialised
// bytes. Every entry point takes its pseudo-random generator as a
// parameter (spec §3.5) so two concurrent fuzz calls never share mutable
// state. A fixed seed does not by itself fix the output: properties,
// optional properties and discriminator tags are walked in Go map
// iteration order, which can differ between runs.
package fuzz

import "math/rand"

// New wraps a caller-supplied seed in the generator the rest of this
// package expects, following spec §3.5's injected-entropy requirement.
func New(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}
