package jtd

import "errors"

// === Schema fault sentinels ===
//
// These halt processing at parse/static-check time, distinct from
// ValidationError, which validators collect without aborting.
var (
	// ErrInvalidJSON is returned when the input is not well-formed JSON.
	ErrInvalidJSON = errors.New("jtd: invalid json")

	// ErrSchemaSyntax is returned when a schema violates form exclusivity,
	// definitions rooting, or another static well-formedness rule.
	ErrSchemaSyntax = errors.New("jtd: schema syntax error")

	// ErrReferenceNotFound is returned when a Ref.name has no matching
	// entry in the root definitions.
	ErrReferenceNotFound = errors.New("jtd: reference not found")

	// ErrCircularReference is returned when a Ref chain closes on itself
	// without passing through a value-carrying node.
	ErrCircularReference = errors.New("jtd: circular reference")

	// ErrInvalidEnum is returned when an Enum form is empty or contains
	// duplicate values.
	ErrInvalidEnum = errors.New("jtd: invalid enum")

	// ErrIO is returned by the external file-reading collaborator, never
	// by the core itself.
	ErrIO = errors.New("jtd: io error")
)
