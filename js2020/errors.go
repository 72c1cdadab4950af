package js2020

import "errors"

// === Schema fault sentinels ===
//
// These halt processing at parse/static-check time, distinct from
// ValidationError, which the validator collects without aborting.
var (
	// ErrInvalidJSON is returned when the input is not well-formed JSON.
	ErrInvalidJSON = errors.New("js2020: invalid json")

	// ErrSchemaSyntax is returned when $schema is present but does not
	// mention 2020-12, or another static well-formedness rule is violated.
	ErrSchemaSyntax = errors.New("js2020: schema syntax error")
)
