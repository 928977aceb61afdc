package query

import "errors"

// Sentinel errors
var (
	// ErrMalformedQuery reports a clause whose arguments cannot be parsed
	ErrMalformedQuery = errors.New("malformed query")

	// ErrUnknownQuery reports a clause naming an unregistered predicate
	ErrUnknownQuery = errors.New("unknown query")

	// ErrUnknownActor reports a predicate referencing an actor the world does not have
	ErrUnknownActor = errors.New("nonexistent actor")
)
