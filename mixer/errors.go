package mixer

import "errors"

// Sentinel errors
var (
	// ErrMissingResource reports a cue name the bank cannot resolve
	ErrMissingResource = errors.New("cue not found")

	// ErrMissingCapability reports a required collaborator absent from Options
	ErrMissingCapability = errors.New("missing mixer capability")
)
