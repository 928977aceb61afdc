package content

import "errors"

// Sentinel errors
var (
	// ErrSourceFile reports an unreadable source table
	ErrSourceFile = errors.New("failed to read source table")

	// ErrSourceFormat reports a source table that does not decode
	ErrSourceFormat = errors.New("invalid source table")

	// ErrInvalidSource reports a single entry missing required fields
	ErrInvalidSource = errors.New("invalid source")
)
