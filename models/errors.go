// models/errors.go
package models

import "errors"

var (
	// ErrInvalidTransition is returned when an action is not allowed
	// from the record's current state.
	ErrInvalidTransition = errors.New("invalid state transition")

	// ErrStaleVersion is returned when an update carries a version that
	// no longer matches the stored row.
	ErrStaleVersion = errors.New("stale version")
)
