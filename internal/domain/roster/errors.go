package roster

import "errors"

// Roster domain errors
var (
	// ErrRosterNotFound is recoverable: callers fall back to a zero-metrics
	// resolution and may still persist the attendance event.
	ErrRosterNotFound = errors.New("no active roster found for employee and date")

	ErrOverrideNotFound = errors.New("schedule override not found")
	ErrInvalidWindow    = errors.New("roster end date is before start date")
	ErrRosterInactive   = errors.New("roster has already been deactivated")
)
