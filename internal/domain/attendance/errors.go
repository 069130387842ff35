package attendance

import "errors"

// Attendance domain errors
var (
	// ErrOutOfOrderEvent rejects a timestamp that does not come after every
	// timestamp already on the record. Surfaced as a validation failure at
	// the write boundary; the original record is unchanged.
	ErrOutOfOrderEvent = errors.New("event timestamp precedes an already-recorded event")

	ErrNotCheckedIn = errors.New("you have not checked in yet")
	ErrDayCompleted = errors.New("attendance for this day is already completed")
	ErrInvalidEvent = errors.New("event is not valid in the current attendance state")

	ErrAttendanceNotFound = errors.New("attendance record not found")
)
