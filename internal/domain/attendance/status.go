package attendance

import "time"

type Status string

const (
	StatusAbsent              Status = "ABSENT"
	StatusFirstSessionActive  Status = "FIRST_SESSION_ACTIVE"
	StatusFirstCheckOut       Status = "FIRST_CHECK_OUT"
	StatusSecondSessionActive Status = "SECOND_SESSION_ACTIVE"
	StatusCompleted           Status = "COMPLETED"
	// StatusCheckedOut marks a day that ended after the first session with
	// no second session. It is an incomplete-day sub-state, distinct from
	// COMPLETED, and is applied by the end-of-day job.
	StatusCheckedOut Status = "CHECKED_OUT"
)

var StatusValues = []string{
	string(StatusAbsent),
	string(StatusFirstSessionActive),
	string(StatusFirstCheckOut),
	string(StatusSecondSessionActive),
	string(StatusCompleted),
	string(StatusCheckedOut),
}

type EventKind string

const (
	EventCheckIn  EventKind = "check_in"
	EventCheckOut EventKind = "check_out"
)

// Apply records one check-in or check-out event on the record, advancing the
// status machine. It returns false without error when the event is an
// idempotent resubmission (the record is already in the state the event
// would produce). A timestamp not later than every prior timestamp is an
// ErrOutOfOrderEvent; the record is left unchanged on any error.
func (a *Attendance) Apply(kind EventKind, at time.Time) (bool, error) {
	if a.Status == StatusCompleted || a.Status == StatusCheckedOut {
		return false, ErrDayCompleted
	}

	switch kind {
	case EventCheckIn:
		switch a.Status {
		case StatusFirstSessionActive, StatusSecondSessionActive:
			return false, nil
		case StatusAbsent:
			if err := a.checkOrder(at); err != nil {
				return false, err
			}
			a.FirstCheckInTime = &at
			a.Status = StatusFirstSessionActive
			return true, nil
		case StatusFirstCheckOut:
			if err := a.checkOrder(at); err != nil {
				return false, err
			}
			a.SecondCheckInTime = &at
			a.Status = StatusSecondSessionActive
			return true, nil
		}
	case EventCheckOut:
		switch a.Status {
		case StatusFirstCheckOut:
			return false, nil
		case StatusAbsent:
			return false, ErrNotCheckedIn
		case StatusFirstSessionActive:
			if err := a.checkOrder(at); err != nil {
				return false, err
			}
			a.FirstCheckOutTime = &at
			a.Status = StatusFirstCheckOut
			return true, nil
		case StatusSecondSessionActive:
			if err := a.checkOrder(at); err != nil {
				return false, err
			}
			a.SecondCheckOutTime = &at
			a.Status = StatusCompleted
			return true, nil
		}
	}
	return false, ErrInvalidEvent
}

func (a *Attendance) checkOrder(at time.Time) error {
	if last := a.LastTimestamp(); !last.IsZero() && !at.After(last) {
		return ErrOutOfOrderEvent
	}
	return nil
}

// DeriveStatus recomputes the status from the recorded timestamps alone.
// Used by bulk recalculation, where the stored status may be stale. dayEnded
// reports whether the record's calendar date is over; once it is, any record
// without a second check-out parks in CHECKED_OUT and stays there — a closed
// day is never reopened by a later recomputation.
func DeriveStatus(a Attendance, dayEnded bool) Status {
	switch {
	case a.SecondCheckOutTime != nil:
		return StatusCompleted
	case a.SecondCheckInTime != nil:
		return StatusSecondSessionActive
	case a.FirstCheckOutTime != nil:
		if dayEnded {
			return StatusCheckedOut
		}
		return StatusFirstCheckOut
	case a.FirstCheckInTime != nil:
		if dayEnded {
			return StatusCheckedOut
		}
		return StatusFirstSessionActive
	default:
		return StatusAbsent
	}
}

// ValidateOrder checks the non-decreasing timestamp invariant
// first-in <= first-out <= second-in <= second-out.
func (a Attendance) ValidateOrder() error {
	ts := a.Timestamps()
	for i := 1; i < len(ts); i++ {
		if ts[i].Before(ts[i-1]) {
			return ErrOutOfOrderEvent
		}
	}
	return nil
}

// ValidateShape rejects timestamp sets the event machine could never have
// produced: a slot may only be populated when every earlier slot is, so a
// second check-in without a first check-out is invalid.
func (a Attendance) ValidateShape() error {
	filled := []bool{
		a.FirstCheckInTime != nil,
		a.FirstCheckOutTime != nil,
		a.SecondCheckInTime != nil,
		a.SecondCheckOutTime != nil,
	}
	for i := 1; i < len(filled); i++ {
		if filled[i] && !filled[i-1] {
			return ErrInvalidEvent
		}
	}
	return nil
}
