package attendance

import "time"

// Attendance is one record per employee per calendar date. A day holds up to
// two check-in/check-out sessions; derived fields are recomputed on every
// event and by the nightly recalculation job.
type Attendance struct {
	ID         string
	EmployeeID string
	Date       time.Time
	// RosterID references the roster in effect when the record was created.
	// It is nil when no roster resolved; the record is still written and
	// flagged for manual roster assignment.
	RosterID      *string
	RosterMissing bool

	FirstCheckInTime   *time.Time
	FirstCheckOutTime  *time.Time
	SecondCheckInTime  *time.Time
	SecondCheckOutTime *time.Time

	Status                 Status
	MinutesLate            int
	EarlyDepartureMinutes  int
	WorkingDurationMinutes int
	BreakDurationMinutes   int

	CreatedAt time.Time
	UpdatedAt time.Time

	// DTO
	EmployeeName   *string
	DepartmentID   *string
	DepartmentName *string
}

// Timestamps returns the recorded event timestamps in session order,
// skipping absent ones.
func (a Attendance) Timestamps() []time.Time {
	var out []time.Time
	for _, t := range []*time.Time{a.FirstCheckInTime, a.FirstCheckOutTime, a.SecondCheckInTime, a.SecondCheckOutTime} {
		if t != nil {
			out = append(out, *t)
		}
	}
	return out
}

// LastTimestamp returns the latest recorded event timestamp, or the zero
// time when the record has none.
func (a Attendance) LastTimestamp() time.Time {
	ts := a.Timestamps()
	if len(ts) == 0 {
		return time.Time{}
	}
	return ts[len(ts)-1]
}
