package attendance

import (
	"context"
	"time"
)

type AttendanceRepository interface {
	// Upsert creates the record on first check-in of the day and updates it
	// on every subsequent event or recomputation.
	Upsert(ctx context.Context, record Attendance) (Attendance, error)

	GetByID(ctx context.Context, id string) (Attendance, error)

	// GetByEmployeeAndDate returns nil when the employee has no record for
	// the date yet.
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*Attendance, error)

	FindByDateRange(ctx context.Context, filter AttendanceFilter) ([]Attendance, int64, error)

	// FindOpenFirstSessions returns records still in FIRST_SESSION_ACTIVE or
	// FIRST_CHECK_OUT for dates before cutoff; the end-of-day job closes them.
	FindOpenFirstSessions(ctx context.Context, cutoff time.Time) ([]Attendance, error)
}
