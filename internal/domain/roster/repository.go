package roster

import (
	"context"
	"time"
)

type RosterRepository interface {
	Create(ctx context.Context, roster Roster) (Roster, error)
	GetByID(ctx context.Context, id string) (Roster, error)
	// FindActiveRosters returns every active roster whose validity window
	// covers date, newest created first. The resolver applies the tie-break.
	FindActiveRosters(ctx context.Context, employeeID string, date time.Time) ([]Roster, error)
	List(ctx context.Context, filter RosterFilter) ([]Roster, int64, error)
	Update(ctx context.Context, req UpdateRosterRequest) (Roster, error)
	// Deactivate supersedes a roster. Rosters are never deleted.
	Deactivate(ctx context.Context, id string) error
}

type ScheduleOverrideRepository interface {
	Create(ctx context.Context, override ScheduleOverride) (ScheduleOverride, error)
	GetByID(ctx context.Context, id string) (ScheduleOverride, error)
	// FindForDate returns overrides covering date for the employee or its
	// department, newest created first.
	FindForDate(ctx context.Context, employeeID, departmentID string, date time.Time) ([]ScheduleOverride, error)
	Delete(ctx context.Context, id string) error
}
