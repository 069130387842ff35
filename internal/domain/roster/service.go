package roster

import (
	"context"
	"time"
)

// TieBreak selects the winning roster when more than one active roster covers
// the same employee and date. The stored data does not guarantee uniqueness,
// so the policy is configurable rather than assumed.
type TieBreak string

const (
	TieBreakLatestCreated TieBreak = "latest_created"
	TieBreakEarliestStart TieBreak = "earliest_start"
)

type RosterService interface {
	CreateRoster(ctx context.Context, req CreateRosterRequest) (RosterResponse, error)
	GetRoster(ctx context.Context, id string) (RosterResponse, error)
	ListRosters(ctx context.Context, filter RosterFilter) (ListRosterResponse, error)
	UpdateRoster(ctx context.Context, req UpdateRosterRequest) (RosterResponse, error)
	DeactivateRoster(ctx context.Context, id string) error

	// Resolve returns the schedule applying to employeeID on date.
	// ErrRosterNotFound is recoverable; callers fall back to Unscheduled().
	Resolve(ctx context.Context, employeeID string, date time.Time) (Resolved, error)

	CreateOverride(ctx context.Context, req CreateOverrideRequest) (OverrideResponse, error)
	DeleteOverride(ctx context.Context, id string) error
}
