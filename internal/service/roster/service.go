package roster

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Kalpa111334/Dutch-Trails-QR/internal/domain/employee"
	"github.com/Kalpa111334/Dutch-Trails-QR/internal/domain/roster"
	"github.com/Kalpa111334/Dutch-Trails-QR/internal/pkg/database"
	"github.com/Kalpa111334/Dutch-Trails-QR/internal/repository/postgresql"
	"github.com/jackc/pgx/v5"
)

type RosterServiceImpl struct {
	db *database.DB
	roster.RosterRepository
	roster.ScheduleOverrideRepository
	employee.EmployeeRepository
	tieBreak roster.TieBreak
}

func NewRosterService(
	db *database.DB,
	rosterRepo roster.RosterRepository,
	overrideRepo roster.ScheduleOverrideRepository,
	employeeRepo employee.EmployeeRepository,
	tieBreak roster.TieBreak,
) roster.RosterService {
	if tieBreak == "" {
		tieBreak = roster.TieBreakLatestCreated
	}
	return &RosterServiceImpl{
		db:                         db,
		RosterRepository:           rosterRepo,
		ScheduleOverrideRepository: overrideRepo,
		EmployeeRepository:         employeeRepo,
		tieBreak:                   tieBreak,
	}
}

// Resolve implements roster.RosterService.
func (s *RosterServiceImpl) Resolve(ctx context.Context, employeeID string, date time.Time) (roster.Resolved, error) {
	rosters, err := s.RosterRepository.FindActiveRosters(ctx, employeeID, date)
	if err != nil {
		return roster.Unscheduled(), fmt.Errorf("failed to find active rosters: %w", err)
	}
	if len(rosters) == 0 {
		return roster.Unscheduled(), roster.ErrRosterNotFound
	}

	chosen := pickRoster(rosters, s.tieBreak)

	start, errStart := roster.ParseClock(chosen.StartTime)
	end, errEnd := roster.ParseClock(chosen.EndTime)
	if errStart != nil || errEnd != nil {
		// Malformed schedule data degrades to a zero-metrics resolution;
		// the check-in itself must never be blocked by it.
		slog.Warn("roster has unparsable clock times, using zero-metrics fallback",
			"roster_id", chosen.ID, "start_time", chosen.StartTime, "end_time", chosen.EndTime)
		return roster.Resolved{RosterID: chosen.ID}, nil
	}

	resolved := roster.Resolved{
		RosterID:                       chosen.ID,
		Start:                          start,
		End:                            end,
		GracePeriodMinutes:             chosen.GracePeriod(),
		EarlyDepartureThresholdMinutes: chosen.EarlyDepartureThresholdMinutes,
		BreakDurationMinutes:           chosen.BreakDurationMinutes,
		Found:                          true,
	}

	// Stored overrides supersede the roster's base times, but a shift
	// pattern entry for the specific day supersedes both.
	s.applyOverrides(ctx, employeeID, date, &resolved)

	entries, err := roster.ParseShiftPattern(chosen.ShiftPattern)
	if err != nil {
		slog.Warn("roster has malformed shift_pattern, using zero-metrics fallback",
			"roster_id", chosen.ID, "error", err)
		return roster.Resolved{RosterID: chosen.ID}, nil
	}
	if entry := roster.MatchShiftEntry(entries, date); entry != nil {
		if entry.IsOff() {
			resolved.DayOff = true
			return resolved, nil
		}
		if entry.TimeSlot != nil {
			slotStart, errS := roster.ParseClock(entry.TimeSlot.StartTime)
			slotEnd, errE := roster.ParseClock(entry.TimeSlot.EndTime)
			if errS != nil || errE != nil {
				slog.Warn("shift pattern entry has unparsable time slot, using zero-metrics fallback",
					"roster_id", chosen.ID)
				return roster.Resolved{RosterID: chosen.ID}, nil
			}
			resolved.Start = slotStart
			resolved.End = slotEnd
		}
	}

	return resolved, nil
}

// applyOverrides replaces the resolved start/end with a stored schedule
// override covering date, employee scope first. A broken override is skipped
// rather than degrading the whole resolution.
func (s *RosterServiceImpl) applyOverrides(ctx context.Context, employeeID string, date time.Time, resolved *roster.Resolved) {
	emp, err := s.EmployeeRepository.GetByID(ctx, employeeID)
	if err != nil {
		if !errors.Is(err, employee.ErrEmployeeNotFound) {
			slog.Warn("failed to load employee for schedule overrides", "employee_id", employeeID, "error", err)
		}
		return
	}

	overrides, err := s.ScheduleOverrideRepository.FindForDate(ctx, employeeID, emp.DepartmentID, date)
	if err != nil {
		slog.Warn("failed to load schedule overrides", "employee_id", employeeID, "error", err)
		return
	}

	for _, o := range overrides {
		start, errS := roster.ParseClock(o.StartTime)
		end, errE := roster.ParseClock(o.EndTime)
		if errS != nil || errE != nil {
			slog.Warn("schedule override has unparsable clock times, skipping", "override_id", o.ID)
			continue
		}
		resolved.Start = start
		resolved.End = end
		return
	}
}

func pickRoster(rosters []roster.Roster, tieBreak roster.TieBreak) roster.Roster {
	chosen := rosters[0]
	for _, r := range rosters[1:] {
		switch tieBreak {
		case roster.TieBreakEarliestStart:
			if r.StartDate.Before(chosen.StartDate) {
				chosen = r
			}
		default: // latest_created
			if r.CreatedAt.After(chosen.CreatedAt) {
				chosen = r
			}
		}
	}
	return chosen
}

// CreateRoster implements roster.RosterService. Overlapping active rosters
// for the employee are deactivated in the same transaction, keeping the
// at-most-one-active invariant on the write path.
func (s *RosterServiceImpl) CreateRoster(ctx context.Context, req roster.CreateRosterRequest) (roster.RosterResponse, error) {
	if err := req.Validate(); err != nil {
		return roster.RosterResponse{}, err
	}

	if _, err := s.EmployeeRepository.GetByID(ctx, req.EmployeeID); err != nil {
		return roster.RosterResponse{}, err
	}

	startDate, _ := time.Parse("2006-01-02", req.StartDate)
	endDate, _ := time.Parse("2006-01-02", req.EndDate)

	newRoster := roster.Roster{
		EmployeeID:                     req.EmployeeID,
		StartDate:                      startDate,
		EndDate:                        endDate,
		StartTime:                      req.StartTime,
		EndTime:                        req.EndTime,
		BreakDurationMinutes:           req.BreakDurationMinutes,
		EarlyDepartureThresholdMinutes: req.EarlyDepartureThresholdMinutes,
		GracePeriodMinutes:             req.GracePeriodMinutes,
		IsActive:                       true,
		ShiftPattern:                   req.ShiftPattern,
	}

	var created roster.Roster
	err := postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		actives, _, err := s.RosterRepository.List(txCtx, roster.RosterFilter{EmployeeID: req.EmployeeID, Limit: 100})
		if err != nil {
			return err
		}
		for _, r := range actives {
			if r.IsActive && overlaps(r.StartDate, r.EndDate, startDate, endDate) {
				if err := s.RosterRepository.Deactivate(txCtx, r.ID); err != nil {
					return err
				}
			}
		}

		created, err = s.RosterRepository.Create(txCtx, newRoster)
		return err
	})
	if err != nil {
		return roster.RosterResponse{}, fmt.Errorf("failed to create roster: %w", err)
	}

	return mapRosterToResponse(created), nil
}

func overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return !aEnd.Before(bStart) && !bEnd.Before(aStart)
}

// GetRoster implements roster.RosterService.
func (s *RosterServiceImpl) GetRoster(ctx context.Context, id string) (roster.RosterResponse, error) {
	r, err := s.RosterRepository.GetByID(ctx, id)
	if err != nil {
		return roster.RosterResponse{}, err
	}
	return mapRosterToResponse(r), nil
}

// ListRosters implements roster.RosterService.
func (s *RosterServiceImpl) ListRosters(ctx context.Context, filter roster.RosterFilter) (roster.ListRosterResponse, error) {
	rosters, total, err := s.RosterRepository.List(ctx, filter)
	if err != nil {
		return roster.ListRosterResponse{}, fmt.Errorf("failed to list rosters: %w", err)
	}

	responses := make([]roster.RosterResponse, 0, len(rosters))
	for _, r := range rosters {
		responses = append(responses, mapRosterToResponse(r))
	}

	return roster.ListRosterResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		Rosters:    responses,
	}, nil
}

// UpdateRoster implements roster.RosterService.
func (s *RosterServiceImpl) UpdateRoster(ctx context.Context, req roster.UpdateRosterRequest) (roster.RosterResponse, error) {
	if err := req.Validate(); err != nil {
		return roster.RosterResponse{}, err
	}

	updated, err := s.RosterRepository.Update(ctx, req)
	if err != nil {
		return roster.RosterResponse{}, err
	}

	return mapRosterToResponse(updated), nil
}

// DeactivateRoster implements roster.RosterService.
func (s *RosterServiceImpl) DeactivateRoster(ctx context.Context, id string) error {
	return s.RosterRepository.Deactivate(ctx, id)
}

// CreateOverride implements roster.RosterService.
func (s *RosterServiceImpl) CreateOverride(ctx context.Context, req roster.CreateOverrideRequest) (roster.OverrideResponse, error) {
	if err := req.Validate(); err != nil {
		return roster.OverrideResponse{}, err
	}

	if req.EmployeeID != nil {
		if _, err := s.EmployeeRepository.GetByID(ctx, *req.EmployeeID); err != nil {
			return roster.OverrideResponse{}, err
		}
	}

	startDate, _ := time.Parse("2006-01-02", req.StartDate)
	endDate, _ := time.Parse("2006-01-02", req.EndDate)

	created, err := s.ScheduleOverrideRepository.Create(ctx, roster.ScheduleOverride{
		EmployeeID:   req.EmployeeID,
		DepartmentID: req.DepartmentID,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		StartDate:    startDate,
		EndDate:      endDate,
	})
	if err != nil {
		return roster.OverrideResponse{}, fmt.Errorf("failed to create schedule override: %w", err)
	}

	return roster.OverrideResponse{
		ID:           created.ID,
		EmployeeID:   created.EmployeeID,
		DepartmentID: created.DepartmentID,
		StartTime:    created.StartTime,
		EndTime:      created.EndTime,
		StartDate:    created.StartDate.Format("2006-01-02"),
		EndDate:      created.EndDate.Format("2006-01-02"),
		CreatedAt:    created.CreatedAt.Format("2006-01-02 15:04:05"),
	}, nil
}

// DeleteOverride implements roster.RosterService.
func (s *RosterServiceImpl) DeleteOverride(ctx context.Context, id string) error {
	return s.ScheduleOverrideRepository.Delete(ctx, id)
}

func mapRosterToResponse(r roster.Roster) roster.RosterResponse {
	return roster.RosterResponse{
		ID:                             r.ID,
		EmployeeID:                     r.EmployeeID,
		StartDate:                      r.StartDate.Format("2006-01-02"),
		EndDate:                        r.EndDate.Format("2006-01-02"),
		StartTime:                      r.StartTime,
		EndTime:                        r.EndTime,
		BreakDurationMinutes:           r.BreakDurationMinutes,
		EarlyDepartureThresholdMinutes: r.EarlyDepartureThresholdMinutes,
		GracePeriodMinutes:             r.GracePeriod(),
		IsActive:                       r.IsActive,
		ShiftPattern:                   r.ShiftPattern,
		CreatedAt:                      r.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt:                      r.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}
