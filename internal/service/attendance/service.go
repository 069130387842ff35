package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/Kalpa111334/Dutch-Trails-QR/internal/domain/attendance"
	"github.com/Kalpa111334/Dutch-Trails-QR/internal/domain/employee"
	"github.com/Kalpa111334/Dutch-Trails-QR/internal/domain/roster"
	"github.com/Kalpa111334/Dutch-Trails-QR/internal/pkg/database"
)

// Clock supplies the current instant. Injected so every derived-metric
// computation is deterministic under test.
type Clock func() time.Time

type AttendanceServiceImpl struct {
	db *database.DB
	attendance.AttendanceRepository
	employee.EmployeeRepository
	rosterService roster.RosterService
	calculator    *MetricsCalculator
	now           Clock
}

func NewAttendanceService(
	db *database.DB,
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	rosterService roster.RosterService,
	calculator *MetricsCalculator,
	now Clock,
) attendance.AttendanceService {
	if now == nil {
		now = time.Now
	}
	return &AttendanceServiceImpl{
		db:                   db,
		AttendanceRepository: attendanceRepo,
		EmployeeRepository:   employeeRepo,
		rosterService:        rosterService,
		calculator:           calculator,
		now:                  now,
	}
}

// CheckIn implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) CheckIn(ctx context.Context, req attendance.CheckInRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}
	return s.recordEvent(ctx, req.EmployeeID, attendance.EventCheckIn, s.eventInstant(req.At))
}

// CheckOut implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) CheckOut(ctx context.Context, req attendance.CheckOutRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}
	return s.recordEvent(ctx, req.EmployeeID, attendance.EventCheckOut, s.eventInstant(req.At))
}

func (s *AttendanceServiceImpl) eventInstant(at *string) time.Time {
	if at != nil {
		if t, err := time.Parse(time.RFC3339, *at); err == nil {
			return t
		}
	}
	return s.now()
}

// recordEvent is the single write path for both event kinds: verify the
// employee, advance the status machine, resolve the roster and recompute
// derived fields, then upsert. The write and the recompute are one logical
// operation, never independent retries.
func (s *AttendanceServiceImpl) recordEvent(ctx context.Context, employeeID string, kind attendance.EventKind, at time.Time) (attendance.AttendanceResponse, error) {
	emp, err := s.EmployeeRepository.GetByID(ctx, employeeID)
	if err != nil {
		// Referential integrity: an attendance write without a resolvable
		// employee is fatal and nothing is persisted.
		return attendance.AttendanceResponse{}, err
	}
	if !emp.IsActive() {
		return attendance.AttendanceResponse{}, employee.ErrEmployeeInactive
	}

	date := roster.DateOnly(at)

	existing, err := s.AttendanceRepository.GetByEmployeeAndDate(ctx, employeeID, date)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to load attendance record: %w", err)
	}

	record := attendance.Attendance{
		EmployeeID: employeeID,
		Date:       date,
		Status:     attendance.StatusAbsent,
	}
	if existing != nil {
		record = *existing
	}

	changed, err := record.Apply(kind, at)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if !changed {
		// Idempotent resubmission: no transition, metrics unchanged. The
		// payload still carries the same fields as a fresh write.
		record.EmployeeName = &emp.FullName
		record.DepartmentName = emp.DepartmentName
		return mapAttendanceToResponse(record), nil
	}

	resolved := s.resolveForDate(ctx, employeeID, date, &record)

	if kind == attendance.EventCheckIn && record.Status == attendance.StatusFirstSessionActive {
		record.MinutesLate = s.calculator.LateMinutes(at, resolved)
	}
	if kind == attendance.EventCheckOut {
		record.EarlyDepartureMinutes = s.calculator.EarlyDepartureMinutes(at, resolved)
	}
	record.BreakDurationMinutes, record.WorkingDurationMinutes = s.calculator.WorkingTime(record, at)

	saved, err := s.AttendanceRepository.Upsert(ctx, record)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to persist attendance event: %w", err)
	}
	saved.EmployeeName = &emp.FullName
	saved.DepartmentName = emp.DepartmentName

	return mapAttendanceToResponse(saved), nil
}

// resolveForDate fetches the applicable roster and stamps the record with
// the reference. A missing roster never blocks recording the event; the
// record is flagged for manual roster assignment instead.
func (s *AttendanceServiceImpl) resolveForDate(ctx context.Context, employeeID string, date time.Time, record *attendance.Attendance) roster.Resolved {
	resolved, err := s.rosterService.Resolve(ctx, employeeID, date)
	if err != nil {
		if !errors.Is(err, roster.ErrRosterNotFound) {
			slog.Warn("roster resolution failed, recording event with zero metrics",
				"employee_id", employeeID, "date", date.Format("2006-01-02"), "error", err)
		}
		record.RosterID = nil
		record.RosterMissing = true
		return roster.Unscheduled()
	}

	record.RosterMissing = false
	if resolved.RosterID != "" {
		id := resolved.RosterID
		record.RosterID = &id
	}
	return resolved
}

// GetAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetAttendance(ctx context.Context, id string) (attendance.AttendanceResponse, error) {
	att, err := s.AttendanceRepository.GetByID(ctx, id)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	return mapAttendanceToResponse(att), nil
}

// ListAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ListAttendance(ctx context.Context, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	attendances, total, err := s.AttendanceRepository.FindByDateRange(ctx, filter)
	if err != nil {
		return attendance.ListAttendanceResponse{}, fmt.Errorf("failed to list attendances: %w", err)
	}

	responses := make([]attendance.AttendanceResponse, 0, len(attendances))
	for _, att := range attendances {
		responses = append(responses, mapAttendanceToResponse(att))
	}

	totalPages := 0
	if filter.Limit > 0 {
		totalPages = int(math.Ceil(float64(total) / float64(filter.Limit)))
	}

	return attendance.ListAttendanceResponse{
		TotalCount:  total,
		Page:        filter.Page,
		Limit:       filter.Limit,
		TotalPages:  totalPages,
		Attendances: responses,
	}, nil
}

// UpdateAttendance implements attendance.AttendanceService.
// Manual corrections accept timestamps only; every derived field is
// recomputed from them, so corrected records can never carry stale metrics.
func (s *AttendanceServiceImpl) UpdateAttendance(ctx context.Context, req attendance.UpdateAttendanceRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	att, err := s.AttendanceRepository.GetByID(ctx, req.ID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	applyTimestamp(&att.FirstCheckInTime, req.FirstCheckInTime)
	applyTimestamp(&att.FirstCheckOutTime, req.FirstCheckOutTime)
	applyTimestamp(&att.SecondCheckInTime, req.SecondCheckInTime)
	applyTimestamp(&att.SecondCheckOutTime, req.SecondCheckOutTime)

	if err := att.ValidateShape(); err != nil {
		return attendance.AttendanceResponse{}, err
	}
	if err := att.ValidateOrder(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if err := s.recompute(ctx, &att); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	saved, err := s.AttendanceRepository.Upsert(ctx, att)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to update attendance: %w", err)
	}
	saved.EmployeeName = att.EmployeeName
	saved.DepartmentName = att.DepartmentName

	return mapAttendanceToResponse(saved), nil
}

func applyTimestamp(dst **time.Time, src *string) {
	if src == nil {
		return
	}
	if t, err := time.Parse(time.RFC3339, *src); err == nil {
		*dst = &t
	}
}

// Recalculate implements attendance.AttendanceService. Each record is
// recomputed and committed independently; a failure partway through leaves
// already-corrected records in place.
func (s *AttendanceServiceImpl) Recalculate(ctx context.Context, start, end time.Time) (int, error) {
	records, _, err := s.AttendanceRepository.FindByDateRange(ctx, attendance.AttendanceFilter{
		StartDate: start,
		EndDate:   end,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to load attendance records: %w", err)
	}

	updated := 0
	for _, att := range records {
		if err := s.recompute(ctx, &att); err != nil {
			slog.Error("recalculation failed for record", "attendance_id", att.ID, "error", err)
			continue
		}
		if _, err := s.AttendanceRepository.Upsert(ctx, att); err != nil {
			slog.Error("failed to persist recalculated record", "attendance_id", att.ID, "error", err)
			continue
		}
		updated++
	}

	return updated, nil
}

// recompute re-resolves the roster for the record's date and rebuilds every
// derived field from the stored timestamps.
func (s *AttendanceServiceImpl) recompute(ctx context.Context, att *attendance.Attendance) error {
	resolved := s.resolveForDate(ctx, att.EmployeeID, att.Date, att)

	att.MinutesLate = 0
	if att.FirstCheckInTime != nil {
		att.MinutesLate = s.calculator.LateMinutes(*att.FirstCheckInTime, resolved)
	}

	att.EarlyDepartureMinutes = 0
	if out := lastCheckOut(*att); out != nil {
		att.EarlyDepartureMinutes = s.calculator.EarlyDepartureMinutes(*out, resolved)
	}

	// An open session on a past date is measured against the end of its own
	// calendar date, never the current clock: a day the end-of-day job
	// already closed must not accrue more worked minutes on every
	// recalculation run.
	now := s.now()
	dayEnd := roster.DateOnly(att.Date).AddDate(0, 0, 1)
	dayEnded := now.After(dayEnd)
	if dayEnded {
		now = dayEnd
	}
	att.BreakDurationMinutes, att.WorkingDurationMinutes = s.calculator.WorkingTime(*att, now)

	att.Status = attendance.DeriveStatus(*att, dayEnded)

	return nil
}

func lastCheckOut(att attendance.Attendance) *time.Time {
	if att.SecondCheckOutTime != nil {
		return att.SecondCheckOutTime
	}
	return att.FirstCheckOutTime
}

// mapAttendanceToResponse converts an Attendance entity to AttendanceResponse
func mapAttendanceToResponse(att attendance.Attendance) attendance.AttendanceResponse {
	var employeeName string
	if att.EmployeeName != nil {
		employeeName = *att.EmployeeName
	}

	return attendance.AttendanceResponse{
		ID:                     att.ID,
		EmployeeID:             att.EmployeeID,
		EmployeeName:           employeeName,
		DepartmentName:         att.DepartmentName,
		Date:                   att.Date.Format("2006-01-02"),
		RosterID:               att.RosterID,
		RosterMissing:          att.RosterMissing,
		FirstCheckInTime:       timePtrToString(att.FirstCheckInTime),
		FirstCheckOutTime:      timePtrToString(att.FirstCheckOutTime),
		SecondCheckInTime:      timePtrToString(att.SecondCheckInTime),
		SecondCheckOutTime:     timePtrToString(att.SecondCheckOutTime),
		Status:                 string(att.Status),
		MinutesLate:            att.MinutesLate,
		EarlyDepartureMinutes:  att.EarlyDepartureMinutes,
		WorkingDurationMinutes: att.WorkingDurationMinutes,
		BreakDurationMinutes:   att.BreakDurationMinutes,
		CreatedAt:              att.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt:              att.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}

// timePtrToString safely converts a *time.Time to a string.
func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	format := t.Format("2006-01-02 15:04:05")
	return &format
}
