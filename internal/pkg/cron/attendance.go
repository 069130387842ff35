package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Kalpa111334/Dutch-Trails-QR/internal/domain/attendance"
	"github.com/Kalpa111334/Dutch-Trails-QR/internal/domain/roster"
	attendancesvc "github.com/Kalpa111334/Dutch-Trails-QR/internal/service/attendance"
)

// AttendanceJobs closes out stale attendance days and re-runs the metric
// computations over a trailing window, so corrected rosters and manual
// timestamp edits converge to consistent derived fields.
type AttendanceJobs struct {
	attendanceRepo    attendance.AttendanceRepository
	attendanceService attendance.AttendanceService
	calculator        *attendancesvc.MetricsCalculator

	closeDayInterval    time.Duration
	recalculateInterval time.Duration
	recalculateDays     int

	now func() time.Time
}

func NewAttendanceJobs(
	attendanceRepo attendance.AttendanceRepository,
	attendanceService attendance.AttendanceService,
	calculator *attendancesvc.MetricsCalculator,
	closeDayInterval time.Duration,
	recalculateInterval time.Duration,
	recalculateDays int,
	now func() time.Time,
) *AttendanceJobs {
	if now == nil {
		now = time.Now
	}
	return &AttendanceJobs{
		attendanceRepo:      attendanceRepo,
		attendanceService:   attendanceService,
		calculator:          calculator,
		closeDayInterval:    closeDayInterval,
		recalculateInterval: recalculateInterval,
		recalculateDays:     recalculateDays,
		now:                 now,
	}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("close_day", j.closeDayInterval, j.CloseDay)
	scheduler.AddJob("recalculate_metrics", j.recalculateInterval, j.RecalculateMetrics)
}

// CloseDay parks records from past dates that never completed their second
// session in the CHECKED_OUT sub-state. Each record is committed on its own;
// one failure never blocks the rest.
func (j *AttendanceJobs) CloseDay(ctx context.Context) error {
	cutoff := roster.DateOnly(j.now())

	open, err := j.attendanceRepo.FindOpenFirstSessions(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("failed to find open sessions: %w", err)
	}
	if len(open) == 0 {
		return nil
	}

	closedCount := 0
	for _, record := range open {
		record.Status = attendance.StatusCheckedOut

		// Snapshot the open session against the end of its own calendar
		// date. The stored worked minutes are final from here on.
		dayEnd := roster.DateOnly(record.Date).AddDate(0, 0, 1)
		record.BreakDurationMinutes, record.WorkingDurationMinutes = j.calculator.WorkingTime(record, dayEnd)

		if _, err := j.attendanceRepo.Upsert(ctx, record); err != nil {
			slog.Error("Cron: Failed to close attendance day",
				"attendance_id", record.ID,
				"employee_id", record.EmployeeID,
				"error", err)
			continue
		}
		closedCount++
	}

	slog.Info("Cron: Closed stale attendance days", "count", closedCount)
	return nil
}

// RecalculateMetrics re-derives every stored metric over the trailing window.
func (j *AttendanceJobs) RecalculateMetrics(ctx context.Context) error {
	end := roster.DateOnly(j.now())
	start := end.AddDate(0, 0, -j.recalculateDays)

	updated, err := j.attendanceService.Recalculate(ctx, start, end)
	if err != nil {
		return fmt.Errorf("failed to recalculate metrics: %w", err)
	}

	slog.Info("Cron: Recalculated attendance metrics",
		"updated", updated,
		"window_start", start.Format("2006-01-02"),
		"window_end", end.Format("2006-01-02"))
	return nil
}
