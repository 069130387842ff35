package cron

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kalpa111334/Dutch-Trails-QR/internal/domain/attendance"
	attendancesvc "github.com/Kalpa111334/Dutch-Trails-QR/internal/service/attendance"
)

type fakeAttendanceRepo struct {
	attendance.AttendanceRepository
	records map[string]attendance.Attendance
}

func (f *fakeAttendanceRepo) Upsert(ctx context.Context, record attendance.Attendance) (attendance.Attendance, error) {
	f.records[record.ID] = record
	return record, nil
}

func (f *fakeAttendanceRepo) FindOpenFirstSessions(ctx context.Context, cutoff time.Time) ([]attendance.Attendance, error) {
	var out []attendance.Attendance
	for _, r := range f.records {
		if r.Date.Before(cutoff) &&
			(r.Status == attendance.StatusFirstSessionActive || r.Status == attendance.StatusFirstCheckOut) {
			out = append(out, r)
		}
	}
	return out, nil
}

func TestCloseDay_ParksAndSnapshotsOpenSessions(t *testing.T) {
	in := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	out := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	repo := &fakeAttendanceRepo{records: map[string]attendance.Attendance{
		"att-1": {
			ID:               "att-1",
			EmployeeID:       "emp-1",
			Date:             time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
			FirstCheckInTime: &in,
			Status:           attendance.StatusFirstSessionActive,
		},
		"att-2": {
			ID:                "att-2",
			EmployeeID:        "emp-2",
			Date:              time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
			FirstCheckInTime:  &in,
			FirstCheckOutTime: &out,
			Status:            attendance.StatusFirstCheckOut,
			// Worked minutes already settled by the check-out write.
			WorkingDurationMinutes: 240,
		},
	}}

	clock := func() time.Time { return time.Date(2026, 3, 3, 1, 0, 0, 0, time.UTC) }
	jobs := NewAttendanceJobs(repo, nil, attendancesvc.NewMetricsCalculator(), time.Hour, time.Hour, 7, clock)

	require.NoError(t, jobs.CloseDay(context.Background()))

	parked := repo.records["att-1"]
	assert.Equal(t, attendance.StatusCheckedOut, parked.Status)
	// The never-closed session is settled against the end of its own date,
	// so the stored minutes are final and stable across repeated runs.
	assert.Equal(t, 16*60, parked.WorkingDurationMinutes)

	closed := repo.records["att-2"]
	assert.Equal(t, attendance.StatusCheckedOut, closed.Status)
	assert.Equal(t, 240, closed.WorkingDurationMinutes)

	require.NoError(t, jobs.CloseDay(context.Background()))
	assert.Equal(t, 16*60, repo.records["att-1"].WorkingDurationMinutes)
}
