package attendance

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kalpa111334/Dutch-Trails-QR/internal/domain/attendance"
	"github.com/Kalpa111334/Dutch-Trails-QR/internal/domain/employee"
	"github.com/Kalpa111334/Dutch-Trails-QR/internal/domain/roster"
)

type fakeAttendanceRepo struct {
	records map[string]attendance.Attendance // keyed employeeID|date
	nextID  int
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{records: make(map[string]attendance.Attendance)}
}

func (f *fakeAttendanceRepo) key(employeeID string, date time.Time) string {
	return employeeID + "|" + date.Format("2006-01-02")
}

func (f *fakeAttendanceRepo) Upsert(ctx context.Context, record attendance.Attendance) (attendance.Attendance, error) {
	if record.ID == "" {
		f.nextID++
		record.ID = fmt.Sprintf("att-%d", f.nextID)
	}
	f.records[f.key(record.EmployeeID, record.Date)] = record
	return record, nil
}

func (f *fakeAttendanceRepo) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	for _, r := range f.records {
		if r.ID == id {
			return r, nil
		}
	}
	return attendance.Attendance{}, attendance.ErrAttendanceNotFound
}

func (f *fakeAttendanceRepo) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*attendance.Attendance, error) {
	if r, ok := f.records[f.key(employeeID, date)]; ok {
		return &r, nil
	}
	return nil, nil
}

func (f *fakeAttendanceRepo) FindByDateRange(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.Attendance, int64, error) {
	var out []attendance.Attendance
	for _, r := range f.records {
		if !r.Date.Before(filter.StartDate) && !r.Date.After(filter.EndDate) {
			out = append(out, r)
		}
	}
	return out, int64(len(out)), nil
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

type staticEmployeeRepo struct {
	employee.EmployeeRepository
	employees map[string]employee.Employee
}

func (f *staticEmployeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	emp, ok := f.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

type staticResolver struct {
	roster.RosterService
	resolved roster.Resolved
	err      error
}

func (f *staticResolver) Resolve(ctx context.Context, employeeID string, date time.Time) (roster.Resolved, error) {
	if f.err != nil {
		return roster.Unscheduled(), f.err
	}
	return f.resolved, nil
}

func fixedClock(value string) Clock {
	t, _ := time.Parse(time.RFC3339, value)
	return func() time.Time { return t }
}

func newTestService(repo *fakeAttendanceRepo, resolver roster.RosterService, now Clock) attendance.AttendanceService {
	employees := map[string]employee.Employee{
		"emp-1": {ID: "emp-1", DepartmentID: "dept-1", FullName: "Asha Perera", Status: employee.StatusActive},
		"emp-2": {ID: "emp-2", DepartmentID: "dept-1", FullName: "Nimal Silva", Status: employee.StatusInactive},
	}
	return NewAttendanceService(nil, repo, &staticEmployeeRepo{employees: employees}, resolver, NewMetricsCalculator(), now)
}

func scheduledResolver(start, end string, grace int) *staticResolver {
	s, _ := roster.ParseClock(start)
	e, _ := roster.ParseClock(end)
	return &staticResolver{resolved: roster.Resolved{
		RosterID:           "roster-1",
		Start:              s,
		End:                e,
		GracePeriodMinutes: grace,
		Found:              true,
	}}
}

func TestCheckIn_ComputesLateness(t *testing.T) {
	repo := newFakeAttendanceRepo()
	svc := newTestService(repo, scheduledResolver("08:00", "17:00", 15), fixedClock("2026-03-02T08:20:00Z"))

	resp, err := svc.CheckIn(context.Background(), attendance.CheckInRequest{EmployeeID: "emp-1"})
	require.NoError(t, err)

	assert.Equal(t, string(attendance.StatusFirstSessionActive), resp.Status)
	assert.Equal(t, 5, resp.MinutesLate)
	assert.False(t, resp.RosterMissing)
	require.NotNil(t, resp.RosterID)
	assert.Equal(t, "roster-1", *resp.RosterID)
	assert.Equal(t, "Asha Perera", resp.EmployeeName)
}

func TestCheckIn_UnknownEmployeeIsFatal(t *testing.T) {
	repo := newFakeAttendanceRepo()
	svc := newTestService(repo, scheduledResolver("08:00", "17:00", 0), fixedClock("2026-03-02T08:00:00Z"))

	_, err := svc.CheckIn(context.Background(), attendance.CheckInRequest{EmployeeID: "ghost"})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
	assert.Empty(t, repo.records)
}

func TestCheckIn_InactiveEmployee(t *testing.T) {
	repo := newFakeAttendanceRepo()
	svc := newTestService(repo, scheduledResolver("08:00", "17:00", 0), fixedClock("2026-03-02T08:00:00Z"))

	_, err := svc.CheckIn(context.Background(), attendance.CheckInRequest{EmployeeID: "emp-2"})
	assert.ErrorIs(t, err, employee.ErrEmployeeInactive)
	assert.Empty(t, repo.records)
}

func TestCheckIn_MissingRosterStillRecords(t *testing.T) {
	repo := newFakeAttendanceRepo()
	resolver := &staticResolver{err: roster.ErrRosterNotFound}
	svc := newTestService(repo, resolver, fixedClock("2026-03-02T09:30:00Z"))

	resp, err := svc.CheckIn(context.Background(), attendance.CheckInRequest{EmployeeID: "emp-1"})
	require.NoError(t, err)

	assert.True(t, resp.RosterMissing)
	assert.Nil(t, resp.RosterID)
	assert.Equal(t, 0, resp.MinutesLate)
	assert.Equal(t, string(attendance.StatusFirstSessionActive), resp.Status)
	assert.Len(t, repo.records, 1)
}

func TestCheckIn_IdempotentResubmission(t *testing.T) {
	repo := newFakeAttendanceRepo()
	svc := newTestService(repo, scheduledResolver("08:00", "17:00", 15), fixedClock("2026-03-02T08:20:00Z"))

	first, err := svc.CheckIn(context.Background(), attendance.CheckInRequest{EmployeeID: "emp-1"})
	require.NoError(t, err)

	// Re-sent while still checked in: same record back, metrics untouched.
	later := "2026-03-02T09:45:00Z"
	second, err := svc.CheckIn(context.Background(), attendance.CheckInRequest{EmployeeID: "emp-1", At: &later})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.MinutesLate, second.MinutesLate)
	assert.Equal(t, first.FirstCheckInTime, second.FirstCheckInTime)
	// Same endpoint, same payload shape as the fresh write.
	assert.Equal(t, first.EmployeeName, second.EmployeeName)
	assert.Equal(t, first.DepartmentName, second.DepartmentName)
	assert.Len(t, repo.records, 1)
}

func TestCheckOut_WithoutCheckIn(t *testing.T) {
	repo := newFakeAttendanceRepo()
	svc := newTestService(repo, scheduledResolver("08:00", "17:00", 0), fixedClock("2026-03-02T12:00:00Z"))

	_, err := svc.CheckOut(context.Background(), attendance.CheckOutRequest{EmployeeID: "emp-1"})
	assert.ErrorIs(t, err, attendance.ErrNotCheckedIn)
	assert.Empty(t, repo.records)
}

func TestCheckOut_OutOfOrderTimestamp(t *testing.T) {
	repo := newFakeAttendanceRepo()
	svc := newTestService(repo, scheduledResolver("08:00", "17:00", 0), fixedClock("2026-03-02T08:00:00Z"))

	_, err := svc.CheckIn(context.Background(), attendance.CheckInRequest{EmployeeID: "emp-1"})
	require.NoError(t, err)

	earlier := "2026-03-02T07:30:00Z"
	_, err = svc.CheckOut(context.Background(), attendance.CheckOutRequest{EmployeeID: "emp-1", At: &earlier})
	assert.ErrorIs(t, err, attendance.ErrOutOfOrderEvent)
}

func TestFullDay_MetricsAndStatus(t *testing.T) {
	repo := newFakeAttendanceRepo()
	resolver := scheduledResolver("08:00", "17:00", 15)
	svc := newTestService(repo, resolver, fixedClock("2026-03-02T08:00:00Z"))

	events := []struct {
		kind attendance.EventKind
		at   string
	}{
		{attendance.EventCheckIn, "2026-03-02T08:00:00Z"},
		{attendance.EventCheckOut, "2026-03-02T12:00:00Z"},
		{attendance.EventCheckIn, "2026-03-02T13:00:00Z"},
		{attendance.EventCheckOut, "2026-03-02T17:00:00Z"},
	}

	var resp attendance.AttendanceResponse
	var err error
	for _, ev := range events {
		at := ev.at
		if ev.kind == attendance.EventCheckIn {
			resp, err = svc.CheckIn(context.Background(), attendance.CheckInRequest{EmployeeID: "emp-1", At: &at})
		} else {
			resp, err = svc.CheckOut(context.Background(), attendance.CheckOutRequest{EmployeeID: "emp-1", At: &at})
		}
		require.NoError(t, err)
	}

	assert.Equal(t, string(attendance.StatusCompleted), resp.Status)
	assert.Equal(t, 0, resp.MinutesLate)
	assert.Equal(t, 0, resp.EarlyDepartureMinutes)
	assert.Equal(t, 60, resp.BreakDurationMinutes)
	assert.Equal(t, 480, resp.WorkingDurationMinutes)

	at := "2026-03-02T18:00:00Z"
	_, err = svc.CheckIn(context.Background(), attendance.CheckInRequest{EmployeeID: "emp-1", At: &at})
	assert.ErrorIs(t, err, attendance.ErrDayCompleted)
}

func TestRecalculate_RebuildsDerivedFields(t *testing.T) {
	repo := newFakeAttendanceRepo()
	in := time.Date(2026, 3, 2, 8, 30, 0, 0, time.UTC)
	out := time.Date(2026, 3, 2, 16, 0, 0, 0, time.UTC)
	_, err := repo.Upsert(context.Background(), attendance.Attendance{
		EmployeeID:       "emp-1",
		Date:             time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		FirstCheckInTime: &in,
		FirstCheckOutTime: &out,
		Status:           attendance.StatusFirstCheckOut,
		// Stale metrics from a since-corrected roster.
		MinutesLate: 99,
	})
	require.NoError(t, err)

	svc := newTestService(repo, scheduledResolver("08:00", "17:00", 15), fixedClock("2026-03-04T02:00:00Z"))

	updated, err := svc.Recalculate(context.Background(),
		time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 1, updated)

	rec := repo.records[repo.key("emp-1", time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC))]
	assert.Equal(t, 15, rec.MinutesLate)
	assert.Equal(t, 60, rec.EarlyDepartureMinutes)
	assert.Equal(t, 450, rec.WorkingDurationMinutes)
	// The day is over with no second session, so the record parks in the
	// incomplete-day sub-state.
	assert.Equal(t, attendance.StatusCheckedOut, rec.Status)
}

func TestRecalculate_KeepsClosedDayParked(t *testing.T) {
	repo := newFakeAttendanceRepo()
	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	in := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	// Parked by the end-of-day job: first check-in only, day long over.
	_, err := repo.Upsert(context.Background(), attendance.Attendance{
		EmployeeID:       "emp-1",
		Date:             date,
		FirstCheckInTime: &in,
		Status:           attendance.StatusCheckedOut,
	})
	require.NoError(t, err)

	svc := newTestService(repo, scheduledResolver("08:00", "17:00", 15), fixedClock("2026-03-05T02:00:00Z"))

	recalc := func() attendance.Attendance {
		updated, err := svc.Recalculate(context.Background(),
			time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		require.Equal(t, 1, updated)
		return repo.records[repo.key("emp-1", date)]
	}

	rec := recalc()
	assert.Equal(t, attendance.StatusCheckedOut, rec.Status)
	// The open session is measured to the end of its own date, not to the
	// current clock three days later.
	assert.Equal(t, 16*60, rec.WorkingDurationMinutes)

	// A second run must not grow the stored minutes or reopen the day.
	again := recalc()
	assert.Equal(t, rec.WorkingDurationMinutes, again.WorkingDurationMinutes)
	assert.Equal(t, attendance.StatusCheckedOut, again.Status)
}

func TestUpdateAttendance_RejectsSkippedSessionSlot(t *testing.T) {
	repo := newFakeAttendanceRepo()
	in := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	saved, err := repo.Upsert(context.Background(), attendance.Attendance{
		EmployeeID:       "emp-1",
		Date:             time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		FirstCheckInTime: &in,
		Status:           attendance.StatusFirstSessionActive,
	})
	require.NoError(t, err)

	svc := newTestService(repo, scheduledResolver("08:00", "17:00", 15), fixedClock("2026-03-02T14:00:00Z"))

	// Second check-in without a first check-out: no event sequence could
	// have produced this, so the correction is rejected.
	secondIn := "2026-03-02T13:00:00Z"
	_, err = svc.UpdateAttendance(context.Background(), attendance.UpdateAttendanceRequest{
		ID:                saved.ID,
		SecondCheckInTime: &secondIn,
	})
	assert.ErrorIs(t, err, attendance.ErrInvalidEvent)

	rec := repo.records[repo.key("emp-1", time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC))]
	assert.Nil(t, rec.SecondCheckInTime)
	assert.Equal(t, attendance.StatusFirstSessionActive, rec.Status)
}
