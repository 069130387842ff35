package roster

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kalpa111334/Dutch-Trails-QR/internal/domain/employee"
	"github.com/Kalpa111334/Dutch-Trails-QR/internal/domain/roster"
)

type fakeRosterRepo struct {
	roster.RosterRepository
	rosters []roster.Roster
}

func (f *fakeRosterRepo) FindActiveRosters(ctx context.Context, employeeID string, date time.Time) ([]roster.Roster, error) {
	var out []roster.Roster
	for _, r := range f.rosters {
		if r.EmployeeID == employeeID && r.Covers(date) {
			out = append(out, r)
		}
	}
	return out, nil
}

type fakeOverrideRepo struct {
	roster.ScheduleOverrideRepository
	overrides []roster.ScheduleOverride
}

func (f *fakeOverrideRepo) FindForDate(ctx context.Context, employeeID, departmentID string, date time.Time) ([]roster.ScheduleOverride, error) {
	var out []roster.ScheduleOverride
	for _, o := range f.overrides {
		if !o.Covers(date) {
			continue
		}
		if (o.EmployeeID != nil && *o.EmployeeID == employeeID) ||
			(o.DepartmentID != nil && *o.DepartmentID == departmentID) {
			out = append(out, o)
		}
	}
	return out, nil
}

type fakeEmployeeRepo struct {
	employee.EmployeeRepository
	employees map[string]employee.Employee
}

func (f *fakeEmployeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	emp, ok := f.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

func newTestResolver(rosters []roster.Roster, overrides []roster.ScheduleOverride, tieBreak roster.TieBreak) roster.RosterService {
	employees := map[string]employee.Employee{
		"emp-1": {ID: "emp-1", DepartmentID: "dept-1", FullName: "Asha Perera", Status: employee.StatusActive},
	}
	return NewRosterService(
		nil,
		&fakeRosterRepo{rosters: rosters},
		&fakeOverrideRepo{overrides: overrides},
		&fakeEmployeeRepo{employees: employees},
		tieBreak,
	)
}

func date(t *testing.T, value string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", value)
	require.NoError(t, err)
	return d
}

func baseRoster(id string) roster.Roster {
	grace := 15
	return roster.Roster{
		ID:                 id,
		EmployeeID:         "emp-1",
		StartDate:          time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		EndDate:            time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
		StartTime:          "08:00",
		EndTime:            "17:00",
		GracePeriodMinutes: &grace,
		IsActive:           true,
		CreatedAt:          time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestResolve_NoActiveRoster(t *testing.T) {
	svc := newTestResolver(nil, nil, roster.TieBreakLatestCreated)

	resolved, err := svc.Resolve(context.Background(), "emp-1", date(t, "2026-03-02"))
	assert.ErrorIs(t, err, roster.ErrRosterNotFound)
	assert.False(t, resolved.Found)
}

func TestResolve_BaseTimes(t *testing.T) {
	svc := newTestResolver([]roster.Roster{baseRoster("r-1")}, nil, roster.TieBreakLatestCreated)

	resolved, err := svc.Resolve(context.Background(), "emp-1", date(t, "2026-03-02"))
	require.NoError(t, err)
	assert.True(t, resolved.Found)
	assert.Equal(t, "r-1", resolved.RosterID)
	assert.Equal(t, "08:00", resolved.Start.String())
	assert.Equal(t, "17:00", resolved.End.String())
	assert.Equal(t, 15, resolved.GracePeriodMinutes)
	assert.False(t, resolved.DayOff)
}

func TestResolve_NilGraceReadsAsZero(t *testing.T) {
	r := baseRoster("r-1")
	r.GracePeriodMinutes = nil
	svc := newTestResolver([]roster.Roster{r}, nil, roster.TieBreakLatestCreated)

	resolved, err := svc.Resolve(context.Background(), "emp-1", date(t, "2026-03-02"))
	require.NoError(t, err)
	assert.Equal(t, 0, resolved.GracePeriodMinutes)
}

func TestResolve_TieBreak(t *testing.T) {
	older := baseRoster("r-older")
	older.StartDate = time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	older.CreatedAt = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := baseRoster("r-newer")
	newer.CreatedAt = time.Date(2026, 2, 15, 0, 0, 0, 0, time.UTC)

	latest := newTestResolver([]roster.Roster{older, newer}, nil, roster.TieBreakLatestCreated)
	resolved, err := latest.Resolve(context.Background(), "emp-1", date(t, "2026-03-02"))
	require.NoError(t, err)
	assert.Equal(t, "r-newer", resolved.RosterID)

	earliest := newTestResolver([]roster.Roster{older, newer}, nil, roster.TieBreakEarliestStart)
	resolved, err = earliest.Resolve(context.Background(), "emp-1", date(t, "2026-03-02"))
	require.NoError(t, err)
	assert.Equal(t, "r-older", resolved.RosterID)
}

func TestResolve_MalformedClockTimes(t *testing.T) {
	r := baseRoster("r-bad")
	r.StartTime = "not-a-time"
	svc := newTestResolver([]roster.Roster{r}, nil, roster.TieBreakLatestCreated)

	// Malformed stored data must not surface as an error; the resolution
	// degrades to zero metrics but keeps the roster reference.
	resolved, err := svc.Resolve(context.Background(), "emp-1", date(t, "2026-03-02"))
	require.NoError(t, err)
	assert.Equal(t, "r-bad", resolved.RosterID)
	assert.False(t, resolved.Found)
}

func TestResolve_MalformedShiftPattern(t *testing.T) {
	r := baseRoster("r-bad")
	r.ShiftPattern = []byte(`{"this is": "not an array"`)
	svc := newTestResolver([]roster.Roster{r}, nil, roster.TieBreakLatestCreated)

	resolved, err := svc.Resolve(context.Background(), "emp-1", date(t, "2026-03-02"))
	require.NoError(t, err)
	assert.Equal(t, "r-bad", resolved.RosterID)
	assert.False(t, resolved.Found)
}

func TestResolve_ShiftPatternDayOff(t *testing.T) {
	r := baseRoster("r-1")
	// 2026-03-01 is a Sunday; weekday entry 0 marks it off.
	r.ShiftPattern = []byte(`[{"day": 0, "shift": "off"}]`)
	svc := newTestResolver([]roster.Roster{r}, nil, roster.TieBreakLatestCreated)

	resolved, err := svc.Resolve(context.Background(), "emp-1", date(t, "2026-03-01"))
	require.NoError(t, err)
	assert.True(t, resolved.Found)
	assert.True(t, resolved.DayOff)

	// Monday is unaffected.
	resolved, err = svc.Resolve(context.Background(), "emp-1", date(t, "2026-03-02"))
	require.NoError(t, err)
	assert.False(t, resolved.DayOff)
}

func TestResolve_ShiftPatternDateBeatsWeekday(t *testing.T) {
	r := baseRoster("r-1")
	r.ShiftPattern = []byte(`[
		{"day": 1, "shift": "morning", "time_slot": {"start_time": "06:00", "end_time": "14:00"}},
		{"date": "2026-03-02", "shift": "evening", "time_slot": {"start_time": "14:00", "end_time": "22:00"}}
	]`)
	svc := newTestResolver([]roster.Roster{r}, nil, roster.TieBreakLatestCreated)

	resolved, err := svc.Resolve(context.Background(), "emp-1", date(t, "2026-03-02"))
	require.NoError(t, err)
	assert.Equal(t, "14:00", resolved.Start.String())
	assert.Equal(t, "22:00", resolved.End.String())

	// The following Monday falls back to the weekday slot.
	resolved, err = svc.Resolve(context.Background(), "emp-1", date(t, "2026-03-09"))
	require.NoError(t, err)
	assert.Equal(t, "06:00", resolved.Start.String())
	assert.Equal(t, "14:00", resolved.End.String())
}

func TestResolve_EmployeeOverrideBeatsDepartment(t *testing.T) {
	empID := "emp-1"
	deptID := "dept-1"
	overrides := []roster.ScheduleOverride{
		{
			ID:         "o-emp",
			EmployeeID: &empID,
			StartTime:  "10:00",
			EndTime:    "18:00",
			StartDate:  time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
			EndDate:    time.Date(2026, 3, 7, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:           "o-dept",
			DepartmentID: &deptID,
			StartTime:    "09:00",
			EndTime:      "17:30",
			StartDate:    time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
			EndDate:      time.Date(2026, 3, 7, 0, 0, 0, 0, time.UTC),
		},
	}
	svc := newTestResolver([]roster.Roster{baseRoster("r-1")}, overrides, roster.TieBreakLatestCreated)

	resolved, err := svc.Resolve(context.Background(), "emp-1", date(t, "2026-03-02"))
	require.NoError(t, err)
	assert.Equal(t, "10:00", resolved.Start.String())
	assert.Equal(t, "18:00", resolved.End.String())
}

func TestResolve_DepartmentOverrideApplies(t *testing.T) {
	deptID := "dept-1"
	overrides := []roster.ScheduleOverride{
		{
			ID:           "o-dept",
			DepartmentID: &deptID,
			StartTime:    "09:00",
			EndTime:      "17:30",
			StartDate:    time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
			EndDate:      time.Date(2026, 3, 7, 0, 0, 0, 0, time.UTC),
		},
	}
	svc := newTestResolver([]roster.Roster{baseRoster("r-1")}, overrides, roster.TieBreakLatestCreated)

	resolved, err := svc.Resolve(context.Background(), "emp-1", date(t, "2026-03-02"))
	require.NoError(t, err)
	assert.Equal(t, "09:00", resolved.Start.String())
	assert.Equal(t, "17:30", resolved.End.String())
	// Grace still comes from the roster, overrides replace times only.
	assert.Equal(t, 15, resolved.GracePeriodMinutes)
}
