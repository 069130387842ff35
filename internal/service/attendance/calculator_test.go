package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Kalpa111334/Dutch-Trails-QR/internal/domain/attendance"
	"github.com/Kalpa111334/Dutch-Trails-QR/internal/domain/roster"
)

func testResolved(start, end string, graceMinutes int) roster.Resolved {
	s, _ := roster.ParseClock(start)
	e, _ := roster.ParseClock(end)
	return roster.Resolved{
		RosterID:           "roster-1",
		Start:              s,
		End:                e,
		GracePeriodMinutes: graceMinutes,
		Found:              true,
	}
}

func at(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse(time.RFC3339, value)
	assert.NoError(t, err)
	return parsed
}

func TestLateMinutes_WithinGrace(t *testing.T) {
	calc := NewMetricsCalculator()
	resolved := testResolved("08:00", "17:00", 15)

	assert.Equal(t, 0, calc.LateMinutes(at(t, "2026-03-02T08:00:00Z"), resolved))
	assert.Equal(t, 0, calc.LateMinutes(at(t, "2026-03-02T08:14:59Z"), resolved))
	assert.Equal(t, 0, calc.LateMinutes(at(t, "2026-03-02T08:15:00Z"), resolved))
}

func TestLateMinutes_BeyondGrace(t *testing.T) {
	calc := NewMetricsCalculator()
	resolved := testResolved("08:00", "17:00", 15)

	// 20 minutes past start minus 15 grace
	assert.Equal(t, 5, calc.LateMinutes(at(t, "2026-03-02T08:20:00Z"), resolved))
}

func TestLateMinutes_TruncatesPartialMinute(t *testing.T) {
	calc := NewMetricsCalculator()
	resolved := testResolved("08:00", "17:00", 15)

	// 5m30s over the grace boundary still counts as 5 whole minutes
	assert.Equal(t, 5, calc.LateMinutes(at(t, "2026-03-02T08:20:30Z"), resolved))
}

func TestLateMinutes_EarlyArrivalNeverNegative(t *testing.T) {
	calc := NewMetricsCalculator()
	resolved := testResolved("08:00", "17:00", 0)

	assert.Equal(t, 0, calc.LateMinutes(at(t, "2026-03-02T06:30:00Z"), resolved))
}

func TestLateMinutes_UnscheduledAndDayOff(t *testing.T) {
	calc := NewMetricsCalculator()

	assert.Equal(t, 0, calc.LateMinutes(at(t, "2026-03-02T09:00:00Z"), roster.Unscheduled()))

	dayOff := testResolved("08:00", "17:00", 0)
	dayOff.DayOff = true
	assert.Equal(t, 0, calc.LateMinutes(at(t, "2026-03-02T09:00:00Z"), dayOff))
}

func TestEarlyDepartureMinutes(t *testing.T) {
	calc := NewMetricsCalculator()
	resolved := testResolved("08:00", "17:00", 0)

	assert.Equal(t, 30, calc.EarlyDepartureMinutes(at(t, "2026-03-02T16:30:00Z"), resolved))
	assert.Equal(t, 0, calc.EarlyDepartureMinutes(at(t, "2026-03-02T17:00:00Z"), resolved))
	assert.Equal(t, 0, calc.EarlyDepartureMinutes(at(t, "2026-03-02T17:45:00Z"), resolved))

	resolved.EarlyDepartureThresholdMinutes = 15
	assert.Equal(t, 15, calc.EarlyDepartureMinutes(at(t, "2026-03-02T16:30:00Z"), resolved))
	assert.Equal(t, 0, calc.EarlyDepartureMinutes(at(t, "2026-03-02T16:50:00Z"), resolved))
}

func TestWorkingTime_CompletedDay(t *testing.T) {
	calc := NewMetricsCalculator()

	firstIn := at(t, "2026-03-02T08:00:00Z")
	firstOut := at(t, "2026-03-02T12:00:00Z")
	secondIn := at(t, "2026-03-02T13:00:00Z")
	secondOut := at(t, "2026-03-02T17:00:00Z")
	record := attendance.Attendance{
		FirstCheckInTime:   &firstIn,
		FirstCheckOutTime:  &firstOut,
		SecondCheckInTime:  &secondIn,
		SecondCheckOutTime: &secondOut,
	}

	breakMinutes, workedMinutes := calc.WorkingTime(record, at(t, "2026-03-02T23:00:00Z"))
	assert.Equal(t, 60, breakMinutes)
	assert.Equal(t, 480, workedMinutes)
}

func TestWorkingTime_OpenSessionGrowsMonotonically(t *testing.T) {
	calc := NewMetricsCalculator()

	firstIn := at(t, "2026-03-02T09:00:00Z")
	record := attendance.Attendance{FirstCheckInTime: &firstIn}

	_, atHalfHour := calc.WorkingTime(record, at(t, "2026-03-02T09:30:00Z"))
	_, atOneHour := calc.WorkingTime(record, at(t, "2026-03-02T10:00:00Z"))

	assert.Equal(t, 30, atHalfHour)
	assert.Equal(t, 60, atOneHour)
	assert.GreaterOrEqual(t, atOneHour, atHalfHour)
}

func TestWorkingTime_NoEvents(t *testing.T) {
	calc := NewMetricsCalculator()

	breakMinutes, workedMinutes := calc.WorkingTime(attendance.Attendance{}, at(t, "2026-03-02T10:00:00Z"))
	assert.Equal(t, 0, breakMinutes)
	assert.Equal(t, 0, workedMinutes)
}

func TestWorkingTime_SecondSessionOnly(t *testing.T) {
	calc := NewMetricsCalculator()

	firstIn := at(t, "2026-03-02T08:00:00Z")
	firstOut := at(t, "2026-03-02T12:00:00Z")
	secondIn := at(t, "2026-03-02T13:00:00Z")
	record := attendance.Attendance{
		FirstCheckInTime:  &firstIn,
		FirstCheckOutTime: &firstOut,
		SecondCheckInTime: &secondIn,
	}

	breakMinutes, workedMinutes := calc.WorkingTime(record, at(t, "2026-03-02T15:00:00Z"))
	assert.Equal(t, 60, breakMinutes)
	assert.Equal(t, 240+120, workedMinutes)
}
