package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Kalpa111334/Dutch-Trails-QR/internal/domain/attendance"
	"github.com/Kalpa111334/Dutch-Trails-QR/internal/domain/report"
)

func record(deptID string, late int, worked int, checkedIn bool) attendance.Attendance {
	att := attendance.Attendance{
		MinutesLate:            late,
		WorkingDurationMinutes: worked,
	}
	if deptID != "" {
		att.DepartmentID = &deptID
	}
	if checkedIn {
		in := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
		att.FirstCheckInTime = &in
	}
	return att
}

func TestTallyOf(t *testing.T) {
	onTime := TallyOf(record("d1", 0, 480, true))
	assert.Equal(t, int64(1), onTime.Total)
	assert.Equal(t, int64(1), onTime.OnTimeCount)
	assert.Equal(t, int64(0), onTime.LateCount)

	late := TallyOf(record("d1", 25, 440, true))
	assert.Equal(t, int64(1), late.LateCount)
	assert.Equal(t, int64(25), late.TotalLateMinutes)
	assert.Equal(t, int64(0), late.OnTimeCount)

	// Never checked in: counted in total, in neither punctuality bucket.
	noShow := TallyOf(record("d1", 0, 0, false))
	assert.Equal(t, int64(1), noShow.Total)
	assert.Equal(t, int64(0), noShow.OnTimeCount)
	assert.Equal(t, int64(0), noShow.LateCount)
}

func TestAggregate_PartitionsByDepartment(t *testing.T) {
	records := []attendance.Attendance{
		record("d1", 0, 480, true),
		record("d1", 10, 450, true),
		record("d2", 0, 500, true),
		record("", 0, 0, false),
	}

	summary := Aggregate(records)

	assert.Equal(t, int64(4), summary.Overall.Total)
	assert.Equal(t, int64(2), summary.Overall.OnTimeCount)
	assert.Equal(t, int64(1), summary.Overall.LateCount)
	assert.Equal(t, int64(10), summary.Overall.TotalLateMinutes)

	assert.Len(t, summary.PerDepartment, 3)
	assert.Equal(t, int64(2), summary.PerDepartment["d1"].Total)
	assert.Equal(t, int64(1), summary.PerDepartment["d2"].Total)
	assert.Equal(t, int64(1), summary.PerDepartment[""].Total)
}

func TestAggregate_MergeIsAssociative(t *testing.T) {
	records := []attendance.Attendance{
		record("d1", 0, 480, true),
		record("d1", 10, 450, true),
		record("d2", 35, 400, true),
		record("d2", 0, 470, true),
		record("", 0, 0, false),
	}

	whole := Aggregate(records)

	// Aggregating disjoint halves and merging the tallies gives the same
	// result as one pass over all records.
	left := Aggregate(records[:2])
	right := Aggregate(records[2:])
	merged := left.Overall.Merge(right.Overall)

	assert.Equal(t, whole.Overall, merged)
	assert.Equal(t, whole.PerDepartment["d2"], left.PerDepartment["d2"].Merge(right.PerDepartment["d2"]))
}

func TestTally_RatesOnEmptyTally(t *testing.T) {
	var empty report.Tally
	assert.Nil(t, empty.AverageLateMinutes())
	assert.Nil(t, empty.AverageWorkedHours())
	assert.Nil(t, empty.ComplianceRate())
}

func TestTally_Rates(t *testing.T) {
	tally := report.Tally{
		Total:              4,
		OnTimeCount:        3,
		LateCount:          1,
		TotalLateMinutes:   20,
		TotalWorkedMinutes: 4 * 480,
	}

	assert.InDelta(t, 5.0, *tally.AverageLateMinutes(), 1e-9)
	assert.InDelta(t, 8.0, *tally.AverageWorkedHours(), 1e-9)
	assert.InDelta(t, 0.75, *tally.ComplianceRate(), 1e-9)
}
