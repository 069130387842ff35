package roster

import (
	"fmt"
	"time"
)

type Roster struct {
	ID                             string
	EmployeeID                     string
	StartDate                      time.Time
	EndDate                        time.Time
	StartTime                      string // wall clock "HH:MM", no date component
	EndTime                        string
	BreakDurationMinutes           int
	EarlyDepartureThresholdMinutes int
	// GracePeriodMinutes has been added, dropped and re-added across the
	// schema's lifetime. It is nullable in storage; an absent value reads
	// as zero tolerance.
	GracePeriodMinutes *int
	IsActive           bool
	ShiftPattern       []byte // raw JSON, parsed at resolution time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func (r Roster) Covers(date time.Time) bool {
	d := DateOnly(date)
	return r.IsActive && !d.Before(DateOnly(r.StartDate)) && !d.After(DateOnly(r.EndDate))
}

// GracePeriod returns the lateness tolerance in minutes, treating an absent
// value as zero.
func (r Roster) GracePeriod() int {
	if r.GracePeriodMinutes == nil {
		return 0
	}
	return *r.GracePeriodMinutes
}

// ScheduleOverride is a stored per-employee or per-department exception to a
// roster's default hours. Exactly one of EmployeeID/DepartmentID is set;
// employee-scoped overrides outrank department-scoped ones.
type ScheduleOverride struct {
	ID           string
	EmployeeID   *string
	DepartmentID *string
	StartTime    string // "HH:MM"
	EndTime      string
	StartDate    time.Time
	EndDate      time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (o ScheduleOverride) Covers(date time.Time) bool {
	d := DateOnly(date)
	return !d.Before(DateOnly(o.StartDate)) && !d.After(DateOnly(o.EndDate))
}

// ClockTime is a wall-clock time of day in minutes since midnight.
type ClockTime int

// ParseClock parses "HH:MM" or "HH:MM:SS".
func ParseClock(s string) (ClockTime, error) {
	var h, m, sec int
	if _, err := fmt.Sscanf(s, "%d:%d:%d", &h, &m, &sec); err != nil {
		if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
			return 0, fmt.Errorf("invalid clock time %q", s)
		}
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("clock time %q out of range", s)
	}
	return ClockTime(h*60 + m), nil
}

func (c ClockTime) Hour() int   { return int(c) / 60 }
func (c ClockTime) Minute() int { return int(c) % 60 }

// OnDate combines the wall-clock time with the calendar date of t, in t's
// location.
func (c ClockTime) OnDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), c.Hour(), c.Minute(), 0, 0, t.Location())
}

func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour(), c.Minute())
}

// Resolved is the schedule that applies to one employee on one calendar date,
// after shift-pattern and override precedence has been applied. It is a value
// derived for a single attendance-event transaction; the stored Roster is
// never mutated.
type Resolved struct {
	RosterID                       string
	Start                          ClockTime
	End                            ClockTime
	GracePeriodMinutes             int
	EarlyDepartureThresholdMinutes int
	BreakDurationMinutes           int
	DayOff                         bool
	Found                          bool
}

// Unscheduled is the zero-metrics fallback used when no roster resolves or
// the stored schedule data cannot be parsed.
func Unscheduled() Resolved {
	return Resolved{}
}

// DateOnly truncates t to its calendar date, preserving the location.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
