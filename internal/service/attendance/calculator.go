package attendance

import (
	"time"

	"github.com/Kalpa111334/Dutch-Trails-QR/internal/domain/attendance"
	"github.com/Kalpa111334/Dutch-Trails-QR/internal/domain/roster"
)

// MetricsCalculator derives lateness, early-departure, break and working
// durations from event timestamps and a resolved roster. It is pure: every
// "now" it needs arrives as a parameter, so it is safe to call concurrently
// and trivial to test. There is exactly one lateness computation in the
// codebase; this is it.
type MetricsCalculator struct {
}

func NewMetricsCalculator() *MetricsCalculator {
	return &MetricsCalculator{}
}

// LateMinutes returns how many minutes past the scheduled start, beyond the
// grace period, the check-in happened. The roster start instant is built
// from checkIn's own calendar date and the resolved wall-clock start time.
// Early arrivals clamp to zero; the delta is truncated to whole minutes
// after the grace subtraction, never rounded.
func (c *MetricsCalculator) LateMinutes(checkIn time.Time, resolved roster.Resolved) int {
	if !resolved.Found || resolved.DayOff {
		return 0
	}

	rosterStart := resolved.Start.OnDate(checkIn)
	grace := time.Duration(resolved.GracePeriodMinutes) * time.Minute

	late := checkIn.Sub(rosterStart) - grace
	if late <= 0 {
		return 0
	}
	return int(late / time.Minute)
}

// EarlyDepartureMinutes is the symmetric computation against the resolved
// end time and the early-departure threshold.
func (c *MetricsCalculator) EarlyDepartureMinutes(checkOut time.Time, resolved roster.Resolved) int {
	if !resolved.Found || resolved.DayOff {
		return 0
	}

	rosterEnd := resolved.End.OnDate(checkOut)
	threshold := time.Duration(resolved.EarlyDepartureThresholdMinutes) * time.Minute

	early := rosterEnd.Sub(checkOut) - threshold
	if early <= 0 {
		return 0
	}
	return int(early / time.Minute)
}

// WorkingTime computes break and net worked minutes from the up-to-four
// event timestamps. An open session is measured against now, so worked
// minutes grow monotonically while a session is in progress. Negative
// intermediate values clamp to zero.
func (c *MetricsCalculator) WorkingTime(record attendance.Attendance, now time.Time) (breakMinutes, workedMinutes int) {
	if record.FirstCheckOutTime != nil && record.SecondCheckInTime != nil &&
		record.SecondCheckInTime.After(*record.FirstCheckOutTime) {
		breakMinutes = wholeMinutes(record.SecondCheckInTime.Sub(*record.FirstCheckOutTime))
	}

	workedMinutes += sessionMinutes(record.FirstCheckInTime, record.FirstCheckOutTime, now)
	workedMinutes += sessionMinutes(record.SecondCheckInTime, record.SecondCheckOutTime, now)

	return breakMinutes, workedMinutes
}

func sessionMinutes(in, out *time.Time, now time.Time) int {
	if in == nil {
		return 0
	}
	end := now
	if out != nil {
		end = *out
	}
	return wholeMinutes(end.Sub(*in))
}

func wholeMinutes(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	return int(d / time.Minute)
}
