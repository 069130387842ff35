package roster

import (
	"encoding/json"
	"time"
)

// ShiftPatternEntry is one element of a roster's shift_pattern JSON array.
// An entry matches either a weekday (0=Sunday .. 6=Saturday) or an explicit
// date; `{"shift":"off"}` marks the day as non-working.
type ShiftPatternEntry struct {
	Day      *int      `json:"day,omitempty"`
	Date     *string   `json:"date,omitempty"`
	Shift    string    `json:"shift,omitempty"`
	TimeSlot *TimeSlot `json:"time_slot,omitempty"`
}

type TimeSlot struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

const shiftOff = "off"

func (e ShiftPatternEntry) IsOff() bool {
	return e.Shift == shiftOff
}

// ParseShiftPattern decodes a roster's raw shift_pattern column. A nil or
// empty value is a valid "no overrides" pattern.
func ParseShiftPattern(raw []byte) ([]ShiftPatternEntry, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var entries []ShiftPatternEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// MatchShiftEntry finds the pattern entry applying to date. An explicit-date
// entry wins over a weekday entry.
func MatchShiftEntry(entries []ShiftPatternEntry, date time.Time) *ShiftPatternEntry {
	dateStr := date.Format("2006-01-02")
	var byDay *ShiftPatternEntry
	for i := range entries {
		e := &entries[i]
		if e.Date != nil && *e.Date == dateStr {
			return e
		}
		if byDay == nil && e.Day != nil && *e.Day == int(date.Weekday()) {
			byDay = e
		}
	}
	return byDay
}
