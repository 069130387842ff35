package attendance

import (
	"time"

	"github.com/Kalpa111334/Dutch-Trails-QR/internal/pkg/validator"
)

type CheckInRequest struct {
	EmployeeID string `json:"employee_id"`
	// At optionally overrides the event instant (ISO8601). Absent, the
	// server clock is used.
	At *string `json:"at,omitempty"`
}

func (r CheckInRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee_id is required"})
	}
	if r.At != nil {
		if _, ok := validator.IsValidDateTime(*r.At); !ok {
			errs = append(errs, validator.ValidationError{Field: "at", Message: "at must be an ISO8601 timestamp"})
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CheckOutRequest struct {
	EmployeeID string  `json:"employee_id"`
	At         *string `json:"at,omitempty"`
}

func (r CheckOutRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee_id is required"})
	}
	if r.At != nil {
		if _, ok := validator.IsValidDateTime(*r.At); !ok {
			errs = append(errs, validator.ValidationError{Field: "at", Message: "at must be an ISO8601 timestamp"})
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// UpdateAttendanceRequest lets managers correct a record. Corrected
// timestamps must preserve session order; derived fields are recomputed, not
// accepted from the caller.
type UpdateAttendanceRequest struct {
	ID                 string  `json:"-"`
	FirstCheckInTime   *string `json:"first_check_in_time,omitempty"`
	FirstCheckOutTime  *string `json:"first_check_out_time,omitempty"`
	SecondCheckInTime  *string `json:"second_check_in_time,omitempty"`
	SecondCheckOutTime *string `json:"second_check_out_time,omitempty"`
}

func (r UpdateAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{Field: "id", Message: "id is required"})
	}
	for field, v := range map[string]*string{
		"first_check_in_time":   r.FirstCheckInTime,
		"first_check_out_time":  r.FirstCheckOutTime,
		"second_check_in_time":  r.SecondCheckInTime,
		"second_check_out_time": r.SecondCheckOutTime,
	} {
		if v == nil {
			continue
		}
		if _, ok := validator.IsValidDateTime(*v); !ok {
			errs = append(errs, validator.ValidationError{Field: field, Message: "must be an ISO8601 timestamp"})
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type AttendanceFilter struct {
	EmployeeID   string
	DepartmentID string
	StartDate    time.Time
	EndDate      time.Time
	Page         int
	Limit        int
}

type AttendanceResponse struct {
	ID                     string  `json:"id"`
	EmployeeID             string  `json:"employee_id"`
	EmployeeName           string  `json:"employee_name,omitempty"`
	DepartmentName         *string `json:"department_name,omitempty"`
	Date                   string  `json:"date"`
	RosterID               *string `json:"roster_id,omitempty"`
	RosterMissing          bool    `json:"roster_missing,omitempty"`
	FirstCheckInTime       *string `json:"first_check_in_time,omitempty"`
	FirstCheckOutTime      *string `json:"first_check_out_time,omitempty"`
	SecondCheckInTime      *string `json:"second_check_in_time,omitempty"`
	SecondCheckOutTime     *string `json:"second_check_out_time,omitempty"`
	Status                 string  `json:"status"`
	MinutesLate            int     `json:"minutes_late"`
	EarlyDepartureMinutes  int     `json:"early_departure_minutes"`
	WorkingDurationMinutes int     `json:"working_duration_minutes"`
	BreakDurationMinutes   int     `json:"break_duration_minutes"`
	CreatedAt              string  `json:"created_at"`
	UpdatedAt              string  `json:"updated_at"`
}

type ListAttendanceResponse struct {
	TotalCount  int64                `json:"total_count"`
	Page        int                  `json:"page"`
	Limit       int                  `json:"limit"`
	TotalPages  int                  `json:"total_pages"`
	Attendances []AttendanceResponse `json:"attendances"`
}
