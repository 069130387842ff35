package roster

import (
	"encoding/json"
	"time"

	"github.com/Kalpa111334/Dutch-Trails-QR/internal/pkg/validator"
)

type CreateRosterRequest struct {
	EmployeeID                     string          `json:"employee_id"`
	StartDate                      string          `json:"start_date"` // "YYYY-MM-DD"
	EndDate                        string          `json:"end_date"`
	StartTime                      string          `json:"start_time"` // "HH:MM"
	EndTime                        string          `json:"end_time"`
	BreakDurationMinutes           int             `json:"break_duration_minutes"`
	EarlyDepartureThresholdMinutes int             `json:"early_departure_threshold_minutes"`
	GracePeriodMinutes             *int            `json:"grace_period_minutes,omitempty"`
	ShiftPattern                   json.RawMessage `json:"shift_pattern,omitempty"`
}

func (r CreateRosterRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee_id is required"})
	}

	startDate, okStart := validator.IsValidDate(r.StartDate)
	if !okStart {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: "start_date must be YYYY-MM-DD"})
	}
	endDate, okEnd := validator.IsValidDate(r.EndDate)
	if !okEnd {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "end_date must be YYYY-MM-DD"})
	}
	if okStart && okEnd && endDate.Before(startDate) {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "end_date must not be before start_date"})
	}

	if !validator.IsValidClockTime(r.StartTime) {
		errs = append(errs, validator.ValidationError{Field: "start_time", Message: "start_time must be HH:MM"})
	}
	if !validator.IsValidClockTime(r.EndTime) {
		errs = append(errs, validator.ValidationError{Field: "end_time", Message: "end_time must be HH:MM"})
	}

	if r.BreakDurationMinutes < 0 {
		errs = append(errs, validator.ValidationError{Field: "break_duration_minutes", Message: "must not be negative"})
	}
	if r.EarlyDepartureThresholdMinutes < 0 {
		errs = append(errs, validator.ValidationError{Field: "early_departure_threshold_minutes", Message: "must not be negative"})
	}
	if r.GracePeriodMinutes != nil && *r.GracePeriodMinutes < 0 {
		errs = append(errs, validator.ValidationError{Field: "grace_period_minutes", Message: "must not be negative"})
	}

	if len(r.ShiftPattern) > 0 {
		if _, err := ParseShiftPattern(r.ShiftPattern); err != nil {
			errs = append(errs, validator.ValidationError{Field: "shift_pattern", Message: "shift_pattern must be a JSON array of day/date entries"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateRosterRequest struct {
	ID                             string          `json:"-"`
	StartTime                      *string         `json:"start_time,omitempty"`
	EndTime                        *string         `json:"end_time,omitempty"`
	BreakDurationMinutes           *int            `json:"break_duration_minutes,omitempty"`
	EarlyDepartureThresholdMinutes *int            `json:"early_departure_threshold_minutes,omitempty"`
	GracePeriodMinutes             *int            `json:"grace_period_minutes,omitempty"`
	EndDate                        *string         `json:"end_date,omitempty"`
	ShiftPattern                   json.RawMessage `json:"shift_pattern,omitempty"`
}

func (r UpdateRosterRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{Field: "id", Message: "id is required"})
	}
	if r.StartTime != nil && !validator.IsValidClockTime(*r.StartTime) {
		errs = append(errs, validator.ValidationError{Field: "start_time", Message: "start_time must be HH:MM"})
	}
	if r.EndTime != nil && !validator.IsValidClockTime(*r.EndTime) {
		errs = append(errs, validator.ValidationError{Field: "end_time", Message: "end_time must be HH:MM"})
	}
	if r.EndDate != nil {
		if _, ok := validator.IsValidDate(*r.EndDate); !ok {
			errs = append(errs, validator.ValidationError{Field: "end_date", Message: "end_date must be YYYY-MM-DD"})
		}
	}
	if len(r.ShiftPattern) > 0 {
		if _, err := ParseShiftPattern(r.ShiftPattern); err != nil {
			errs = append(errs, validator.ValidationError{Field: "shift_pattern", Message: "shift_pattern must be a JSON array of day/date entries"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RosterFilter struct {
	EmployeeID string
	ActiveOn   *time.Time
	Page       int
	Limit      int
}

type RosterResponse struct {
	ID                             string          `json:"id"`
	EmployeeID                     string          `json:"employee_id"`
	StartDate                      string          `json:"start_date"`
	EndDate                        string          `json:"end_date"`
	StartTime                      string          `json:"start_time"`
	EndTime                        string          `json:"end_time"`
	BreakDurationMinutes           int             `json:"break_duration_minutes"`
	EarlyDepartureThresholdMinutes int             `json:"early_departure_threshold_minutes"`
	GracePeriodMinutes             int             `json:"grace_period_minutes"`
	IsActive                       bool            `json:"is_active"`
	ShiftPattern                   json.RawMessage `json:"shift_pattern,omitempty"`
	CreatedAt                      string          `json:"created_at"`
	UpdatedAt                      string          `json:"updated_at"`
}

type ListRosterResponse struct {
	TotalCount int64            `json:"total_count"`
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
	Rosters    []RosterResponse `json:"rosters"`
}

type CreateOverrideRequest struct {
	EmployeeID   *string `json:"employee_id,omitempty"`
	DepartmentID *string `json:"department_id,omitempty"`
	StartTime    string  `json:"start_time"`
	EndTime      string  `json:"end_time"`
	StartDate    string  `json:"start_date"`
	EndDate      string  `json:"end_date"`
}

func (r CreateOverrideRequest) Validate() error {
	var errs validator.ValidationErrors

	hasEmployee := r.EmployeeID != nil && !validator.IsEmpty(*r.EmployeeID)
	hasDepartment := r.DepartmentID != nil && !validator.IsEmpty(*r.DepartmentID)
	if hasEmployee == hasDepartment {
		errs = append(errs, validator.ValidationError{Field: "scope", Message: "exactly one of employee_id or department_id is required"})
	}

	if !validator.IsValidClockTime(r.StartTime) {
		errs = append(errs, validator.ValidationError{Field: "start_time", Message: "start_time must be HH:MM"})
	}
	if !validator.IsValidClockTime(r.EndTime) {
		errs = append(errs, validator.ValidationError{Field: "end_time", Message: "end_time must be HH:MM"})
	}

	startDate, okStart := validator.IsValidDate(r.StartDate)
	if !okStart {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: "start_date must be YYYY-MM-DD"})
	}
	endDate, okEnd := validator.IsValidDate(r.EndDate)
	if !okEnd {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "end_date must be YYYY-MM-DD"})
	}
	if okStart && okEnd && endDate.Before(startDate) {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "end_date must not be before start_date"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type OverrideResponse struct {
	ID           string  `json:"id"`
	EmployeeID   *string `json:"employee_id,omitempty"`
	DepartmentID *string `json:"department_id,omitempty"`
	StartTime    string  `json:"start_time"`
	EndTime      string  `json:"end_time"`
	StartDate    string  `json:"start_date"`
	EndDate      string  `json:"end_date"`
	CreatedAt    string  `json:"created_at"`
}
