package report

import (
	"time"

	"github.com/Kalpa111334/Dutch-Trails-QR/internal/pkg/validator"
)

// Tally holds the partial sums an attendance summary is built from. Tallies
// merge associatively, so disjoint record sets can be aggregated
// incrementally and combined; rates and averages are derived at read time.
type Tally struct {
	Total              int64 `json:"total"`
	OnTimeCount        int64 `json:"on_time_count"`
	LateCount          int64 `json:"late_count"`
	TotalLateMinutes   int64 `json:"total_late_minutes"`
	TotalWorkedMinutes int64 `json:"total_worked_minutes"`
}

// Merge combines two partial tallies.
func (t Tally) Merge(other Tally) Tally {
	return Tally{
		Total:              t.Total + other.Total,
		OnTimeCount:        t.OnTimeCount + other.OnTimeCount,
		LateCount:          t.LateCount + other.LateCount,
		TotalLateMinutes:   t.TotalLateMinutes + other.TotalLateMinutes,
		TotalWorkedMinutes: t.TotalWorkedMinutes + other.TotalWorkedMinutes,
	}
}

// AverageLateMinutes is nil for an empty tally, never a division error.
func (t Tally) AverageLateMinutes() *float64 {
	if t.Total == 0 {
		return nil
	}
	v := float64(t.TotalLateMinutes) / float64(t.Total)
	return &v
}

func (t Tally) AverageWorkedHours() *float64 {
	if t.Total == 0 {
		return nil
	}
	v := float64(t.TotalWorkedMinutes) / 60.0 / float64(t.Total)
	return &v
}

func (t Tally) ComplianceRate() *float64 {
	if t.Total == 0 {
		return nil
	}
	v := float64(t.OnTimeCount) / float64(t.Total)
	return &v
}

// Summary is an aggregate over a set of attendance records, partitioned by
// department.
type Summary struct {
	Overall       Tally
	PerDepartment map[string]Tally // keyed by department ID; "" collects records without one
}

type SummaryFilter struct {
	EmployeeID   string
	DepartmentID string
	StartDate    time.Time
	EndDate      time.Time
}

type SummaryRequest struct {
	EmployeeID   string `json:"employee_id,omitempty"`
	DepartmentID string `json:"department_id,omitempty"`
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
}

func (r SummaryRequest) Validate() error {
	var errs validator.ValidationErrors

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

type TallyResponse struct {
	Total              int64    `json:"total"`
	OnTimeCount        int64    `json:"on_time_count"`
	LateCount          int64    `json:"late_count"`
	AverageLateMinutes *float64 `json:"average_late_minutes,omitempty"`
	AverageWorkedHours *float64 `json:"average_worked_hours,omitempty"`
	ComplianceRate     *float64 `json:"compliance_rate,omitempty"`
}

type DepartmentSummaryResponse struct {
	DepartmentID   string `json:"department_id"`
	DepartmentName string `json:"department_name,omitempty"`
	TallyResponse
}

type SummaryResponse struct {
	StartDate   string                      `json:"start_date"`
	EndDate     string                      `json:"end_date"`
	Overall     TallyResponse               `json:"overall"`
	Departments []DepartmentSummaryResponse `json:"departments"`
}
