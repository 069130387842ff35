package employee

import "time"

type Employee struct {
	ID           string
	DepartmentID string
	FullName     string
	EmployeeCode string
	Status       EmploymentStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// DTO
	DepartmentName *string
}

type EmploymentStatus string

const (
	StatusActive   EmploymentStatus = "active"
	StatusInactive EmploymentStatus = "inactive"
)

var EmploymentStatusValues = []string{
	string(StatusActive),
	string(StatusInactive),
}

func (e Employee) IsActive() bool {
	return e.Status == StatusActive
}

type Department struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
