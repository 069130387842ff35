package report

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/Kalpa111334/Dutch-Trails-QR/internal/domain/attendance"
	"github.com/Kalpa111334/Dutch-Trails-QR/internal/domain/employee"
	"github.com/Kalpa111334/Dutch-Trails-QR/internal/domain/report"
)

type ReportServiceImpl struct {
	attendance.AttendanceRepository
	employee.DepartmentRepository
}

func NewReportService(
	attendanceRepo attendance.AttendanceRepository,
	departmentRepo employee.DepartmentRepository,
) report.ReportService {
	return &ReportServiceImpl{
		AttendanceRepository: attendanceRepo,
		DepartmentRepository: departmentRepo,
	}
}

// TallyOf folds one attendance record into a single-record tally. A record
// counts on-time only when it has a first check-in with zero lateness; days
// with no check-in are counted in Total but in neither punctuality bucket's
// complement, so compliance reflects recorded check-ins against total
// attendance days.
func TallyOf(att attendance.Attendance) report.Tally {
	t := report.Tally{Total: 1, TotalWorkedMinutes: int64(att.WorkingDurationMinutes)}
	if att.FirstCheckInTime == nil {
		return t
	}
	if att.MinutesLate > 0 {
		t.LateCount = 1
		t.TotalLateMinutes = int64(att.MinutesLate)
	} else {
		t.OnTimeCount = 1
	}
	return t
}

// Aggregate builds a summary from a record set. Merging is associative:
// aggregating two halves and merging their tallies yields the same summary
// as one pass.
func Aggregate(records []attendance.Attendance) report.Summary {
	summary := report.Summary{PerDepartment: make(map[string]report.Tally)}
	for _, att := range records {
		t := TallyOf(att)
		summary.Overall = summary.Overall.Merge(t)

		dept := ""
		if att.DepartmentID != nil {
			dept = *att.DepartmentID
		}
		summary.PerDepartment[dept] = summary.PerDepartment[dept].Merge(t)
	}
	return summary
}

// AttendanceSummary implements report.ReportService.
func (s *ReportServiceImpl) AttendanceSummary(ctx context.Context, req report.SummaryRequest) (report.SummaryResponse, error) {
	if err := req.Validate(); err != nil {
		return report.SummaryResponse{}, err
	}

	startDate, _ := time.Parse("2006-01-02", req.StartDate)
	endDate, _ := time.Parse("2006-01-02", req.EndDate)

	records, _, err := s.AttendanceRepository.FindByDateRange(ctx, attendance.AttendanceFilter{
		EmployeeID:   req.EmployeeID,
		DepartmentID: req.DepartmentID,
		StartDate:    startDate,
		EndDate:      endDate,
	})
	if err != nil {
		return report.SummaryResponse{}, fmt.Errorf("failed to load attendance records: %w", err)
	}

	summary := Aggregate(records)

	departments := make([]report.DepartmentSummaryResponse, 0, len(summary.PerDepartment))
	for deptID, tally := range summary.PerDepartment {
		resp := report.DepartmentSummaryResponse{
			DepartmentID:  deptID,
			TallyResponse: mapTallyToResponse(tally),
		}
		if deptID != "" {
			if dept, err := s.DepartmentRepository.GetByID(ctx, deptID); err == nil {
				resp.DepartmentName = dept.Name
			}
		}
		departments = append(departments, resp)
	}
	sort.Slice(departments, func(i, j int) bool {
		return departments[i].DepartmentID < departments[j].DepartmentID
	})

	return report.SummaryResponse{
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Overall:     mapTallyToResponse(summary.Overall),
		Departments: departments,
	}, nil
}

func mapTallyToResponse(t report.Tally) report.TallyResponse {
	return report.TallyResponse{
		Total:              t.Total,
		OnTimeCount:        t.OnTimeCount,
		LateCount:          t.LateCount,
		AverageLateMinutes: t.AverageLateMinutes(),
		AverageWorkedHours: t.AverageWorkedHours(),
		ComplianceRate:     t.ComplianceRate(),
	}
}
