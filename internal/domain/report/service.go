package report

import "context"

type ReportService interface {
	// AttendanceSummary aggregates stored attendance records over a date
	// range. Departments with zero records in range are excluded from the
	// response.
	AttendanceSummary(ctx context.Context, req SummaryRequest) (SummaryResponse, error)
}
