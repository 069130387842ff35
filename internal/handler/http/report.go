package http

import (
	"net/http"

	"github.com/Kalpa111334/Dutch-Trails-QR/internal/domain/report"
	"github.com/Kalpa111334/Dutch-Trails-QR/internal/handler/http/response"
)

type ReportHandler interface {
	AttendanceSummary(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandlerImpl{
		reportService: reportService,
	}
}

// AttendanceSummary implements ReportHandler.
func (h *reportHandlerImpl) AttendanceSummary(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	req := report.SummaryRequest{
		EmployeeID:   q.Get("employee_id"),
		DepartmentID: q.Get("department_id"),
		StartDate:    q.Get("start_date"),
		EndDate:      q.Get("end_date"),
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.reportService.AttendanceSummary(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
