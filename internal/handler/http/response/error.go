package response

import (
	"errors"
	"net/http"

	"github.com/Kalpa111334/Dutch-Trails-QR/internal/domain/attendance"
	"github.com/Kalpa111334/Dutch-Trails-QR/internal/domain/auth"
	"github.com/Kalpa111334/Dutch-Trails-QR/internal/domain/employee"
	"github.com/Kalpa111334/Dutch-Trails-QR/internal/domain/roster"
	"github.com/Kalpa111334/Dutch-Trails-QR/internal/domain/user"
	"github.com/Kalpa111334/Dutch-Trails-QR/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid token")
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeInactive):
		UnprocessableEntity(w, "EMPLOYEE_INACTIVE", "Employee is not active")
	case errors.Is(err, employee.ErrDepartmentNotFound):
		NotFound(w, "Department not found")

	// Roster domain errors. A missing roster only reaches here from the
	// roster management endpoints; attendance recording absorbs it.
	case errors.Is(err, roster.ErrRosterNotFound):
		NotFound(w, "Roster not found")
	case errors.Is(err, roster.ErrOverrideNotFound):
		NotFound(w, "Schedule override not found")
	case errors.Is(err, roster.ErrInvalidWindow):
		BadRequest(w, "Roster validity window is invalid", nil)

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrNotCheckedIn):
		UnprocessableEntity(w, "NOT_CHECKED_IN", "No open session to check out of")
	case errors.Is(err, attendance.ErrOutOfOrderEvent):
		UnprocessableEntity(w, "OUT_OF_ORDER_EVENT", "Event timestamp precedes an already-recorded event")
	case errors.Is(err, attendance.ErrDayCompleted):
		Conflict(w, "Attendance for this day is already completed")
	case errors.Is(err, attendance.ErrInvalidEvent):
		UnprocessableEntity(w, "INVALID_EVENT", "Event is not valid in the current attendance state")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
