package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/hrstreamline/hrstreamline-backend-go/internal/domain/assistant"
	"github.com/hrstreamline/hrstreamline-backend-go/internal/domain/attendance"
	"github.com/hrstreamline/hrstreamline-backend-go/internal/domain/auth"
	"github.com/hrstreamline/hrstreamline-backend-go/internal/domain/employee"
	"github.com/hrstreamline/hrstreamline-backend-go/internal/domain/leave"
	"github.com/hrstreamline/hrstreamline-backend-go/internal/pkg/validator"
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
		Unauthorized(w, "Invalid email or password")
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrTokenRevoked):
		Unauthorized(w, "Token has been revoked")
	case errors.Is(err, auth.ErrAccountTerminated):
		Forbidden(w, "Account has been terminated")
	case errors.Is(err, auth.ErrForbidden):
		Forbidden(w, "Unauthorized access")
	case errors.Is(err, auth.ErrUserAlreadyExists):
		Conflict(w, "User already exists")
	case errors.Is(err, auth.ErrUserNotFound):
		NotFound(w, "User not found")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeProfileAbsent):
		NotFound(w, "Employee profile not found")
	case errors.Is(err, employee.ErrAccessDenied):
		Forbidden(w, "Unauthorized access")
	case errors.Is(err, employee.ErrAlreadyTerminated):
		BadRequest(w, "Employee is already terminated", nil)

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAlreadyClockedIn):
		BadRequest(w, "Already clocked in today.", nil)
	case errors.Is(err, attendance.ErrCannotClockOut):
		BadRequest(w, "Cannot clock out. Either not clocked in or already clocked out.", nil)
	case errors.Is(err, attendance.ErrInvalidFilter):
		BadRequest(w, "Invalid year, month or day filter", nil)
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")

	// Leave domain errors
	case errors.Is(err, leave.ErrLeaveRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrInsufficientBalance):
		BadRequest(w, "Insufficient leave balance", nil)
	case errors.Is(err, leave.ErrLeaveRequestAlreadyProcessed):
		BadRequest(w, "Leave request already processed", nil)
	case errors.Is(err, leave.ErrInvalidDateFormat):
		BadRequest(w, "Invalid date format. Use YYYY-MM-DD.", nil)
	case errors.Is(err, leave.ErrInvalidDateRange):
		BadRequest(w, "End date cannot be before start date", nil)
	case errors.Is(err, leave.ErrNotAuthorized):
		Forbidden(w, "You are not authorized to process this leave request")

	// Assistant domain errors
	case errors.Is(err, assistant.ErrEmptyQuestion):
		BadRequest(w, "Question is required", nil)
	case errors.Is(err, assistant.ErrDisabled):
		ServiceUnavailable(w, "Assistant is not enabled")

	// Default
	default:
		slog.Error("Unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
