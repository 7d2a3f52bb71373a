package response

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/presence-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/presence-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/presence-backend-go/internal/domain/presence"
	"github.com/cmlabs-hris/presence-backend-go/internal/pkg/validator"
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
	// Attendance domain errors
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrAlreadyCheckedIn),
		errors.Is(err, presence.ErrAlreadyCheckedIn):
		Conflict(w, "You are already checked in")
	case errors.Is(err, attendance.ErrAlreadyCheckedOut):
		Conflict(w, "You have already checked out")
	case errors.Is(err, attendance.ErrDuplicateRecord):
		Conflict(w, "An attendance record already exists for this date")

	// Leave domain errors
	case errors.Is(err, leave.ErrLeaveRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrLeaveRequestAlreadyProcessed):
		Conflict(w, "Leave request already processed")
	case errors.Is(err, leave.ErrInsufficientQuota):
		BadRequest(w, err.Error(), nil)

	// Presence domain errors
	case errors.Is(err, presence.ErrStaleLocation):
		StaleRequest(w, err.Error())
	case errors.Is(err, presence.ErrLocationRequired),
		errors.Is(err, presence.ErrLocationPending),
		errors.Is(err, presence.ErrLocationNotRequired),
		errors.Is(err, presence.ErrGeolocationUnsupported),
		errors.Is(err, presence.ErrSessionClosed),
		errors.Is(err, presence.ErrNotCheckedIn):
		BadRequest(w, err.Error(), nil)

	case errors.Is(err, context.Canceled):
		// Client went away
		slog.Debug("Request cancelled", "error", err)

	// Default
	default:
		slog.Error("Unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
