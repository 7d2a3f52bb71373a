package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/presence-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/presence-backend-go/internal/handler/http/response"
)

type AttendanceHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	RecordAbsence(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
	}
}

// List handles GET /attendances
func (h *attendanceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.attendanceService.ListAttendance(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Attendances, &response.Meta{TotalItems: result.TotalCount})
}

// RecordAbsence handles POST /attendances/absence
func (h *attendanceHandlerImpl) RecordAbsence(w http.ResponseWriter, r *http.Request) {
	var req attendance.RecordAbsenceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("RecordAbsence decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.attendanceService.RecordAbsence(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Absence recorded successfully", result)
}
