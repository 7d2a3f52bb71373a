package http

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/presence-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/presence-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type LeaveHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
}

type leaveHandlerImpl struct {
	leaveService leave.LeaveService
}

func NewLeaveHandler(leaveService leave.LeaveService) LeaveHandler {
	return &leaveHandlerImpl{
		leaveService: leaveService,
	}
}

// List handles GET /leaves
func (h *leaveHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.leaveService.ListLeaveRequests(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result, &response.Meta{TotalItems: result.TotalCount})
}

// Create handles POST /leaves
func (h *leaveHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req leave.CreateLeaveRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateLeaveRequest decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.leaveService.CreateLeaveRequest(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave request submitted successfully", result)
}

// Get handles GET /leaves/{id}
func (h *leaveHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	result, err := h.leaveService.GetLeaveRequest(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Approve handles POST /leaves/{id}/approve
func (h *leaveHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	result, err := h.leaveService.ApproveLeaveRequest(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request approved", result)
}

// Reject handles POST /leaves/{id}/reject. The body is optional.
func (h *leaveHandlerImpl) Reject(w http.ResponseWriter, r *http.Request) {
	var req leave.RejectLeaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		slog.Error("RejectLeaveRequest decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.leaveService.RejectLeaveRequest(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request rejected", result)
}
