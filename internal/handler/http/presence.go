package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/presence-backend-go/internal/domain/presence"
	"github.com/cmlabs-hris/presence-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/presence-backend-go/internal/pkg/sse"
)

type PresenceHandler interface {
	GetStatus(w http.ResponseWriter, r *http.Request)
	Activate(w http.ResponseWriter, r *http.Request)
	SelectLocationType(w http.ResponseWriter, r *http.Request)
	RequestLocation(w http.ResponseWriter, r *http.Request)
	ResolveLocation(w http.ResponseWriter, r *http.Request)
	CheckIn(w http.ResponseWriter, r *http.Request)
	CheckOut(w http.ResponseWriter, r *http.Request)
	Stream(w http.ResponseWriter, r *http.Request)
}

type presenceHandlerImpl struct {
	controller presence.Controller
	hub        *sse.Hub
	clock      presence.Clock
}

func NewPresenceHandler(controller presence.Controller, hub *sse.Hub, clock presence.Clock) PresenceHandler {
	return &presenceHandlerImpl{
		controller: controller,
		hub:        hub,
		clock:      clock,
	}
}

// GetStatus handles GET /presence
func (h *presenceHandlerImpl) GetStatus(w http.ResponseWriter, r *http.Request) {
	status, err := h.controller.Status(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, status)
}

// Activate handles POST /presence/activate. Entering the view again starts from
// the stored records with the default location type.
func (h *presenceHandlerImpl) Activate(w http.ResponseWriter, r *http.Request) {
	status, err := h.controller.Activate(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, status)
}

// SelectLocationType handles PUT /presence/location-type
func (h *presenceHandlerImpl) SelectLocationType(w http.ResponseWriter, r *http.Request) {
	var req presence.SelectLocationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("SelectLocationType decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	status, err := h.controller.SelectLocationType(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, status)
}

// RequestLocation handles POST /presence/location/request
func (h *presenceHandlerImpl) RequestLocation(w http.ResponseWriter, r *http.Request) {
	ticket, err := h.controller.RequestLocation(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, presence.TicketResponse{
		Ticket:       ticket.Seq,
		LocationType: string(ticket.LocationType),
	})
}

// ResolveLocation handles POST /presence/location/resolve
func (h *presenceHandlerImpl) ResolveLocation(w http.ResponseWriter, r *http.Request) {
	var req presence.ResolveLocationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("ResolveLocation decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	var (
		coords    presence.Coordinates
		locateErr error
	)
	switch {
	case req.Error == presence.ResolveErrorUnsupported:
		locateErr = presence.ErrGeolocationUnsupported
	case req.Error != "":
		locateErr = errors.New(req.Error)
	default:
		coords = presence.Coordinates{Latitude: *req.Latitude, Longitude: *req.Longitude}
	}

	status, err := h.controller.ResolveLocation(r.Context(), req.TicketValue(), coords, locateErr)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, status)
}

// CheckIn handles POST /presence/check-in
func (h *presenceHandlerImpl) CheckIn(w http.ResponseWriter, r *http.Request) {
	record, err := h.controller.CheckIn(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Checked in successfully", record)
}

// CheckOut handles POST /presence/check-out
func (h *presenceHandlerImpl) CheckOut(w http.ResponseWriter, r *http.Request) {
	record, err := h.controller.CheckOut(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Checked out successfully at "+*record.CheckOut, record)
}
