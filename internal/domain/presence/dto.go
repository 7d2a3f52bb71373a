package presence

import (
	"github.com/cmlabs-hris/presence-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/presence-backend-go/internal/pkg/validator"
)

// ========================================
// PRESENCE DTOs
// ========================================

type SelectLocationRequest struct {
	LocationType string `json:"location_type" validate:"required,oneof='Head Office' Branch WFH"`
	BranchName   string `json:"branch_name"`
}

func (r *SelectLocationRequest) Validate() error {
	if errs := validator.Struct(r); len(errs) > 0 {
		return errs
	}
	return nil
}

// ResolveLocationRequest carries the browser's geolocation result for a ticket.
// Error is empty on success; "unsupported" marks a runtime without geolocation.
type ResolveLocationRequest struct {
	Ticket       uint64   `json:"ticket" validate:"required"`
	LocationType string   `json:"location_type" validate:"required,oneof='Head Office' Branch WFH"`
	Latitude     *float64 `json:"latitude" validate:"omitempty,gte=-90,lte=90"`
	Longitude    *float64 `json:"longitude" validate:"omitempty,gte=-180,lte=180"`
	Error        string   `json:"error"`
}

const ResolveErrorUnsupported = "unsupported"

func (r *ResolveLocationRequest) Validate() error {
	errs := validator.Struct(r)

	if validator.IsEmpty(r.Error) && (r.Latitude == nil || r.Longitude == nil) {
		errs = append(errs, validator.ValidationError{
			Field:   "coordinates",
			Message: "latitude and longitude are required when no error is reported",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (r *ResolveLocationRequest) TicketValue() Ticket {
	return Ticket{Seq: r.Ticket, LocationType: attendance.LocationType(r.LocationType)}
}

type TicketResponse struct {
	Ticket       uint64 `json:"ticket"`
	LocationType string `json:"location_type"`
}

type StatusResponse struct {
	State              State                          `json:"state"`
	LocationType       string                         `json:"location_type"`
	BranchName         string                         `json:"branch_name,omitempty"`
	Location           *Coordinates                   `json:"location,omitempty"`
	Message            string                         `json:"message,omitempty"`
	TodayAttendance    *attendance.AttendanceResponse `json:"today_attendance,omitempty"`
	CanRequestLocation bool                           `json:"can_request_location"`
	CanCheckIn         bool                           `json:"can_check_in"`
	CanCheckOut        bool                           `json:"can_check_out"`
}

// ClockEvent is the payload of the one-second presence clock
type ClockEvent struct {
	Time string `json:"time"`
	Date string `json:"date"`
}
