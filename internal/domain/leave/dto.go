package leave

import (
	"fmt"
	"time"

	"github.com/cmlabs-hris/presence-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/presence-backend-go/internal/pkg/validator"
)

// ========================================
// LEAVE REQUEST DTOs
// ========================================

type CreateLeaveRequestRequest struct {
	Type      string `json:"type" validate:"required,oneof=Annual Sick Unpaid 'Maternity/Paternity'"`
	StartDate string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate   string `json:"end_date" validate:"required,datetime=2006-01-02"`
	Reason    string `json:"reason" validate:"required,notblank,max=500"`
}

func (r *CreateLeaveRequestRequest) Validate() error {
	errs := validator.Struct(r)

	start, startOK := validator.IsValidDate(r.StartDate)
	end, endOK := validator.IsValidDate(r.EndDate)
	if startOK && endOK {
		switch {
		case end.Before(start):
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be on or after start_date",
			})
		case end.Sub(start) >= MaxRequestDays*24*time.Hour:
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: fmt.Sprintf("a request may span at most %d days", MaxRequestDays),
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type RejectLeaveRequest struct {
	Reason string `json:"reason" validate:"omitempty,max=500"`
}

func (r *RejectLeaveRequest) Validate() error {
	if errs := validator.Struct(r); len(errs) > 0 {
		return errs
	}
	return nil
}

type LeaveRequestResponse struct {
	ID              string    `json:"id"`
	Type            string    `json:"type"`
	StartDate       string    `json:"start_date"`
	EndDate         string    `json:"end_date"`
	WorkingDays     int       `json:"working_days"`
	Reason          string    `json:"reason"`
	Status          string    `json:"status"`
	RejectionReason *string   `json:"rejection_reason,omitempty"`
	SubmittedAt     time.Time `json:"submitted_at"`
}

// ToResponse maps a stored request to its JSON shape
func ToResponse(r LeaveRequest) LeaveRequestResponse {
	return LeaveRequestResponse{
		ID:              r.ID,
		Type:            string(r.Type),
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		WorkingDays:     len(r.WorkingDays()),
		Reason:          r.Reason,
		Status:          string(r.Status),
		RejectionReason: r.RejectionReason,
		SubmittedAt:     r.SubmittedAt,
	}
}

type ListLeaveRequestResponse struct {
	TotalCount          int                    `json:"total_count"`
	AnnualAllowance     int                    `json:"annual_allowance"`
	RemainingAnnualDays int                    `json:"remaining_annual_days"`
	LeaveRequests       []LeaveRequestResponse `json:"leave_requests"`
}

type ApproveLeaveResponse struct {
	LeaveRequest LeaveRequestResponse            `json:"leave_request"`
	Attendances  []attendance.AttendanceResponse `json:"attendances"`
}
