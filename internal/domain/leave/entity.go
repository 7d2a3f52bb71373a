package leave

import (
	"time"

	"github.com/cmlabs-hris/presence-backend-go/internal/domain/attendance"
)

type Type string

const (
	TypeAnnual   Type = "Annual"
	TypeSick     Type = "Sick"
	TypeUnpaid   Type = "Unpaid"
	TypeParental Type = "Maternity/Paternity"
)

// AttendanceStatus is the status written for each approved day
func (t Type) AttendanceStatus() attendance.Status {
	if t == TypeSick {
		return attendance.StatusSick
	}
	return attendance.StatusLeave
}

type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "Pending"
	RequestStatusApproved RequestStatus = "Approved"
	RequestStatusRejected RequestStatus = "Rejected"
)

// AnnualAllowance is the yearly number of Annual leave working days
const AnnualAllowance = 12

// MaxRequestDays bounds the calendar span of a single request
const MaxRequestDays = 90

// LeaveRequest entity. Dates use attendance.DateLayout.
type LeaveRequest struct {
	ID              string
	Type            Type
	StartDate       string
	EndDate         string
	Reason          string
	Status          RequestStatus
	RejectionReason *string
	SubmittedAt     time.Time
}

// WorkingDays returns the weekdays between StartDate and EndDate inclusive, in
// order. Invalid dates yield nil.
func (r LeaveRequest) WorkingDays() []string {
	start, err := time.Parse(attendance.DateLayout, r.StartDate)
	if err != nil {
		return nil
	}
	end, err := time.Parse(attendance.DateLayout, r.EndDate)
	if err != nil {
		return nil
	}

	var days []string
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if wd := d.Weekday(); wd == time.Saturday || wd == time.Sunday {
			continue
		}
		days = append(days, d.Format(attendance.DateLayout))
	}
	return days
}
