package fixtures

import (
	"time"

	"github.com/cmlabs-hris/presence-backend-go/internal/domain/leave"
)

// DemoLeaveRequests returns the sample leave history, oldest first.
// A fresh slice is returned on every call.
func DemoLeaveRequests() []leave.LeaveRequest {
	return []leave.LeaveRequest{
		{
			ID:          "l1",
			Type:        leave.TypeAnnual,
			StartDate:   "2023-08-10",
			EndDate:     "2023-08-15",
			Reason:      "Family vacation",
			Status:      leave.RequestStatusApproved,
			SubmittedAt: time.Date(2023, 7, 24, 9, 0, 0, 0, time.UTC),
		},
		{
			ID:          "l2",
			Type:        leave.TypeSick,
			StartDate:   "2023-10-04",
			EndDate:     "2023-10-04",
			Reason:      "Flu",
			Status:      leave.RequestStatusApproved,
			SubmittedAt: time.Date(2023, 10, 4, 7, 30, 0, 0, time.UTC),
		},
	}
}
