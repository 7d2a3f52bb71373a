package leave

import "context"

type LeaveService interface {
	// CreateLeaveRequest submits a Pending request
	CreateLeaveRequest(ctx context.Context, req CreateLeaveRequestRequest) (LeaveRequestResponse, error)

	// ListLeaveRequests returns every request with the remaining Annual balance
	ListLeaveRequests(ctx context.Context) (ListLeaveRequestResponse, error)

	GetLeaveRequest(ctx context.Context, id string) (LeaveRequestResponse, error)

	// ApproveLeaveRequest approves a Pending request and writes a Sick or Leave
	// attendance entry for each working day that has no record yet
	ApproveLeaveRequest(ctx context.Context, id string) (ApproveLeaveResponse, error)

	RejectLeaveRequest(ctx context.Context, id string, req RejectLeaveRequest) (LeaveRequestResponse, error)
}
