package leave

import "context"

type LeaveRequestRepository interface {
	// Create stores a request and returns it with its ID assigned. A provided
	// ID is kept.
	Create(ctx context.Context, req LeaveRequest) (LeaveRequest, error)

	// GetByID returns ErrLeaveRequestNotFound when no request has the ID
	GetByID(ctx context.Context, id string) (LeaveRequest, error)

	// List returns all requests, most recently submitted first
	List(ctx context.Context) ([]LeaveRequest, error)

	// UpdateStatus moves a Pending request to status. A request that is no
	// longer Pending fails with ErrLeaveRequestAlreadyProcessed.
	UpdateStatus(ctx context.Context, id string, status RequestStatus, rejectionReason *string) (LeaveRequest, error)
}
