package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/cmlabs-hris/presence-backend-go/internal/domain/leave"
	"github.com/google/uuid"
)

type leaveRequestRepository struct {
	mu       sync.RWMutex
	requests []leave.LeaveRequest
}

// NewLeaveRequestRepository returns an in-memory store seeded with a copy of
// seed, given oldest first.
func NewLeaveRequestRepository(seed []leave.LeaveRequest) leave.LeaveRequestRepository {
	requests := make([]leave.LeaveRequest, 0, len(seed))
	for _, r := range seed {
		requests = append(requests, cloneLeave(r))
	}
	return &leaveRequestRepository{requests: requests}
}

// Create implements leave.LeaveRequestRepository.
func (l *leaveRequestRepository) Create(ctx context.Context, req leave.LeaveRequest) (leave.LeaveRequest, error) {
	if err := ctx.Err(); err != nil {
		return leave.LeaveRequest{}, err
	}

	if req.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return leave.LeaveRequest{}, fmt.Errorf("failed to generate leave request id: %w", err)
		}
		req.ID = id.String()
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.requests = append(l.requests, cloneLeave(req))
	return cloneLeave(req), nil
}

// GetByID implements leave.LeaveRequestRepository.
func (l *leaveRequestRepository) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	if err := ctx.Err(); err != nil {
		return leave.LeaveRequest{}, err
	}

	l.mu.RLock()
	defer l.mu.RUnlock()

	idx := slices.IndexFunc(l.requests, func(r leave.LeaveRequest) bool { return r.ID == id })
	if idx < 0 {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
	}
	return cloneLeave(l.requests[idx]), nil
}

// List implements leave.LeaveRequestRepository.
func (l *leaveRequestRepository) List(ctx context.Context) ([]leave.LeaveRequest, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]leave.LeaveRequest, 0, len(l.requests))
	for i := len(l.requests) - 1; i >= 0; i-- {
		out = append(out, cloneLeave(l.requests[i]))
	}
	return out, nil
}

// UpdateStatus implements leave.LeaveRequestRepository.
func (l *leaveRequestRepository) UpdateStatus(ctx context.Context, id string, status leave.RequestStatus, rejectionReason *string) (leave.LeaveRequest, error) {
	if err := ctx.Err(); err != nil {
		return leave.LeaveRequest{}, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	idx := slices.IndexFunc(l.requests, func(r leave.LeaveRequest) bool { return r.ID == id })
	if idx < 0 {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
	}
	if l.requests[idx].Status != leave.RequestStatusPending {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestAlreadyProcessed
	}

	l.requests[idx].Status = status
	l.requests[idx].RejectionReason = copyPtr(rejectionReason)
	return cloneLeave(l.requests[idx]), nil
}

func cloneLeave(r leave.LeaveRequest) leave.LeaveRequest {
	r.RejectionReason = copyPtr(r.RejectionReason)
	return r
}
