package leave

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/cmlabs-hris/presence-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/presence-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/presence-backend-go/internal/domain/presence"
)

type LeaveServiceImpl struct {
	leave.LeaveRequestRepository
	attendanceRepo attendance.AttendanceRepository
	clock          presence.Clock
}

func NewLeaveService(leaveRepo leave.LeaveRequestRepository, attendanceRepo attendance.AttendanceRepository, clock presence.Clock) leave.LeaveService {
	return &LeaveServiceImpl{
		LeaveRequestRepository: leaveRepo,
		attendanceRepo:         attendanceRepo,
		clock:                  clock,
	}
}

// CreateLeaveRequest implements leave.LeaveService.
func (s *LeaveServiceImpl) CreateLeaveRequest(ctx context.Context, req leave.CreateLeaveRequestRequest) (leave.LeaveRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	request := leave.LeaveRequest{
		Type:        leave.Type(req.Type),
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Reason:      req.Reason,
		Status:      leave.RequestStatusPending,
		SubmittedAt: s.clock.Now(),
	}

	if request.Type == leave.TypeAnnual {
		existing, err := s.LeaveRequestRepository.List(ctx)
		if err != nil {
			return leave.LeaveRequestResponse{}, fmt.Errorf("failed to list leave requests: %w", err)
		}
		if len(request.WorkingDays()) > RemainingAnnualDays(existing, request.StartDate[:4]) {
			return leave.LeaveRequestResponse{}, leave.ErrInsufficientQuota
		}
	}

	created, err := s.LeaveRequestRepository.Create(ctx, request)
	if err != nil {
		return leave.LeaveRequestResponse{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	slog.Info("Leave request submitted",
		"leave_request_id", created.ID,
		"type", created.Type,
		"start_date", created.StartDate,
		"end_date", created.EndDate)
	return leave.ToResponse(created), nil
}

// ListLeaveRequests implements leave.LeaveService.
func (s *LeaveServiceImpl) ListLeaveRequests(ctx context.Context) (leave.ListLeaveRequestResponse, error) {
	requests, err := s.LeaveRequestRepository.List(ctx)
	if err != nil {
		return leave.ListLeaveRequestResponse{}, fmt.Errorf("failed to list leave requests: %w", err)
	}

	responses := make([]leave.LeaveRequestResponse, 0, len(requests))
	for _, r := range requests {
		responses = append(responses, leave.ToResponse(r))
	}

	year := strconv.Itoa(s.clock.Now().Year())
	return leave.ListLeaveRequestResponse{
		TotalCount:          len(responses),
		AnnualAllowance:     leave.AnnualAllowance,
		RemainingAnnualDays: RemainingAnnualDays(requests, year),
		LeaveRequests:       responses,
	}, nil
}

// GetLeaveRequest implements leave.LeaveService.
func (s *LeaveServiceImpl) GetLeaveRequest(ctx context.Context, id string) (leave.LeaveRequestResponse, error) {
	request, err := s.LeaveRequestRepository.GetByID(ctx, id)
	if err != nil {
		return leave.LeaveRequestResponse{}, fmt.Errorf("failed to get leave request: %w", err)
	}
	return leave.ToResponse(request), nil
}

// ApproveLeaveRequest implements leave.LeaveService.
func (s *LeaveServiceImpl) ApproveLeaveRequest(ctx context.Context, id string) (leave.ApproveLeaveResponse, error) {
	// The status transition is the lock: only one approval can leave Pending
	approved, err := s.LeaveRequestRepository.UpdateStatus(ctx, id, leave.RequestStatusApproved, nil)
	if err != nil {
		return leave.ApproveLeaveResponse{}, fmt.Errorf("failed to approve leave request: %w", err)
	}

	status := approved.Type.AttendanceStatus()
	created := make([]attendance.AttendanceResponse, 0)
	for _, date := range approved.WorkingDays() {
		existing, err := s.attendanceRepo.FindByDate(ctx, date)
		if err != nil {
			return leave.ApproveLeaveResponse{}, fmt.Errorf("failed to check attendance for %s: %w", date, err)
		}
		if existing != nil {
			slog.Debug("Leave day already recorded", "leave_request_id", approved.ID, "date", date)
			continue
		}

		record, err := s.attendanceRepo.Append(ctx, attendance.Record{
			Date:         date,
			LocationType: attendance.LocationWFH,
			Status:       status,
		})
		if err != nil {
			if errors.Is(err, attendance.ErrDuplicateRecord) {
				continue
			}
			return leave.ApproveLeaveResponse{}, fmt.Errorf("failed to record leave day %s: %w", date, err)
		}
		created = append(created, attendance.ToResponse(record))
	}

	slog.Info("Leave request approved",
		"leave_request_id", approved.ID,
		"type", approved.Type,
		"days_recorded", len(created))
	return leave.ApproveLeaveResponse{
		LeaveRequest: leave.ToResponse(approved),
		Attendances:  created,
	}, nil
}

// RejectLeaveRequest implements leave.LeaveService.
func (s *LeaveServiceImpl) RejectLeaveRequest(ctx context.Context, id string, req leave.RejectLeaveRequest) (leave.LeaveRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	var reason *string
	if req.Reason != "" {
		reason = &req.Reason
	}

	rejected, err := s.LeaveRequestRepository.UpdateStatus(ctx, id, leave.RequestStatusRejected, reason)
	if err != nil {
		return leave.LeaveRequestResponse{}, fmt.Errorf("failed to reject leave request: %w", err)
	}

	slog.Info("Leave request rejected", "leave_request_id", rejected.ID)
	return leave.ToResponse(rejected), nil
}

// RemainingAnnualDays is the allowance left for year after approved and
// pending Annual requests starting in that year.
func RemainingAnnualDays(requests []leave.LeaveRequest, year string) int {
	used := 0
	for _, r := range requests {
		if r.Type != leave.TypeAnnual || r.Status == leave.RequestStatusRejected {
			continue
		}
		if len(r.StartDate) < 4 || r.StartDate[:4] != year {
			continue
		}
		used += len(r.WorkingDays())
	}
	return max(leave.AnnualAllowance-used, 0)
}
