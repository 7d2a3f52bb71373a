package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/presence-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/presence-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const leaveRequestColumns = `
	id, type, to_char(start_date, 'YYYY-MM-DD'), to_char(end_date, 'YYYY-MM-DD'),
	reason, status, rejection_reason, submitted_at
`

type leaveRequestRepository struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) leave.LeaveRequestRepository {
	return &leaveRequestRepository{db: db}
}

func scanLeaveRequest(row pgx.Row) (leave.LeaveRequest, error) {
	var (
		req       leave.LeaveRequest
		leaveType string
		status    string
	)
	err := row.Scan(
		&req.ID, &leaveType, &req.StartDate, &req.EndDate,
		&req.Reason, &status, &req.RejectionReason, &req.SubmittedAt,
	)
	req.Type = leave.Type(leaveType)
	req.Status = leave.RequestStatus(status)
	return req, err
}

// Create implements leave.LeaveRequestRepository.
func (l *leaveRequestRepository) Create(ctx context.Context, req leave.LeaveRequest) (leave.LeaveRequest, error) {
	if req.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return leave.LeaveRequest{}, fmt.Errorf("failed to generate leave request id: %w", err)
		}
		req.ID = id.String()
	}

	q := GetQuerier(ctx, l.db)
	created, err := scanLeaveRequest(q.QueryRow(ctx, `
		INSERT INTO leave_requests (
			id, type, start_date, end_date, reason, status, rejection_reason, submitted_at
		) VALUES (
			$1, $2, $3::date, $4::date, $5, $6, $7, $8
		)
		RETURNING `+leaveRequestColumns,
		req.ID,
		string(req.Type),
		req.StartDate,
		req.EndDate,
		req.Reason,
		string(req.Status),
		req.RejectionReason,
		req.SubmittedAt,
	))
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	return created, nil
}

// GetByID implements leave.LeaveRequestRepository.
func (l *leaveRequestRepository) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, l.db)

	req, err := scanLeaveRequest(q.QueryRow(ctx, `
		SELECT `+leaveRequestColumns+`
		FROM leave_requests
		WHERE id = $1
	`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
		}
		return leave.LeaveRequest{}, fmt.Errorf("failed to get leave request: %w", err)
	}

	return req, nil
}

// List implements leave.LeaveRequestRepository.
func (l *leaveRequestRepository) List(ctx context.Context) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, l.db)

	rows, err := q.Query(ctx, `SELECT `+leaveRequestColumns+` FROM leave_requests ORDER BY seq DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}
	defer rows.Close()

	requests := make([]leave.LeaveRequest, 0)
	for rows.Next() {
		req, err := scanLeaveRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave request: %w", err)
		}
		requests = append(requests, req)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate leave requests: %w", err)
	}

	return requests, nil
}

// UpdateStatus implements leave.LeaveRequestRepository.
func (l *leaveRequestRepository) UpdateStatus(ctx context.Context, id string, status leave.RequestStatus, rejectionReason *string) (leave.LeaveRequest, error) {
	var updated leave.LeaveRequest

	err := WithTransaction(ctx, l.db, func(ctx context.Context) error {
		q := GetQuerier(ctx, l.db)

		current, err := scanLeaveRequest(q.QueryRow(ctx, `
			SELECT `+leaveRequestColumns+`
			FROM leave_requests
			WHERE id = $1
			FOR UPDATE
		`, id))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return leave.ErrLeaveRequestNotFound
			}
			return fmt.Errorf("failed to get leave request: %w", err)
		}
		if current.Status != leave.RequestStatusPending {
			return leave.ErrLeaveRequestAlreadyProcessed
		}

		if _, err := q.Exec(ctx, `
			UPDATE leave_requests
			SET status = $2, rejection_reason = $3, updated_at = NOW()
			WHERE id = $1
		`, id, string(status), rejectionReason); err != nil {
			return fmt.Errorf("failed to update leave request: %w", err)
		}

		current.Status = status
		current.RejectionReason = rejectionReason
		updated = current
		return nil
	})
	if err != nil {
		return leave.LeaveRequest{}, err
	}

	return updated, nil
}

// SeedLeaveRequests inserts requests, oldest first, when the table is empty.
// IDs are kept.
func SeedLeaveRequests(ctx context.Context, db *database.DB, requests []leave.LeaveRequest) (int, error) {
	var count int64
	if err := db.QueryRow(ctx, `SELECT COUNT(*) FROM leave_requests`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count leave requests: %w", err)
	}
	if count > 0 {
		return 0, nil
	}

	repo := NewLeaveRequestRepository(db)
	for _, r := range requests {
		if _, err := repo.Create(ctx, r); err != nil {
			return 0, fmt.Errorf("failed to seed leave request %s: %w", r.ID, err)
		}
	}
	return len(requests), nil
}
