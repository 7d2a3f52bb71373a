package attendance

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/presence-backend-go/internal/domain/attendance"
)

type AttendanceServiceImpl struct {
	attendance.AttendanceRepository
}

func NewAttendanceService(repo attendance.AttendanceRepository) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		AttendanceRepository: repo,
	}
}

// ListAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ListAttendance(ctx context.Context) (attendance.ListAttendanceResponse, error) {
	records, err := s.AttendanceRepository.List(ctx)
	if err != nil {
		return attendance.ListAttendanceResponse{}, fmt.Errorf("failed to list attendances: %w", err)
	}

	sorted := SortByDateDescending(records)
	responses := make([]attendance.AttendanceResponse, 0, len(sorted))
	for _, r := range sorted {
		responses = append(responses, attendance.ToResponse(r))
	}

	return attendance.ListAttendanceResponse{
		TotalCount:  len(responses),
		Attendances: responses,
	}, nil
}

// RecordAbsence implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) RecordAbsence(ctx context.Context, req attendance.RecordAbsenceRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	record, err := s.AttendanceRepository.Append(ctx, attendance.Record{
		Date:         req.Date,
		LocationType: attendance.LocationWFH,
		Status:       attendance.Status(req.Status),
	})
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to record absence: %w", err)
	}

	slog.Info("Absence recorded", "attendance_id", record.ID, "date", record.Date, "status", record.Status)
	return attendance.ToResponse(record), nil
}
