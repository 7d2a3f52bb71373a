package attendance

import "context"

// AttendanceService exposes the store to views that only read or add synthetic entries
type AttendanceService interface {
	// ListAttendance returns all records, most recent date first
	ListAttendance(ctx context.Context) (ListAttendanceResponse, error)

	// RecordAbsence appends a Sick, Leave or Absent entry without a clock-in
	RecordAbsence(ctx context.Context, req RecordAbsenceRequest) (AttendanceResponse, error)
}
