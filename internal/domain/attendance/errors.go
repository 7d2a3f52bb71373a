package attendance

import "errors"

// Attendance domain errors
var (
	ErrAlreadyCheckedIn   = errors.New("you have already checked in today")
	ErrAlreadyCheckedOut  = errors.New("you have already checked out")
	ErrDuplicateRecord    = errors.New("an attendance record already exists for this date")
	ErrAttendanceNotFound = errors.New("attendance record not found")
)
