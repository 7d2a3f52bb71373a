package attendance

import (
	"github.com/cmlabs-hris/presence-backend-go/internal/pkg/validator"
)

// ========================================
// ATTENDANCE DTOs
// ========================================

type AttendanceResponse struct {
	ID           string   `json:"id"`
	Date         string   `json:"date"`
	CheckIn      *string  `json:"check_in,omitempty"`
	CheckOut     *string  `json:"check_out,omitempty"`
	LocationType string   `json:"location_type"`
	LocationName *string  `json:"location_name,omitempty"`
	Latitude     *float64 `json:"latitude,omitempty"`
	Longitude    *float64 `json:"longitude,omitempty"`
	Status       string   `json:"status"`
}

// ToResponse maps a stored record to its JSON shape
func ToResponse(r Record) AttendanceResponse {
	return AttendanceResponse{
		ID:           r.ID,
		Date:         r.Date,
		CheckIn:      r.CheckIn,
		CheckOut:     r.CheckOut,
		LocationType: string(r.LocationType),
		LocationName: r.LocationName,
		Latitude:     r.Latitude,
		Longitude:    r.Longitude,
		Status:       string(r.Status),
	}
}

type ListAttendanceResponse struct {
	TotalCount  int                  `json:"total_count"`
	Attendances []AttendanceResponse `json:"attendances"`
}

// RecordAbsenceRequest adds a synthetic entry without a clock-in
type RecordAbsenceRequest struct {
	Date   string `json:"date" validate:"required"`
	Status string `json:"status" validate:"required,oneof=Sick Leave Absent"`
}

func (r *RecordAbsenceRequest) Validate() error {
	errs := validator.Struct(r)

	if !validator.IsEmpty(r.Date) {
		if _, valid := validator.IsValidDate(r.Date); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "date",
				Message: "date must be in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// Summary is the per-status count over a set of records
type Summary struct {
	Total    int            `json:"total"`
	ByStatus map[Status]int `json:"by_status"`
}

// Count returns the number of records with status s
func (s Summary) Count(status Status) int {
	return s.ByStatus[status]
}
