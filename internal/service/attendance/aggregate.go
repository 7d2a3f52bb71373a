package attendance

import (
	"slices"
	"strings"

	"github.com/cmlabs-hris/presence-backend-go/internal/domain/attendance"
)

// FindByDate returns the first record for date, or nil.
func FindByDate(records []attendance.Record, date string) *attendance.Record {
	for i := range records {
		if records[i].Date == date {
			r := records[i]
			return &r
		}
	}
	return nil
}

// FindOpenByDate returns the first clocked-in record for date that has no check-out.
func FindOpenByDate(records []attendance.Record, date string) *attendance.Record {
	for i := range records {
		if records[i].Date == date && records[i].IsOpen() {
			r := records[i]
			return &r
		}
	}
	return nil
}

// Aggregate counts records by status in one pass. Every known status is
// present in the map, so the counts always partition len(records).
func Aggregate(records []attendance.Record) attendance.Summary {
	summary := attendance.Summary{
		Total:    len(records),
		ByStatus: make(map[attendance.Status]int, len(attendance.Statuses)),
	}
	for _, s := range attendance.Statuses {
		summary.ByStatus[s] = 0
	}
	for _, r := range records {
		summary.ByStatus[r.Status]++
	}
	return summary
}

// SortByDateDescending returns a new slice ordered by date, most recent first.
// Records sharing a date keep their original relative order.
func SortByDateDescending(records []attendance.Record) []attendance.Record {
	sorted := slices.Clone(records)
	slices.SortStableFunc(sorted, func(a, b attendance.Record) int {
		// YYYY-MM-DD compares lexically in date order
		return strings.Compare(b.Date, a.Date)
	})
	return sorted
}
