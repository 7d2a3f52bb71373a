package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/cmlabs-hris/presence-backend-go/internal/domain/attendance"
	"github.com/google/uuid"
)

type attendanceRepository struct {
	mu      sync.RWMutex
	records []attendance.Record
}

// NewAttendanceRepository returns an in-memory store seeded with a copy of seed.
func NewAttendanceRepository(seed []attendance.Record) attendance.AttendanceRepository {
	records := make([]attendance.Record, 0, len(seed))
	for _, r := range seed {
		records = append(records, clone(r))
	}
	return &attendanceRepository{records: records}
}

// Append implements attendance.AttendanceRepository.
func (a *attendanceRepository) Append(ctx context.Context, record attendance.Record) (attendance.Record, error) {
	if err := ctx.Err(); err != nil {
		return attendance.Record{}, err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	for _, existing := range a.records {
		if existing.Date != record.Date {
			continue
		}
		if record.IsOpen() && existing.IsOpen() {
			return attendance.Record{}, attendance.ErrAlreadyCheckedIn
		}
		if record.IsSynthetic() {
			return attendance.Record{}, attendance.ErrDuplicateRecord
		}
	}

	if record.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return attendance.Record{}, fmt.Errorf("failed to generate attendance id: %w", err)
		}
		record.ID = id.String()
	}

	a.records = append(a.records, clone(record))
	return clone(record), nil
}

// List implements attendance.AttendanceRepository.
func (a *attendanceRepository) List(ctx context.Context) ([]attendance.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	a.mu.RLock()
	defer a.mu.RUnlock()

	out := make([]attendance.Record, 0, len(a.records))
	for _, r := range a.records {
		out = append(out, clone(r))
	}
	return out, nil
}

// FindByDate implements attendance.AttendanceRepository.
func (a *attendanceRepository) FindByDate(ctx context.Context, date string) (*attendance.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	a.mu.RLock()
	defer a.mu.RUnlock()

	for _, r := range a.records {
		if r.Date == date {
			found := clone(r)
			return &found, nil
		}
	}
	return nil, nil
}

// ListOpenBefore implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListOpenBefore(ctx context.Context, date string) ([]attendance.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	a.mu.RLock()
	defer a.mu.RUnlock()

	out := make([]attendance.Record, 0)
	for _, r := range a.records {
		// YYYY-MM-DD compares correctly as a string
		if r.Date < date && r.IsOpen() {
			out = append(out, clone(r))
		}
	}
	return out, nil
}

// CloseSession implements attendance.AttendanceRepository.
func (a *attendanceRepository) CloseSession(ctx context.Context, id string, checkOut string) (attendance.Record, error) {
	if err := ctx.Err(); err != nil {
		return attendance.Record{}, err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	idx := slices.IndexFunc(a.records, func(r attendance.Record) bool { return r.ID == id })
	if idx < 0 {
		return attendance.Record{}, attendance.ErrAttendanceNotFound
	}
	if !a.records[idx].IsOpen() {
		return attendance.Record{}, attendance.ErrAlreadyCheckedOut
	}

	a.records[idx].CheckOut = &checkOut
	return clone(a.records[idx]), nil
}

// clone copies pointer fields so callers never alias stored records
func clone(r attendance.Record) attendance.Record {
	r.CheckIn = copyPtr(r.CheckIn)
	r.CheckOut = copyPtr(r.CheckOut)
	r.LocationName = copyPtr(r.LocationName)
	r.Latitude = copyPtr(r.Latitude)
	r.Longitude = copyPtr(r.Longitude)
	return r
}

func copyPtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
