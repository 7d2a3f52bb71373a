package attendance

import "context"

// AttendanceRepository is the attendance store. It owns the ordered
// collection; callers only ever see copies.
type AttendanceRepository interface {
	// Append inserts a record at the end and returns it. An empty ID is
	// generated; a provided one is kept.
	// A second open record for the same date fails with ErrAlreadyCheckedIn,
	// and a synthetic entry for a date that already has a record fails with
	// ErrDuplicateRecord.
	Append(ctx context.Context, record Record) (Record, error)

	// List returns all records in insertion order
	List(ctx context.Context) ([]Record, error)

	// FindByDate returns the first record for date, or nil
	FindByDate(ctx context.Context, date string) (*Record, error)

	// ListOpenBefore returns open records dated strictly before date, in
	// insertion order
	ListOpenBefore(ctx context.Context, date string) ([]Record, error)

	// CloseSession stamps checkOut on the open record with the given ID
	CloseSession(ctx context.Context, id string, checkOut string) (Record, error)
}
