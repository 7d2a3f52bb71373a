package memory

import (
	"context"
	"sync"
	"testing"

	"github.com/cmlabs-hris/presence-backend-go/internal/domain/attendance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func openRecord(date string) attendance.Record {
	return attendance.Record{
		Date:         date,
		CheckIn:      strPtr("08:55 AM"),
		LocationType: attendance.LocationWFH,
		Status:       attendance.StatusPresent,
	}
}

func TestAttendanceRepository_Append_AssignsIDAndKeepsOrder(t *testing.T) {
	ctx := context.Background()
	repo := NewAttendanceRepository(nil)

	first, err := repo.Append(ctx, openRecord("2023-10-02"))
	require.NoError(t, err)
	second, err := repo.Append(ctx, openRecord("2023-10-01"))
	require.NoError(t, err)

	assert.NotEmpty(t, first.ID)
	assert.NotEqual(t, first.ID, second.ID)

	records, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "2023-10-02", records[0].Date)
	assert.Equal(t, "2023-10-01", records[1].Date)
}

func TestAttendanceRepository_Append_KeepsProvidedID(t *testing.T) {
	ctx := context.Background()
	repo := NewAttendanceRepository(nil)

	rec := openRecord("2023-10-02")
	rec.ID = "seed-1"
	got, err := repo.Append(ctx, rec)
	require.NoError(t, err)
	assert.Equal(t, "seed-1", got.ID)

	records, _ := repo.List(ctx)
	require.Len(t, records, 1)
	assert.Equal(t, "seed-1", records[0].ID)
}

func TestAttendanceRepository_ListOpenBefore(t *testing.T) {
	ctx := context.Background()
	repo := NewAttendanceRepository(nil)

	closed := openRecord("2023-10-04")
	closed.CheckOut = strPtr("05:00 PM")
	_, err := repo.Append(ctx, closed)
	require.NoError(t, err)
	stale, err := repo.Append(ctx, openRecord("2023-10-05"))
	require.NoError(t, err)
	_, err = repo.Append(ctx, openRecord("2023-10-06"))
	require.NoError(t, err)

	open, err := repo.ListOpenBefore(ctx, "2023-10-06")
	require.NoError(t, err)
	require.Len(t, open, 1)
	assert.Equal(t, stale.ID, open[0].ID)

	open, err = repo.ListOpenBefore(ctx, "2023-10-05")
	require.NoError(t, err)
	assert.Empty(t, open)
}

func TestAttendanceRepository_Append_RejectsSecondOpenRecord(t *testing.T) {
	ctx := context.Background()
	repo := NewAttendanceRepository(nil)

	_, err := repo.Append(ctx, openRecord("2023-10-01"))
	require.NoError(t, err)

	_, err = repo.Append(ctx, openRecord("2023-10-01"))
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedIn)

	records, _ := repo.List(ctx)
	assert.Len(t, records, 1)
}

func TestAttendanceRepository_Append_AllowsNewSessionAfterCheckOut(t *testing.T) {
	ctx := context.Background()
	repo := NewAttendanceRepository(nil)

	first, err := repo.Append(ctx, openRecord("2023-10-01"))
	require.NoError(t, err)
	_, err = repo.CloseSession(ctx, first.ID, "12:00 PM")
	require.NoError(t, err)

	_, err = repo.Append(ctx, openRecord("2023-10-01"))
	assert.NoError(t, err)
}

func TestAttendanceRepository_Append_RejectsDuplicateSyntheticEntry(t *testing.T) {
	ctx := context.Background()
	repo := NewAttendanceRepository(nil)

	sick := attendance.Record{Date: "2023-10-04", LocationType: attendance.LocationWFH, Status: attendance.StatusSick}
	_, err := repo.Append(ctx, sick)
	require.NoError(t, err)

	_, err = repo.Append(ctx, sick)
	assert.ErrorIs(t, err, attendance.ErrDuplicateRecord)
}

func TestAttendanceRepository_FindByDate(t *testing.T) {
	ctx := context.Background()
	repo := NewAttendanceRepository([]attendance.Record{
		{ID: "a1", Date: "2023-10-01", Status: attendance.StatusPresent},
		{ID: "a2", Date: "2023-10-02", Status: attendance.StatusLate},
	})

	found, err := repo.FindByDate(ctx, "2023-10-02")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "a2", found.ID)

	missing, err := repo.FindByDate(ctx, "2023-10-09")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestAttendanceRepository_CloseSession(t *testing.T) {
	ctx := context.Background()
	repo := NewAttendanceRepository([]attendance.Record{
		{ID: "a1", Date: "2023-10-01", CheckIn: strPtr("08:55 AM"), Status: attendance.StatusPresent},
	})

	closed, err := repo.CloseSession(ctx, "a1", "05:05 PM")
	require.NoError(t, err)
	require.NotNil(t, closed.CheckOut)
	assert.Equal(t, "05:05 PM", *closed.CheckOut)

	_, err = repo.CloseSession(ctx, "a1", "05:10 PM")
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedOut)

	_, err = repo.CloseSession(ctx, "missing", "05:10 PM")
	assert.ErrorIs(t, err, attendance.ErrAttendanceNotFound)
}

func TestAttendanceRepository_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewAttendanceRepository(nil)

	created, err := repo.Append(ctx, openRecord("2023-10-01"))
	require.NoError(t, err)
	*created.CheckIn = "tampered"

	records, _ := repo.List(ctx)
	*records[0].CheckIn = "tampered again"

	found, _ := repo.FindByDate(ctx, "2023-10-01")
	assert.Equal(t, "08:55 AM", *found.CheckIn)
}

func TestAttendanceRepository_ConcurrentAppendKeepsOneOpenRecord(t *testing.T) {
	ctx := context.Background()
	repo := NewAttendanceRepository(nil)

	var wg sync.WaitGroup
	errs := make(chan error, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.Append(ctx, openRecord("2023-10-01"))
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	succeeded := 0
	for err := range errs {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedIn)
		}
	}
	assert.Equal(t, 1, succeeded)
}

func TestAttendanceRepository_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	repo := NewAttendanceRepository(nil)
	_, err := repo.Append(ctx, openRecord("2023-10-01"))
	assert.ErrorIs(t, err, context.Canceled)
}
