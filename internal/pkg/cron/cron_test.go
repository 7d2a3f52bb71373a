package cron

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cmlabs-hris/presence-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/presence-backend-go/internal/domain/presence"
	"github.com/cmlabs-hris/presence-backend-go/internal/repository/memory"
	presenceService "github.com/cmlabs-hris/presence-backend-go/internal/service/presence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock(t time.Time) presence.Clock {
	return presence.ClockFunc(func() time.Time { return t })
}

func strPtr(s string) *string { return &s }

func TestScheduler_RunOnce(t *testing.T) {
	s := NewScheduler(context.Background(), "test")
	var calls atomic.Int32
	s.AddJob("ok", time.Hour, func(ctx context.Context) error {
		calls.Add(1)
		return nil
	})
	s.AddJob("failing", time.Hour, func(ctx context.Context) error {
		calls.Add(1)
		return errors.New("boom")
	})

	s.RunOnce(context.Background())

	assert.Equal(t, int32(2), calls.Load())
	assert.Equal(t, []string{"ok", "failing"}, s.Jobs())
}

func TestScheduler_StopsWithParentContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := NewScheduler(ctx, "test")

	ran := make(chan struct{}, 1)
	s.AddJob("tick", 10*time.Millisecond, func(ctx context.Context) error {
		select {
		case ran <- struct{}{}:
		default:
		}
		return nil
	})
	s.Start()

	select {
	case <-ran:
	case <-time.After(time.Second):
		t.Fatal("job did not run on start")
	}

	cancel()
	select {
	case <-s.Done():
	case <-time.After(time.Second):
		t.Fatal("scheduler did not observe parent cancellation")
	}

	// Stop waits for the job goroutines and may be called again
	s.Stop()
	s.Stop()
}

func TestScheduler_AddJobAfterStartIgnored(t *testing.T) {
	s := NewScheduler(context.Background(), "test")
	s.Start()
	defer s.Stop()

	s.AddJob("late", time.Hour, func(ctx context.Context) error { return nil })
	assert.Empty(t, s.Jobs())
}

func TestMarkAbsent(t *testing.T) {
	// Friday; yesterday is Thursday 2023-10-05
	friday := time.Date(2023, 10, 6, 10, 0, 0, 0, time.UTC)

	t.Run("appends absent record for an empty weekday", func(t *testing.T) {
		repo := memory.NewAttendanceRepository(nil)
		jobs := NewAttendanceJobs(repo, fixedClock(friday), time.Hour)

		require.NoError(t, jobs.MarkAbsent(context.Background()))

		records, err := repo.List(context.Background())
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "2023-10-05", records[0].Date)
		assert.Equal(t, attendance.StatusAbsent, records[0].Status)
		assert.Equal(t, attendance.LocationWFH, records[0].LocationType)
		assert.Nil(t, records[0].CheckIn)
	})

	t.Run("is idempotent per date", func(t *testing.T) {
		repo := memory.NewAttendanceRepository(nil)
		jobs := NewAttendanceJobs(repo, fixedClock(friday), time.Hour)
		s := NewScheduler(context.Background(), "test")
		jobs.RegisterJobs(s)

		s.RunOnce(context.Background())
		s.RunOnce(context.Background())

		// A fresh job instance relies on the store check alone
		require.NoError(t, NewAttendanceJobs(repo, fixedClock(friday), time.Hour).MarkAbsent(context.Background()))

		records, err := repo.List(context.Background())
		require.NoError(t, err)
		assert.Len(t, records, 1)
	})

	t.Run("skips a day that already has a record", func(t *testing.T) {
		repo := memory.NewAttendanceRepository([]attendance.Record{{
			ID:           "a5",
			Date:         "2023-10-05",
			CheckIn:      strPtr("09:00 AM"),
			CheckOut:     strPtr("06:00 PM"),
			LocationType: attendance.LocationWFH,
			Status:       attendance.StatusPresent,
		}})
		jobs := NewAttendanceJobs(repo, fixedClock(friday), time.Hour)

		require.NoError(t, jobs.MarkAbsent(context.Background()))

		records, err := repo.List(context.Background())
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "a5", records[0].ID)
	})

	t.Run("skips weekends", func(t *testing.T) {
		monday := time.Date(2023, 10, 9, 10, 0, 0, 0, time.UTC)
		repo := memory.NewAttendanceRepository(nil)
		jobs := NewAttendanceJobs(repo, fixedClock(monday), time.Hour)

		require.NoError(t, jobs.MarkAbsent(context.Background()))

		records, err := repo.List(context.Background())
		require.NoError(t, err)
		assert.Empty(t, records)
	})
}

func TestCloseStaleSessions(t *testing.T) {
	friday := time.Date(2023, 10, 6, 10, 0, 0, 0, time.UTC)

	t.Run("closes open sessions from earlier days only", func(t *testing.T) {
		repo := memory.NewAttendanceRepository([]attendance.Record{
			{ID: "old", Date: "2023-10-05", CheckIn: strPtr("08:50 AM"), LocationType: attendance.LocationWFH, Status: attendance.StatusPresent},
			{ID: "done", Date: "2023-10-04", CheckIn: strPtr("08:50 AM"), CheckOut: strPtr("05:00 PM"), LocationType: attendance.LocationWFH, Status: attendance.StatusPresent},
			{ID: "today", Date: "2023-10-06", CheckIn: strPtr("09:05 AM"), LocationType: attendance.LocationHeadOffice, Status: attendance.StatusPresent},
		})
		jobs := NewAttendanceJobs(repo, fixedClock(friday), time.Hour)

		require.NoError(t, jobs.CloseStaleSessions(context.Background()))

		records, err := repo.List(context.Background())
		require.NoError(t, err)
		require.Len(t, records, 3)
		require.NotNil(t, records[0].CheckOut)
		assert.Equal(t, staleCheckOut, *records[0].CheckOut)
		assert.Equal(t, "05:00 PM", *records[1].CheckOut)
		assert.Nil(t, records[2].CheckOut)

		// Nothing left to close on a second run
		require.NoError(t, jobs.CloseStaleSessions(context.Background()))
	})

	t.Run("closes a session the presence view left behind at midnight", func(t *testing.T) {
		ctx := context.Background()
		now := time.Date(2023, 10, 6, 8, 30, 0, 0, time.UTC)
		var clock presence.Clock = presence.ClockFunc(func() time.Time { return now })

		repo := memory.NewAttendanceRepository(nil)
		controller := presenceService.NewPresenceController(repo, clock)

		_, err := controller.SelectLocationType(ctx, presence.SelectLocationRequest{LocationType: string(attendance.LocationWFH)})
		require.NoError(t, err)
		_, err = controller.CheckIn(ctx)
		require.NoError(t, err)

		now = now.Add(24 * time.Hour)

		// The view has moved on to the new day and cannot reach yesterday's session
		_, err = controller.CheckOut(ctx)
		assert.ErrorIs(t, err, presence.ErrNotCheckedIn)

		jobs := NewAttendanceJobs(repo, clock, time.Hour)
		require.NoError(t, jobs.CloseStaleSessions(ctx))

		records, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "2023-10-06", records[0].Date)
		require.NotNil(t, records[0].CheckOut)
		assert.Equal(t, staleCheckOut, *records[0].CheckOut)
	})
}

func TestAttendanceJobs_RegisterJobs(t *testing.T) {
	s := NewScheduler(context.Background(), "test")
	NewAttendanceJobs(memory.NewAttendanceRepository(nil), fixedClock(time.Now()), time.Hour).RegisterJobs(s)

	assert.ElementsMatch(t, []string{markAbsentJob, closeStaleSessionsJob}, s.Jobs())
}

func TestPresenceClock(t *testing.T) {
	now := time.Date(2023, 10, 6, 14, 5, 0, 0, time.UTC)
	var got presence.ClockEvent

	job := NewPresenceClock(fixedClock(now), func(ev presence.ClockEvent) { got = ev })
	require.NoError(t, job(context.Background()))

	assert.Equal(t, "02:05 PM", got.Time)
	assert.Equal(t, "Friday, October 6, 2023", got.Date)
}

func TestStartPresenceClock_ReleasedWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	events := make(chan presence.ClockEvent, 4)

	s := StartPresenceClock(ctx, fixedClock(time.Now()), func(ev presence.ClockEvent) {
		select {
		case events <- ev:
		default:
		}
	})

	select {
	case <-events:
	case <-time.After(time.Second):
		t.Fatal("clock did not tick on start")
	}

	cancel()
	s.Stop()

	// Drain anything published before the stop, then expect silence
	for len(events) > 0 {
		<-events
	}
	select {
	case <-events:
		t.Fatal("clock still ticking after stop")
	case <-time.After(1500 * time.Millisecond):
	}
}
