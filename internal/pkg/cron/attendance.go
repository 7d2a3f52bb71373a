package cron

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/cmlabs-hris/presence-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/presence-backend-go/internal/domain/presence"
)

const (
	markAbsentJob         = "mark_absent"
	closeStaleSessionsJob = "close_stale_sessions"
)

// staleCheckOut is stamped on sessions left open past midnight
const staleCheckOut = "11:59 PM"

type AttendanceJobs struct {
	attendanceRepo attendance.AttendanceRepository
	clock          presence.Clock
	interval       time.Duration

	mu         sync.Mutex
	lastMarked string
}

func NewAttendanceJobs(attendanceRepo attendance.AttendanceRepository, clock presence.Clock, interval time.Duration) *AttendanceJobs {
	if interval <= 0 {
		interval = time.Hour
	}
	return &AttendanceJobs{
		attendanceRepo: attendanceRepo,
		clock:          clock,
		interval:       interval,
	}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob(markAbsentJob, j.interval, j.MarkAbsent)
	scheduler.AddJob(closeStaleSessionsJob, j.interval, j.CloseStaleSessions)
}

// MarkAbsent appends an Absent record for yesterday when it was a weekday and
// nothing at all was recorded for it. Weekends are skipped.
func (j *AttendanceJobs) MarkAbsent(ctx context.Context) error {
	yesterday := j.clock.Now().AddDate(0, 0, -1)
	date := yesterday.Format(attendance.DateLayout)

	j.mu.Lock()
	defer j.mu.Unlock()

	if j.lastMarked == date {
		return nil
	}

	if wd := yesterday.Weekday(); wd == time.Saturday || wd == time.Sunday {
		j.lastMarked = date
		return nil
	}

	existing, err := j.attendanceRepo.FindByDate(ctx, date)
	if err != nil {
		return fmt.Errorf("failed to check attendance for %s: %w", date, err)
	}
	if existing != nil {
		j.lastMarked = date
		return nil
	}

	created, err := j.attendanceRepo.Append(ctx, attendance.Record{
		Date:         date,
		LocationType: attendance.LocationWFH,
		Status:       attendance.StatusAbsent,
	})
	if err != nil {
		if errors.Is(err, attendance.ErrDuplicateRecord) {
			// Someone recorded the day between the lookup and the append
			j.lastMarked = date
			return nil
		}
		return fmt.Errorf("failed to mark %s absent: %w", date, err)
	}

	j.lastMarked = date
	slog.Info("Cron: Marked day absent", "attendance_id", created.ID, "date", date)
	return nil
}

// CloseStaleSessions stamps the end of day on every session still open from an
// earlier date. The presence view only tracks today's record, so nothing else
// ever closes them.
func (j *AttendanceJobs) CloseStaleSessions(ctx context.Context) error {
	today := j.clock.Now().Format(attendance.DateLayout)

	stale, err := j.attendanceRepo.ListOpenBefore(ctx, today)
	if err != nil {
		return fmt.Errorf("failed to list open sessions before %s: %w", today, err)
	}

	closed := 0
	for _, record := range stale {
		if _, err := j.attendanceRepo.CloseSession(ctx, record.ID, staleCheckOut); err != nil {
			if errors.Is(err, attendance.ErrAlreadyCheckedOut) {
				continue
			}
			return fmt.Errorf("failed to close session %s: %w", record.ID, err)
		}
		closed++
	}

	if closed > 0 {
		slog.Info("Cron: Closed stale sessions", "count", closed, "before", today)
	}
	return nil
}
