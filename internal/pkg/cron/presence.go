package cron

import (
	"context"
	"time"

	"github.com/cmlabs-hris/presence-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/presence-backend-go/internal/domain/presence"
)

const (
	PresenceClockJob      = "presence_clock"
	PresenceClockInterval = time.Second

	clockDateLayout = "Monday, January 2, 2006"
)

// NewPresenceClock returns a job that renders the current local time and
// hands it to publish on every tick.
func NewPresenceClock(clock presence.Clock, publish func(presence.ClockEvent)) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		now := clock.Now()
		publish(presence.ClockEvent{
			Time: now.Format(attendance.TimeLayout),
			Date: now.Format(clockDateLayout),
		})
		return nil
	}
}

// StartPresenceClock starts a scheduler with a single presence_clock job.
// The caller must Stop it when the view goes away.
func StartPresenceClock(ctx context.Context, clock presence.Clock, publish func(presence.ClockEvent)) *Scheduler {
	scheduler := NewScheduler(ctx, PresenceClockJob)
	scheduler.AddJob(PresenceClockJob, PresenceClockInterval, NewPresenceClock(clock, publish))
	scheduler.Start()
	return scheduler
}
