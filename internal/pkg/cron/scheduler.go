package cron

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Job represents a scheduled job
type Job struct {
	Name     string
	Interval time.Duration
	Fn       func(ctx context.Context) error
}

// Scheduler manages scheduled jobs. Jobs stop when Stop is called or the
// parent context passed to NewScheduler is cancelled.
type Scheduler struct {
	name     string
	logger   *slog.Logger
	jobs     []Job
	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup
	mu       sync.Mutex
	started  bool
	stopOnce sync.Once
}

// NewScheduler creates a new cron scheduler bound to parent
func NewScheduler(parent context.Context, name string) *Scheduler {
	ctx, cancel := context.WithCancel(parent)
	return &Scheduler{
		name:   name,
		logger: slog.Default().With("scheduler", name),
		jobs:   make([]Job, 0),
		ctx:    ctx,
		cancel: cancel,
	}
}

// AddJob adds a job to the scheduler. Jobs added after Start are ignored.
func (s *Scheduler) AddJob(name string, interval time.Duration, fn func(ctx context.Context) error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		s.logger.Warn("Cron job added after start, ignoring", "name", name)
		return
	}

	s.jobs = append(s.jobs, Job{
		Name:     name,
		Interval: interval,
		Fn:       fn,
	})
	s.logger.Debug("Cron job registered", "name", name, "interval", interval)
}

// Start begins running all scheduled jobs
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return
	}
	s.started = true

	for _, job := range s.jobs {
		s.wg.Add(1)
		go s.runJob(job)
	}

	s.logger.Debug("Cron scheduler started", "job_count", len(s.jobs))
}

// Stop cancels all jobs and waits for running ones to return. Safe to call
// more than once.
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		s.cancel()
		s.wg.Wait()
		s.logger.Debug("Cron scheduler stopped")
	})
}

// Done is closed once the scheduler has been stopped or its parent cancelled
func (s *Scheduler) Done() <-chan struct{} {
	return s.ctx.Done()
}

// Jobs returns the names of the registered jobs
func (s *Scheduler) Jobs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	names := make([]string, 0, len(s.jobs))
	for _, job := range s.jobs {
		names = append(names, job.Name)
	}
	return names
}

// runJob runs a single job on its schedule
func (s *Scheduler) runJob(job Job) {
	defer s.wg.Done()

	ticker := time.NewTicker(job.Interval)
	defer ticker.Stop()

	// Run immediately on start
	s.executeJob(job)

	for {
		select {
		case <-s.ctx.Done():
			s.logger.Debug("Cron job stopping", "name", job.Name)
			return
		case <-ticker.C:
			s.executeJob(job)
		}
	}
}

// executeJob executes a job and logs results
func (s *Scheduler) executeJob(job Job) {
	if s.ctx.Err() != nil {
		return
	}

	start := time.Now()
	if err := job.Fn(s.ctx); err != nil {
		s.logger.Error("Cron job failed", "name", job.Name, "error", err, "duration", time.Since(start))
	}
}

// RunOnce runs all jobs once (useful for testing)
func (s *Scheduler) RunOnce(ctx context.Context) {
	s.mu.Lock()
	jobs := append([]Job(nil), s.jobs...)
	s.mu.Unlock()

	for _, job := range jobs {
		if err := job.Fn(ctx); err != nil {
			s.logger.Error("Cron job failed", "name", job.Name, "error", err)
		}
	}
}
