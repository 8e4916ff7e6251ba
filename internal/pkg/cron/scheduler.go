package cron

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/hrstreamline/hrstreamline-backend-go/internal/pkg/metrics"
	"github.com/robfig/cron/v3"
)

var ErrJobNotFound = errors.New("job not found")

// Job represents a scheduled job
type Job struct {
	Name     string
	Spec     string
	Fn       func(ctx context.Context) error
	schedule cron.Schedule
}

// Scheduler runs jobs on standard five-field cron specs evaluated in a fixed
// time zone. At most one job body executes at a time.
type Scheduler struct {
	jobs     []Job
	location *time.Location
	metrics  *metrics.Collection
	now      func() time.Time

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	mu     sync.Mutex
	runMu  sync.Mutex
}

// NewScheduler creates a new cron scheduler
func NewScheduler(location *time.Location, m *metrics.Collection) *Scheduler {
	if location == nil {
		location = time.Local
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		jobs:     make([]Job, 0),
		location: location,
		metrics:  m,
		now:      time.Now,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// AddJob adds a job to the scheduler
func (s *Scheduler) AddJob(name string, spec string, fn func(ctx context.Context) error) error {
	schedule, err := cron.ParseStandard(spec)
	if err != nil {
		return fmt.Errorf("invalid schedule %q for job %s: %w", spec, name, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.jobs = append(s.jobs, Job{
		Name:     name,
		Spec:     spec,
		Fn:       fn,
		schedule: schedule,
	})
	slog.Info("Cron job registered", "name", name, "spec", spec, "location", s.location.String())
	return nil
}

// Jobs returns the names of the registered jobs in registration order.
func (s *Scheduler) Jobs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	names := make([]string, 0, len(s.jobs))
	for _, job := range s.jobs {
		names = append(names, job.Name)
	}
	return names
}

// Start begins running all scheduled jobs
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, job := range s.jobs {
		s.wg.Add(1)
		go s.runJob(job)
	}

	slog.Info("Cron scheduler started", "job_count", len(s.jobs))
}

// Stop gracefully stops all scheduled jobs. A job body already running is
// allowed to finish.
func (s *Scheduler) Stop() {
	slog.Info("Stopping cron scheduler...")
	s.cancel()
	s.wg.Wait()
	slog.Info("Cron scheduler stopped")
}

// NextRun returns the first activation of job strictly after t, in the
// scheduler's time zone.
func (s *Scheduler) NextRun(job Job, t time.Time) time.Time {
	return job.schedule.Next(t.In(s.location))
}

// runJob sleeps until each activation of the job and executes it
func (s *Scheduler) runJob(job Job) {
	defer s.wg.Done()

	for {
		next := s.NextRun(job, s.now())
		timer := time.NewTimer(time.Until(next))

		select {
		case <-s.ctx.Done():
			timer.Stop()
			slog.Info("Cron job stopping", "name", job.Name)
			return
		case <-timer.C:
			_ = s.executeJob(s.ctx, job)
		}
	}
}

// executeJob executes a job and logs results
func (s *Scheduler) executeJob(ctx context.Context, job Job) error {
	s.runMu.Lock()
	defer s.runMu.Unlock()

	start := time.Now()
	slog.Debug("Cron job starting", "name", job.Name)

	err := job.Fn(ctx)
	elapsed := time.Since(start)
	s.metrics.ObserveJob(job.Name, err, elapsed)

	if err != nil {
		slog.Error("Cron job failed", "name", job.Name, "error", err, "duration", elapsed)
	} else {
		slog.Info("Cron job completed", "name", job.Name, "duration", elapsed)
	}
	return err
}

// RunOnce runs all jobs once, in registration order
func (s *Scheduler) RunOnce(ctx context.Context) error {
	s.mu.Lock()
	jobs := append([]Job(nil), s.jobs...)
	s.mu.Unlock()

	var errs []error
	for _, job := range jobs {
		if err := s.executeJob(ctx, job); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", job.Name, err))
		}
	}
	return errors.Join(errs...)
}

// RunByName runs a single registered job immediately.
func (s *Scheduler) RunByName(ctx context.Context, name string) error {
	s.mu.Lock()
	var (
		job   Job
		found bool
	)
	for _, j := range s.jobs {
		if j.Name == name {
			job, found = j, true
			break
		}
	}
	s.mu.Unlock()

	if !found {
		return fmt.Errorf("%w: %s", ErrJobNotFound, name)
	}
	return s.executeJob(ctx, job)
}
