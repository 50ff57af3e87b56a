// Package workers runs the periodic background jobs of the server: the
// challenge expiry sweep and the audit log archive.
package workers

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/fitmint/internal/logging"
	"github.com/go-co-op/gocron/v2"
)

// Job is one unit of periodic work.
type Job func(ctx context.Context) error

// Scheduler wraps a gocron scheduler. Jobs never overlap with themselves.
type Scheduler struct {
	sched  gocron.Scheduler
	logger logging.Logger
}

func NewScheduler(logger logging.Logger) (*Scheduler, error) {
	if logger == nil {
		logger = logging.Nop{}
	}
	sched, err := gocron.NewScheduler(gocron.WithLocation(time.UTC))
	if err != nil {
		return nil, fmt.Errorf("create scheduler: %w", err)
	}
	return &Scheduler{sched: sched, logger: logger.With("module", "workers")}, nil
}

// Every registers job to run each interval. With immediate set the first
// run happens on start instead of after one interval.
func (s *Scheduler) Every(name string, interval time.Duration, immediate bool, job Job) error {
	opts := []gocron.JobOption{
		gocron.WithName(name),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	}
	if immediate {
		opts = append(opts, gocron.WithStartAt(gocron.WithStartImmediately()))
	}

	_, err := s.sched.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func(ctx context.Context) {
			started := time.Now()
			if err := job(ctx); err != nil {
				s.logger.Error(ctx, "job failed", "job", name, "error", err)
				return
			}
			s.logger.Debug(ctx, "job done", "job", name, "elapsed", time.Since(started))
		}),
		opts...,
	)
	if err != nil {
		return fmt.Errorf("register job %s: %w", name, err)
	}
	return nil
}

// Jobs returns the names of registered jobs.
func (s *Scheduler) Jobs() []string {
	var names []string
	for _, j := range s.sched.Jobs() {
		names = append(names, j.Name())
	}
	return names
}

// Run starts the scheduler and blocks until ctx is done, then waits for
// running jobs to finish.
func (s *Scheduler) Run(ctx context.Context) error {
	s.sched.Start()
	s.logger.Info(ctx, "scheduler started", "jobs", len(s.sched.Jobs()))

	<-ctx.Done()

	s.logger.Info(ctx, "stopping scheduler...")
	if err := s.sched.Shutdown(); err != nil {
		return fmt.Errorf("shutdown scheduler: %w", err)
	}
	return nil
}
