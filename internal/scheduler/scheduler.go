package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Job is a unit of periodic work.
type Job interface {
	Run(ctx context.Context) error
}

// Scheduler runs a job on a fixed interval.
type Scheduler struct {
	name     string
	job      Job
	interval time.Duration
	stop     chan struct{}
	once     sync.Once
}

func New(name string, job Job, interval time.Duration) *Scheduler {
	return &Scheduler{
		name:     name,
		job:      job,
		interval: interval,
		stop:     make(chan struct{}),
	}
}

// Start begins the periodic runs. Blocks until Stop is called or ctx ends.
func (s *Scheduler) Start(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	slog.Info("scheduler started", "job", s.name, "interval", s.interval)

	for {
		select {
		case <-ticker.C:
			slog.Debug("scheduler: triggering run", "job", s.name)
			if err := s.job.Run(ctx); err != nil {
				slog.Error("scheduler: run failed", "job", s.name, "error", err)
			}
		case <-s.stop:
			slog.Info("scheduler stopped", "job", s.name)
			return
		case <-ctx.Done():
			slog.Info("scheduler context cancelled", "job", s.name)
			return
		}
	}
}

// Stop signals the scheduler to stop. Safe to call more than once.
func (s *Scheduler) Stop() {
	s.once.Do(func() { close(s.stop) })
}
