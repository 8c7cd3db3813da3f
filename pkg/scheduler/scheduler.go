package scheduler

import (
	"context"
	"time"
)

// Scheduler runs a job on a fixed interval, once eagerly at start and
// then on every tick until the context is cancelled. It is a plain
// recurring timer, not a cron engine.
type Scheduler struct {
	job      func(ctx context.Context)
	interval time.Duration
}

func NewScheduler(job func(ctx context.Context), interval time.Duration) *Scheduler {
	return &Scheduler{
		job:      job,
		interval: interval,
	}
}

func (s *Scheduler) Start(ctx context.Context) {
	// First run happens immediately so a restart does not wait a full
	// interval before sweeping.
	s.job(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.job(ctx)
		case <-ctx.Done():
			return
		}
	}
}
