package jobs

import (
	"context"
	"fmt"
	"time"

	"dream-analyzer/backend/internal/logging"

	"github.com/robfig/cron/v3"
)

const jobTimeout = 5 * time.Minute

// Scheduler runs the background jobs on cron schedules
type Scheduler struct {
	cron *cron.Cron
	ctx  context.Context
}

// InitializeJobs registers every job; call Start to begin running them
func InitializeJobs(ctx context.Context, planExpirySchedule string, expirer PlanExpirer) (*Scheduler, error) {
	c := cron.New(cron.WithChain(
		cron.Recover(cronLogger{}),
		cron.SkipIfStillRunning(cronLogger{}),
	))
	s := &Scheduler{cron: c, ctx: ctx}

	planExpiry := NewPlanExpiryJob(expirer)
	if _, err := c.AddFunc(planExpirySchedule, s.wrap("plan_expiry", planExpiry.Run)); err != nil {
		return nil, fmt.Errorf("invalid plan expiry schedule %q: %w", planExpirySchedule, err)
	}

	return s, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	logging.Info("Job scheduler started", "jobs", len(s.cron.Entries()))
}

// Stop prevents new runs and returns a context that is done once running jobs finish
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}

func (s *Scheduler) wrap(name string, run func(ctx context.Context) error) func() {
	return func() {
		ctx, cancel := context.WithTimeout(s.ctx, jobTimeout)
		defer cancel()
		if err := run(ctx); err != nil {
			logging.Warn("Scheduled job failed", "job", name, "error", err)
		}
	}
}

// cronLogger routes cron's own messages into zap
type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...interface{}) {
	logging.Debug("cron: "+msg, keysAndValues...)
}

func (cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	logging.Error("cron: "+msg, append(keysAndValues, "error", err)...)
}
