package jobs

import (
	"context"
	"fmt"
	"time"

	"dream-analyzer/backend/internal/logging"
)

type PlanExpirer interface {
	ExpireLapsedPlans(ctx context.Context, now time.Time) (int64, error)
}

// PlanExpiryJob downgrades accounts whose paid or trial plan has run out
type PlanExpiryJob struct {
	expirer PlanExpirer
	now     func() time.Time
}

func NewPlanExpiryJob(expirer PlanExpirer) *PlanExpiryJob {
	return &PlanExpiryJob{
		expirer: expirer,
		now:     time.Now,
	}
}

func (j *PlanExpiryJob) Run(ctx context.Context) error {
	start := j.now()

	n, err := j.expirer.ExpireLapsedPlans(ctx, start)
	if err != nil {
		logging.Error("Plan expiry failed", "error", err)
		return fmt.Errorf("plan expiry: %w", err)
	}

	logging.Info("Plan expiry completed",
		"expired", n,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}
