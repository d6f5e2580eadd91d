package jobs

import (
	"context"
	"errors"
	"testing"
	"time"
)

type mockPlanExpirer struct {
	expireFunc func(ctx context.Context, now time.Time) (int64, error)
}

func (m *mockPlanExpirer) ExpireLapsedPlans(ctx context.Context, now time.Time) (int64, error) {
	return m.expireFunc(ctx, now)
}

func TestPlanExpiryJob_Run(t *testing.T) {
	fixed := time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)
	var gotNow time.Time
	expirer := &mockPlanExpirer{
		expireFunc: func(ctx context.Context, now time.Time) (int64, error) {
			gotNow = now
			return 3, nil
		},
	}

	job := NewPlanExpiryJob(expirer)
	job.now = func() time.Time { return fixed }

	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !gotNow.Equal(fixed) {
		t.Errorf("Expected cutoff %v, got %v", fixed, gotNow)
	}
}

func TestPlanExpiryJob_RunError(t *testing.T) {
	boom := errors.New("db down")
	job := NewPlanExpiryJob(&mockPlanExpirer{
		expireFunc: func(ctx context.Context, now time.Time) (int64, error) {
			return 0, boom
		},
	})

	if err := job.Run(context.Background()); !errors.Is(err, boom) {
		t.Errorf("Expected wrapped error, got %v", err)
	}
}

func TestInitializeJobs(t *testing.T) {
	expirer := &mockPlanExpirer{
		expireFunc: func(ctx context.Context, now time.Time) (int64, error) { return 0, nil },
	}

	s, err := InitializeJobs(context.Background(), "@every 1h", expirer)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if n := len(s.cron.Entries()); n != 1 {
		t.Errorf("Expected 1 scheduled job, got %d", n)
	}

	s.Start()
	<-s.Stop().Done()
}

func TestInitializeJobs_InvalidSchedule(t *testing.T) {
	if _, err := InitializeJobs(context.Background(), "every hour", &mockPlanExpirer{}); err == nil {
		t.Error("Expected an error for an invalid schedule")
	}
}

func TestSchedulerWrapRunsJob(t *testing.T) {
	s, err := InitializeJobs(context.Background(), "@every 1h", &mockPlanExpirer{
		expireFunc: func(ctx context.Context, now time.Time) (int64, error) { return 0, nil },
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	ran := false
	s.wrap("probe", func(ctx context.Context) error {
		if _, ok := ctx.Deadline(); !ok {
			t.Error("Expected job context to carry a deadline")
		}
		ran = true
		return errors.New("logged, not returned")
	})()

	if !ran {
		t.Error("Expected wrapped job to run")
	}
}
