package schedule

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// Scheduler drives registered tasks on fixed intervals.
// Task panics are recovered by the cron chain so a crashing cycle
// never takes the process down.
type Scheduler struct {
	cron *cron.Cron
	ctx  context.Context
}

func NewScheduler(ctx context.Context) *Scheduler {
	return &Scheduler{
		cron: cron.New(cron.WithChain(
			cron.Recover(cron.DefaultLogger),
		)),
		ctx: ctx,
	}
}

// Register schedules a task to run on the given interval.
func (s *Scheduler) Register(task Task, interval time.Duration) error {
	_, err := s.cron.AddFunc(fmt.Sprintf("@every %s", interval), func() {
		if err := task.Run(s.ctx); err != nil {
			slog.Error("scheduled task failed", "task", task.Name(), "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("register task %s: %w", task.Name(), err)
	}
	return nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	slog.Info("scheduler started")
}

// Stop stops scheduling and waits for in-flight tasks to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	slog.Info("scheduler stopped")
}
