package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/workloop/workloop-backend-go/internal/domain/task"
)

// RetentionJobs garbage-collects tasks that have stayed COMPLETED past
// the retention window. The window is an operational contract, not part
// of the task state machine; the workflow never depends on it.
type RetentionJobs struct {
	taskRepo         task.Repository
	completedTaskTTL time.Duration
}

func NewRetentionJobs(taskRepo task.Repository, completedTaskTTL time.Duration) *RetentionJobs {
	return &RetentionJobs{
		taskRepo:         taskRepo,
		completedTaskTTL: completedTaskTTL,
	}
}

func (j *RetentionJobs) RegisterJobs(scheduler *Scheduler, sweepInterval time.Duration) {
	scheduler.AddJob("purge_completed_tasks", sweepInterval, j.PurgeCompletedTasks)
}

func (j *RetentionJobs) PurgeCompletedTasks(ctx context.Context) error {
	cutoff := time.Now().Add(-j.completedTaskTTL)

	purged, err := j.taskRepo.PurgeCompletedBefore(ctx, cutoff)
	if err != nil {
		return err
	}

	if purged > 0 {
		slog.Info("Cron: purged completed tasks", "count", purged, "cutoff", cutoff)
	}
	return nil
}
