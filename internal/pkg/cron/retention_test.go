package cron

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/workloop/workloop-backend-go/internal/domain/task"
)

// purgeOnlyTaskRepo implements just enough of task.Repository for the
// retention job.
type purgeOnlyTaskRepo struct {
	tasks map[string]task.Task
}

func (f *purgeOnlyTaskRepo) Create(ctx context.Context, newTask task.Task) (task.Task, error) {
	f.tasks[newTask.ID] = newTask
	return newTask, nil
}

func (f *purgeOnlyTaskRepo) GetByID(ctx context.Context, companyID, id string) (task.Task, error) {
	t, ok := f.tasks[id]
	if !ok {
		return task.Task{}, task.ErrTaskNotFound
	}
	return t, nil
}

func (f *purgeOnlyTaskRepo) ListByAssignee(ctx context.Context, companyID, employeeID string) ([]task.Task, error) {
	return nil, nil
}

func (f *purgeOnlyTaskRepo) ListByAssigner(ctx context.Context, companyID, teamLeadID string) ([]task.Task, error) {
	return nil, nil
}

func (f *purgeOnlyTaskRepo) UpdateStatus(ctx context.Context, companyID, id string, status task.Status, completedAt *time.Time) (task.Task, error) {
	return task.Task{}, task.ErrTaskNotFound
}

func (f *purgeOnlyTaskRepo) DeleteByAssignee(ctx context.Context, companyID, employeeID string) error {
	return nil
}

func (f *purgeOnlyTaskRepo) PurgeCompletedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	var purged int64
	for id, t := range f.tasks {
		if t.Status == task.StatusCompleted && t.CompletedAt != nil && t.CompletedAt.Before(cutoff) {
			delete(f.tasks, id)
			purged++
		}
	}
	return purged, nil
}

func TestPurgeCompletedTasks_RespectsTTL(t *testing.T) {
	ctx := context.Background()
	old := time.Now().Add(-48 * time.Hour)
	recent := time.Now().Add(-time.Hour)

	repo := &purgeOnlyTaskRepo{tasks: map[string]task.Task{
		"stale":   {ID: "stale", Status: task.StatusCompleted, CompletedAt: &old},
		"fresh":   {ID: "fresh", Status: task.StatusCompleted, CompletedAt: &recent},
		"open":    {ID: "open", Status: task.StatusInProgress},
		"pending": {ID: "pending", Status: task.StatusPending},
	}}

	jobs := NewRetentionJobs(repo, 24*time.Hour)
	require.NoError(t, jobs.PurgeCompletedTasks(ctx))

	// Only the COMPLETED task past its TTL is gone.
	_, err := repo.GetByID(ctx, "", "stale")
	assert.ErrorIs(t, err, task.ErrTaskNotFound)
	for _, id := range []string{"fresh", "open", "pending"} {
		_, err := repo.GetByID(ctx, "", id)
		assert.NoError(t, err)
	}
}

func TestScheduler_RunOnceExecutesRegisteredJobs(t *testing.T) {
	ctx := context.Background()
	scheduler := NewScheduler()

	ran := 0
	scheduler.AddJob("counter", time.Hour, func(ctx context.Context) error {
		ran++
		return nil
	})

	scheduler.RunOnce(ctx)
	assert.Equal(t, 1, ran)
}
