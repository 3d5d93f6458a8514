package task

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, newTask Task) (Task, error)
	GetByID(ctx context.Context, companyID, id string) (Task, error)
	ListByAssignee(ctx context.Context, companyID, employeeID string) ([]Task, error)
	ListByAssigner(ctx context.Context, companyID, teamLeadID string) ([]Task, error)
	UpdateStatus(ctx context.Context, companyID, id string, status Status, completedAt *time.Time) (Task, error)
	DeleteByAssignee(ctx context.Context, companyID, employeeID string) error
	// PurgeCompletedBefore removes tasks that finished before the cutoff,
	// across all tenants. Used only by the retention job.
	PurgeCompletedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
