package postgresql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/workloop/workloop-backend-go/internal/domain/task"
	"github.com/workloop/workloop-backend-go/internal/pkg/database"
)

type taskRepositoryImpl struct {
	db *database.DB
}

func NewTaskRepository(db *database.DB) task.Repository {
	return &taskRepositoryImpl{db: db}
}

const taskColumns = `id, company_id, title, description, deadline, status, assigned_to_id, assigned_by_id, created_at, completed_at`

func scanTask(row pgx.Row) (task.Task, error) {
	var t task.Task
	err := row.Scan(
		&t.ID,
		&t.CompanyID,
		&t.Title,
		&t.Description,
		&t.Deadline,
		&t.Status,
		&t.AssignedToID,
		&t.AssignedByID,
		&t.CreatedAt,
		&t.CompletedAt,
	)
	return t, err
}

// Create implements task.Repository.
func (r *taskRepositoryImpl) Create(ctx context.Context, newTask task.Task) (task.Task, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO tasks (company_id, title, description, deadline, status, assigned_to_id, assigned_by_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + taskColumns + `
	`

	created, err := scanTask(q.QueryRow(ctx, query,
		newTask.CompanyID,
		newTask.Title,
		newTask.Description,
		newTask.Deadline,
		newTask.Status,
		newTask.AssignedToID,
		newTask.AssignedByID,
	))
	if err != nil {
		return task.Task{}, err
	}

	return created, nil
}

// GetByID implements task.Repository.
func (r *taskRepositoryImpl) GetByID(ctx context.Context, companyID, id string) (task.Task, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + taskColumns + `
		FROM tasks
		WHERE id = $1 AND company_id = $2
	`

	found, err := scanTask(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return task.Task{}, task.ErrTaskNotFound
		}
		return task.Task{}, err
	}

	return found, nil
}

func (r *taskRepositoryImpl) list(ctx context.Context, query string, args ...interface{}) ([]task.Task, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := make([]task.Task, 0)
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// ListByAssignee implements task.Repository.
func (r *taskRepositoryImpl) ListByAssignee(ctx context.Context, companyID, employeeID string) ([]task.Task, error) {
	query := `
		SELECT ` + taskColumns + `
		FROM tasks
		WHERE company_id = $1 AND assigned_to_id = $2
		ORDER BY created_at DESC
	`
	return r.list(ctx, query, companyID, employeeID)
}

// ListByAssigner implements task.Repository.
func (r *taskRepositoryImpl) ListByAssigner(ctx context.Context, companyID, teamLeadID string) ([]task.Task, error) {
	query := `
		SELECT ` + taskColumns + `
		FROM tasks
		WHERE company_id = $1 AND assigned_by_id = $2
		ORDER BY created_at DESC
	`
	return r.list(ctx, query, companyID, teamLeadID)
}

// UpdateStatus implements task.Repository.
func (r *taskRepositoryImpl) UpdateStatus(ctx context.Context, companyID, id string, status task.Status, completedAt *time.Time) (task.Task, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE tasks
		SET status = $1, completed_at = $2
		WHERE id = $3 AND company_id = $4
		RETURNING ` + taskColumns + `
	`

	updated, err := scanTask(q.QueryRow(ctx, query, status, completedAt, id, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return task.Task{}, task.ErrTaskNotFound
		}
		return task.Task{}, err
	}

	return updated, nil
}

// DeleteByAssignee implements task.Repository.
func (r *taskRepositoryImpl) DeleteByAssignee(ctx context.Context, companyID, employeeID string) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx, `
		DELETE FROM tasks
		WHERE company_id = $1 AND assigned_to_id = $2
	`, companyID, employeeID)
	return err
}

// PurgeCompletedBefore implements task.Repository.
func (r *taskRepositoryImpl) PurgeCompletedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		DELETE FROM tasks
		WHERE status = $1 AND completed_at IS NOT NULL AND completed_at < $2
	`, task.StatusCompleted, cutoff)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
