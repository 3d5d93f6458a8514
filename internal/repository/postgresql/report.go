package postgresql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/workloop/workloop-backend-go/internal/domain/report"
	"github.com/workloop/workloop-backend-go/internal/pkg/database"
)

type reportRepositoryImpl struct {
	db *database.DB
}

func NewReportRepository(db *database.DB) report.Repository {
	return &reportRepositoryImpl{db: db}
}

const reportColumns = `id, company_id, user_id, task_id, content, file_url, status, created_at, updated_at`

func scanReport(row pgx.Row) (report.Report, error) {
	var rep report.Report
	err := row.Scan(
		&rep.ID,
		&rep.CompanyID,
		&rep.UserID,
		&rep.TaskID,
		&rep.Content,
		&rep.FileURL,
		&rep.Status,
		&rep.CreatedAt,
		&rep.UpdatedAt,
	)
	return rep, err
}

// Create implements report.Repository.
func (r *reportRepositoryImpl) Create(ctx context.Context, newReport report.Report) (report.Report, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO reports (company_id, user_id, task_id, content, file_url, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + reportColumns + `
	`

	created, err := scanReport(q.QueryRow(ctx, query,
		newReport.CompanyID,
		newReport.UserID,
		newReport.TaskID,
		newReport.Content,
		newReport.FileURL,
		newReport.Status,
	))
	if err != nil {
		return report.Report{}, err
	}

	return created, nil
}

// GetByID implements report.Repository.
func (r *reportRepositoryImpl) GetByID(ctx context.Context, companyID, id string) (report.Report, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + reportColumns + `
		FROM reports
		WHERE id = $1 AND company_id = $2
	`

	found, err := scanReport(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return report.Report{}, report.ErrReportNotFound
		}
		return report.Report{}, err
	}

	return found, nil
}

func (r *reportRepositoryImpl) list(ctx context.Context, query string, args ...interface{}) ([]report.Report, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reports := make([]report.Report, 0)
	for rows.Next() {
		rep, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		reports = append(reports, rep)
	}
	return reports, rows.Err()
}

// ListByAuthor implements report.Repository.
func (r *reportRepositoryImpl) ListByAuthor(ctx context.Context, companyID, userID string) ([]report.Report, error) {
	query := `
		SELECT ` + reportColumns + `
		FROM reports
		WHERE company_id = $1 AND user_id = $2
		ORDER BY created_at DESC
	`
	return r.list(ctx, query, companyID, userID)
}

// ListByTeamLead implements report.Repository. Returns reports written
// by every employee managed by the team lead.
func (r *reportRepositoryImpl) ListByTeamLead(ctx context.Context, companyID, teamLeadID string) ([]report.Report, error) {
	query := `
		SELECT r.id, r.company_id, r.user_id, r.task_id, r.content, r.file_url, r.status, r.created_at, r.updated_at
		FROM reports r
		JOIN users u ON u.id = r.user_id AND u.company_id = r.company_id
		WHERE r.company_id = $1 AND u.team_lead_id = $2
		ORDER BY r.created_at DESC
	`
	return r.list(ctx, query, companyID, teamLeadID)
}

// Update implements report.Repository.
func (r *reportRepositoryImpl) Update(ctx context.Context, companyID, id, content string, fileURL *string) (report.Report, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE reports
		SET content = $1, file_url = $2, updated_at = NOW()
		WHERE id = $3 AND company_id = $4
		RETURNING ` + reportColumns + `
	`

	updated, err := scanReport(q.QueryRow(ctx, query, content, fileURL, id, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return report.Report{}, report.ErrReportNotFound
		}
		return report.Report{}, err
	}

	return updated, nil
}

// UpdateStatus implements report.Repository.
func (r *reportRepositoryImpl) UpdateStatus(ctx context.Context, companyID, id string, status report.Status) (report.Report, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE reports
		SET status = $1, updated_at = NOW()
		WHERE id = $2 AND company_id = $3
		RETURNING ` + reportColumns + `
	`

	updated, err := scanReport(q.QueryRow(ctx, query, status, id, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return report.Report{}, report.ErrReportNotFound
		}
		return report.Report{}, err
	}

	return updated, nil
}

// Delete implements report.Repository.
func (r *reportRepositoryImpl) Delete(ctx context.Context, companyID, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM reports WHERE id = $1 AND company_id = $2`, id, companyID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return report.ErrReportNotFound
	}
	return nil
}

// DeleteByAuthor implements report.Repository.
func (r *reportRepositoryImpl) DeleteByAuthor(ctx context.Context, companyID, userID string) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx, `
		DELETE FROM reports
		WHERE company_id = $1 AND user_id = $2
	`, companyID, userID)
	return err
}
