package postgresql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/workloop/workloop-backend-go/internal/domain/company"
	"github.com/workloop/workloop-backend-go/internal/pkg/database"
)

type companyRepositoryImpl struct {
	db *database.DB
}

func NewCompanyRepository(db *database.DB) company.Repository {
	return &companyRepositoryImpl{db: db}
}

// GetByID implements company.Repository.
func (r *companyRepositoryImpl) GetByID(ctx context.Context, id string) (company.Company, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, created_at, updated_at
		FROM companies
		WHERE id = $1
	`

	var found company.Company
	err := q.QueryRow(ctx, query, id).Scan(&found.ID, &found.Name, &found.CreatedAt, &found.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return company.Company{}, company.ErrCompanyNotFound
		}
		return company.Company{}, err
	}

	return found, nil
}

// GetByName implements company.Repository.
func (r *companyRepositoryImpl) GetByName(ctx context.Context, name string) (company.Company, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, created_at, updated_at
		FROM companies
		WHERE name = $1
	`

	var found company.Company
	err := q.QueryRow(ctx, query, name).Scan(&found.ID, &found.Name, &found.CreatedAt, &found.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return company.Company{}, company.ErrCompanyNotFound
		}
		return company.Company{}, err
	}

	return found, nil
}

// Create implements company.Repository.
func (r *companyRepositoryImpl) Create(ctx context.Context, newCompany company.Company) (company.Company, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO companies (name)
		VALUES ($1)
		RETURNING id, name, created_at, updated_at
	`

	var created company.Company
	err := q.QueryRow(ctx, query, newCompany.Name).Scan(&created.ID, &created.Name, &created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		return company.Company{}, err
	}

	return created, nil
}
