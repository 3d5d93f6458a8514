package postgresql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/workloop/workloop-backend-go/internal/domain/user"
	"github.com/workloop/workloop-backend-go/internal/pkg/database"
)

type userRepositoryImpl struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) user.Repository {
	return &userRepositoryImpl{db: db}
}

const userColumns = `id, company_id, name, email, password_hash, role, team_lead_id, created_at, updated_at`

func scanUser(row pgx.Row) (user.User, error) {
	var u user.User
	err := row.Scan(
		&u.ID,
		&u.CompanyID,
		&u.Name,
		&u.Email,
		&u.PasswordHash,
		&u.Role,
		&u.TeamLeadID,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	return u, err
}

// GetByEmail implements user.Repository. Email lookup is the one
// unscoped read: it happens before authentication, when no tenant is
// known yet.
func (r *userRepositoryImpl) GetByEmail(ctx context.Context, email string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE email = $1
	`

	found, err := scanUser(q.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, err
	}

	return found, nil
}

// GetForAuth implements user.Repository.
func (r *userRepositoryImpl) GetForAuth(ctx context.Context, id string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE id = $1
	`

	found, err := scanUser(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, err
	}

	return found, nil
}

// GetByID implements user.Repository.
func (r *userRepositoryImpl) GetByID(ctx context.Context, companyID, id string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE id = $1 AND company_id = $2
	`

	found, err := scanUser(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, err
	}

	return found, nil
}

// Create implements user.Repository.
func (r *userRepositoryImpl) Create(ctx context.Context, newUser user.User) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO users (company_id, name, email, password_hash, role, team_lead_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + userColumns + `
	`

	created, err := scanUser(q.QueryRow(ctx, query,
		newUser.CompanyID,
		newUser.Name,
		newUser.Email,
		newUser.PasswordHash,
		newUser.Role,
		newUser.TeamLeadID,
	))
	if err != nil {
		// Two concurrent signups can both pass the service's existence
		// check; the unique index on email is the arbiter.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return user.User{}, user.ErrUserEmailExists
		}
		return user.User{}, err
	}

	return created, nil
}

// ExistsByEmail implements user.Repository.
func (r *userRepositoryImpl) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	err := q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, email).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

// ListEmployeesByTeamLead implements user.Repository.
func (r *userRepositoryImpl) ListEmployeesByTeamLead(ctx context.Context, companyID, teamLeadID string) ([]user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE company_id = $1 AND team_lead_id = $2 AND role = $3
		ORDER BY name ASC
	`

	rows, err := q.Query(ctx, query, companyID, teamLeadID, user.RoleEmployee)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	employees := make([]user.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, u)
	}
	return employees, rows.Err()
}

// UpdateProfile implements user.Repository.
func (r *userRepositoryImpl) UpdateProfile(ctx context.Context, companyID, id, name string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE users
		SET name = $1, updated_at = NOW()
		WHERE id = $2 AND company_id = $3
		RETURNING ` + userColumns + `
	`

	updated, err := scanUser(q.QueryRow(ctx, query, name, id, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, err
	}

	return updated, nil
}

// UpdatePassword implements user.Repository.
func (r *userRepositoryImpl) UpdatePassword(ctx context.Context, companyID, id, passwordHash string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE users
		SET password_hash = $1, updated_at = NOW()
		WHERE id = $2 AND company_id = $3
	`, passwordHash, id, companyID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}
	return nil
}

// Delete implements user.Repository.
func (r *userRepositoryImpl) Delete(ctx context.Context, companyID, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM users WHERE id = $1 AND company_id = $2`, id, companyID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}
	return nil
}
