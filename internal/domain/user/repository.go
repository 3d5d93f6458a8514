package user

import (
	"context"
)

// Repository is the user store. Every method that reads or writes rows
// owned by a tenant takes the company ID explicitly; there is no
// unscoped variant.
type Repository interface {
	GetByEmail(ctx context.Context, email string) (User, error)
	// GetForAuth loads a user by ID without tenant scoping. Only the
	// auth flows use it, before a request principal exists.
	GetForAuth(ctx context.Context, id string) (User, error)
	GetByID(ctx context.Context, companyID, id string) (User, error)
	Create(ctx context.Context, newUser User) (User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ListEmployeesByTeamLead(ctx context.Context, companyID, teamLeadID string) ([]User, error)
	UpdateProfile(ctx context.Context, companyID, id, name string) (User, error)
	UpdatePassword(ctx context.Context, companyID, id, passwordHash string) error
	Delete(ctx context.Context, companyID, id string) error
}
