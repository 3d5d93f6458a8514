package company

import "context"

type Repository interface {
	GetByID(ctx context.Context, id string) (Company, error)
	GetByName(ctx context.Context, name string) (Company, error)
	Create(ctx context.Context, newCompany Company) (Company, error)
}
