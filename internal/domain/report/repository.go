package report

import "context"

type Repository interface {
	Create(ctx context.Context, newReport Report) (Report, error)
	GetByID(ctx context.Context, companyID, id string) (Report, error)
	ListByAuthor(ctx context.Context, companyID, userID string) ([]Report, error)
	ListByTeamLead(ctx context.Context, companyID, teamLeadID string) ([]Report, error)
	Update(ctx context.Context, companyID, id, content string, fileURL *string) (Report, error)
	UpdateStatus(ctx context.Context, companyID, id string, status Status) (Report, error)
	Delete(ctx context.Context, companyID, id string) error
	DeleteByAuthor(ctx context.Context, companyID, userID string) error
}
