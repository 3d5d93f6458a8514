package employee

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/workloop/workloop-backend-go/internal/domain/auth"
	"github.com/workloop/workloop-backend-go/internal/domain/chat"
	"github.com/workloop/workloop-backend-go/internal/domain/report"
	"github.com/workloop/workloop-backend-go/internal/domain/task"
	"github.com/workloop/workloop-backend-go/internal/domain/user"
	"github.com/workloop/workloop-backend-go/internal/pkg/database"
	"github.com/workloop/workloop-backend-go/internal/repository/postgresql"
	"golang.org/x/crypto/bcrypt"
)

type Service interface {
	ListTeam(ctx context.Context, lead auth.Principal) ([]user.Response, error)
	// DeleteEmployee removes an employee and everything they own:
	// reports, tasks, chat history, then the user row. Destructive and
	// non-recoverable; there is no soft delete.
	DeleteEmployee(ctx context.Context, lead auth.Principal, employeeID string) error
	GetProfile(ctx context.Context, p auth.Principal) (user.Response, error)
	UpdateProfile(ctx context.Context, p auth.Principal, req user.UpdateProfileRequest) (user.Response, error)
	ChangePassword(ctx context.Context, p auth.Principal, req user.ChangePasswordRequest) error
}

type EmployeeServiceImpl struct {
	db         *database.DB
	userRepo   user.Repository
	taskRepo   task.Repository
	reportRepo report.Repository
	chatRepo   chat.Repository
}

func NewEmployeeService(db *database.DB, userRepo user.Repository, taskRepo task.Repository, reportRepo report.Repository, chatRepo chat.Repository) Service {
	return &EmployeeServiceImpl{
		db:         db,
		userRepo:   userRepo,
		taskRepo:   taskRepo,
		reportRepo: reportRepo,
		chatRepo:   chatRepo,
	}
}

// ListTeam implements Service.
func (s *EmployeeServiceImpl) ListTeam(ctx context.Context, lead auth.Principal) ([]user.Response, error) {
	employees, err := s.userRepo.ListEmployeesByTeamLead(ctx, lead.CompanyID, lead.UserID)
	if err != nil {
		return nil, err
	}

	responses := make([]user.Response, len(employees))
	for i, e := range employees {
		responses[i] = user.ToResponse(e)
	}
	return responses, nil
}

// DeleteEmployee implements Service.
func (s *EmployeeServiceImpl) DeleteEmployee(ctx context.Context, lead auth.Principal, employeeID string) error {
	if employeeID == lead.UserID {
		return user.ErrCannotDeleteSelf
	}

	// Company-scoped lookup: a target in another tenant reads as absent.
	target, err := s.userRepo.GetByID(ctx, lead.CompanyID, employeeID)
	if err != nil {
		return err
	}
	if !target.ReportsTo(lead.UserID) {
		return user.ErrUserNotFound
	}

	return postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := postgresql.ContextWithTx(ctx, tx)

		if err := s.reportRepo.DeleteByAuthor(txCtx, lead.CompanyID, employeeID); err != nil {
			return err
		}
		if err := s.taskRepo.DeleteByAssignee(txCtx, lead.CompanyID, employeeID); err != nil {
			return err
		}
		if err := s.chatRepo.DeleteByParticipant(txCtx, lead.CompanyID, employeeID); err != nil {
			return err
		}
		return s.userRepo.Delete(txCtx, lead.CompanyID, employeeID)
	})
}

// GetProfile implements Service.
func (s *EmployeeServiceImpl) GetProfile(ctx context.Context, p auth.Principal) (user.Response, error) {
	u, err := s.userRepo.GetByID(ctx, p.CompanyID, p.UserID)
	if err != nil {
		return user.Response{}, err
	}
	return user.ToResponse(u), nil
}

// UpdateProfile implements Service.
func (s *EmployeeServiceImpl) UpdateProfile(ctx context.Context, p auth.Principal, req user.UpdateProfileRequest) (user.Response, error) {
	updated, err := s.userRepo.UpdateProfile(ctx, p.CompanyID, p.UserID, req.Name)
	if err != nil {
		return user.Response{}, err
	}
	return user.ToResponse(updated), nil
}

// ChangePassword implements Service.
func (s *EmployeeServiceImpl) ChangePassword(ctx context.Context, p auth.Principal, req user.ChangePasswordRequest) error {
	if len(req.NewPassword) < 8 {
		return user.ErrInvalidPasswordLength
	}

	current, err := s.userRepo.GetByID(ctx, p.CompanyID, p.UserID)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(current.PasswordHash), []byte(req.CurrentPassword)) != nil {
		return auth.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.userRepo.UpdatePassword(ctx, p.CompanyID, p.UserID, string(hash))
}
