package auth

import (
	"context"
	"errors"

	"github.com/go-chi/jwtauth/v5"
	"github.com/jackc/pgx/v5"
	"github.com/workloop/workloop-backend-go/internal/domain/auth"
	"github.com/workloop/workloop-backend-go/internal/domain/company"
	"github.com/workloop/workloop-backend-go/internal/domain/user"
	"github.com/workloop/workloop-backend-go/internal/pkg/database"
	"github.com/workloop/workloop-backend-go/internal/pkg/jwt"
	"github.com/workloop/workloop-backend-go/internal/repository/postgresql"
	"golang.org/x/crypto/bcrypt"
)

type Service interface {
	Signup(ctx context.Context, req auth.SignupRequest) (auth.LoginResponse, error)
	Login(ctx context.Context, req auth.LoginRequest) (auth.LoginResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (auth.TokenResponse, error)
	Logout(ctx context.Context, refreshToken string) error
}

type AuthServiceImpl struct {
	db          *database.DB
	userRepo    user.Repository
	companyRepo company.Repository
	jwtService  jwt.Service
	jwtRepo     postgresql.JWTRepository
}

func NewAuthService(db *database.DB, userRepo user.Repository, companyRepo company.Repository, jwtService jwt.Service, jwtRepo postgresql.JWTRepository) Service {
	return &AuthServiceImpl{
		db:          db,
		userRepo:    userRepo,
		companyRepo: companyRepo,
		jwtService:  jwtService,
		jwtRepo:     jwtRepo,
	}
}

func (a *AuthServiceImpl) hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Signup creates the user and, when the named company does not exist
// yet, the company with it. Role and company are immutable afterwards.
func (a *AuthServiceImpl) Signup(ctx context.Context, req auth.SignupRequest) (auth.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.LoginResponse{}, err
	}

	exists, err := a.userRepo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return auth.LoginResponse{}, err
	}
	if exists {
		return auth.LoginResponse{}, user.ErrUserEmailExists
	}

	passwordHash, err := a.hashPassword(req.Password)
	if err != nil {
		return auth.LoginResponse{}, err
	}

	var created user.User
	err = postgresql.WithTransaction(ctx, a.db, func(tx pgx.Tx) error {
		txCtx := postgresql.ContextWithTx(ctx, tx)

		comp, err := a.companyRepo.GetByName(txCtx, req.CompanyName)
		if errors.Is(err, company.ErrCompanyNotFound) {
			comp, err = a.companyRepo.Create(txCtx, company.Company{Name: req.CompanyName})
		}
		if err != nil {
			return err
		}

		// Employees must reference a team lead in the same company.
		if req.Role == user.RoleEmployee {
			lead, err := a.userRepo.GetByID(txCtx, comp.ID, *req.TeamLeadID)
			if err != nil {
				return user.ErrTeamLeadRequired
			}
			if !lead.IsTeamLead() {
				return user.ErrTeamLeadRequired
			}
		}

		created, err = a.userRepo.Create(txCtx, user.User{
			CompanyID:    comp.ID,
			Name:         req.Name,
			Email:        req.Email,
			PasswordHash: passwordHash,
			Role:         req.Role,
			TeamLeadID:   req.TeamLeadID,
		})
		return err
	})
	if err != nil {
		return auth.LoginResponse{}, err
	}

	tokens, err := a.issueTokens(ctx, created)
	if err != nil {
		return auth.LoginResponse{}, err
	}

	return auth.LoginResponse{User: user.ToResponse(created), Tokens: tokens}, nil
}

// Login implements Service.
func (a *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.LoginResponse{}, err
	}

	userData, err := a.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.LoginResponse{}, auth.ErrInvalidCredentials
		}
		return auth.LoginResponse{}, err
	}

	if bcrypt.CompareHashAndPassword([]byte(userData.PasswordHash), []byte(req.Password)) != nil {
		return auth.LoginResponse{}, auth.ErrInvalidCredentials
	}

	tokens, err := a.issueTokens(ctx, userData)
	if err != nil {
		return auth.LoginResponse{}, err
	}

	return auth.LoginResponse{User: user.ToResponse(userData), Tokens: tokens}, nil
}

func (a *AuthServiceImpl) issueTokens(ctx context.Context, u user.User) (auth.TokenResponse, error) {
	principal := auth.Principal{UserID: u.ID, Role: u.Role, CompanyID: u.CompanyID}

	var tokens auth.TokenResponse
	var err error
	tokens.AccessToken, tokens.AccessTokenExpiresIn, err = a.jwtService.GenerateAccessToken(principal, u.Email)
	if err != nil {
		return auth.TokenResponse{}, err
	}

	err = postgresql.WithTransaction(ctx, a.db, func(tx pgx.Tx) error {
		txCtx := postgresql.ContextWithTx(ctx, tx)

		tokens.RefreshToken, tokens.RefreshTokenExpiresIn, err = a.jwtService.GenerateRefreshToken(u.ID)
		if err != nil {
			return err
		}
		return a.jwtRepo.CreateRefreshToken(txCtx, u.ID, tokens.RefreshToken, tokens.RefreshTokenExpiresIn)
	})
	if err != nil {
		return auth.TokenResponse{}, err
	}

	return tokens, nil
}

// RefreshToken implements Service. It rotates the refresh token: the
// presented token is revoked and a fresh pair is issued.
func (a *AuthServiceImpl) RefreshToken(ctx context.Context, refreshToken string) (auth.TokenResponse, error) {
	token, err := jwtauth.VerifyToken(a.jwtService.JWTAuth(), refreshToken)
	if err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidToken
	}
	if tokenType, ok := token.Get("type"); !ok || tokenType != "refresh" {
		return auth.TokenResponse{}, auth.ErrInvalidToken
	}

	userID, revoked, err := a.jwtRepo.IsRefreshTokenRevoked(ctx, refreshToken)
	if err != nil {
		return auth.TokenResponse{}, err
	}
	if revoked {
		return auth.TokenResponse{}, auth.ErrRefreshTokenRevoked
	}

	userData, err := a.userRepo.GetForAuth(ctx, userID)
	if err != nil {
		return auth.TokenResponse{}, err
	}

	if err := a.jwtRepo.RevokeRefreshToken(ctx, refreshToken); err != nil {
		return auth.TokenResponse{}, err
	}

	return a.issueTokens(ctx, userData)
}

// Logout implements Service.
func (a *AuthServiceImpl) Logout(ctx context.Context, refreshToken string) error {
	_, revoked, err := a.jwtRepo.IsRefreshTokenRevoked(ctx, refreshToken)
	if err != nil {
		return err
	}
	if revoked {
		return auth.ErrRefreshTokenRevoked
	}
	return a.jwtRepo.RevokeRefreshToken(ctx, refreshToken)
}
