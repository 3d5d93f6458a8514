package auth

import (
	"github.com/workloop/workloop-backend-go/internal/domain/user"
	"github.com/workloop/workloop-backend-go/internal/pkg/validator"
)

type SignupRequest struct {
	CompanyName string    `json:"company_name"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Password    string    `json:"password"`
	Role        user.Role `json:"role"`
	// TeamLeadID is required when Role is EMPLOYEE and must name a
	// TEAM_LEAD in the same company.
	TeamLeadID *string `json:"team_lead_id,omitempty"`
}

func (r *SignupRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.CompanyName) {
		errs = append(errs, validator.ValidationError{
			Field:   "company_name",
			Message: "company_name is required",
		})
	}
	if len(r.CompanyName) > 255 {
		errs = append(errs, validator.ValidationError{
			Field:   "company_name",
			Message: "company_name must not exceed 255 characters",
		})
	}

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}

	if validator.IsEmpty(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email is required",
		})
	} else if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email must be a valid email address",
		})
	}

	if len(r.Password) < 8 {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password must be at least 8 characters long",
		})
	}

	if !user.ValidRole(r.Role) {
		errs = append(errs, validator.ValidationError{
			Field:   "role",
			Message: "role must be one of EMPLOYEE, TEAM_LEAD, ADMIN",
		})
	}
	if r.Role == user.RoleEmployee && (r.TeamLeadID == nil || validator.IsEmpty(*r.TeamLeadID)) {
		errs = append(errs, validator.ValidationError{
			Field:   "team_lead_id",
			Message: "team_lead_id is required for employees",
		})
	}
	if r.Role != user.RoleEmployee && r.TeamLeadID != nil {
		errs = append(errs, validator.ValidationError{
			Field:   "team_lead_id",
			Message: "team_lead_id is only valid for employees",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email is required",
		})
	}
	if validator.IsEmpty(r.Password) {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type TokenResponse struct {
	AccessToken           string `json:"access_token"`
	AccessTokenExpiresIn  int64  `json:"access_token_expires_in"`
	RefreshToken          string `json:"refresh_token"`
	RefreshTokenExpiresIn int64  `json:"refresh_token_expires_in"`
}

type LoginResponse struct {
	User   user.Response `json:"user"`
	Tokens TokenResponse `json:"tokens"`
}

type WSTokenResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expires_in"`
}
