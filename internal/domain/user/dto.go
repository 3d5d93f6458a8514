package user

import "time"

// Response is the public shape of a user. Password hash never leaves
// the service layer.
type Response struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Role       Role      `json:"role"`
	CompanyID  string    `json:"company_id"`
	TeamLeadID *string   `json:"team_lead_id,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

func ToResponse(u User) Response {
	return Response{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		Role:       u.Role,
		CompanyID:  u.CompanyID,
		TeamLeadID: u.TeamLeadID,
		CreatedAt:  u.CreatedAt,
	}
}

type UpdateProfileRequest struct {
	Name string `json:"name"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}
