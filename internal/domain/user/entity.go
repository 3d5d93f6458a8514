package user

import "time"

type Role string

const (
	RoleEmployee Role = "EMPLOYEE"  // Works on assigned tasks, submits reports
	RoleTeamLead Role = "TEAM_LEAD" // Assigns tasks, reviews reports
	RoleAdmin    Role = "ADMIN"     // Company administration, no live channel
)

// ValidRole reports whether r is one of the known roles.
func ValidRole(r Role) bool {
	switch r {
	case RoleEmployee, RoleTeamLead, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID           string
	CompanyID    string
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	// TeamLeadID is set iff Role == RoleEmployee and references a
	// TEAM_LEAD user in the same company.
	TeamLeadID *string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// IsEmployee checks if user is a regular employee
func (u *User) IsEmployee() bool {
	return u.Role == RoleEmployee
}

// IsTeamLead checks if user can assign tasks and review reports
func (u *User) IsTeamLead() bool {
	return u.Role == RoleTeamLead
}

// IsAdmin checks if user is a company administrator
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// ReportsTo checks if the user is an employee managed by teamLeadID.
func (u *User) ReportsTo(teamLeadID string) bool {
	return u.IsEmployee() && u.TeamLeadID != nil && *u.TeamLeadID == teamLeadID
}
