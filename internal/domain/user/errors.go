package user

import "errors"

var (
	ErrUserNotFound           = errors.New("user not found")
	ErrUserEmailExists        = errors.New("email already registered")
	ErrInvalidEmailFormat     = errors.New("invalid email format")
	ErrInvalidPasswordLength  = errors.New("password must be at least 8 characters")
	ErrInvalidRole            = errors.New("invalid role")
	ErrTeamLeadRequired       = errors.New("employee must reference a team lead in the same company")
	ErrTeamLeadAccessRequired = errors.New("team lead access required")
	ErrEmployeeAccessRequired = errors.New("employee access required")
	ErrAdminAccessRequired    = errors.New("admin access required")
	ErrCannotDeleteSelf       = errors.New("cannot delete your own account")
)
