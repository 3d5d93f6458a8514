package auth

import (
	"github.com/workloop/workloop-backend-go/internal/domain/user"
)

// Principal is the authenticated identity attached to a request or a
// live connection. It is always derived from a verified token, never
// from client-supplied payload fields.
type Principal struct {
	UserID    string
	Role      user.Role
	CompanyID string
}

// PrincipalFromClaims rebuilds a principal from verified JWT claims.
func PrincipalFromClaims(claims map[string]interface{}) (Principal, error) {
	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return Principal{}, ErrInvalidToken
	}
	roleStr, ok := claims["role"].(string)
	if !ok || !user.ValidRole(user.Role(roleStr)) {
		return Principal{}, ErrInvalidToken
	}
	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return Principal{}, ErrInvalidToken
	}
	return Principal{
		UserID:    userID,
		Role:      user.Role(roleStr),
		CompanyID: companyID,
	}, nil
}
