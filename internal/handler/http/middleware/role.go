package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/workloop/workloop-backend-go/internal/domain/user"
	"github.com/workloop/workloop-backend-go/internal/handler/http/response"
)

// RequireTeamLead requires the TEAM_LEAD role
func RequireTeamLead(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.HandleError(w, user.ErrTeamLeadAccessRequired)
			return
		}

		roleStr, ok := claims["role"].(string)
		if !ok {
			response.HandleError(w, user.ErrTeamLeadAccessRequired)
			return
		}

		if user.Role(roleStr) != user.RoleTeamLead {
			response.HandleError(w, user.ErrTeamLeadAccessRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// RequireEmployee requires the EMPLOYEE role
func RequireEmployee(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.HandleError(w, user.ErrEmployeeAccessRequired)
			return
		}

		roleStr, ok := claims["role"].(string)
		if !ok {
			response.HandleError(w, user.ErrEmployeeAccessRequired)
			return
		}

		if user.Role(roleStr) != user.RoleEmployee {
			response.HandleError(w, user.ErrEmployeeAccessRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}
