package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/workloop/workloop-backend-go/internal/domain/auth"
	"github.com/workloop/workloop-backend-go/internal/handler/http/response"
	"github.com/workloop/workloop-backend-go/internal/pkg/jwt"
)

// AuthRequired rejects requests whose verified token is missing, is not
// an access token, or was revoked at logout. It must run behind
// jwtauth.Verifier.
func AuthRequired(jwtService jwt.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, _, err := jwtauth.FromContext(r.Context())

			if err != nil {
				response.Unauthorized(w, err.Error())
				return
			}

			if token == nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			claims, err := token.AsMap(r.Context())
			if err != nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}
			tokenType, ok := claims["type"].(string)
			if tokenType != "access" || !ok {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			// Access tokens revoked at logout stay invalid until expiry.
			if raw := jwtauth.TokenFromHeader(r); raw != "" && jwtService.IsTokenRevoked(raw) {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			next.ServeHTTP(w, r)
		}
		return http.HandlerFunc(hfn)
	}
}

// Principal rebuilds the caller's identity from the verified claims. It
// must only run behind AuthRequired.
func Principal(r *http.Request) (auth.Principal, error) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return auth.Principal{}, auth.ErrInvalidToken
	}
	return auth.PrincipalFromClaims(claims)
}
