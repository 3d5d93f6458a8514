package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/workloop/workloop-backend-go/internal/domain/auth"
	"github.com/workloop/workloop-backend-go/internal/domain/user"
	"github.com/workloop/workloop-backend-go/internal/pkg/jwt"
)

func protected(svc jwt.Service) http.Handler {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	return jwtauth.Verifier(svc.JWTAuth())(AuthRequired(svc)(next))
}

func get(handler http.Handler, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestAuthRequired_AcceptsAccessToken(t *testing.T) {
	svc := jwt.NewJWTService("test-secret", "1h", "24h")
	p := auth.Principal{UserID: "u-1", Role: user.RoleEmployee, CompanyID: "c-1"}
	token, _, err := svc.GenerateAccessToken(p, "u@example.com")
	require.NoError(t, err)

	rec := get(protected(svc), token)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestAuthRequired_RejectsRevokedToken(t *testing.T) {
	svc := jwt.NewJWTService("test-secret", "1h", "24h")
	p := auth.Principal{UserID: "u-1", Role: user.RoleEmployee, CompanyID: "c-1"}
	token, _, err := svc.GenerateAccessToken(p, "u@example.com")
	require.NoError(t, err)

	handler := protected(svc)
	require.Equal(t, http.StatusNoContent, get(handler, token).Code)

	// Logout revokes the access token; the same token stops working.
	svc.RevokeToken(token)
	assert.Equal(t, http.StatusUnauthorized, get(handler, token).Code)
}

func TestAuthRequired_RejectsRefreshToken(t *testing.T) {
	svc := jwt.NewJWTService("test-secret", "1h", "24h")
	token, _, err := svc.GenerateRefreshToken("u-1")
	require.NoError(t, err)

	rec := get(protected(svc), token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthRequired_RejectsMissingToken(t *testing.T) {
	svc := jwt.NewJWTService("test-secret", "1h", "24h")
	rec := get(protected(svc), "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
