package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/workloop/workloop-backend-go/internal/domain/auth"
	"github.com/workloop/workloop-backend-go/internal/domain/user"
)

const testSecret = "test-secret-key-for-jwt"

func TestWSTokenRoundTrip(t *testing.T) {
	svc := NewJWTService(testSecret, "1h", "24h")

	p := auth.Principal{
		UserID:    "user-1",
		Role:      user.RoleEmployee,
		CompanyID: "company-1",
	}

	token, expiresIn, err := svc.GenerateWSToken(p)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, 300, expiresIn)

	got, err := svc.ValidateWSToken(token)
	require.NoError(t, err)
	assert.Equal(t, p, got)
}

func TestValidateWSToken_RejectsAccessToken(t *testing.T) {
	svc := NewJWTService(testSecret, "1h", "24h")

	p := auth.Principal{
		UserID:    "user-1",
		Role:      user.RoleTeamLead,
		CompanyID: "company-1",
	}
	token, _, err := svc.GenerateAccessToken(p, "lead@example.com")
	require.NoError(t, err)

	_, err = svc.ValidateWSToken(token)
	assert.Error(t, err)
}

func TestValidateWSToken_RejectsGarbage(t *testing.T) {
	svc := NewJWTService(testSecret, "1h", "24h")

	_, err := svc.ValidateWSToken("not-a-token")
	assert.Error(t, err)
}

func TestRevokeToken(t *testing.T) {
	svc := NewJWTService(testSecret, "1h", "24h")

	token, _, err := svc.GenerateRefreshToken("user-1")
	require.NoError(t, err)

	assert.False(t, svc.IsTokenRevoked(token))
	svc.RevokeToken(token)
	assert.True(t, svc.IsTokenRevoked(token))
}
