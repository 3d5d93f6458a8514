package jwt

import (
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/workloop/workloop-backend-go/internal/domain/auth"
)

type Service interface {
	GenerateAccessToken(p auth.Principal, email string) (token string, expiresAt int64, err error)
	GenerateRefreshToken(userID string) (token string, expiresAt int64, err error)
	// GenerateWSToken issues a short-lived ticket used to authenticate a
	// WebSocket upgrade; the upgrade endpoint cannot carry an
	// Authorization header from a browser client.
	GenerateWSToken(p auth.Principal) (token string, expiresIn int, err error)
	ValidateWSToken(tokenString string) (auth.Principal, error)
	JWTAuth() *jwtauth.JWTAuth
	RefreshTokenCookie(token string, expiresAt int64) *http.Cookie
	// RevokeToken blocklists an access token until its natural expiry.
	// Refresh tokens are revoked in the database instead; this covers
	// the short-lived access token a client presents at logout.
	RevokeToken(token string)
	IsTokenRevoked(token string) bool
}

type JWTService struct {
	secretKey                  string
	accessTokenExpirationTime  string
	refreshTokenExpirationTime string
	tokenAuth                  *jwtauth.JWTAuth
	revokedTokens              map[string]int64
	mu                         sync.RWMutex
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func NewJWTService(secretKey string, accessTokenExpirationTime string, refreshTokenExpirationTime string) Service {
	return &JWTService{
		secretKey:                  secretKey,
		accessTokenExpirationTime:  accessTokenExpirationTime,
		refreshTokenExpirationTime: refreshTokenExpirationTime,
		tokenAuth:                  jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
		revokedTokens:              make(map[string]int64),
	}
}

func (j *JWTService) GenerateAccessToken(p auth.Principal, email string) (token string, expiresAt int64, err error) {
	expDuration, err := time.ParseDuration(j.accessTokenExpirationTime)
	if err != nil {
		return "", 0, err
	}
	expiresAt = time.Now().Add(expDuration).Unix()

	claims := map[string]interface{}{
		"user_id":    p.UserID,
		"email":      email,
		"company_id": p.CompanyID,
		"role":       string(p.Role),
		"type":       "access",
		"exp":        expiresAt,
	}

	_, tokenString, err := j.tokenAuth.Encode(claims)
	return tokenString, expiresAt, err
}

func (j *JWTService) GenerateRefreshToken(userID string) (token string, expiresAt int64, err error) {
	expDuration, err := time.ParseDuration(j.refreshTokenExpirationTime)
	if err != nil {
		return "", 0, err
	}
	expiresAt = time.Now().Add(expDuration).Unix()
	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		"user_id": userID,
		"exp":     expiresAt,
		"type":    "refresh",
	})
	return tokenString, expiresAt, err
}

func (j *JWTService) RefreshTokenCookie(token string, expiresAt int64) *http.Cookie {
	return &http.Cookie{
		Name:     "refresh_token",
		Value:    token,
		Path:     "/api/v1/auth",
		Expires:  time.Unix(expiresAt, 0),
		HttpOnly: true,
		Secure:   false,
		SameSite: http.SameSiteStrictMode,
	}
}

func (j *JWTService) RevokeToken(token string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.revokedTokens[token] = time.Now().Unix()
}

func (j *JWTService) IsTokenRevoked(token string) bool {
	j.mu.RLock()
	defer j.mu.RUnlock()
	_, revoked := j.revokedTokens[token]
	return revoked
}

// GenerateWSToken generates a short-lived token for WebSocket upgrades
func (j *JWTService) GenerateWSToken(p auth.Principal) (token string, expiresIn int, err error) {
	// Tickets are short-lived (5 minutes)
	expiresIn = 300
	expiresAt := time.Now().Add(5 * time.Minute).Unix()

	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		"user_id":    p.UserID,
		"company_id": p.CompanyID,
		"role":       string(p.Role),
		"type":       "ws",
		"exp":        expiresAt,
	})
	if err != nil {
		return "", 0, err
	}

	return tokenString, expiresIn, nil
}

// ValidateWSToken validates a WebSocket ticket and returns the
// principal it was issued for. The channel a connection may join is
// derived from this principal, never from a client frame.
func (j *JWTService) ValidateWSToken(tokenString string) (auth.Principal, error) {
	token, err := j.tokenAuth.Decode(tokenString)
	if err != nil {
		return auth.Principal{}, err
	}

	tokenType, ok := token.Get("type")
	if !ok || tokenType != "ws" {
		return auth.Principal{}, jwt.ErrInvalidJWT()
	}

	claims := map[string]interface{}{}
	for _, key := range []string{"user_id", "company_id", "role"} {
		val, ok := token.Get(key)
		if !ok {
			return auth.Principal{}, jwt.ErrInvalidJWT()
		}
		claims[key] = val
	}

	p, err := auth.PrincipalFromClaims(claims)
	if err != nil {
		return auth.Principal{}, jwt.ErrInvalidJWT()
	}
	return p, nil
}
