package auth

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/spec-kit/blog-service/internal/domain"
)

// tokenTTL is the fixed expiry horizon for issued tokens.
const tokenTTL = time.Hour

// ErrNoSigningSecret indicates the manager was built without a signing key.
var ErrNoSigningSecret = errors.New("JWT_SECRET não está configurado")

// ErrTokenExpired indicates a structurally valid token past its expiry.
var ErrTokenExpired = errors.New("token expirado")

// ErrTokenMalformed covers bad structure, bad signature and bad claims.
var ErrTokenMalformed = errors.New("token inválido")

// TokenManager handles issuing and validating JWT tokens.
type TokenManager struct {
	secret []byte
}

// NewTokenManager builds a new manager. An empty secret yields a manager
// whose operations fail with ErrNoSigningSecret; callers that require
// token issuance must treat an empty secret as fatal at startup.
func NewTokenManager(secret string) *TokenManager {
	return &TokenManager{secret: []byte(secret)}
}

// Configured reports whether a signing secret is present.
func (tm *TokenManager) Configured() bool {
	return len(tm.secret) > 0
}

// Claims describes the JWT payload.
type Claims struct {
	UserID int64       `json:"id"`
	Role   domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// GenerateToken builds and signs a JWT embedding the subject id and role.
func (tm *TokenManager) GenerateToken(userID int64, role domain.Role) (string, time.Time, error) {
	if !tm.Configured() {
		return "", time.Time{}, ErrNoSigningSecret
	}

	now := time.Now()
	expiresAt := now.Add(tokenTTL)
	claims := &Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(tm.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// ParseToken validates signature and expiry and returns the claims.
// Expired tokens fail with ErrTokenExpired; anything else structurally or
// cryptographically wrong fails with ErrTokenMalformed. Claims from a
// token that did not verify are never returned.
func (tm *TokenManager) ParseToken(tokenStr string) (*Claims, error) {
	if !tm.Configured() {
		return nil, ErrNoSigningSecret
	}

	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return tm.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenMalformed
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrTokenMalformed
	}
	return claims, nil
}
