package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/blog-service/internal/auth"
	"github.com/spec-kit/blog-service/internal/events"
	"github.com/spec-kit/blog-service/internal/repository"
	apperrors "github.com/spec-kit/blog-service/pkg/util"
)

// AuthService coordinates the login flow: credential lookup, password
// verification and token issuance. Read-only against the store.
type AuthService struct {
	users      repository.UserRepository
	tokenMgr   *auth.TokenManager
	dispatcher events.Dispatcher
}

// NewAuthService builds the service. dispatcher may be nil.
func NewAuthService(users repository.UserRepository, tokenMgr *auth.TokenManager, dispatcher events.Dispatcher) *AuthService {
	return &AuthService{users: users, tokenMgr: tokenMgr, dispatcher: dispatcher}
}

// Login authenticates a user by email and password and returns a signed
// bearer token with a one hour expiry. Unknown user and wrong password
// both map to 401; a missing signing secret maps to 500.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, time.Time, error) {
	// Accounts are stored with lowercase emails; match that here so a
	// user can log in with whatever casing they typed at registration.
	user, err := s.users.GetByEmail(ctx, strings.ToLower(email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", time.Time{}, apperrors.NewUnauthorized("Usuário não encontrado")
		}
		return "", time.Time{}, apperrors.MapError(err)
	}

	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return "", time.Time{}, apperrors.NewUnauthorized("Senha incorreta")
	}

	token, expiresAt, err := s.tokenMgr.GenerateToken(user.ID, user.Role)
	if err != nil {
		if errors.Is(err, auth.ErrNoSigningSecret) {
			return "", time.Time{}, apperrors.NewConfigurationError("JWT_SECRET não está configurado")
		}
		return "", time.Time{}, apperrors.MapError(err)
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventUserLoggedIn,
			Actor:     events.Actor{UserID: user.ID, Role: user.Role},
			Timestamp: time.Now(),
			Payload:   events.UserLoggedInPayload{Email: user.Email},
		})
	}

	return token, expiresAt, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}
