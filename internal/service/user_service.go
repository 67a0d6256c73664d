package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/blog-service/internal/auth"
	"github.com/spec-kit/blog-service/internal/domain"
	"github.com/spec-kit/blog-service/internal/repository"
	apperrors "github.com/spec-kit/blog-service/pkg/util"
)

// UserService orchestrates user account management.
type UserService struct {
	users repository.UserRepository
}

// NewUserService builds the service.
func NewUserService(users repository.UserRepository) *UserService {
	return &UserService{users: users}
}

// UserCreateInput carries the fields for account creation.
type UserCreateInput struct {
	Name     string
	Email    string
	Password string
	Role     domain.Role
}

// UserUpdateInput carries optional fields for account updates.
type UserUpdateInput struct {
	Name     *string
	Email    *string
	Password *string
	Role     *domain.Role
}

// CreateUser registers a new account. The password is hashed before it
// touches the store; the plaintext is never persisted.
func (s *UserService) CreateUser(ctx context.Context, input UserCreateInput) (*domain.User, error) {
	if input.Name == "" || input.Email == "" || input.Password == "" || input.Role == "" {
		return nil, apperrors.NewValidationError("Campos obrigatórios: name, email, password e role")
	}
	if !input.Role.Valid() {
		return nil, apperrors.NewValidationError("Role inválida: use professor ou aluno")
	}
	if len(input.Password) > auth.MaxPasswordBytes {
		return nil, apperrors.NewValidationError("Senha deve ter no máximo 72 caracteres")
	}

	// Emails are case-insensitive: the lowercase form is stored and
	// every lookup uses it, so the duplicate check cannot be bypassed
	// by a case variant.
	email := strings.ToLower(input.Email)
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, apperrors.NewConflict("Email já cadastrado")
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.MapError(err)
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	user := &domain.User{
		Name:         input.Name,
		Email:        email,
		PasswordHash: hash,
		Role:         input.Role,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, apperrors.MapError(err)
	}
	return user, nil
}

// ListUsers returns all accounts, newest first.
func (s *UserService) ListUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return users, nil
}

// UpdateUser applies the provided fields to an existing account.
func (s *UserService) UpdateUser(ctx context.Context, id int64, input UserUpdateInput) error {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("Usuário não encontrado")
		}
		return apperrors.MapError(err)
	}

	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.Email != nil {
		user.Email = strings.ToLower(*input.Email)
	}
	if input.Role != nil {
		if !input.Role.Valid() {
			return apperrors.NewValidationError("Role inválida: use professor ou aluno")
		}
		user.Role = *input.Role
	}
	if input.Password != nil {
		if len(*input.Password) > auth.MaxPasswordBytes {
			return apperrors.NewValidationError("Senha deve ter no máximo 72 caracteres")
		}
		hash, err := auth.HashPassword(*input.Password)
		if err != nil {
			return apperrors.MapError(err)
		}
		user.PasswordHash = hash
	}

	if err := s.users.Update(ctx, user); err != nil {
		return apperrors.MapError(err)
	}
	return nil
}

// DeleteUser removes an account by id.
func (s *UserService) DeleteUser(ctx context.Context, id int64) error {
	if err := s.users.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("Usuário não encontrado")
		}
		return apperrors.MapError(err)
	}
	return nil
}
