package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/blog-service/internal/auth"
	"github.com/spec-kit/blog-service/internal/domain"
	apperrors "github.com/spec-kit/blog-service/pkg/util"
)

type stubUserRepo struct {
	users map[string]*domain.User
}

func (s *stubUserRepo) Create(_ context.Context, user *domain.User) error {
	user.ID = int64(len(s.users) + 1)
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	s.users[user.Email] = user
	return nil
}
func (s *stubUserRepo) Update(context.Context, *domain.User) error { return nil }
func (s *stubUserRepo) Delete(_ context.Context, id int64) error {
	for email, u := range s.users {
		if u.ID == id {
			delete(s.users, email)
			return nil
		}
	}
	return pgx.ErrNoRows
}
func (s *stubUserRepo) List(context.Context) ([]domain.User, error) {
	return nil, nil
}
func (s *stubUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	user, ok := s.users[email]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return user, nil
}
func (s *stubUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	for _, u := range s.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func seedUser(t *testing.T, repo *stubUserRepo, email, password string, role domain.Role) *domain.User {
	t.Helper()
	hash, err := auth.HashPassword(password)
	require.NoError(t, err)
	user := &domain.User{ID: int64(len(repo.users) + 1), Email: email, PasswordHash: hash, Role: role}
	repo.users[email] = user
	return user
}

func TestLogin_Success(t *testing.T) {
	repo := &stubUserRepo{users: map[string]*domain.User{}}
	stored := seedUser(t, repo, "a@b.com", "secret", domain.RoleProfessor)

	tm := auth.NewTokenManager("super-secret")
	svc := NewAuthService(repo, tm, nil)

	token, expiresAt, err := svc.Login(context.Background(), "a@b.com", "secret")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	// The token recovers the original subject id and role.
	claims, err := tm.ParseToken(token)
	require.NoError(t, err)
	require.Equal(t, stored.ID, claims.UserID)
	require.Equal(t, domain.RoleProfessor, claims.Role)
}

func TestLogin_MixedCaseEmail(t *testing.T) {
	repo := &stubUserRepo{users: map[string]*domain.User{}}
	stored := seedUser(t, repo, "ana@escola.com", "secret", domain.RoleProfessor)

	tm := auth.NewTokenManager("super-secret")
	svc := NewAuthService(repo, tm, nil)

	token, _, err := svc.Login(context.Background(), "Ana@Escola.com", "secret")
	require.NoError(t, err)

	claims, err := tm.ParseToken(token)
	require.NoError(t, err)
	require.Equal(t, stored.ID, claims.UserID)
}

func TestLogin_UserNotFound(t *testing.T) {
	repo := &stubUserRepo{users: map[string]*domain.User{}}
	svc := NewAuthService(repo, auth.NewTokenManager("super-secret"), nil)

	_, _, err := svc.Login(context.Background(), "ghost@b.com", "secret")
	domainErr := apperrors.ToDomainError(err)
	require.Equal(t, http.StatusUnauthorized, domainErr.HTTPStatus)
	require.Equal(t, "Usuário não encontrado", domainErr.Message)
}

func TestLogin_WrongPassword(t *testing.T) {
	repo := &stubUserRepo{users: map[string]*domain.User{}}
	seedUser(t, repo, "a@b.com", "secret", domain.RoleAluno)
	svc := NewAuthService(repo, auth.NewTokenManager("super-secret"), nil)

	_, _, err := svc.Login(context.Background(), "a@b.com", "wrong")
	domainErr := apperrors.ToDomainError(err)
	require.Equal(t, http.StatusUnauthorized, domainErr.HTTPStatus)
	require.Equal(t, "Senha incorreta", domainErr.Message)
}

func TestLogin_MissingSigningSecret(t *testing.T) {
	repo := &stubUserRepo{users: map[string]*domain.User{}}
	seedUser(t, repo, "a@b.com", "secret", domain.RoleProfessor)
	svc := NewAuthService(repo, auth.NewTokenManager(""), nil)

	_, _, err := svc.Login(context.Background(), "a@b.com", "secret")
	domainErr := apperrors.ToDomainError(err)
	require.Equal(t, http.StatusInternalServerError, domainErr.HTTPStatus)
	require.Equal(t, "JWT_SECRET não está configurado", domainErr.Message)
}
