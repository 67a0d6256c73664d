package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/blog-service/internal/api/http"
	"github.com/spec-kit/blog-service/internal/api/http/handlers"
	"github.com/spec-kit/blog-service/internal/auth"
	"github.com/spec-kit/blog-service/internal/domain"
	"github.com/spec-kit/blog-service/internal/observability"
	"github.com/spec-kit/blog-service/internal/service"
)

type memUserRepo struct {
	users map[int64]*domain.User
}

func (m *memUserRepo) Create(_ context.Context, user *domain.User) error {
	user.ID = int64(len(m.users) + 1)
	m.users[user.ID] = user
	return nil
}
func (m *memUserRepo) Update(context.Context, *domain.User) error { return nil }
func (m *memUserRepo) Delete(_ context.Context, id int64) error {
	if _, ok := m.users[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(m.users, id)
	return nil
}
func (m *memUserRepo) List(context.Context) ([]domain.User, error) {
	var out []domain.User
	for _, u := range m.users {
		out = append(out, *u)
	}
	return out, nil
}
func (m *memUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	user, ok := m.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return user, nil
}
func (m *memUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, pgx.ErrNoRows
}

type memPostRepo struct {
	posts  map[int64]*domain.Post
	nextID int64
}

func (m *memPostRepo) Create(_ context.Context, post *domain.Post) error {
	post.ID = m.nextID
	m.nextID++
	post.CreatedAt = time.Now()
	post.UpdatedAt = post.CreatedAt
	clone := *post
	m.posts[post.ID] = &clone
	return nil
}
func (m *memPostRepo) Update(_ context.Context, post *domain.Post) error {
	if _, ok := m.posts[post.ID]; !ok {
		return pgx.ErrNoRows
	}
	clone := *post
	m.posts[post.ID] = &clone
	return nil
}
func (m *memPostRepo) Delete(_ context.Context, id int64) error {
	if _, ok := m.posts[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(m.posts, id)
	return nil
}
func (m *memPostRepo) GetByID(_ context.Context, id int64) (*domain.Post, error) {
	post, ok := m.posts[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *post
	return &clone, nil
}
func (m *memPostRepo) ListAll(context.Context) ([]domain.Post, error) {
	var out []domain.Post
	for _, p := range m.posts {
		out = append(out, *p)
	}
	return out, nil
}
func (m *memPostRepo) ListAvailable(context.Context) ([]domain.Post, error) {
	var out []domain.Post
	for _, p := range m.posts {
		if p.Available {
			out = append(out, *p)
		}
	}
	return out, nil
}
func (m *memPostRepo) ListByAuthor(_ context.Context, authorID int64) ([]domain.Post, error) {
	var out []domain.Post
	for _, p := range m.posts {
		if p.AuthorID == authorID {
			out = append(out, *p)
		}
	}
	return out, nil
}
func (m *memPostRepo) Search(context.Context, string) ([]domain.Post, error) {
	return nil, nil
}

type testEnv struct {
	app   *fiber.App
	users *memUserRepo
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	userRepo := &memUserRepo{users: map[int64]*domain.User{}}
	postRepo := &memPostRepo{posts: map[int64]*domain.Post{}, nextID: 1}
	tokenMgr := auth.NewTokenManager("test-secret")

	authService := service.NewAuthService(userRepo, tokenMgr, nil)
	userService := service.NewUserService(userRepo)
	postService := service.NewPostService(postRepo, nil, nil)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, zap.NewNop(), observability.NewMetrics(), 0)
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler("blog-service", "test", nil, nil),
		Users:          handlers.NewUsersHandler(authService, userService),
		Posts:          handlers.NewPostsHandler(postService),
		AuthMiddleware: auth.NewAuthMiddleware(tokenMgr, userRepo),
	})

	return &testEnv{app: app, users: userRepo}
}

func (env *testEnv) seedUser(t *testing.T, email, password string, role domain.Role) *domain.User {
	t.Helper()
	hash, err := auth.HashPassword(password)
	require.NoError(t, err)
	user := &domain.User{Email: email, Name: "Test", PasswordHash: hash, Role: role}
	require.NoError(t, env.users.Create(context.Background(), user))
	return user
}

func (env *testEnv) request(t *testing.T, method, path, token string, body any) (int, map[string]any, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := env.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var parsed map[string]any
	_ = json.Unmarshal(raw, &parsed)
	return resp.StatusCode, parsed, raw
}

func (env *testEnv) login(t *testing.T, email, password string) string {
	t.Helper()
	status, body, _ := env.request(t, http.MethodPost, "/users/login", "", fiber.Map{
		"email": email, "password": password,
	})
	require.Equal(t, http.StatusOK, status)
	token, ok := body["token"].(string)
	require.True(t, ok, "login response must carry a token")
	return token
}

func TestLoginAndCreatePost_Professor(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "a@b.com", "secret", domain.RoleProfessor)

	token := env.login(t, "a@b.com", "secret")

	status, body, _ := env.request(t, http.MethodPost, "/posts", token, fiber.Map{
		"title": "T", "content": "C", "author": "Ana", "authorId": 1,
	})
	require.Equal(t, http.StatusCreated, status)
	require.Equal(t, "T", body["title"])
	require.Equal(t, "C", body["content"])
	require.Equal(t, true, body["available"])
}

func TestCreatePost_AlunoDenied(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "aluno@b.com", "secret", domain.RoleAluno)

	token := env.login(t, "aluno@b.com", "secret")

	status, body, _ := env.request(t, http.MethodPost, "/posts", token, fiber.Map{
		"title": "T", "content": "C", "authorId": 1,
	})
	require.Equal(t, http.StatusUnauthorized, status)
	require.Equal(t, "Apenas professores podem criar posts", body["error"])
}

func TestUpdateAndDeletePost_AlunoDenied(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "aluno@b.com", "secret", domain.RoleAluno)
	token := env.login(t, "aluno@b.com", "secret")

	status, body, _ := env.request(t, http.MethodPut, "/posts/1", token, fiber.Map{"title": "X"})
	require.Equal(t, http.StatusUnauthorized, status)
	require.Equal(t, "Apenas professores podem editar posts", body["error"])

	status, body, _ = env.request(t, http.MethodDelete, "/posts/1", token, nil)
	require.Equal(t, http.StatusUnauthorized, status)
	require.Equal(t, "Apenas professores podem excluir posts", body["error"])
}

func TestProtectedRoute_MissingToken(t *testing.T) {
	env := newTestEnv(t)

	status, body, _ := env.request(t, http.MethodGet, "/posts", "", nil)
	require.Equal(t, http.StatusUnauthorized, status)
	require.Equal(t, "Token ausente", body["error"])

	status, body, _ = env.request(t, http.MethodPost, "/posts", "", fiber.Map{"title": "T"})
	require.Equal(t, http.StatusUnauthorized, status)
	require.Equal(t, "Token ausente", body["error"])
}

func TestLogin_ErrorContract(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "a@b.com", "secret", domain.RoleProfessor)

	status, body, _ := env.request(t, http.MethodPost, "/users/login", "", fiber.Map{
		"email": "ghost@b.com", "password": "secret",
	})
	require.Equal(t, http.StatusUnauthorized, status)
	require.Equal(t, "Usuário não encontrado", body["error"])

	status, body, _ = env.request(t, http.MethodPost, "/users/login", "", fiber.Map{
		"email": "a@b.com", "password": "wrong",
	})
	require.Equal(t, http.StatusUnauthorized, status)
	require.Equal(t, "Senha incorreta", body["error"])
}

func TestListPosts_RoleScoping(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "prof@b.com", "secret", domain.RoleProfessor)
	env.seedUser(t, "aluno@b.com", "secret", domain.RoleAluno)
	profToken := env.login(t, "prof@b.com", "secret")
	alunoToken := env.login(t, "aluno@b.com", "secret")

	status, _, _ := env.request(t, http.MethodPost, "/posts", profToken, fiber.Map{
		"title": "Público", "content": "C", "authorId": 1,
	})
	require.Equal(t, http.StatusCreated, status)
	status, _, _ = env.request(t, http.MethodPost, "/posts", profToken, fiber.Map{
		"title": "Rascunho", "content": "C", "authorId": 1, "available": false,
	})
	require.Equal(t, http.StatusCreated, status)

	var profPosts []map[string]any
	status, _, raw := env.request(t, http.MethodGet, "/posts", profToken, nil)
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(raw, &profPosts))
	require.Len(t, profPosts, 2)

	var alunoPosts []map[string]any
	status, _, raw = env.request(t, http.MethodGet, "/posts", alunoToken, nil)
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(raw, &alunoPosts))
	require.Len(t, alunoPosts, 1)
	require.Equal(t, "Público", alunoPosts[0]["title"])
}

func TestGetPost_PublicAndNotFound(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "prof@b.com", "secret", domain.RoleProfessor)
	profToken := env.login(t, "prof@b.com", "secret")

	status, _, _ := env.request(t, http.MethodPost, "/posts", profToken, fiber.Map{
		"title": "T", "content": "C", "authorId": 1,
	})
	require.Equal(t, http.StatusCreated, status)

	// reads require no token
	status, body, _ := env.request(t, http.MethodGet, "/posts/1", "", nil)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "T", body["title"])

	status, body, _ = env.request(t, http.MethodGet, "/posts/999", "", nil)
	require.Equal(t, http.StatusNotFound, status)
	require.Equal(t, "Post não encontrado", body["error"])
}

func TestUpdateAndDeletePost_Professor(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "prof@b.com", "secret", domain.RoleProfessor)
	token := env.login(t, "prof@b.com", "secret")

	status, _, _ := env.request(t, http.MethodPost, "/posts", token, fiber.Map{
		"title": "T", "content": "C", "authorId": 1,
	})
	require.Equal(t, http.StatusCreated, status)

	status, body, _ := env.request(t, http.MethodPut, "/posts/1", token, fiber.Map{"title": "T2"})
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "Post atualizado com sucesso", body["message"])

	status, body, _ = env.request(t, http.MethodGet, "/posts/1", "", nil)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "T2", body["title"])

	status, body, _ = env.request(t, http.MethodDelete, "/posts/1", token, nil)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "Post excluído com sucesso", body["message"])
}
