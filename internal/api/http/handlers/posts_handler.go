package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/blog-service/internal/api/dto"
	"github.com/spec-kit/blog-service/internal/auth"
	"github.com/spec-kit/blog-service/internal/events"
	"github.com/spec-kit/blog-service/internal/service"
	apperrors "github.com/spec-kit/blog-service/pkg/util"
)

// PostsHandler manages post endpoints.
type PostsHandler struct {
	service *service.PostService
}

// NewPostsHandler constructs handler.
func NewPostsHandler(postService *service.PostService) *PostsHandler {
	return &PostsHandler{service: postService}
}

// List handles GET /posts. Professors see every post, alunos only the
// available ones.
func (h *PostsHandler) List(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("Token ausente")
	}

	posts, err := h.service.ListPosts(c.Context(), principal.User.Role)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewPostResponses(posts))
}

// Get handles GET /posts/:id.
func (h *PostsHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c.Params("id"))
	if err != nil {
		return apperrors.NewValidationError("ID inválido")
	}

	post, err := h.service.GetPost(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewPostResponse(post))
}

// ListByAuthor handles GET /posts/author/:authorId.
func (h *PostsHandler) ListByAuthor(c *fiber.Ctx) error {
	authorID, err := parseID(c.Params("authorId"))
	if err != nil {
		return apperrors.NewValidationError("ID inválido")
	}

	posts, err := h.service.ListPostsByAuthor(c.Context(), authorID)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewPostResponses(posts))
}

// Search handles GET /posts/search?q=termo.
func (h *PostsHandler) Search(c *fiber.Ctx) error {
	posts, err := h.service.SearchPosts(c.Context(), c.Query("q"))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewPostResponses(posts))
}

// Create handles POST /posts.
func (h *PostsHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("Token ausente")
	}

	var req dto.CreatePostRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Payload inválido")
	}

	post, err := h.service.CreatePost(c.Context(), actorFor(principal), service.PostCreateInput{
		Title:     req.Title,
		Content:   req.Content,
		Author:    req.Author,
		AuthorID:  req.AuthorID,
		Available: req.Available,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.NewPostResponse(post))
}

// Update handles PUT /posts/:id.
func (h *PostsHandler) Update(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("Token ausente")
	}

	id, err := parseID(c.Params("id"))
	if err != nil {
		return apperrors.NewValidationError("ID inválido")
	}

	var req dto.UpdatePostRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Payload inválido")
	}

	if err := h.service.UpdatePost(c.Context(), actorFor(principal), id, service.PostUpdateInput{
		Title:     req.Title,
		Content:   req.Content,
		Author:    req.Author,
		Available: req.Available,
	}); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Post atualizado com sucesso"})
}

// Delete handles DELETE /posts/:id.
func (h *PostsHandler) Delete(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("Token ausente")
	}

	id, err := parseID(c.Params("id"))
	if err != nil {
		return apperrors.NewValidationError("ID inválido")
	}

	if err := h.service.DeletePost(c.Context(), actorFor(principal), id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Post excluído com sucesso"})
}

func actorFor(principal *auth.Principal) events.Actor {
	return events.Actor{UserID: principal.User.ID, Role: principal.User.Role}
}
