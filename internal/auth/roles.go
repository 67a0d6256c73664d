package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/blog-service/internal/domain"
	apperrors "github.com/spec-kit/blog-service/pkg/util"
)

// Action enumerates the operations subject to the role policy.
type Action string

const (
	ActionListAvailable Action = "list_available"
	ActionListAll       Action = "list_all"
	ActionCreatePost    Action = "create_post"
	ActionUpdatePost    Action = "update_post"
	ActionDeletePost    Action = "delete_post"
	ActionReadPost      Action = "read_post"
	ActionSearchPosts   Action = "search_posts"
)

// Allowed is the role policy: a pure decision over (role, action).
// Write actions and the full (admin) listing are professor-only.
func Allowed(role domain.Role, action Action) bool {
	switch action {
	case ActionListAll, ActionCreatePost, ActionUpdatePost, ActionDeletePost:
		return role == domain.RoleProfessor
	case ActionListAvailable, ActionReadPost, ActionSearchPosts:
		return role == domain.RoleProfessor || role == domain.RoleAluno
	}
	return false
}

// DenialMessage returns the caller-facing message for a denied action.
func DenialMessage(action Action) string {
	switch action {
	case ActionCreatePost:
		return "Apenas professores podem criar posts"
	case ActionUpdatePost:
		return "Apenas professores podem editar posts"
	case ActionDeletePost:
		return "Apenas professores podem excluir posts"
	case ActionListAll:
		return "Apenas professores podem listar todos os posts"
	}
	return "Ação não permitida"
}

// RequireAction guards a route with the role policy. Denials respond
// 401, matching the service's published contract.
func RequireAction(action Action) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok || principal.User == nil {
			return apperrors.NewUnauthorized("Token ausente")
		}
		if !Allowed(principal.User.Role, action) {
			return apperrors.NewUnauthorized(DenialMessage(action))
		}
		return c.Next()
	}
}
