package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/blog-service/internal/api/http/handlers"
	"github.com/spec-kit/blog-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Users          *handlers.UsersHandler
	Posts          *handlers.PostsHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes. Single-post reads, author listings
// and search are public; the role-scoped listing and all mutations
// require a bearer token.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	users := app.Group("/users")
	users.Post("/login", cfg.Users.Login)
	users.Post("/", cfg.Users.Create)
	users.Get("/", cfg.AuthMiddleware.Handle, cfg.Users.List)
	users.Put("/:id", cfg.AuthMiddleware.Handle, cfg.Users.Update)
	users.Delete("/:id", cfg.AuthMiddleware.Handle, cfg.Users.Delete)

	posts := app.Group("/posts")
	posts.Get("/", cfg.AuthMiddleware.Handle, cfg.Posts.List)
	// search must be registered before the :id wildcard
	posts.Get("/search", cfg.Posts.Search)
	posts.Get("/author/:authorId", cfg.Posts.ListByAuthor)
	posts.Get("/:id", cfg.Posts.Get)
	posts.Post("/", cfg.AuthMiddleware.Handle, auth.RequireAction(auth.ActionCreatePost), cfg.Posts.Create)
	posts.Put("/:id", cfg.AuthMiddleware.Handle, auth.RequireAction(auth.ActionUpdatePost), cfg.Posts.Update)
	posts.Delete("/:id", cfg.AuthMiddleware.Handle, auth.RequireAction(auth.ActionDeletePost), cfg.Posts.Delete)
}
