package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"Murmur/internal/api/handlers/health"
	"Murmur/internal/api/middleware"
	"Murmur/internal/core/comments"
	"Murmur/internal/core/follows"
	"Murmur/internal/core/posts"
	"Murmur/internal/core/tags"
	"Murmur/internal/core/users"
)

// Services bundles the domain services the HTTP surface exposes
type Services struct {
	Posts    posts.Service
	Comments comments.Service
	Follows  follows.Service
	Tags     tags.Service
	Users    users.UserService
}

// Options carries the cross-cutting pieces of the router. Nil Metrics or
// Health leave those endpoints out.
type Options struct {
	Auth    *middleware.JWTAuth
	Metrics *middleware.Metrics
	Health  *health.Handler
}

// NewRouter assembles the full HTTP surface
func NewRouter(svc Services, opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	if opts.Metrics != nil {
		r.Use(opts.Metrics.Middleware)
	}

	RegisterPostRoutes(r, svc.Posts, opts.Auth)
	RegisterCommentRoutes(r, svc.Comments, opts.Auth)
	RegisterFollowRoutes(r, svc.Follows, opts.Auth)
	RegisterTagRoutes(r, svc.Tags)
	RegisterUserRoutes(r, svc.Users, opts.Auth)

	if opts.Health != nil {
		r.Get("/health", opts.Health.HandleHealth)
	}
	if opts.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", opts.Metrics.Handler())
	}

	return r
}
