package routes

import (
	"github.com/go-chi/chi/v5"

	"Murmur/internal/api/handlers/follow"
	"Murmur/internal/api/middleware"
	"Murmur/internal/core/follows"
)

// RegisterFollowRoutes registers follow graph endpoints
func RegisterFollowRoutes(r chi.Router, service follows.Service, authMiddleware *middleware.JWTAuth) {
	handler := follow.NewHandler(service)

	r.Get("/api/follows/{userId}/followers", handler.HandleFollowers)
	r.Get("/api/follows/{userId}/following", handler.HandleFollowing)

	r.With(authMiddleware.RequireAuth).Post("/api/follows/{userId}", handler.HandleFollow)
	r.With(authMiddleware.RequireAuth).Delete("/api/follows/{userId}", handler.HandleUnfollow)
}
