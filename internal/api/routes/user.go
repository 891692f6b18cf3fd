package routes

import (
	"github.com/go-chi/chi/v5"

	"Murmur/internal/api/handlers/user"
	"Murmur/internal/api/middleware"
	"Murmur/internal/core/users"
)

// RegisterUserRoutes registers profile and user activity endpoints
func RegisterUserRoutes(r chi.Router, service users.UserService, authMiddleware *middleware.JWTAuth) {
	profileHandler := user.NewProfileHandler(service)
	activityHandler := user.NewActivityHandler(service)

	// /api/users/me is matched before /api/users/{userId}
	r.With(authMiddleware.RequireAuth).Get("/api/users/me", profileHandler.HandleGetMyProfile)
	r.With(authMiddleware.RequireAuth).Patch("/api/users/me", profileHandler.HandleUpdateMyProfile)
	r.With(authMiddleware.RequireAuth).Get("/api/me", user.HandleMe)

	r.Get("/api/users/{userId}", profileHandler.HandleGetProfile)
	r.Get("/api/users/{userId}/posts", activityHandler.HandlePosts)
	r.Get("/api/users/{userId}/comments", activityHandler.HandleComments)
	r.Get("/api/users/{userId}/liked-posts", activityHandler.HandleLikedPosts)
}
