package routes

import (
	"github.com/go-chi/chi/v5"

	"Murmur/internal/api/handlers/tag"
	"Murmur/internal/core/tags"
)

// RegisterTagRoutes registers tag discovery endpoints. All are public.
func RegisterTagRoutes(r chi.Router, service tags.Service) {
	handler := tag.NewHandler(service)

	r.Get("/api/tags", handler.HandleList)
	r.Get("/api/tags/trending", handler.HandleTrending)
	r.Get("/api/tags/{tagName}/posts", handler.HandlePosts)
}
