package routes

import (
	"github.com/go-chi/chi/v5"

	"Murmur/internal/api/handlers/comment"
	"Murmur/internal/api/middleware"
	"Murmur/internal/core/comments"
)

// RegisterCommentRoutes registers threaded comment endpoints
func RegisterCommentRoutes(r chi.Router, service comments.Service, authMiddleware *middleware.JWTAuth) {
	createHandler := comment.NewCreateCommentHandler(service)
	updateHandler := comment.NewUpdateCommentHandler(service)
	getHandler := comment.NewGetCommentsHandler(service)

	r.Get("/api/posts/{postId}/comments", getHandler.HandleListForPost)
	r.Get("/api/comments/{commentId}", getHandler.HandleGet)
	r.Get("/api/comments/{commentId}/children", getHandler.HandleChildren)

	r.With(authMiddleware.RequireAuth).Post("/api/posts/{postId}/comments", createHandler.HandleCreate)
	r.With(authMiddleware.RequireAuth).Patch("/api/comments/{commentId}", updateHandler.HandleUpdate)
	r.With(authMiddleware.RequireAuth).Delete("/api/comments/{commentId}", updateHandler.HandleDelete)
}
