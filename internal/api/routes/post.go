package routes

import (
	"github.com/go-chi/chi/v5"

	"Murmur/internal/api/handlers/post"
	"Murmur/internal/api/middleware"
	"Murmur/internal/core/posts"
)

// RegisterPostRoutes registers post, reply, feed and like endpoints
func RegisterPostRoutes(r chi.Router, service posts.Service, authMiddleware *middleware.JWTAuth) {
	createHandler := post.NewCreateHandler(service)
	updateHandler := post.NewUpdateHandler(service)
	deleteHandler := post.NewDeleteHandler(service)
	likeHandler := post.NewLikeHandler(service)
	getHandler := post.NewGetHandler(service)

	// Public reads
	r.Get("/api/posts", getHandler.HandleListPosts)
	r.Get("/api/posts/{postId}", getHandler.HandleGetPost)
	r.Get("/api/posts/{postId}/replies", getHandler.HandleGetReplies)
	r.Get("/api/posts/{postId}/likes", likeHandler.HandleGetLikes)

	// Everything else acts as the caller
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware.RequireAuth)

		r.Get("/api/posts/feed", getHandler.HandleGetFeed)
		r.Post("/api/posts", createHandler.HandleCreatePost)
		r.Patch("/api/posts/{postId}", updateHandler.HandleUpdatePost)
		r.Delete("/api/posts/{postId}", deleteHandler.HandleDeletePost)
		r.Post("/api/posts/{postId}/replies", createHandler.HandleCreateReply)
		r.Post("/api/posts/{postId}/like", likeHandler.HandleLike)
		r.Delete("/api/posts/{postId}/like", likeHandler.HandleUnlike)
	})
}
