package post

import (
	"context"
	"net/http"

	"Murmur/internal/api/handlers"
	"Murmur/internal/api/middleware"
	"Murmur/internal/core/posts"
)

// LikeHandler handles likes on posts
type LikeHandler struct {
	service posts.Service
}

// NewLikeHandler creates a new like handler
func NewLikeHandler(service posts.Service) *LikeHandler {
	return &LikeHandler{
		service: service,
	}
}

// HandleLike likes a post. Liking twice is not an error.
// POST /api/posts/{postId}/like
func (h *LikeHandler) HandleLike(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, h.service.LikePost)
}

// HandleUnlike removes the caller's like. Removing a missing like is not an error.
// DELETE /api/posts/{postId}/like
func (h *LikeHandler) HandleUnlike(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, h.service.UnlikePost)
}

func (h *LikeHandler) toggle(
	w http.ResponseWriter,
	r *http.Request,
	op func(ctx context.Context, callerID, postID string) (*posts.MessageResponse, error),
) {
	postID, ok := handlers.PathID(r, "postId")
	if !ok {
		handlers.HandleServiceError(w, r, posts.ErrPostNotFound)
		return
	}

	resp, err := op(r.Context(), middleware.GetUserID(r), postID)
	if err != nil {
		handlers.HandleServiceError(w, r, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, resp)
}

// HandleGetLikes lists who liked a post, most recent first
// GET /api/posts/{postId}/likes?skip&take
func (h *LikeHandler) HandleGetLikes(w http.ResponseWriter, r *http.Request) {
	postID, ok := handlers.PathID(r, "postId")
	if !ok {
		handlers.HandleServiceError(w, r, posts.ErrPostNotFound)
		return
	}

	skip, take, err := handlers.PageParams(r)
	if err != nil {
		handlers.HandleServiceError(w, r, err)
		return
	}

	likes, err := h.service.GetLikes(r.Context(), postID, skip, take)
	if err != nil {
		handlers.HandleServiceError(w, r, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, likes)
}
