package comment

import (
	"net/http"

	"Murmur/internal/api/handlers"
	"Murmur/internal/api/middleware"
	"Murmur/internal/core/comments"
)

// CreateCommentHandler handles comment creation
type CreateCommentHandler struct {
	service comments.Service
}

// NewCreateCommentHandler creates a new handler for creating comments
func NewCreateCommentHandler(service comments.Service) *CreateCommentHandler {
	return &CreateCommentHandler{
		service: service,
	}
}

// HandleCreate comments on a post, optionally under a parent comment of the same post
// POST /api/posts/{postId}/comments
//
// Request body: { "body": "...", "parentCommentId": "..." }
func (h *CreateCommentHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	postID, ok := handlers.PathID(r, "postId")
	if !ok {
		handlers.HandleServiceError(w, r, comments.ErrPostNotFound)
		return
	}

	var req comments.CreateCommentRequest
	if err := handlers.DecodeJSON(w, r, &req); err != nil {
		handlers.HandleServiceError(w, r, err)
		return
	}

	created, err := h.service.CreateComment(r.Context(), middleware.GetUserID(r), postID, req)
	if err != nil {
		handlers.HandleServiceError(w, r, err)
		return
	}

	handlers.WriteJSON(w, http.StatusCreated, created)
}
