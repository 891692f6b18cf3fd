package post

import (
	"net/http"

	"Murmur/internal/api/handlers"
	"Murmur/internal/api/middleware"
	"Murmur/internal/core/posts"
)

// DeleteHandler handles post deletion
type DeleteHandler struct {
	service posts.Service
}

// NewDeleteHandler creates a new delete handler
func NewDeleteHandler(service posts.Service) *DeleteHandler {
	return &DeleteHandler{
		service: service,
	}
}

// HandleDeletePost deletes a post owned by the caller.
// Its comments, likes and tag links go with it; replies are kept and detached.
// DELETE /api/posts/{postId}
func (h *DeleteHandler) HandleDeletePost(w http.ResponseWriter, r *http.Request) {
	postID, ok := handlers.PathID(r, "postId")
	if !ok {
		handlers.HandleServiceError(w, r, posts.ErrPostNotFound)
		return
	}

	resp, err := h.service.DeletePost(r.Context(), middleware.GetUserID(r), postID)
	if err != nil {
		handlers.HandleServiceError(w, r, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, resp)
}
