package comment

import (
	"net/http"

	"Murmur/internal/api/handlers"
	"Murmur/internal/api/middleware"
	"Murmur/internal/core/comments"
)

// UpdateCommentHandler handles comment edits and deletion
type UpdateCommentHandler struct {
	service comments.Service
}

// NewUpdateCommentHandler creates a new handler for updating comments
func NewUpdateCommentHandler(service comments.Service) *UpdateCommentHandler {
	return &UpdateCommentHandler{
		service: service,
	}
}

// HandleUpdate replaces the body of a comment owned by the caller
// PATCH /api/comments/{commentId}
func (h *UpdateCommentHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	commentID, ok := handlers.PathID(r, "commentId")
	if !ok {
		handlers.HandleServiceError(w, r, comments.ErrCommentNotFound)
		return
	}

	var req comments.UpdateCommentRequest
	if err := handlers.DecodeJSON(w, r, &req); err != nil {
		handlers.HandleServiceError(w, r, err)
		return
	}

	resp, err := h.service.UpdateComment(r.Context(), middleware.GetUserID(r), commentID, req)
	if err != nil {
		handlers.HandleServiceError(w, r, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, resp)
}

// HandleDelete removes a comment owned by the caller. Comments with replies are refused.
// DELETE /api/comments/{commentId}
func (h *UpdateCommentHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	commentID, ok := handlers.PathID(r, "commentId")
	if !ok {
		handlers.HandleServiceError(w, r, comments.ErrCommentNotFound)
		return
	}

	resp, err := h.service.DeleteComment(r.Context(), middleware.GetUserID(r), commentID)
	if err != nil {
		handlers.HandleServiceError(w, r, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, resp)
}
