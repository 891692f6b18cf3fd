package comment

import (
	"net/http"

	"Murmur/internal/api/handlers"
	"Murmur/internal/core/comments"
)

// GetCommentsHandler serves comment threads
type GetCommentsHandler struct {
	service comments.Service
}

// NewGetCommentsHandler creates a new handler for reading comments
func NewGetCommentsHandler(service comments.Service) *GetCommentsHandler {
	return &GetCommentsHandler{
		service: service,
	}
}

// HandleListForPost lists every comment of a post oldest first, nested ones included
// GET /api/posts/{postId}/comments?skip&take
func (h *GetCommentsHandler) HandleListForPost(w http.ResponseWriter, r *http.Request) {
	postID, ok := handlers.PathID(r, "postId")
	if !ok {
		handlers.HandleServiceError(w, r, comments.ErrPostNotFound)
		return
	}

	skip, take, err := handlers.PageParams(r)
	if err != nil {
		handlers.HandleServiceError(w, r, err)
		return
	}

	result, err := h.service.GetPostComments(r.Context(), postID, skip, take)
	if err != nil {
		handlers.HandleServiceError(w, r, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, result)
}

// HandleGet returns a single comment
// GET /api/comments/{commentId}
func (h *GetCommentsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	commentID, ok := handlers.PathID(r, "commentId")
	if !ok {
		handlers.HandleServiceError(w, r, comments.ErrCommentNotFound)
		return
	}

	view, err := h.service.GetComment(r.Context(), commentID)
	if err != nil {
		handlers.HandleServiceError(w, r, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, view)
}

// HandleChildren lists the direct children of a comment, oldest first
// GET /api/comments/{commentId}/children?skip&take
func (h *GetCommentsHandler) HandleChildren(w http.ResponseWriter, r *http.Request) {
	commentID, ok := handlers.PathID(r, "commentId")
	if !ok {
		handlers.HandleServiceError(w, r, comments.ErrCommentNotFound)
		return
	}

	skip, take, err := handlers.PageParams(r)
	if err != nil {
		handlers.HandleServiceError(w, r, err)
		return
	}

	result, err := h.service.GetChildren(r.Context(), commentID, skip, take)
	if err != nil {
		handlers.HandleServiceError(w, r, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, result)
}
