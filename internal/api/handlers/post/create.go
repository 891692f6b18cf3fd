package post

import (
	"net/http"

	"Murmur/internal/api/handlers"
	"Murmur/internal/api/middleware"
	"Murmur/internal/core/posts"
)

// CreateHandler handles post and reply creation
type CreateHandler struct {
	service posts.Service
}

// NewCreateHandler creates a new create handler
func NewCreateHandler(service posts.Service) *CreateHandler {
	return &CreateHandler{
		service: service,
	}
}

// HandleCreatePost creates a post, optionally as a reply
// POST /api/posts
//
// Request body: { "text": "...", "replyToPostId": "...", "tags": ["..."] }
func (h *CreateHandler) HandleCreatePost(w http.ResponseWriter, r *http.Request) {
	var req posts.CreatePostRequest
	if err := handlers.DecodeJSON(w, r, &req); err != nil {
		handlers.HandleServiceError(w, r, err)
		return
	}

	created, err := h.service.CreatePost(r.Context(), middleware.GetUserID(r), req)
	if err != nil {
		handlers.HandleServiceError(w, r, err)
		return
	}

	handlers.WriteJSON(w, http.StatusCreated, created)
}

// HandleCreateReply replies to an existing post
// POST /api/posts/{postId}/replies
func (h *CreateHandler) HandleCreateReply(w http.ResponseWriter, r *http.Request) {
	postID, ok := handlers.PathID(r, "postId")
	if !ok {
		handlers.HandleServiceError(w, r, posts.ErrPostNotFound)
		return
	}

	var req posts.CreateReplyRequest
	if err := handlers.DecodeJSON(w, r, &req); err != nil {
		handlers.HandleServiceError(w, r, err)
		return
	}

	created, err := h.service.CreateReply(r.Context(), middleware.GetUserID(r), postID, req)
	if err != nil {
		handlers.HandleServiceError(w, r, err)
		return
	}

	handlers.WriteJSON(w, http.StatusCreated, created)
}
