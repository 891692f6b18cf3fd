package post

import (
	"net/http"

	"Murmur/internal/api/handlers"
	"Murmur/internal/api/middleware"
	"Murmur/internal/core/posts"
)

// GetHandler serves post reads: the public listing, the caller's feed,
// single posts and reply threads
type GetHandler struct {
	service posts.Service
}

// NewGetHandler creates a new get handler
func NewGetHandler(service posts.Service) *GetHandler {
	return &GetHandler{
		service: service,
	}
}

// HandleListPosts lists posts newest first
// GET /api/posts?skip&take&authorId&tag
func (h *GetHandler) HandleListPosts(w http.ResponseWriter, r *http.Request) {
	skip, take, err := handlers.PageParams(r)
	if err != nil {
		handlers.HandleServiceError(w, r, err)
		return
	}

	authorID, err := handlers.OptionalQueryID(r, "authorId")
	if err != nil {
		handlers.HandleServiceError(w, r, err)
		return
	}

	result, err := h.service.ListPosts(r.Context(), posts.ListPostsRequest{
		Skip:     skip,
		Take:     take,
		AuthorID: authorID,
		Tag:      handlers.OptionalQuery(r, "tag"),
	})
	if err != nil {
		handlers.HandleServiceError(w, r, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, result)
}

// HandleGetFeed lists posts by the caller and everyone they follow
// GET /api/posts/feed?skip&take
func (h *GetHandler) HandleGetFeed(w http.ResponseWriter, r *http.Request) {
	skip, take, err := handlers.PageParams(r)
	if err != nil {
		handlers.HandleServiceError(w, r, err)
		return
	}

	result, err := h.service.GetFeed(r.Context(), middleware.GetUserID(r), skip, take)
	if err != nil {
		handlers.HandleServiceError(w, r, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, result)
}

// HandleGetPost returns a single post summary
// GET /api/posts/{postId}
func (h *GetHandler) HandleGetPost(w http.ResponseWriter, r *http.Request) {
	postID, ok := handlers.PathID(r, "postId")
	if !ok {
		handlers.HandleServiceError(w, r, posts.ErrPostNotFound)
		return
	}

	summary, err := h.service.GetPost(r.Context(), postID)
	if err != nil {
		handlers.HandleServiceError(w, r, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, summary)
}

// HandleGetReplies lists direct replies, oldest first
// GET /api/posts/{postId}/replies?skip&take
func (h *GetHandler) HandleGetReplies(w http.ResponseWriter, r *http.Request) {
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

	result, err := h.service.GetReplies(r.Context(), postID, skip, take)
	if err != nil {
		handlers.HandleServiceError(w, r, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, result)
}
