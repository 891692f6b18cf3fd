package user

import (
	"net/http"

	"Murmur/internal/api/handlers"
	"Murmur/internal/core/users"
)

// ActivityHandler serves a user's posts, comments and liked posts
type ActivityHandler struct {
	userService users.UserService
}

// NewActivityHandler creates a new activity handler
func NewActivityHandler(userService users.UserService) *ActivityHandler {
	return &ActivityHandler{
		userService: userService,
	}
}

// HandlePosts lists a user's posts, newest first
// GET /api/users/{userId}/posts?skip&take
func (h *ActivityHandler) HandlePosts(w http.ResponseWriter, r *http.Request) {
	userID, skip, take, ok := h.params(w, r)
	if !ok {
		return
	}

	result, err := h.userService.GetUserPosts(r.Context(), userID, skip, take)
	if err != nil {
		handlers.HandleServiceError(w, r, err)
		return
	}
	handlers.WriteJSON(w, http.StatusOK, result)
}

// HandleComments lists a user's comments, newest first
// GET /api/users/{userId}/comments?skip&take
func (h *ActivityHandler) HandleComments(w http.ResponseWriter, r *http.Request) {
	userID, skip, take, ok := h.params(w, r)
	if !ok {
		return
	}

	result, err := h.userService.GetUserComments(r.Context(), userID, skip, take)
	if err != nil {
		handlers.HandleServiceError(w, r, err)
		return
	}
	handlers.WriteJSON(w, http.StatusOK, result)
}

// HandleLikedPosts lists posts a user liked, most recent like first
// GET /api/users/{userId}/liked-posts?skip&take
func (h *ActivityHandler) HandleLikedPosts(w http.ResponseWriter, r *http.Request) {
	userID, skip, take, ok := h.params(w, r)
	if !ok {
		return
	}

	result, err := h.userService.GetLikedPosts(r.Context(), userID, skip, take)
	if err != nil {
		handlers.HandleServiceError(w, r, err)
		return
	}
	handlers.WriteJSON(w, http.StatusOK, result)
}

// params reads the user id and page, writing the error response itself on failure
func (h *ActivityHandler) params(w http.ResponseWriter, r *http.Request) (userID string, skip, take int, ok bool) {
	userID, ok = handlers.PathID(r, "userId")
	if !ok {
		handlers.HandleServiceError(w, r, users.ErrUserNotFound)
		return "", 0, 0, false
	}

	skip, take, err := handlers.PageParams(r)
	if err != nil {
		handlers.HandleServiceError(w, r, err)
		return "", 0, 0, false
	}
	return userID, skip, take, true
}
