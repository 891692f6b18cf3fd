package follow

import (
	"context"
	"net/http"

	"Murmur/internal/api/handlers"
	"Murmur/internal/api/middleware"
	"Murmur/internal/core/follows"
)

// Handler serves the follow graph
type Handler struct {
	service follows.Service
}

// NewHandler creates a new follow handler
func NewHandler(service follows.Service) *Handler {
	return &Handler{
		service: service,
	}
}

// HandleFollow follows a user. Following twice is not an error.
// POST /api/follows/{userId}
func (h *Handler) HandleFollow(w http.ResponseWriter, r *http.Request) {
	h.edge(w, r, h.service.Follow)
}

// HandleUnfollow removes a follow edge. Removing a missing edge is not an error.
// DELETE /api/follows/{userId}
func (h *Handler) HandleUnfollow(w http.ResponseWriter, r *http.Request) {
	h.edge(w, r, h.service.Unfollow)
}

func (h *Handler) edge(
	w http.ResponseWriter,
	r *http.Request,
	op func(ctx context.Context, callerID, targetID string) (*follows.MessageResponse, error),
) {
	targetID, ok := handlers.PathID(r, "userId")
	if !ok {
		handlers.HandleServiceError(w, r, follows.ErrTargetNotFound)
		return
	}

	resp, err := op(r.Context(), middleware.GetUserID(r), targetID)
	if err != nil {
		handlers.HandleServiceError(w, r, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, resp)
}

// HandleFollowers lists who follows a user
// GET /api/follows/{userId}/followers?skip&take
func (h *Handler) HandleFollowers(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, h.service.GetFollowers)
}

// HandleFollowing lists who a user follows
// GET /api/follows/{userId}/following?skip&take
func (h *Handler) HandleFollowing(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, h.service.GetFollowing)
}

func (h *Handler) list(
	w http.ResponseWriter,
	r *http.Request,
	op func(ctx context.Context, userID string, skip, take int) (*follows.FollowList, error),
) {
	userID, ok := handlers.PathID(r, "userId")
	if !ok {
		handlers.HandleServiceError(w, r, follows.ErrUserNotFound)
		return
	}

	skip, take, err := handlers.PageParams(r)
	if err != nil {
		handlers.HandleServiceError(w, r, err)
		return
	}

	result, err := op(r.Context(), userID, skip, take)
	if err != nil {
		handlers.HandleServiceError(w, r, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, result)
}
