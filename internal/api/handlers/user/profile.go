package user

import (
	"net/http"

	"Murmur/internal/api/handlers"
	"Murmur/internal/api/middleware"
	"Murmur/internal/core/users"
)

// ProfileHandler serves user profiles
type ProfileHandler struct {
	userService users.UserService
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(userService users.UserService) *ProfileHandler {
	return &ProfileHandler{
		userService: userService,
	}
}

// HandleGetProfile returns the public profile of a user with activity counts
// GET /api/users/{userId}
func (h *ProfileHandler) HandleGetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := handlers.PathID(r, "userId")
	if !ok {
		handlers.HandleServiceError(w, r, users.ErrUserNotFound)
		return
	}

	profile, err := h.userService.GetProfile(r.Context(), userID)
	if err != nil {
		handlers.HandleServiceError(w, r, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, profile)
}

// HandleGetMyProfile returns the caller's own profile, email included
// GET /api/users/me
func (h *ProfileHandler) HandleGetMyProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.userService.GetMyProfile(r.Context(), middleware.GetUserID(r))
	if err != nil {
		handlers.HandleServiceError(w, r, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, profile)
}

// HandleUpdateMyProfile edits bio and avatar. Omitted fields are kept; "" clears a field.
// PATCH /api/users/me
func (h *ProfileHandler) HandleUpdateMyProfile(w http.ResponseWriter, r *http.Request) {
	var req users.UpdateProfileRequest
	if err := handlers.DecodeJSON(w, r, &req); err != nil {
		handlers.HandleServiceError(w, r, err)
		return
	}

	resp, err := h.userService.UpdateMyProfile(r.Context(), middleware.GetUserID(r), req)
	if err != nil {
		handlers.HandleServiceError(w, r, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, resp)
}

// MeResponse echoes the identity carried by the caller's token
type MeResponse struct {
	UserID   string `json:"userId"`
	UserName string `json:"userName"`
}

// HandleMe returns the token identity without touching storage
// GET /api/me
func HandleMe(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r)
	if userID == "" {
		handlers.HandleServiceError(w, r, users.ErrAuthRequired)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, MeResponse{
		UserID:   userID,
		UserName: middleware.GetUserName(r),
	})
}
