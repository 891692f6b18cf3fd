package tag

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"Murmur/internal/api/handlers"
	"Murmur/internal/core/tags"
)

const (
	defaultTrendingTake = 10
	defaultTrendingDays = 7
)

// Handler serves tag discovery
type Handler struct {
	service tags.Service
}

// NewHandler creates a new tag handler
func NewHandler(service tags.Service) *Handler {
	return &Handler{
		service: service,
	}
}

// HandleList lists tags alphabetically with their post counts
// GET /api/tags?skip&take&q
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	skip, take, err := handlers.PageParams(r)
	if err != nil {
		handlers.HandleServiceError(w, r, err)
		return
	}

	result, err := h.service.ListTags(r.Context(), skip, take, handlers.OptionalQuery(r, "q"))
	if err != nil {
		handlers.HandleServiceError(w, r, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, result)
}

// HandleTrending ranks tags by recent posts
// GET /api/tags/trending?take&days
func (h *Handler) HandleTrending(w http.ResponseWriter, r *http.Request) {
	take, err := handlers.IntParam(r, "take", defaultTrendingTake)
	if err != nil {
		handlers.HandleServiceError(w, r, err)
		return
	}
	days, err := handlers.IntParam(r, "days", defaultTrendingDays)
	if err != nil {
		handlers.HandleServiceError(w, r, err)
		return
	}

	result, err := h.service.Trending(r.Context(), take, days)
	if err != nil {
		handlers.HandleServiceError(w, r, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, result)
}

// HandlePosts lists posts carrying a tag. The name is normalized, so /api/tags/%23Go/posts finds "go".
// GET /api/tags/{tagName}/posts?skip&take
func (h *Handler) HandlePosts(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "tagName")
	// chi matches on the escaped path when one exists
	if r.URL.RawPath != "" {
		unescaped, err := url.PathUnescape(name)
		if err != nil {
			handlers.HandleServiceError(w, r, tags.ErrInvalidTagName)
			return
		}
		name = unescaped
	}

	skip, take, err := handlers.PageParams(r)
	if err != nil {
		handlers.HandleServiceError(w, r, err)
		return
	}

	result, err := h.service.PostsByTag(r.Context(), name, skip, take)
	if err != nil {
		handlers.HandleServiceError(w, r, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, result)
}
