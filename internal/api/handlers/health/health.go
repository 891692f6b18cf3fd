package health

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"Murmur/internal/api/handlers"
)

const pingTimeout = 2 * time.Second

// Pinger is satisfied by *sql.DB
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Handler reports whether the server can reach its storage
type Handler struct {
	db Pinger
}

// NewHandler creates a health handler. A nil db (in-memory storage) is always healthy.
func NewHandler(db Pinger) *Handler {
	return &Handler{db: db}
}

type response struct {
	Status string `json:"status"`
}

// HandleHealth answers 200 when storage is reachable and 503 otherwise
// GET /health
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if h.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
		defer cancel()
		if err := h.db.PingContext(ctx); err != nil {
			slog.WarnContext(r.Context(), "health check failed", "error", err)
			handlers.WriteJSON(w, http.StatusServiceUnavailable, response{Status: "unavailable"})
			return
		}
	}
	handlers.WriteJSON(w, http.StatusOK, response{Status: "ok"})
}
