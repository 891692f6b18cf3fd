package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"Murmur/internal/core/apperr"
	"Murmur/internal/core/pagination"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// maxBodyBytes caps request bodies; the largest valid payload is a 2000 character comment
const maxBodyBytes = 64 << 10

var errInvalidBody = apperr.BadRequest("invalid request body")

// DecodeJSON reads a size-limited JSON body into dst
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return apperr.BadRequest("request body too large")
		}
		return errInvalidBody
	}
	return nil
}

// PathID returns the named URL parameter when it is a well-formed UUID.
// Malformed ids can never match a stored row, so callers answer 404.
func PathID(r *http.Request, name string) (string, bool) {
	raw := chi.URLParam(r, name)
	id, err := uuid.Parse(raw)
	if err != nil {
		return "", false
	}
	return id.String(), true
}

// PageParams reads skip and take from the query string, defaulting to the first page
func PageParams(r *http.Request) (skip, take int, err error) {
	skip, err = IntParam(r, "skip", pagination.DefaultSkip)
	if err != nil {
		return 0, 0, err
	}
	take, err = IntParam(r, "take", pagination.DefaultTake)
	if err != nil {
		return 0, 0, err
	}
	return skip, take, nil
}

// IntParam reads an optional integer query parameter
func IntParam(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperr.BadRequest(name + " must be an integer")
	}
	return v, nil
}

// OptionalQuery returns a pointer to the query value, or nil when absent
func OptionalQuery(r *http.Request, name string) *string {
	if !r.URL.Query().Has(name) {
		return nil
	}
	v := r.URL.Query().Get(name)
	return &v
}

// OptionalQueryID reads an optional id filter. Blank counts as absent; anything
// else must be a UUID.
func OptionalQueryID(r *http.Request, name string) (*string, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, apperr.BadRequest(name + " must be a valid id")
	}
	v := id.String()
	return &v, nil
}
