package tags

import "Murmur/internal/core/apperr"

var (
	// ErrTagNotFound indicates no tag carries the requested normalized name
	ErrTagNotFound = apperr.NotFound("tag not found")

	// ErrInvalidTagName indicates the name is blank after normalization
	ErrInvalidTagName = apperr.BadRequest("a valid tag name is required")

	ErrInvalidTrendingTake = apperr.BadRequest("take must be between 1 and 100")
	ErrInvalidTrendingDays = apperr.BadRequest("days must be between 1 and 365")
)
