package follows

import "Murmur/internal/core/apperr"

var (
	// ErrSelfFollow is a business-rule violation, not a missing entity
	ErrSelfFollow = apperr.BadRequest("cannot follow yourself")

	// ErrTargetNotFound indicates the user to follow doesn't exist
	ErrTargetNotFound = apperr.NotFound("user to follow not found")

	ErrUserNotFound = apperr.NotFound("user not found")
	ErrAuthRequired = apperr.Unauthorized("authentication required")
)
