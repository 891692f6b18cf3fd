package users

import (
	"fmt"

	"Murmur/internal/core/apperr"
)

// Sentinel errors for common user operations
var (
	// ErrUserNotFound is returned when a user lookup finds no matching record
	ErrUserNotFound = apperr.NotFound("user not found")

	ErrBioTooLong       = apperr.BadRequest(fmt.Sprintf("bio must be at most %d characters", MaxBioLength))
	ErrAvatarURLTooLong = apperr.BadRequest(fmt.Sprintf("avatarUrl must be at most %d characters", MaxAvatarURLLength))
	ErrInvalidAvatarURL = apperr.BadRequest("avatarUrl must be an absolute URL")

	ErrAuthRequired = apperr.Unauthorized("authentication required")
)
