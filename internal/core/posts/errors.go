package posts

import (
	"fmt"

	"Murmur/internal/core/apperr"
	"Murmur/internal/core/tags"
)

// Sentinel errors for post operations
var (
	// ErrPostNotFound is returned when a post doesn't exist
	ErrPostNotFound = apperr.NotFound("post not found")

	// ErrReplyTargetNotFound is a validation error: the reply target is a field of the input
	ErrReplyTargetNotFound = apperr.BadRequest("reply target not found")

	ErrTextRequired = apperr.BadRequest("text is required")
	ErrTextTooLong  = apperr.BadRequest(fmt.Sprintf("text must be at most %d characters", MaxTextLength))
	ErrTooManyTags  = apperr.BadRequest(fmt.Sprintf("a post can have at most %d tags", tags.MaxTagsPerPost))

	// ErrNotAuthor is returned when the caller doesn't own the post
	ErrNotAuthor = apperr.Forbidden("only the author can modify this post")

	ErrAuthRequired = apperr.Unauthorized("authentication required")
)
