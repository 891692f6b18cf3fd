package comments

import (
	"errors"
	"fmt"

	"Murmur/internal/core/apperr"
)

var (
	// ErrCommentNotFound indicates the requested comment doesn't exist
	ErrCommentNotFound = apperr.NotFound("comment not found")

	// ErrPostNotFound indicates the post being commented on doesn't exist
	ErrPostNotFound = apperr.NotFound("post not found")

	// ErrParentNotFound indicates the parentCommentId on the input references nothing
	ErrParentNotFound = apperr.BadRequest("parent comment not found")

	// ErrParentOnOtherPost indicates the parent comment belongs to a different post
	ErrParentOnOtherPost = apperr.BadRequest("parent comment must belong to the same post")

	// ErrHasReplies indicates the comment still has child comments
	ErrHasReplies = apperr.BadRequest("comment has replies and cannot be deleted")

	ErrBodyRequired = apperr.BadRequest("body is required")
	ErrBodyTooLong  = apperr.BadRequest(fmt.Sprintf("body must be at most %d characters", MaxBodyLength))

	// ErrNotAuthor indicates the caller doesn't own the comment
	ErrNotAuthor = apperr.Forbidden("only the author can modify this comment")

	ErrAuthRequired = apperr.Unauthorized("authentication required")
)

// IsNotFound checks if an error is a "not found" error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrCommentNotFound) || errors.Is(err, ErrPostNotFound)
}
