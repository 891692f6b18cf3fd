package comments

import (
	"context"

	"Murmur/internal/core/pagination"
)

// Repository defines the data access interface for comments
type Repository interface {
	PostExists(ctx context.Context, postID string) (bool, error)

	// GetByID returns ErrCommentNotFound when the comment doesn't exist
	GetByID(ctx context.Context, commentID string) (*Comment, error)

	// GetView returns ErrCommentNotFound when the comment doesn't exist
	GetView(ctx context.Context, commentID string) (*CommentView, error)

	// ListByPost returns all comments of a post, oldest first
	ListByPost(ctx context.Context, postID string, page pagination.Page) ([]*CommentView, error)

	// ListChildren returns direct children of a comment, oldest first
	ListChildren(ctx context.Context, parentID string, page pagination.Page) ([]*CommentView, error)

	Create(ctx context.Context, comment *Comment) error
	UpdateBody(ctx context.Context, commentID, body string) error

	// Delete returns ErrHasReplies when child comments still reference it
	Delete(ctx context.Context, commentID string) error
}
