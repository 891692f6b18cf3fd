package posts

import (
	"context"

	"Murmur/internal/core/pagination"
)

// Service defines the business logic interface for posts
type Service interface {
	CreatePost(ctx context.Context, callerID string, req CreatePostRequest) (*CreatedPost, error)
	CreateReply(ctx context.Context, callerID, postID string, req CreateReplyRequest) (*CreatedPost, error)
	UpdatePost(ctx context.Context, callerID, postID string, req UpdatePostRequest) (*MessageResponse, error)
	DeletePost(ctx context.Context, callerID, postID string) (*MessageResponse, error)

	// LikePost and UnlikePost are idempotent: repeating them succeeds with an informational message
	LikePost(ctx context.Context, callerID, postID string) (*MessageResponse, error)
	UnlikePost(ctx context.Context, callerID, postID string) (*MessageResponse, error)
	GetLikes(ctx context.Context, postID string, skip, take int) (*PostLikes, error)

	ListPosts(ctx context.Context, req ListPostsRequest) ([]*PostSummary, error)
	GetFeed(ctx context.Context, callerID string, skip, take int) ([]*PostSummary, error)
	GetPost(ctx context.Context, postID string) (*PostSummary, error)
	GetReplies(ctx context.Context, postID string, skip, take int) ([]*PostSummary, error)
}

// Repository defines the data access interface for posts and their likes
type Repository interface {
	Exists(ctx context.Context, postID string) (bool, error)

	// GetByID returns ErrPostNotFound when the post doesn't exist
	GetByID(ctx context.Context, postID string) (*Post, error)

	// Create inserts the post and its tag associations in one transaction
	Create(ctx context.Context, post *Post, tagNames []string) error

	// Update changes the text and, when tagNames is non-nil, replaces the tag
	// associations. Both happen in one transaction.
	Update(ctx context.Context, postID, text string, tagNames *[]string) error

	// Delete removes the post together with its comments, likes and tag associations
	Delete(ctx context.Context, postID string) error

	// GetSummary returns ErrPostNotFound when the post doesn't exist
	GetSummary(ctx context.Context, postID string) (*PostSummary, error)

	// List returns posts newest first
	List(ctx context.Context, filter ListFilter, page pagination.Page) ([]*PostSummary, error)

	// Feed returns posts authored by userID or anyone userID follows, newest first
	Feed(ctx context.Context, userID string, page pagination.Page) ([]*PostSummary, error)

	// Replies returns direct replies oldest first
	Replies(ctx context.Context, postID string, page pagination.Page) ([]*PostSummary, error)

	// AddLike reports false when the like already existed
	AddLike(ctx context.Context, userID, postID string) (bool, error)

	// RemoveLike reports false when there was no like to remove
	RemoveLike(ctx context.Context, userID, postID string) (bool, error)

	CountLikes(ctx context.Context, postID string) (int, error)

	// ListLikes returns likers, most recent like first
	ListLikes(ctx context.Context, postID string, page pagination.Page) ([]*LikeUser, error)
}
