package follows

import (
	"context"

	"Murmur/internal/core/pagination"
)

// Service defines the business logic interface for the follow graph
type Service interface {
	// Follow is idempotent: following twice succeeds with "already following"
	Follow(ctx context.Context, callerID, targetID string) (*MessageResponse, error)

	// Unfollow is idempotent: unfollowing a user not followed succeeds with "not following"
	Unfollow(ctx context.Context, callerID, targetID string) (*MessageResponse, error)

	GetFollowers(ctx context.Context, userID string, skip, take int) (*FollowList, error)
	GetFollowing(ctx context.Context, userID string, skip, take int) (*FollowList, error)
}

// Repository defines the data access interface for follow edges
type Repository interface {
	UserExists(ctx context.Context, userID string) (bool, error)

	// Create reports false when the edge already existed
	Create(ctx context.Context, followerID, followingID string) (bool, error)

	// Delete reports false when there was no edge to remove
	Delete(ctx context.Context, followerID, followingID string) (bool, error)

	CountFollowers(ctx context.Context, userID string) (int, error)
	CountFollowing(ctx context.Context, userID string) (int, error)

	// ListFollowers and ListFollowing return edges most recent first
	ListFollowers(ctx context.Context, userID string, page pagination.Page) ([]*FollowUser, error)
	ListFollowing(ctx context.Context, userID string, page pagination.Page) ([]*FollowUser, error)
}
