package users

import (
	"context"

	"Murmur/internal/core/pagination"
)

// UserRepository defines the interface for user data persistence
type UserRepository interface {
	// GetByID returns ErrUserNotFound when no account has the id
	GetByID(ctx context.Context, userID string) (*User, error)

	Exists(ctx context.Context, userID string) (bool, error)

	// GetProfileStats counts posts, comments, likes given, followers and followings
	GetProfileStats(ctx context.Context, userID string) (*ProfileStats, error)

	// UpdateProfile writes only the fields flagged in upd, in a single statement.
	// Returns ErrUserNotFound when no account has the id.
	UpdateProfile(ctx context.Context, userID string, upd ProfileUpdate) error

	// ListPosts, ListComments and ListLikedPosts return newest first
	ListPosts(ctx context.Context, userID string, page pagination.Page) ([]*UserPost, error)
	ListComments(ctx context.Context, userID string, page pagination.Page) ([]*UserComment, error)
	ListLikedPosts(ctx context.Context, userID string, page pagination.Page) ([]*LikedPost, error)
}

// UserService defines the interface for user business logic
type UserService interface {
	GetProfile(ctx context.Context, userID string) (*Profile, error)
	GetMyProfile(ctx context.Context, callerID string) (*MyProfile, error)
	UpdateMyProfile(ctx context.Context, callerID string, req UpdateProfileRequest) (*MessageResponse, error)

	GetUserPosts(ctx context.Context, userID string, skip, take int) ([]*UserPost, error)
	GetUserComments(ctx context.Context, userID string, skip, take int) ([]*UserComment, error)
	GetLikedPosts(ctx context.Context, userID string, skip, take int) ([]*LikedPost, error)
}
