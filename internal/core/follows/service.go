package follows

import (
	"context"
	"fmt"
	"log/slog"

	"Murmur/internal/core/events"
	"Murmur/internal/core/pagination"
)

const (
	MsgFollowed         = "followed"
	MsgAlreadyFollowing = "already following"
	MsgUnfollowed       = "unfollowed"
	MsgNotFollowing     = "not following"
)

type followService struct {
	repo      Repository
	publisher events.Publisher
	logger    *slog.Logger
}

// NewFollowService creates a new follow service.
// publisher may be nil when activity events are disabled.
func NewFollowService(repo Repository, publisher events.Publisher, logger *slog.Logger) Service {
	if logger == nil {
		logger = slog.Default()
	}
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &followService{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
	}
}

func (s *followService) Follow(ctx context.Context, callerID, targetID string) (*MessageResponse, error) {
	if callerID == "" {
		return nil, ErrAuthRequired
	}
	if callerID == targetID {
		return nil, ErrSelfFollow
	}

	exists, err := s.repo.UserExists(ctx, targetID)
	if err != nil {
		return nil, fmt.Errorf("failed to check follow target: %w", err)
	}
	if !exists {
		return nil, ErrTargetNotFound
	}

	// Racing duplicates collapse on the (follower_id, following_id) key
	created, err := s.repo.Create(ctx, callerID, targetID)
	if err != nil {
		return nil, fmt.Errorf("failed to follow user: %w", err)
	}
	if !created {
		return &MessageResponse{Message: MsgAlreadyFollowing}, nil
	}

	if err := s.publisher.Publish(ctx, events.New(events.UserFollowed, callerID, targetID)); err != nil {
		s.logger.Warn("failed to publish follow event", "follower", callerID, "following", targetID, "error", err)
	}

	return &MessageResponse{Message: MsgFollowed}, nil
}

func (s *followService) Unfollow(ctx context.Context, callerID, targetID string) (*MessageResponse, error) {
	if callerID == "" {
		return nil, ErrAuthRequired
	}

	removed, err := s.repo.Delete(ctx, callerID, targetID)
	if err != nil {
		return nil, fmt.Errorf("failed to unfollow user: %w", err)
	}
	if !removed {
		return &MessageResponse{Message: MsgNotFollowing}, nil
	}

	return &MessageResponse{Message: MsgUnfollowed}, nil
}

func (s *followService) GetFollowers(ctx context.Context, userID string, skip, take int) (*FollowList, error) {
	return s.list(ctx, userID, skip, take, s.repo.CountFollowers, s.repo.ListFollowers)
}

func (s *followService) GetFollowing(ctx context.Context, userID string, skip, take int) (*FollowList, error) {
	return s.list(ctx, userID, skip, take, s.repo.CountFollowing, s.repo.ListFollowing)
}

func (s *followService) list(
	ctx context.Context,
	userID string,
	skip, take int,
	count func(context.Context, string) (int, error),
	list func(context.Context, string, pagination.Page) ([]*FollowUser, error),
) (*FollowList, error) {
	page, err := pagination.New(skip, take)
	if err != nil {
		return nil, err
	}

	exists, err := s.repo.UserExists(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to check user: %w", err)
	}
	if !exists {
		return nil, ErrUserNotFound
	}

	total, err := count(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count follow edges: %w", err)
	}

	items, err := list(ctx, userID, page)
	if err != nil {
		return nil, fmt.Errorf("failed to list follow edges: %w", err)
	}

	return &FollowList{UserID: userID, TotalCount: total, Items: items}, nil
}
