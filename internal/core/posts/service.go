package posts

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"Murmur/internal/core/events"
	"Murmur/internal/core/pagination"
	"Murmur/internal/core/tags"
)

const (
	MsgPostCreated  = "post created"
	MsgPostUpdated  = "post updated"
	MsgPostDeleted  = "post deleted"
	MsgPostLiked    = "post liked"
	MsgAlreadyLiked = "post already liked"
	MsgLikeRemoved  = "like removed"
	MsgNotLiked     = "post was not liked"
)

type postService struct {
	repo      Repository
	publisher events.Publisher
	logger    *slog.Logger
	now       func() time.Time
}

// NewPostService creates a new post service.
// publisher may be nil when activity events are disabled.
func NewPostService(repo Repository, publisher events.Publisher, logger *slog.Logger) Service {
	if logger == nil {
		logger = slog.Default()
	}
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &postService{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (s *postService) CreatePost(ctx context.Context, callerID string, req CreatePostRequest) (*CreatedPost, error) {
	if callerID == "" {
		return nil, ErrAuthRequired
	}

	text, err := validateText(req.Text)
	if err != nil {
		return nil, err
	}

	if req.ReplyToPostID != nil {
		exists, err := s.repo.Exists(ctx, *req.ReplyToPostID)
		if err != nil {
			return nil, fmt.Errorf("failed to check reply target: %w", err)
		}
		if !exists {
			return nil, ErrReplyTargetNotFound
		}
	}

	tagNames, err := normalizeTags(req.Tags)
	if err != nil {
		return nil, err
	}

	post := &Post{
		ID:            uuid.NewString(),
		AuthorID:      callerID,
		Text:          text,
		ReplyToPostID: req.ReplyToPostID,
		CreatedAt:     s.now(),
	}

	if err := s.repo.Create(ctx, post, tagNames); err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	s.publish(ctx, events.New(events.PostCreated, callerID, post.ID))

	return &CreatedPost{Message: MsgPostCreated, PostID: post.ID}, nil
}

func (s *postService) CreateReply(ctx context.Context, callerID, postID string, req CreateReplyRequest) (*CreatedPost, error) {
	return s.CreatePost(ctx, callerID, CreatePostRequest{
		Text:          req.Text,
		Tags:          req.Tags,
		ReplyToPostID: &postID,
	})
}

func (s *postService) UpdatePost(ctx context.Context, callerID, postID string, req UpdatePostRequest) (*MessageResponse, error) {
	if callerID == "" {
		return nil, ErrAuthRequired
	}

	text, err := validateText(req.Text)
	if err != nil {
		return nil, err
	}

	post, err := s.repo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post.AuthorID != callerID {
		return nil, ErrNotAuthor
	}

	var tagNames *[]string
	if req.Tags != nil {
		names, err := normalizeTags(*req.Tags)
		if err != nil {
			return nil, err
		}
		tagNames = &names
	}

	if err := s.repo.Update(ctx, postID, text, tagNames); err != nil {
		return nil, fmt.Errorf("failed to update post: %w", err)
	}

	return &MessageResponse{Message: MsgPostUpdated}, nil
}

func (s *postService) DeletePost(ctx context.Context, callerID, postID string) (*MessageResponse, error) {
	if callerID == "" {
		return nil, ErrAuthRequired
	}

	post, err := s.repo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post.AuthorID != callerID {
		return nil, ErrNotAuthor
	}

	if err := s.repo.Delete(ctx, postID); err != nil {
		return nil, fmt.Errorf("failed to delete post: %w", err)
	}

	return &MessageResponse{Message: MsgPostDeleted}, nil
}

func (s *postService) LikePost(ctx context.Context, callerID, postID string) (*MessageResponse, error) {
	if callerID == "" {
		return nil, ErrAuthRequired
	}

	if err := s.requirePost(ctx, postID); err != nil {
		return nil, err
	}

	// A concurrent duplicate loses on the (user_id, post_id) key and lands here as not created
	created, err := s.repo.AddLike(ctx, callerID, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to like post: %w", err)
	}
	if !created {
		return &MessageResponse{Message: MsgAlreadyLiked}, nil
	}

	s.publish(ctx, events.New(events.PostLiked, callerID, postID))

	return &MessageResponse{Message: MsgPostLiked}, nil
}

func (s *postService) UnlikePost(ctx context.Context, callerID, postID string) (*MessageResponse, error) {
	if callerID == "" {
		return nil, ErrAuthRequired
	}

	if err := s.requirePost(ctx, postID); err != nil {
		return nil, err
	}

	removed, err := s.repo.RemoveLike(ctx, callerID, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to unlike post: %w", err)
	}
	if !removed {
		return &MessageResponse{Message: MsgNotLiked}, nil
	}

	return &MessageResponse{Message: MsgLikeRemoved}, nil
}

func (s *postService) GetLikes(ctx context.Context, postID string, skip, take int) (*PostLikes, error) {
	page, err := pagination.New(skip, take)
	if err != nil {
		return nil, err
	}

	if err := s.requirePost(ctx, postID); err != nil {
		return nil, err
	}

	total, err := s.repo.CountLikes(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to count likes: %w", err)
	}

	items, err := s.repo.ListLikes(ctx, postID, page)
	if err != nil {
		return nil, fmt.Errorf("failed to list likes: %w", err)
	}

	return &PostLikes{PostID: postID, TotalCount: total, Items: items}, nil
}

func (s *postService) ListPosts(ctx context.Context, req ListPostsRequest) ([]*PostSummary, error) {
	page, err := pagination.New(req.Skip, req.Take)
	if err != nil {
		return nil, err
	}

	filter := ListFilter{AuthorID: req.AuthorID}
	if req.Tag != nil && strings.TrimSpace(*req.Tag) != "" {
		tag := tags.NormalizeOne(*req.Tag)
		filter.Tag = &tag
	}

	result, err := s.repo.List(ctx, filter, page)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	return result, nil
}

func (s *postService) GetFeed(ctx context.Context, callerID string, skip, take int) ([]*PostSummary, error) {
	if callerID == "" {
		return nil, ErrAuthRequired
	}

	page, err := pagination.New(skip, take)
	if err != nil {
		return nil, err
	}

	feed, err := s.repo.Feed(ctx, callerID, page)
	if err != nil {
		return nil, fmt.Errorf("failed to load feed: %w", err)
	}
	return feed, nil
}

func (s *postService) GetPost(ctx context.Context, postID string) (*PostSummary, error) {
	return s.repo.GetSummary(ctx, postID)
}

func (s *postService) GetReplies(ctx context.Context, postID string, skip, take int) ([]*PostSummary, error) {
	page, err := pagination.New(skip, take)
	if err != nil {
		return nil, err
	}

	if err := s.requirePost(ctx, postID); err != nil {
		return nil, err
	}

	replies, err := s.repo.Replies(ctx, postID, page)
	if err != nil {
		return nil, fmt.Errorf("failed to list replies: %w", err)
	}
	return replies, nil
}

func (s *postService) requirePost(ctx context.Context, postID string) error {
	exists, err := s.repo.Exists(ctx, postID)
	if err != nil {
		return fmt.Errorf("failed to check post: %w", err)
	}
	if !exists {
		return ErrPostNotFound
	}
	return nil
}

// publish delivers an activity event after commit. Failures are logged only.
func (s *postService) publish(ctx context.Context, event events.Event) {
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("failed to publish activity event",
			"type", event.Type, "subject", event.SubjectID, "error", err)
	}
}

func validateText(raw string) (string, error) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return "", ErrTextRequired
	}
	if utf8.RuneCountInString(text) > MaxTextLength {
		return "", ErrTextTooLong
	}
	return text, nil
}

func normalizeTags(raw []string) ([]string, error) {
	names := tags.NormalizeMany(raw)
	if len(names) > tags.MaxTagsPerPost {
		return nil, ErrTooManyTags
	}
	return names, nil
}
