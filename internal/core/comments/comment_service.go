package comments

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"Murmur/internal/core/pagination"
)

const (
	MsgCommentCreated = "comment created"
	MsgCommentUpdated = "comment updated"
	MsgCommentDeleted = "comment deleted"
)

// Service defines the business logic interface for threaded comments.
// Thread reads are oldest first.
type Service interface {
	// GetPostComments lists every comment of a post, each with its direct-children count
	GetPostComments(ctx context.Context, postID string, skip, take int) ([]*CommentView, error)

	GetComment(ctx context.Context, commentID string) (*CommentView, error)

	// GetChildren lists the direct children of a comment
	GetChildren(ctx context.Context, commentID string, skip, take int) ([]*CommentView, error)

	CreateComment(ctx context.Context, callerID, postID string, req CreateCommentRequest) (*CreatedComment, error)
	UpdateComment(ctx context.Context, callerID, commentID string, req UpdateCommentRequest) (*MessageResponse, error)
	DeleteComment(ctx context.Context, callerID, commentID string) (*MessageResponse, error)
}

type commentService struct {
	repo   Repository
	logger *slog.Logger
	now    func() time.Time
}

// NewCommentService creates a new comment service
func NewCommentService(repo Repository, logger *slog.Logger) Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &commentService{
		repo:   repo,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (s *commentService) GetPostComments(ctx context.Context, postID string, skip, take int) ([]*CommentView, error) {
	page, err := pagination.New(skip, take)
	if err != nil {
		return nil, err
	}

	exists, err := s.repo.PostExists(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to check post: %w", err)
	}
	if !exists {
		return nil, ErrPostNotFound
	}

	result, err := s.repo.ListByPost(ctx, postID, page)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	return result, nil
}

func (s *commentService) GetComment(ctx context.Context, commentID string) (*CommentView, error) {
	return s.repo.GetView(ctx, commentID)
}

func (s *commentService) GetChildren(ctx context.Context, commentID string, skip, take int) ([]*CommentView, error) {
	page, err := pagination.New(skip, take)
	if err != nil {
		return nil, err
	}

	if _, err := s.repo.GetByID(ctx, commentID); err != nil {
		return nil, err
	}

	result, err := s.repo.ListChildren(ctx, commentID, page)
	if err != nil {
		return nil, fmt.Errorf("failed to list child comments: %w", err)
	}
	return result, nil
}

func (s *commentService) CreateComment(ctx context.Context, callerID, postID string, req CreateCommentRequest) (*CreatedComment, error) {
	if callerID == "" {
		return nil, ErrAuthRequired
	}

	body, err := validateBody(req.Body)
	if err != nil {
		return nil, err
	}

	exists, err := s.repo.PostExists(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to check post: %w", err)
	}
	if !exists {
		return nil, ErrPostNotFound
	}

	if req.ParentCommentID != nil {
		parent, err := s.repo.GetByID(ctx, *req.ParentCommentID)
		if err != nil {
			if IsNotFound(err) {
				return nil, ErrParentNotFound
			}
			return nil, fmt.Errorf("failed to load parent comment: %w", err)
		}
		if parent.PostID != postID {
			return nil, ErrParentOnOtherPost
		}
	}

	comment := &Comment{
		ID:              uuid.NewString(),
		PostID:          postID,
		AuthorID:        callerID,
		Body:            body,
		ParentCommentID: req.ParentCommentID,
		CreatedAt:       s.now(),
	}

	if err := s.repo.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	s.logger.Debug("comment created", "comment_id", comment.ID, "post_id", postID)

	return &CreatedComment{Message: MsgCommentCreated, CommentID: comment.ID}, nil
}

func (s *commentService) UpdateComment(ctx context.Context, callerID, commentID string, req UpdateCommentRequest) (*MessageResponse, error) {
	if callerID == "" {
		return nil, ErrAuthRequired
	}

	body, err := validateBody(req.Body)
	if err != nil {
		return nil, err
	}

	comment, err := s.repo.GetByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if comment.AuthorID != callerID {
		return nil, ErrNotAuthor
	}

	if err := s.repo.UpdateBody(ctx, commentID, body); err != nil {
		return nil, fmt.Errorf("failed to update comment: %w", err)
	}

	return &MessageResponse{Message: MsgCommentUpdated}, nil
}

func (s *commentService) DeleteComment(ctx context.Context, callerID, commentID string) (*MessageResponse, error) {
	if callerID == "" {
		return nil, ErrAuthRequired
	}

	comment, err := s.repo.GetByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if comment.AuthorID != callerID {
		return nil, ErrNotAuthor
	}

	if err := s.repo.Delete(ctx, commentID); err != nil {
		if errors.Is(err, ErrHasReplies) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to delete comment: %w", err)
	}

	return &MessageResponse{Message: MsgCommentDeleted}, nil
}

func validateBody(raw string) (string, error) {
	body := strings.TrimSpace(raw)
	if body == "" {
		return "", ErrBodyRequired
	}
	if utf8.RuneCountInString(body) > MaxBodyLength {
		return "", ErrBodyTooLong
	}
	return body, nil
}
