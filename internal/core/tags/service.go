package tags

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"Murmur/internal/core/pagination"
)

const (
	MaxTrendingTake = 100
	MaxTrendingDays = 365
)

type tagService struct {
	repo   Repository
	cache  TrendingCache
	logger *slog.Logger
	now    func() time.Time
}

// NewTagService creates a new tag service.
// cache may be nil, in which case trending is always computed by the repository.
func NewTagService(repo Repository, cache TrendingCache, logger *slog.Logger) Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &tagService{
		repo:   repo,
		cache:  cache,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (s *tagService) ListTags(ctx context.Context, skip, take int, query *string) ([]*TagSummary, error) {
	page, err := pagination.New(skip, take)
	if err != nil {
		return nil, err
	}

	q := ""
	if query != nil {
		q = NormalizeOne(*query)
	}

	result, err := s.repo.List(ctx, q, page)
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	return result, nil
}

func (s *tagService) Trending(ctx context.Context, take, days int) ([]*TrendingTag, error) {
	if take < 1 || take > MaxTrendingTake {
		return nil, ErrInvalidTrendingTake
	}
	if days < 1 || days > MaxTrendingDays {
		return nil, ErrInvalidTrendingDays
	}

	if s.cache != nil {
		cached, ok, err := s.cache.Get(ctx, take, days)
		if err != nil {
			s.logger.Warn("trending cache read failed", "take", take, "days", days, "error", err)
		} else if ok {
			return cached, nil
		}
	}

	since := s.now().AddDate(0, 0, -days)
	trending, err := s.repo.Trending(ctx, since, take)
	if err != nil {
		return nil, fmt.Errorf("failed to compute trending tags: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, take, days, trending); err != nil {
			s.logger.Warn("trending cache write failed", "take", take, "days", days, "error", err)
		}
	}

	return trending, nil
}

func (s *tagService) PostsByTag(ctx context.Context, tagName string, skip, take int) (*TagPosts, error) {
	page, err := pagination.New(skip, take)
	if err != nil {
		return nil, err
	}

	name := NormalizeOne(tagName)
	if name == "" {
		return nil, ErrInvalidTagName
	}

	tag, err := s.repo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}

	items, err := s.repo.ListPosts(ctx, tag.ID, page)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts for tag %q: %w", tag.Name, err)
	}

	return &TagPosts{Tag: tag.Name, Items: items}, nil
}
