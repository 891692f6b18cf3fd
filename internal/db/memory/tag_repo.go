package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"Murmur/internal/core/pagination"
	"Murmur/internal/core/tags"
)

type tagRepo struct {
	s *Store
}

// NewTagRepository returns a tags.Repository backed by the store
func NewTagRepository(s *Store) tags.Repository {
	return &tagRepo{s: s}
}

func (r *tagRepo) List(ctx context.Context, query string, page pagination.Page) ([]*tags.TagSummary, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var matched []*tags.TagSummary
	for _, t := range r.s.tags {
		if query != "" && !strings.Contains(t.Name, query) {
			continue
		}
		matched = append(matched, &tags.TagSummary{
			ID:        t.ID,
			Name:      t.Name,
			CreatedAt: t.CreatedAt,
			PostCount: r.s.tagPostCountLocked(t.ID, time.Time{}),
		})
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].Name < matched[j].Name })
	return paginate(matched, page), nil
}

func (r *tagRepo) Trending(ctx context.Context, since time.Time, take int) ([]*tags.TrendingTag, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var ranked []*tags.TrendingTag
	for _, t := range r.s.tags {
		n := r.s.tagPostCountLocked(t.ID, since)
		if n == 0 {
			continue
		}
		ranked = append(ranked, &tags.TrendingTag{TagID: t.ID, Name: t.Name, PostCount: n})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].PostCount != ranked[j].PostCount {
			return ranked[i].PostCount > ranked[j].PostCount
		}
		return ranked[i].Name < ranked[j].Name
	})
	return paginate(ranked, pagination.Page{Take: take}), nil
}

func (r *tagRepo) GetByName(ctx context.Context, name string) (*tags.Tag, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	tagID, ok := r.s.tagByName[name]
	if !ok {
		return nil, tags.ErrTagNotFound
	}
	out := *r.s.tags[tagID]
	return &out, nil
}

func (r *tagRepo) ListPosts(ctx context.Context, tagID string, page pagination.Page) ([]*tags.TagPost, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var items []*tags.TagPost
	for postID, links := range r.s.postTags {
		if !links[tagID] {
			continue
		}
		p := r.s.posts[postID]
		items = append(items, &tags.TagPost{
			ID:             p.ID,
			AuthorID:       p.AuthorID,
			AuthorUserName: r.s.userNameLocked(p.AuthorID),
			Text:           p.Text,
			ReplyToPostID:  copyString(p.ReplyToPostID),
			CreatedAt:      p.CreatedAt,
			LikeCount:      r.s.likeCountLocked(p.ID),
			CommentCount:   r.s.commentCountLocked(p.ID),
		})
	}
	sortByTime(items,
		func(p *tags.TagPost) time.Time { return p.CreatedAt },
		func(p *tags.TagPost) string { return p.ID },
		false)
	return paginate(items, page), nil
}

// tagPostCountLocked counts posts carrying the tag created at or after since
func (s *Store) tagPostCountLocked(tagID string, since time.Time) int {
	n := 0
	for postID, links := range s.postTags {
		if !links[tagID] {
			continue
		}
		if p, ok := s.posts[postID]; ok && !p.CreatedAt.Before(since) {
			n++
		}
	}
	return n
}
