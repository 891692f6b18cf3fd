package memory

import (
	"context"
	"sort"
	"time"

	"Murmur/internal/core/pagination"
	"Murmur/internal/core/posts"
	"Murmur/internal/core/tags"

	"github.com/google/uuid"
)

type postRepo struct {
	s *Store
}

// NewPostRepository returns a posts.Repository backed by the store
func NewPostRepository(s *Store) posts.Repository {
	return &postRepo{s: s}
}

func (r *postRepo) Exists(ctx context.Context, postID string) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	_, ok := r.s.posts[postID]
	return ok, nil
}

func (r *postRepo) GetByID(ctx context.Context, postID string) (*posts.Post, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	p, ok := r.s.posts[postID]
	if !ok {
		return nil, posts.ErrPostNotFound
	}
	out := *p
	out.ReplyToPostID = copyString(p.ReplyToPostID)
	return &out, nil
}

func (r *postRepo) Create(ctx context.Context, post *posts.Post, tagNames []string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if post.ReplyToPostID != nil {
		if _, ok := r.s.posts[*post.ReplyToPostID]; !ok {
			return posts.ErrReplyTargetNotFound
		}
	}

	stored := *post
	stored.ReplyToPostID = copyString(post.ReplyToPostID)
	r.s.posts[post.ID] = &stored
	r.s.replaceTagsLocked(post.ID, tagNames)
	return nil
}

func (r *postRepo) Update(ctx context.Context, postID, text string, tagNames *[]string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.posts[postID]
	if !ok {
		return posts.ErrPostNotFound
	}
	p.Text = text
	if tagNames != nil {
		r.s.replaceTagsLocked(postID, *tagNames)
	}
	return nil
}

func (r *postRepo) Delete(ctx context.Context, postID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.posts[postID]; !ok {
		return posts.ErrPostNotFound
	}
	r.s.deletePostLocked(postID)
	return nil
}

func (r *postRepo) GetSummary(ctx context.Context, postID string) (*posts.PostSummary, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	p, ok := r.s.posts[postID]
	if !ok {
		return nil, posts.ErrPostNotFound
	}
	return r.s.summaryLocked(p), nil
}

func (r *postRepo) List(ctx context.Context, filter posts.ListFilter, page pagination.Page) ([]*posts.PostSummary, error) {
	return r.query(page, false, func(p *posts.Post) bool {
		if filter.AuthorID != nil && p.AuthorID != *filter.AuthorID {
			return false
		}
		if filter.Tag != nil && !r.s.hasTagLocked(p.ID, *filter.Tag) {
			return false
		}
		return true
	}), nil
}

func (r *postRepo) Feed(ctx context.Context, userID string, page pagination.Page) ([]*posts.PostSummary, error) {
	return r.query(page, false, func(p *posts.Post) bool {
		if p.AuthorID == userID {
			return true
		}
		_, following := r.s.follows[edge{from: userID, to: p.AuthorID}]
		return following
	}), nil
}

func (r *postRepo) Replies(ctx context.Context, postID string, page pagination.Page) ([]*posts.PostSummary, error) {
	return r.query(page, true, func(p *posts.Post) bool {
		return p.ReplyToPostID != nil && *p.ReplyToPostID == postID
	}), nil
}

func (r *postRepo) AddLike(ctx context.Context, userID, postID string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.posts[postID]; !ok {
		return false, posts.ErrPostNotFound
	}
	key := edge{from: userID, to: postID}
	if _, ok := r.s.likes[key]; ok {
		return false, nil
	}
	r.s.likes[key] = r.s.clock()
	return true, nil
}

func (r *postRepo) RemoveLike(ctx context.Context, userID, postID string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	key := edge{from: userID, to: postID}
	if _, ok := r.s.likes[key]; !ok {
		return false, nil
	}
	delete(r.s.likes, key)
	return true, nil
}

func (r *postRepo) CountLikes(ctx context.Context, postID string) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return r.s.likeCountLocked(postID), nil
}

func (r *postRepo) ListLikes(ctx context.Context, postID string, page pagination.Page) ([]*posts.LikeUser, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var likes []*posts.LikeUser
	for e, at := range r.s.likes {
		if e.to == postID {
			likes = append(likes, &posts.LikeUser{UserID: e.from, UserName: r.s.userNameLocked(e.from), LikedAt: at})
		}
	}
	sortByTime(likes,
		func(l *posts.LikeUser) time.Time { return l.LikedAt },
		func(l *posts.LikeUser) string { return l.UserID },
		false)
	return paginate(likes, page), nil
}

func (r *postRepo) query(page pagination.Page, ascending bool, match func(*posts.Post) bool) []*posts.PostSummary {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var matched []*posts.Post
	for _, p := range r.s.posts {
		if match(p) {
			matched = append(matched, p)
		}
	}
	sortByTime(matched,
		func(p *posts.Post) time.Time { return p.CreatedAt },
		func(p *posts.Post) string { return p.ID },
		ascending)

	result := []*posts.PostSummary{}
	for _, p := range paginate(matched, page) {
		result = append(result, r.s.summaryLocked(p))
	}
	return result
}

func (s *Store) summaryLocked(p *posts.Post) *posts.PostSummary {
	replies := 0
	for _, other := range s.posts {
		if other.ReplyToPostID != nil && *other.ReplyToPostID == p.ID {
			replies++
		}
	}

	return &posts.PostSummary{
		ID:             p.ID,
		AuthorID:       p.AuthorID,
		AuthorUserName: s.userNameLocked(p.AuthorID),
		Text:           p.Text,
		ReplyToPostID:  copyString(p.ReplyToPostID),
		CreatedAt:      p.CreatedAt,
		Tags:           s.tagNamesLocked(p.ID),
		LikeCount:      s.likeCountLocked(p.ID),
		CommentCount:   s.commentCountLocked(p.ID),
		ReplyCount:     replies,
	}
}

// replaceTagsLocked swaps a post's tag links for names, creating unknown tags
func (s *Store) replaceTagsLocked(postID string, names []string) {
	links := make(map[string]bool, len(names))
	for _, name := range names {
		tagID, ok := s.tagByName[name]
		if !ok {
			tagID = uuid.NewString()
			s.tags[tagID] = &tags.Tag{ID: tagID, Name: name, CreatedAt: s.clock()}
			s.tagByName[name] = tagID
		}
		links[tagID] = true
	}
	s.postTags[postID] = links
}

func (s *Store) hasTagLocked(postID, name string) bool {
	tagID, ok := s.tagByName[name]
	if !ok {
		return false
	}
	return s.postTags[postID][tagID]
}

func (s *Store) tagNamesLocked(postID string) []string {
	names := []string{}
	for tagID := range s.postTags[postID] {
		names = append(names, s.tags[tagID].Name)
	}
	sort.Strings(names)
	return names
}
