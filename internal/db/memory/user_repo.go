package memory

import (
	"context"
	"time"

	"Murmur/internal/core/pagination"
	"Murmur/internal/core/users"
)

type userRepo struct {
	s *Store
}

// NewUserRepository returns a users.UserRepository backed by the store
func NewUserRepository(s *Store) users.UserRepository {
	return &userRepo{s: s}
}

func (r *userRepo) GetByID(ctx context.Context, userID string) (*users.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	u, ok := r.s.users[userID]
	if !ok {
		return nil, users.ErrUserNotFound
	}
	out := *u
	out.Bio = copyString(u.Bio)
	out.AvatarURL = copyString(u.AvatarURL)
	return &out, nil
}

func (r *userRepo) Exists(ctx context.Context, userID string) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	_, ok := r.s.users[userID]
	return ok, nil
}

func (r *userRepo) GetProfileStats(ctx context.Context, userID string) (*users.ProfileStats, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var stats users.ProfileStats
	for _, p := range r.s.posts {
		if p.AuthorID == userID {
			stats.PostCount++
		}
	}
	for _, c := range r.s.comments {
		if c.AuthorID == userID {
			stats.CommentCount++
		}
	}
	for e := range r.s.likes {
		if e.from == userID {
			stats.LikeCount++
		}
	}
	stats.FollowersCount = r.s.countEdgesLocked(func(e edge) bool { return e.to == userID })
	stats.FollowingCount = r.s.countEdgesLocked(func(e edge) bool { return e.from == userID })
	return &stats, nil
}

func (r *userRepo) UpdateProfile(ctx context.Context, userID string, upd users.ProfileUpdate) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[userID]
	if !ok {
		return users.ErrUserNotFound
	}
	if upd.SetBio {
		u.Bio = copyString(upd.Bio)
	}
	if upd.SetAvatarURL {
		u.AvatarURL = copyString(upd.AvatarURL)
	}
	return nil
}

func (r *userRepo) ListPosts(ctx context.Context, userID string, page pagination.Page) ([]*users.UserPost, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var items []*users.UserPost
	for _, p := range r.s.posts {
		if p.AuthorID != userID {
			continue
		}
		items = append(items, &users.UserPost{
			ID:            p.ID,
			Text:          p.Text,
			ReplyToPostID: copyString(p.ReplyToPostID),
			CreatedAt:     p.CreatedAt,
			LikeCount:     r.s.likeCountLocked(p.ID),
			CommentCount:  r.s.commentCountLocked(p.ID),
		})
	}
	sortByTime(items,
		func(p *users.UserPost) time.Time { return p.CreatedAt },
		func(p *users.UserPost) string { return p.ID },
		false)
	return paginate(items, page), nil
}

func (r *userRepo) ListComments(ctx context.Context, userID string, page pagination.Page) ([]*users.UserComment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var items []*users.UserComment
	for _, c := range r.s.comments {
		if c.AuthorID != userID {
			continue
		}
		items = append(items, &users.UserComment{
			ID:              c.ID,
			PostID:          c.PostID,
			Body:            c.Body,
			ParentCommentID: copyString(c.ParentCommentID),
			CreatedAt:       c.CreatedAt,
		})
	}
	sortByTime(items,
		func(c *users.UserComment) time.Time { return c.CreatedAt },
		func(c *users.UserComment) string { return c.ID },
		false)
	return paginate(items, page), nil
}

func (r *userRepo) ListLikedPosts(ctx context.Context, userID string, page pagination.Page) ([]*users.LikedPost, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var items []*users.LikedPost
	for e, likedAt := range r.s.likes {
		if e.from != userID {
			continue
		}
		p, ok := r.s.posts[e.to]
		if !ok {
			continue
		}
		items = append(items, &users.LikedPost{
			PostID:         p.ID,
			AuthorID:       p.AuthorID,
			AuthorUserName: r.s.userNameLocked(p.AuthorID),
			Text:           p.Text,
			PostCreatedAt:  p.CreatedAt,
			LikedAt:        likedAt,
		})
	}
	sortByTime(items,
		func(l *users.LikedPost) time.Time { return l.LikedAt },
		func(l *users.LikedPost) string { return l.PostID },
		false)
	return paginate(items, page), nil
}
