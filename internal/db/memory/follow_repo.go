package memory

import (
	"context"
	"time"

	"Murmur/internal/core/follows"
	"Murmur/internal/core/pagination"
)

type followRepo struct {
	s *Store
}

// NewFollowRepository returns a follows.Repository backed by the store
func NewFollowRepository(s *Store) follows.Repository {
	return &followRepo{s: s}
}

func (r *followRepo) UserExists(ctx context.Context, userID string) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	_, ok := r.s.users[userID]
	return ok, nil
}

func (r *followRepo) Create(ctx context.Context, followerID, followingID string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[followingID]; !ok {
		return false, follows.ErrTargetNotFound
	}
	key := edge{from: followerID, to: followingID}
	if _, ok := r.s.follows[key]; ok {
		return false, nil
	}
	r.s.follows[key] = r.s.clock()
	return true, nil
}

func (r *followRepo) Delete(ctx context.Context, followerID, followingID string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	key := edge{from: followerID, to: followingID}
	if _, ok := r.s.follows[key]; !ok {
		return false, nil
	}
	delete(r.s.follows, key)
	return true, nil
}

func (r *followRepo) CountFollowers(ctx context.Context, userID string) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return r.s.countEdgesLocked(func(e edge) bool { return e.to == userID }), nil
}

func (r *followRepo) CountFollowing(ctx context.Context, userID string) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return r.s.countEdgesLocked(func(e edge) bool { return e.from == userID }), nil
}

func (r *followRepo) ListFollowers(ctx context.Context, userID string, page pagination.Page) ([]*follows.FollowUser, error) {
	return r.list(page, func(e edge) (string, bool) { return e.from, e.to == userID }), nil
}

func (r *followRepo) ListFollowing(ctx context.Context, userID string, page pagination.Page) ([]*follows.FollowUser, error) {
	return r.list(page, func(e edge) (string, bool) { return e.to, e.from == userID }), nil
}

// list collects edges accepted by pick; pick returns the user to show for the edge
func (r *followRepo) list(page pagination.Page, pick func(edge) (string, bool)) []*follows.FollowUser {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var items []*follows.FollowUser
	for e, at := range r.s.follows {
		other, ok := pick(e)
		if !ok {
			continue
		}
		items = append(items, &follows.FollowUser{UserID: other, UserName: r.s.userNameLocked(other), FollowedAt: at})
	}
	sortByTime(items,
		func(f *follows.FollowUser) time.Time { return f.FollowedAt },
		func(f *follows.FollowUser) string { return f.UserID },
		false)
	return paginate(items, page)
}

func (s *Store) countEdgesLocked(match func(edge) bool) int {
	n := 0
	for e := range s.follows {
		if match(e) {
			n++
		}
	}
	return n
}
