// Package memory is an in-process storage backend. It implements every
// repository interface with the same delete and uniqueness rules as the
// PostgreSQL schema, and is used for local runs and end-to-end tests.
package memory

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"Murmur/internal/core/comments"
	"Murmur/internal/core/pagination"
	"Murmur/internal/core/posts"
	"Murmur/internal/core/tags"
	"Murmur/internal/core/users"
)

type edge struct {
	from string
	to   string
}

// Store holds all rows behind a single lock
type Store struct {
	mu        sync.RWMutex
	users     map[string]*users.User
	posts     map[string]*posts.Post
	comments  map[string]*comments.Comment
	tags      map[string]*tags.Tag
	tagByName map[string]string          // name -> tag id
	postTags  map[string]map[string]bool // post id -> tag ids
	likes     map[edge]time.Time         // user -> post
	follows   map[edge]time.Time         // follower -> following
	clock     func() time.Time
}

// New creates an empty store
func New() *Store {
	return &Store{
		users:     make(map[string]*users.User),
		posts:     make(map[string]*posts.Post),
		comments:  make(map[string]*comments.Comment),
		tags:      make(map[string]*tags.Tag),
		tagByName: make(map[string]string),
		postTags:  make(map[string]map[string]bool),
		likes:     make(map[edge]time.Time),
		follows:   make(map[edge]time.Time),
		clock:     func() time.Time { return time.Now().UTC() },
	}
}

// AddUser registers an account. Accounts normally come from the identity
// provider, so this is only used for seeding and tests.
func (s *Store) AddUser(u users.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[u.ID]; ok {
		return fmt.Errorf("user %s already exists", u.ID)
	}
	for _, existing := range s.users {
		if existing.UserName == u.UserName {
			return fmt.Errorf("user name %q is taken", u.UserName)
		}
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = s.clock()
	}
	s.users[u.ID] = &u
	return nil
}

// deletePostLocked removes a post with its comments, likes and tag links.
// Replies pointing at it become top-level posts.
func (s *Store) deletePostLocked(postID string) {
	delete(s.posts, postID)
	delete(s.postTags, postID)

	for id, c := range s.comments {
		if c.PostID == postID {
			delete(s.comments, id)
		}
	}
	for e := range s.likes {
		if e.to == postID {
			delete(s.likes, e)
		}
	}
	for _, p := range s.posts {
		if p.ReplyToPostID != nil && *p.ReplyToPostID == postID {
			p.ReplyToPostID = nil
		}
	}
}

func (s *Store) likeCountLocked(postID string) int {
	n := 0
	for e := range s.likes {
		if e.to == postID {
			n++
		}
	}
	return n
}

func (s *Store) commentCountLocked(postID string) int {
	n := 0
	for _, c := range s.comments {
		if c.PostID == postID {
			n++
		}
	}
	return n
}

func (s *Store) userNameLocked(userID string) string {
	if u, ok := s.users[userID]; ok {
		return u.UserName
	}
	return ""
}

// paginate slices items according to skip/take, always returning a non-nil slice
func paginate[T any](items []T, p pagination.Page) []T {
	if p.Skip >= len(items) {
		return []T{}
	}
	end := p.Skip + p.Take
	if end > len(items) {
		end = len(items)
	}
	return items[p.Skip:end]
}

// sortByTime orders items by timestamp, breaking ties by id in the same direction
func sortByTime[T any](items []T, at func(T) time.Time, id func(T) string, ascending bool) {
	sort.SliceStable(items, func(i, j int) bool {
		ti, tj := at(items[i]), at(items[j])
		if !ti.Equal(tj) {
			if ascending {
				return ti.Before(tj)
			}
			return ti.After(tj)
		}
		if ascending {
			return id(items[i]) < id(items[j])
		}
		return id(items[i]) > id(items[j])
	})
}

func copyString(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
