package memory

import (
	"fmt"
	"time"

	"Murmur/internal/core/comments"
	"Murmur/internal/core/posts"
	"Murmur/internal/core/users"
)

// Demo account ids. Tokens signed with these subjects work against a seeded store.
const (
	DemoAliceID = "11111111-1111-4111-8111-111111111111"
	DemoBobID   = "22222222-2222-4222-8222-222222222222"
	DemoCarolID = "33333333-3333-4333-8333-333333333333"
)

// Seed fills the store with a few accounts, posts and follow edges
func Seed(s *Store) error {
	base := time.Now().UTC().Add(-48 * time.Hour)

	accounts := []users.User{
		{ID: DemoAliceID, UserName: "alice", Email: "alice@example.com", CreatedAt: base},
		{ID: DemoBobID, UserName: "bob", Email: "bob@example.com", CreatedAt: base},
		{ID: DemoCarolID, UserName: "carol", Email: "carol@example.com", CreatedAt: base},
	}
	for _, u := range accounts {
		if err := s.AddUser(u); err != nil {
			return fmt.Errorf("failed to seed user %s: %w", u.UserName, err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	seedPost := func(id, author, text string, at time.Time, tagNames ...string) {
		s.posts[id] = &posts.Post{ID: id, AuthorID: author, Text: text, CreatedAt: at}
		s.replaceTagsLocked(id, tagNames)
	}
	seedPost("aaaaaaaa-0000-4000-8000-000000000001", DemoAliceID, "Hello from alice", base.Add(time.Hour), "intro", "golang")
	seedPost("aaaaaaaa-0000-4000-8000-000000000002", DemoBobID, "Bob checking in", base.Add(2*time.Hour), "intro")
	seedPost("aaaaaaaa-0000-4000-8000-000000000003", DemoCarolID, "Anyone tried the new release?", base.Add(3*time.Hour), "golang", "release")

	s.comments["cccccccc-0000-4000-8000-000000000001"] = &comments.Comment{
		ID:        "cccccccc-0000-4000-8000-000000000001",
		PostID:    "aaaaaaaa-0000-4000-8000-000000000001",
		AuthorID:  DemoBobID,
		Body:      "Welcome!",
		CreatedAt: base.Add(90 * time.Minute),
	}

	s.likes[edge{from: DemoBobID, to: "aaaaaaaa-0000-4000-8000-000000000001"}] = base.Add(100 * time.Minute)
	s.follows[edge{from: DemoAliceID, to: DemoBobID}] = base.Add(30 * time.Minute)
	s.follows[edge{from: DemoCarolID, to: DemoAliceID}] = base.Add(40 * time.Minute)
	return nil
}
