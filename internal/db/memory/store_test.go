package memory

import (
	"context"
	"testing"
	"time"

	"Murmur/internal/core/comments"
	"Murmur/internal/core/pagination"
	"Murmur/internal/core/posts"
	"Murmur/internal/core/users"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var firstPage = pagination.Page{Skip: 0, Take: 20}

func newSeededUsers(t *testing.T) *Store {
	t.Helper()
	s := New()
	require.NoError(t, s.AddUser(users.User{ID: "alice", UserName: "alice", Email: "a@example.com"}))
	require.NoError(t, s.AddUser(users.User{ID: "bob", UserName: "bob", Email: "b@example.com"}))
	return s
}

func TestAddUser_RejectsDuplicates(t *testing.T) {
	s := newSeededUsers(t)

	assert.Error(t, s.AddUser(users.User{ID: "alice", UserName: "other"}))
	assert.Error(t, s.AddUser(users.User{ID: "someone", UserName: "bob"}))
}

func TestPostDelete_CascadesAndDetachesReplies(t *testing.T) {
	s := newSeededUsers(t)
	ctx := context.Background()
	postRepo := NewPostRepository(s)
	commentRepo := NewCommentRepository(s)
	now := time.Now().UTC()

	require.NoError(t, postRepo.Create(ctx, &posts.Post{ID: "p1", AuthorID: "alice", Text: "root", CreatedAt: now}, []string{"go"}))
	parent := "p1"
	require.NoError(t, postRepo.Create(ctx, &posts.Post{ID: "p2", AuthorID: "bob", Text: "reply", ReplyToPostID: &parent, CreatedAt: now.Add(time.Second)}, nil))
	require.NoError(t, commentRepo.Create(ctx, &comments.Comment{ID: "c1", PostID: "p1", AuthorID: "bob", Body: "hi", CreatedAt: now}))
	_, err := postRepo.AddLike(ctx, "bob", "p1")
	require.NoError(t, err)

	require.NoError(t, postRepo.Delete(ctx, "p1"))

	_, err = commentRepo.GetByID(ctx, "c1")
	assert.ErrorIs(t, err, comments.ErrCommentNotFound)

	likes, err := postRepo.CountLikes(ctx, "p1")
	require.NoError(t, err)
	assert.Zero(t, likes)

	reply, err := postRepo.GetByID(ctx, "p2")
	require.NoError(t, err)
	assert.Nil(t, reply.ReplyToPostID)

	// tags outlive the posts that used them
	tagRepo := NewTagRepository(s)
	tag, err := tagRepo.GetByName(ctx, "go")
	require.NoError(t, err)
	tagPosts, err := tagRepo.ListPosts(ctx, tag.ID, firstPage)
	require.NoError(t, err)
	assert.Empty(t, tagPosts)
}

func TestCommentDelete_BlockedByChildren(t *testing.T) {
	s := newSeededUsers(t)
	ctx := context.Background()
	postRepo := NewPostRepository(s)
	repo := NewCommentRepository(s)
	now := time.Now().UTC()

	require.NoError(t, postRepo.Create(ctx, &posts.Post{ID: "p1", AuthorID: "alice", Text: "root", CreatedAt: now}, nil))
	require.NoError(t, repo.Create(ctx, &comments.Comment{ID: "c1", PostID: "p1", AuthorID: "bob", Body: "parent", CreatedAt: now}))
	parent := "c1"
	require.NoError(t, repo.Create(ctx, &comments.Comment{ID: "c2", PostID: "p1", AuthorID: "alice", Body: "child", ParentCommentID: &parent, CreatedAt: now.Add(time.Second)}))

	view, err := repo.GetView(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, 1, view.ChildrenCount)
	assert.Equal(t, "bob", view.AuthorUserName)

	assert.ErrorIs(t, repo.Delete(ctx, "c1"), comments.ErrHasReplies)
	require.NoError(t, repo.Delete(ctx, "c2"))
	require.NoError(t, repo.Delete(ctx, "c1"))
}

func TestTags_ReusedAndReplaced(t *testing.T) {
	s := newSeededUsers(t)
	ctx := context.Background()
	postRepo := NewPostRepository(s)
	tagRepo := NewTagRepository(s)
	now := time.Now().UTC()

	require.NoError(t, postRepo.Create(ctx, &posts.Post{ID: "p1", AuthorID: "alice", Text: "one", CreatedAt: now}, []string{"go", "rust"}))
	require.NoError(t, postRepo.Create(ctx, &posts.Post{ID: "p2", AuthorID: "bob", Text: "two", CreatedAt: now.Add(time.Second)}, []string{"go"}))

	all, err := tagRepo.List(ctx, "", firstPage)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "go", all[0].Name)
	assert.Equal(t, 2, all[0].PostCount)

	replacement := []string{"zig"}
	require.NoError(t, postRepo.Update(ctx, "p1", "one", &replacement))

	summary, err := postRepo.GetSummary(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, []string{"zig"}, summary.Tags)

	filtered, err := tagRepo.List(ctx, "us", firstPage)
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, "rust", filtered[0].Name)
	assert.Zero(t, filtered[0].PostCount)
}

func TestTrending_OrderAndWindow(t *testing.T) {
	s := newSeededUsers(t)
	ctx := context.Background()
	postRepo := NewPostRepository(s)
	tagRepo := NewTagRepository(s)
	now := time.Now().UTC()

	require.NoError(t, postRepo.Create(ctx, &posts.Post{ID: "old", AuthorID: "alice", Text: "old", CreatedAt: now.AddDate(0, 0, -30)}, []string{"rust", "rust2"}))
	require.NoError(t, postRepo.Create(ctx, &posts.Post{ID: "p1", AuthorID: "alice", Text: "a", CreatedAt: now}, []string{"go", "beta"}))
	require.NoError(t, postRepo.Create(ctx, &posts.Post{ID: "p2", AuthorID: "bob", Text: "b", CreatedAt: now}, []string{"go", "alpha"}))

	trending, err := tagRepo.Trending(ctx, now.AddDate(0, 0, -7), 10)
	require.NoError(t, err)

	names := make([]string, 0, len(trending))
	for _, tag := range trending {
		names = append(names, tag.Name)
	}
	assert.Equal(t, []string{"go", "alpha", "beta"}, names)
	assert.Equal(t, 2, trending[0].PostCount)

	top, err := tagRepo.Trending(ctx, now.AddDate(0, 0, -7), 1)
	require.NoError(t, err)
	assert.Len(t, top, 1)
}

func TestFeed_OwnAndFollowedPosts(t *testing.T) {
	s := newSeededUsers(t)
	require.NoError(t, s.AddUser(users.User{ID: "carol", UserName: "carol"}))
	ctx := context.Background()
	postRepo := NewPostRepository(s)
	followRepo := NewFollowRepository(s)
	now := time.Now().UTC()

	require.NoError(t, postRepo.Create(ctx, &posts.Post{ID: "pa", AuthorID: "alice", Text: "a", CreatedAt: now}, nil))
	require.NoError(t, postRepo.Create(ctx, &posts.Post{ID: "pb", AuthorID: "bob", Text: "b", CreatedAt: now.Add(time.Second)}, nil))
	require.NoError(t, postRepo.Create(ctx, &posts.Post{ID: "pc", AuthorID: "carol", Text: "c", CreatedAt: now.Add(2 * time.Second)}, nil))

	created, err := followRepo.Create(ctx, "alice", "bob")
	require.NoError(t, err)
	assert.True(t, created)
	created, err = followRepo.Create(ctx, "alice", "bob")
	require.NoError(t, err)
	assert.False(t, created)

	feed, err := postRepo.Feed(ctx, "alice", firstPage)
	require.NoError(t, err)
	require.Len(t, feed, 2)
	assert.Equal(t, "pb", feed[0].ID)
	assert.Equal(t, "pa", feed[1].ID)

	followers, err := followRepo.ListFollowers(ctx, "bob", firstPage)
	require.NoError(t, err)
	require.Len(t, followers, 1)
	assert.Equal(t, "alice", followers[0].UserName)

	removed, err := followRepo.Delete(ctx, "alice", "bob")
	require.NoError(t, err)
	assert.True(t, removed)
	removed, err = followRepo.Delete(ctx, "alice", "bob")
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestPagination_SkipPastEnd(t *testing.T) {
	s := newSeededUsers(t)
	ctx := context.Background()
	postRepo := NewPostRepository(s)

	require.NoError(t, postRepo.Create(ctx, &posts.Post{ID: "p1", AuthorID: "alice", Text: "a", CreatedAt: time.Now()}, nil))

	result, err := postRepo.List(ctx, posts.ListFilter{}, pagination.Page{Skip: 5, Take: 20})
	require.NoError(t, err)
	assert.NotNil(t, result)
	assert.Empty(t, result)
}

func TestUserProfile(t *testing.T) {
	s := newSeededUsers(t)
	ctx := context.Background()
	repo := NewUserRepository(s)
	bio := "hi there"

	require.NoError(t, repo.UpdateProfile(ctx, "alice", users.ProfileUpdate{Bio: &bio, SetBio: true}))
	bio = "mutated"

	u, err := repo.GetByID(ctx, "alice")
	require.NoError(t, err)
	require.NotNil(t, u.Bio)
	assert.Equal(t, "hi there", *u.Bio)
	assert.Nil(t, u.AvatarURL)

	// Unflagged fields are left alone, flagged nil clears
	avatar := "https://example.com/a.png"
	require.NoError(t, repo.UpdateProfile(ctx, "alice", users.ProfileUpdate{AvatarURL: &avatar, SetAvatarURL: true}))
	u, _ = repo.GetByID(ctx, "alice")
	require.NotNil(t, u.Bio)
	assert.Equal(t, "hi there", *u.Bio)
	require.NotNil(t, u.AvatarURL)
	assert.Equal(t, avatar, *u.AvatarURL)

	require.NoError(t, repo.UpdateProfile(ctx, "alice", users.ProfileUpdate{SetBio: true}))
	u, _ = repo.GetByID(ctx, "alice")
	assert.Nil(t, u.Bio)
	assert.NotNil(t, u.AvatarURL)

	assert.ErrorIs(t, repo.UpdateProfile(ctx, "ghost", users.ProfileUpdate{}), users.ErrUserNotFound)
}

// interleavingUserRepo runs a second edit just before the first one is written
type interleavingUserRepo struct {
	users.UserRepository
	before func()
}

func (r *interleavingUserRepo) UpdateProfile(ctx context.Context, userID string, upd users.ProfileUpdate) error {
	if r.before != nil {
		before := r.before
		r.before = nil
		before()
	}
	return r.UserRepository.UpdateProfile(ctx, userID, upd)
}

func TestUpdateMyProfile_InterleavedEditsKeepBothFields(t *testing.T) {
	s := newSeededUsers(t)
	ctx := context.Background()
	repo := &interleavingUserRepo{UserRepository: NewUserRepository(s)}
	svc := users.NewUserService(repo, nil)

	avatar := "https://example.com/a.png"
	repo.before = func() {
		_, err := svc.UpdateMyProfile(ctx, "alice", users.UpdateProfileRequest{AvatarURL: &avatar})
		require.NoError(t, err)
	}

	bio := "new bio"
	_, err := svc.UpdateMyProfile(ctx, "alice", users.UpdateProfileRequest{Bio: &bio})
	require.NoError(t, err)

	u, err := repo.GetByID(ctx, "alice")
	require.NoError(t, err)
	require.NotNil(t, u.Bio)
	assert.Equal(t, "new bio", *u.Bio)
	require.NotNil(t, u.AvatarURL)
	assert.Equal(t, avatar, *u.AvatarURL)
}

func TestSeed(t *testing.T) {
	s := New()
	require.NoError(t, Seed(s))
	ctx := context.Background()

	stats, err := NewUserRepository(s).GetProfileStats(ctx, DemoAliceID)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.PostCount)
	assert.Equal(t, 1, stats.FollowersCount)
	assert.Equal(t, 1, stats.FollowingCount)

	feed, err := NewPostRepository(s).Feed(ctx, DemoAliceID, firstPage)
	require.NoError(t, err)
	assert.Len(t, feed, 2)
}
