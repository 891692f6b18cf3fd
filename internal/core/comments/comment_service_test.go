package comments

import (
	"context"
	"errors"
	"strings"
	"testing"

	"Murmur/internal/core/apperr"
	"Murmur/internal/core/pagination"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockCommentRepository is a mock implementation of Repository
type MockCommentRepository struct {
	mock.Mock
}

func (m *MockCommentRepository) PostExists(ctx context.Context, postID string) (bool, error) {
	args := m.Called(ctx, postID)
	return args.Bool(0), args.Error(1)
}

func (m *MockCommentRepository) GetByID(ctx context.Context, commentID string) (*Comment, error) {
	args := m.Called(ctx, commentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Comment), args.Error(1)
}

func (m *MockCommentRepository) GetView(ctx context.Context, commentID string) (*CommentView, error) {
	args := m.Called(ctx, commentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*CommentView), args.Error(1)
}

func (m *MockCommentRepository) ListByPost(ctx context.Context, postID string, page pagination.Page) ([]*CommentView, error) {
	args := m.Called(ctx, postID, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*CommentView), args.Error(1)
}

func (m *MockCommentRepository) ListChildren(ctx context.Context, parentID string, page pagination.Page) ([]*CommentView, error) {
	args := m.Called(ctx, parentID, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*CommentView), args.Error(1)
}

func (m *MockCommentRepository) Create(ctx context.Context, comment *Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockCommentRepository) UpdateBody(ctx context.Context, commentID, body string) error {
	args := m.Called(ctx, commentID, body)
	return args.Error(0)
}

func (m *MockCommentRepository) Delete(ctx context.Context, commentID string) error {
	args := m.Called(ctx, commentID)
	return args.Error(0)
}

func strPtr(s string) *string {
	return &s
}

func TestCreateComment_TopLevel(t *testing.T) {
	repo := new(MockCommentRepository)
	svc := NewCommentService(repo, nil)
	ctx := context.Background()

	repo.On("PostExists", ctx, "p1").Return(true, nil)
	repo.On("Create", ctx, mock.MatchedBy(func(c *Comment) bool {
		return c.PostID == "p1" && c.AuthorID == "user-a" && c.Body == "nice post" && c.ParentCommentID == nil
	})).Return(nil)

	result, err := svc.CreateComment(ctx, "user-a", "p1", CreateCommentRequest{Body: "  nice post "})

	require.NoError(t, err)
	assert.Equal(t, MsgCommentCreated, result.Message)
	assert.NotEmpty(t, result.CommentID)
	repo.AssertExpectations(t)
}

func TestCreateComment_Nested(t *testing.T) {
	repo := new(MockCommentRepository)
	svc := NewCommentService(repo, nil)
	ctx := context.Background()

	repo.On("PostExists", ctx, "p1").Return(true, nil)
	repo.On("GetByID", ctx, "c1").Return(&Comment{ID: "c1", PostID: "p1"}, nil)
	repo.On("Create", ctx, mock.MatchedBy(func(c *Comment) bool {
		return c.ParentCommentID != nil && *c.ParentCommentID == "c1"
	})).Return(nil)

	_, err := svc.CreateComment(ctx, "user-a", "p1", CreateCommentRequest{Body: "agreed", ParentCommentID: strPtr("c1")})

	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestCreateComment_ParentOnDifferentPost(t *testing.T) {
	repo := new(MockCommentRepository)
	svc := NewCommentService(repo, nil)
	ctx := context.Background()

	repo.On("PostExists", ctx, "p1").Return(true, nil)
	repo.On("GetByID", ctx, "c9").Return(&Comment{ID: "c9", PostID: "p2"}, nil)

	_, err := svc.CreateComment(ctx, "user-a", "p1", CreateCommentRequest{Body: "x", ParentCommentID: strPtr("c9")})

	assert.ErrorIs(t, err, ErrParentOnOtherPost)
	assert.True(t, apperr.IsBadRequest(err))
	repo.AssertNotCalled(t, "Create")
}

func TestCreateComment_MissingParentIsBadRequest(t *testing.T) {
	repo := new(MockCommentRepository)
	svc := NewCommentService(repo, nil)
	ctx := context.Background()

	repo.On("PostExists", ctx, "p1").Return(true, nil)
	repo.On("GetByID", ctx, "ghost").Return(nil, ErrCommentNotFound)

	_, err := svc.CreateComment(ctx, "user-a", "p1", CreateCommentRequest{Body: "x", ParentCommentID: strPtr("ghost")})

	assert.ErrorIs(t, err, ErrParentNotFound)
	assert.True(t, apperr.IsBadRequest(err))
}

func TestCreateComment_MissingPostIsNotFound(t *testing.T) {
	repo := new(MockCommentRepository)
	svc := NewCommentService(repo, nil)
	ctx := context.Background()

	repo.On("PostExists", ctx, "p1").Return(false, nil)

	_, err := svc.CreateComment(ctx, "user-a", "p1", CreateCommentRequest{Body: "x"})

	assert.ErrorIs(t, err, ErrPostNotFound)
	assert.True(t, apperr.IsNotFound(err))
}

func TestCreateComment_BodyValidation(t *testing.T) {
	repo := new(MockCommentRepository)
	svc := NewCommentService(repo, nil)
	ctx := context.Background()

	_, err := svc.CreateComment(ctx, "user-a", "p1", CreateCommentRequest{Body: "  "})
	assert.ErrorIs(t, err, ErrBodyRequired)

	_, err = svc.CreateComment(ctx, "user-a", "p1", CreateCommentRequest{Body: strings.Repeat("a", MaxBodyLength+1)})
	assert.ErrorIs(t, err, ErrBodyTooLong)

	assert.True(t, apperr.IsBadRequest(err))
	repo.AssertNotCalled(t, "PostExists")
}

func TestUpdateComment(t *testing.T) {
	ctx := context.Background()

	t.Run("owner", func(t *testing.T) {
		repo := new(MockCommentRepository)
		svc := NewCommentService(repo, nil)
		repo.On("GetByID", ctx, "c1").Return(&Comment{ID: "c1", AuthorID: "user-a"}, nil)
		repo.On("UpdateBody", ctx, "c1", "edited").Return(nil)

		result, err := svc.UpdateComment(ctx, "user-a", "c1", UpdateCommentRequest{Body: " edited "})
		require.NoError(t, err)
		assert.Equal(t, MsgCommentUpdated, result.Message)
	})

	t.Run("non owner", func(t *testing.T) {
		repo := new(MockCommentRepository)
		svc := NewCommentService(repo, nil)
		repo.On("GetByID", ctx, "c1").Return(&Comment{ID: "c1", AuthorID: "user-a"}, nil)

		_, err := svc.UpdateComment(ctx, "user-b", "c1", UpdateCommentRequest{Body: "edited"})
		assert.True(t, apperr.IsForbidden(err))
		repo.AssertNotCalled(t, "UpdateBody")
	})

	t.Run("missing", func(t *testing.T) {
		repo := new(MockCommentRepository)
		svc := NewCommentService(repo, nil)
		repo.On("GetByID", ctx, "c1").Return(nil, ErrCommentNotFound)

		_, err := svc.UpdateComment(ctx, "user-a", "c1", UpdateCommentRequest{Body: "edited"})
		assert.True(t, apperr.IsNotFound(err))
	})
}

func TestDeleteComment(t *testing.T) {
	ctx := context.Background()

	t.Run("owner", func(t *testing.T) {
		repo := new(MockCommentRepository)
		svc := NewCommentService(repo, nil)
		repo.On("GetByID", ctx, "c1").Return(&Comment{ID: "c1", AuthorID: "user-a"}, nil)
		repo.On("Delete", ctx, "c1").Return(nil)

		result, err := svc.DeleteComment(ctx, "user-a", "c1")
		require.NoError(t, err)
		assert.Equal(t, MsgCommentDeleted, result.Message)
	})

	t.Run("non owner", func(t *testing.T) {
		repo := new(MockCommentRepository)
		svc := NewCommentService(repo, nil)
		repo.On("GetByID", ctx, "c1").Return(&Comment{ID: "c1", AuthorID: "user-a"}, nil)

		_, err := svc.DeleteComment(ctx, "user-b", "c1")
		assert.ErrorIs(t, err, ErrNotAuthor)
	})

	t.Run("has replies", func(t *testing.T) {
		repo := new(MockCommentRepository)
		svc := NewCommentService(repo, nil)
		repo.On("GetByID", ctx, "c1").Return(&Comment{ID: "c1", AuthorID: "user-a"}, nil)
		repo.On("Delete", ctx, "c1").Return(ErrHasReplies)

		_, err := svc.DeleteComment(ctx, "user-a", "c1")
		assert.ErrorIs(t, err, ErrHasReplies)
		assert.True(t, apperr.IsBadRequest(err))
	})

	t.Run("storage failure", func(t *testing.T) {
		repo := new(MockCommentRepository)
		svc := NewCommentService(repo, nil)
		dbErr := errors.New("timeout")
		repo.On("GetByID", ctx, "c1").Return(&Comment{ID: "c1", AuthorID: "user-a"}, nil)
		repo.On("Delete", ctx, "c1").Return(dbErr)

		_, err := svc.DeleteComment(ctx, "user-a", "c1")
		assert.ErrorIs(t, err, dbErr)
		assert.Equal(t, apperr.Kind(0), apperr.KindOf(err))
	})
}

func TestGetPostComments(t *testing.T) {
	repo := new(MockCommentRepository)
	svc := NewCommentService(repo, nil)
	ctx := context.Background()

	views := []*CommentView{{ID: "c1", ChildrenCount: 2}, {ID: "c2"}}
	repo.On("PostExists", ctx, "p1").Return(true, nil)
	repo.On("ListByPost", ctx, "p1", pagination.Page{Skip: 0, Take: 20}).Return(views, nil)
	repo.On("PostExists", ctx, "p2").Return(false, nil)

	result, err := svc.GetPostComments(ctx, "p1", 0, 20)
	require.NoError(t, err)
	assert.Equal(t, views, result)

	_, err = svc.GetPostComments(ctx, "p2", 0, 20)
	assert.ErrorIs(t, err, ErrPostNotFound)

	_, err = svc.GetPostComments(ctx, "p1", -1, 20)
	assert.ErrorIs(t, err, pagination.ErrInvalidSkip)
}

func TestGetChildren(t *testing.T) {
	repo := new(MockCommentRepository)
	svc := NewCommentService(repo, nil)
	ctx := context.Background()

	children := []*CommentView{{ID: "c2", ParentCommentID: strPtr("c1")}}
	repo.On("GetByID", ctx, "c1").Return(&Comment{ID: "c1"}, nil)
	repo.On("ListChildren", ctx, "c1", pagination.Page{Skip: 0, Take: 5}).Return(children, nil)
	repo.On("GetByID", ctx, "gone").Return(nil, ErrCommentNotFound)

	result, err := svc.GetChildren(ctx, "c1", 0, 5)
	require.NoError(t, err)
	assert.Equal(t, children, result)

	_, err = svc.GetChildren(ctx, "gone", 0, 5)
	assert.True(t, apperr.IsNotFound(err))
}

func TestGetComment(t *testing.T) {
	repo := new(MockCommentRepository)
	svc := NewCommentService(repo, nil)
	ctx := context.Background()

	repo.On("GetView", ctx, "c1").Return(&CommentView{ID: "c1", AuthorUserName: "alice"}, nil)

	result, err := svc.GetComment(ctx, "c1")

	require.NoError(t, err)
	assert.Equal(t, "alice", result.AuthorUserName)
}
