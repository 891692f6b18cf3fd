package comment

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Murmur/internal/api/middleware"
	"Murmur/internal/core/comments"
)

const (
	callerID  = "11111111-1111-4111-8111-111111111111"
	postID    = "aaaaaaaa-aaaa-4aaa-8aaa-aaaaaaaaaaaa"
	commentID = "cccccccc-cccc-4ccc-8ccc-cccccccccccc"
)

type mockCommentService struct {
	comments.Service // panics if an unexpected method is called

	created  *comments.CreateCommentRequest
	children func(ctx context.Context, commentID string, skip, take int) ([]*comments.CommentView, error)
	deleteFn func(ctx context.Context, callerID, commentID string) (*comments.MessageResponse, error)
}

func (m *mockCommentService) CreateComment(ctx context.Context, caller, post string, req comments.CreateCommentRequest) (*comments.CreatedComment, error) {
	m.created = &req
	if req.ParentCommentID != nil && *req.ParentCommentID == "missing" {
		return nil, comments.ErrParentNotFound
	}
	return &comments.CreatedComment{Message: "comment created", CommentID: commentID}, nil
}

func (m *mockCommentService) GetChildren(ctx context.Context, id string, skip, take int) ([]*comments.CommentView, error) {
	return m.children(ctx, id, skip, take)
}

func (m *mockCommentService) GetComment(ctx context.Context, id string) (*comments.CommentView, error) {
	return nil, comments.ErrCommentNotFound
}

func (m *mockCommentService) DeleteComment(ctx context.Context, caller, id string) (*comments.MessageResponse, error) {
	return m.deleteFn(ctx, caller, id)
}

func newRouter(svc comments.Service) http.Handler {
	create := NewCreateCommentHandler(svc)
	update := NewUpdateCommentHandler(svc)
	get := NewGetCommentsHandler(svc)

	r := chi.NewRouter()
	r.Get("/api/posts/{postId}/comments", get.HandleListForPost)
	r.Post("/api/posts/{postId}/comments", create.HandleCreate)
	r.Get("/api/comments/{commentId}", get.HandleGet)
	r.Get("/api/comments/{commentId}/children", get.HandleChildren)
	r.Patch("/api/comments/{commentId}", update.HandleUpdate)
	r.Delete("/api/comments/{commentId}", update.HandleDelete)
	return r
}

func do(h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req = req.WithContext(middleware.SetTestUser(req.Context(), callerID, "alice"))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestCreateComment(t *testing.T) {
	svc := &mockCommentService{}

	w := do(newRouter(svc), http.MethodPost, "/api/posts/"+postID+"/comments", `{"body":"nice"}`)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"message":"comment created","commentId":"`+commentID+`"}`, w.Body.String())
	require.NotNil(t, svc.created)
	assert.Equal(t, "nice", svc.created.Body)
	assert.Nil(t, svc.created.ParentCommentID)
}

func TestCreateComment_ParentNotFound(t *testing.T) {
	w := do(newRouter(&mockCommentService{}), http.MethodPost, "/api/posts/"+postID+"/comments",
		`{"body":"nice","parentCommentId":"missing"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"BadRequest","message":"parent comment not found"}`, w.Body.String())
}

func TestCreateComment_MalformedPostID(t *testing.T) {
	w := do(newRouter(&mockCommentService{}), http.MethodPost, "/api/posts/42/comments", `{"body":"x"}`)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"NotFound","message":"post not found"}`, w.Body.String())
}

func TestGetComment_NotFound(t *testing.T) {
	w := do(newRouter(&mockCommentService{}), http.MethodGet, "/api/comments/"+commentID, "")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"NotFound","message":"comment not found"}`, w.Body.String())
}

func TestGetChildren(t *testing.T) {
	svc := &mockCommentService{
		children: func(ctx context.Context, id string, skip, take int) ([]*comments.CommentView, error) {
			assert.Equal(t, commentID, id)
			assert.Equal(t, 0, skip)
			assert.Equal(t, 100, take)
			return []*comments.CommentView{{ID: "child", ParentCommentID: &id}}, nil
		},
	}

	w := do(newRouter(svc), http.MethodGet, "/api/comments/"+commentID+"/children?take=100", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"id":"child"`)
}

func TestDeleteComment_HasReplies(t *testing.T) {
	svc := &mockCommentService{
		deleteFn: func(context.Context, string, string) (*comments.MessageResponse, error) {
			return nil, comments.ErrHasReplies
		},
	}

	w := do(newRouter(svc), http.MethodDelete, "/api/comments/"+commentID, "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "has replies")
}
