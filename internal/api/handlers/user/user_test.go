package user

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Murmur/internal/api/middleware"
	"Murmur/internal/core/users"
)

const (
	callerID = "11111111-1111-4111-8111-111111111111"
	otherID  = "22222222-2222-4222-8222-222222222222"
)

type mockUserService struct {
	users.UserService

	updated *users.UpdateProfileRequest
	skip    int
	take    int
}

func (m *mockUserService) GetProfile(ctx context.Context, userID string) (*users.Profile, error) {
	if userID != otherID {
		return nil, users.ErrUserNotFound
	}
	return &users.Profile{
		ID:           otherID,
		UserName:     "bob",
		CreatedAt:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		ProfileStats: users.ProfileStats{PostCount: 3, FollowersCount: 1},
	}, nil
}

func (m *mockUserService) GetMyProfile(ctx context.Context, caller string) (*users.MyProfile, error) {
	if caller == "" {
		return nil, users.ErrAuthRequired
	}
	return &users.MyProfile{Email: "alice@example.com", Profile: users.Profile{ID: caller, UserName: "alice"}}, nil
}

func (m *mockUserService) UpdateMyProfile(ctx context.Context, caller string, req users.UpdateProfileRequest) (*users.MessageResponse, error) {
	m.updated = &req
	if req.AvatarURL != nil && *req.AvatarURL == "not a url" {
		return nil, users.ErrInvalidAvatarURL
	}
	return &users.MessageResponse{Message: "profile updated"}, nil
}

func (m *mockUserService) GetLikedPosts(ctx context.Context, userID string, skip, take int) ([]*users.LikedPost, error) {
	m.skip, m.take = skip, take
	return []*users.LikedPost{}, nil
}

func newRouter(svc users.UserService) http.Handler {
	profile := NewProfileHandler(svc)
	activity := NewActivityHandler(svc)

	r := chi.NewRouter()
	r.Get("/api/me", HandleMe)
	r.Get("/api/users/me", profile.HandleGetMyProfile)
	r.Patch("/api/users/me", profile.HandleUpdateMyProfile)
	r.Get("/api/users/{userId}", profile.HandleGetProfile)
	r.Get("/api/users/{userId}/liked-posts", activity.HandleLikedPosts)
	return r
}

func do(h http.Handler, method, target, body, caller string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if caller != "" {
		req = req.WithContext(middleware.SetTestUser(req.Context(), caller, "alice"))
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestGetProfile(t *testing.T) {
	router := newRouter(&mockUserService{})

	w := do(router, http.MethodGet, "/api/users/"+otherID, "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"userName":"bob"`)
	assert.Contains(t, w.Body.String(), `"postCount":3`)
	assert.Contains(t, w.Body.String(), `"bio":null`)
	assert.NotContains(t, w.Body.String(), "email")

	w = do(router, http.MethodGet, "/api/users/"+callerID, "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(router, http.MethodGet, "/api/users/bob", "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetMyProfile(t *testing.T) {
	router := newRouter(&mockUserService{})

	w := do(router, http.MethodGet, "/api/users/me", "", callerID)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"email":"alice@example.com"`)

	w = do(router, http.MethodGet, "/api/users/me", "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUpdateMyProfile(t *testing.T) {
	svc := &mockUserService{}
	router := newRouter(svc)

	w := do(router, http.MethodPatch, "/api/users/me", `{"bio":""}`, callerID)
	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, svc.updated.Bio)
	assert.Equal(t, "", *svc.updated.Bio)
	assert.Nil(t, svc.updated.AvatarURL)

	w = do(router, http.MethodPatch, "/api/users/me", `{"avatarUrl":"not a url"}`, callerID)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"BadRequest","message":"avatarUrl must be an absolute URL"}`, w.Body.String())
}

func TestLikedPosts_Paging(t *testing.T) {
	svc := &mockUserService{}

	w := do(newRouter(svc), http.MethodGet, "/api/users/"+otherID+"/liked-posts?skip=3", "", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", w.Body.String())
	assert.Equal(t, 3, svc.skip)
	assert.Equal(t, 20, svc.take)
}

func TestHandleMe(t *testing.T) {
	router := newRouter(&mockUserService{})

	w := do(router, http.MethodGet, "/api/me", "", callerID)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"userId":"`+callerID+`","userName":"alice"}`, w.Body.String())

	w = do(router, http.MethodGet, "/api/me", "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
