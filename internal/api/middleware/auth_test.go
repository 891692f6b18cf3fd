package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSigningKey = []byte("0123456789abcdef0123456789abcdef")

const (
	testIssuer   = "murmur-auth"
	testAudience = "murmur-api"
	testUserID   = "11111111-1111-4111-8111-111111111111"
)

func newTestAuth() *JWTAuth {
	return NewJWTAuth(testSigningKey, testIssuer, testAudience, nil)
}

// captureIdentity returns a handler recording the identity RequireAuth injected
func captureIdentity(called *bool, userID, userName *string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*called = true
		*userID = GetUserID(r)
		*userName = GetUserName(r)
		w.WriteHeader(http.StatusOK)
	})
}

func serveWithToken(t *testing.T, auth *JWTAuth, header string) (*httptest.ResponseRecorder, bool, string, string) {
	t.Helper()
	var called bool
	var userID, userName string
	handler := auth.RequireAuth(captureIdentity(&called, &userID, &userName))

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w, called, userID, userName
}

// signClaims signs an arbitrary claim set with the test key
func signClaims(t *testing.T, key []byte, claims map[string]interface{}) string {
	t.Helper()
	tok := jwt.New()
	for name, value := range claims {
		require.NoError(t, tok.Set(name, value))
	}
	signed, err := jwt.Sign(tok, jwt.WithKey(jwa.HS256, key))
	require.NoError(t, err)
	return string(signed)
}

func baseClaims() map[string]interface{} {
	now := time.Now()
	return map[string]interface{}{
		jwt.IssuerKey:     testIssuer,
		jwt.AudienceKey:   testAudience,
		jwt.IssuedAtKey:   now,
		jwt.ExpirationKey: now.Add(time.Hour),
	}
}

func TestRequireAuth_ValidToken(t *testing.T) {
	token, err := SignToken(testSigningKey, testIssuer, testAudience, Identity{UserID: testUserID, UserName: "alice"}, time.Hour)
	require.NoError(t, err)

	w, called, userID, userName := serveWithToken(t, newTestAuth(), "Bearer "+token)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, called)
	assert.Equal(t, testUserID, userID)
	assert.Equal(t, "alice", userName)
}

func TestRequireAuth_SubjectAndNameFallback(t *testing.T) {
	claims := baseClaims()
	claims[jwt.SubjectKey] = "22222222-2222-4222-8222-222222222222"
	claims["name"] = "bob"

	w, called, userID, userName := serveWithToken(t, newTestAuth(), "Bearer "+signClaims(t, testSigningKey, claims))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, called)
	assert.Equal(t, "22222222-2222-4222-8222-222222222222", userID)
	assert.Equal(t, "bob", userName)
}

func TestRequireAuth_NameIDWinsOverSubject(t *testing.T) {
	claims := baseClaims()
	claims[jwt.SubjectKey] = "someone-else"
	claims["nameid"] = testUserID

	w, _, userID, _ := serveWithToken(t, newTestAuth(), "Bearer "+signClaims(t, testSigningKey, claims))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, testUserID, userID)
}

func TestRequireAuth_Rejected(t *testing.T) {
	otherKey := []byte("ffffffffffffffffffffffffffffffff")

	expired := baseClaims()
	expired["nameid"] = testUserID
	expired[jwt.IssuedAtKey] = time.Now().Add(-2 * time.Hour)
	expired[jwt.ExpirationKey] = time.Now().Add(-time.Hour)

	wrongIssuer := baseClaims()
	wrongIssuer["nameid"] = testUserID
	wrongIssuer[jwt.IssuerKey] = "someone-else"

	wrongAudience := baseClaims()
	wrongAudience["nameid"] = testUserID
	wrongAudience[jwt.AudienceKey] = "other-api"

	notUUID := baseClaims()
	notUUID["nameid"] = "alice"

	noIdentity := baseClaims()

	valid := baseClaims()
	valid["nameid"] = testUserID

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"wrong scheme", "Basic dXNlcjpwYXNz"},
		{"garbage token", "Bearer not-a-jwt"},
		{"wrong key", "Bearer " + signClaims(t, otherKey, valid)},
		{"expired", "Bearer " + signClaims(t, testSigningKey, expired)},
		{"wrong issuer", "Bearer " + signClaims(t, testSigningKey, wrongIssuer)},
		{"wrong audience", "Bearer " + signClaims(t, testSigningKey, wrongAudience)},
		{"caller id not a uuid", "Bearer " + signClaims(t, testSigningKey, notUUID)},
		{"no caller id", "Bearer " + signClaims(t, testSigningKey, noIdentity)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, called, _, _ := serveWithToken(t, newTestAuth(), tt.header)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.False(t, called, "handler must not run")

			var body map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, "AuthRequired", body["error"])
			assert.NotEmpty(t, body["message"])
		})
	}
}

func TestSignToken_RequiresUserID(t *testing.T) {
	_, err := SignToken(testSigningKey, testIssuer, testAudience, Identity{}, time.Hour)
	assert.Error(t, err)
}

func TestGetUserID_Unauthenticated(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Empty(t, GetUserID(req))
	assert.Empty(t, GetUserName(req))
}

func TestSetTestUser(t *testing.T) {
	ctx := SetTestUser(context.Background(), testUserID, "alice")
	req := httptest.NewRequest(http.MethodGet, "/", nil).WithContext(ctx)

	assert.Equal(t, testUserID, GetUserID(req))
	assert.Equal(t, "alice", GetUserName(req))
}
