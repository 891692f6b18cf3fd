package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

// Context keys for storing caller identity
type contextKey string

const (
	UserIDKey   contextKey = "user_id"
	UserNameKey contextKey = "user_name"
)

// Claim names carrying the caller identity. The identity provider emits the
// short-form nameid/unique_name claims; sub/name are accepted as fallbacks.
const (
	claimNameID     = "nameid"
	claimUniqueName = "unique_name"
	claimName       = "name"
)

const clockSkew = 30 * time.Second

// JWTAuth verifies HS256 bearer tokens issued by the identity provider
type JWTAuth struct {
	key      []byte
	issuer   string
	audience string
	logger   *slog.Logger
}

// NewJWTAuth creates the auth middleware. Tokens must carry the given issuer and audience.
func NewJWTAuth(signingKey []byte, issuer, audience string, logger *slog.Logger) *JWTAuth {
	if logger == nil {
		logger = slog.Default()
	}
	return &JWTAuth{
		key:      signingKey,
		issuer:   issuer,
		audience: audience,
		logger:   logger,
	}
}

// RequireAuth rejects requests without a valid token with 401.
// On success the caller id and user name are injected into the request context.
func (m *JWTAuth) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			writeAuthError(w, "Missing Authorization header")
			return
		}
		if !strings.HasPrefix(authHeader, "Bearer ") {
			writeAuthError(w, "Invalid Authorization header format. Expected: Bearer <token>")
			return
		}

		raw := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		userID, userName, err := m.verify(raw)
		if err != nil {
			m.logger.Warn("auth failure",
				"ip", r.RemoteAddr,
				"method", r.Method,
				"path", r.URL.Path,
				"error", err,
			)
			writeAuthError(w, "Invalid or expired token")
			return
		}

		ctx := context.WithValue(r.Context(), UserIDKey, userID)
		ctx = context.WithValue(ctx, UserNameKey, userName)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// verify checks signature, issuer, audience and expiry, then extracts the identity claims
func (m *JWTAuth) verify(raw string) (userID, userName string, err error) {
	token, err := jwt.Parse([]byte(raw),
		jwt.WithKey(jwa.HS256, m.key),
		jwt.WithValidate(true),
		jwt.WithIssuer(m.issuer),
		jwt.WithAudience(m.audience),
		jwt.WithAcceptableSkew(clockSkew),
	)
	if err != nil {
		return "", "", err
	}

	userID = stringClaim(token, claimNameID)
	if userID == "" {
		userID = token.Subject()
	}
	id, err := uuid.Parse(userID)
	if err != nil {
		return "", "", fmt.Errorf("caller id %q is not a UUID", userID)
	}

	userName = stringClaim(token, claimUniqueName)
	if userName == "" {
		userName = stringClaim(token, claimName)
	}
	return id.String(), userName, nil
}

func stringClaim(token jwt.Token, name string) string {
	v, ok := token.Get(name)
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}

// Identity is the subject of a token minted by SignToken
type Identity struct {
	UserID   string
	UserName string
}

// SignToken mints an HS256 token the middleware accepts. Used by the dev token
// tool and tests; production tokens come from the identity provider.
func SignToken(signingKey []byte, issuer, audience string, id Identity, ttl time.Duration) (string, error) {
	if id.UserID == "" {
		return "", errors.New("user id is required")
	}
	now := time.Now()

	token := jwt.New()
	claims := map[string]interface{}{
		jwt.SubjectKey:    id.UserID,
		jwt.IssuerKey:     issuer,
		jwt.AudienceKey:   audience,
		jwt.IssuedAtKey:   now,
		jwt.ExpirationKey: now.Add(ttl),
		claimNameID:       id.UserID,
		claimUniqueName:   id.UserName,
	}
	for name, value := range claims {
		if err := token.Set(name, value); err != nil {
			return "", fmt.Errorf("failed to set claim %s: %w", name, err)
		}
	}

	signed, err := jwt.Sign(token, jwt.WithKey(jwa.HS256, signingKey))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return string(signed), nil
}

// GetUserID extracts the caller id from the request context.
// Returns empty string if not authenticated.
func GetUserID(r *http.Request) string {
	id, _ := r.Context().Value(UserIDKey).(string)
	return id
}

// GetUserName extracts the caller's user name from the request context
func GetUserName(r *http.Request) string {
	name, _ := r.Context().Value(UserNameKey).(string)
	return name
}

// SetTestUser sets the caller identity in the context.
// This function should ONLY be used in tests to mock authenticated users.
func SetTestUser(ctx context.Context, userID, userName string) context.Context {
	ctx = context.WithValue(ctx, UserIDKey, userID)
	return context.WithValue(ctx, UserNameKey, userName)
}

// writeAuthError writes a JSON error response for authentication failures
func writeAuthError(w http.ResponseWriter, message string) {
	writeJSONError(w, http.StatusUnauthorized, "AuthRequired", message)
}

func writeJSONError(w http.ResponseWriter, status int, errorType, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(map[string]string{
		"error":   errorType,
		"message": message,
	}); err != nil {
		slog.Error("failed to write error response", "error", err)
	}
}
