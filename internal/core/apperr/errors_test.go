package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"bad request", BadRequest("bad"), KindBadRequest},
		{"unauthorized", Unauthorized("who"), KindUnauthorized},
		{"forbidden", Forbidden("no"), KindForbidden},
		{"not found", NotFound("gone"), KindNotFound},
		{"wrapped", fmt.Errorf("outer: %w", NotFound("gone")), KindNotFound},
		{"plain error", errors.New("boom"), 0},
		{"nil", nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}

func TestSentinelIdentity(t *testing.T) {
	errPostNotFound := NotFound("post not found")
	wrapped := fmt.Errorf("load: %w", errPostNotFound)

	assert.True(t, errors.Is(wrapped, errPostNotFound))
	assert.False(t, errors.Is(wrapped, NotFound("post not found")), "distinct values must not compare equal")
	assert.True(t, IsNotFound(wrapped))
	assert.False(t, IsForbidden(wrapped))
	assert.Equal(t, "post not found", wrapped.(interface{ Unwrap() error }).Unwrap().Error())
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "BadRequest", KindBadRequest.String())
	assert.Equal(t, "Unauthorized", KindUnauthorized.String())
	assert.Equal(t, "Forbidden", KindForbidden.String())
	assert.Equal(t, "NotFound", KindNotFound.String())
	assert.Equal(t, "Unknown", Kind(0).String())
}
