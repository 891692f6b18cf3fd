package apperr

import "errors"

// Kind classifies an expected failure of a service operation.
// The HTTP layer maps each kind to exactly one status code.
type Kind int

const (
	KindBadRequest Kind = iota + 1
	KindUnauthorized
	KindForbidden
	KindNotFound
)

// String returns the kind name used in JSON error bodies
func (k Kind) String() string {
	switch k {
	case KindBadRequest:
		return "BadRequest"
	case KindUnauthorized:
		return "Unauthorized"
	case KindForbidden:
		return "Forbidden"
	case KindNotFound:
		return "NotFound"
	default:
		return "Unknown"
	}
}

// Error is a typed, expected failure carrying a human-readable message.
// Anything that is not an *Error is an infrastructure failure.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// BadRequest reports malformed input, invalid cross-references or business-rule violations
func BadRequest(message string) *Error {
	return &Error{Kind: KindBadRequest, Message: message}
}

// Unauthorized reports a missing or unresolvable caller identity
func Unauthorized(message string) *Error {
	return &Error{Kind: KindUnauthorized, Message: message}
}

// Forbidden reports an authenticated caller acting on a resource they don't own
func Forbidden(message string) *Error {
	return &Error{Kind: KindForbidden, Message: message}
}

// NotFound reports that the referenced primary entity does not exist
func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

// KindOf returns the kind of err, or 0 when err is not a typed service error
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return 0
}

// IsBadRequest checks if err is a BadRequest-class error
func IsBadRequest(err error) bool {
	return KindOf(err) == KindBadRequest
}

// IsUnauthorized checks if err is an Unauthorized-class error
func IsUnauthorized(err error) bool {
	return KindOf(err) == KindUnauthorized
}

// IsForbidden checks if err is a Forbidden-class error
func IsForbidden(err error) bool {
	return KindOf(err) == KindForbidden
}

// IsNotFound checks if err is a NotFound-class error
func IsNotFound(err error) bool {
	return KindOf(err) == KindNotFound
}
