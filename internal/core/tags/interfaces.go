package tags

import (
	"context"
	"time"

	"Murmur/internal/core/pagination"
)

// Service defines the business logic interface for tag discovery
type Service interface {
	// ListTags returns tags ordered by name, optionally filtered by a substring of the normalized name
	ListTags(ctx context.Context, skip, take int, query *string) ([]*TagSummary, error)

	// Trending ranks tags by posts created in the trailing window of days
	Trending(ctx context.Context, take, days int) ([]*TrendingTag, error)

	// PostsByTag lists posts carrying the tag, newest first
	PostsByTag(ctx context.Context, tagName string, skip, take int) (*TagPosts, error)
}

// Repository defines the data access interface for tags
type Repository interface {
	// List returns tags whose name contains query (all tags when query is empty)
	List(ctx context.Context, query string, page pagination.Page) ([]*TagSummary, error)

	// Trending counts posts created at or after since per tag,
	// ordered by count descending then name ascending
	Trending(ctx context.Context, since time.Time, take int) ([]*TrendingTag, error)

	// GetByName returns ErrTagNotFound when the name is unknown
	GetByName(ctx context.Context, name string) (*Tag, error)

	ListPosts(ctx context.Context, tagID string, page pagination.Page) ([]*TagPost, error)
}

// TrendingCache stores computed trending lists keyed by (take, days).
// A miss is reported as (nil, false, nil).
type TrendingCache interface {
	Get(ctx context.Context, take, days int) ([]*TrendingTag, bool, error)
	Set(ctx context.Context, take, days int, trending []*TrendingTag) error
}
