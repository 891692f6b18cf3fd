package posts

import "time"

const (
	// MaxTextLength is the longest post text, in characters
	MaxTextLength = 280
)

// Post represents a short user-authored message in the database.
// ReplyToPostID links a reply to its parent; replies are only ever read one level deep.
type Post struct {
	CreatedAt     time.Time `json:"createdAtUtc" db:"created_at"`
	ReplyToPostID *string   `json:"replyToPostId,omitempty" db:"reply_to_post_id"`
	ID            string    `json:"id" db:"id"`
	AuthorID      string    `json:"authorId" db:"author_id"`
	Text          string    `json:"text" db:"text"`
}

// PostSummary is the read model returned by every post listing
type PostSummary struct {
	CreatedAt      time.Time `json:"createdAtUtc"`
	ReplyToPostID  *string   `json:"replyToPostId"`
	ID             string    `json:"id"`
	AuthorID       string    `json:"authorId"`
	AuthorUserName string    `json:"authorUserName"`
	Text           string    `json:"text"`
	Tags           []string  `json:"tags"`
	LikeCount      int       `json:"likeCount"`
	CommentCount   int       `json:"commentCount"`
	ReplyCount     int       `json:"replyCount"`
}

// LikeUser is a user who liked a post
type LikeUser struct {
	LikedAt  time.Time `json:"likedAtUtc"`
	UserID   string    `json:"userId"`
	UserName string    `json:"userName"`
}

// PostLikes is a page of likers plus the total like count
type PostLikes struct {
	PostID     string      `json:"postId"`
	Items      []*LikeUser `json:"items"`
	TotalCount int         `json:"totalCount"`
}

// CreatePostRequest represents input for creating a post or a reply
type CreatePostRequest struct {
	ReplyToPostID *string  `json:"replyToPostId,omitempty"`
	Text          string   `json:"text"`
	Tags          []string `json:"tags,omitempty"`
}

// CreateReplyRequest represents input for replying to an existing post
type CreateReplyRequest struct {
	Text string   `json:"text"`
	Tags []string `json:"tags,omitempty"`
}

// UpdatePostRequest represents input for editing a post.
// A nil Tags leaves the tag set untouched; a non-nil empty slice clears it.
type UpdatePostRequest struct {
	Tags *[]string `json:"tags"`
	Text string    `json:"text"`
}

// ListPostsRequest filters the public post listing
type ListPostsRequest struct {
	AuthorID *string
	Tag      *string
	Skip     int
	Take     int
}

// ListFilter is the repository-level filter for the post listing.
// Tag is already normalized.
type ListFilter struct {
	AuthorID *string
	Tag      *string
}

// CreatedPost is returned after a post or reply is created
type CreatedPost struct {
	Message string `json:"message"`
	PostID  string `json:"postId"`
}

// MessageResponse carries the outcome of a write that returns no entity
type MessageResponse struct {
	Message string `json:"message"`
}
