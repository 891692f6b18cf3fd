package comments

import "time"

// MaxBodyLength is the longest comment body, in characters
const MaxBodyLength = 2000

// Comment represents threaded feedback attached to a post.
// A nested comment's parent always belongs to the same post.
type Comment struct {
	CreatedAt       time.Time `json:"createdAtUtc" db:"created_at"`
	ParentCommentID *string   `json:"parentCommentId,omitempty" db:"parent_comment_id"`
	ID              string    `json:"id" db:"id"`
	PostID          string    `json:"postId" db:"post_id"`
	AuthorID        string    `json:"authorId" db:"author_id"`
	Body            string    `json:"body" db:"body"`
}

// CommentView is a comment with its author name and direct-children count
type CommentView struct {
	CreatedAt       time.Time `json:"createdAtUtc"`
	ParentCommentID *string   `json:"parentCommentId"`
	ID              string    `json:"id"`
	PostID          string    `json:"postId"`
	AuthorID        string    `json:"authorId"`
	AuthorUserName  string    `json:"authorUserName"`
	Body            string    `json:"body"`
	ChildrenCount   int       `json:"childrenCount"`
}

// CreateCommentRequest contains parameters for commenting on a post
type CreateCommentRequest struct {
	ParentCommentID *string `json:"parentCommentId,omitempty"`
	Body            string  `json:"body"`
}

// UpdateCommentRequest contains parameters for editing a comment
type UpdateCommentRequest struct {
	Body string `json:"body"`
}

// CreatedComment is returned after a comment is created
type CreatedComment struct {
	Message   string `json:"message"`
	CommentID string `json:"commentId"`
}

// MessageResponse carries the outcome of a write that returns no entity
type MessageResponse struct {
	Message string `json:"message"`
}
