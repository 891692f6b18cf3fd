package tags

import "time"

// Tag is a normalized label attached to posts
type Tag struct {
	CreatedAt time.Time `json:"createdAtUtc" db:"created_at"`
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
}

// TagSummary is a tag annotated with the number of posts carrying it
type TagSummary struct {
	CreatedAt time.Time `json:"createdAtUtc"`
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	PostCount int       `json:"postCount"`
}

// TrendingTag is a tag ranked by posts created inside the trending window
type TrendingTag struct {
	TagID     string `json:"tagId"`
	Name      string `json:"name"`
	PostCount int    `json:"postCount"`
}

// TagPost is a post listed under a tag
type TagPost struct {
	CreatedAt      time.Time `json:"createdAtUtc"`
	ReplyToPostID  *string   `json:"replyToPostId"`
	ID             string    `json:"id"`
	AuthorID       string    `json:"authorId"`
	AuthorUserName string    `json:"authorUserName"`
	Text           string    `json:"text"`
	LikeCount      int       `json:"likeCount"`
	CommentCount   int       `json:"commentCount"`
}

// TagPosts is the posts-by-tag listing
type TagPosts struct {
	Tag   string     `json:"tag"`
	Items []*TagPost `json:"items"`
}
