package follows

import "time"

// Follow is a directed edge from follower to followee.
// At most one edge exists per ordered pair and a user never follows themselves.
type Follow struct {
	CreatedAt   time.Time `json:"createdAtUtc" db:"created_at"`
	FollowerID  string    `json:"followerId" db:"follower_id"`
	FollowingID string    `json:"followingId" db:"following_id"`
}

// FollowUser is one side of a follow edge as shown in follower/following lists
type FollowUser struct {
	FollowedAt time.Time `json:"followedAtUtc"`
	UserID     string    `json:"userId"`
	UserName   string    `json:"userName"`
}

// FollowList is a page of follow edges plus the total edge count
type FollowList struct {
	UserID     string        `json:"userId"`
	Items      []*FollowUser `json:"items"`
	TotalCount int           `json:"totalCount"`
}

// MessageResponse carries the outcome of a follow or unfollow
type MessageResponse struct {
	Message string `json:"message"`
}
