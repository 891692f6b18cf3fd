package users

import "time"

const (
	MaxBioLength       = 500
	MaxAvatarURLLength = 1000
)

// User represents an account in the database.
// Accounts are created by the identity provider; this service only reads them
// and edits the profile fields.
type User struct {
	CreatedAt time.Time `json:"createdAtUtc" db:"created_at"`
	Bio       *string   `json:"bio,omitempty" db:"bio"`
	AvatarURL *string   `json:"avatarUrl,omitempty" db:"avatar_url"`
	ID        string    `json:"id" db:"id"`
	UserName  string    `json:"userName" db:"user_name"`
	Email     string    `json:"-" db:"email"`
}

// ProfileStats contains aggregated activity counts for a user
type ProfileStats struct {
	PostCount      int `json:"postCount"`
	CommentCount   int `json:"commentCount"`
	LikeCount      int `json:"likeCount"`
	FollowersCount int `json:"followersCount"`
	FollowingCount int `json:"followingCount"`
}

// Profile is the public view of a user
type Profile struct {
	CreatedAt time.Time `json:"createdAtUtc"`
	Bio       *string   `json:"bio"`
	AvatarURL *string   `json:"avatarUrl"`
	ID        string    `json:"id"`
	UserName  string    `json:"userName"`
	ProfileStats
}

// MyProfile is the caller's own profile, including the private contact field
type MyProfile struct {
	Email string `json:"email"`
	Profile
}

// ProfileUpdate is a validated profile edit. Only fields whose Set flag is
// true are written; a set field with a nil value is cleared.
type ProfileUpdate struct {
	Bio          *string
	AvatarURL    *string
	SetBio       bool
	SetAvatarURL bool
}

// UpdateProfileRequest edits profile fields.
// A nil field is left untouched; an empty string clears it.
type UpdateProfileRequest struct {
	Bio       *string `json:"bio"`
	AvatarURL *string `json:"avatarUrl"`
}

// UserPost is a post in a user's post listing
type UserPost struct {
	CreatedAt     time.Time `json:"createdAtUtc"`
	ReplyToPostID *string   `json:"replyToPostId"`
	ID            string    `json:"id"`
	Text          string    `json:"text"`
	LikeCount     int       `json:"likeCount"`
	CommentCount  int       `json:"commentCount"`
}

// UserComment is a comment in a user's comment listing
type UserComment struct {
	CreatedAt       time.Time `json:"createdAtUtc"`
	ParentCommentID *string   `json:"parentCommentId"`
	ID              string    `json:"id"`
	PostID          string    `json:"postId"`
	Body            string    `json:"body"`
}

// LikedPost is a post the user liked, with both the post and like timestamps
type LikedPost struct {
	PostCreatedAt  time.Time `json:"postCreatedAtUtc"`
	LikedAt        time.Time `json:"likedAtUtc"`
	PostID         string    `json:"postId"`
	AuthorID       string    `json:"authorId"`
	AuthorUserName string    `json:"authorUserName"`
	Text           string    `json:"text"`
}

// MessageResponse carries the outcome of a profile update
type MessageResponse struct {
	Message string `json:"message"`
}

func newProfile(u *User, stats *ProfileStats) Profile {
	return Profile{
		ID:           u.ID,
		UserName:     u.UserName,
		Bio:          u.Bio,
		AvatarURL:    u.AvatarURL,
		CreatedAt:    u.CreatedAt,
		ProfileStats: *stats,
	}
}
