package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"Murmur/internal/core/pagination"
	"Murmur/internal/core/users"
)

type postgresUserRepo struct {
	db *sql.DB
}

// NewUserRepository creates a new PostgreSQL user repository
func NewUserRepository(db *sql.DB) users.UserRepository {
	return &postgresUserRepo{db: db}
}

func (r *postgresUserRepo) GetByID(ctx context.Context, userID string) (*users.User, error) {
	query := `
		SELECT id, user_name, email, bio, avatar_url, created_at
		FROM users
		WHERE id = $1
	`

	var user users.User
	var bio, avatarURL sql.NullString
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&user.ID, &user.UserName, &user.Email, &bio, &avatarURL, &user.CreatedAt,
	)
	if err == sql.ErrNoRows || isInvalidID(err) {
		return nil, users.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}

	user.Bio = nullableString(bio)
	user.AvatarURL = nullableString(avatarURL)
	return &user, nil
}

func (r *postgresUserRepo) Exists(ctx context.Context, userID string) (bool, error) {
	found, err := exists(ctx, r.db, `SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)`, userID)
	if err != nil {
		return false, fmt.Errorf("failed to check user existence: %w", err)
	}
	return found, nil
}

func (r *postgresUserRepo) GetProfileStats(ctx context.Context, userID string) (*users.ProfileStats, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM posts WHERE author_id = $1),
			(SELECT COUNT(*) FROM comments WHERE author_id = $1),
			(SELECT COUNT(*) FROM post_likes WHERE user_id = $1),
			(SELECT COUNT(*) FROM follows WHERE following_id = $1),
			(SELECT COUNT(*) FROM follows WHERE follower_id = $1)
	`

	var stats users.ProfileStats
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&stats.PostCount,
		&stats.CommentCount,
		&stats.LikeCount,
		&stats.FollowersCount,
		&stats.FollowingCount,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get profile stats: %w", err)
	}
	return &stats, nil
}

func (r *postgresUserRepo) UpdateProfile(ctx context.Context, userID string, upd users.ProfileUpdate) error {
	query := `
		UPDATE users SET
			bio = CASE WHEN $2 THEN $3 ELSE bio END,
			avatar_url = CASE WHEN $4 THEN $5 ELSE avatar_url END
		WHERE id = $1
	`
	result, err := r.db.ExecContext(ctx, query,
		userID, upd.SetBio, upd.Bio, upd.SetAvatarURL, upd.AvatarURL)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	updated, err := rowsAffected(result)
	if err != nil {
		return err
	}
	if !updated {
		return users.ErrUserNotFound
	}
	return nil
}

func (r *postgresUserRepo) ListPosts(ctx context.Context, userID string, page pagination.Page) ([]*users.UserPost, error) {
	query := `
		SELECT p.id, p.text, p.reply_to_post_id, p.created_at,
			(SELECT COUNT(*) FROM post_likes l WHERE l.post_id = p.id),
			(SELECT COUNT(*) FROM comments c WHERE c.post_id = p.id)
		FROM posts p
		WHERE p.author_id = $1
		ORDER BY p.created_at DESC, p.id DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.QueryContext(ctx, query, userID, page.Take, page.Skip)
	if err != nil {
		return nil, fmt.Errorf("failed to list user posts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	result := []*users.UserPost{}
	for rows.Next() {
		var post users.UserPost
		var replyTo sql.NullString
		err := rows.Scan(&post.ID, &post.Text, &replyTo, &post.CreatedAt, &post.LikeCount, &post.CommentCount)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user post: %w", err)
		}
		post.ReplyToPostID = nullableString(replyTo)
		result = append(result, &post)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating user posts: %w", err)
	}
	return result, nil
}

func (r *postgresUserRepo) ListComments(ctx context.Context, userID string, page pagination.Page) ([]*users.UserComment, error) {
	query := `
		SELECT id, post_id, body, parent_comment_id, created_at
		FROM comments
		WHERE author_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.QueryContext(ctx, query, userID, page.Take, page.Skip)
	if err != nil {
		return nil, fmt.Errorf("failed to list user comments: %w", err)
	}
	defer func() { _ = rows.Close() }()

	result := []*users.UserComment{}
	for rows.Next() {
		var comment users.UserComment
		var parentID sql.NullString
		if err := rows.Scan(&comment.ID, &comment.PostID, &comment.Body, &parentID, &comment.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan user comment: %w", err)
		}
		comment.ParentCommentID = nullableString(parentID)
		result = append(result, &comment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating user comments: %w", err)
	}
	return result, nil
}

func (r *postgresUserRepo) ListLikedPosts(ctx context.Context, userID string, page pagination.Page) ([]*users.LikedPost, error) {
	query := `
		SELECT p.id, p.author_id, u.user_name, p.text, p.created_at, l.created_at
		FROM post_likes l
		JOIN posts p ON p.id = l.post_id
		JOIN users u ON u.id = p.author_id
		WHERE l.user_id = $1
		ORDER BY l.created_at DESC, p.id DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.QueryContext(ctx, query, userID, page.Take, page.Skip)
	if err != nil {
		return nil, fmt.Errorf("failed to list liked posts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	result := []*users.LikedPost{}
	for rows.Next() {
		var liked users.LikedPost
		err := rows.Scan(&liked.PostID, &liked.AuthorID, &liked.AuthorUserName, &liked.Text, &liked.PostCreatedAt, &liked.LikedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan liked post: %w", err)
		}
		result = append(result, &liked)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating liked posts: %w", err)
	}
	return result, nil
}
