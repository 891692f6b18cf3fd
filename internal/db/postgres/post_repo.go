package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"Murmur/internal/core/pagination"
	"Murmur/internal/core/posts"

	"github.com/lib/pq"
)

type postgresPostRepo struct {
	db *sql.DB
}

// NewPostRepository creates a new PostgreSQL post repository
func NewPostRepository(db *sql.DB) posts.Repository {
	return &postgresPostRepo{db: db}
}

// postSummaryColumns selects a post with its author name, counts and sorted tag names.
// Callers append WHERE / ORDER BY / LIMIT clauses.
const postSummaryColumns = `
	SELECT
		p.id, p.author_id, u.user_name, p.text, p.reply_to_post_id, p.created_at,
		(SELECT COUNT(*) FROM post_likes l WHERE l.post_id = p.id) AS like_count,
		(SELECT COUNT(*) FROM comments c WHERE c.post_id = p.id) AS comment_count,
		(SELECT COUNT(*) FROM posts r WHERE r.reply_to_post_id = p.id) AS reply_count,
		COALESCE((
			SELECT array_agg(t.name ORDER BY t.name)
			FROM post_tags pt
			JOIN tags t ON t.id = pt.tag_id
			WHERE pt.post_id = p.id
		), '{}') AS tags
	FROM posts p
	JOIN users u ON u.id = p.author_id`

func (r *postgresPostRepo) Exists(ctx context.Context, postID string) (bool, error) {
	found, err := exists(ctx, r.db, `SELECT EXISTS(SELECT 1 FROM posts WHERE id = $1)`, postID)
	if err != nil {
		return false, fmt.Errorf("failed to check post existence: %w", err)
	}
	return found, nil
}

func (r *postgresPostRepo) GetByID(ctx context.Context, postID string) (*posts.Post, error) {
	query := `
		SELECT id, author_id, text, reply_to_post_id, created_at
		FROM posts
		WHERE id = $1
	`

	var post posts.Post
	var replyTo sql.NullString
	err := r.db.QueryRowContext(ctx, query, postID).Scan(
		&post.ID, &post.AuthorID, &post.Text, &replyTo, &post.CreatedAt,
	)
	if err == sql.ErrNoRows || isInvalidID(err) {
		return nil, posts.ErrPostNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get post: %w", err)
	}

	post.ReplyToPostID = nullableString(replyTo)
	return &post, nil
}

func (r *postgresPostRepo) Create(ctx context.Context, post *posts.Post, tagNames []string) error {
	return inTx(ctx, r.db, func(tx *sql.Tx) error {
		query := `
			INSERT INTO posts (id, author_id, text, reply_to_post_id, created_at)
			VALUES ($1, $2, $3, $4, $5)
		`
		_, err := tx.ExecContext(ctx, query,
			post.ID, post.AuthorID, post.Text, post.ReplyToPostID, post.CreatedAt,
		)
		if err != nil {
			if violatesForeignKey(err, "posts_reply_to_post_id_fkey") {
				// The reply target vanished between validation and insert
				return posts.ErrReplyTargetNotFound
			}
			return fmt.Errorf("failed to insert post: %w", err)
		}

		return replaceTags(ctx, tx, post.ID, tagNames)
	})
}

func (r *postgresPostRepo) Update(ctx context.Context, postID, text string, tagNames *[]string) error {
	return inTx(ctx, r.db, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, `UPDATE posts SET text = $2 WHERE id = $1`, postID, text)
		if err != nil {
			return fmt.Errorf("failed to update post: %w", err)
		}
		updated, err := rowsAffected(result)
		if err != nil {
			return err
		}
		if !updated {
			return posts.ErrPostNotFound
		}

		if tagNames == nil {
			return nil
		}
		return replaceTags(ctx, tx, postID, *tagNames)
	})
}

func (r *postgresPostRepo) Delete(ctx context.Context, postID string) error {
	// comments, likes and post_tags go with the post via ON DELETE CASCADE;
	// replies are detached via ON DELETE SET NULL
	result, err := r.db.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, postID)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	deleted, err := rowsAffected(result)
	if err != nil {
		return err
	}
	if !deleted {
		return posts.ErrPostNotFound
	}
	return nil
}

func (r *postgresPostRepo) GetSummary(ctx context.Context, postID string) (*posts.PostSummary, error) {
	query := postSummaryColumns + ` WHERE p.id = $1`

	summary, err := scanPostSummary(r.db.QueryRowContext(ctx, query, postID))
	if err == sql.ErrNoRows || isInvalidID(err) {
		return nil, posts.ErrPostNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get post summary: %w", err)
	}
	return summary, nil
}

func (r *postgresPostRepo) List(ctx context.Context, filter posts.ListFilter, page pagination.Page) ([]*posts.PostSummary, error) {
	var conditions []string
	var args []interface{}

	if filter.AuthorID != nil {
		args = append(args, *filter.AuthorID)
		conditions = append(conditions, fmt.Sprintf("p.author_id = $%d", len(args)))
	}
	if filter.Tag != nil {
		args = append(args, *filter.Tag)
		conditions = append(conditions, fmt.Sprintf(`EXISTS (
			SELECT 1 FROM post_tags pt
			JOIN tags t ON t.id = pt.tag_id
			WHERE pt.post_id = p.id AND t.name = $%d
		)`, len(args)))
	}

	query := postSummaryColumns
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	args = append(args, page.Take, page.Skip)
	query += fmt.Sprintf(" ORDER BY p.created_at DESC, p.id DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	result, err := r.querySummaries(ctx, query, args...)
	if err != nil {
		if isInvalidID(err) {
			return []*posts.PostSummary{}, nil
		}
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	return result, nil
}

func (r *postgresPostRepo) Feed(ctx context.Context, userID string, page pagination.Page) ([]*posts.PostSummary, error) {
	query := postSummaryColumns + `
		WHERE p.author_id = $1
		   OR p.author_id IN (SELECT following_id FROM follows WHERE follower_id = $1)
		ORDER BY p.created_at DESC, p.id DESC
		LIMIT $2 OFFSET $3`

	result, err := r.querySummaries(ctx, query, userID, page.Take, page.Skip)
	if err != nil {
		return nil, fmt.Errorf("failed to get feed: %w", err)
	}
	return result, nil
}

func (r *postgresPostRepo) Replies(ctx context.Context, postID string, page pagination.Page) ([]*posts.PostSummary, error) {
	query := postSummaryColumns + `
		WHERE p.reply_to_post_id = $1
		ORDER BY p.created_at ASC, p.id ASC
		LIMIT $2 OFFSET $3`

	result, err := r.querySummaries(ctx, query, postID, page.Take, page.Skip)
	if err != nil {
		return nil, fmt.Errorf("failed to get replies: %w", err)
	}
	return result, nil
}

func (r *postgresPostRepo) AddLike(ctx context.Context, userID, postID string) (bool, error) {
	query := `
		INSERT INTO post_likes (user_id, post_id, created_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (user_id, post_id) DO NOTHING
	`
	result, err := r.db.ExecContext(ctx, query, userID, postID)
	if err != nil {
		if violatesForeignKey(err, "post_likes_post_id_fkey") {
			return false, posts.ErrPostNotFound
		}
		return false, fmt.Errorf("failed to like post: %w", err)
	}
	return rowsAffected(result)
}

func (r *postgresPostRepo) RemoveLike(ctx context.Context, userID, postID string) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM post_likes WHERE user_id = $1 AND post_id = $2`, userID, postID)
	if err != nil {
		return false, fmt.Errorf("failed to remove like: %w", err)
	}
	return rowsAffected(result)
}

func (r *postgresPostRepo) CountLikes(ctx context.Context, postID string) (int, error) {
	n, err := count(ctx, r.db, `SELECT COUNT(*) FROM post_likes WHERE post_id = $1`, postID)
	if err != nil {
		return 0, fmt.Errorf("failed to count likes: %w", err)
	}
	return n, nil
}

func (r *postgresPostRepo) ListLikes(ctx context.Context, postID string, page pagination.Page) ([]*posts.LikeUser, error) {
	query := `
		SELECT l.user_id, u.user_name, l.created_at
		FROM post_likes l
		JOIN users u ON u.id = l.user_id
		WHERE l.post_id = $1
		ORDER BY l.created_at DESC, l.user_id
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.QueryContext(ctx, query, postID, page.Take, page.Skip)
	if err != nil {
		return nil, fmt.Errorf("failed to list likes: %w", err)
	}
	defer func() { _ = rows.Close() }()

	result := []*posts.LikeUser{}
	for rows.Next() {
		var like posts.LikeUser
		if err := rows.Scan(&like.UserID, &like.UserName, &like.LikedAt); err != nil {
			return nil, fmt.Errorf("failed to scan like: %w", err)
		}
		result = append(result, &like)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating likes: %w", err)
	}
	return result, nil
}

func (r *postgresPostRepo) querySummaries(ctx context.Context, query string, args ...interface{}) ([]*posts.PostSummary, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	result := []*posts.PostSummary{}
	for rows.Next() {
		summary, err := scanPostSummary(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		result = append(result, summary)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating posts: %w", err)
	}
	return result, nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPostSummary(row rowScanner) (*posts.PostSummary, error) {
	var s posts.PostSummary
	var replyTo sql.NullString
	var tagNames []string

	err := row.Scan(
		&s.ID, &s.AuthorID, &s.AuthorUserName, &s.Text, &replyTo, &s.CreatedAt,
		&s.LikeCount, &s.CommentCount, &s.ReplyCount, pq.Array(&tagNames),
	)
	if err != nil {
		return nil, err
	}

	s.ReplyToPostID = nullableString(replyTo)
	s.Tags = tagNames
	if s.Tags == nil {
		s.Tags = []string{}
	}
	return &s, nil
}

func nullableString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	v := ns.String
	return &v
}
