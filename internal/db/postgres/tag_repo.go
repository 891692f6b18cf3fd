package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"Murmur/internal/core/pagination"
	"Murmur/internal/core/tags"

	"github.com/google/uuid"
)

type postgresTagRepo struct {
	db *sql.DB
}

// NewTagRepository creates a new PostgreSQL tag repository
func NewTagRepository(db *sql.DB) tags.Repository {
	return &postgresTagRepo{db: db}
}

func (r *postgresTagRepo) List(ctx context.Context, query string, page pagination.Page) ([]*tags.TagSummary, error) {
	// strpos keeps the match literal; the query may contain % or _
	sqlQuery := `
		SELECT t.id, t.name, t.created_at,
			(SELECT COUNT(*) FROM post_tags pt WHERE pt.tag_id = t.id) AS post_count
		FROM tags t
		WHERE $1::text = '' OR strpos(t.name, $1::text) > 0
		ORDER BY t.name ASC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.QueryContext(ctx, sqlQuery, query, page.Take, page.Skip)
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	defer func() { _ = rows.Close() }()

	result := []*tags.TagSummary{}
	for rows.Next() {
		var tag tags.TagSummary
		if err := rows.Scan(&tag.ID, &tag.Name, &tag.CreatedAt, &tag.PostCount); err != nil {
			return nil, fmt.Errorf("failed to scan tag: %w", err)
		}
		result = append(result, &tag)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tags: %w", err)
	}
	return result, nil
}

func (r *postgresTagRepo) Trending(ctx context.Context, since time.Time, take int) ([]*tags.TrendingTag, error) {
	query := `
		SELECT t.id, t.name, COUNT(*) AS post_count
		FROM post_tags pt
		JOIN tags t ON t.id = pt.tag_id
		JOIN posts p ON p.id = pt.post_id
		WHERE p.created_at >= $1
		GROUP BY t.id, t.name
		ORDER BY post_count DESC, t.name ASC
		LIMIT $2
	`

	rows, err := r.db.QueryContext(ctx, query, since, take)
	if err != nil {
		return nil, fmt.Errorf("failed to query trending tags: %w", err)
	}
	defer func() { _ = rows.Close() }()

	result := []*tags.TrendingTag{}
	for rows.Next() {
		var tag tags.TrendingTag
		if err := rows.Scan(&tag.TagID, &tag.Name, &tag.PostCount); err != nil {
			return nil, fmt.Errorf("failed to scan trending tag: %w", err)
		}
		result = append(result, &tag)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating trending tags: %w", err)
	}
	return result, nil
}

func (r *postgresTagRepo) GetByName(ctx context.Context, name string) (*tags.Tag, error) {
	var tag tags.Tag
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, created_at FROM tags WHERE name = $1`, name,
	).Scan(&tag.ID, &tag.Name, &tag.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, tags.ErrTagNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get tag: %w", err)
	}
	return &tag, nil
}

func (r *postgresTagRepo) ListPosts(ctx context.Context, tagID string, page pagination.Page) ([]*tags.TagPost, error) {
	query := `
		SELECT
			p.id, p.author_id, u.user_name, p.text, p.reply_to_post_id, p.created_at,
			(SELECT COUNT(*) FROM post_likes l WHERE l.post_id = p.id) AS like_count,
			(SELECT COUNT(*) FROM comments c WHERE c.post_id = p.id) AS comment_count
		FROM post_tags pt
		JOIN posts p ON p.id = pt.post_id
		JOIN users u ON u.id = p.author_id
		WHERE pt.tag_id = $1
		ORDER BY p.created_at DESC, p.id DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.QueryContext(ctx, query, tagID, page.Take, page.Skip)
	if err != nil {
		return nil, fmt.Errorf("failed to list tag posts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	result := []*tags.TagPost{}
	for rows.Next() {
		var post tags.TagPost
		var replyTo sql.NullString
		err := rows.Scan(
			&post.ID, &post.AuthorID, &post.AuthorUserName, &post.Text, &replyTo, &post.CreatedAt,
			&post.LikeCount, &post.CommentCount,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan tag post: %w", err)
		}
		post.ReplyToPostID = nullableString(replyTo)
		result = append(result, &post)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tag posts: %w", err)
	}
	return result, nil
}

// replaceTags swaps the post's tag associations for names, creating missing tags.
// names must already be normalized and deduplicated.
func replaceTags(ctx context.Context, tx *sql.Tx, postID string, names []string) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM post_tags WHERE post_id = $1`, postID); err != nil {
		return fmt.Errorf("failed to clear post tags: %w", err)
	}

	for _, name := range names {
		tagID, err := findOrCreateTag(ctx, tx, name)
		if err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx,
			`INSERT INTO post_tags (post_id, tag_id, created_at) VALUES ($1, $2, NOW())`,
			postID, tagID,
		)
		if err != nil {
			return fmt.Errorf("failed to attach tag %q: %w", name, err)
		}
	}
	return nil
}

func findOrCreateTag(ctx context.Context, tx *sql.Tx, name string) (string, error) {
	var tagID string
	err := tx.QueryRowContext(ctx, `SELECT id FROM tags WHERE name = $1`, name).Scan(&tagID)
	if err == nil {
		return tagID, nil
	}
	if err != sql.ErrNoRows {
		return "", fmt.Errorf("failed to look up tag %q: %w", name, err)
	}

	insert := `
		INSERT INTO tags (id, name, created_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (name) DO NOTHING
		RETURNING id
	`
	err = tx.QueryRowContext(ctx, insert, uuid.NewString(), name).Scan(&tagID)
	if err == sql.ErrNoRows {
		// Another transaction created the tag after our lookup
		err = tx.QueryRowContext(ctx, `SELECT id FROM tags WHERE name = $1`, name).Scan(&tagID)
	}
	if err != nil {
		return "", fmt.Errorf("failed to create tag %q: %w", name, err)
	}
	return tagID, nil
}
