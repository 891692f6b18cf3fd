package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"Murmur/internal/core/comments"
	"Murmur/internal/core/pagination"
)

type postgresCommentRepo struct {
	db *sql.DB
}

// NewCommentRepository creates a new PostgreSQL comment repository
func NewCommentRepository(db *sql.DB) comments.Repository {
	return &postgresCommentRepo{db: db}
}

const commentViewColumns = `
	SELECT
		c.id, c.post_id, c.author_id, u.user_name, c.body, c.parent_comment_id, c.created_at,
		(SELECT COUNT(*) FROM comments ch WHERE ch.parent_comment_id = c.id) AS children_count
	FROM comments c
	JOIN users u ON u.id = c.author_id`

func (r *postgresCommentRepo) PostExists(ctx context.Context, postID string) (bool, error) {
	found, err := exists(ctx, r.db, `SELECT EXISTS(SELECT 1 FROM posts WHERE id = $1)`, postID)
	if err != nil {
		return false, fmt.Errorf("failed to check post existence: %w", err)
	}
	return found, nil
}

func (r *postgresCommentRepo) GetByID(ctx context.Context, commentID string) (*comments.Comment, error) {
	query := `
		SELECT id, post_id, author_id, body, parent_comment_id, created_at
		FROM comments
		WHERE id = $1
	`

	var comment comments.Comment
	var parentID sql.NullString
	err := r.db.QueryRowContext(ctx, query, commentID).Scan(
		&comment.ID, &comment.PostID, &comment.AuthorID, &comment.Body, &parentID, &comment.CreatedAt,
	)
	if err == sql.ErrNoRows || isInvalidID(err) {
		return nil, comments.ErrCommentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get comment: %w", err)
	}

	comment.ParentCommentID = nullableString(parentID)
	return &comment, nil
}

func (r *postgresCommentRepo) GetView(ctx context.Context, commentID string) (*comments.CommentView, error) {
	view, err := scanCommentView(r.db.QueryRowContext(ctx, commentViewColumns+` WHERE c.id = $1`, commentID))
	if err == sql.ErrNoRows || isInvalidID(err) {
		return nil, comments.ErrCommentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get comment: %w", err)
	}
	return view, nil
}

func (r *postgresCommentRepo) ListByPost(ctx context.Context, postID string, page pagination.Page) ([]*comments.CommentView, error) {
	query := commentViewColumns + `
		WHERE c.post_id = $1
		ORDER BY c.created_at ASC, c.id ASC
		LIMIT $2 OFFSET $3`

	result, err := r.queryViews(ctx, query, postID, page.Take, page.Skip)
	if err != nil {
		return nil, fmt.Errorf("failed to list post comments: %w", err)
	}
	return result, nil
}

func (r *postgresCommentRepo) ListChildren(ctx context.Context, parentID string, page pagination.Page) ([]*comments.CommentView, error) {
	query := commentViewColumns + `
		WHERE c.parent_comment_id = $1
		ORDER BY c.created_at ASC, c.id ASC
		LIMIT $2 OFFSET $3`

	result, err := r.queryViews(ctx, query, parentID, page.Take, page.Skip)
	if err != nil {
		return nil, fmt.Errorf("failed to list comment children: %w", err)
	}
	return result, nil
}

func (r *postgresCommentRepo) Create(ctx context.Context, comment *comments.Comment) error {
	query := `
		INSERT INTO comments (id, post_id, author_id, body, parent_comment_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.ExecContext(ctx, query,
		comment.ID, comment.PostID, comment.AuthorID, comment.Body, comment.ParentCommentID, comment.CreatedAt,
	)
	if err != nil {
		switch {
		case violatesForeignKey(err, "comments_post_id_fkey"):
			return comments.ErrPostNotFound
		case violatesForeignKey(err, "comments_parent_comment_id_fkey"):
			return comments.ErrParentNotFound
		}
		return fmt.Errorf("failed to insert comment: %w", err)
	}
	return nil
}

func (r *postgresCommentRepo) UpdateBody(ctx context.Context, commentID, body string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE comments SET body = $2 WHERE id = $1`, commentID, body)
	if err != nil {
		return fmt.Errorf("failed to update comment: %w", err)
	}
	updated, err := rowsAffected(result)
	if err != nil {
		return err
	}
	if !updated {
		return comments.ErrCommentNotFound
	}
	return nil
}

func (r *postgresCommentRepo) Delete(ctx context.Context, commentID string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM comments WHERE id = $1`, commentID)
	if err != nil {
		// parent_comment_id is ON DELETE NO ACTION, so children block the delete
		if violatesForeignKey(err, "comments_parent_comment_id_fkey") {
			return comments.ErrHasReplies
		}
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	deleted, err := rowsAffected(result)
	if err != nil {
		return err
	}
	if !deleted {
		return comments.ErrCommentNotFound
	}
	return nil
}

func (r *postgresCommentRepo) queryViews(ctx context.Context, query string, args ...interface{}) ([]*comments.CommentView, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	result := []*comments.CommentView{}
	for rows.Next() {
		view, err := scanCommentView(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		result = append(result, view)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating comments: %w", err)
	}
	return result, nil
}

func scanCommentView(row rowScanner) (*comments.CommentView, error) {
	var v comments.CommentView
	var parentID sql.NullString
	err := row.Scan(
		&v.ID, &v.PostID, &v.AuthorID, &v.AuthorUserName, &v.Body, &parentID, &v.CreatedAt,
		&v.ChildrenCount,
	)
	if err != nil {
		return nil, err
	}
	v.ParentCommentID = nullableString(parentID)
	return &v, nil
}
