package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"Murmur/internal/core/follows"
	"Murmur/internal/core/pagination"
)

type postgresFollowRepo struct {
	db *sql.DB
}

// NewFollowRepository creates a new PostgreSQL follow repository
func NewFollowRepository(db *sql.DB) follows.Repository {
	return &postgresFollowRepo{db: db}
}

func (r *postgresFollowRepo) UserExists(ctx context.Context, userID string) (bool, error) {
	found, err := exists(ctx, r.db, `SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)`, userID)
	if err != nil {
		return false, fmt.Errorf("failed to check user existence: %w", err)
	}
	return found, nil
}

func (r *postgresFollowRepo) Create(ctx context.Context, followerID, followingID string) (bool, error) {
	query := `
		INSERT INTO follows (follower_id, following_id, created_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (follower_id, following_id) DO NOTHING
	`
	result, err := r.db.ExecContext(ctx, query, followerID, followingID)
	if err != nil {
		if violatesForeignKey(err, "follows_following_id_fkey") {
			return false, follows.ErrTargetNotFound
		}
		return false, fmt.Errorf("failed to create follow: %w", err)
	}
	return rowsAffected(result)
}

func (r *postgresFollowRepo) Delete(ctx context.Context, followerID, followingID string) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM follows WHERE follower_id = $1 AND following_id = $2`, followerID, followingID)
	if err != nil {
		return false, fmt.Errorf("failed to delete follow: %w", err)
	}
	return rowsAffected(result)
}

func (r *postgresFollowRepo) CountFollowers(ctx context.Context, userID string) (int, error) {
	n, err := count(ctx, r.db, `SELECT COUNT(*) FROM follows WHERE following_id = $1`, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to count followers: %w", err)
	}
	return n, nil
}

func (r *postgresFollowRepo) CountFollowing(ctx context.Context, userID string) (int, error) {
	n, err := count(ctx, r.db, `SELECT COUNT(*) FROM follows WHERE follower_id = $1`, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to count following: %w", err)
	}
	return n, nil
}

func (r *postgresFollowRepo) ListFollowers(ctx context.Context, userID string, page pagination.Page) ([]*follows.FollowUser, error) {
	query := `
		SELECT f.follower_id, u.user_name, f.created_at
		FROM follows f
		JOIN users u ON u.id = f.follower_id
		WHERE f.following_id = $1
		ORDER BY f.created_at DESC, f.follower_id
		LIMIT $2 OFFSET $3
	`
	result, err := r.queryEdges(ctx, query, userID, page)
	if err != nil {
		return nil, fmt.Errorf("failed to list followers: %w", err)
	}
	return result, nil
}

func (r *postgresFollowRepo) ListFollowing(ctx context.Context, userID string, page pagination.Page) ([]*follows.FollowUser, error) {
	query := `
		SELECT f.following_id, u.user_name, f.created_at
		FROM follows f
		JOIN users u ON u.id = f.following_id
		WHERE f.follower_id = $1
		ORDER BY f.created_at DESC, f.following_id
		LIMIT $2 OFFSET $3
	`
	result, err := r.queryEdges(ctx, query, userID, page)
	if err != nil {
		return nil, fmt.Errorf("failed to list following: %w", err)
	}
	return result, nil
}

func (r *postgresFollowRepo) queryEdges(ctx context.Context, query, userID string, page pagination.Page) ([]*follows.FollowUser, error) {
	rows, err := r.db.QueryContext(ctx, query, userID, page.Take, page.Skip)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	result := []*follows.FollowUser{}
	for rows.Next() {
		var edge follows.FollowUser
		if err := rows.Scan(&edge.UserID, &edge.UserName, &edge.FollowedAt); err != nil {
			return nil, fmt.Errorf("failed to scan follow: %w", err)
		}
		result = append(result, &edge)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating follows: %w", err)
	}
	return result, nil
}
