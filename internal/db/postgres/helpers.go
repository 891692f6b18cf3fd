package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/lib/pq"
)

// PostgreSQL error codes the repositories translate into domain errors
const (
	pgForeignKeyViolation  = "23503"
	pgInvalidTextRepresent = "22P02"
)

func pgErrorCode(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	return ""
}

// violatesForeignKey reports a foreign key violation on the named constraint
func violatesForeignKey(err error, constraint string) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	return string(pqErr.Code) == pgForeignKeyViolation && pqErr.Constraint == constraint
}

// isInvalidID reports a malformed UUID literal. Lookups treat it as "no such row".
func isInvalidID(err error) bool {
	return pgErrorCode(err) == pgInvalidTextRepresent
}

// inTx runs fn inside a transaction, committing when fn returns nil
func inTx(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer func() {
		if err := tx.Rollback(); err != nil && err != sql.ErrTxDone {
			slog.Error("failed to rollback transaction", slog.String("error", err.Error()))
		}
	}()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// exists runs a SELECT EXISTS(...) query
func exists(ctx context.Context, db *sql.DB, query string, args ...interface{}) (bool, error) {
	var found bool
	err := db.QueryRowContext(ctx, query, args...).Scan(&found)
	if err != nil {
		if isInvalidID(err) {
			return false, nil
		}
		return false, err
	}
	return found, nil
}

// count runs a SELECT COUNT(*) query
func count(ctx context.Context, db *sql.DB, query string, args ...interface{}) (int, error) {
	var n int
	err := db.QueryRowContext(ctx, query, args...).Scan(&n)
	if err != nil {
		if isInvalidID(err) {
			return 0, nil
		}
		return 0, err
	}
	return n, nil
}

// rowsAffected reports whether the statement touched at least one row
func rowsAffected(result sql.Result) (bool, error) {
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check rows affected: %w", err)
	}
	return n > 0, nil
}
