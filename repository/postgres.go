package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"lawscape-backend/models"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewPool opens and pings a connection pool. Failures are reported as
// models.ErrBackendUnavailable.
func NewPool(ctx context.Context, connString string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", models.ErrBackendUnavailable, err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("%w: %w", models.ErrBackendUnavailable, err)
	}

	return pool, nil
}

// DatabaseCType returns the LC_CTYPE of the connected database
func DatabaseCType(ctx context.Context, db *pgxpool.Pool) (string, error) {
	var ctype string
	if err := db.QueryRow(ctx, "SHOW lc_ctype").Scan(&ctype); err != nil {
		return "", fmt.Errorf("failed to read lc_ctype: %w", err)
	}
	return ctype, nil
}

// TrigramsCoverCJK reports whether pg_trgm treats CJK characters as word
// characters under ctype. The C and POSIX locales only know ASCII, so
// word_similarity scores every Japanese query as 0 there.
func TrigramsCoverCJK(ctype string) bool {
	base, _, _ := strings.Cut(strings.ToUpper(strings.TrimSpace(ctype)), ".")
	return base != "C" && base != "POSIX" && base != ""
}

// isConnectionError reports whether err comes from failing to reach the server
func isConnectionError(err error) bool {
	var connErr *pgconn.ConnectError
	return errors.As(err, &connErr)
}

// classify wraps err with sentinel, or with models.ErrBackendUnavailable
// when the server could not be reached
func classify(sentinel error, err error) error {
	if isConnectionError(err) {
		if sentinel == models.ErrBackendQueryFailed {
			return fmt.Errorf("%w: %w", models.ErrBackendUnavailable, err)
		}
		return fmt.Errorf("%w: %w: %w", sentinel, models.ErrBackendUnavailable, err)
	}
	return fmt.Errorf("%w: %w", sentinel, err)
}
