package repository

import (
	"context"
	"errors"

	"lawscape-backend/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// APIKeyRepository handles database operations for API keys
type APIKeyRepository struct {
	db *pgxpool.Pool
}

// NewAPIKeyRepository creates a new API key repository
func NewAPIKeyRepository(db *pgxpool.Pool) *APIKeyRepository {
	return &APIKeyRepository{db: db}
}

// Create stores a new key
func (r *APIKeyRepository) Create(ctx context.Context, key *models.APIKey) error {
	query := `
		INSERT INTO api_keys (name, prefix, key_hash)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	return r.db.QueryRow(ctx, query, key.Name, key.Prefix, key.KeyHash).Scan(&key.ID, &key.CreatedAt)
}

// GetByPrefix retrieves a non-revoked key by its public prefix
func (r *APIKeyRepository) GetByPrefix(ctx context.Context, prefix string) (*models.APIKey, error) {
	key := &models.APIKey{}
	query := `
		SELECT id, name, prefix, key_hash, created_at, last_used_at, revoked_at
		FROM api_keys
		WHERE prefix = $1 AND revoked_at IS NULL`

	err := r.db.QueryRow(ctx, query, prefix).Scan(
		&key.ID,
		&key.Name,
		&key.Prefix,
		&key.KeyHash,
		&key.CreatedAt,
		&key.LastUsedAt,
		&key.RevokedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return key, nil
}

// Touch records that a key was used
func (r *APIKeyRepository) Touch(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, `UPDATE api_keys SET last_used_at = NOW() WHERE id = $1`, id)
	return err
}
