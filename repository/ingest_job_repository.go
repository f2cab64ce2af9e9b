package repository

import (
	"context"
	"errors"
	"time"

	"lawscape-backend/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// IngestJobRepository handles database operations for ingest jobs
type IngestJobRepository struct {
	db *pgxpool.Pool
}

// NewIngestJobRepository creates a new ingest job repository
func NewIngestJobRepository(db *pgxpool.Pool) *IngestJobRepository {
	return &IngestJobRepository{db: db}
}

// Create inserts a job and fills in its generated fields
func (r *IngestJobRepository) Create(ctx context.Context, job *models.IngestJob) error {
	query := `
		INSERT INTO ingest_jobs (
			status, source, primary_key, document_count
		) VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at`

	return r.db.QueryRow(
		ctx, query,
		string(job.Status),
		job.Source,
		string(job.PrimaryKey),
		job.DocumentCount,
	).Scan(&job.ID, &job.CreatedAt, &job.UpdatedAt)
}

// GetByID retrieves an ingest job by ID
func (r *IngestJobRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.IngestJob, error) {
	job := &models.IngestJob{}
	query := `
		SELECT id, status, source, primary_key, document_count, error_message,
			created_at, updated_at, completed_at
		FROM ingest_jobs
		WHERE id = $1`

	var status, primaryKey string
	err := r.db.QueryRow(ctx, query, id).Scan(
		&job.ID,
		&status,
		&job.Source,
		&primaryKey,
		&job.DocumentCount,
		&job.ErrorMessage,
		&job.CreatedAt,
		&job.UpdatedAt,
		&job.CompletedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	job.Status = models.IngestJobStatus(status)
	job.PrimaryKey = models.PrimaryKey(primaryKey)
	return job, nil
}

// UpdateStatus updates the status of an ingest job
func (r *IngestJobRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status models.IngestJobStatus) error {
	query := `
		UPDATE ingest_jobs SET
			status = $2,
			updated_at = NOW()
		WHERE id = $1`

	_, err := r.db.Exec(ctx, query, id, string(status))
	return err
}

// Complete marks an ingest job as completed
func (r *IngestJobRepository) Complete(ctx context.Context, id uuid.UUID) error {
	now := time.Now()
	query := `
		UPDATE ingest_jobs SET
			status = $2,
			completed_at = $3,
			updated_at = $3
		WHERE id = $1`

	_, err := r.db.Exec(ctx, query, id, string(models.JobStatusCompleted), now)
	return err
}

// Fail marks an ingest job as failed
func (r *IngestJobRepository) Fail(ctx context.Context, id uuid.UUID, errorMessage string) error {
	query := `
		UPDATE ingest_jobs SET
			status = $2,
			error_message = $3,
			updated_at = NOW()
		WHERE id = $1`

	_, err := r.db.Exec(ctx, query, id, string(models.JobStatusFailed), errorMessage)
	return err
}
