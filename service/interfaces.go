package service

//go:generate mockgen -destination=mocks/mocks.go -package=mocks lawscape-backend/service SearchBackend,IngestJobStore,BatchPublisher,QueryRewriter

import (
	"context"

	"lawscape-backend/models"

	"github.com/google/uuid"
)

// SearchBackend is the full-text index the gateway talks to
type SearchBackend interface {
	Search(ctx context.Context, q models.SearchQuery) ([]models.ScoredDocument, error)
	Index(ctx context.Context, docs []models.LegalDocument, primaryKey models.PrimaryKey) error
}

// IngestJobStore persists ingest job state
type IngestJobStore interface {
	Create(ctx context.Context, job *models.IngestJob) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.IngestJob, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.IngestJobStatus) error
	Complete(ctx context.Context, id uuid.UUID) error
	Fail(ctx context.Context, id uuid.UUID, errorMessage string) error
}

// BatchPublisher hands a batch to an asynchronous worker
type BatchPublisher interface {
	Submit(ctx context.Context, batch models.IngestBatch) error
}

// QueryRewriter normalises a user query before it is searched
type QueryRewriter interface {
	Rewrite(ctx context.Context, query string) (string, error)
}
