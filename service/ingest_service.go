package service

import (
	"context"
	"errors"
	"fmt"

	"lawscape-backend/models"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

var (
	ErrNoDocuments      = errors.New("no documents to ingest")
	ErrAsyncUnavailable = errors.New("asynchronous ingest is not configured")
	ErrJobNotFound      = errors.New("ingest job not found")
)

// IngestService writes document batches to the index and tracks them as jobs
type IngestService struct {
	gateway   *SearchGateway
	jobs      IngestJobStore
	publisher BatchPublisher
	logger    *zerolog.Logger
}

// IngestServiceOption is a functional option for IngestService
type IngestServiceOption func(*IngestService)

// IngestWithGateway sets the search gateway
func IngestWithGateway(gateway *SearchGateway) IngestServiceOption {
	return func(s *IngestService) {
		s.gateway = gateway
	}
}

// IngestWithJobStore sets the job store. Without one, jobs are not persisted.
func IngestWithJobStore(jobs IngestJobStore) IngestServiceOption {
	return func(s *IngestService) {
		s.jobs = jobs
	}
}

// IngestWithPublisher enables asynchronous ingest through a queue
func IngestWithPublisher(publisher BatchPublisher) IngestServiceOption {
	return func(s *IngestService) {
		s.publisher = publisher
	}
}

// IngestWithLogger sets the logger
func IngestWithLogger(logger *zerolog.Logger) IngestServiceOption {
	return func(s *IngestService) {
		s.logger = logger
	}
}

// NewIngestService creates a new ingest service
func NewIngestService(opts ...IngestServiceOption) *IngestService {
	nop := zerolog.Nop()
	s := &IngestService{logger: &nop}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// IngestRequest represents a request to index documents
type IngestRequest struct {
	Documents  []models.LegalDocument
	PrimaryKey string
	Source     string
	Async      bool
}

// IngestResult represents the result of an ingest request
type IngestResult struct {
	Job *models.IngestJob
}

// Ingest validates the batch, records a job and indexes it now or queues it
func (s *IngestService) Ingest(ctx context.Context, req IngestRequest) (*IngestResult, error) {
	if len(req.Documents) == 0 {
		return nil, ErrNoDocuments
	}
	primaryKey, err := models.ParsePrimaryKey(req.PrimaryKey)
	if err != nil {
		return nil, err
	}
	for i, doc := range req.Documents {
		if err := doc.Validate(); err != nil {
			return nil, fmt.Errorf("document %d: %w", i, err)
		}
	}
	if req.Async && s.publisher == nil {
		return nil, ErrAsyncUnavailable
	}

	source := req.Source
	if source == "" {
		source = "api"
	}

	job := &models.IngestJob{
		Status:        models.JobStatusPending,
		Source:        source,
		PrimaryKey:    primaryKey,
		DocumentCount: len(req.Documents),
	}
	if s.jobs != nil {
		if err := s.jobs.Create(ctx, job); err != nil {
			return nil, fmt.Errorf("failed to create ingest job: %w", err)
		}
	} else {
		job.ID = uuid.New()
	}

	batch := models.IngestBatch{
		JobID:      job.ID,
		PrimaryKey: primaryKey,
		Source:     source,
		Documents:  req.Documents,
	}

	if req.Async {
		if err := s.publisher.Submit(ctx, batch); err != nil {
			s.failJob(ctx, job.ID, err)
			return nil, fmt.Errorf("failed to queue ingest job: %w", err)
		}
		s.logger.Info().Str("job_id", job.ID.String()).Int("documents", job.DocumentCount).Msg("ingest job queued")
		return &IngestResult{Job: job}, nil
	}

	if err := s.Submit(ctx, batch); err != nil {
		msg := err.Error()
		job.Status = models.JobStatusFailed
		job.ErrorMessage = &msg
		return &IngestResult{Job: job}, err
	}

	job.Status = models.JobStatusCompleted
	return &IngestResult{Job: job}, nil
}

// Submit indexes one batch and updates its job when the batch carries one
func (s *IngestService) Submit(ctx context.Context, batch models.IngestBatch) error {
	if s.gateway == nil {
		return errors.New("search gateway not set")
	}

	tracked := s.jobs != nil && batch.JobID != uuid.Nil
	if tracked {
		if err := s.jobs.UpdateStatus(ctx, batch.JobID, models.JobStatusInProgress); err != nil {
			s.logger.Warn().Err(err).Str("job_id", batch.JobID.String()).Msg("failed to mark ingest job in progress")
		}
	}

	if err := s.gateway.Ingest(ctx, batch.Documents, batch.PrimaryKey); err != nil {
		if tracked {
			s.failJob(ctx, batch.JobID, err)
		}
		s.logger.Error().Err(err).
			Str("job_id", batch.JobID.String()).
			Int("documents", len(batch.Documents)).
			Msg("ingest failed")
		return err
	}

	if tracked {
		if err := s.jobs.Complete(ctx, batch.JobID); err != nil {
			s.logger.Warn().Err(err).Str("job_id", batch.JobID.String()).Msg("failed to mark ingest job completed")
		}
	}

	s.logger.Debug().
		Str("job_id", batch.JobID.String()).
		Str("source", batch.Source).
		Int("documents", len(batch.Documents)).
		Msg("ingest completed")
	return nil
}

// GetJob retrieves an ingest job by ID
func (s *IngestService) GetJob(ctx context.Context, id uuid.UUID) (*models.IngestJob, error) {
	if s.jobs == nil {
		return nil, errors.New("ingest job store not set")
	}

	job, err := s.jobs.GetByID(ctx, id)
	if errors.Is(err, models.ErrNotFound) {
		return nil, ErrJobNotFound
	}
	if err != nil {
		return nil, err
	}
	return job, nil
}

func (s *IngestService) failJob(ctx context.Context, id uuid.UUID, cause error) {
	if s.jobs == nil {
		return
	}
	if err := s.jobs.Fail(ctx, id, cause.Error()); err != nil {
		s.logger.Warn().Err(err).Str("job_id", id.String()).Msg("failed to mark ingest job failed")
	}
}
