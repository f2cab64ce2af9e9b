package handlers

import (
	"context"
	"errors"
	"net/http"

	"lawscape-backend/models"
	"lawscape-backend/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Ingester indexes document batches and reports their jobs
type Ingester interface {
	Ingest(ctx context.Context, req service.IngestRequest) (*service.IngestResult, error)
	GetJob(ctx context.Context, id uuid.UUID) (*models.IngestJob, error)
}

// IngestHandler handles HTTP requests that write to the index
type IngestHandler struct {
	ingester Ingester
	logger   *zerolog.Logger
}

// NewIngestHandler creates a new ingest handler
func NewIngestHandler(ingester Ingester, logger *zerolog.Logger) *IngestHandler {
	return &IngestHandler{
		ingester: ingester,
		logger:   logger,
	}
}

// IngestDocumentsRequest represents the request body for POST /api/documents
type IngestDocumentsRequest struct {
	Documents  []models.LegalDocument `json:"documents" binding:"required"`
	PrimaryKey string                 `json:"primary_key"`
	Async      bool                   `json:"async"`
}

// IngestDocuments handles POST /api/documents
func (h *IngestHandler) IngestDocuments(c *gin.Context) {
	var req IngestDocumentsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	result, err := h.ingester.Ingest(c.Request.Context(), service.IngestRequest{
		Documents:  req.Documents,
		PrimaryKey: req.PrimaryKey,
		Source:     "api",
		Async:      req.Async,
	})
	if err != nil {
		h.respondIngestError(c, err)
		return
	}

	status := http.StatusOK
	if result.Job.Status == models.JobStatusPending {
		status = http.StatusAccepted
	}
	respondData(c, status, result.Job)
}

// GetIngestJob handles GET /api/ingest-jobs/:id
func (h *IngestHandler) GetIngestJob(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_ID", "Invalid job ID format")
		return
	}

	job, err := h.ingester.GetJob(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrJobNotFound) {
			respondError(c, http.StatusNotFound, "NOT_FOUND", "Ingest job not found")
			return
		}
		h.logger.Error().Err(err).Str("job_id", id.String()).Msg("failed to get ingest job")
		respondError(c, http.StatusInternalServerError, "RETRIEVAL_FAILED", err.Error())
		return
	}

	respondData(c, http.StatusOK, job)
}

func (h *IngestHandler) respondIngestError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNoDocuments):
		respondError(c, http.StatusBadRequest, "NO_DOCUMENTS", err.Error())
	case errors.Is(err, models.ErrInvalidPrimaryKey):
		respondError(c, http.StatusBadRequest, "INVALID_PRIMARY_KEY", err.Error())
	case errors.Is(err, models.ErrInvalidDocument):
		respondError(c, http.StatusBadRequest, "INVALID_DOCUMENT", err.Error())
	case errors.Is(err, service.ErrAsyncUnavailable):
		respondError(c, http.StatusServiceUnavailable, "ASYNC_UNAVAILABLE", err.Error())
	case errors.Is(err, models.ErrBackendUnavailable):
		h.logger.Error().Err(err).Msg("search backend unavailable")
		respondError(c, http.StatusServiceUnavailable, "BACKEND_UNAVAILABLE", "search backend is unavailable")
	case errors.Is(err, models.ErrBackendIndexFailed):
		h.logger.Error().Err(err).Msg("indexing failed")
		respondError(c, http.StatusInternalServerError, "INDEX_FAILED", err.Error())
	default:
		h.logger.Error().Err(err).Msg("ingest failed")
		respondError(c, http.StatusInternalServerError, "INGEST_FAILED", err.Error())
	}
}
