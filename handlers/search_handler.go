package handlers

import (
	"context"
	"errors"
	"math"
	"net/http"
	"strconv"
	"time"

	"lawscape-backend/models"
	"lawscape-backend/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// Finder runs a dependency search
type Finder interface {
	FindWithDependencies(ctx context.Context, req service.FindRequest) (*service.FindResult, error)
}

// SearchHandler handles HTTP requests for document search
type SearchHandler struct {
	finder  Finder
	timeout time.Duration
	logger  *zerolog.Logger
}

// SearchHandlerOption is a functional option for SearchHandler
type SearchHandlerOption func(*SearchHandler)

// WithSearchTimeout bounds each search, including dependency analysis
func WithSearchTimeout(timeout time.Duration) SearchHandlerOption {
	return func(h *SearchHandler) {
		h.timeout = timeout
	}
}

// NewSearchHandler creates a new search handler
func NewSearchHandler(finder Finder, logger *zerolog.Logger, opts ...SearchHandlerOption) *SearchHandler {
	h := &SearchHandler{
		finder: finder,
		logger: logger,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// SearchResponse is the data returned by a search
type SearchResponse struct {
	Query   string                    `json:"query"`
	Records []models.DependencyRecord `json:"records"`
}

// Search handles GET /api/search
func (h *SearchHandler) Search(c *gin.Context) {
	req := service.FindRequest{
		Word: c.Query("word"),
	}

	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit <= 0 {
			respondError(c, http.StatusBadRequest, "INVALID_LIMIT", "limit must be a positive integer")
			return
		}
		req.Limit = limit
	}

	if raw := c.Query("cancel_score"); raw != "" {
		score, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(score) || math.IsInf(score, 0) {
			respondError(c, http.StatusBadRequest, "INVALID_CANCEL_SCORE", "cancel_score must be a number")
			return
		}
		req.CancelScore = &score
	}

	if raw := c.Query("rewrite"); raw != "" {
		rewrite, err := strconv.ParseBool(raw)
		if err != nil {
			respondError(c, http.StatusBadRequest, "INVALID_REWRITE", "rewrite must be a boolean")
			return
		}
		req.Rewrite = rewrite
	}

	ctx := c.Request.Context()
	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	result, err := h.finder.FindWithDependencies(ctx, req)
	if err != nil {
		h.respondSearchError(c, err)
		return
	}

	respondData(c, http.StatusOK, SearchResponse{
		Query:   result.Query,
		Records: result.Records,
	})
}

func (h *SearchHandler) respondSearchError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrEmptyQuery):
		respondError(c, http.StatusBadRequest, "EMPTY_QUERY", "word must not be empty")
	case errors.Is(err, models.ErrInvalidLimit):
		respondError(c, http.StatusBadRequest, "INVALID_LIMIT", err.Error())
	case errors.Is(err, models.ErrBackendUnavailable):
		h.logger.Error().Err(err).Msg("search backend unavailable")
		respondError(c, http.StatusServiceUnavailable, "BACKEND_UNAVAILABLE", "search backend is unavailable")
	case errors.Is(err, models.ErrBackendQueryFailed):
		h.logger.Error().Err(err).Msg("search query failed")
		respondError(c, http.StatusInternalServerError, "QUERY_FAILED", "search query failed")
	default:
		h.logger.Error().Err(err).Msg("search failed")
		respondError(c, http.StatusInternalServerError, "SEARCH_FAILED", err.Error())
	}
}
