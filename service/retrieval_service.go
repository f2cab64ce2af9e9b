package service

import (
	"context"
	"errors"
	"strings"

	"lawscape-backend/metrics"
	"lawscape-backend/models"

	"github.com/rs/zerolog"
)

const (
	DefaultSearchLimit = 1000
	DefaultCancelScore = 0.5
)

// RetrievalService answers a query with its hits grouped into dependency records
type RetrievalService struct {
	gateway            *SearchGateway
	rewriter           QueryRewriter
	defaultLimit       int
	defaultCancelScore float64
	logger             *zerolog.Logger
}

// RetrievalServiceOption is a functional option for RetrievalService
type RetrievalServiceOption func(*RetrievalService)

// WithSearchGateway sets the search gateway
func WithSearchGateway(gateway *SearchGateway) RetrievalServiceOption {
	return func(s *RetrievalService) {
		s.gateway = gateway
	}
}

// WithQueryRewriter sets the rewriter used when a request asks for it
func WithQueryRewriter(rewriter QueryRewriter) RetrievalServiceOption {
	return func(s *RetrievalService) {
		s.rewriter = rewriter
	}
}

// WithDefaults sets the limit and cancel score used for zero-valued requests
func WithDefaults(limit int, cancelScore float64) RetrievalServiceOption {
	return func(s *RetrievalService) {
		s.defaultLimit = limit
		s.defaultCancelScore = cancelScore
	}
}

// WithLogger sets the logger
func WithLogger(logger *zerolog.Logger) RetrievalServiceOption {
	return func(s *RetrievalService) {
		s.logger = logger
	}
}

// NewRetrievalService creates a new retrieval service
func NewRetrievalService(opts ...RetrievalServiceOption) *RetrievalService {
	nop := zerolog.Nop()
	s := &RetrievalService{
		defaultLimit:       DefaultSearchLimit,
		defaultCancelScore: DefaultCancelScore,
		logger:             &nop,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// FindRequest represents a request to search with dependency analysis
type FindRequest struct {
	Word        string
	Limit       int     // zero means the service default
	CancelScore *float64 // nil means the service default
	Rewrite     bool
}

// FindResult represents the result of a dependency search
type FindResult struct {
	Query   string
	Records []models.DependencyRecord
}

// FindWithDependencies searches for req.Word and analyzes the references between the hits
func (s *RetrievalService) FindWithDependencies(ctx context.Context, req FindRequest) (*FindResult, error) {
	if s.gateway == nil {
		return nil, errors.New("search gateway not set")
	}

	limit := req.Limit
	if limit == 0 {
		limit = s.defaultLimit
	}
	cancelScore := s.defaultCancelScore
	if req.CancelScore != nil {
		cancelScore = *req.CancelScore
	}

	query := req.Word
	if req.Rewrite && s.rewriter != nil && strings.TrimSpace(query) != "" {
		query = s.rewrite(ctx, query)
	}

	hits, err := s.gateway.Search(ctx, query, limit, cancelScore)
	if err != nil {
		return nil, err
	}

	records := AnalyzeDependencies(hits)
	metrics.DependencyEdges.Observe(float64(countEdges(records)))

	s.logger.Info().
		Str("query", query).
		Int("hits", len(hits)).
		Int("documents", len(records)).
		Msg("dependency search completed")

	return &FindResult{
		Query:   query,
		Records: FlattenDependencies(records),
	}, nil
}

// rewrite returns the rewritten query, or query itself when rewriting fails
func (s *RetrievalService) rewrite(ctx context.Context, query string) string {
	rewritten, err := s.rewriter.Rewrite(ctx, query)
	if err != nil {
		s.logger.Warn().Err(err).Str("query", query).Msg("query rewrite failed, using original query")
		return query
	}
	if strings.TrimSpace(rewritten) == "" {
		return query
	}
	return rewritten
}
