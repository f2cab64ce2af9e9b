package service

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"
	"time"

	"lawscape-backend/metrics"
	"lawscape-backend/models"

	"github.com/rs/zerolog"
)

// DefaultLocale is the only locale documents are indexed under
const DefaultLocale = "jpn"

// SearchGateway issues queries against the search backend and normalises the hits
type SearchGateway struct {
	backend SearchBackend
	locale  string
	logger  *zerolog.Logger
}

// SearchGatewayOption is a functional option for SearchGateway
type SearchGatewayOption func(*SearchGateway)

// GatewayWithLocale overrides the search locale
func GatewayWithLocale(locale string) SearchGatewayOption {
	return func(g *SearchGateway) {
		g.locale = locale
	}
}

// GatewayWithLogger sets the logger
func GatewayWithLogger(logger *zerolog.Logger) SearchGatewayOption {
	return func(g *SearchGateway) {
		g.logger = logger
	}
}

// NewSearchGateway creates a new search gateway
func NewSearchGateway(backend SearchBackend, opts ...SearchGatewayOption) *SearchGateway {
	nop := zerolog.Nop()
	g := &SearchGateway{
		backend: backend,
		locale:  DefaultLocale,
		logger:  &nop,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Search returns at most limit hits scoring at least minScore, best first.
// Ties keep the backend order.
func (g *SearchGateway) Search(ctx context.Context, query string, limit int, minScore float64) ([]models.ScoredDocument, error) {
	if strings.TrimSpace(query) == "" {
		metrics.SearchRequests.WithLabelValues(metrics.OutcomeEmptyQuery).Inc()
		return nil, models.ErrEmptyQuery
	}
	if limit <= 0 {
		metrics.SearchRequests.WithLabelValues(metrics.OutcomeBadRequest).Inc()
		return nil, fmt.Errorf("%w: %d", models.ErrInvalidLimit, limit)
	}

	start := time.Now()
	hits, err := g.backend.Search(ctx, models.SearchQuery{
		Text:     query,
		Limit:    limit,
		MinScore: minScore,
		Locale:   g.locale,
	})
	metrics.SearchDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		switch {
		case errors.Is(err, models.ErrBackendUnavailable):
			metrics.SearchRequests.WithLabelValues(metrics.OutcomeUnavailable).Inc()
		case errors.Is(err, models.ErrBackendQueryFailed):
			metrics.SearchRequests.WithLabelValues(metrics.OutcomeFailed).Inc()
		default:
			metrics.SearchRequests.WithLabelValues(metrics.OutcomeFailed).Inc()
			err = fmt.Errorf("%w: %w", models.ErrBackendQueryFailed, err)
		}
		g.logger.Error().Err(err).Str("query", query).Msg("search failed")
		return nil, err
	}

	slices.SortStableFunc(hits, func(a, b models.ScoredDocument) int {
		return compareScoreDesc(a.Score, b.Score)
	})
	if len(hits) > limit {
		hits = hits[:limit]
	}

	metrics.SearchRequests.WithLabelValues(metrics.OutcomeOK).Inc()
	metrics.SearchHits.Observe(float64(len(hits)))
	g.logger.Debug().
		Str("query", query).
		Int("limit", limit).
		Float64("min_score", minScore).
		Int("hits", len(hits)).
		Msg("search completed")

	return hits, nil
}

// Ingest adds or overwrites docs in the index keyed by primaryKey
func (g *SearchGateway) Ingest(ctx context.Context, docs []models.LegalDocument, primaryKey models.PrimaryKey) error {
	if len(docs) == 0 {
		return nil
	}

	if err := g.backend.Index(ctx, docs, primaryKey); err != nil {
		metrics.IngestFailures.Inc()
		if !errors.Is(err, models.ErrBackendIndexFailed) {
			err = fmt.Errorf("%w: %w", models.ErrBackendIndexFailed, err)
		}
		return err
	}

	for _, doc := range docs {
		metrics.IngestedDocuments.WithLabelValues(string(doc.Kind)).Inc()
	}
	return nil
}

// compareScoreDesc orders higher scores first. Missing and NaN scores go last.
func compareScoreDesc(a, b *float64) int {
	aOK := a != nil && !math.IsNaN(*a)
	bOK := b != nil && !math.IsNaN(*b)
	switch {
	case aOK && bOK:
		return cmp.Compare(*b, *a)
	case aOK:
		return -1
	case bOK:
		return 1
	}
	return 0
}
