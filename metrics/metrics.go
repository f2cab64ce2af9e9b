package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Search metrics
	SearchRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lawscape_search_requests_total",
			Help: "Search requests by outcome",
		},
		[]string{"outcome"},
	)

	SearchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "lawscape_search_duration_seconds",
		Help:    "Time spent waiting on the search backend",
		Buckets: prometheus.DefBuckets,
	})

	SearchHits = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "lawscape_search_hits",
		Help:    "Hits returned per search after truncation",
		Buckets: prometheus.ExponentialBuckets(1, 4, 7),
	})

	// Dependency metrics
	DependencyEdges = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "lawscape_dependency_edges",
		Help:    "Reference edges found per analyzed result set",
		Buckets: prometheus.ExponentialBuckets(1, 4, 8),
	})

	// Ingest metrics
	IngestedDocuments = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lawscape_ingested_documents_total",
			Help: "Documents written to the search index",
		},
		[]string{"kind"},
	)

	IngestFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "lawscape_ingest_failures_total",
		Help: "Ingest batches that failed to index",
	})
)

// Search outcomes
const (
	OutcomeOK          = "ok"
	OutcomeEmptyQuery  = "empty_query"
	OutcomeBadRequest  = "bad_request"
	OutcomeUnavailable = "unavailable"
	OutcomeFailed      = "failed"
)
