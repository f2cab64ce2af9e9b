package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// RouterConfig holds the handlers mounted by NewRouter
type RouterConfig struct {
	Search *SearchHandler
	// Ingest routes are mounted only when both Ingest and Keys are set
	Ingest *IngestHandler
	Keys   APIKeyLookup
	Logger *zerolog.Logger
}

// NewRouter builds the gin engine serving the public API
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestLogger(cfg.Logger))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")
	{
		api.GET("/search", cfg.Search.Search)

		if cfg.Ingest != nil && cfg.Keys != nil {
			protected := api.Group("", RequireAPIKey(cfg.Keys, cfg.Logger))
			protected.POST("/documents", cfg.Ingest.IngestDocuments)
			protected.GET("/ingest-jobs/:id", cfg.Ingest.GetIngestJob)
		}
	}

	return router
}
