package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os/signal"
	"runtime"
	"syscall"

	"lawscape-backend/config"
	"lawscape-backend/handlers"
	"lawscape-backend/logger"
	"lawscape-backend/repository"
	"lawscape-backend/rewrite"
	"lawscape-backend/service"
	"lawscape-backend/stream"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
)

func main() {
	configPath := flag.String("config", "", "Path to YAML config file")
	flag.Parse()

	cfg := config.MustLoad(*configPath)
	log := logger.New(cfg.Env, cfg.LogLevel)

	if cfg.HTTP.Threads > 0 {
		runtime.GOMAXPROCS(cfg.HTTP.Threads)
	}
	if cfg.Env != "local" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize database connection
	db, err := repository.NewPool(ctx, cfg.Database.URL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize postgres")
	}
	defer db.Close()
	log.Info().Msg("postgres connection established")

	// Initialize repositories
	documentRepo := repository.NewLegalDocumentRepository(db, cfg.Search.Locale)
	jobRepo := repository.NewIngestJobRepository(db)
	keyRepo := repository.NewAPIKeyRepository(db)

	// Initialize services
	gateway := service.NewSearchGateway(documentRepo,
		service.GatewayWithLocale(cfg.Search.Locale),
		service.GatewayWithLogger(&log),
	)

	retrievalOpts := []service.RetrievalServiceOption{
		service.WithSearchGateway(gateway),
		service.WithDefaults(cfg.Search.DefaultLimit, cfg.Search.DefaultCancelScore),
		service.WithLogger(&log),
	}
	if rewriter := initRewriter(ctx, cfg.Gemini, &log); rewriter != nil {
		retrievalOpts = append(retrievalOpts, service.WithQueryRewriter(rewriter))
	}
	retrieval := service.NewRetrievalService(retrievalOpts...)

	ingestOpts := []service.IngestServiceOption{
		service.IngestWithGateway(gateway),
		service.IngestWithJobStore(jobRepo),
		service.IngestWithLogger(&log),
	}
	if cfg.Redis.Enabled {
		client, err := stream.ConnectRedis(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.MaxRetries, &log)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to redis")
		}
		defer client.Close()
		ingestOpts = append(ingestOpts, service.IngestWithPublisher(stream.NewProducer(client, cfg.Redis.Stream, &log)))
	}
	ingest := service.NewIngestService(ingestOpts...)

	// Setup router
	router := handlers.NewRouter(handlers.RouterConfig{
		Search: handlers.NewSearchHandler(retrieval, &log, handlers.WithSearchTimeout(cfg.Search.Timeout)),
		Ingest: handlers.NewIngestHandler(ingest, &log),
		Keys:   keyRepo,
		Logger: &log,
	})

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: cfg.HTTP.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", handlers.APIKeyHeader},
	})

	server := &http.Server{
		Addr:    ":" + cfg.HTTP.Port,
		Handler: corsHandler.Handler(router),
	}

	go func() {
		log.Info().Str("addr", server.Addr).Str("env", cfg.Env).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}
}

// initRewriter returns nil when no Gemini key is configured
func initRewriter(ctx context.Context, cfg config.GeminiConfig, log *zerolog.Logger) service.QueryRewriter {
	if cfg.APIKey == "" {
		log.Warn().Msg("GEMINI_API_KEY not set, query rewriting disabled")
		return nil
	}

	client, err := rewrite.NewClient(ctx, cfg.APIKey)
	if err != nil {
		log.Warn().Err(err).Msg("failed to initialize gemini, query rewriting disabled")
		return nil
	}

	log.Info().Str("model", cfg.Model).Msg("gemini query rewriter initialized")
	return rewrite.NewGeminiRewriter(client, cfg.Model, log)
}
