package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"lawscape-backend/config"
	"lawscape-backend/logger"
	"lawscape-backend/mcptools"
	"lawscape-backend/repository"
	"lawscape-backend/service"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const version = "1.0.0"

func main() {
	configPath := flag.String("config", "", "Path to YAML config file")
	flag.Parse()

	cfg := config.MustLoad(*configPath)
	// stdout carries the MCP protocol, so logs always go to stderr
	log := logger.New("local", cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := repository.NewPool(ctx, cfg.Database.URL)
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize postgres")
		os.Exit(1)
	}
	defer db.Close()

	gateway := service.NewSearchGateway(
		repository.NewLegalDocumentRepository(db, cfg.Search.Locale),
		service.GatewayWithLocale(cfg.Search.Locale),
		service.GatewayWithLogger(&log),
	)
	retrieval := service.NewRetrievalService(
		service.WithSearchGateway(gateway),
		service.WithDefaults(cfg.Search.DefaultLimit, cfg.Search.DefaultCancelScore),
		service.WithLogger(&log),
	)
	ingest := service.NewIngestService(
		service.IngestWithJobStore(repository.NewIngestJobRepository(db)),
		service.IngestWithLogger(&log),
	)

	server := mcptools.NewServer(retrieval, ingest, version)

	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil {
		// EOF / "server is closing" is expected when stdin closes
		if errors.Is(err, io.EOF) || strings.Contains(err.Error(), "server is closing") {
			log.Debug().Err(err).Msg("mcp server stopped")
			return
		}
		log.Error().Err(err).Msg("failed to run mcp server")
		os.Exit(1)
	}
}
