package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"lawscape-backend/config"
	"lawscape-backend/logger"
	"lawscape-backend/repository"
	"lawscape-backend/service"
	"lawscape-backend/stream"
)

func main() {
	configPath := flag.String("config", "", "Path to YAML config file")
	consumerName := flag.String("name", "", "Consumer name within the group (defaults to the hostname)")
	flag.Parse()

	cfg := config.MustLoad(*configPath)
	log := logger.New(cfg.Env, cfg.LogLevel)

	name := *consumerName
	if name == "" {
		host, err := os.Hostname()
		if err != nil {
			host = "worker"
		}
		name = fmt.Sprintf("%s-%d", host, os.Getpid())
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := repository.NewPool(ctx, cfg.Database.URL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize postgres")
	}
	defer db.Close()

	client, err := stream.ConnectRedis(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.MaxRetries, &log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer client.Close()

	gateway := service.NewSearchGateway(
		repository.NewLegalDocumentRepository(db, cfg.Search.Locale),
		service.GatewayWithLocale(cfg.Search.Locale),
		service.GatewayWithLogger(&log),
	)
	ingest := service.NewIngestService(
		service.IngestWithGateway(gateway),
		service.IngestWithJobStore(repository.NewIngestJobRepository(db)),
		service.IngestWithLogger(&log),
	)

	consumer := stream.NewConsumer(client, cfg.Redis.Stream, cfg.Redis.Group, name, ingest, &log)
	if err := consumer.Setup(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to set up consumer group")
	}

	if err := consumer.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal().Err(err).Msg("consumer stopped")
	}
	log.Info().Msg("ingest worker stopped")
}
