package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"lawscape-backend/config"
	"lawscape-backend/ingest"
	"lawscape-backend/logger"
	"lawscape-backend/models"
	"lawscape-backend/repository"
	"lawscape-backend/service"
	"lawscape-backend/storage"
	"lawscape-backend/stream"
)

func main() {
	lawFolder := flag.String("law-folder", "", "Folder holding one directory per law revision")
	lawIndex := flag.String("law-index", "", "Law index JSON file")
	precedentFolder := flag.String("precedent-folder", "", "Folder holding precedent JSON files")
	precedentIndex := flag.String("precedent-index", "", "Precedent index JSON file")
	dateFlag := flag.String("date", "", "Register laws as in force on this date (YYYY-MM-DD, YYYY/MM/DD or YYYYMMDD); defaults to today")
	primaryKey := flag.String("primary-key", "", "Index key mode: fragment or id (defaults to INGEST_PRIMARY_KEY)")
	queue := flag.Bool("queue", false, "Publish batches to the ingest stream instead of indexing directly")
	configPath := flag.String("config", "", "Path to YAML config file")
	flag.Parse()

	if (*lawIndex == "") != (*lawFolder == "") || (*precedentIndex == "") != (*precedentFolder == "") {
		fmt.Fprintln(os.Stderr, "index and folder flags must be given together")
		flag.PrintDefaults()
		os.Exit(1)
	}
	if *lawIndex == "" && *precedentIndex == "" {
		fmt.Fprintln(os.Stderr, "Usage: register [-law-folder dir -law-index file] [-precedent-folder dir -precedent-index file]")
		flag.PrintDefaults()
		os.Exit(1)
	}

	cfg := config.MustLoad(*configPath)
	log := logger.New(cfg.Env, cfg.LogLevel)

	date, err := registerDate(*dateFlag)
	if err != nil {
		log.Fatal().Err(err).Str("date", *dateFlag).Msg("invalid date")
	}

	keyMode := *primaryKey
	if keyMode == "" {
		keyMode = cfg.Ingest.PrimaryKey
	}
	pk, err := models.ParsePrimaryKey(keyMode)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid primary key")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	source, err := storage.NewSource(ctx, cfg.Storage)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize storage")
	}

	var sink ingest.Sink
	if *queue {
		client, err := stream.ConnectRedis(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.MaxRetries, &log)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to redis")
		}
		defer client.Close()
		sink = stream.NewProducer(client, cfg.Redis.Stream, &log)
	} else {
		db, err := repository.NewPool(ctx, cfg.Database.URL)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize postgres")
		}
		defer db.Close()

		gateway := service.NewSearchGateway(
			repository.NewLegalDocumentRepository(db, cfg.Search.Locale),
			service.GatewayWithLocale(cfg.Search.Locale),
			service.GatewayWithLogger(&log),
		)
		sink = service.NewIngestService(
			service.IngestWithGateway(gateway),
			service.IngestWithLogger(&log),
		)
	}

	loader := ingest.NewLoader(source, sink, ingest.WithPrimaryKey(pk), ingest.WithLogger(&log))
	start := time.Now()

	if *lawIndex != "" {
		stats, err := loader.LoadLaws(ctx, *lawFolder, *lawIndex, date)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to register laws")
		}
		log.Info().
			Int("laws", stats.Laws).
			Int("fragments", stats.LawFragments).
			Int("skipped", stats.SkippedLaws).
			Msg("laws registered")
	}

	if *precedentIndex != "" {
		stats, err := loader.LoadPrecedents(ctx, *precedentFolder, *precedentIndex)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to register precedents")
		}
		log.Info().
			Int("precedents", stats.Precedents).
			Int("skipped", stats.SkippedPrecedents).
			Msg("precedents registered")
	}

	log.Info().Dur("elapsed", time.Since(start)).Bool("queued", *queue).Msg("register finished")
}

func registerDate(raw string) (ingest.Date, error) {
	if raw != "" {
		return ingest.ParseDate(raw)
	}
	now := time.Now()
	return ingest.Date{Year: now.Year(), Month: int(now.Month()), Day: now.Day()}, nil
}
