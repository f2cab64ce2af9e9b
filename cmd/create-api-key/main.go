package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"lawscape-backend/config"
	"lawscape-backend/handlers"
	"lawscape-backend/logger"
	"lawscape-backend/models"
	"lawscape-backend/repository"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	name := flag.String("name", "", "Human readable owner of the key")
	configPath := flag.String("config", "", "Path to YAML config file")
	flag.Parse()

	if *name == "" {
		fmt.Fprintln(os.Stderr, "Usage: create-api-key -name <owner>")
		flag.PrintDefaults()
		os.Exit(1)
	}

	cfg := config.MustLoad(*configPath)
	log := logger.New(cfg.Env, cfg.LogLevel)

	ctx := context.Background()
	pool, err := repository.NewPool(ctx, cfg.Database.URL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()

	generated, err := handlers.GenerateAPIKey(bcrypt.DefaultCost)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to generate api key")
	}

	key := &models.APIKey{
		Name:    *name,
		Prefix:  generated.Prefix,
		KeyHash: generated.Hash,
	}
	if err := repository.NewAPIKeyRepository(pool).Create(ctx, key); err != nil {
		log.Fatal().Err(err).Msg("failed to store api key")
	}

	fmt.Printf("✅ API key created successfully!\n")
	fmt.Printf("   ID: %s\n", key.ID)
	fmt.Printf("   Name: %s\n", key.Name)
	fmt.Printf("   Key: %s\n", generated.Plaintext)
	fmt.Printf("   Store it now, it cannot be shown again.\n")
}
