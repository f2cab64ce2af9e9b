package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"lawscape-backend/config"
	"lawscape-backend/logger"
	"lawscape-backend/repository"
)

func main() {
	configPath := flag.String("config", "", "Path to YAML config file")
	drop := flag.Bool("drop", false, "Drop existing tables first (development only)")
	flag.Parse()

	cfg := config.MustLoad(*configPath)
	log := logger.New(cfg.Env, cfg.LogLevel)

	ctx := context.Background()
	pool, err := repository.NewPool(ctx, cfg.Database.URL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()

	// pg_trgm provides word_similarity and the trigram GIN operator classes
	if _, err := pool.Exec(ctx, "CREATE EXTENSION IF NOT EXISTS pg_trgm"); err != nil {
		log.Fatal().Err(err).Msg("failed to create pg_trgm extension")
	}
	log.Info().Msg("pg_trgm extension enabled")

	ctype, err := repository.DatabaseCType(ctx, pool)
	if err != nil {
		log.Warn().Err(err).Msg("could not check database locale")
	} else if !repository.TrigramsCoverCJK(ctype) {
		log.Warn().Str("lc_ctype", ctype).Msg("pg_trgm ignores Japanese text under this locale, recreate the database with a UTF-8 locale such as ja_JP.UTF-8")
	}

	if *drop {
		for _, table := range []string{"legal_documents", "ingest_jobs", "api_keys"} {
			if _, err := pool.Exec(ctx, "DROP TABLE IF EXISTS "+table+" CASCADE"); err != nil {
				log.Fatal().Err(err).Str("table", table).Msg("failed to drop table")
			}
			log.Info().Str("table", table).Msg("dropped table")
		}
	}

	tables := []struct {
		name string
		sql  string
	}{
		{
			name: "legal_documents",
			sql: `
CREATE TABLE IF NOT EXISTS legal_documents (
    -- "id" or "fragment" key, see models.PrimaryKey
    primary_key TEXT PRIMARY KEY,
    id TEXT NOT NULL,
    kind VARCHAR(20) NOT NULL CHECK (kind IN ('Law', 'Precedent')),

    -- Searchable fields
    name TEXT,
    law_id TEXT,
    locale VARCHAR(10) NOT NULL DEFAULT 'jpn',
    body TEXT NOT NULL,

    -- Full tagged document as returned to clients
    document JSONB NOT NULL,

    created_at TIMESTAMP DEFAULT NOW(),
    updated_at TIMESTAMP DEFAULT NOW()
);`,
		},
		{
			name: "ingest_jobs",
			sql: `
CREATE TABLE IF NOT EXISTS ingest_jobs (
    id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    status VARCHAR(20) NOT NULL DEFAULT 'pending'
        CHECK (status IN ('pending', 'in_progress', 'completed', 'failed')),
    source VARCHAR(50) NOT NULL,
    primary_key VARCHAR(20) NOT NULL,
    document_count INTEGER NOT NULL DEFAULT 0,
    error_message TEXT,
    created_at TIMESTAMP DEFAULT NOW(),
    updated_at TIMESTAMP DEFAULT NOW(),
    completed_at TIMESTAMP
);`,
		},
		{
			name: "api_keys",
			sql: `
CREATE TABLE IF NOT EXISTS api_keys (
    id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    name VARCHAR(255) NOT NULL,
    prefix VARCHAR(32) NOT NULL UNIQUE,
    key_hash TEXT NOT NULL,
    created_at TIMESTAMP DEFAULT NOW(),
    last_used_at TIMESTAMP,
    revoked_at TIMESTAMP
);`,
		},
	}

	for _, table := range tables {
		if _, err := pool.Exec(ctx, table.sql); err != nil {
			log.Fatal().Err(err).Str("table", table.name).Msg("failed to create table")
		}
		log.Info().Str("table", table.name).Msg("created table")
	}

	indexes := []struct {
		name string
		sql  string
	}{
		{
			name: "Trigram search on body",
			sql:  "CREATE INDEX IF NOT EXISTS idx_legal_documents_body_trgm ON legal_documents USING gin (body gin_trgm_ops);",
		},
		{
			name: "Trigram search on name",
			sql:  "CREATE INDEX IF NOT EXISTS idx_legal_documents_name_trgm ON legal_documents USING gin (name gin_trgm_ops) WHERE name IS NOT NULL;",
		},
		{
			name: "Identity lookup",
			sql:  "CREATE INDEX IF NOT EXISTS idx_legal_documents_id ON legal_documents(id);",
		},
		{
			name: "Locale filtering",
			sql:  "CREATE INDEX IF NOT EXISTS idx_legal_documents_locale ON legal_documents(locale);",
		},
		{
			name: "Kind filtering",
			sql:  "CREATE INDEX IF NOT EXISTS idx_legal_documents_kind ON legal_documents(kind);",
		},
		{
			name: "Ingest job status",
			sql:  "CREATE INDEX IF NOT EXISTS idx_ingest_jobs_status ON ingest_jobs(status);",
		},
	}

	failed := 0
	for _, idx := range indexes {
		if _, err := pool.Exec(ctx, idx.sql); err != nil {
			failed++
			log.Warn().Err(err).Str("index", idx.name).Msg("failed to create index")
		} else {
			log.Info().Str("index", idx.name).Msg("created index")
		}
	}

	fmt.Println("\n✅ Database schema created successfully!")
	fmt.Println("   Tables: legal_documents, ingest_jobs, api_keys")
	fmt.Printf("   Indexes: %d of %d created\n", len(indexes)-failed, len(indexes))
	if failed > 0 {
		os.Exit(1)
	}
}
