package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"path"

	"lawscape-backend/models"
	"lawscape-backend/storage"

	"github.com/rs/zerolog"
)

// Sink receives the batches produced by the loader
type Sink interface {
	Submit(ctx context.Context, batch models.IngestBatch) error
}

// Loader reads law and precedent source files and submits them for indexing
type Loader struct {
	source     storage.Source
	sink       Sink
	primaryKey models.PrimaryKey
	logger     *zerolog.Logger
}

// LoaderOption is a functional option for Loader
type LoaderOption func(*Loader)

// WithPrimaryKey sets the primary key mode of submitted batches
func WithPrimaryKey(pk models.PrimaryKey) LoaderOption {
	return func(l *Loader) {
		l.primaryKey = pk
	}
}

// WithLogger sets the logger
func WithLogger(logger *zerolog.Logger) LoaderOption {
	return func(l *Loader) {
		l.logger = logger
	}
}

// NewLoader creates a new loader
func NewLoader(source storage.Source, sink Sink, opts ...LoaderOption) *Loader {
	nop := zerolog.Nop()
	l := &Loader{
		source:     source,
		sink:       sink,
		primaryKey: models.PrimaryKeyFragment,
		logger:     &nop,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// LoadStats counts what a load submitted and skipped
type LoadStats struct {
	Laws              int
	LawFragments      int
	SkippedLaws       int
	Precedents        int
	SkippedPrecedents int
}

// LoadLaws submits every law in the index at its revision in force at date.
// Laws with no revision before date are skipped.
func (l *Loader) LoadLaws(ctx context.Context, lawFolder, indexKey string, date Date) (LoadStats, error) {
	var stats LoadStats

	l.logger.Info().Msg("[START] parsing law data")

	var index []LawInfo
	if err := l.readJSON(ctx, indexKey, &index); err != nil {
		return stats, fmt.Errorf("failed to read law index: %w", err)
	}

	for _, info := range index {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		patch, ok := SelectPatch(info.Patches, date)
		if !ok {
			stats.SkippedLaws++
			l.logger.Debug().Str("law_id", info.ID).Str("date", date.String()).Msg("no revision in force, skipping")
			continue
		}

		l.logger.Info().Str("law_id", info.ID).Msg("[START] parsing law")
		law, err := l.readLaw(ctx, patch.XMLKey(lawFolder))
		if err != nil {
			return stats, fmt.Errorf("law %s: %w", info.ID, err)
		}
		docs := LawDocuments(info, patch, law)
		l.logger.Info().Str("law_id", info.ID).Int("articles", len(docs)).Msg("[END] parsing law")

		l.logger.Info().Str("law_id", info.ID).Msg("[START] register law")
		if err := l.submit(ctx, docs); err != nil {
			return stats, fmt.Errorf("law %s: %w", info.ID, err)
		}
		l.logger.Info().Str("law_id", info.ID).Msg("[END] register law")

		stats.Laws++
		stats.LawFragments += len(docs)
	}

	l.logger.Info().Int("laws", stats.Laws).Int("skipped", stats.SkippedLaws).Msg("[END] parsing law data")
	return stats, nil
}

// LoadPrecedents submits every precedent in the index that has contents
func (l *Loader) LoadPrecedents(ctx context.Context, precedentFolder, indexKey string) (LoadStats, error) {
	var stats LoadStats

	l.logger.Info().Msg("[START] parsing precedent data")

	var index []models.PrecedentInfo
	if err := l.readJSON(ctx, indexKey, &index); err != nil {
		return stats, fmt.Errorf("failed to read precedent index: %w", err)
	}

	for _, info := range index {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		rc, err := l.source.Open(ctx, path.Join(precedentFolder, info.FileName()))
		if err != nil {
			return stats, fmt.Errorf("precedent %s: %w", info.LawsuitID, err)
		}
		data, err := ParsePrecedent(rc)
		rc.Close()
		if err != nil {
			return stats, fmt.Errorf("precedent %s: %w", info.LawsuitID, err)
		}
		l.logger.Info().Str("lawsuit_id", info.LawsuitID).Msg("[END] parsing precedent")

		if data.Contents == nil {
			stats.SkippedPrecedents++
			continue
		}

		l.logger.Info().Str("lawsuit_id", info.LawsuitID).Msg("[START] register precedent")
		if err := l.submit(ctx, []models.LegalDocument{PrecedentDocument(info, *data.Contents)}); err != nil {
			return stats, fmt.Errorf("precedent %s: %w", info.LawsuitID, err)
		}
		l.logger.Info().Str("lawsuit_id", info.LawsuitID).Msg("[END] register precedent")
		stats.Precedents++
	}

	l.logger.Info().Int("precedents", stats.Precedents).Int("skipped", stats.SkippedPrecedents).Msg("[END] parsing precedent data")
	return stats, nil
}

func (l *Loader) submit(ctx context.Context, docs []models.LegalDocument) error {
	if len(docs) == 0 {
		return nil
	}
	return l.sink.Submit(ctx, models.IngestBatch{
		PrimaryKey: l.primaryKey,
		Source:     "register",
		Documents:  docs,
	})
}

func (l *Loader) readJSON(ctx context.Context, key string, v any) error {
	rc, err := l.source.Open(ctx, key)
	if err != nil {
		return err
	}
	defer rc.Close()

	return json.NewDecoder(rc).Decode(v)
}

func (l *Loader) readLaw(ctx context.Context, key string) (*ParsedLaw, error) {
	rc, err := l.source.Open(ctx, key)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	return ParseLawXML(rc)
}
