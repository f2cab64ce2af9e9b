package repository

import (
	"context"
	"fmt"

	"lawscape-backend/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// LegalDocumentRepository is the full-text search backend. Relevance is the
// pg_trgm word similarity of the query against the document name and body.
type LegalDocumentRepository struct {
	db     *pgxpool.Pool
	locale string
}

// NewLegalDocumentRepository creates a new legal document repository.
// Documents indexed through it are tagged with locale.
func NewLegalDocumentRepository(db *pgxpool.Pool, locale string) *LegalDocumentRepository {
	return &LegalDocumentRepository{db: db, locale: locale}
}

// Search returns up to q.Limit hits in q.Locale scoring at least q.MinScore
func (r *LegalDocumentRepository) Search(ctx context.Context, q models.SearchQuery) ([]models.ScoredDocument, error) {
	query := `
		SELECT document, score
		FROM (
			SELECT
				document,
				GREATEST(
					word_similarity($1, name),
					word_similarity($1, body)
				)::float8 AS score
			FROM legal_documents
			WHERE locale = $2
		) hits
		WHERE score >= $3
		ORDER BY score DESC
		LIMIT $4`

	rows, err := r.db.Query(ctx, query, q.Text, q.Locale, q.MinScore, q.Limit)
	if err != nil {
		return nil, classify(models.ErrBackendQueryFailed, fmt.Errorf("failed to query legal documents: %w", err))
	}
	defer rows.Close()

	var hits []models.ScoredDocument
	for rows.Next() {
		var hit models.ScoredDocument
		if err := rows.Scan(&hit.Document, &hit.Score); err != nil {
			return nil, classify(models.ErrBackendQueryFailed, fmt.Errorf("failed to scan legal document: %w", err))
		}
		hits = append(hits, hit)
	}

	if err := rows.Err(); err != nil {
		return nil, classify(models.ErrBackendQueryFailed, fmt.Errorf("error iterating legal documents: %w", err))
	}

	return hits, nil
}

// Index adds or overwrites docs keyed by primaryKey
func (r *LegalDocumentRepository) Index(ctx context.Context, docs []models.LegalDocument, primaryKey models.PrimaryKey) error {
	query := `
		INSERT INTO legal_documents (
			primary_key, id, kind, name, law_id, locale, body, document, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		ON CONFLICT (primary_key) DO UPDATE SET
			id = EXCLUDED.id,
			kind = EXCLUDED.kind,
			name = EXCLUDED.name,
			law_id = EXCLUDED.law_id,
			locale = EXCLUDED.locale,
			body = EXCLUDED.body,
			document = EXCLUDED.document,
			updated_at = NOW()`

	batch := &pgx.Batch{}
	for _, doc := range docs {
		var name, lawID *string
		if doc.Kind == models.KindLaw {
			name = &doc.Law.Name
			lawID = &doc.Law.LawID
		}
		batch.Queue(query,
			primaryKey.KeyOf(doc),
			doc.ID(),
			string(doc.Kind),
			name,
			lawID,
			r.locale,
			doc.Text(),
			doc,
		)
	}

	results := r.db.SendBatch(ctx, batch)
	for i := range docs {
		if _, err := results.Exec(); err != nil {
			results.Close()
			return classify(models.ErrBackendIndexFailed, fmt.Errorf("failed to index document %s: %w", docs[i].ID(), err))
		}
	}

	if err := results.Close(); err != nil {
		return classify(models.ErrBackendIndexFailed, fmt.Errorf("failed to close index batch: %w", err))
	}

	return nil
}
