package stream

import (
	"context"
	"encoding/json"
	"fmt"

	"lawscape-backend/models"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// payloadField is the stream entry field holding the JSON encoded batch
const payloadField = "payload"

// Producer appends ingest batches to a Redis stream
type Producer struct {
	client *redis.Client
	stream string
	logger *zerolog.Logger
}

// NewProducer creates a new producer
func NewProducer(client *redis.Client, stream string, logger *zerolog.Logger) *Producer {
	return &Producer{
		client: client,
		stream: stream,
		logger: logger,
	}
}

// Submit publishes a batch for an ingest worker
func (p *Producer) Submit(ctx context.Context, batch models.IngestBatch) error {
	payload, err := encodeBatch(batch)
	if err != nil {
		return err
	}

	id, err := p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: p.stream,
		Values: map[string]any{payloadField: payload},
	}).Result()
	if err != nil {
		return fmt.Errorf("failed to publish batch: %w", err)
	}

	p.logger.Info().
		Str("stream", p.stream).
		Str("id", id).
		Str("job_id", batch.JobID.String()).
		Int("documents", len(batch.Documents)).
		Msg("batch published")
	return nil
}

func encodeBatch(batch models.IngestBatch) (string, error) {
	data, err := json.Marshal(batch)
	if err != nil {
		return "", fmt.Errorf("failed to encode batch: %w", err)
	}
	return string(data), nil
}
