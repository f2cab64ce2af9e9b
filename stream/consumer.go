package stream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"lawscape-backend/models"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

var ErrMissingPayload = errors.New("stream message has no payload field")

// BatchHandler indexes a batch read from the stream
type BatchHandler interface {
	Submit(ctx context.Context, batch models.IngestBatch) error
}

// Consumer reads ingest batches from a Redis stream as a member of a
// consumer group
type Consumer struct {
	client       *redis.Client
	stream       string
	groupID      string
	consumerName string
	handler      BatchHandler
	logger       *zerolog.Logger
}

// NewConsumer creates a new consumer
func NewConsumer(client *redis.Client, stream, groupID, consumerName string, handler BatchHandler, logger *zerolog.Logger) *Consumer {
	return &Consumer{
		client:       client,
		stream:       stream,
		groupID:      groupID,
		consumerName: consumerName,
		handler:      handler,
		logger:       logger,
	}
}

// Setup creates the stream and consumer group if they do not exist
func (c *Consumer) Setup(ctx context.Context) error {
	err := c.client.XGroupCreateMkStream(ctx, c.stream, c.groupID, "0").Err()
	if err != nil && !strings.HasPrefix(err.Error(), "BUSYGROUP") {
		return fmt.Errorf("failed to create consumer group: %w", err)
	}
	return nil
}

// Start blocks reading the stream until ctx is cancelled
func (c *Consumer) Start(ctx context.Context) error {
	c.logger.Info().
		Str("stream", c.stream).
		Str("group", c.groupID).
		Str("consumer", c.consumerName).
		Msg("consumer started")

	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		streams, err := c.client.XReadGroup(ctx, &redis.XReadGroupArgs{
			Group:    c.groupID,
			Consumer: c.consumerName,
			Streams:  []string{c.stream, ">"},
			Count:    1,
			Block:    2 * time.Second,
		}).Result()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				continue
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			c.logger.Error().Err(err).Msg("failed to read from stream")
			time.Sleep(time.Second)
			continue
		}

		for _, s := range streams {
			for _, msg := range s.Messages {
				c.process(ctx, msg)
			}
		}
	}
}

// process indexes one message. Every message is acknowledged: failures
// are recorded on the job rather than redelivered.
func (c *Consumer) process(ctx context.Context, msg redis.XMessage) {
	defer c.ack(ctx, msg.ID)

	batch, err := decodeBatch(msg.Values)
	if err != nil {
		c.logger.Error().Err(err).Str("id", msg.ID).Msg("failed to decode message")
		return
	}

	c.logger.Info().
		Str("id", msg.ID).
		Str("job_id", batch.JobID.String()).
		Int("documents", len(batch.Documents)).
		Msg("batch received")

	if err := c.handler.Submit(ctx, batch); err != nil {
		c.logger.Error().Err(err).Str("id", msg.ID).Str("job_id", batch.JobID.String()).Msg("batch failed")
		return
	}

	c.logger.Info().Str("id", msg.ID).Str("job_id", batch.JobID.String()).Msg("batch indexed")
}

func (c *Consumer) ack(ctx context.Context, msgID string) {
	if err := c.client.XAck(ctx, c.stream, c.groupID, msgID).Err(); err != nil {
		c.logger.Error().Err(err).Str("id", msgID).Msg("failed to ack message")
	}
}

func decodeBatch(values map[string]any) (models.IngestBatch, error) {
	var batch models.IngestBatch

	payload, ok := values[payloadField].(string)
	if !ok {
		return batch, ErrMissingPayload
	}
	if err := json.Unmarshal([]byte(payload), &batch); err != nil {
		return batch, fmt.Errorf("failed to decode batch: %w", err)
	}
	if _, err := models.ParsePrimaryKey(string(batch.PrimaryKey)); err != nil {
		return batch, err
	}
	for i, doc := range batch.Documents {
		if err := doc.Validate(); err != nil {
			return batch, fmt.Errorf("document %d: %w", i, err)
		}
	}
	if batch.PrimaryKey == "" {
		batch.PrimaryKey = models.PrimaryKeyFragment
	}
	return batch, nil
}
