// Package redisstream publishes notifications as entries of Redis streams,
// one stream per topic.
package redisstream

import (
	"context"
	"encoding/json"
	"log/slog"

	"orchestrator/internal/pkg/errs"

	"github.com/redis/go-redis/v9"
)

const (
	FieldKey     = "key"
	FieldPayload = "payload"
)

// DefaultMaxLen caps each stream approximately.
const DefaultMaxLen int64 = 100_000

type Publisher struct {
	client *redis.Client
	maxLen int64
	logger *slog.Logger
}

// NewPublisher parses a redis:// URL and returns a publisher backed by a new client.
func NewPublisher(url string, maxLen int64, logger *slog.Logger) (*Publisher, error) {
	if url == "" {
		return nil, errs.NewValueIsRequiredError("url")
	}
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("url", err)
	}
	return NewPublisherWithClient(redis.NewClient(opts), maxLen, logger), nil
}

func NewPublisherWithClient(client *redis.Client, maxLen int64, logger *slog.Logger) *Publisher {
	if maxLen <= 0 {
		maxLen = DefaultMaxLen
	}
	return &Publisher{
		client: client,
		maxLen: maxLen,
		logger: logger.With("component", "redis_stream_publisher"),
	}
}

func (p *Publisher) Publish(ctx context.Context, topic, key string, payload any) error {
	value, err := json.Marshal(payload)
	if err != nil {
		return errs.NewPublishErrorWithCause(topic, key, err)
	}

	id, err := p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: topic,
		MaxLen: p.maxLen,
		Approx: true,
		Values: map[string]any{
			FieldKey:     key,
			FieldPayload: string(value),
		},
	}).Result()
	if err != nil {
		return errs.NewPublishErrorWithCause(topic, key, err)
	}

	p.logger.DebugContext(ctx, "Stream entry added", "topic", topic, "key", key, "entry_id", id)
	return nil
}

func (p *Publisher) Close() error {
	return p.client.Close()
}
