package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/SscSPs/billing_engine/internal/core/domain"
	portssvc "github.com/SscSPs/billing_engine/internal/core/ports/services"
	redis "github.com/redis/go-redis/v9"
)

// defaultMaxLen caps the stream length. Trimming is approximate (MAXLEN ~).
const defaultMaxLen = 100_000

// streamAdder is the part of *redis.Client the publisher needs.
type streamAdder interface {
	XAdd(ctx context.Context, a *redis.XAddArgs) *redis.StringCmd
}

// RedisStreamPublisher appends document events to a Redis stream.
// Each entry carries the event type, the document id and the JSON encoded event.
type RedisStreamPublisher struct {
	client  streamAdder
	stream  string
	maxLen  int64
	timeout time.Duration
}

var _ portssvc.EventPublisher = (*RedisStreamPublisher)(nil)

// NewRedisStreamPublisher creates a publisher writing to stream.
func NewRedisStreamPublisher(client *redis.Client, stream string) *RedisStreamPublisher {
	return newRedisStreamPublisher(client, stream)
}

func newRedisStreamPublisher(client streamAdder, stream string) *RedisStreamPublisher {
	return &RedisStreamPublisher{
		client:  client,
		stream:  stream,
		maxLen:  defaultMaxLen,
		timeout: 2 * time.Second,
	}
}

// Publish adds event to the stream.
func (p *RedisStreamPublisher) Publish(ctx context.Context, event domain.DocumentEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode %s event: %w", event.Type, err)
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	err = p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: p.stream,
		MaxLen: p.maxLen,
		Approx: true,
		Values: map[string]any{
			"event_id":    event.EventID,
			"type":        string(event.Type),
			"document_id": event.DocumentID,
			"payload":     string(payload),
		},
	}).Err()
	if err != nil {
		return fmt.Errorf("failed to append %s event to stream %s: %w", event.Type, p.stream, err)
	}
	return nil
}

// NewRedisClient parses redisURL and verifies the connection.
func NewRedisClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	return client, nil
}
