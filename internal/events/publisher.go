// Package events publishes observability events to Redis Streams. Publishing
// is optional; with no Redis configured every publish is a no-op.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/jonesrussell/problem-finder/internal/logger"
)

// StreamName is the Redis stream all problem-finder events land on.
const StreamName = "problem-finder:events"

// asyncPublishTimeout bounds fire-and-forget publishes.
const asyncPublishTimeout = 5 * time.Second

// EventType identifies what happened.
type EventType string

const (
	// EventProblemViewed fires when a detail page is rendered.
	EventProblemViewed EventType = "problem.viewed"
	// EventCatalogFallback fires when the catalog degrades to fixture data.
	EventCatalogFallback EventType = "catalog.fallback"
)

// Event is the payload written to the stream.
type Event struct {
	EventID   uuid.UUID `json:"event_id"`
	EventType EventType `json:"event_type"`
	ProblemID string    `json:"problem_id,omitempty"`
	Reason    string    `json:"reason,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Publisher writes events to a Redis stream. A nil Publisher is valid and
// silently drops all events.
type Publisher struct {
	client *redis.Client
	log    logger.Logger
}

// NewPublisher creates a publisher. Returns nil if client is nil.
func NewPublisher(client *redis.Client, log logger.Logger) *Publisher {
	if client == nil {
		return nil
	}
	return &Publisher{
		client: client,
		log:    log,
	}
}

// Publish sends an event to the stream.
func (p *Publisher) Publish(ctx context.Context, event Event) error {
	if p == nil || p.client == nil {
		return nil
	}

	if event.EventID == uuid.Nil {
		event.EventID = uuid.New()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	result := p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: StreamName,
		Values: map[string]any{
			"event": string(payload),
		},
	})
	if publishErr := result.Err(); publishErr != nil {
		if p.log != nil {
			p.log.Error("Failed to publish event",
				logger.String("event_type", string(event.EventType)),
				logger.Error(publishErr),
			)
		}
		return fmt.Errorf("publish to stream: %w", publishErr)
	}

	if p.log != nil {
		p.log.Debug("Published event",
			logger.String("event_type", string(event.EventType)),
			logger.String("stream_id", result.Val()),
		)
	}
	return nil
}

// PublishAsync publishes an event in the background. Errors are logged, not
// returned.
func (p *Publisher) PublishAsync(event Event) {
	if p == nil {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), asyncPublishTimeout)
		defer cancel()

		if err := p.Publish(ctx, event); err != nil && p.log != nil {
			p.log.Error("Async publish failed",
				logger.String("event_type", string(event.EventType)),
				logger.Error(err),
			)
		}
	}()
}
