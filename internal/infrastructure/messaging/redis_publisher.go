package messaging

import (
	"context"
	"fmt"

	"github.com/celebigilfatih/omt/internal/domain/entity"
	"github.com/celebigilfatih/omt/internal/domain/repository"
	"github.com/celebigilfatih/omt/pkg/messaging"
)

// redisEventPublisher fans domain events out on a Redis channel.
type redisEventPublisher struct {
	redisClient messaging.RedisClient
	channel     string
}

// NewRedisEventPublisher publishes every event to channel and to
// "<channel>:<event type>".
func NewRedisEventPublisher(client messaging.RedisClient, channel string) repository.EventPublisher {
	return &redisEventPublisher{
		redisClient: client,
		channel:     channel,
	}
}

func (p *redisEventPublisher) Publish(ctx context.Context, event entity.Event) error {
	if event.Type == "" {
		return fmt.Errorf("event type is required")
	}

	if err := p.redisClient.Publish(ctx, p.channel, event); err != nil {
		return fmt.Errorf("failed to publish %s: %w", event.Type, err)
	}

	typedChannel := TypedChannel(p.channel, event.Type)
	if err := p.redisClient.Publish(ctx, typedChannel, event); err != nil {
		return fmt.Errorf("failed to publish %s on %s: %w", event.Type, typedChannel, err)
	}

	return nil
}

// TypedChannel is the per-type channel name for subscribers interested in
// one kind of event.
func TypedChannel(channel string, eventType entity.EventType) string {
	return fmt.Sprintf("%s:%s", channel, eventType)
}
