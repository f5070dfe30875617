// Package redisbus publishes order status change notifications over a Redis
// pub/sub channel. Subscribers such as a kitchen display or a notification
// service receive a JSON payload for every transition.
package redisbus

import (
	"context"
	"encoding/json"
	"fmt"

	"canteen/internal/core/ports"
	"canteen/internal/pkg/errs"

	"github.com/redis/go-redis/v9"
)

// StatusChangePublisher sends status change events to a Redis channel.
//
// Example:
//
//	publisher, err := redisbus.NewStatusChangePublisher(client, "orders.status")
//	if err != nil {
//	    return err
//	}
//	err = publisher.Publish(ctx, change)
type StatusChangePublisher struct {
	client  *redis.Client
	channel string
}

// NewStatusChangePublisher creates a publisher bound to the given channel.
//
// Parameters:
//   - client: connected Redis client.
//   - channel: pub/sub channel name, must not be empty.
func NewStatusChangePublisher(client *redis.Client, channel string) (*StatusChangePublisher, error) {
	if client == nil {
		return nil, errs.NewValueIsRequiredError("client")
	}
	if channel == "" {
		return nil, errs.NewValueIsRequiredError("channel")
	}

	return &StatusChangePublisher{
		client:  client,
		channel: channel,
	}, nil
}

// Publish marshals the change to JSON and publishes it. Delivery is
// fire-and-forget: Redis pub/sub keeps no backlog for absent subscribers.
func (p *StatusChangePublisher) Publish(ctx context.Context, change ports.StatusChange) error {
	payload, err := json.Marshal(change)
	if err != nil {
		return fmt.Errorf("marshal status change: %w", err)
	}

	if err := p.client.Publish(ctx, p.channel, payload).Err(); err != nil {
		return fmt.Errorf("publish to %s: %w", p.channel, err)
	}

	return nil
}
