// Package realtime bridges document writes to live subscribers. Services
// publish logical paths to Redis; the hub fans each commit out to the
// websocket connections subscribed to that path, preserving per-path
// order.
package realtime

import (
	"context"

	"github.com/redis/go-redis/v9"
)

const channelPrefix = "safebite:doc:"

func channelFor(path string) string {
	return channelPrefix + path
}

// Bus publishes document-change notifications to Redis. It satisfies
// service.Publisher.
type Bus struct {
	redis *redis.Client
}

func NewBus(redisClient *redis.Client) *Bus {
	return &Bus{redis: redisClient}
}

// Publish announces that the document at path changed. The payload is the
// path itself; subscribers fetch the current value when they see it.
func (b *Bus) Publish(ctx context.Context, path string) error {
	return b.redis.Publish(ctx, channelFor(path), path).Err()
}
