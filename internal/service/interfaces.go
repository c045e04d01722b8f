package service

import (
	"context"
	"time"
)

// Publisher announces that the document at a logical path changed. The
// realtime hub turns these into change frames for live subscribers.
// Services publish after the database commit; a publish failure is logged
// by the caller but never rolls the write back.
type Publisher interface {
	Publish(ctx context.Context, path string) error
}

// NopPublisher discards change notifications. Used by cmd/migrate and any
// context without a realtime feed.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, string) error { return nil }

// RevocationStore remembers signed-out tokens until they would have
// expired anyway.
type RevocationStore interface {
	Revoke(ctx context.Context, token string, ttl time.Duration) error
	IsRevoked(ctx context.Context, token string) (bool, error)
}
