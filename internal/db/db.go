// Package db defines storage contracts shared by repositories.
package db

import (
	"context"
	"errors"
	"time"
)

// ErrKeyNotFound signals a cache miss in a key-value store.
var ErrKeyNotFound = errors.New("key not found")

// KV is a key-value store used for caching.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Ping(ctx context.Context) error
	Close()
}
