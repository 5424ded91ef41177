package cache

import (
	"context"
	"errors"
	"time"
)

// ErrMiss is returned by Get when the key does not exist.
var ErrMiss = errors.New("cache: key not found")

// Cache is a minimal key/value cache interface (e.g. Redis).
type Cache interface {
	// Ping checks if the cache is reachable.
	Ping(ctx context.Context) error

	// Set stores a value with the given TTL.
	Set(ctx context.Context, key string, value string, ttl time.Duration) error

	// SetIfAbsent stores a value only when key does not exist yet and
	// reports whether it did.
	SetIfAbsent(ctx context.Context, key string, value string, ttl time.Duration) (bool, error)

	// Get retrieves a value by key, or ErrMiss.
	Get(ctx context.Context, key string) (string, error)

	// Del removes a key. No-op if the key does not exist.
	Del(ctx context.Context, key string) error
}
