package repository

import (
	"context"
	"time"
)

// CacheRepository is a byte-oriented key/value cache with area helpers.
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)

	// Claim sets key only when it is absent and reports whether it did.
	Claim(ctx context.Context, key string, ttl time.Duration) (bool, error)

	// GetArea returns the cached area for a rounded coordinate key; found is
	// false on a miss.
	GetArea(ctx context.Context, coordKey string) (area string, found bool, err error)
	SetArea(ctx context.Context, coordKey, area string, ttl time.Duration) error
}
