// Package cache stores pipeline results between runs.
//
// Three stages are cached, each keyed by a hash of its input plus the options
// that affect its output:
//
//   - segments: dataset hash + window + branch options
//   - layout: segments hash + canvas + layout options
//   - artifacts: scene hash + format + theme
//
// [FileCache] backs the CLI, [RedisCache] backs a shared server deployment
// and [NullCache] disables caching.
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with per-entry expiry. A miss is (nil, false, nil).
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Default TTLs per stage. Stage outputs depend only on their key, so the TTL
// bounds disk use rather than staleness.
const (
	TTLSegments = 24 * time.Hour
	TTLLayout   = 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)
