package cache

import (
	"context"
	"time"
)

// Cache stores JSON-encoded values. The extraction pipeline uses it to skip
// LLM round trips for transcripts it has already seen; a miss is never an
// error, only extra latency.
type Cache interface {
	GetJSON(ctx context.Context, key string, dst any) (hit bool, err error)
	SetJSON(ctx context.Context, key string, val any, ttl time.Duration) error
}
