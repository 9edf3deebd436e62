package cache

import (
	"context"
	"time"
)

// ByteCache stores opaque byte payloads under string keys.
type ByteCache interface {
	// Get returns the cached payload, or ok=false on a miss or backend failure.
	Get(ctx context.Context, key string) (data []byte, ok bool)

	// Set stores data with the given TTL. Backend failures are logged, not returned.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration)
}

// Nop is a ByteCache that never stores anything.
type Nop struct{}

func (Nop) Get(context.Context, string) ([]byte, bool)            { return nil, false }
func (Nop) Set(context.Context, string, []byte, time.Duration) {}
