package cache

import (
	"context"
	"time"
)

// Cache is the optional read-through cache used for score reports. A nil
// Cache is valid everywhere one is accepted.
type Cache interface {
	GetJSON(ctx context.Context, key string, dst any) (hit bool, err error)
	SetJSON(ctx context.Context, key string, val any, ttl time.Duration) error
}
