package adapter

import (
	"context"
	"time"
)

// Locker is a small distributed-lock port. Used to serialize renewals per
// user: the renewal path reads the current expiry and writes a new one, so
// two concurrent renewals without a lock would race last-write-wins.
type Locker interface {
	TryLock(ctx context.Context, key string, ttl time.Duration) (token string, err error)
	Unlock(ctx context.Context, key, token string) error
}
