package ports

import (
	"context"
	"time"
)

// UnlockFunc releases a lock acquired by DistributedLocker.
type UnlockFunc func(ctx context.Context) error

// DistributedLocker provides mutual exclusion for runs targeting the same
// endpoint, possibly across processes.
type DistributedLocker interface {
	// Lock blocks until the lock for key is held or ctx is done. The returned
	// UnlockFunc MUST be called to release it.
	Lock(ctx context.Context, key string, ttl time.Duration) (UnlockFunc, error)
}
