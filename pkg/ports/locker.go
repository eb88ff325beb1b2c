package ports

import (
	"context"
	"time"
)

// UnlockFunc releases a lock taken by DistributedLocker.Lock.
type UnlockFunc func(ctx context.Context) error

// DistributedLocker serialises tour commands on one session across server replicas.
// session.Manager takes it around every load-apply-save cycle.
type DistributedLocker interface {
	// Lock blocks until key is held or ctx is done. The lock expires after ttl
	// so a crashed replica cannot wedge a session; the caller must still call the UnlockFunc.
	Lock(ctx context.Context, key string, ttl time.Duration) (UnlockFunc, error)
}
