package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/walkthrough/internal/adapters/file"
	"github.com/aretw0/walkthrough/internal/config"
	"github.com/aretw0/walkthrough/pkg/adapters/memory"
	"github.com/aretw0/walkthrough/pkg/adapters/redis"
	"github.com/aretw0/walkthrough/pkg/adapters/sqlite"
	"github.com/aretw0/walkthrough/pkg/session"
)

// OpenSessions builds the session manager for the configured store backend.
// The returned close function releases the backend and is never nil.
func OpenSessions(ctx context.Context, cfg config.StoreConfig, rc config.RedisConfig, logger *slog.Logger) (*session.Manager, func() error, error) {
	noop := func() error { return nil }
	opts := []session.Option{session.WithLogger(logger)}

	switch cfg.Backend {
	case config.BackendMemory, "":
		return session.NewManager(memory.NewStore(), opts...), noop, nil

	case config.BackendFile:
		return session.NewManager(file.New(cfg.Path), opts...), noop, nil

	case config.BackendSQLite:
		store, err := sqlite.Open(ctx, cfg.Path)
		if err != nil {
			return nil, noop, fmt.Errorf("failed to open sqlite store: %w", err)
		}
		return session.NewManager(store, opts...), store.Close, nil

	case config.BackendRedis:
		var storeOpts []redis.Option
		if rc.Prefix != "" {
			storeOpts = append(storeOpts, redis.WithPrefix(rc.Prefix))
		}
		if rc.TTL > 0 {
			storeOpts = append(storeOpts, redis.WithTTL(rc.TTL))
		}
		store := redis.New(rc.Addr, rc.Password, rc.DB, storeOpts...)
		if err := store.Client().Ping(ctx).Err(); err != nil {
			_ = store.Close()
			return nil, noop, fmt.Errorf("failed to reach redis at %s: %w", rc.Addr, err)
		}
		// Replicas sharing the store also share the lock namespace.
		opts = append(opts, session.WithLocker(redis.NewLocker(store.Client(), store.Prefix())))
		logger.Debug("using redis session store", "addr", rc.Addr, "prefix", store.Prefix())
		return session.NewManager(store, opts...), store.Close, nil

	default:
		return nil, noop, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
}
