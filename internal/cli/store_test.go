package cli

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/walkthrough/internal/config"
	"github.com/aretw0/walkthrough/internal/logging"
	"github.com/aretw0/walkthrough/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func roundTrip(t *testing.T, cfg config.StoreConfig, rc config.RedisConfig) {
	t.Helper()
	ctx := context.Background()

	sessions, closeFn, err := OpenSessions(ctx, cfg, rc, logging.NewNop())
	require.NoError(t, err)
	defer func() { assert.NoError(t, closeFn()) }()

	state := domain.NewState("s1")
	state.Phase = domain.PhaseActive
	state.CurrentStep = 2
	state.TotalSteps = 3
	require.NoError(t, sessions.Save(ctx, "s1", state))

	loaded, err := sessions.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 2, loaded.CurrentStep)
}

func TestOpenSessions_Memory(t *testing.T) {
	roundTrip(t, config.StoreConfig{Backend: config.BackendMemory}, config.RedisConfig{})
}

func TestOpenSessions_File(t *testing.T) {
	roundTrip(t, config.StoreConfig{Backend: config.BackendFile, Path: t.TempDir()}, config.RedisConfig{})
}

func TestOpenSessions_SQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tours.db")
	roundTrip(t, config.StoreConfig{Backend: config.BackendSQLite, Path: path}, config.RedisConfig{})
}

func TestOpenSessions_Redis(t *testing.T) {
	mr := miniredis.RunT(t)
	roundTrip(t, config.StoreConfig{Backend: config.BackendRedis}, config.RedisConfig{
		Addr:   mr.Addr(),
		Prefix: "test:",
		TTL:    time.Minute,
	})
	assert.True(t, mr.Exists("test:s1"))
}

func TestOpenSessions_Errors(t *testing.T) {
	ctx := context.Background()

	_, _, err := OpenSessions(ctx, config.StoreConfig{Backend: "etcd"}, config.RedisConfig{}, logging.NewNop())
	assert.ErrorContains(t, err, "unknown store backend")

	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()
	_, _, err = OpenSessions(ctx, config.StoreConfig{Backend: config.BackendRedis}, config.RedisConfig{Addr: addr}, logging.NewNop())
	assert.ErrorContains(t, err, "failed to reach redis")
}
