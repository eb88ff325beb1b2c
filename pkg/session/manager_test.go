package session_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/walkthrough/pkg/adapters/memory"
	"github.com/aretw0/walkthrough/pkg/adapters/redis"
	"github.com/aretw0/walkthrough/pkg/domain"
	"github.com/aretw0/walkthrough/pkg/ports"
	"github.com/aretw0/walkthrough/pkg/session"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// slowStore adds latency so missing locks would lose updates.
type slowStore struct {
	*memory.Store
}

func (s slowStore) Load(ctx context.Context, id string) (*domain.State, error) {
	time.Sleep(2 * time.Millisecond)
	return s.Store.Load(ctx, id)
}

func (s slowStore) Save(ctx context.Context, id string, state *domain.State) error {
	time.Sleep(2 * time.Millisecond)
	return s.Store.Save(ctx, id, state)
}

func TestManager_UpdateIsSerialised(t *testing.T) {
	manager := session.NewManager(slowStore{memory.NewStore()})
	ctx := context.Background()
	id := "race-test"

	_, _, err := manager.LoadOrCreate(ctx, id)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := manager.Update(ctx, id, func(_ context.Context, s *domain.State) (*domain.State, error) {
				s.History = append(s.History, len(s.History)+1)
				return s, nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	state, err := manager.Load(ctx, id)
	require.NoError(t, err)
	assert.Len(t, state.History, 20, "no read-modify-write was lost")
}

func TestManager_LoadOrCreate(t *testing.T) {
	manager := session.NewManager(slowStore{memory.NewStore()})
	ctx := context.Background()
	id := "atomic-init"

	var wg sync.WaitGroup
	var mu sync.Mutex
	created := 0
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			state, loaded, err := manager.LoadOrCreate(ctx, id)
			assert.NoError(t, err)
			assert.NotNil(t, state)
			if !loaded {
				mu.Lock()
				created++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, created)

	state, err := manager.Load(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, domain.PhaseInactive, state.Phase)
	assert.Equal(t, id, state.SessionID)
}

func TestManager_UpdateMissingSession(t *testing.T) {
	manager := session.NewManager(memory.NewStore())
	called := false

	_, err := manager.Update(context.Background(), "nope", func(_ context.Context, s *domain.State) (*domain.State, error) {
		called = true
		return s, nil
	})
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	assert.False(t, called)
}

func TestManager_UpdateErrorSkipsSave(t *testing.T) {
	store := memory.NewStore()
	manager := session.NewManager(store)
	ctx := context.Background()

	_, _, err := manager.LoadOrCreate(ctx, "s")
	require.NoError(t, err)

	boom := errors.New("boom")
	_, err = manager.Update(ctx, "s", func(_ context.Context, s *domain.State) (*domain.State, error) {
		s.Phase = domain.PhaseEnded
		return nil, boom
	})
	assert.ErrorIs(t, err, boom)

	state, err := store.Load(ctx, "s")
	require.NoError(t, err)
	assert.Equal(t, domain.PhaseInactive, state.Phase)
}

type failingLocker struct{}

func (failingLocker) Lock(ctx context.Context, key string, ttl time.Duration) (ports.UnlockFunc, error) {
	return nil, errors.New("unavailable")
}

func TestManager_LockerFailure(t *testing.T) {
	manager := session.NewManager(memory.NewStore(), session.WithLocker(failingLocker{}))

	err := manager.Save(context.Background(), "s", domain.NewState("s"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "distributed lock")
}

func TestManager_RedisLocker(t *testing.T) {
	mr := miniredis.RunT(t)
	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	defer client.Close()

	store := redis.NewFromClient(client)
	locker := redis.NewLocker(client, store.Prefix())
	manager := session.NewManager(store, session.WithLocker(locker), session.WithLockTTL(5*time.Second))
	ctx := context.Background()

	_, _, err := manager.LoadOrCreate(ctx, "shared")
	require.NoError(t, err)

	_, err = manager.Update(ctx, "shared", func(_ context.Context, s *domain.State) (*domain.State, error) {
		assert.True(t, mr.Exists(redis.DefaultPrefix+"lock:shared"), "lock is held during the update")
		s.TotalSteps = 3
		return s, nil
	})
	require.NoError(t, err)
	assert.False(t, mr.Exists(redis.DefaultPrefix+"lock:shared"))

	state, err := manager.Load(ctx, "shared")
	require.NoError(t, err)
	assert.Equal(t, 3, state.TotalSteps)
}
