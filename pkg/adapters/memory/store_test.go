package memory_test

import (
	"context"
	"testing"

	"github.com/aretw0/walkthrough/pkg/adapters/memory"
	"github.com/aretw0/walkthrough/pkg/domain"
	"github.com/aretw0/walkthrough/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_Contract(t *testing.T) {
	store := memory.NewStore()
	ports.RunStateStoreContract(t, store)
}

func TestMemoryStore_Isolation(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()

	state := domain.NewState("iso")
	state.History = []int{1}
	require.NoError(t, store.Save(ctx, "iso", state))

	state.History = append(state.History, 2)

	loaded, err := store.Load(ctx, "iso")
	require.NoError(t, err)
	assert.Equal(t, []int{1}, loaded.History)

	loaded.History[0] = 9
	again, err := store.Load(ctx, "iso")
	require.NoError(t, err)
	assert.Equal(t, []int{1}, again.History)
}

func TestMemoryStore_ListIsSorted(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	for _, id := range []string{"c", "a", "b"} {
		require.NoError(t, store.Save(ctx, id, domain.NewState(id)))
	}

	ids, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, ids)
}
