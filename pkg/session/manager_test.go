package session_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cybercell/helpline/pkg/adapters/memory"
	"github.com/cybercell/helpline/pkg/domain"
	"github.com/cybercell/helpline/pkg/session"
)

func TestManager_LoadSaveDelete(t *testing.T) {
	mgr := session.NewManager(memory.NewStore())
	ctx := context.Background()
	now := time.Now()

	_, err := mgr.Load(ctx, "id-1")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	sess := domain.NewSession("id-1", now)
	require.NoError(t, mgr.Save(ctx, sess))

	loaded, err := mgr.Load(ctx, "id-1")
	require.NoError(t, err)
	assert.Equal(t, domain.StateMoneyLoss, loaded.State)

	require.NoError(t, mgr.Delete(ctx, "id-1"))
	_, err = mgr.Load(ctx, "id-1")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestManager_WithLockSerializesSameIdentity(t *testing.T) {
	mgr := session.NewManager(memory.NewStore())
	ctx := context.Background()

	counter := 0
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = mgr.WithLock(ctx, "same", func(ctx context.Context) error {
				counter++
				return nil
			})
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, counter)
}

func TestManager_Expired(t *testing.T) {
	mgr := session.NewManager(memory.NewStore(), session.WithTimeout(30*time.Minute))
	now := time.Now()
	sess := domain.NewSession("id-1", now)

	assert.False(t, mgr.Expired(sess, now))
	assert.False(t, mgr.Expired(sess, now.Add(30*time.Minute)), "boundary is inclusive of the timeout")
	assert.True(t, mgr.Expired(sess, now.Add(30*time.Minute+time.Second)))
}

func TestManager_SweepExpired(t *testing.T) {
	store := memory.NewStore()
	mgr := session.NewManager(store, session.WithTimeout(30*time.Minute))
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, store.Save(ctx, domain.NewSession("stale", now.Add(-time.Hour))))
	require.NoError(t, store.Save(ctx, domain.NewSession("fresh", now)))

	removed := mgr.SweepExpired(ctx, now)
	assert.Equal(t, 1, removed)

	_, err := store.Get(ctx, "stale")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	_, err = store.Get(ctx, "fresh")
	assert.NoError(t, err)
}

func TestManager_DefaultTimeout(t *testing.T) {
	mgr := session.NewManager(memory.NewStore())
	assert.Equal(t, 30*time.Minute, mgr.Timeout())
}
