package ports

import (
	"context"
	"testing"
	"time"

	"github.com/cybercell/helpline/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunSessionStoreContract runs a suite of tests to verify that a SessionStore
// implementation adheres to the defined interface contract.
func RunSessionStoreContract(t *testing.T, store SessionStore) {
	ctx := context.Background()
	identity := "whatsapp:+contract-" + time.Now().Format("20060102150405")

	t.Run("Save and Get", func(t *testing.T) {
		sess := domain.NewSession(identity, time.Now().UTC().Truncate(time.Second))
		sess.State = domain.StateMobile
		sess.Personal.Name = "John"

		err := store.Save(ctx, sess)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Get(ctx, identity)
		require.NoError(t, err, "Get should not return error")
		assert.Equal(t, domain.StateMobile, loaded.State)
		assert.Equal(t, "John", loaded.Personal.Name)
		assert.WithinDuration(t, sess.LastActivity, loaded.LastActivity, time.Second)
	})

	t.Run("Get Non-Existent", func(t *testing.T) {
		_, err := store.Get(ctx, "non-existent-"+identity)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	})

	t.Run("Upsert replaces state and data together", func(t *testing.T) {
		sess := domain.NewSession(identity, time.Now().UTC())
		sess.State = domain.StateDOB
		sess.Personal.Mobile = "+919876543210"
		require.NoError(t, store.Save(ctx, sess))

		loaded, err := store.Get(ctx, identity)
		require.NoError(t, err)
		assert.Equal(t, domain.StateDOB, loaded.State)
		assert.Equal(t, "+919876543210", loaded.Personal.Mobile)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, domain.NewSession(identity, time.Now().UTC())))

		err := store.Delete(ctx, identity)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Get(ctx, identity)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound, "Get after Delete should return ErrSessionNotFound")

		assert.NoError(t, store.Delete(ctx, identity), "Deleting a missing session should not error")
	})

	t.Run("DeleteExpired", func(t *testing.T) {
		now := time.Now().UTC()
		stale := domain.NewSession(identity+"-stale", now.Add(-40*time.Minute))
		fresh := domain.NewSession(identity+"-fresh", now)
		require.NoError(t, store.Save(ctx, stale))
		require.NoError(t, store.Save(ctx, fresh))
		defer func() {
			_ = store.Delete(ctx, stale.Identity)
			_ = store.Delete(ctx, fresh.Identity)
		}()

		removed, err := store.DeleteExpired(ctx, now.Add(-30*time.Minute))
		require.NoError(t, err)
		assert.GreaterOrEqual(t, removed, 1)

		_, err = store.Get(ctx, stale.Identity)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)

		_, err = store.Get(ctx, fresh.Identity)
		assert.NoError(t, err, "sweep must not touch sessions newer than the cutoff")
	})
}
