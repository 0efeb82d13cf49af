package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/cybercell/helpline/pkg/adapters/sqlite"
	"github.com/cybercell/helpline/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *sqlite.Store {
	t.Helper()
	db, err := sqlite.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	store := sqlite.NewStore(db)
	require.NoError(t, store.Init(context.Background()))
	return store
}

func sample(identity string, created time.Time) *domain.Complaint {
	return &domain.Complaint{
		Identity: identity,
		Personal: domain.PersonalInfo{
			Name:       "John",
			Mobile:     "+919876543210",
			DOB:        "02-03-2001",
			FatherName: "Kumar S.",
			District:   "Chennai",
			PinCode:    "600001",
		},
		Transactions: []domain.Transaction{{
			Date:          "25-10-2024",
			Time:          "02:30 PM",
			BankName:      "STATE BANK OF INDIA",
			AccountNo:     "123456789012",
			Amount:        "₹5000.00",
			TransactionID: "TXN1234567890",
		}},
		CreatedAt: created,
	}
}

func TestStore_InsertAndListNewestFirst(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()
	now := time.Now().UTC()

	first, err := store.Insert(ctx, sample("whatsapp:+911111111111", now.Add(-time.Hour)))
	require.NoError(t, err)
	second, err := store.Insert(ctx, sample("whatsapp:+912222222222", now))
	require.NoError(t, err)
	assert.Greater(t, second, first)

	complaints, err := store.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, complaints, 2)

	assert.Equal(t, second, complaints[0].ID, "newest complaint listed first")
	assert.Equal(t, "John", complaints[0].Personal.Name)
	assert.Equal(t, domain.StatusPending, complaints[0].Status)
	require.Len(t, complaints[0].Transactions, 1)
	assert.Equal(t, "₹5000.00", complaints[0].Transactions[0].Amount)
}

func TestStore_UpdateStatus(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	id, err := store.Insert(ctx, sample("whatsapp:+911111111111", time.Now().UTC()))
	require.NoError(t, err)

	// Status only: transactions untouched.
	require.NoError(t, store.UpdateStatus(ctx, id, "In Progress", nil))

	complaints, err := store.ListAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, "In Progress", complaints[0].Status)
	require.Len(t, complaints[0].Transactions, 1)

	// Status with replacement transactions.
	replacement := []domain.Transaction{{Date: "01-01-2025", BankName: "HDFC BANK"}}
	require.NoError(t, store.UpdateStatus(ctx, id, "Resolved", replacement))

	complaints, err = store.ListAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Resolved", complaints[0].Status)
	require.Len(t, complaints[0].Transactions, 1)
	assert.Equal(t, "HDFC BANK", complaints[0].Transactions[0].BankName)

	assert.ErrorIs(t, store.UpdateStatus(ctx, 9999, "Resolved", nil), domain.ErrComplaintNotFound)
}

func TestStore_UpdateHandler(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	id, err := store.Insert(ctx, sample("whatsapp:+911111111111", time.Now().UTC()))
	require.NoError(t, err)

	require.NoError(t, store.UpdateHandler(ctx, id, "attender1", "Claimed"))

	complaints, err := store.ListAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, "attender1", complaints[0].Handler)
	assert.Equal(t, "Claimed", complaints[0].Status)

	assert.ErrorIs(t, store.UpdateHandler(ctx, 9999, "attender1", "Claimed"), domain.ErrComplaintNotFound)
}
