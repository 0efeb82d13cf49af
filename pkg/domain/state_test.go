package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/cybercell/helpline/pkg/domain"
)

func TestState_Known(t *testing.T) {
	for _, s := range []domain.State{
		domain.StateMoneyLoss, domain.StateName, domain.StateMobile,
		domain.StateDOB, domain.StateFatherName, domain.StateDistrict,
		domain.StatePinCode, domain.StateTransactionCount,
		domain.StateTransDate, domain.StateTransTime, domain.StateTransBank,
		domain.StateTransAccount, domain.StateTransAmount, domain.StateTransID,
		domain.StateConfirm, domain.StateEdit,
	} {
		assert.True(t, s.Known(), "state %q", s)
	}

	assert.False(t, domain.State("bogus").Known())
	assert.False(t, domain.State("").Known())
}

func TestSession_CurrentTxAppendsSlots(t *testing.T) {
	sess := domain.NewSession("whatsapp:+911", time.Now())
	sess.TransactionCount = 2

	tx := sess.CurrentTx()
	tx.Date = "25-10-2024"
	assert.Len(t, sess.Transactions, 1)
	assert.Equal(t, "25-10-2024", sess.Transactions[0].Date)

	assert.Same(t, tx, sess.CurrentTx(), "repeated calls return the same slot")

	sess.CurrentTransaction = 1
	sess.CurrentTx().Date = "26-10-2024"
	assert.Len(t, sess.Transactions, 2)
	assert.Equal(t, "26-10-2024", sess.Transactions[1].Date)
}
