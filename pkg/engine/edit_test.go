package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cybercell/helpline/pkg/domain"
)

func editSession() *domain.Session {
	sess := domain.NewSession(testIdentity, testNow)
	sess.Personal = domain.PersonalInfo{
		Name: "John", Mobile: "+919876543210", DOB: "02-03-2001",
		FatherName: "Kumar", District: "Chennai", PinCode: "600001",
	}
	sess.Transactions = []domain.Transaction{
		{Date: "25-10-2024", Time: "02:30 PM", BankName: "SBI",
			AccountNo: "123456789012", Amount: "₹5000.00", TransactionID: "TXN1234567890"},
	}
	sess.TransactionCount = 1
	return sess
}

func TestEditField_PersonalFields(t *testing.T) {
	sess := editSession()

	confirmation, err := EditField(sess, "1.1", "priya sharma", testNow)
	require.NoError(t, err)
	assert.Equal(t, "✅ Field 1.1 updated: Priya Sharma", confirmation)
	assert.Equal(t, "Priya Sharma", sess.Personal.Name)

	confirmation, err = EditField(sess, "1.6", "110001", testNow)
	require.NoError(t, err)
	assert.Equal(t, "✅ Field 1.6 updated: 110001", confirmation)
	assert.Equal(t, "110001", sess.Personal.PinCode)
}

func TestEditField_TransactionFields(t *testing.T) {
	sess := editSession()

	confirmation, err := EditField(sess, "2.1.2", "14:45", testNow)
	require.NoError(t, err)
	assert.Equal(t, "✅ Trans #1 field 2 updated: 02:45 PM", confirmation)
	assert.Equal(t, "02:45 PM", sess.Transactions[0].Time)

	confirmation, err = EditField(sess, "2.1.6", "txn9876543210", testNow)
	require.NoError(t, err)
	assert.Equal(t, "✅ Trans #1 field 6 updated: TXN9876543210", confirmation)
}

func TestEditField_Idempotent(t *testing.T) {
	sess := editSession()

	first, err := EditField(sess, "1.1", "priya", testNow)
	require.NoError(t, err)
	second, err := EditField(sess, "1.1", "priya", testNow)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, "Priya", sess.Personal.Name)
}

func TestEditField_RejectsMalformedPaths(t *testing.T) {
	sess := editSession()

	for _, path := range []string{"", "1", "1.7", "1.0", "3.1", "2.1", "2.1.7", "2.x.1", "1.1.1.1"} {
		_, err := EditField(sess, path, "whatever", testNow)
		assert.Error(t, err, "path %q must be rejected", path)
	}
	assert.Equal(t, "John", sess.Personal.Name, "rejected edits leave data untouched")
}

func TestEditField_TransactionIndexOutOfRange(t *testing.T) {
	sess := editSession()

	_, err := EditField(sess, "2.2.1", "25-10-2024", testNow)
	assert.ErrorContains(t, err, "Invalid transaction number")

	_, err = EditField(sess, "2.0.1", "25-10-2024", testNow)
	assert.ErrorContains(t, err, "Invalid transaction number")
}

func TestEditField_ValidatorRejectionKeepsOldValue(t *testing.T) {
	sess := editSession()

	_, err := EditField(sess, "1.2", "12345", testNow)
	require.Error(t, err)
	assert.Equal(t, "+919876543210", sess.Personal.Mobile)

	_, err = EditField(sess, "2.1.1", "31-02-2024", time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC))
	require.Error(t, err)
	assert.Equal(t, "25-10-2024", sess.Transactions[0].Date)
}
