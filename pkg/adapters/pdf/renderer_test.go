package pdf_test

import (
	"context"
	"testing"
	"time"

	"github.com/cybercell/helpline/pkg/adapters/pdf"
	"github.com/cybercell/helpline/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderer_ProducesPDF(t *testing.T) {
	renderer := pdf.NewRenderer(pdf.WithClock(func() time.Time {
		return time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)
	}))

	complaint := &domain.Complaint{
		ID:       1,
		Identity: "whatsapp:+919876543210",
		Personal: domain.PersonalInfo{
			Name:       "John",
			Mobile:     "+919876543210",
			DOB:        "02-03-2001",
			FatherName: "Kumar S.",
			District:   "Chennai",
			PinCode:    "600001",
		},
		Transactions: []domain.Transaction{
			{Date: "25-10-2024", Time: "02:30 PM", BankName: "STATE BANK OF INDIA",
				AccountNo: "123456789012", Amount: "₹5000.00", TransactionID: "TXN1234567890"},
			{Date: "26-10-2024", Time: "11:00 AM", BankName: "HDFC BANK",
				AccountNo: "00000012345678901", Amount: "₹250.00", TransactionID: "1234ABCD5678EFGH"},
		},
		Status: domain.StatusPending,
	}

	data, err := renderer.Render(context.Background(), complaint)
	require.NoError(t, err)
	require.NotEmpty(t, data)
	assert.Equal(t, "%PDF", string(data[:4]), "output should be a PDF document")
}

func TestRenderer_EmptyFieldsRenderAsNA(t *testing.T) {
	renderer := pdf.NewRenderer()

	data, err := renderer.Render(context.Background(), &domain.Complaint{
		Transactions: []domain.Transaction{{}},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}
