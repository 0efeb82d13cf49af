package pdf

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/cybercell/helpline/pkg/domain"
)

// Renderer implements ports.Renderer, producing the complaint form as an A4
// PDF mirroring the paper layout: numbered personal-info block, one block per
// transaction, generated-on footer.
type Renderer struct {
	clock func() time.Time
}

type Option func(*Renderer)

// WithClock overrides the time source used in the footer.
func WithClock(clock func() time.Time) Option {
	return func(r *Renderer) {
		r.clock = clock
	}
}

// NewRenderer creates a PDF renderer.
func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{clock: time.Now}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render produces the complaint document as an opaque byte buffer.
func (r *Renderer) Render(ctx context.Context, complaint *domain.Complaint) ([]byte, error) {
	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetAutoPageBreak(true, 20)
	doc.AddPage()
	tr := doc.UnicodeTranslatorFromDescriptor("")

	doc.SetFont("Helvetica", "B", 18)
	doc.CellFormat(0, 10, "CYBER CRIME COMPLAINT FORM", "", 1, "C", false, 0, "")
	x, y := doc.GetX(), doc.GetY()
	doc.Line(x, y, 200, y)
	doc.Ln(8)

	doc.SetFont("Helvetica", "B", 14)
	doc.CellFormat(0, 8, "1. PERSONAL INFORMATION", "", 1, "L", false, 0, "")
	doc.Ln(2)

	personal := []struct {
		serial, label, value string
	}{
		{"1.1", "Name of Complainant", complaint.Personal.Name},
		{"1.2", "Mobile No of Complainant", complaint.Personal.Mobile},
		{"1.3", "Date of Birth", complaint.Personal.DOB},
		{"1.4", "Father's Name", complaint.Personal.FatherName},
		{"1.5", "District", complaint.Personal.District},
		{"1.6", "PIN Code", complaint.Personal.PinCode},
	}
	for _, row := range personal {
		r.row(doc, tr, row.serial, row.label, row.value, 10)
	}
	doc.Ln(6)

	doc.SetFont("Helvetica", "B", 14)
	doc.CellFormat(0, 8, "2. TRANSACTION DETAILS", "", 1, "L", false, 0, "")
	doc.Ln(2)

	for i, tx := range complaint.Transactions {
		n := i + 1
		doc.SetFont("Helvetica", "B", 12)
		doc.CellFormat(0, 7, fmt.Sprintf("Transaction #%d", n), "", 1, "L", false, 0, "")

		rows := []struct {
			serial, label, value string
		}{
			{fmt.Sprintf("2.%d.1", n), "Date", tx.Date},
			{fmt.Sprintf("2.%d.2", n), "Time", tx.Time},
			{fmt.Sprintf("2.%d.3", n), "Bank Name", tx.BankName},
			{fmt.Sprintf("2.%d.4", n), "Bank Account No", tx.AccountNo},
			{fmt.Sprintf("2.%d.5", n), "Amount", tx.Amount},
			{fmt.Sprintf("2.%d.6", n), "Transaction ID", tx.TransactionID},
		}
		for _, row := range rows {
			r.row(doc, tr, row.serial, row.label, row.value, 9)
		}
		doc.Ln(4)
	}

	doc.Ln(4)
	x, y = doc.GetX(), doc.GetY()
	doc.Line(x, y, 200, y)
	doc.Ln(4)
	doc.SetFont("Helvetica", "", 9)
	doc.CellFormat(0, 5, fmt.Sprintf("Generated on: %s", r.clock().Format("02-01-2006 15:04:05")), "", 1, "L", false, 0, "")
	doc.CellFormat(0, 5, "This is a computer-generated document for cyber crime complaint registration.", "", 1, "L", false, 0, "")

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render complaint pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) row(doc *fpdf.Fpdf, tr func(string) string, serial, label, value string, size float64) {
	if value == "" {
		value = "N/A"
	}
	doc.SetFont("Helvetica", "B", size)
	doc.CellFormat(15, 6, serial, "", 0, "L", false, 0, "")
	doc.SetFont("Helvetica", "", size)
	doc.CellFormat(60, 6, label+":", "", 0, "L", false, 0, "")
	doc.CellFormat(0, 6, tr(value), "", 1, "L", false, 0, "")
}
