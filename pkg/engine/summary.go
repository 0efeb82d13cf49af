package engine

import (
	"fmt"
	"strings"

	"github.com/cybercell/helpline/pkg/domain"
)

// Summary formats all collected data. The serial numbers in front of each
// line are the paths the edit state accepts.
func Summary(sess *domain.Session) string {
	var b strings.Builder

	b.WriteString("📋 *SUMMARY OF YOUR COMPLAINT*\n\n")
	b.WriteString("👤 *PERSONAL INFORMATION:*\n")
	fmt.Fprintf(&b, "1.1 Name: %s\n", orNA(sess.Personal.Name))
	fmt.Fprintf(&b, "1.2 Mobile: %s\n", orNA(sess.Personal.Mobile))
	fmt.Fprintf(&b, "1.3 DOB: %s\n", orNA(sess.Personal.DOB))
	fmt.Fprintf(&b, "1.4 Father's Name: %s\n", orNA(sess.Personal.FatherName))
	fmt.Fprintf(&b, "1.5 District: %s\n", orNA(sess.Personal.District))
	fmt.Fprintf(&b, "1.6 PIN Code: %s\n\n", orNA(sess.Personal.PinCode))

	b.WriteString("💳 *TRANSACTION DETAILS:*\n")
	for i, tx := range sess.Transactions {
		n := i + 1
		fmt.Fprintf(&b, "\n📌 Transaction #%d:\n", n)
		fmt.Fprintf(&b, "2.%d.1 Date: %s\n", n, orNA(tx.Date))
		fmt.Fprintf(&b, "2.%d.2 Time: %s\n", n, orNA(tx.Time))
		fmt.Fprintf(&b, "2.%d.3 Bank: %s\n", n, orNA(tx.BankName))
		fmt.Fprintf(&b, "2.%d.4 Account: %s\n", n, orNA(tx.AccountNo))
		fmt.Fprintf(&b, "2.%d.5 Amount: %s\n", n, orNA(tx.Amount))
		fmt.Fprintf(&b, "2.%d.6 Trans ID: %s\n", n, orNA(tx.TransactionID))
	}

	return b.String()
}

func orNA(value string) string {
	if value == "" {
		return "N/A"
	}
	return value
}
