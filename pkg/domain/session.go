package domain

import "time"

// PersonalInfo holds the complainant fields. Every field is either empty or
// the canonical form produced by its validator; raw input is never stored.
type PersonalInfo struct {
	Name       string `json:"name,omitempty"`
	Mobile     string `json:"mobile_no,omitempty"`
	DOB        string `json:"dob,omitempty"`
	FatherName string `json:"father_name,omitempty"`
	District   string `json:"district,omitempty"`
	PinCode    string `json:"pin_code,omitempty"`
}

// Transaction is one fraudulent transaction reported by the complainant.
// Same unset-until-validated discipline as PersonalInfo.
type Transaction struct {
	Date          string `json:"date,omitempty"`
	Time          string `json:"time,omitempty"`
	BankName      string `json:"bank_name,omitempty"`
	AccountNo     string `json:"account_no,omitempty"`
	Amount        string `json:"amount,omitempty"`
	TransactionID string `json:"transaction_id,omitempty"`
}

// Session is the durable snapshot of one conversation. It is loaded, mutated
// by exactly one handler, and persisted again on every inbound turn.
type Session struct {
	// Identity is the opaque stable key of the conversation (the sender).
	Identity string `json:"identity"`

	// State is the tag the next inbound message will be dispatched on.
	State State `json:"state"`

	// Personal accumulates the complainant's fields in collection order.
	Personal PersonalInfo `json:"personal"`

	// Transactions grows to exactly TransactionCount entries, one full field
	// sequence at a time.
	Transactions []Transaction `json:"transactions,omitempty"`

	// CurrentTransaction is the zero-based index being collected.
	CurrentTransaction int `json:"current_transaction"`

	// TransactionCount is how many transactions the complainant reported.
	TransactionCount int `json:"transaction_count"`

	// LastActivity drives the 30-minute inactivity timeout. Persisted with
	// state and data in the same write.
	LastActivity time.Time `json:"last_activity"`
}

// NewSession creates a fresh session at the opening question.
func NewSession(identity string, now time.Time) *Session {
	return &Session{
		Identity:     identity,
		State:        StateMoneyLoss,
		LastActivity: now,
	}
}

// CurrentTx returns the transaction currently being collected, appending an
// empty slot if the field sequence for it has just started.
func (s *Session) CurrentTx() *Transaction {
	for len(s.Transactions) <= s.CurrentTransaction {
		s.Transactions = append(s.Transactions, Transaction{})
	}
	return &s.Transactions[s.CurrentTransaction]
}
