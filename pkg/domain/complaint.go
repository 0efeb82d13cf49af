package domain

import "time"

// Complaint statuses as used by the attender dashboard.
const (
	StatusPending = "Pending"
)

// Complaint is the immutable record produced by finalization. After insert it
// is only touched through the record store's status/handler operations.
type Complaint struct {
	ID           int64         `json:"id"`
	Identity     string        `json:"phone_number"`
	Personal     PersonalInfo  `json:"personal"`
	Transactions []Transaction `json:"transactions"`
	CreatedAt    time.Time     `json:"created_at"`
	Handler      string        `json:"handler,omitempty"`
	Status       string        `json:"status"`
}
