package ports

import (
	"context"
	"time"

	"github.com/cybercell/helpline/pkg/domain"
)

// SessionStore persists conversation progress between inbound messages.
// Implementations must make Save an atomic upsert of the whole session so a
// reader never observes a new state tag paired with stale data.
type SessionStore interface {
	// Get retrieves the session for an identity.
	// Returns domain.ErrSessionNotFound if the identity has no session.
	Get(ctx context.Context, identity string) (*domain.Session, error)

	// Save persists the session (state, data and last activity) as one write.
	Save(ctx context.Context, session *domain.Session) error

	// Delete removes the session for an identity. Deleting a missing session
	// is not an error.
	Delete(ctx context.Context, identity string) error

	// DeleteExpired bulk-deletes every session whose last activity precedes
	// the cutoff, across all identities. Returns the number removed.
	DeleteExpired(ctx context.Context, cutoff time.Time) (int, error)
}

// ComplaintStore persists finalized complaint records.
type ComplaintStore interface {
	// Insert stores a new complaint and returns its assigned ID.
	Insert(ctx context.Context, complaint *domain.Complaint) (int64, error)

	// ListAll returns every complaint, newest first.
	ListAll(ctx context.Context) ([]domain.Complaint, error)

	// UpdateStatus sets the status and, when transactions is non-nil,
	// replaces the transaction list.
	// Returns domain.ErrComplaintNotFound if the ID does not exist.
	UpdateStatus(ctx context.Context, id int64, status string, transactions []domain.Transaction) error

	// UpdateHandler assigns a handler and status to a complaint.
	// Returns domain.ErrComplaintNotFound if the ID does not exist.
	UpdateHandler(ctx context.Context, id int64, handler, status string) error
}
