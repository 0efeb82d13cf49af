package memory

import (
	"context"
	"sync"
	"time"

	"github.com/cybercell/helpline/pkg/domain"
)

// Store implements ports.SessionStore in memory.
// Safe for concurrent use; intended for tests and local development.
type Store struct {
	data map[string]*domain.Session
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]*domain.Session),
	}
}

// clone copies a session so callers can't mutate stored state by pointer.
func clone(sess *domain.Session) *domain.Session {
	copied := *sess
	if sess.Transactions != nil {
		copied.Transactions = make([]domain.Transaction, len(sess.Transactions))
		copy(copied.Transactions, sess.Transactions)
	}
	return &copied
}

// Get retrieves the session for an identity.
func (s *Store) Get(ctx context.Context, identity string) (*domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.data[identity]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return clone(sess), nil
}

// Save upserts the session as a single unit.
func (s *Store) Save(ctx context.Context, sess *domain.Session) error {
	copied := clone(sess)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[sess.Identity] = copied
	return nil
}

// Delete removes the session.
func (s *Store) Delete(ctx context.Context, identity string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, identity)
	return nil
}

// DeleteExpired removes every session whose last activity precedes cutoff.
func (s *Store) DeleteExpired(ctx context.Context, cutoff time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for identity, sess := range s.data {
		if sess.LastActivity.Before(cutoff) {
			delete(s.data, identity)
			removed++
		}
	}
	return removed, nil
}
