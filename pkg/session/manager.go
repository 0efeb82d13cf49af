package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/cybercell/helpline/internal/logging"
	"github.com/cybercell/helpline/pkg/domain"
	"github.com/cybercell/helpline/pkg/ports"
)

// lockEntry holds the mutex and the reference count.
type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// Manager orchestrates session access, serializing the turns of a single
// identity while letting independent identities proceed concurrently. It uses
// reference counting to garbage collect unused locks.
type Manager struct {
	store ports.SessionStore

	mu    sync.Mutex            // Global lock for the map
	locks map[string]*lockEntry // Map of active locks

	timeout time.Duration
	logger  *slog.Logger
}

// Option configures the Manager.
type Option func(*Manager)

// WithTimeout overrides the inactivity timeout (default 30 minutes).
func WithTimeout(timeout time.Duration) Option {
	return func(m *Manager) {
		m.timeout = timeout
	}
}

// WithLogger configures a logger for the Manager.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// NewManager creates a new session Manager with the given persistence store.
func NewManager(store ports.SessionStore, opts ...Option) *Manager {
	m := &Manager{
		store:   store,
		locks:   make(map[string]*lockEntry),
		timeout: 30 * time.Minute,
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// acquire gets or creates a lock entry and increments its reference count.
func (m *Manager) acquire(identity string) *lockEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[identity]
	if !exists {
		entry = &lockEntry{}
		m.locks[identity] = entry
	}
	entry.refs++
	return entry
}

// release decrements the reference count and deletes the entry at zero.
func (m *Manager) release(identity string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[identity]
	if !exists {
		return
	}

	entry.refs--
	if entry.refs <= 0 {
		delete(m.locks, identity)
	}
}

// WithLock executes fn while holding the lock for the identity.
func (m *Manager) WithLock(ctx context.Context, identity string, fn func(context.Context) error) error {
	entry := m.acquire(identity)
	entry.mu.Lock()
	defer func() {
		entry.mu.Unlock()
		m.release(identity)
	}()

	return fn(ctx)
}

// Store returns the underlying session store. Callers inside WithLock use it
// directly to avoid re-locking.
func (m *Manager) Store() ports.SessionStore {
	return m.store
}

// Timeout returns the configured inactivity timeout.
func (m *Manager) Timeout() time.Duration {
	return m.timeout
}

// Expired reports whether the session's last activity predates the timeout
// threshold relative to now.
func (m *Manager) Expired(sess *domain.Session, now time.Time) bool {
	return now.Sub(sess.LastActivity) > m.timeout
}

// SweepExpired bulk-deletes every session, across all identities, whose last
// activity precedes now minus the timeout. There is no background timer;
// expiry is evaluated lazily on inbound traffic.
func (m *Manager) SweepExpired(ctx context.Context, now time.Time) int {
	removed, err := m.store.DeleteExpired(ctx, now.Add(-m.timeout))
	if err != nil {
		// A failed sweep only delays cleanup; the own-session expiry check
		// still guards the current conversation.
		m.logger.Warn("expired session sweep failed", "err", err)
		return 0
	}
	if removed > 0 {
		m.logger.Info("swept expired sessions", "count", removed)
	}
	return removed
}

// Load retrieves an existing session under the identity's lock.
func (m *Manager) Load(ctx context.Context, identity string) (*domain.Session, error) {
	var sess *domain.Session
	err := m.WithLock(ctx, identity, func(ctx context.Context) error {
		var err error
		sess, err = m.store.Get(ctx, identity)
		return err
	})
	return sess, err
}

// Save persists the session under the identity's lock.
func (m *Manager) Save(ctx context.Context, sess *domain.Session) error {
	return m.WithLock(ctx, sess.Identity, func(ctx context.Context) error {
		return m.store.Save(ctx, sess)
	})
}

// Delete removes the session under the identity's lock.
func (m *Manager) Delete(ctx context.Context, identity string) error {
	return m.WithLock(ctx, identity, func(ctx context.Context) error {
		return m.store.Delete(ctx, identity)
	})
}
