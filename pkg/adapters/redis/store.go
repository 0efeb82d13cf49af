package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/cybercell/helpline/pkg/domain"
	backend "github.com/redis/go-redis/v9"
)

// Store implements ports.SessionStore using Redis. Each session is one JSON
// value; a ZSET indexes identities by last-activity epoch so the expiry sweep
// can find stale sessions without scanning keys.
type Store struct {
	client *backend.Client
	prefix string
}

type Option func(*Store)

// WithPrefix sets the key prefix for sessions.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// New creates a new Redis store with options.
func New(address, password string, db int, opts ...Option) *Store {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a new Redis store from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	store := &Store{
		client: client,
		prefix: "helpline:session:",
	}
	for _, opt := range opts {
		opt(store)
	}
	return store
}

func (s *Store) key(identity string) string {
	return s.prefix + identity
}

func (s *Store) indexKey() string {
	return s.prefix + "index"
}

// Get retrieves the session for an identity.
func (s *Store) Get(ctx context.Context, identity string) (*domain.Session, error) {
	val, err := s.client.Get(ctx, s.key(identity)).Result()
	if err != nil {
		if err == backend.Nil {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get from redis: %w", err)
	}

	var sess domain.Session
	if err := json.Unmarshal([]byte(val), &sess); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return &sess, nil
}

// Save persists the session. The SET is a single write, so state, data and
// last activity land together; the index score tracks last activity.
func (s *Store) Save(ctx context.Context, sess *domain.Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, s.key(sess.Identity), data, 0)
	pipe.ZAdd(ctx, s.indexKey(), backend.Z{
		Score:  float64(sess.LastActivity.Unix()),
		Member: sess.Identity,
	})

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save to redis: %w", err)
	}
	return nil
}

// Delete removes the session and its index entry.
func (s *Store) Delete(ctx context.Context, identity string) error {
	pipe := s.client.Pipeline()
	pipe.Del(ctx, s.key(identity))
	pipe.ZRem(ctx, s.indexKey(), identity)

	_, err := pipe.Exec(ctx)
	return err
}

// DeleteExpired bulk-deletes every session whose last activity precedes
// cutoff, using the ZSET index to find them.
func (s *Store) DeleteExpired(ctx context.Context, cutoff time.Time) (int, error) {
	max := strconv.FormatInt(cutoff.Unix(), 10)

	stale, err := s.client.ZRangeByScore(ctx, s.indexKey(), &backend.ZRangeBy{
		Min: "-inf",
		Max: "(" + max,
	}).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to list expired sessions: %w", err)
	}
	if len(stale) == 0 {
		return 0, nil
	}

	pipe := s.client.Pipeline()
	for _, identity := range stale {
		pipe.Del(ctx, s.key(identity))
	}
	pipe.ZRemRangeByScore(ctx, s.indexKey(), "-inf", "("+max)

	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("failed to prune expired sessions: %w", err)
	}
	return len(stale), nil
}

// Close closes the redis client.
func (s *Store) Close() error {
	return s.client.Close()
}
