package auth

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"photoshare/internal/cache"
)

const sessionKeyPrefix = "session:"

// RedisSessionStore keeps sessions in Redis, relying on key TTL for expiry.
type RedisSessionStore struct {
	cache *cache.Client
}

var _ SessionStore = (*RedisSessionStore)(nil)

// NewRedisSessionStore creates a Redis-backed session store.
func NewRedisSessionStore(cache *cache.Client) *RedisSessionStore {
	return &RedisSessionStore{cache: cache}
}

// Save stores the session with TTL.
func (s *RedisSessionStore) Save(ctx context.Context, id string, userID uuid.UUID, ttl time.Duration) error {
	return s.cache.Set(ctx, sessionKeyPrefix+id, []byte(userID.String()), ttl)
}

// Lookup returns the user behind a session id.
func (s *RedisSessionStore) Lookup(ctx context.Context, id string) (uuid.UUID, error) {
	data, err := s.cache.Get(ctx, sessionKeyPrefix+id)
	if err != nil {
		return uuid.Nil, err
	}
	if data == nil {
		return uuid.Nil, ErrSessionNotFound
	}
	userID, err := uuid.ParseBytes(data)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid session payload: %w", err)
	}
	return userID, nil
}

// Delete removes a session.
func (s *RedisSessionStore) Delete(ctx context.Context, id string) (bool, error) {
	return s.cache.Delete(ctx, sessionKeyPrefix+id)
}

type memorySession struct {
	userID    uuid.UUID
	expiresAt time.Time
}

// MemorySessionStore keeps sessions in process. Lapsed entries are dropped
// lazily on access.
type MemorySessionStore struct {
	mu       sync.Mutex
	sessions map[string]memorySession
	now      func() time.Time
}

var _ SessionStore = (*MemorySessionStore)(nil)

// NewMemorySessionStore creates an in-process session store.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{
		sessions: make(map[string]memorySession),
		now:      time.Now,
	}
}

// Save stores the session with TTL.
func (s *MemorySessionStore) Save(_ context.Context, id string, userID uuid.UUID, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[id] = memorySession{userID: userID, expiresAt: s.now().Add(ttl)}
	return nil
}

// Lookup returns the user behind a live session id.
func (s *MemorySessionStore) Lookup(_ context.Context, id string) (uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return uuid.Nil, ErrSessionNotFound
	}
	if !s.now().Before(sess.expiresAt) {
		delete(s.sessions, id)
		return uuid.Nil, ErrSessionNotFound
	}
	return sess.userID, nil
}

// Delete removes a live session.
func (s *MemorySessionStore) Delete(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return false, nil
	}
	delete(s.sessions, id)
	return s.now().Before(sess.expiresAt), nil
}
