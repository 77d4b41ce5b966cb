package common

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

// ErrNoSession is returned when no server-side session exists for a user.
var ErrNoSession = errors.New("no active session")

// SessionStore keeps the issued token per user id. The auth middleware
// requires the cookie token to match the stored copy, so logout (Del)
// invalidates outstanding cookies immediately.
type SessionStore interface {
	Set(ctx context.Context, userID uint, token string, ttl time.Duration) error
	Get(ctx context.Context, userID uint) (string, error)
	Del(ctx context.Context, userID uint) error
}

// NewSessionStore builds the configured backend.
func NewSessionStore(cfg *Config) (SessionStore, error) {
	switch cfg.Session.Backend {
	case "redis":
		return NewRedisSessionStore(cfg), nil
	case "memory":
		return NewMemorySessionStore(), nil
	default:
		return nil, fmt.Errorf("unknown session backend %q", cfg.Session.Backend)
	}
}

type RedisSessionStore struct {
	rdb *redis.Client
}

func NewRedisSessionStore(cfg *Config) *RedisSessionStore {
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Redis.Addr,
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		ReadTimeout:  time.Duration(cfg.Redis.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Redis.WriteTimeout) * time.Second,
	})
	return &RedisSessionStore{rdb: rdb}
}

func sessionKey(userID uint) string {
	return fmt.Sprintf("session:%d", userID)
}

func (s *RedisSessionStore) Set(ctx context.Context, userID uint, token string, ttl time.Duration) error {
	return s.rdb.Set(ctx, sessionKey(userID), token, ttl).Err()
}

func (s *RedisSessionStore) Get(ctx context.Context, userID uint) (string, error) {
	token, err := s.rdb.Get(ctx, sessionKey(userID)).Result()
	if err == redis.Nil {
		return "", ErrNoSession
	}
	return token, err
}

func (s *RedisSessionStore) Del(ctx context.Context, userID uint) error {
	return s.rdb.Del(ctx, sessionKey(userID)).Err()
}

// MemorySessionStore is the redis-less backend: single-process deploys
// and tests.
type MemorySessionStore struct {
	mu       sync.Mutex
	sessions map[uint]memorySession
}

type memorySession struct {
	token     string
	expiresAt time.Time
}

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{sessions: make(map[uint]memorySession)}
}

func (s *MemorySessionStore) Set(ctx context.Context, userID uint, token string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[userID] = memorySession{token: token, expiresAt: time.Now().Add(ttl)}
	return nil
}

func (s *MemorySessionStore) Get(ctx context.Context, userID uint) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[userID]
	if !ok || time.Now().After(sess.expiresAt) {
		delete(s.sessions, userID)
		return "", ErrNoSession
	}
	return sess.token, nil
}

func (s *MemorySessionStore) Del(ctx context.Context, userID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, userID)
	return nil
}
