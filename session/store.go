package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// ErrNotFound is returned when no record exists for the session ID.
var ErrNotFound = errors.New("session record not found")

// ErrRedisUnavailable wraps every Redis failure other than a missing key.
var ErrRedisUnavailable = errors.New("redis unavailable")

// DefaultPrefix is the key prefix phpredis uses unless session.save_path overrides it.
const DefaultPrefix = "PHPREDIS_SESSION:"

// Reader fetches a raw session record by session ID.
//
// Implementations must be safe for concurrent use.
type Reader interface {
	Get(ctx context.Context, sessionID string) ([]byte, error)
}

// Store is a read-only Redis-backed [Reader].
//
// The Redis client is owned by the caller; Store never closes it.
type Store struct {
	redis  redis.UniversalClient
	prefix string
}

// NewStore creates a session [Store] backed by the given Redis client.
// prefix is prepended to every session ID to form the Redis key.
func NewStore(client redis.UniversalClient, prefix string) *Store {
	return &Store{
		redis:  client,
		prefix: prefix,
	}
}

// Key returns the Redis key holding the record for sessionID.
func (s *Store) Key(sessionID string) string {
	return s.prefix + sessionID
}

// Get retrieves the raw record for sessionID.
//
//	Performance: 1 Redis GET.
func (s *Store) Get(ctx context.Context, sessionID string) ([]byte, error) {
	data, err := s.redis.Get(ctx, s.Key(sessionID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	if len(data) == 0 {
		return nil, ErrNotFound
	}
	return data, nil
}

// Ping checks connectivity to Redis.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.redis.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return nil
}
