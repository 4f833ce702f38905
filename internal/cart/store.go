package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	redislib "github.com/redis/go-redis/v9"

	"github.com/ninamwrites/bookstore-backend/pkg/config"
	redisclient "github.com/ninamwrites/bookstore-backend/pkg/redis"
)

type kvStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

type cartKeyer interface {
	CartKey(sessionID string) string
}

// SessionStore persists the per-visitor book-id → quantity mapping.
type SessionStore interface {
	Load(ctx context.Context, sessionID string) (map[string]int, error)
	Save(ctx context.Context, sessionID string, items map[string]int) error
	Clear(ctx context.Context, sessionID string) error
}

// RedisStore keeps each visitor cart as a JSON document under one fixed key
// shape, expiring after the configured idle TTL.
type RedisStore struct {
	store kvStore
	keyer cartKeyer
	ttl   time.Duration
}

// NewRedisStore builds a session cart store backed by Redis.
func NewRedisStore(client *redisclient.Client, cfg config.CartConfig) (*RedisStore, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client is required")
	}
	if cfg.SessionTTL <= 0 {
		return nil, fmt.Errorf("cart session ttl must be positive")
	}
	return &RedisStore{
		store: client,
		keyer: client,
		ttl:   cfg.SessionTTL,
	}, nil
}

// Load returns the stored mapping, or an empty map when the session has no cart.
func (s *RedisStore) Load(ctx context.Context, sessionID string) (map[string]int, error) {
	raw, err := s.store.Get(ctx, s.keyer.CartKey(sessionID))
	if err != nil {
		if errors.Is(err, redislib.Nil) {
			return map[string]int{}, nil
		}
		return nil, fmt.Errorf("load cart: %w", err)
	}

	items := map[string]int{}
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, fmt.Errorf("decode cart: %w", err)
	}
	return items, nil
}

// Save overwrites the stored mapping and refreshes the idle TTL. An empty
// mapping is persisted as-is so is_empty stays observable across requests.
func (s *RedisStore) Save(ctx context.Context, sessionID string, items map[string]int) error {
	if items == nil {
		items = map[string]int{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}
	if err := s.store.Set(ctx, s.keyer.CartKey(sessionID), raw, s.ttl); err != nil {
		return fmt.Errorf("save cart: %w", err)
	}
	return nil
}

// Clear removes the session's cart entirely.
func (s *RedisStore) Clear(ctx context.Context, sessionID string) error {
	if err := s.store.Del(ctx, s.keyer.CartKey(sessionID)); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}
