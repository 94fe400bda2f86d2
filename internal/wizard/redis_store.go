package wizard

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	sessionKeyPrefix = "wizard:session:v1:"
	submitKeyPrefix  = "wizard:submit:v1:"
)

// RedisStore persists sessions as TTL'd JSON records and implements the
// submit reservation with SETNX, the same shape as the idempotency
// middleware's in-progress marker.
type RedisStore struct {
	cache *redis.Client
}

// NewRedisStore builds a Redis-backed session store.
func NewRedisStore(cache *redis.Client) *RedisStore {
	return &RedisStore{cache: cache}
}

func (s *RedisStore) Save(ctx context.Context, st State, ttl time.Duration) error {
	payload, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := s.cache.Set(ctx, sessionKeyPrefix+st.SessionID, payload, ttl).Err(); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, sessionID string) (State, error) {
	payload, err := s.cache.Get(ctx, sessionKeyPrefix+sessionID).Result()
	if err != nil {
		if err == redis.Nil {
			return State{}, ErrSessionNotFound
		}
		return State{}, fmt.Errorf("load session: %w", err)
	}
	var st State
	if err := json.Unmarshal([]byte(payload), &st); err != nil {
		return State{}, fmt.Errorf("decode session: %w", err)
	}
	return st, nil
}

func (s *RedisStore) Delete(ctx context.Context, sessionID string) error {
	return s.cache.Del(ctx, sessionKeyPrefix+sessionID, submitKeyPrefix+sessionID).Err()
}

func (s *RedisStore) BeginSubmit(ctx context.Context, sessionID string, ttl time.Duration) (bool, error) {
	acquired, err := s.cache.SetNX(ctx, submitKeyPrefix+sessionID, "1", ttl).Result()
	if err != nil {
		return false, fmt.Errorf("reserve submit: %w", err)
	}
	return acquired, nil
}

func (s *RedisStore) EndSubmit(ctx context.Context, sessionID string) error {
	return s.cache.Del(ctx, submitKeyPrefix+sessionID).Err()
}
