package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// Data is the identity snapshot recorded at login. A session that is
// missing from the store is treated as revoked regardless of the JWT.
type Data struct {
	UserID    uint      `json:"user_id"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

type Store interface {
	Set(ctx context.Context, sessionID string, data *Data, ttl time.Duration) error
	Get(ctx context.Context, sessionID string) (*Data, error)
	Delete(ctx context.Context, sessionID string) error
}

var ErrNotFound = fmt.Errorf("session not found")

type redisStore struct {
	rdb *redis.Client
}

func Initialize(redisURL string) (Store, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	rdb := redis.NewClient(opt)

	// Test connection
	ctx := context.Background()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &redisStore{rdb: rdb}, nil
}

func (s *redisStore) Set(ctx context.Context, sessionID string, data *Data, ttl time.Duration) error {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal session data: %w", err)
	}

	return s.rdb.Set(ctx, "session:"+sessionID, jsonData, ttl).Err()
}

func (s *redisStore) Get(ctx context.Context, sessionID string) (*Data, error) {
	val, err := s.rdb.Get(ctx, "session:"+sessionID).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	var data Data
	if err := json.Unmarshal([]byte(val), &data); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session data: %w", err)
	}

	return &data, nil
}

func (s *redisStore) Delete(ctx context.Context, sessionID string) error {
	return s.rdb.Del(ctx, "session:"+sessionID).Err()
}
