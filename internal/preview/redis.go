package preview

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jonathan/cv-builder/internal/types"
)

const keyPrefix = "cv_preview:"

// RedisStore keeps documents in Redis with a per-key TTL.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore wraps an existing client.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

// NewRedisStoreFromURL connects to redis://[user:pass@]host:port[/db] (or
// rediss:// for TLS) and checks the connection.
func NewRedisStoreFromURL(ctx context.Context, redisURL string, ttl time.Duration) (*RedisStore, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return NewRedisStore(client, ttl), nil
}

func key(sessionID string) string {
	return keyPrefix + sessionID
}

// Put stores doc under sessionID and resets its TTL.
func (s *RedisStore) Put(ctx context.Context, sessionID string, doc *types.Document) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, key(sessionID), data, s.ttl).Err()
}

// Get returns the document for sessionID or ErrNotFound.
func (s *RedisStore) Get(ctx context.Context, sessionID string) (*types.Document, error) {
	data, err := s.client.Get(ctx, key(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var doc types.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("corrupt preview for session %s: %w", sessionID, err)
	}
	doc.Normalize()
	return &doc, nil
}

// Delete removes the document for sessionID.
func (s *RedisStore) Delete(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, key(sessionID)).Err()
}

// Close closes the client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
