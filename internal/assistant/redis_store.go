package assistant

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisBlobStore is a BlobStore backed by Redis. Keys are prefixed so
// several applications can share one instance.
type RedisBlobStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisBlobStore wraps an existing client. An empty prefix defaults to
// "assistant"; ttl 0 means no expiry.
func NewRedisBlobStore(client *redis.Client, prefix string, ttl time.Duration) *RedisBlobStore {
	if prefix == "" {
		prefix = "assistant"
	}
	return &RedisBlobStore{client: client, prefix: prefix, ttl: ttl}
}

func (s *RedisBlobStore) key(key string) string {
	return fmt.Sprintf("%s:%s", s.prefix, key)
}

func (s *RedisBlobStore) Get(ctx context.Context, key string) (string, error) {
	val, err := s.client.Get(ctx, s.key(key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", err
	}
	return val, nil
}

func (s *RedisBlobStore) Set(ctx context.Context, key, value string) error {
	return s.client.Set(ctx, s.key(key), value, s.ttl).Err()
}

var _ BlobStore = (*RedisBlobStore)(nil)
