package cache

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/princesss/catalog-backend/pkg/logger"
	"github.com/redis/go-redis/v9"
)

// Store is the keyed cache consumed by the catalog read path:
// get, put-with-TTL and prefix invalidation. Values are serialized
// JSON response payloads, returned to clients verbatim on a hit.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	DeleteByPrefix(ctx context.Context, prefix string) error
}

// RedisStore backs Store with Redis
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := s.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		logger.Error("Cache read failed", err, map[string]interface{}{
			"key": key,
		})
		return "", false, err
	}
	return val, true, nil
}

func (s *RedisStore) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	if err := s.client.Set(ctx, key, value, ttl).Err(); err != nil {
		logger.Error("Cache write failed", err, map[string]interface{}{
			"key": key,
			"ttl": ttl.String(),
		})
		return err
	}
	return nil
}

func (s *RedisStore) DeleteByPrefix(ctx context.Context, prefix string) error {
	iter := s.client.Scan(ctx, 0, prefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		logger.Error("Cache scan failed", err, map[string]interface{}{
			"prefix": prefix,
		})
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		logger.Error("Cache invalidation failed", err, map[string]interface{}{
			"prefix": prefix,
			"keys":   len(keys),
		})
		return err
	}
	logger.Debug("Cache entries invalidated", map[string]interface{}{
		"prefix": prefix,
		"keys":   len(keys),
	})
	return nil
}

// MemoryStore is an in-process Store used by tests and by deployments
// that run without Redis. Last write wins, same as the Redis path.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
}

type memoryEntry struct {
	value     string
	expiresAt time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]memoryEntry)}
}

func (s *MemoryStore) Get(ctx context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	entry, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok || time.Now().After(entry.expiresAt) {
		return "", false, nil
	}
	return entry.value, true, nil
}

func (s *MemoryStore) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	s.mu.Lock()
	s.entries[key] = memoryEntry{value: value, expiresAt: time.Now().Add(ttl)}
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) DeleteByPrefix(ctx context.Context, prefix string) error {
	s.mu.Lock()
	for key := range s.entries {
		if strings.HasPrefix(key, prefix) {
			delete(s.entries, key)
		}
	}
	s.mu.Unlock()
	return nil
}
