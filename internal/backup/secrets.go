package backup

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

type redisSecretStore struct {
	client *redis.Client
}

func NewRedisSecretStore(client *redis.Client) SecretStore {
	return &redisSecretStore{client: client}
}

func (s *redisSecretStore) GetSecret(ctx context.Context, key string) (string, error) {
	value, err := s.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read secret: %w", err)
	}
	return value, nil
}

func (s *redisSecretStore) SetSecret(ctx context.Context, key, value string, ttl time.Duration) error {
	if err := s.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("failed to write secret: %w", err)
	}
	return nil
}

// memorySecretStore backs tests and single-node deployments without redis.
type memorySecretStore struct {
	mu      sync.RWMutex
	secrets map[string]string
}

func NewMemorySecretStore() SecretStore {
	return &memorySecretStore{secrets: make(map[string]string)}
}

func (s *memorySecretStore) GetSecret(_ context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.secrets[key], nil
}

func (s *memorySecretStore) SetSecret(_ context.Context, key, value string, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.secrets[key] = value
	return nil
}
