package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"payout/internal/models"
	"time"

	"github.com/redis/go-redis/v9"
)

const idempotencyPending = "pending"

// CacheService stores JSON values in redis. Stores are cached read-through and
// never invalidated because a registered store cannot change; the TTL only
// bounds memory. Idempotency keys map a client supplied key to the id of the
// payment it created.
type CacheService struct {
	client         *redis.Client
	ttl            time.Duration
	idempotencyTTL time.Duration
}

func NewCacheService(client *redis.Client, defaultTTL, idempotencyTTL time.Duration) *CacheService {
	return &CacheService{
		client:         client,
		ttl:            defaultTTL,
		idempotencyTTL: idempotencyTTL,
	}
}

// Base operations
func (s *CacheService) Set(ctx context.Context, key string, value interface{}) error {
	return s.SetWithTTL(ctx, key, value, s.ttl)
}

func (s *CacheService) SetWithTTL(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal cache value: %w", err)
	}
	return s.client.Set(ctx, key, data, ttl).Err()
}

func (s *CacheService) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("failed to get cache value: %w", err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("failed to unmarshal cache value: %w", err)
	}
	return true, nil
}

func (s *CacheService) Delete(ctx context.Context, keys ...string) error {
	return s.client.Del(ctx, keys...).Err()
}

// Key generation
func (s *CacheService) GenerateKey(entityType, keyType string, value interface{}) string {
	return fmt.Sprintf("%s:%s:%v", entityType, keyType, value)
}

// Store caching
func (s *CacheService) CacheStore(ctx context.Context, store *models.Store) error {
	if store == nil {
		return errors.New("cannot cache nil store")
	}
	return s.Set(ctx, s.GenerateKey("store", "id", store.ID), store)
}

// GetStore returns nil without error on a cache miss.
func (s *CacheService) GetStore(ctx context.Context, id uint) (*models.Store, error) {
	var store models.Store
	found, err := s.Get(ctx, s.GenerateKey("store", "id", id), &store)
	if err != nil || !found {
		return nil, err
	}
	return &store, nil
}

// Idempotency keys

// ReserveKey claims key for a new request. When the key is already taken it
// returns false together with the stored value, which is "pending" while the
// first request is still running.
func (s *CacheService) ReserveKey(ctx context.Context, key string) (bool, string, error) {
	k := s.GenerateKey("idem", "accept", key)
	ok, err := s.client.SetNX(ctx, k, idempotencyPending, s.idempotencyTTL).Result()
	if err != nil {
		return false, "", fmt.Errorf("failed to reserve idempotency key: %w", err)
	}
	if ok {
		return true, "", nil
	}

	val, err := s.client.Get(ctx, k).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, idempotencyPending, nil
		}
		return false, "", fmt.Errorf("failed to read idempotency key: %w", err)
	}
	return false, val, nil
}

// CompleteKey records the result for a reserved key.
func (s *CacheService) CompleteKey(ctx context.Context, key, value string) error {
	return s.client.Set(ctx, s.GenerateKey("idem", "accept", key), value, s.idempotencyTTL).Err()
}

// ReleaseKey drops a reservation so the client can retry.
func (s *CacheService) ReleaseKey(ctx context.Context, key string) error {
	return s.Delete(ctx, s.GenerateKey("idem", "accept", key))
}

// IsPending reports whether a stored idempotency value is a reservation placeholder.
func IsPending(value string) bool {
	return value == idempotencyPending
}

func (s *CacheService) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *CacheService) Close() error {
	return s.client.Close()
}
