package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultCatalogTTL = 5 * time.Minute
	// catalogKeysKey is a set of every cache key written, so Invalidate can
	// drop them without a SCAN.
	catalogKeysKey    = "catalog:keys"
	invalidateRetries = 5
)

// CatalogCache caches the distinct catalog lists as JSON arrays.
type CatalogCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCatalogCache creates a CatalogCache. A non-positive ttl falls back to
// five minutes.
func NewCatalogCache(client *redis.Client, ttl time.Duration) *CatalogCache {
	if ttl <= 0 {
		ttl = defaultCatalogTTL
	}
	return &CatalogCache{client: client, ttl: ttl}
}

// Get returns the cached list. A miss is (nil, false, nil).
func (c *CatalogCache) Get(ctx context.Context, key string) ([]string, bool, error) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("catalog cache get: %w", err)
	}

	var values []string
	if err := json.Unmarshal(raw, &values); err != nil {
		return nil, false, fmt.Errorf("catalog cache decode %s: %w", key, err)
	}
	return values, true, nil
}

// Set stores values under key for the configured ttl.
func (c *CatalogCache) Set(ctx context.Context, key string, values []string) error {
	raw, err := json.Marshal(values)
	if err != nil {
		return fmt.Errorf("catalog cache encode: %w", err)
	}

	_, err = c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, key, raw, c.ttl)
		pipe.SAdd(ctx, catalogKeysKey, key)
		return nil
	})
	if err != nil {
		return fmt.Errorf("catalog cache set: %w", err)
	}
	return nil
}

// Invalidate drops every cached catalog list. The tracking set is watched so
// a concurrent Set that adds a new key aborts the transaction; the read and
// delete are then retried, up to invalidateRetries times.
func (c *CatalogCache) Invalidate(ctx context.Context) error {
	drop := func(tx *redis.Tx) error {
		keys, err := tx.SMembers(ctx, catalogKeysKey).Result()
		if err != nil {
			return err
		}
		keys = append(keys, catalogKeysKey)
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Del(ctx, keys...)
			return nil
		})
		return err
	}

	for i := 0; i < invalidateRetries; i++ {
		err := c.client.Watch(ctx, drop, catalogKeysKey)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if err != nil {
			return fmt.Errorf("catalog cache invalidate: %w", err)
		}
		return nil
	}
	return fmt.Errorf("catalog cache invalidate: %w", redis.TxFailedErr)
}
