package plan

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/redis/go-redis/v9"

	"matmind-server-go/internal/platform/errors"
)

// Cache stores generated plans in Redis keyed by user and profile digest,
// so resubmitting an unchanged questionnaire does not burn model tokens.
type Cache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewCache wraps a Redis client as a plan cache.
func NewCache(client *redis.Client, prefix string, ttl time.Duration) *Cache {
	if prefix == "" {
		prefix = "matmind"
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Cache{client: client, prefix: prefix, ttl: ttl}
}

// Key derives the cache key for a user and profile. The digest covers the
// sanitized profile, so cosmetic whitespace changes hit the same entry.
func (c *Cache) Key(userID string, profile Profile) (string, error) {
	raw, err := sonic.Marshal(profile.Sanitized())
	if err != nil {
		return "", errors.Wrap(errors.KindPlan, "cache.key", "failed to encode profile", err)
	}
	sum := sha256.Sum256(raw)
	return fmt.Sprintf("%s:plan:%s:%s", c.prefix, userID, hex.EncodeToString(sum[:16])), nil
}

// Get returns the cached plan, or nil when the key is absent.
func (c *Cache) Get(ctx context.Context, key string) (*TrainingPlan, error) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, errors.Wrap(errors.KindPlan, "cache.get", "redis read failed", err)
	}

	var cached TrainingPlan
	if err := sonic.Unmarshal(raw, &cached); err != nil {
		return nil, errors.Wrap(errors.KindPlan, "cache.get", "corrupt cache entry", err)
	}
	return &cached, nil
}

// Set stores the plan under the key for the configured TTL.
func (c *Cache) Set(ctx context.Context, key string, value *TrainingPlan) error {
	raw, err := sonic.Marshal(value)
	if err != nil {
		return errors.Wrap(errors.KindPlan, "cache.set", "failed to encode plan", err)
	}
	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		return errors.Wrap(errors.KindPlan, "cache.set", "redis write failed", err)
	}
	return nil
}
