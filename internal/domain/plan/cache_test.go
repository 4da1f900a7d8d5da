package plan

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestCache(t *testing.T) *Cache {
	t.Helper()

	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewCache(client, "matmind-test", time.Hour)
}

func TestCacheRoundTrip(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	key, err := cache.Key("user-1", testProfile())
	if err != nil {
		t.Fatalf("Key returned error: %v", err)
	}

	if got, err := cache.Get(ctx, key); err != nil || got != nil {
		t.Fatalf("expected miss before Set, got %v, %v", got, err)
	}

	stored := FallbackPlan(testProfile())
	if err := cache.Set(ctx, key, stored); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}

	got, err := cache.Get(ctx, key)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if got == nil || got.Summary != stored.Summary {
		t.Fatalf("cache round trip mismatch: %+v", got)
	}
}

func TestCacheKeyDependsOnProfileAndUser(t *testing.T) {
	cache := newTestCache(t)

	base, err := cache.Key("user-1", testProfile())
	if err != nil {
		t.Fatalf("Key returned error: %v", err)
	}

	otherUser, _ := cache.Key("user-2", testProfile())
	if otherUser == base {
		t.Error("different users must not share cache keys")
	}

	changed := testProfile()
	changed.PrimaryGoal = "fitness"
	otherProfile, _ := cache.Key("user-1", changed)
	if otherProfile == base {
		t.Error("different profiles must not share cache keys")
	}

	// Sanitization runs before hashing, so whitespace noise hits the same key.
	noisy := testProfile()
	noisy.BeltRank = "  blue  "
	same, _ := cache.Key("user-1", noisy)
	if same != base {
		t.Error("cosmetic whitespace changed the cache key")
	}
}
