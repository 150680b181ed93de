package cache

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/ghuser/mediaboard/pkg/config"
)

// newTestConfig returns a config pointing at url.
func newTestConfig(url string) *config.Config {
	return &config.Config{
		RedisURL: url,
	}
}

func TestNewRedisClient_InvalidURL(t *testing.T) {
	_, err := NewRedisClient(newTestConfig("not-a-valid-url"))
	if err == nil {
		t.Fatal("expected error for invalid URL, got nil")
	}
}

func TestClientOptions(t *testing.T) {
	cfg := newTestConfig("redis://:secret@cache.internal:6380/2")
	cfg.ServiceName = "mediaboard"
	opts, err := clientOptions(cfg)
	if err != nil {
		t.Fatalf("clientOptions: %v", err)
	}
	if opts.Addr != "cache.internal:6380" || opts.DB != 2 || opts.Password != "secret" {
		t.Fatalf("parsed options = addr %q db %d", opts.Addr, opts.DB)
	}
	if opts.ClientName != "mediaboard" || opts.PoolSize != 10 || opts.MaxRetries != 3 {
		t.Fatalf("pool options = %+v", opts)
	}
}

func TestNewRedisClient_UnreachableHost(t *testing.T) {
	_, err := NewRedisClient(newTestConfig("redis://localhost:19999"))
	if err == nil {
		t.Fatal("expected error when Redis is unreachable, got nil")
	}
}

// Integration tests, skipped unless REDIS_URL is set.
func TestRedisIntegration(t *testing.T) {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		t.Skip("REDIS_URL not set; skipping integration tests")
	}

	t.Run("NewRedisClient_Success", func(t *testing.T) {
		rc, err := NewRedisClient(newTestConfig(redisURL))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		defer rc.Close() //nolint:errcheck
	})

	t.Run("Ping_Success", func(t *testing.T) {
		rc, err := NewRedisClient(newTestConfig(redisURL))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		defer rc.Close() //nolint:errcheck

		if err := rc.Ping(context.Background()); err != nil {
			t.Fatalf("Ping failed: %v", err)
		}
	})

	t.Run("ItemListCache_RoundTripAndInvalidate", func(t *testing.T) {
		rc, err := NewRedisClient(newTestConfig(redisURL))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		defer rc.Close() //nolint:errcheck

		ctx := context.Background()
		c := NewItemListCache(rc, time.Minute)
		projectID := uuid.New()
		defer c.Invalidate(ctx, projectID) //nolint:errcheck

		if _, err := c.Get(ctx, projectID); !errors.Is(err, redis.Nil) {
			t.Fatalf("expected redis.Nil on cold cache, got %v", err)
		}

		title := "Image"
		width := 320.0
		want := []CachedItem{{
			ID:        uuid.New(),
			ProjectID: projectID,
			Type:      "image",
			X:         10,
			Y:         20,
			Width:     &width,
			Title:     &title,
			Data:      map[string]any{"placeholder": true},
			CreatedBy: "user-1",
		}}
		gen, err := c.Generation(ctx, projectID)
		if err != nil {
			t.Fatalf("Generation: %v", err)
		}
		if err := c.Set(ctx, projectID, gen, want); err != nil {
			t.Fatalf("Set: %v", err)
		}

		got, err := c.Get(ctx, projectID)
		if err != nil {
			t.Fatalf("Get: %v", err)
		}
		if len(got) != 1 || got[0].ID != want[0].ID || *got[0].Title != title || got[0].Data["placeholder"] != true {
			t.Fatalf("unexpected cached list %+v", got)
		}

		if err := c.Invalidate(ctx, projectID); err != nil {
			t.Fatalf("Invalidate: %v", err)
		}
		if _, err := c.Get(ctx, projectID); !errors.Is(err, redis.Nil) {
			t.Fatalf("expected redis.Nil after invalidate, got %v", err)
		}
	})

	t.Run("ItemListCache_SetAfterInvalidateIsStale", func(t *testing.T) {
		rc, err := NewRedisClient(newTestConfig(redisURL))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		defer rc.Close() //nolint:errcheck

		ctx := context.Background()
		c := NewItemListCache(rc, time.Minute)
		projectID := uuid.New()
		defer rc.Client().Del(ctx, ItemListKey(projectID), generationKey(projectID)) //nolint:errcheck

		gen, err := c.Generation(ctx, projectID)
		if err != nil {
			t.Fatalf("Generation: %v", err)
		}
		if err := c.Invalidate(ctx, projectID); err != nil {
			t.Fatalf("Invalidate: %v", err)
		}
		if err := c.Set(ctx, projectID, gen, []CachedItem{{ID: uuid.New(), ProjectID: projectID}}); !errors.Is(err, ErrStaleList) {
			t.Fatalf("expected ErrStaleList, got %v", err)
		}
		if _, err := c.Get(ctx, projectID); !errors.Is(err, redis.Nil) {
			t.Fatalf("stale list must not be stored, got %v", err)
		}

		fresh, err := c.Generation(ctx, projectID)
		if err != nil || fresh != gen+1 {
			t.Fatalf("Generation after invalidate = %d, %v", fresh, err)
		}
		if err := c.Set(ctx, projectID, fresh, nil); err != nil {
			t.Fatalf("Set with current generation: %v", err)
		}
	})

	t.Run("Close_Idempotent", func(t *testing.T) {
		rc, err := NewRedisClient(newTestConfig(redisURL))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := rc.Close(); err != nil {
			t.Fatalf("first Close failed: %v", err)
		}
	})

	t.Run("Client_NotNil", func(t *testing.T) {
		rc, err := NewRedisClient(newTestConfig(redisURL))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		defer rc.Close() //nolint:errcheck

		if rc.Client() == nil {
			t.Fatal("expected non-nil underlying client")
		}
	})
}

func TestItemListKey(t *testing.T) {
	id := uuid.MustParse("5b0a9a3e-3f3d-4d8e-9c7c-2a1f0e6b9d11")
	if got, want := ItemListKey(id), "canvas:items:5b0a9a3e-3f3d-4d8e-9c7c-2a1f0e6b9d11"; got != want {
		t.Fatalf("ItemListKey = %q, want %q", got, want)
	}
}

func TestGenerationKey(t *testing.T) {
	id := uuid.MustParse("5b0a9a3e-3f3d-4d8e-9c7c-2a1f0e6b9d11")
	if got, want := generationKey(id), "canvas:items:5b0a9a3e-3f3d-4d8e-9c7c-2a1f0e6b9d11:gen"; got != want {
		t.Fatalf("generationKey = %q, want %q", got, want)
	}
}

func TestNewItemListCache_DefaultTTL(t *testing.T) {
	if c := NewItemListCache(nil, 0); c.ttl != DefaultItemListTTL {
		t.Fatalf("expected default TTL, got %s", c.ttl)
	}
	if c := NewItemListCache(nil, time.Second); c.ttl != time.Second {
		t.Fatalf("expected explicit TTL, got %s", c.ttl)
	}
}
