package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	// DefaultItemListTTL bounds how long a project's item list is served from
	// cache when no write invalidates it first.
	DefaultItemListTTL = 10 * time.Minute

	itemListKeyPrefix = "canvas:items"

	// generationTTL keeps a project's write counter around well past any list TTL.
	generationTTL = 24 * time.Hour
)

// ErrStaleList is returned by Set when a write invalidated the project after
// the caller read its generation. The list was not stored.
var ErrStaleList = errors.New("cached item list is stale")

// CachedItem is the denormalized canvas item read model stored in Redis.
// It mirrors the persisted record so a cache hit needs no database round-trip.
type CachedItem struct {
	ID        uuid.UUID      `json:"id"`
	ProjectID uuid.UUID      `json:"project_id"`
	Type      string         `json:"type"`
	X         float64        `json:"x"`
	Y         float64        `json:"y"`
	Width     *float64       `json:"width,omitempty"`
	Height    *float64       `json:"height,omitempty"`
	ZIndex    int            `json:"z_index"`
	Title     *string        `json:"title,omitempty"`
	Content   *string        `json:"content,omitempty"`
	Data      map[string]any `json:"data,omitempty"`
	CreatedBy string         `json:"created_by"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// ItemListCache stores one JSON-encoded item list per project.
// Key format: "canvas:items:{projectID}", with a write counter at
// "canvas:items:{projectID}:gen". Readers take the generation before they
// query the store and Set only succeeds if it has not moved since.
type ItemListCache struct {
	client *RedisClient
	ttl    time.Duration
}

// NewItemListCache creates an ItemListCache backed by the given RedisClient.
// A non-positive ttl falls back to DefaultItemListTTL.
func NewItemListCache(r *RedisClient, ttl time.Duration) *ItemListCache {
	if ttl <= 0 {
		ttl = DefaultItemListTTL
	}
	return &ItemListCache{client: r, ttl: ttl}
}

// Get returns the cached list for a project.
// Returns redis.Nil error when the key does not exist or has expired.
func (c *ItemListCache) Get(ctx context.Context, projectID uuid.UUID) ([]CachedItem, error) {
	raw, err := c.client.Client().Get(ctx, ItemListKey(projectID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, redis.Nil
		}
		return nil, fmt.Errorf("cache get: %w", err)
	}

	var items []CachedItem
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("cache decode: %w", err)
	}
	return items, nil
}

// Generation returns the project's write counter; zero when none is recorded.
func (c *ItemListCache) Generation(ctx context.Context, projectID uuid.UUID) (int64, error) {
	gen, err := c.client.Client().Get(ctx, generationKey(projectID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("cache generation: %w", err)
	}
	return gen, nil
}

// Set stores the list for a project if the write counter still equals gen.
// Otherwise it returns ErrStaleList and leaves the key empty for the next reader.
func (c *ItemListCache) Set(ctx context.Context, projectID uuid.UUID, gen int64, items []CachedItem) error {
	if items == nil {
		items = []CachedItem{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("cache encode: %w", err)
	}

	genKey := generationKey(projectID)
	err = c.client.Client().Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, genKey).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if current != gen {
			return ErrStaleList
		}
		_, err = tx.TxPipelined(ctx, func(p redis.Pipeliner) error {
			p.Set(ctx, ItemListKey(projectID), raw, c.ttl)
			return nil
		})
		return err
	}, genKey)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrStaleList), errors.Is(err, redis.TxFailedErr):
		return ErrStaleList
	default:
		return fmt.Errorf("cache set: %w", err)
	}
}

// Invalidate bumps the write counter and drops the cached list so the next
// read goes to the store. Invalidating a cold project is not an error.
func (c *ItemListCache) Invalidate(ctx context.Context, projectID uuid.UUID) error {
	genKey := generationKey(projectID)
	_, err := c.client.Client().TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Incr(ctx, genKey)
		p.Expire(ctx, genKey, generationTTL)
		p.Del(ctx, ItemListKey(projectID))
		return nil
	})
	if err != nil {
		return fmt.Errorf("cache invalidate: %w", err)
	}
	return nil
}

// ItemListKey builds the Redis key for a project's item list.
func ItemListKey(projectID uuid.UUID) string {
	return fmt.Sprintf("%s:%s", itemListKeyPrefix, projectID)
}

func generationKey(projectID uuid.UUID) string {
	return ItemListKey(projectID) + ":gen"
}
