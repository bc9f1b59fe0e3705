package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"catalog-app/internal/domain/catalog"
	"catalog-app/internal/revision"

	"github.com/redis/go-redis/v9"
)

const TTLSnapshot = 10 * time.Minute

const PrefixSnapshot = "snapshot:"

// ErrMiss is returned when a key is absent or the cache is disabled.
var ErrMiss = errors.New("cache miss")

// Service caches current entity snapshots keyed by revision. A reader that
// loaded an older revision can only ever write that revision's key, so a late
// write never shadows a newer commit.
type Service interface {
	Get(ctx context.Context, key string, dest any) error
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error

	GetSnapshot(ctx context.Context, kind catalog.Kind, id int64, rev int) (*revision.Snapshot, error)
	SetSnapshot(ctx context.Context, snap *revision.Snapshot) error
	InvalidateSnapshot(ctx context.Context, kind catalog.Kind, id int64, rev int) error

	IsAvailable() bool
	Ping(ctx context.Context) error
}

type redisCache struct {
	client *redis.Client
}

// NewService wraps client. A nil client gives a cache that always misses.
func NewService(client *redis.Client) Service {
	return &redisCache{client: client}
}

// NewClient connects to addr and pings it.
func NewClient(ctx context.Context, addr string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return client, nil
}

func SnapshotKey(kind catalog.Kind, id int64, rev int) string {
	return fmt.Sprintf("%s%s:%d:%d", PrefixSnapshot, kind, id, rev)
}

func (c *redisCache) IsAvailable() bool {
	return c.client != nil
}

func (c *redisCache) Ping(ctx context.Context) error {
	if c.client == nil {
		return fmt.Errorf("redis client is nil")
	}
	return c.client.Ping(ctx).Err()
}

func (c *redisCache) Get(ctx context.Context, key string, dest any) error {
	if c.client == nil {
		return ErrMiss
	}
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return ErrMiss
	}
	if err != nil {
		return err
	}
	return json.Unmarshal(data, dest)
}

func (c *redisCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	if c.client == nil {
		return nil
	}
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, data, ttl).Err()
}

func (c *redisCache) Delete(ctx context.Context, keys ...string) error {
	if c.client == nil {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}

func (c *redisCache) GetSnapshot(ctx context.Context, kind catalog.Kind, id int64, rev int) (*revision.Snapshot, error) {
	var snap revision.Snapshot
	if err := c.Get(ctx, SnapshotKey(kind, id, rev), &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

func (c *redisCache) SetSnapshot(ctx context.Context, snap *revision.Snapshot) error {
	return c.Set(ctx, SnapshotKey(snap.Kind, snap.ItemID, snap.Change.Revision), snap, TTLSnapshot)
}

// InvalidateSnapshot drops the entry of one revision. Entries of superseded
// revisions are never read again; dropping them only frees memory early.
func (c *redisCache) InvalidateSnapshot(ctx context.Context, kind catalog.Kind, id int64, rev int) error {
	return c.Delete(ctx, SnapshotKey(kind, id, rev))
}
