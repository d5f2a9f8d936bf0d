package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"AuraFM/config"
	"AuraFM/logger"
	"AuraFM/model"

	"github.com/redis/go-redis/v9"
)

// CatalogCache caches mapped catalog results in Redis so repeated feed loads
// and searches don't re-hit the catalog API. The cache is best-effort: a nil
// CatalogCache (Redis unconfigured or unreachable) is valid and all
// operations become no-ops.
type CatalogCache struct {
	client *redis.Client
	ttl    time.Duration
}

// Connect creates a CatalogCache from config. Returns nil when Redis is not
// configured or not reachable; callers treat nil as "no cache".
func Connect(cfg *config.Config) *CatalogCache {
	if cfg.RedisHost == "" {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.RedisHost, cfg.RedisPort),
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("Redis unreachable, catalog cache disabled", logger.ErrorField(err))
		client.Close()
		return nil
	}

	return &CatalogCache{
		client: client,
		ttl:    time.Duration(cfg.CatalogCacheTTLSeconds) * time.Second,
	}
}

// Close releases the Redis connection.
func (c *CatalogCache) Close() error {
	if c == nil {
		return nil
	}
	return c.client.Close()
}

func catalogKey(op, arg string) string {
	return fmt.Sprintf("catalog:%s:%s", op, arg)
}

// GetTracks returns the cached track list for an operation, or nil on miss.
func (c *CatalogCache) GetTracks(ctx context.Context, op, arg string) []model.Track {
	if c == nil {
		return nil
	}

	data, err := c.client.Get(ctx, catalogKey(op, arg)).Bytes()
	if err != nil {
		if err != redis.Nil {
			logger.Warn("Catalog cache read failed", logger.ErrorField(err))
		}
		return nil
	}

	var tracks []model.Track
	if err := json.Unmarshal(data, &tracks); err != nil {
		logger.Warn("Catalog cache entry corrupt, ignoring",
			logger.String("key", catalogKey(op, arg)),
			logger.ErrorField(err))
		return nil
	}
	return tracks
}

// SetTracks stores a track list for an operation with the configured TTL.
func (c *CatalogCache) SetTracks(ctx context.Context, op, arg string, tracks []model.Track) {
	if c == nil || len(tracks) == 0 {
		return
	}

	data, err := json.Marshal(tracks)
	if err != nil {
		return
	}

	if err := c.client.Set(ctx, catalogKey(op, arg), data, c.ttl).Err(); err != nil {
		logger.Warn("Catalog cache write failed", logger.ErrorField(err))
	}
}
