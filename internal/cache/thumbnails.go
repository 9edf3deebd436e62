package cache

import (
	"context"
	"crypto/sha256"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// ThumbnailCache provides Redis-backed caching for downloaded recipe images.
type ThumbnailCache struct {
	client *redis.Client
	prefix string
}

// NewThumbnailCache creates a thumbnail cache. A nil client disables caching.
func NewThumbnailCache(client *redis.Client) *ThumbnailCache {
	return &ThumbnailCache{
		client: client,
		prefix: "thumbnail:",
	}
}

// NewRedisClient parses redisURL and checks the connection.
func NewRedisClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return client, nil
}

// makeKey creates a cache key from an image URL by hashing it.
func (c *ThumbnailCache) makeKey(url string) string {
	hash := sha256.Sum256([]byte(url))
	return fmt.Sprintf("%s%x", c.prefix, hash)
}

// Get retrieves cached image bytes by URL.
func (c *ThumbnailCache) Get(ctx context.Context, url string) ([]byte, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}

	data, err := c.client.Get(ctx, c.makeKey(url)).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		slog.Warn("Redis cache get failed", "error", err)
		return nil, false
	}
	return data, true
}

// Set stores image bytes for url with the given TTL.
func (c *ThumbnailCache) Set(ctx context.Context, url string, data []byte, ttl time.Duration) {
	if c == nil || c.client == nil {
		return
	}

	if err := c.client.Set(ctx, c.makeKey(url), data, ttl).Err(); err != nil {
		slog.Warn("Redis cache set failed", "error", err)
	}
}
