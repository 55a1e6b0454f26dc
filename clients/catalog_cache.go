package clients

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"book-review/dto"
	"book-review/logger"

	"github.com/redis/go-redis/v9"
)

const DefaultCatalogCacheTTL = 10 * time.Minute

// RedisCatalogCache stores catalog answers as JSON.
// Key format: catalog:search:<limit>:<lowercased query> and catalog:volume:<id>
type RedisCatalogCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCatalogCache(client *redis.Client, ttl time.Duration) *RedisCatalogCache {
	if ttl <= 0 {
		ttl = DefaultCatalogCacheTTL
	}
	return &RedisCatalogCache{client: client, ttl: ttl}
}

// Get reports false without error on a miss.
func (c *RedisCatalogCache) Get(ctx context.Context, key string, out any) (bool, error) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("cache get %s: %w", key, err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return false, fmt.Errorf("cache decode %s: %w", key, err)
	}
	return true, nil
}

func (c *RedisCatalogCache) Set(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache encode %s: %w", key, err)
	}
	return c.client.Set(ctx, key, raw, c.ttl).Err()
}

func searchKey(query string, limit int) string {
	return fmt.Sprintf("catalog:search:%d:%s", limit, strings.ToLower(strings.TrimSpace(query)))
}

func volumeKey(bookID string) string {
	return "catalog:volume:" + bookID
}

// CachedCatalogClient consults the cache before the upstream catalog.
// Cache failures are logged and otherwise ignored; upstream errors are never cached.
type CachedCatalogClient struct {
	next  ICatalogClient
	cache *RedisCatalogCache
}

func NewCachedCatalogClient(next ICatalogClient, cache *RedisCatalogCache) ICatalogClient {
	return &CachedCatalogClient{next: next, cache: cache}
}

func (c *CachedCatalogClient) Search(ctx context.Context, query string, limit int) ([]dto.BookSummary, error) {
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	key := searchKey(query, limit)

	var books []dto.BookSummary
	if hit, err := c.cache.Get(ctx, key, &books); err != nil {
		logger.Get().Warn().Err(err).Msg("catalog cache read failed")
	} else if hit {
		return books, nil
	}

	books, err := c.next.Search(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	if err := c.cache.Set(ctx, key, books); err != nil {
		logger.Get().Warn().Err(err).Msg("catalog cache write failed")
	}
	return books, nil
}

func (c *CachedCatalogClient) FetchOne(ctx context.Context, bookID string) (*dto.BookDetail, error) {
	key := volumeKey(bookID)

	var book dto.BookDetail
	if hit, err := c.cache.Get(ctx, key, &book); err != nil {
		logger.Get().Warn().Err(err).Msg("catalog cache read failed")
	} else if hit {
		return &book, nil
	}

	fetched, err := c.next.FetchOne(ctx, bookID)
	if err != nil {
		return nil, err
	}
	if err := c.cache.Set(ctx, key, fetched); err != nil {
		logger.Get().Warn().Err(err).Msg("catalog cache write failed")
	}
	return fetched, nil
}
