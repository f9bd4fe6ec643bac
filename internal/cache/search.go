// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// search.go provides a Valkey-backed cache for Unsplash search responses.
// Photo search is rate-limited upstream (50 req/h on the free tier), so
// identical queries within the TTL are served from Valkey instead of
// burning another upstream call.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// searchKeyPrefix is the Valkey key prefix for cached searches.
	searchKeyPrefix = "unsplash:"

	// DefaultSearchTTL is how long a search response stays cached.
	DefaultSearchTTL = 10 * time.Minute
)

// SearchCache stores serialized search responses in Valkey.
type SearchCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSearchCache creates a search cache backed by the given Valkey client.
func NewSearchCache(client *redis.Client, ttl time.Duration) *SearchCache {
	if ttl == 0 {
		ttl = DefaultSearchTTL
	}
	return &SearchCache{client: client, ttl: ttl}
}

// Key builds a stable cache key from the query parameters.
func (sc *SearchCache) Key(query string, page, perPage int) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s|%d|%d", query, page, perPage)))
	return hex.EncodeToString(sum[:16])
}

// Get retrieves a cached response. Returns nil, false on miss; cache
// errors are logged and treated as misses.
func (sc *SearchCache) Get(ctx context.Context, key string) ([]byte, bool) {
	val, err := sc.client.Get(ctx, searchKeyPrefix+key).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		slog.Warn("search cache get error", "key", key, "error", err)
		return nil, false
	}
	return val, true
}

// Set stores a serialized response with the configured TTL. Failures
// are logged and swallowed; caching is best-effort.
func (sc *SearchCache) Set(ctx context.Context, key string, payload []byte) {
	if err := sc.client.Set(ctx, searchKeyPrefix+key, payload, sc.ttl).Err(); err != nil {
		slog.Warn("search cache set error", "key", key, "error", err)
	}
}
