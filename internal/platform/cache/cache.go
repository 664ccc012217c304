// Copyright (c) 2026 Worklink. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package cache provides a small JSON cache wrapper around the Redis client.

It implements the cache-aside pattern for read-heavy endpoints. Cache
failures are deliberately non-fatal: a broken cache degrades to a miss and
the caller falls through to the primary store.
*/
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/worklink/internal/platform/ctxutil"
)

// Common TTL values.
const (
	TTLMinute = 1 * time.Minute
	TTLHour   = 1 * time.Hour
	TTLDay    = 24 * time.Hour
)

// Cache wraps a Redis client with JSON marshalling and soft failure handling.
type Cache struct {
	client *redis.Client
}

// New creates a [Cache] on top of an already-connected Redis client.
func New(client *redis.Client) *Cache {
	return &Cache{client: client}
}

// Get unmarshals the cached JSON value at key into target.
// It returns false on a miss or on any cache-layer failure.
func (cache *Cache) Get(context context.Context, key string, target interface{}) bool {
	raw, err := cache.client.Get(context, key).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			ctxutil.GetLogger(context).Warn("cache_get_failed",
				slog.String("key", key), slog.Any("error", err))
		}
		return false
	}

	if err := json.Unmarshal([]byte(raw), target); err != nil {
		// Corrupt entry: treat as a miss and let it expire.
		return false
	}

	return true
}

// Set stores value as JSON at key with the given TTL. Failures are logged
// and swallowed.
func (cache *Cache) Set(context context.Context, key string, value interface{}, ttl time.Duration) {
	raw, err := json.Marshal(value)
	if err != nil {
		ctxutil.GetLogger(context).Warn("cache_marshal_failed",
			slog.String("key", key), slog.Any("error", err))
		return
	}

	if err := cache.client.Set(context, key, raw, ttl).Err(); err != nil {
		ctxutil.GetLogger(context).Warn("cache_set_failed",
			slog.String("key", key), slog.Any("error", err))
	}
}

// Delete removes one or more keys. Failures are logged and swallowed.
func (cache *Cache) Delete(context context.Context, keys ...string) {
	if len(keys) == 0 {
		return
	}

	if err := cache.client.Del(context, keys...).Err(); err != nil {
		ctxutil.GetLogger(context).Warn("cache_delete_failed", slog.Any("error", err))
	}
}

// DeleteByPrefix removes every key matching prefix using an incremental SCAN.
//
// Used for coarse invalidation of listing caches whose key space embeds
// query parameters.
func (cache *Cache) DeleteByPrefix(context context.Context, prefix string) {
	iter := cache.client.Scan(context, 0, prefix+"*", 0).Iterator()

	var keys []string
	for iter.Next(context) {
		keys = append(keys, iter.Val())
	}

	if err := iter.Err(); err != nil {
		ctxutil.GetLogger(context).Warn("cache_scan_failed",
			slog.String("prefix", prefix), slog.Any("error", err))
		return
	}

	cache.Delete(context, keys...)
}
