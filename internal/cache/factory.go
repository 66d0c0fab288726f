// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"log/slog"
	"time"

	"github.com/olegiv/textura/internal/config"
)

// Backend names reported by New.
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// New returns a Redis cache when TEXTURA_REDIS_URL is set and reachable,
// otherwise an in-memory cache. A Redis connection failure is logged and
// falls back to memory.
func New(cfg *config.Config, logger *slog.Logger) (Cacher, string) {
	ttl := cfg.CacheTTL
	if ttl <= 0 {
		ttl = time.Minute
	}

	if cfg.UseRedisCache() {
		opts := DefaultRedisCacheOptions()
		opts.URL = cfg.RedisURL
		opts.DefaultTTL = ttl
		if cfg.CachePrefix != "" {
			opts.Prefix = cfg.CachePrefix
		}
		rc, err := NewRedisCache(opts)
		if err == nil {
			logger.Info("cache backend selected", "backend", BackendRedis, "prefix", opts.Prefix)
			return rc, BackendRedis
		}
		logger.Warn("redis unavailable, using memory cache", "error", err)
	}

	logger.Info("cache backend selected", "backend", BackendMemory)
	return NewMemoryCache(MemoryCacheOptions{
		DefaultTTL:      ttl,
		MaxSize:         1000,
		CleanupInterval: 5 * time.Minute,
	}), BackendMemory
}
