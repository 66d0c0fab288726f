// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package client

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/olegiv/textura/internal/cache"
	"github.com/olegiv/textura/internal/metrics"
)

// Source tells where a FetchWithFallback result came from.
type Source string

const (
	SourceLive     Source = "live"
	SourceCache    Source = "cache"
	SourceStale    Source = "stale"
	SourceFallback Source = "fallback"
	// SourceMissing means the backend answered 404. The returned value is
	// the fallback, which callers of detail pages usually ignore.
	SourceMissing Source = "missing"
)

// DefaultStaleTTL is how long the last good value of a key is kept.
const DefaultStaleTTL = 24 * time.Hour

// Fetcher runs storefront reads through the read-through cache.
type Fetcher struct {
	client   *Client
	backend  cache.Cacher
	ttl      time.Duration
	staleTTL time.Duration
	logger   *slog.Logger
}

// NewFetcher creates a Fetcher. Fresh values live for ttl.
func NewFetcher(c *Client, backend cache.Cacher, ttl time.Duration, logger *slog.Logger) *Fetcher {
	return &Fetcher{
		client:   c,
		backend:  backend,
		ttl:      ttl,
		staleTTL: DefaultStaleTTL,
		logger:   logger,
	}
}

// Client returns the underlying backend client.
func (f *Fetcher) Client() *Client {
	return f.client
}

// Invalidate expires the fresh cache entries of resource. Last good values
// stay available for fallback.
func (f *Fetcher) Invalidate(ctx context.Context, resource string) {
	if err := f.backend.DeleteByPrefix(ctx, resource+":"); err != nil {
		f.logger.WarnContext(ctx, "cache invalidation failed", "resource", resource, "error", err)
	}
}

// FetchWithFallback returns the value produced by load, caching it under
// resource:key. When load fails it serves the last good cached value, and
// without one it serves fallback. A backend 404 evicts the key and returns
// fallback with SourceMissing.
func FetchWithFallback[T any](ctx context.Context, f *Fetcher, resource, key string, fallback T, load func(context.Context, *Client) (T, error)) (T, Source) {
	tc := cache.NewTypedCache[T](f.backend, f.ttl, f.staleTTL)
	fullKey := resource + ":" + key

	loaded := false
	v, err := tc.Remember(ctx, fullKey, func(ctx context.Context) (T, error) {
		loaded = true
		return load(ctx, f.client)
	})

	switch {
	case err == nil && loaded:
		return v, SourceLive
	case err == nil:
		return v, SourceCache
	case IsNotFound(err):
		_ = tc.Delete(ctx, fullKey)
		return fallback, SourceMissing
	case cache.IsStale(err):
		f.logger.WarnContext(ctx, "backend fetch failed, serving cached value",
			"resource", resource, "key", key, "error", errors.Unwrap(err))
		return v, SourceStale
	default:
		if ctx.Err() == nil {
			f.logger.WarnContext(ctx, "backend fetch failed, serving fallback",
				"resource", resource, "key", key, "error", err)
		}
		metrics.FallbackServedTotal.WithLabelValues(resource).Inc()
		return fallback, SourceFallback
	}
}
