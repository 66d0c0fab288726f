// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// staleKeyPrefix namespaces the long-lived "last good" copies kept by
// TypedCache.Remember.
const staleKeyPrefix = "stale:"

// TypedCache stores JSON-encoded values of type T in a Cacher.
type TypedCache[T any] struct {
	backend  Cacher
	ttl      time.Duration
	staleTTL time.Duration
}

// NewTypedCache wraps backend. Fresh values live for ttl; the last good value
// of each key is retained for staleTTL.
func NewTypedCache[T any](backend Cacher, ttl, staleTTL time.Duration) *TypedCache[T] {
	if staleTTL < ttl {
		staleTTL = ttl
	}
	return &TypedCache[T]{backend: backend, ttl: ttl, staleTTL: staleTTL}
}

// Get returns the fresh value stored under key.
func (c *TypedCache[T]) Get(ctx context.Context, key string) (T, error) {
	return c.read(ctx, key)
}

// Set stores value under key as both the fresh and the last good copy.
func (c *TypedCache[T]) Set(ctx context.Context, key string, value T) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encoding cache value: %w", err)
	}
	if err := c.backend.Set(ctx, key, data, c.ttl); err != nil {
		return err
	}
	return c.backend.Set(ctx, staleKeyPrefix+key, data, c.staleTTL)
}

// Delete removes both copies of key.
func (c *TypedCache[T]) Delete(ctx context.Context, key string) error {
	if err := c.backend.Delete(ctx, key); err != nil {
		return err
	}
	return c.backend.Delete(ctx, staleKeyPrefix+key)
}

// Expire drops the fresh copies under prefix, keeping the last good ones.
func (c *TypedCache[T]) Expire(ctx context.Context, prefix string) error {
	return c.backend.DeleteByPrefix(ctx, prefix)
}

// Remember returns the fresh value for key, calling load on a miss. When load
// fails, the last good value is returned together with the load error
// wrapped in StaleError. Without a last good value the load error is returned.
func (c *TypedCache[T]) Remember(ctx context.Context, key string, load func(context.Context) (T, error)) (T, error) {
	if v, err := c.read(ctx, key); err == nil {
		return v, nil
	}

	v, loadErr := load(ctx)
	if loadErr == nil {
		// A failing cache must not hide a good load.
		_ = c.Set(ctx, key, v)
		return v, nil
	}

	stale, err := c.read(ctx, staleKeyPrefix+key)
	if err != nil {
		var zero T
		return zero, loadErr
	}
	return stale, &StaleError{Err: loadErr}
}

func (c *TypedCache[T]) read(ctx context.Context, key string) (T, error) {
	var v T
	data, err := c.backend.Get(ctx, key)
	if err != nil {
		return v, err
	}
	if err := json.Unmarshal(data, &v); err != nil {
		_ = c.backend.Delete(ctx, key)
		return v, ErrCacheMiss
	}
	return v, nil
}

// StaleError reports that a cached value was served because loading failed.
type StaleError struct {
	Err error
}

func (e *StaleError) Error() string {
	return "served stale value: " + e.Err.Error()
}

func (e *StaleError) Unwrap() error {
	return e.Err
}

// IsStale reports whether err is a StaleError.
func IsStale(err error) bool {
	var se *StaleError
	return errors.As(err, &se)
}
