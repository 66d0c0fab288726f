// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package site holds the storefront's site settings: the static values from
// configuration and the settings map fetched from the backend.
package site

import (
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"strings"
	"sync"
	"time"
)

// Analytics holds the tracking and verification IDs rendered into the layout.
type Analytics struct {
	GoogleAnalyticsID  string
	GoogleTagManagerID string
	FacebookPixelID    string
	SiteVerification   string
}

// Enabled reports whether any tag is configured.
func (a Analytics) Enabled() bool {
	return a.GoogleAnalyticsID != "" || a.GoogleTagManagerID != "" || a.FacebookPixelID != ""
}

// Loader fetches the settings map from the backend.
type Loader func(ctx context.Context) (map[string]json.RawMessage, error)

// Settings is safe for concurrent use. Values from the backend overlay the
// defaults it was created with.
type Settings struct {
	baseURL   string
	analytics Analytics
	defaults  map[string]json.RawMessage

	mu        sync.RWMutex
	values    map[string]json.RawMessage
	refreshed time.Time
}

// New creates Settings seeded with defaults.
func New(baseURL string, analytics Analytics, defaults map[string]json.RawMessage) *Settings {
	return &Settings{
		baseURL:   strings.TrimRight(baseURL, "/"),
		analytics: analytics,
		defaults:  maps.Clone(defaults),
		values:    maps.Clone(defaults),
	}
}

// Refresh replaces the settings with the loader's result. On error the
// previous values are kept.
func (s *Settings) Refresh(ctx context.Context, load Loader) error {
	fetched, err := load(ctx)
	if err != nil {
		return fmt.Errorf("loading site settings: %w", err)
	}
	merged := maps.Clone(s.defaults)
	if merged == nil {
		merged = make(map[string]json.RawMessage, len(fetched))
	}
	maps.Copy(merged, fetched)

	s.mu.Lock()
	s.values = merged
	s.refreshed = time.Now()
	s.mu.Unlock()
	return nil
}

// RefreshedAt returns the time of the last successful refresh.
func (s *Settings) RefreshedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.refreshed
}

// BaseURL returns the public base URL of the site.
func (s *Settings) BaseURL() string { return s.baseURL }

// Analytics returns the configured tracking IDs.
func (s *Settings) Analytics() Analytics { return s.analytics }

// Raw returns the JSON value of key.
func (s *Settings) Raw(key string) (json.RawMessage, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok
}

// String returns a string setting, or def when missing, empty or not a string.
func (s *Settings) String(key, def string) string {
	raw, ok := s.Raw(key)
	if !ok {
		return def
	}
	var v string
	if err := json.Unmarshal(raw, &v); err != nil || v == "" {
		return def
	}
	return v
}

// StringMap returns an object setting of string values.
func (s *Settings) StringMap(key string) map[string]string {
	raw, ok := s.Raw(key)
	if !ok {
		return nil
	}
	var v map[string]string
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil
	}
	return v
}

// View is the template-facing snapshot of the settings.
type View struct {
	Name           string
	Tagline        string
	Description    string
	ContactEmail   string
	ContactPhone   string
	ContactAddress string
	Social         map[string]string
	BaseURL        string
	Analytics      Analytics
	Year           int
}

// View returns a snapshot for rendering.
func (s *Settings) View() View {
	return View{
		Name:           s.String("site_name", "Textura"),
		Tagline:        s.String("site_tagline", ""),
		Description:    s.String("site_description", ""),
		ContactEmail:   s.String("contact_email", ""),
		ContactPhone:   s.String("contact_phone", ""),
		ContactAddress: s.String("contact_address", ""),
		Social:         s.StringMap("social_links"),
		BaseURL:        s.baseURL,
		Analytics:      s.analytics,
		Year:           time.Now().Year(),
	}
}
