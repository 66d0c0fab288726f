// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package config loads process configuration from the environment.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/olegiv/textura/internal/util"
)

// Development fallbacks. Load rejects them outside development.
const (
	devJWTSecret     = "textura-dev-jwt-secret-not-for-production"
	devSessionSecret = "textura-dev-session-secret-32-bytes!"
)

// MinSecretLength is the minimum length for the JWT and session secrets.
const MinSecretLength = 32

// Config holds the application configuration loaded from environment variables.
type Config struct {
	Env        string `env:"TEXTURA_ENV" envDefault:"development"`
	ServerHost string `env:"TEXTURA_SERVER_HOST" envDefault:"localhost"`
	ServerPort int    `env:"TEXTURA_SERVER_PORT" envDefault:"8080"`
	WebPort    int    `env:"TEXTURA_WEB_PORT" envDefault:"3000"`
	LogLevel   string `env:"TEXTURA_LOG_LEVEL" envDefault:"info"`
	LogFormat  string `env:"TEXTURA_LOG_FORMAT" envDefault:"text"`

	DBPath        string `env:"TEXTURA_DB_PATH" envDefault:"./data/textura.db"`
	SessionDBPath string `env:"TEXTURA_SESSION_DB_PATH" envDefault:"./data/sessions.db"`
	UploadsDir    string `env:"TEXTURA_UPLOADS_DIR" envDefault:"./uploads"`
	MaxUploadMB   int64  `env:"TEXTURA_MAX_UPLOAD_MB" envDefault:"10"`

	JWTSecret     string        `env:"TEXTURA_JWT_SECRET"`
	JWTTTL        time.Duration `env:"TEXTURA_JWT_TTL" envDefault:"24h"`
	SessionSecret string        `env:"TEXTURA_SESSION_SECRET"`

	// Backend origin for the proxy layer and the storefront client.
	BackendURL     string        `env:"BACKEND_URL"`
	PublicAPIURL   string        `env:"NEXT_PUBLIC_API_URL"`
	BackendTimeout time.Duration `env:"TEXTURA_BACKEND_TIMEOUT" envDefault:"15s"`

	SiteURL       string `env:"SITE_URL"`
	PublicSiteURL string `env:"NEXT_PUBLIC_SITE_URL"`

	// Analytics and verification tags rendered into the storefront layout.
	GoogleAnalyticsID  string `env:"NEXT_PUBLIC_GA_ID"`
	GoogleTagManagerID string `env:"NEXT_PUBLIC_GTM_ID"`
	FacebookPixelID    string `env:"NEXT_PUBLIC_FB_PIXEL_ID"`
	SiteVerification   string `env:"NEXT_PUBLIC_GOOGLE_SITE_VERIFICATION"`

	RedisURL    string        `env:"TEXTURA_REDIS_URL"`
	CachePrefix string        `env:"TEXTURA_CACHE_PREFIX" envDefault:"textura:"`
	CacheTTL    time.Duration `env:"TEXTURA_CACHE_TTL" envDefault:"60s"`

	SettingsRefresh string `env:"TEXTURA_SETTINGS_REFRESH" envDefault:"@every 5m"`

	ContactRPS   float64 `env:"TEXTURA_CONTACT_RPS" envDefault:"0.2"`
	ContactBurst int     `env:"TEXTURA_CONTACT_BURST" envDefault:"3"`
	LoginRPS     float64 `env:"TEXTURA_LOGIN_RPS" envDefault:"0.5"`
	LoginBurst   int     `env:"TEXTURA_LOGIN_BURST" envDefault:"5"`

	// Peers allowed to set X-Real-IP / X-Forwarded-For. The API trusts the
	// local web process by default.
	TrustedProxies []string `env:"TEXTURA_TRUSTED_PROXIES" envSeparator:"," envDefault:"127.0.0.1,::1"`

	AdminEmail    string `env:"TEXTURA_ADMIN_EMAIL" envDefault:"admin@textura.local"`
	AdminPassword string `env:"TEXTURA_ADMIN_PASSWORD" envDefault:"changeme1234"`
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the API listen address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// WebAddr returns the storefront listen address in host:port format.
func (c Config) WebAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.WebPort)
}

// UseRedisCache returns true if Redis caching is configured.
func (c Config) UseRedisCache() bool {
	return c.RedisURL != ""
}

// MaxUploadBytes returns the upload size cap in bytes.
func (c Config) MaxUploadBytes() int64 {
	return c.MaxUploadMB << 20
}

// Backend returns the backend origin: BACKEND_URL, then NEXT_PUBLIC_API_URL,
// then the local API address.
func (c Config) Backend() string {
	return strings.TrimRight(firstNonEmpty(c.BackendURL, c.PublicAPIURL, "http://localhost:8080/api/v1"), "/")
}

// Site returns the public base URL of the storefront.
func (c Config) Site() string {
	return strings.TrimRight(firstNonEmpty(c.SiteURL, c.PublicSiteURL, "http://localhost:3000"), "/")
}

// Proxies returns the parsed trusted proxy ranges. Load has already
// rejected invalid entries.
func (c Config) Proxies() util.TrustedProxies {
	p, _ := util.ParseTrustedProxies(c.TrustedProxies)
	return p
}

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if cfg.IsDevelopment() {
		if cfg.JWTSecret == "" {
			cfg.JWTSecret = devJWTSecret
		}
		if cfg.SessionSecret == "" {
			cfg.SessionSecret = devSessionSecret
		}
	}

	if len(cfg.JWTSecret) < MinSecretLength {
		return nil, fmt.Errorf("TEXTURA_JWT_SECRET must be at least %d bytes long, got %d bytes",
			MinSecretLength, len(cfg.JWTSecret))
	}
	if len(cfg.SessionSecret) < MinSecretLength {
		return nil, fmt.Errorf("TEXTURA_SESSION_SECRET must be at least %d bytes long, got %d bytes",
			MinSecretLength, len(cfg.SessionSecret))
	}
	if !cfg.IsDevelopment() && (cfg.JWTSecret == devJWTSecret || cfg.SessionSecret == devSessionSecret) {
		return nil, fmt.Errorf("development secrets must not be used when TEXTURA_ENV=%s", cfg.Env)
	}
	if _, err := util.ParseTrustedProxies(cfg.TrustedProxies); err != nil {
		return nil, fmt.Errorf("TEXTURA_TRUSTED_PROXIES: %w", err)
	}
	if cfg.MaxUploadMB <= 0 {
		return nil, fmt.Errorf("TEXTURA_MAX_UPLOAD_MB must be positive, got %d", cfg.MaxUploadMB)
	}

	return cfg, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
