// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"os"
	"strings"
	"testing"
	"time"
)

func setEnv(t *testing.T, key, value string) {
	t.Helper()
	if err := os.Setenv(key, value); err != nil {
		t.Fatalf("failed to set %s: %v", key, err)
	}
}

func TestLoad_Defaults(t *testing.T) {
	os.Clearenv()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.DBPath != "./data/textura.db" {
		t.Errorf("DBPath = %q, want %q", cfg.DBPath, "./data/textura.db")
	}
	if cfg.ServerAddr() != "localhost:8080" {
		t.Errorf("ServerAddr() = %q, want %q", cfg.ServerAddr(), "localhost:8080")
	}
	if cfg.WebAddr() != "localhost:3000" {
		t.Errorf("WebAddr() = %q, want %q", cfg.WebAddr(), "localhost:3000")
	}
	if cfg.Backend() != "http://localhost:8080/api/v1" {
		t.Errorf("Backend() = %q", cfg.Backend())
	}
	if cfg.CacheTTL != 60*time.Second {
		t.Errorf("CacheTTL = %v, want 60s", cfg.CacheTTL)
	}
	if cfg.SettingsRefresh != "@every 5m" {
		t.Errorf("SettingsRefresh = %q", cfg.SettingsRefresh)
	}
	if cfg.JWTSecret == "" || cfg.SessionSecret == "" {
		t.Error("development secrets should be filled in")
	}
	if cfg.UseRedisCache() {
		t.Error("UseRedisCache() = true without TEXTURA_REDIS_URL")
	}
	if cfg.MaxUploadBytes() != 10<<20 {
		t.Errorf("MaxUploadBytes() = %d", cfg.MaxUploadBytes())
	}
}

func TestBackendPrecedence(t *testing.T) {
	tests := []struct {
		name    string
		backend string
		public  string
		want    string
	}{
		{"backend wins", "http://api.internal:9000/api/v1/", "https://api.example.com", "http://api.internal:9000/api/v1"},
		{"public fallback", "", "https://api.example.com/api/v1", "https://api.example.com/api/v1"},
		{"default", "", "", "http://localhost:8080/api/v1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Config{BackendURL: tt.backend, PublicAPIURL: tt.public}
			if got := c.Backend(); got != tt.want {
				t.Errorf("Backend() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSitePrecedence(t *testing.T) {
	c := Config{PublicSiteURL: "https://textura.example/"}
	if got := c.Site(); got != "https://textura.example" {
		t.Errorf("Site() = %q", got)
	}
}

func TestLoad_ProductionRequiresSecrets(t *testing.T) {
	os.Clearenv()
	setEnv(t, "TEXTURA_ENV", "production")

	if _, err := Load(); err == nil {
		t.Fatal("Load() should fail without secrets in production")
	}

	setEnv(t, "TEXTURA_JWT_SECRET", "short")
	setEnv(t, "TEXTURA_SESSION_SECRET", "prod-session-secret-with-32-bytes!!")
	_, err := Load()
	if err == nil || !strings.Contains(err.Error(), "TEXTURA_JWT_SECRET") {
		t.Fatalf("Load() error = %v, want JWT secret length error", err)
	}

	setEnv(t, "TEXTURA_JWT_SECRET", "prod-jwt-secret-with-at-least-32-bytes")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.IsDevelopment() {
		t.Error("IsDevelopment() = true in production")
	}
}

func TestLoad_AnalyticsIDs(t *testing.T) {
	os.Clearenv()
	setEnv(t, "NEXT_PUBLIC_GA_ID", "G-TEST123")
	setEnv(t, "NEXT_PUBLIC_GTM_ID", "GTM-ABC")
	setEnv(t, "NEXT_PUBLIC_FB_PIXEL_ID", "998877")
	setEnv(t, "NEXT_PUBLIC_GOOGLE_SITE_VERIFICATION", "verify-token")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.GoogleAnalyticsID != "G-TEST123" || cfg.GoogleTagManagerID != "GTM-ABC" ||
		cfg.FacebookPixelID != "998877" || cfg.SiteVerification != "verify-token" {
		t.Errorf("analytics IDs not loaded: %+v", cfg)
	}
}

func TestLoad_TrustedProxies(t *testing.T) {
	os.Clearenv()
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if got := len(cfg.Proxies()); got != 2 {
		t.Errorf("default Proxies() has %d entries, want loopback v4 and v6", got)
	}

	setEnv(t, "TEXTURA_TRUSTED_PROXIES", "10.0.0.0/8, 192.168.1.10")
	cfg, err = Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if got := len(cfg.Proxies()); got != 2 {
		t.Errorf("Proxies() has %d entries, want 2", got)
	}

	setEnv(t, "TEXTURA_TRUSTED_PROXIES", "edge-proxy")
	if _, err := Load(); err == nil || !strings.Contains(err.Error(), "TEXTURA_TRUSTED_PROXIES") {
		t.Errorf("Load() error = %v, want TEXTURA_TRUSTED_PROXIES error", err)
	}
}
