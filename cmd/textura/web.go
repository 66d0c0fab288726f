// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"fmt"
	"io/fs"
	"time"

	"github.com/spf13/cobra"

	"github.com/olegiv/textura/internal/cache"
	"github.com/olegiv/textura/internal/client"
	"github.com/olegiv/textura/internal/fallback"
	"github.com/olegiv/textura/internal/handler"
	"github.com/olegiv/textura/internal/middleware"
	"github.com/olegiv/textura/internal/proxy"
	"github.com/olegiv/textura/internal/render"
	"github.com/olegiv/textura/internal/scheduler"
	"github.com/olegiv/textura/internal/session"
	"github.com/olegiv/textura/internal/site"
	"github.com/olegiv/textura/internal/store"
	"github.com/olegiv/textura/web"
)

// warmupSchedule is how often the storefront cache is refilled.
const warmupSchedule = "@every 10m"

func runWeb(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	ctx, stop := signalContext()
	defer stop()
	isDev := cfg.IsDevelopment()

	// Sessions live in their own SQLite file; the web process never opens
	// the content database.
	if err := ensureDir(cfg.SessionDBPath); err != nil {
		return err
	}
	sessionDB, err := store.NewDB(cfg.SessionDBPath)
	if err != nil {
		return fmt.Errorf("opening session database: %w", err)
	}
	defer func() { _ = sessionDB.Close() }()
	if err := session.EnsureSchema(ctx, sessionDB); err != nil {
		return err
	}
	sessions := session.New(sessionDB, isDev, 24*time.Hour, 5*time.Minute)
	defer sessions.Close()

	backend, cacheKind := cache.New(cfg, logger)
	defer func() { _ = backend.Close() }()
	fetcher := client.NewFetcher(client.New(cfg.Backend(), cfg.BackendTimeout), backend, cfg.CacheTTL, logger)
	logger.Info("backend client ready", "backend", cfg.Backend(), "cache", cacheKind)

	templatesFS, err := fs.Sub(web.Templates, "templates")
	if err != nil {
		return fmt.Errorf("getting templates fs: %w", err)
	}
	staticFS, err := fs.Sub(web.Static, "static/dist")
	if err != nil {
		return fmt.Errorf("getting static fs: %w", err)
	}
	renderer, err := render.New(render.Config{
		TemplatesFS:    templatesFS,
		SessionManager: sessions.SessionManager,
		Logger:         logger,
	})
	if err != nil {
		return fmt.Errorf("loading templates: %w", err)
	}

	settings := site.New(cfg.Site(), site.Analytics{
		GoogleAnalyticsID:  cfg.GoogleAnalyticsID,
		GoogleTagManagerID: cfg.GoogleTagManagerID,
		FacebookPixelID:    cfg.FacebookPixelID,
		SiteVerification:   cfg.SiteVerification,
	}, fallback.Settings())

	login := middleware.NewLoginProtection(middleware.LoginProtectionConfig{})
	h := handler.NewHandler(handler.Config{
		Renderer:       renderer,
		Fetcher:        fetcher,
		Site:           settings,
		SessionManager: sessions.SessionManager,
		Login:          login,
		Logger:         logger,
		IsDev:          isDev,
	})
	if err := h.RefreshSettings(ctx); err != nil {
		logger.Warn("site settings not loaded, using defaults", "error", err)
	}

	sched := scheduler.New(ctx, logger)
	jobs := []scheduler.Job{
		{
			Name:        "settings-refresh",
			Description: "Reload site settings from the backend",
			Schedule:    cfg.SettingsRefresh,
			Timeout:     cfg.BackendTimeout,
			Run:         h.RefreshSettings,
		},
		{
			Name:        "storefront-warmup",
			Description: "Refill the storefront cache from the backend",
			Schedule:    warmupSchedule,
			Run:         h.Warm,
		},
		{
			Name:        "login-prune",
			Description: "Forget expired login failure records",
			Schedule:    "@every 10m",
			Run: func(context.Context) error {
				login.Prune()
				return nil
			},
		},
	}
	for _, job := range jobs {
		if err := sched.Add(job); err != nil {
			return err
		}
	}
	sched.Start()
	defer sched.Stop()
	go func() {
		if err := h.Warm(ctx); err != nil && ctx.Err() == nil {
			logger.Warn("initial warmup failed", "error", err)
		}
	}()

	contactLimiter := middleware.NewRateLimiter("web_contact", cfg.ContactRPS, cfg.ContactBurst)
	loginLimiter := middleware.NewRateLimiter("web_login", cfg.LoginRPS, cfg.LoginBurst)
	go contactLimiter.Sweep(ctx, time.Minute)
	go loginLimiter.Sweep(ctx, time.Minute)

	router := handler.NewRouter(h, handler.RouterConfig{
		Proxy:          proxy.New(fetcher.Client(), h.SessionToken, logger).Routes(),
		StaticFS:       staticFS,
		CSRF:           middleware.CSRF(middleware.DefaultCSRFConfig([]byte(cfg.SessionSecret), isDev)),
		ContactLimiter: contactLimiter,
		LoginLimiter:   loginLimiter,
		RequestLogging: true,
		TrustedProxies: cfg.Proxies(),
	})

	return serve(ctx, logger, "web", newServer(cfg.WebAddr(), router, 60*time.Second))
}

