// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/olegiv/textura/internal/auth"
	"github.com/olegiv/textura/internal/handler/api"
	"github.com/olegiv/textura/internal/middleware"
	"github.com/olegiv/textura/internal/scheduler"
	"github.com/olegiv/textura/internal/store"
)

func runAPI(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	ctx, stop := signalContext()
	defer stop()

	if err := ensureDir(cfg.DBPath); err != nil {
		return err
	}
	if err := os.MkdirAll(cfg.UploadsDir, 0o755); err != nil {
		return fmt.Errorf("creating uploads directory: %w", err)
	}

	logger.Info("initializing database", "path", cfg.DBPath)
	db, err := store.NewDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("error closing database connection", "error", err)
		}
	}()
	if err := store.Migrate(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	logger.Info("database ready")

	login := middleware.NewLoginProtection(middleware.LoginProtectionConfig{})
	contactLimiter := middleware.NewRateLimiter("contact", cfg.ContactRPS, cfg.ContactBurst)
	loginLimiter := middleware.NewRateLimiter("login", cfg.LoginRPS, cfg.LoginBurst)
	go contactLimiter.Sweep(ctx, time.Minute)
	go loginLimiter.Sweep(ctx, time.Minute)

	sched := scheduler.New(ctx, logger)
	if err := sched.Add(scheduler.Job{
		Name:        "login-prune",
		Description: "Forget expired login failure records",
		Schedule:    "@every 10m",
		Run: func(context.Context) error {
			login.Prune()
			return nil
		},
	}); err != nil {
		return err
	}
	sched.Start()
	defer sched.Stop()

	h := api.NewHandler(api.Config{
		DB:             db,
		Issuer:         auth.NewTokenIssuer(cfg.JWTSecret, cfg.JWTTTL),
		Logger:         logger,
		UploadsDir:     cfg.UploadsDir,
		UploadsURL:     "/uploads",
		MaxUploadBytes: cfg.MaxUploadBytes(),
		Login:          login,
	})
	router := api.NewRouter(h, api.RouterConfig{
		ContactLimiter: contactLimiter,
		LoginLimiter:   loginLimiter,
		RequestLogging: true,
		TrustedProxies: cfg.Proxies(),
	})

	// Uploads need the longer write timeout.
	return serve(ctx, logger, "api", newServer(cfg.ServerAddr(), router, 60*time.Second))
}
