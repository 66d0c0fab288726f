// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/olegiv/textura/internal/store"
)

func runSeed(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	if err := ensureDir(cfg.DBPath); err != nil {
		return err
	}
	db, err := store.NewDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	defer func() { _ = db.Close() }()

	if err := store.Migrate(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	res, err := store.Seed(cmd.Context(), db, store.SeedOptions{
		AdminEmail:    cfg.AdminEmail,
		AdminPassword: cfg.AdminPassword,
	})
	if err != nil {
		return fmt.Errorf("seeding database: %w", err)
	}

	logger.Info("seed complete",
		"services", res.Services,
		"projects", res.Projects,
		"testimonials", res.Testimonials,
		"hero_slides_cleared", res.HeroCleared,
		"admin", res.AdminEmail,
	)
	fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d services, %d projects, %d testimonials; admin %s\n",
		res.Services, res.Projects, res.Testimonials, res.AdminEmail)
	return nil
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	if err := ensureDir(cfg.DBPath); err != nil {
		return err
	}
	db, err := store.NewDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	defer func() { _ = db.Close() }()

	if migrateDown {
		err = store.MigrateDown(db)
	} else {
		err = store.Migrate(db)
	}
	if err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	v, err := store.SchemaVersion(db)
	if err != nil {
		return fmt.Errorf("reading schema version: %w", err)
	}
	logger.Info("migrations applied", "version", v, "down", migrateDown)
	return nil
}
