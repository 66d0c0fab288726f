// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package handler provides the HTTP handlers of the web process: storefront
// pages, the admin screens and the SEO endpoints.
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/alexedwards/scs/v2"
	"golang.org/x/sync/errgroup"

	"github.com/olegiv/textura/internal/client"
	"github.com/olegiv/textura/internal/fallback"
	"github.com/olegiv/textura/internal/middleware"
	"github.com/olegiv/textura/internal/model"
	"github.com/olegiv/textura/internal/render"
	"github.com/olegiv/textura/internal/site"
)

// Config holds the dependencies of the web handlers.
type Config struct {
	Renderer       *render.Renderer
	Fetcher        *client.Fetcher
	Site           *site.Settings
	SessionManager *scs.SessionManager
	Login          *middleware.LoginProtection
	Logger         *slog.Logger
	IsDev          bool
}

// Handler serves the storefront and the admin.
type Handler struct {
	renderer       *render.Renderer
	fetcher        *client.Fetcher
	client         *client.Client
	site           *site.Settings
	sessionManager *scs.SessionManager
	login          *middleware.LoginProtection
	logger         *slog.Logger
	isDev          bool
	resources      []*AdminResource
}

// NewHandler creates the web handlers.
func NewHandler(cfg Config) *Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		renderer:       cfg.Renderer,
		fetcher:        cfg.Fetcher,
		client:         cfg.Fetcher.Client(),
		site:           cfg.Site,
		sessionManager: cfg.SessionManager,
		login:          cfg.Login,
		logger:         logger,
		isDev:          cfg.IsDev,
		resources:      AdminResources(),
	}
}

// RefreshSettings reloads site settings from the backend. When the backend
// is unreachable the current values are kept.
func (h *Handler) RefreshSettings(ctx context.Context) error {
	return h.site.Refresh(ctx, func(ctx context.Context) (map[string]json.RawMessage, error) {
		v, src := client.FetchWithFallback(ctx, h.fetcher, "settings", "all", fallback.Settings(),
			func(ctx context.Context, c *client.Client) (map[string]json.RawMessage, error) { return c.Settings(ctx) })
		if src == client.SourceFallback {
			return nil, errBackendUnavailable
		}
		return v, nil
	})
}

// Warm loads the home page sections and the first page of each storefront
// list so that last good copies exist before the backend next goes away.
func (h *Handler) Warm(ctx context.Context) error {
	var g errgroup.Group
	g.Go(func() error {
		listPublic(ctx, h, "hero-slides", model.ListQuery{Limit: 10}, fallback.HeroSlides(), nil)
		return nil
	})
	g.Go(func() error {
		listPublic(ctx, h, "services", model.ListQuery{Limit: 6, Featured: true}, fallback.Services(), fallback.MatchService)
		listPublic(ctx, h, "services", model.ListQuery{Limit: 50}, fallback.Services(), fallback.MatchService)
		return nil
	})
	g.Go(func() error {
		listPublic(ctx, h, "projects", model.ListQuery{Limit: 6, Featured: true}, fallback.Projects(), fallback.MatchProject)
		listPublic(ctx, h, "projects", model.ListQuery{Limit: 9}, fallback.Projects(), fallback.MatchProject)
		return nil
	})
	g.Go(func() error {
		listPublic(ctx, h, "blog", model.ListQuery{Limit: 3}, fallback.BlogPosts(), fallback.MatchBlogPost)
		listPublic(ctx, h, "blog", model.ListQuery{Limit: 9}, fallback.BlogPosts(), fallback.MatchBlogPost)
		return nil
	})
	g.Go(func() error {
		listPublic(ctx, h, "testimonials", model.ListQuery{Limit: 6}, fallback.Testimonials(), nil)
		listPublic(ctx, h, "testimonials", model.ListQuery{Limit: 50}, fallback.Testimonials(), nil)
		return nil
	})
	g.Go(func() error {
		listPublic(ctx, h, "clients", model.ListQuery{Limit: 12}, fallback.Clients(), nil)
		listPublic(ctx, h, "clients", model.ListQuery{Limit: 50}, fallback.Clients(), nil)
		listPublic(ctx, h, "team", model.ListQuery{Limit: 50}, fallback.TeamMembers(), nil)
		return nil
	})
	_ = g.Wait()
	return ctx.Err()
}

// token returns the backend token of the current admin session.
func (h *Handler) token(r *http.Request) string {
	return middleware.SessionToken(h.sessionManager, r)
}

// SessionToken returns the admin session token for the proxy layer.
func (h *Handler) SessionToken(r *http.Request) string {
	if h.sessionManager == nil {
		return ""
	}
	return h.token(r)
}
