// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"io/fs"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/olegiv/textura/internal/middleware"
	"github.com/olegiv/textura/internal/util"
)

// RouterConfig configures the web router.
type RouterConfig struct {
	// Proxy serves /api/*.
	Proxy http.Handler
	// StaticFS holds the built assets served at /static.
	StaticFS fs.FS
	// CSRF protects every unsafe request. Nil disables it (tests).
	CSRF func(http.Handler) http.Handler
	// ContactLimiter and LoginLimiter throttle the form posts.
	ContactLimiter *middleware.RateLimiter
	LoginLimiter   *middleware.RateLimiter
	RequestLogging bool
	// TrustedProxies may report the client address in forwarding headers.
	TrustedProxies util.TrustedProxies
}

// NewRouter builds the web router: storefront, admin, /api proxy, static
// assets and the operational endpoints.
func NewRouter(h *Handler, cfg RouterConfig) http.Handler {
	if cfg.ContactLimiter == nil {
		cfg.ContactLimiter = middleware.NewRateLimiter("web_contact", 0.1, 5)
	}
	if cfg.LoginLimiter == nil {
		cfg.LoginLimiter = middleware.NewRateLimiter("web_login", 0.5, 5)
	}
	csrf := cfg.CSRF
	if csrf == nil {
		csrf = func(next http.Handler) http.Handler { return next }
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(middleware.RealIP(cfg.TrustedProxies))
	if cfg.RequestLogging {
		r.Use(middleware.RequestLogger(h.logger))
	}
	r.Use(chimw.Recoverer)
	r.Use(middleware.Metrics("web"))
	r.Use(chimw.Compress(5))
	r.Use(chimw.GetHead)
	r.Use(middleware.StripTrailingSlash)
	r.Use(middleware.SecurityHeaders(middleware.DefaultSecurityHeadersConfig(h.isDev)))
	r.Use(h.sessionManager.LoadAndSave)

	r.NotFound(h.NotFound)

	r.Get("/health", h.Health)
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/robots.txt", h.Robots)
	r.Get("/sitemap.xml", h.Sitemap)
	if cfg.StaticFS != nil {
		r.Handle("/static/*", middleware.StaticCache(604800)(
			http.StripPrefix("/static/", http.FileServer(http.FS(cfg.StaticFS)))))
	}

	if cfg.Proxy != nil {
		r.With(csrf).Mount("/api", cfg.Proxy)
	}

	r.Group(func(r chi.Router) {
		r.Use(chimw.Timeout(30 * time.Second))
		r.Use(csrf)

		r.Get("/", h.Home)
		r.Get("/services", h.Services)
		r.Get("/services/{slug}", h.ServiceDetail)
		r.Get("/projects", h.Projects)
		r.Get("/projects/{slug}", h.ProjectDetail)
		r.Get("/blog", h.Blog)
		r.Get("/blog/{slug}", h.BlogPost)
		r.Get("/testimonials", h.Testimonials)
		r.Get("/about", h.About)
		r.Get("/contact", h.ContactForm)
		r.With(cfg.ContactLimiter.HTMLMiddleware).Post("/contact", h.SubmitContact)
	})

	r.Route("/admin", func(r chi.Router) {
		r.Use(middleware.NoStore)
		r.Use(chimw.Timeout(60 * time.Second))
		r.Use(csrf)

		r.Get("/login", h.LoginForm)
		r.With(cfg.LoginLimiter.HTMLMiddleware).Post("/login", h.Login)
		r.Post("/logout", h.Logout)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireSession(h.sessionManager, redirectLogin))

			r.Get("/", h.Dashboard)
			for _, res := range h.resources {
				h.mountResource(r, res)
			}
			r.Get("/hero-analytics", h.HeroAnalytics)

			r.Get("/contact", h.AdminContactList)
			r.Get("/contact/{id}", h.AdminContactDetail)
			r.Post("/contact/{id}/status", h.AdminContactStatus)
			r.Post("/contact/{id}/delete", h.AdminContactDelete)

			r.Get("/settings", h.AdminSettings)
			r.Post("/settings", h.SaveSettings)
			r.Post("/settings/delete", h.DeleteSetting)

			r.Get("/media", h.AdminMedia)
			r.Post("/media", h.UploadMedia)
			r.Post("/media/{id}/delete", h.DeleteMedia)

			r.Get("/notifications", h.AdminNotifications)
			r.Post("/notifications/read-all", h.MarkAllNotificationsRead)
			r.Post("/notifications/{id}/read", h.MarkNotificationRead)
		})
	})

	return r
}
