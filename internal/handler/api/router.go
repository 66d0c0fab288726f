// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/olegiv/textura/internal/middleware"
	"github.com/olegiv/textura/internal/util"
)

// RouterConfig configures the API router.
type RouterConfig struct {
	// ContactLimiter and LoginLimiter throttle the public POST endpoints.
	ContactLimiter *middleware.RateLimiter
	LoginLimiter   *middleware.RateLimiter
	// RequestLogging enables one log line per request.
	RequestLogging bool
	// TrustedProxies may report the client address in forwarding headers.
	TrustedProxies util.TrustedProxies
}

// NewRouter builds the backend router: /api/v1, /health, /metrics and /uploads.
func NewRouter(h *Handler, cfg RouterConfig) http.Handler {
	if cfg.ContactLimiter == nil {
		cfg.ContactLimiter = middleware.NewRateLimiter("contact", 0.1, 5)
	}
	if cfg.LoginLimiter == nil {
		cfg.LoginLimiter = middleware.NewRateLimiter("login", 0.5, 5)
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(middleware.RealIP(cfg.TrustedProxies))
	if cfg.RequestLogging {
		r.Use(middleware.RequestLogger(h.logger))
	}
	r.Use(chimw.Recoverer)
	r.Use(middleware.Metrics("api"))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))

	r.Get("/health", h.Health)
	r.Handle("/metrics", promhttp.Handler())
	if h.uploadsDir != "" {
		r.Handle(h.uploadsURL+"/*", http.StripPrefix(h.uploadsURL+"/", http.FileServer(http.Dir(h.uploadsDir))))
	}

	requireAuth := middleware.RequireJWT(h.issuer)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.APIHeaders)
		r.Use(middleware.OptionalJWT(h.issuer))
		r.NotFound(func(w http.ResponseWriter, r *http.Request) {
			WriteError(w, http.StatusNotFound, "Route not found")
		})
		r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
			WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		})

		r.Get("/health", h.Health)

		r.Route("/services", func(r chi.Router) { h.Services().Routes(r, requireAuth) })
		r.Route("/projects", func(r chi.Router) { h.Projects().Routes(r, requireAuth) })
		r.Route("/blog", func(r chi.Router) { h.BlogPosts().Routes(r, requireAuth) })
		r.Route("/team", func(r chi.Router) { h.TeamMembers().Routes(r, requireAuth) })
		r.Route("/testimonials", func(r chi.Router) { h.Testimonials().Routes(r, requireAuth) })
		r.Route("/clients", func(r chi.Router) { h.Clients().Routes(r, requireAuth) })
		r.Route("/hero-slides", func(r chi.Router) {
			r.With(requireAuth).Get("/analytics/summary", h.HeroAnalytics)
			r.Post("/{id}", h.TrackHeroView)
			r.Post("/{id}/track-click", h.TrackHeroClick)
			h.HeroSlides().Routes(r, requireAuth)
		})

		r.Route("/contact", func(r chi.Router) {
			r.With(cfg.ContactLimiter.Middleware).Post("/", h.SubmitContact)
			r.Group(func(r chi.Router) {
				r.Use(requireAuth)
				r.Get("/stats", h.ContactStats)
				r.Get("/submissions", h.ListContactSubmissions)
				r.Get("/submissions/{id}", h.GetContactSubmission)
				r.Put("/submissions/{id}/status", h.SetContactSubmissionStatus)
				r.Delete("/submissions/{id}", h.DeleteContactSubmission)
			})
		})

		r.Route("/settings", func(r chi.Router) {
			r.Get("/", h.ListSettings)
			r.Get("/{key}", h.GetSetting)
			r.Group(func(r chi.Router) {
				r.Use(requireAuth)
				r.Put("/", h.UpdateSettings)
				r.Put("/{key}", h.UpdateSetting)
				r.Delete("/{key}", h.DeleteSetting)
			})
		})

		r.Route("/notifications", func(r chi.Router) {
			r.Use(requireAuth)
			r.Get("/", h.ListNotifications)
			r.Get("/unread-count", h.UnreadNotificationCount)
			r.Put("/read-all", h.MarkAllNotificationsRead)
			r.Put("/{id}/read", h.MarkNotificationRead)
			r.Delete("/{id}", h.DeleteNotification)
		})

		r.Route("/auth", func(r chi.Router) {
			r.With(cfg.LoginLimiter.Middleware).Post("/login", h.Login)
			r.With(requireAuth).Get("/me", h.Me)
		})

		r.Route("/media", func(r chi.Router) {
			r.Use(requireAuth)
			r.Get("/", h.ListMedia)
			r.Post("/", h.UploadMedia)
			r.Delete("/{id}", h.DeleteMedia)
		})
	})

	return r
}
