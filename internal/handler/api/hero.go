// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"

	"github.com/mileusna/useragent"

	"github.com/olegiv/textura/internal/metrics"
	"github.com/olegiv/textura/internal/model"
)

// Device classes recorded with hero slide events.
const (
	DeviceDesktop = "desktop"
	DeviceMobile  = "mobile"
	DeviceTablet  = "tablet"
	DeviceBot     = "bot"
)

// DeviceClass classifies a User-Agent header.
func DeviceClass(ua string) string {
	if ua == "" {
		return DeviceDesktop
	}
	parsed := useragent.Parse(ua)
	switch {
	case parsed.Bot:
		return DeviceBot
	case parsed.Tablet:
		return DeviceTablet
	case parsed.Mobile:
		return DeviceMobile
	default:
		return DeviceDesktop
	}
}

// TrackHeroView handles POST /hero-slides/{id}.
func (h *Handler) TrackHeroView(w http.ResponseWriter, r *http.Request) {
	h.trackHero(w, r, model.HeroEventView, "View tracked successfully")
}

// TrackHeroClick handles POST /hero-slides/{id}/track-click.
func (h *Handler) TrackHeroClick(w http.ResponseWriter, r *http.Request) {
	h.trackHero(w, r, model.HeroEventClick, "Click tracked successfully")
}

func (h *Handler) trackHero(w http.ResponseWriter, r *http.Request, kind, message string) {
	id, ok := requireID(w, r, "Hero slide")
	if !ok {
		return
	}
	device := DeviceClass(r.UserAgent())
	slide, err := h.queries.TrackHeroSlide(r.Context(), id, kind, device)
	if err != nil {
		h.storeError(w, r, err, "Hero slide not found", "Failed to track hero slide")
		return
	}
	metrics.HeroEventsTotal.WithLabelValues(kind, device).Inc()
	WriteSuccess(w, message, slide)
}

// HeroAnalytics handles GET /hero-slides/analytics/summary.
func (h *Handler) HeroAnalytics(w http.ResponseWriter, r *http.Request) {
	a, err := h.queries.HeroSlideAnalytics(r.Context())
	if err != nil {
		h.internalError(w, r, "Failed to fetch hero slide analytics", err)
		return
	}
	WriteSuccess(w, "Hero slide analytics retrieved successfully", a)
}
