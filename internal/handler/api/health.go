// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/olegiv/textura/internal/model"
	"github.com/olegiv/textura/internal/version"
)

// HealthStatus is the body of GET /health.
type HealthStatus struct {
	Status   string `json:"status"`
	Version  string `json:"version"`
	Database string `json:"database"`
}

// Health handles GET /health. A failing database ping answers 503.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	hs := HealthStatus{Status: "ok", Version: version.Version, Database: "ok"}
	if err := h.db.PingContext(ctx); err != nil {
		h.logger.ErrorContext(ctx, "health check: database unreachable", "error", err)
		hs.Status = "degraded"
		hs.Database = "unreachable"
		WriteJSON(w, http.StatusServiceUnavailable, model.Envelope[HealthStatus]{
			Success: false, Message: "Service unavailable", Data: hs,
		})
		return
	}
	WriteSuccess(w, "Service healthy", hs)
}
