// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/olegiv/textura/internal/client"
	"github.com/olegiv/textura/internal/model"
	"github.com/olegiv/textura/internal/version"
)

// HealthStatus is the body of the web process health check.
type HealthStatus struct {
	Status           string    `json:"status"`
	Version          string    `json:"version"`
	Backend          string    `json:"backend"`
	SettingsLoadedAt time.Time `json:"settingsLoadedAt,omitzero"`
}

// Health reports the web process as up. A down backend degrades the status
// but not the code; the storefront keeps serving cached and fallback pages.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	hs := HealthStatus{Status: "ok", Version: version.Version, Backend: "ok", SettingsLoadedAt: h.site.RefreshedAt()}
	if _, err := client.Call[json.RawMessage](ctx, h.client, http.MethodGet, "health", nil, nil, ""); err != nil {
		h.logger.WarnContext(ctx, "health check: backend unreachable", "error", err)
		hs.Status = "degraded"
		hs.Backend = "unreachable"
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_ = json.NewEncoder(w).Encode(model.Envelope[HealthStatus]{Success: true, Message: "Web process healthy", Data: hs})
}
