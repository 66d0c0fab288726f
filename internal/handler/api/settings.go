// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"encoding/json"
	"net/http"
	"regexp"
	"strings"

	"github.com/go-chi/chi/v5"
)

var settingKeyRe = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_.-]{0,99}$`)

// settingValue is the body of PUT /settings/{key}. A body that is not an
// object with "value" is taken as the value itself.
type settingValue struct {
	Value json.RawMessage `json:"value"`
	Group string          `json:"group"`
}

// ListSettings handles GET /settings.
func (h *Handler) ListSettings(w http.ResponseWriter, r *http.Request) {
	m, err := h.queries.SettingsMap(r.Context())
	if err != nil {
		h.internalError(w, r, "Failed to fetch settings", err)
		return
	}
	WriteSuccess(w, "Settings retrieved successfully", m)
}

// GetSetting handles GET /settings/{key}.
func (h *Handler) GetSetting(w http.ResponseWriter, r *http.Request) {
	s, err := h.queries.GetSetting(r.Context(), chi.URLParam(r, "key"))
	if err != nil {
		h.storeError(w, r, err, "Setting not found", "Failed to fetch setting")
		return
	}
	WriteSuccess(w, "Setting retrieved successfully", s)
}

// UpdateSettings handles PUT /settings with a {key: value} body.
func (h *Handler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var body map[string]json.RawMessage
	if !decodeJSON(w, r, &body) {
		return
	}
	if len(body) == 0 {
		WriteError(w, http.StatusBadRequest, "No settings provided")
		return
	}
	errs := map[string]string{}
	for key := range body {
		if !settingKeyRe.MatchString(key) {
			errs[key] = "invalid setting key"
		}
	}
	if len(errs) > 0 {
		WriteValidationError(w, errs)
		return
	}

	tx, err := h.db.BeginTx(r.Context(), nil)
	if err != nil {
		h.internalError(w, r, "Failed to update settings", err)
		return
	}
	defer func() { _ = tx.Rollback() }()
	q := h.queries.WithTx(tx)
	for key, value := range body {
		if err := q.UpsertSetting(r.Context(), key, value, ""); err != nil {
			h.internalError(w, r, "Failed to update settings", err)
			return
		}
	}
	if err := tx.Commit(); err != nil {
		h.internalError(w, r, "Failed to update settings", err)
		return
	}

	m, err := h.queries.SettingsMap(r.Context())
	if err != nil {
		h.internalError(w, r, "Failed to fetch settings", err)
		return
	}
	WriteSuccess(w, "Settings updated successfully", m)
}

// UpdateSetting handles PUT /settings/{key}.
func (h *Handler) UpdateSetting(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	if !settingKeyRe.MatchString(key) {
		WriteValidationError(w, map[string]string{"key": "invalid setting key"})
		return
	}
	var raw json.RawMessage
	if !decodeJSON(w, r, &raw) {
		return
	}
	if len(raw) == 0 {
		WriteValidationError(w, map[string]string{"value": "value is required"})
		return
	}

	sv := settingValue{Value: raw}
	if trimmed := strings.TrimSpace(string(raw)); strings.HasPrefix(trimmed, "{") {
		var wrapped settingValue
		if err := json.Unmarshal(raw, &wrapped); err == nil && len(wrapped.Value) > 0 {
			sv = wrapped
		}
	}

	if err := h.queries.UpsertSetting(r.Context(), key, sv.Value, sv.Group); err != nil {
		h.internalError(w, r, "Failed to update setting", err)
		return
	}
	s, err := h.queries.GetSetting(r.Context(), key)
	if err != nil {
		h.internalError(w, r, "Failed to fetch setting", err)
		return
	}
	WriteSuccess(w, "Setting updated successfully", s)
}

// DeleteSetting handles DELETE /settings/{key}.
func (h *Handler) DeleteSetting(w http.ResponseWriter, r *http.Request) {
	if err := h.queries.DeleteSetting(r.Context(), chi.URLParam(r, "key")); err != nil {
		h.storeError(w, r, err, "Setting not found", "Failed to delete setting")
		return
	}
	WriteMessage(w, "Setting deleted successfully")
}
