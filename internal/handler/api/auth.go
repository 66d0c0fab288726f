// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/olegiv/textura/internal/auth"
	"github.com/olegiv/textura/internal/metrics"
	"github.com/olegiv/textura/internal/middleware"
	"github.com/olegiv/textura/internal/model"
	"github.com/olegiv/textura/internal/store"
)

const invalidCredentials = "Invalid email or password"

// Login handles POST /auth/login.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var in model.LoginInput
	if !decodeJSON(w, r, &in) {
		return
	}
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if errs := h.validate.Struct(&in); errs != nil {
		WriteValidationError(w, errs)
		return
	}

	ctx := r.Context()
	if locked, _ := h.login.IsLocked(in.Email); locked {
		metrics.LoginAttemptsTotal.WithLabelValues("locked").Inc()
		WriteError(w, http.StatusTooManyRequests, "Too many failed attempts. Please try again later.")
		return
	}

	user, err := h.queries.GetUserByEmail(ctx, in.Email)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		h.internalError(w, r, "Login failed", err)
		return
	}
	ok := err == nil
	if ok {
		ok, err = auth.CheckPassword(in.Password, user.PasswordHash)
		if err != nil {
			h.logger.ErrorContext(ctx, "stored password hash is unreadable", "error", err, "user_id", user.ID)
			ok = false
		}
	}
	if !ok || !user.IsAdmin() {
		h.login.RecordFailure(in.Email)
		metrics.LoginAttemptsTotal.WithLabelValues("failure").Inc()
		h.logger.WarnContext(ctx, "failed login", "email", in.Email)
		WriteError(w, http.StatusUnauthorized, invalidCredentials)
		return
	}
	h.login.RecordSuccess(in.Email)

	if auth.NeedsRehash(user.PasswordHash) {
		if hash, err := auth.HashPassword(in.Password); err == nil {
			if err := h.queries.UpdateUserPassword(ctx, user.ID, hash); err != nil {
				h.logger.WarnContext(ctx, "failed to upgrade password hash", "error", err, "user_id", user.ID)
			}
		}
	}

	token, exp, err := h.issuer.Issue(user.ID, user.Email, user.Role)
	if err != nil {
		h.internalError(w, r, "Login failed", err)
		return
	}
	if err := h.queries.UpdateUserLastLogin(ctx, user.ID); err != nil {
		h.logger.WarnContext(ctx, "failed to record last login", "error", err, "user_id", user.ID)
	}
	if u, err := h.queries.GetUser(ctx, user.ID); err == nil {
		user = u
	}

	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()
	h.logger.InfoContext(ctx, "admin logged in", "user_id", user.ID)
	WriteSuccess(w, "Login successful", model.LoginResult{Token: token, ExpiresAt: exp, User: user})
}

// Me handles GET /auth/me.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r)
	if claims == nil {
		WriteError(w, http.StatusUnauthorized, "Authentication required")
		return
	}
	user, err := h.queries.GetUser(r.Context(), claims.UserID())
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			WriteError(w, http.StatusUnauthorized, "Account no longer exists")
			return
		}
		h.internalError(w, r, "Failed to fetch account", err)
		return
	}
	WriteSuccess(w, "Account retrieved successfully", user)
}
