// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/olegiv/textura/internal/client"
	"github.com/olegiv/textura/internal/middleware"
	"github.com/olegiv/textura/internal/render"
)

const (
	redirectLogin = "/admin/login"
	redirectAdmin = "/admin"
)

// LoginData is the data of the login page.
type LoginData struct {
	Email string
}

// LoginForm renders the login page. Signed-in admins go to the dashboard.
func (h *Handler) LoginForm(w http.ResponseWriter, r *http.Request) {
	if h.token(r) != "" {
		http.Redirect(w, r, redirectAdmin, http.StatusSeeOther)
		return
	}
	h.renderer.Page(w, r, "auth/login", render.TemplateData{
		Title: "Sign in",
		Site:  h.site.View(),
		Data:  LoginData{},
	})
}

// Login exchanges the submitted credentials for a backend token and stores
// it in the session.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	if !h.parseFormOrRedirect(w, r, redirectLogin) {
		return
	}
	email := strings.TrimSpace(r.PostForm.Get("email"))
	password := r.PostForm.Get("password")
	if email == "" || password == "" {
		h.flashError(w, r, redirectLogin, "Email and password are required")
		return
	}

	if h.login != nil {
		if locked, remaining := h.login.IsLocked(email); locked {
			h.flashError(w, r, redirectLogin, "Too many failed attempts. Try again in "+formatDuration(remaining)+".")
			return
		}
	}

	res, err := h.client.Login(r.Context(), email, password)
	if err != nil {
		if client.IsUnauthorized(err) && h.login != nil {
			if locked, d := h.login.RecordFailure(email); locked {
				h.flashError(w, r, redirectLogin, "Too many failed attempts. Try again in "+formatDuration(d)+".")
				return
			}
		}
		h.logger.InfoContext(r.Context(), "admin login failed", "email", email, "error", err)
		h.flashError(w, r, redirectLogin, errorMessage(err))
		return
	}
	if h.login != nil {
		h.login.RecordSuccess(email)
	}

	// New session id on privilege change.
	if err := h.sessionManager.RenewToken(r.Context()); err != nil {
		h.logger.ErrorContext(r.Context(), "renewing session token", "error", err)
		h.flashError(w, r, redirectLogin, "Could not start a session. Please try again.")
		return
	}
	ctx := r.Context()
	middleware.PutSessionToken(ctx, h.sessionManager, res.Token, res.ExpiresAt)
	h.sessionManager.Put(ctx, middleware.SessionKeyEmail, res.User.Email)
	h.sessionManager.Put(ctx, middleware.SessionKeyName, res.User.Name)

	h.logger.InfoContext(ctx, "admin signed in", "email", res.User.Email)
	h.flashSuccess(w, r, redirectAdmin, "Welcome back, "+displayName(res.User.Name, res.User.Email))
}

// Logout ends the admin session.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessionManager.Destroy(r.Context()); err != nil {
		h.logger.ErrorContext(r.Context(), "destroying session", "error", err)
	}
	http.Redirect(w, r, redirectLogin, http.StatusSeeOther)
}

func displayName(name, email string) string {
	if name != "" {
		return name
	}
	return email
}

// formatDuration renders a lockout duration for humans.
func formatDuration(d time.Duration) string {
	if d < time.Minute {
		return "less than a minute"
	}
	m := int(d.Round(time.Minute).Minutes())
	if m < 60 {
		if m == 1 {
			return "1 minute"
		}
		return fmt.Sprintf("%d minutes", m)
	}
	h := m / 60
	if h == 1 {
		return "1 hour"
	}
	return fmt.Sprintf("%d hours", h)
}
