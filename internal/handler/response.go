// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"net/http"

	"github.com/olegiv/textura/internal/client"
	"github.com/olegiv/textura/internal/middleware"
	"github.com/olegiv/textura/internal/render"
)

var errBackendUnavailable = errors.New("backend unavailable")

// flashAndRedirect sets a flash message and redirects with 303.
func (h *Handler) flashAndRedirect(w http.ResponseWriter, r *http.Request, url, message, messageType string) {
	h.renderer.Flash(r, messageType, message)
	http.Redirect(w, r, url, http.StatusSeeOther)
}

// flashError sets an error flash message and redirects to the given URL.
func (h *Handler) flashError(w http.ResponseWriter, r *http.Request, url, message string) {
	h.flashAndRedirect(w, r, url, message, "error")
}

// flashSuccess sets a success flash message and redirects to the given URL.
func (h *Handler) flashSuccess(w http.ResponseWriter, r *http.Request, url, message string) {
	h.flashAndRedirect(w, r, url, message, "success")
}

// parseFormOrRedirect parses the request form and redirects with an error
// message on failure.
func (h *Handler) parseFormOrRedirect(w http.ResponseWriter, r *http.Request, redirectURL string) bool {
	if err := r.ParseForm(); err != nil {
		h.flashError(w, r, redirectURL, "Invalid form data")
		return false
	}
	return true
}

// backendError handles a failed admin call to the backend. An expired token
// ends the session; other errors flash the backend's message.
func (h *Handler) backendError(w http.ResponseWriter, r *http.Request, redirectURL string, err error) {
	if client.IsUnauthorized(err) {
		_ = h.sessionManager.Destroy(r.Context())
		h.flashError(w, r, "/admin/login", "Your session has expired. Please sign in again.")
		return
	}
	h.logger.WarnContext(r.Context(), "backend call failed", "path", r.URL.Path, "error", err)
	h.flashError(w, r, redirectURL, errorMessage(err))
}

// errorMessage returns the message to show for err.
func errorMessage(err error) string {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return "The server could not be reached. Please try again."
}

// fieldErrors returns the per-field errors of a backend validation failure.
func fieldErrors(err error) map[string]string {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Errors
	}
	return nil
}

// adminUser returns the signed-in admin for the layout.
func (h *Handler) adminUser(r *http.Request) *render.AdminUser {
	return &render.AdminUser{
		Email: h.sessionManager.GetString(r.Context(), middleware.SessionKeyEmail),
		Name:  h.sessionManager.GetString(r.Context(), middleware.SessionKeyName),
	}
}
