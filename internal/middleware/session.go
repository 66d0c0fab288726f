// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/alexedwards/scs/v2"
)

// Session keys of the admin session.
const (
	SessionKeyToken     = "api_token"
	SessionKeyExpiresAt = "api_token_expires_at"
	SessionKeyEmail     = "admin_email"
	SessionKeyName      = "admin_name"
	SessionKeyFlash     = "flash"
	SessionKeyFlashType = "flash_type"
)

// PutSessionToken stores the backend token and its expiry in the session.
// The expiry is kept as Unix seconds; zero means no expiry.
func PutSessionToken(ctx context.Context, sm *scs.SessionManager, token string, expiresAt time.Time) {
	sm.Put(ctx, SessionKeyToken, token)
	if expiresAt.IsZero() {
		sm.Remove(ctx, SessionKeyExpiresAt)
		return
	}
	sm.Put(ctx, SessionKeyExpiresAt, expiresAt.Unix())
}

// SessionToken returns the backend token stored in the admin session, or ""
// when there is none or it has expired.
func SessionToken(sm *scs.SessionManager, r *http.Request) string {
	token := sm.GetString(r.Context(), SessionKeyToken)
	if token == "" {
		return ""
	}
	if exp := sm.GetInt64(r.Context(), SessionKeyExpiresAt); exp > 0 && time.Now().Unix() >= exp {
		return ""
	}
	return token
}

// RequireSession redirects to loginPath unless the session holds a live token.
func RequireSession(sm *scs.SessionManager, loginPath string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if SessionToken(sm, r) == "" {
				if sm.Exists(r.Context(), SessionKeyToken) {
					_ = sm.Destroy(r.Context())
				}
				http.Redirect(w, r, loginPath, http.StatusSeeOther)
				return
			}
			w.Header().Set("Cache-Control", "no-store")
			next.ServeHTTP(w, r)
		})
	}
}
