// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"net"
	"net/http"

	"github.com/olegiv/textura/internal/util"
)

// RealIP rewrites RemoteAddr to the client address reported by a trusted
// proxy. Requests from other peers keep their RemoteAddr and their
// forwarding headers are ignored.
func RealIP(trusted util.TrustedProxies) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if ip := util.ClientIP(r, trusted); ip != util.RemoteIP(r) {
				r.RemoteAddr = net.JoinHostPort(ip, "0")
			}
			next.ServeHTTP(w, r)
		})
	}
}
