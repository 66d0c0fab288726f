// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package util

import (
	"fmt"
	"net"
	"net/http"
	"strings"
)

// TrustedProxies is the set of peers allowed to report the client address
// through X-Real-IP or X-Forwarded-For.
type TrustedProxies []*net.IPNet

// ParseTrustedProxies parses a list of IP addresses and CIDR ranges.
// Blank entries are skipped.
func ParseTrustedProxies(entries []string) (TrustedProxies, error) {
	var out TrustedProxies
	for _, e := range entries {
		e = strings.TrimSpace(e)
		if e == "" {
			continue
		}
		if !strings.Contains(e, "/") {
			ip := net.ParseIP(e)
			if ip == nil {
				return nil, fmt.Errorf("invalid trusted proxy %q", e)
			}
			bits := 128
			if ip.To4() != nil {
				ip, bits = ip.To4(), 32
			}
			out = append(out, &net.IPNet{IP: ip, Mask: net.CIDRMask(bits, bits)})
			continue
		}
		_, block, err := net.ParseCIDR(e)
		if err != nil {
			return nil, fmt.Errorf("invalid trusted proxy %q: %w", e, err)
		}
		out = append(out, block)
	}
	return out, nil
}

// Contains reports whether ip belongs to a trusted range.
func (t TrustedProxies) Contains(ip net.IP) bool {
	if ip == nil {
		return false
	}
	for _, block := range t {
		if block.Contains(ip) {
			return true
		}
	}
	return false
}

// RemoteIP returns the host part of the request's RemoteAddr.
func RemoteIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}

// ClientIP resolves the client address. Forwarding headers are only honoured
// when the direct peer is trusted; otherwise the peer address is returned.
// For X-Forwarded-For the right-most untrusted hop wins.
func ClientIP(r *http.Request, trusted TrustedProxies) string {
	peer := RemoteIP(r)
	if !trusted.Contains(net.ParseIP(peer)) {
		return peer
	}
	if ip := net.ParseIP(strings.TrimSpace(r.Header.Get("X-Real-IP"))); ip != nil {
		return ip.String()
	}
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		hops := strings.Split(xff, ",")
		for i := len(hops) - 1; i >= 0; i-- {
			ip := net.ParseIP(strings.TrimSpace(hops[i]))
			if ip == nil {
				break
			}
			if !trusted.Contains(ip) || i == 0 {
				return ip.String()
			}
		}
	}
	return peer
}
