// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package metrics defines the Prometheus collectors shared by the API and web servers.
// They register with the default registry on import.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "textura"

// HTTPRequestsTotal counts handled requests by method, route pattern and status code.
var HTTPRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests.",
	},
	[]string{"server", "method", "path", "status"},
)

// HTTPRequestDuration observes request latency.
var HTTPRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests in seconds.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"server", "method", "path"},
)

// HeroEventsTotal counts hero slide views and clicks.
// Labels:
//   - kind: "view" or "click"
//   - device: "desktop", "mobile", "tablet" or "bot"
var HeroEventsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "hero_events_total",
		Help:      "Total number of tracked hero slide events.",
	},
	[]string{"kind", "device"},
)

// ContactSubmissionsTotal counts contact form submissions by outcome
// ("accepted", "invalid" or "error").
var ContactSubmissionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "contact_submissions_total",
		Help:      "Total number of contact form submissions.",
	},
	[]string{"result"},
)

// ProxyFailuresTotal counts proxied calls that could not be relayed.
// Label reason is "transport" or "decode".
var ProxyFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "proxy_failures_total",
		Help:      "Total number of proxied requests answered with a fallback error.",
	},
	[]string{"resource", "reason"},
)

// FallbackServedTotal counts storefront reads answered from fallback data.
var FallbackServedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "fallback_served_total",
		Help:      "Total number of storefront reads served from fallback content.",
	},
	[]string{"resource"},
)

// LoginAttemptsTotal counts admin logins by result ("success" or "failure").
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of admin login attempts.",
	},
	[]string{"result"},
)
