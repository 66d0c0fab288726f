// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package proxy forwards /api/* requests of the web process to the backend
// and relays the backend's JSON response.
package proxy

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/textura/internal/client"
	"github.com/olegiv/textura/internal/metrics"
	"github.com/olegiv/textura/internal/model"
	"github.com/olegiv/textura/internal/util"
)

const (
	// maxRequestBytes covers media uploads.
	maxRequestBytes  = 12 << 20
	maxResponseBytes = 10 << 20
)

// TokenFunc returns a bearer token to attach when the inbound request has
// no Authorization header.
type TokenFunc func(r *http.Request) string

// Proxy relays resource requests to the backend.
type Proxy struct {
	client *client.Client
	token  TokenFunc
	logger *slog.Logger
}

// New creates a proxy. token may be nil.
func New(c *client.Client, token TokenFunc, logger *slog.Logger) *Proxy {
	return &Proxy{client: c, token: token, logger: logger}
}

// Routes returns a router to mount under /api.
func (p *Proxy) Routes() chi.Router {
	r := chi.NewRouter()
	r.HandleFunc("/*", p.ServeHTTP)
	return r
}

// ServeHTTP forwards the request path after the mount point.
func (p *Proxy) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.Trim(chi.URLParam(r, "*"), "/")
	segments := strings.Split(path, "/")
	res, ok := resources[segments[0]]
	if !ok || path == "" || strings.Contains(path, "..") {
		writeJSON(w, http.StatusNotFound, model.Envelope[any]{Message: "Endpoint not found"})
		return
	}
	failMsg := res.failureMessage(r.Method, segments)

	var body io.Reader
	if r.Body != nil && r.Method != http.MethodGet && r.Method != http.MethodHead {
		body = http.MaxBytesReader(w, r.Body, maxRequestBytes)
	}

	out, err := p.client.NewRequest(r.Context(), r.Method, path, r.URL.Query(), body, "")
	if err != nil {
		p.fail(w, r, segments[0], "transport", failMsg, err)
		return
	}
	p.copyHeaders(r, out)

	resp, err := p.client.Do(out)
	if err != nil {
		if r.Context().Err() != nil {
			p.logger.DebugContext(r.Context(), "client went away before backend answered", "path", path)
			return
		}
		p.fail(w, r, segments[0], "transport", failMsg, err)
		return
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		p.fail(w, r, segments[0], "transport", failMsg, err)
		return
	}
	if !client.IsJSON(resp.Header.Get("Content-Type")) || !json.Valid(data) {
		p.fail(w, r, segments[0], "decode", failMsg, client.ErrNotJSON)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(resp.StatusCode)
	_, _ = w.Write(data)
}

func (p *Proxy) copyHeaders(in, out *http.Request) {
	for _, h := range []string{"Content-Type", "User-Agent", "Accept-Language"} {
		if v := in.Header.Get(h); v != "" {
			out.Header.Set(h, v)
		}
	}
	if auth := in.Header.Get("Authorization"); auth != "" {
		out.Header.Set("Authorization", auth)
	} else if p.token != nil {
		if tok := p.token(in); tok != "" {
			out.Header.Set("Authorization", "Bearer "+tok)
		}
	}
	if ip := util.RemoteIP(in); ip != "" {
		out.Header.Set("X-Real-IP", ip)
	}
	if id := in.Header.Get("X-Request-Id"); id != "" {
		out.Header.Set("X-Request-Id", id)
	}
}

func (p *Proxy) fail(w http.ResponseWriter, r *http.Request, resource, reason, message string, err error) {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		writeJSON(w, http.StatusRequestEntityTooLarge, model.Envelope[any]{Message: "Request body too large"})
		return
	}
	metrics.ProxyFailuresTotal.WithLabelValues(resource, reason).Inc()
	p.logger.ErrorContext(r.Context(), "proxy request failed",
		"method", r.Method, "path", r.URL.Path, "reason", reason, "error", err)
	writeJSON(w, http.StatusInternalServerError, model.Envelope[any]{Message: message})
}

func writeJSON(w http.ResponseWriter, status int, env model.Envelope[any]) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(env)
}
