// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package proxy

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/textura/internal/client"
	"github.com/olegiv/textura/internal/metrics"
	"github.com/olegiv/textura/internal/model"
	"github.com/olegiv/textura/internal/testutil"
)

func newProxyServer(t *testing.T, backendURL string, token TokenFunc) http.Handler {
	t.Helper()
	p := New(client.New(backendURL, time.Second), token, testutil.TestLogger())
	r := chi.NewRouter()
	r.Mount("/api", p.Routes())
	return r
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) model.Envelope[json.RawMessage] {
	t.Helper()
	var env model.Envelope[json.RawMessage]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return env
}

func TestProxyRelaysSuccess(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/services", r.URL.Path)
		assert.Equal(t, "true", r.URL.Query().Get("active"))
		assert.Equal(t, "10.1.2.3", r.Header.Get("X-Real-IP"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"message":"ok","data":[{"id":1}]}`))
	}))
	defer backend.Close()

	h := newProxyServer(t, backend.URL+"/api/v1", nil)
	req := httptest.NewRequest(http.MethodGet, "/api/services?active=true", nil)
	req.RemoteAddr = "10.1.2.3:5555"
	req.Header.Set("X-Real-IP", "192.0.2.66")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"message":"ok","data":[{"id":1}]}`, rec.Body.String())
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
}

func TestProxyRelaysBackendErrorStatus(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"success":false,"message":"Hero slide not found"}`))
	}))
	defer backend.Close()

	h := newProxyServer(t, backend.URL, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/hero-slides/999", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	env := decode(t, rec)
	assert.False(t, env.Success)
	assert.Equal(t, "Hero slide not found", env.Message)
}

func TestProxyForwardsBodyAndAuth(t *testing.T) {
	var gotAuth atomic.Value
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth.Store(r.Header.Get("Authorization"))
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/services/4/status", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"status":"INACTIVE"}`, string(body))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"message":"Service updated successfully"}`))
	}))
	defer backend.Close()

	sessionToken := func(*http.Request) string { return "session-token" }
	h := newProxyServer(t, backend.URL, sessionToken)

	tests := []struct {
		name   string
		header string
		want   string
	}{
		{"inbound header wins", "Bearer inbound", "Bearer inbound"},
		{"session token attached", "", "Bearer session-token"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPut, "/api/services/4/status", strings.NewReader(`{"status":"INACTIVE"}`))
			req.Header.Set("Content-Type", "application/json")
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tt.want, gotAuth.Load())
		})
	}
}

func TestProxyTransportFailure(t *testing.T) {
	backend := httptest.NewServer(http.NotFoundHandler())
	url := backend.URL
	backend.Close()

	h := newProxyServer(t, url, nil)
	before := promtest.ToFloat64(metrics.ProxyFailuresTotal.WithLabelValues("services", "transport"))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/services", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	env := decode(t, rec)
	assert.False(t, env.Success)
	assert.Equal(t, "Failed to fetch services", env.Message)
	assert.Equal(t, before+1, promtest.ToFloat64(metrics.ProxyFailuresTotal.WithLabelValues("services", "transport")))
}

func TestProxyReadEndpointsFailWith500(t *testing.T) {
	backend := httptest.NewServer(http.NotFoundHandler())
	url := backend.URL
	backend.Close()
	h := newProxyServer(t, url, nil)

	for _, path := range []string{
		"/api/services", "/api/projects/1", "/api/blog/slug/x", "/api/team", "/api/testimonials",
		"/api/hero-slides", "/api/clients", "/api/settings", "/api/contact/stats", "/api/notifications",
	} {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusInternalServerError, rec.Code, path)
		assert.False(t, decode(t, rec).Success, path)
	}
}

func TestProxyNonJSONBody(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("<html>upstream error</html>"))
	}))
	defer backend.Close()

	h := newProxyServer(t, backend.URL, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/services", strings.NewReader(`{}`)))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Failed to create service", decode(t, rec).Message)
}

func TestProxyUnknownResource(t *testing.T) {
	var hits atomic.Int32
	backend := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { hits.Add(1) }))
	defer backend.Close()

	h := newProxyServer(t, backend.URL, nil)
	for _, path := range []string{"/api/unknown", "/api/", "/api/services/..%2F..%2Fadmin"} {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusNotFound, rec.Code, path)
	}
	assert.Zero(t, hits.Load())
}

func TestFailureMessage(t *testing.T) {
	tests := []struct {
		method string
		path   string
		want   string
	}{
		{http.MethodGet, "services", "Failed to fetch services"},
		{http.MethodGet, "services/3", "Failed to fetch service"},
		{http.MethodGet, "blog/slug/hello", "Failed to fetch blog post"},
		{http.MethodPost, "services", "Failed to create service"},
		{http.MethodPut, "projects/2", "Failed to update project"},
		{http.MethodPut, "team/2/status", "Failed to update team member status"},
		{http.MethodDelete, "testimonials/1", "Failed to delete testimonial"},
		{http.MethodPost, "hero-slides/1", "Failed to track view"},
		{http.MethodPost, "hero-slides/1/track-click", "Failed to track click"},
		{http.MethodGet, "hero-slides/analytics/summary", "Failed to fetch hero slide analytics"},
		{http.MethodPost, "hero-slides", "Failed to create hero slide"},
		{http.MethodPost, "contact", "Failed to send message"},
		{http.MethodGet, "contact/submissions", "Failed to fetch contact submissions"},
		{http.MethodPut, "contact/submissions/4/status", "Failed to update contact submission status"},
		{http.MethodPut, "settings", "Failed to update settings"},
		{http.MethodPut, "settings/site_name", "Failed to update setting"},
		{http.MethodGet, "notifications/unread-count", "Failed to fetch unread count"},
		{http.MethodPost, "auth/login", "Login failed"},
		{http.MethodPost, "media", "Failed to upload file"},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			segments := strings.Split(tt.path, "/")
			res := resources[segments[0]]
			assert.Equal(t, tt.want, res.failureMessage(tt.method, segments))
		})
	}
}
