// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"encoding/json"
	"io"
	"io/fs"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/textura/internal/cache"
	"github.com/olegiv/textura/internal/client"
	"github.com/olegiv/textura/internal/fallback"
	"github.com/olegiv/textura/internal/middleware"
	"github.com/olegiv/textura/internal/model"
	"github.com/olegiv/textura/internal/proxy"
	"github.com/olegiv/textura/internal/render"
	"github.com/olegiv/textura/internal/site"
	"github.com/olegiv/textura/internal/testutil"
	"github.com/olegiv/textura/web"
)

// unreachableBackend is a base URL nothing listens on.
const unreachableBackend = "http://127.0.0.1:1/api/v1"

type testEnv struct {
	t       *testing.T
	handler *Handler
	server  *httptest.Server
	http    *http.Client
}

// newTestEnv starts the web router against backendURL.
func newTestEnv(t *testing.T, backendURL string) *testEnv {
	t.Helper()
	logger := testutil.TestLogger()

	templates, err := fs.Sub(web.Templates, "templates")
	require.NoError(t, err)
	static, err := fs.Sub(web.Static, "static/dist")
	require.NoError(t, err)

	sm := scs.New()
	renderer, err := render.New(render.Config{TemplatesFS: templates, SessionManager: sm, Logger: logger})
	require.NoError(t, err)

	store := cache.NewMemoryCache(cache.MemoryCacheOptions{DefaultTTL: time.Minute})
	t.Cleanup(func() { _ = store.Close() })
	fetcher := client.NewFetcher(client.New(backendURL, 2*time.Second), store, time.Minute, logger)

	h := NewHandler(Config{
		Renderer:       renderer,
		Fetcher:        fetcher,
		Site:           site.New("https://textura.test", site.Analytics{}, fallback.Settings()),
		SessionManager: sm,
		Login:          middleware.NewLoginProtection(middleware.LoginProtectionConfig{}),
		Logger:         logger,
		IsDev:          true,
	})
	router := NewRouter(h, RouterConfig{
		Proxy:          proxy.New(fetcher.Client(), h.SessionToken, logger).Routes(),
		StaticFS:       static,
		ContactLimiter: middleware.NewRateLimiter("test_contact", 1000, 1000),
		LoginLimiter:   middleware.NewRateLimiter("test_login", 1000, 1000),
	})

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &testEnv{
		t:       t,
		handler: h,
		server:  srv,
		http: &http.Client{
			Jar: jar,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

// get returns status, body and the Location header.
func (e *testEnv) get(path string) (int, string, string) {
	e.t.Helper()
	resp, err := e.http.Get(e.server.URL + path)
	require.NoError(e.t, err)
	return readResponse(e.t, resp)
}

func (e *testEnv) postForm(path string, form url.Values) (int, string, string) {
	e.t.Helper()
	resp, err := e.http.PostForm(e.server.URL+path, form)
	require.NoError(e.t, err)
	return readResponse(e.t, resp)
}

func (e *testEnv) login() {
	e.t.Helper()
	status, _, loc := e.postForm("/admin/login", url.Values{"email": {"admin@textura.test"}, "password": {"secret-pass"}})
	require.Equal(e.t, http.StatusSeeOther, status)
	require.Equal(e.t, "/admin", loc)
}

func readResponse(t *testing.T, resp *http.Response) (int, string, string) {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body), resp.Header.Get("Location")
}

// backend is a fake JSON API. Unregistered GETs answer an empty list.
type backend struct {
	*http.ServeMux
	server *httptest.Server
}

func newBackend(t *testing.T) *backend {
	t.Helper()
	b := &backend{ServeMux: http.NewServeMux()}
	b.HandleFunc("GET /api/v1/", func(w http.ResponseWriter, r *http.Request) {
		writeList(w, []any{}, 0)
	})
	b.HandleFunc("POST /api/v1/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var in model.LoginInput
		_ = json.NewDecoder(r.Body).Decode(&in)
		if in.Password != "secret-pass" {
			writeEnvelope(w, http.StatusUnauthorized, model.Envelope[any]{Message: "Invalid email or password"})
			return
		}
		writeEnvelope(w, http.StatusOK, model.Envelope[model.LoginResult]{
			Success: true,
			Message: "Login successful",
			Data: model.LoginResult{
				Token:     "tok",
				ExpiresAt: time.Now().Add(time.Hour),
				User:      model.User{Email: in.Email, Name: "Ada", Role: model.RoleAdmin},
			},
		})
	})
	b.server = httptest.NewServer(b)
	t.Cleanup(b.server.Close)
	return b
}

func (b *backend) URL() string { return b.server.URL + "/api/v1" }

func writeEnvelope[T any](w http.ResponseWriter, status int, env model.Envelope[T]) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(env)
}

func writeData[T any](w http.ResponseWriter, data T) {
	writeEnvelope(w, http.StatusOK, model.Envelope[T]{Success: true, Message: "ok", Data: data})
}

func writeList[T any](w http.ResponseWriter, items []T, total int64) {
	writeEnvelope(w, http.StatusOK, model.Envelope[[]T]{
		Success:    true,
		Message:    "ok",
		Data:       items,
		Pagination: model.NewPagination(1, 10, total),
	})
}

func requireAdminToken(t *testing.T, r *http.Request) {
	t.Helper()
	if !strings.EqualFold(r.Header.Get("Authorization"), "Bearer tok") {
		t.Errorf("%s %s: Authorization = %q", r.Method, r.URL.Path, r.Header.Get("Authorization"))
	}
}
