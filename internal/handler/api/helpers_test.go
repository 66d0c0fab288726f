// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/olegiv/textura/internal/auth"
	"github.com/olegiv/textura/internal/middleware"
	"github.com/olegiv/textura/internal/model"
	"github.com/olegiv/textura/internal/store"
	"github.com/olegiv/textura/internal/testutil"
)

type testEnv struct {
	t       *testing.T
	handler *Handler
	router  http.Handler
	token   string
	queries *store.Queries
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := testutil.TestMemoryDB(t)
	issuer := auth.NewTokenIssuer("test-secret-that-is-at-least-32-bytes!", time.Hour)
	h := NewHandler(Config{
		DB:             db,
		Issuer:         issuer,
		Logger:         testutil.TestLogger(),
		UploadsDir:     t.TempDir(),
		MaxUploadBytes: 1 << 20,
	})

	hash, err := auth.HashPassword("changeme1234")
	if err != nil {
		t.Fatal(err)
	}
	admin, err := h.queries.UpsertUser(context.Background(), store.UpsertUserParams{
		Email: "admin@textura.local", Name: "Admin", Role: model.RoleAdmin, PasswordHash: hash,
	})
	if err != nil {
		t.Fatal(err)
	}
	token, _, err := issuer.Issue(admin.ID, admin.Email, admin.Role)
	if err != nil {
		t.Fatal(err)
	}

	router := NewRouter(h, RouterConfig{
		ContactLimiter: middleware.NewRateLimiter("contact", 100, 100),
		LoginLimiter:   middleware.NewRateLimiter("login", 100, 100),
	})
	return &testEnv{t: t, handler: h, router: router, token: token, queries: h.queries}
}

// do sends a JSON request. authed attaches the admin token.
func (e *testEnv) do(method, path string, body any, authed bool) *httptest.ResponseRecorder {
	e.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			if err := json.NewEncoder(&buf).Encode(b); err != nil {
				e.t.Fatal(err)
			}
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if authed {
		req.Header.Set("Authorization", "Bearer "+e.token)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope[T any](t *testing.T, rec *httptest.ResponseRecorder) model.Envelope[T] {
	t.Helper()
	var env model.Envelope[T]
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decoding %q: %v", rec.Body.String(), err)
	}
	return env
}
