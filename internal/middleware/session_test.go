// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alexedwards/scs/v2"
)

func TestRequireSession(t *testing.T) {
	sm := scs.New()

	login := sm.LoadAndSave(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		PutSessionToken(r.Context(), sm, "tok", time.Now().Add(time.Hour))
	}))
	protected := sm.LoadAndSave(RequireSession(sm, "/admin/login")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(SessionToken(sm, r)))
	})))

	rec := httptest.NewRecorder()
	protected.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin", nil))
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/admin/login" {
		t.Fatalf("anonymous = %d %q, want redirect to login", rec.Code, rec.Header().Get("Location"))
	}

	rec = httptest.NewRecorder()
	login.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/admin/login", nil))
	cookies := rec.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("login did not set a session cookie")
	}

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec = httptest.NewRecorder()
	protected.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK || rec.Body.String() != "tok" {
		t.Errorf("authenticated = %d %q", rec.Code, rec.Body.String())
	}
}

func TestSessionToken_Expired(t *testing.T) {
	sm := scs.New()
	var got string
	h := sm.LoadAndSave(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		PutSessionToken(r.Context(), sm, "tok", time.Now().Add(-time.Minute))
		got = SessionToken(sm, r)
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	if got != "" {
		t.Errorf("expired token returned %q", got)
	}
}

// The session codec must be able to commit what PutSessionToken stores.
func TestPutSessionToken_Commits(t *testing.T) {
	sm := scs.New()
	h := sm.LoadAndSave(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		PutSessionToken(r.Context(), sm, "tok", time.Now().Add(time.Hour))
		w.WriteHeader(http.StatusNoContent)
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/admin/login", nil))
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, body %q", rec.Code, rec.Body.String())
	}

	_, err := sm.Codec.Encode(time.Now().Add(time.Hour), map[string]interface{}{
		SessionKeyToken:     "tok",
		SessionKeyExpiresAt: time.Now().Unix(),
	})
	if err != nil {
		t.Fatalf("encoding session values: %v", err)
	}
}

func TestPutSessionToken_NoExpiry(t *testing.T) {
	sm := scs.New()
	var got string
	h := sm.LoadAndSave(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		PutSessionToken(r.Context(), sm, "tok", time.Time{})
		got = SessionToken(sm, r)
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	if got != "tok" {
		t.Errorf("token without expiry = %q, want tok", got)
	}
}
