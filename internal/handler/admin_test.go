// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"encoding/json"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/textura/internal/model"
)

func TestAdminRequiresSession(t *testing.T) {
	env := newTestEnv(t, unreachableBackend)

	for _, path := range []string{"/admin", "/admin/services", "/admin/settings", "/admin/contact"} {
		status, _, loc := env.get(path)
		assert.Equal(t, http.StatusSeeOther, status, path)
		assert.Equal(t, "/admin/login", loc, path)
	}
}

func TestLoginStartsSession(t *testing.T) {
	env := newTestEnv(t, newBackend(t).URL())
	env.login()

	status, body, _ := env.get("/admin/services")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "Welcome back, Ada")
}

func TestLoginWithExpiredTokenIsRejected(t *testing.T) {
	b := newBackend(t)
	b.HandleFunc("POST /api/v1/auth/login", func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusOK, model.Envelope[model.LoginResult]{
			Success: true,
			Data: model.LoginResult{
				Token:     "old",
				ExpiresAt: time.Now().Add(-time.Minute),
				User:      model.User{Email: "admin@textura.test", Name: "Ada", Role: model.RoleAdmin},
			},
		})
	})
	env := newTestEnv(t, b.URL())
	env.login()

	status, _, loc := env.get("/admin/services")
	assert.Equal(t, http.StatusSeeOther, status)
	assert.Equal(t, "/admin/login", loc)
}

func TestLoginRejectsBadPassword(t *testing.T) {
	env := newTestEnv(t, newBackend(t).URL())

	status, _, loc := env.postForm("/admin/login", url.Values{"email": {"admin@textura.test"}, "password": {"wrong"}})
	assert.Equal(t, http.StatusSeeOther, status)
	assert.Equal(t, "/admin/login", loc)

	_, body, _ := env.get("/admin/login")
	assert.Contains(t, body, "Invalid email or password")

	status, _, loc = env.get("/admin")
	assert.Equal(t, http.StatusSeeOther, status)
	assert.Equal(t, "/admin/login", loc)
}

func TestLoginLocksAfterRepeatedFailures(t *testing.T) {
	env := newTestEnv(t, newBackend(t).URL())
	form := url.Values{"email": {"locked@textura.test"}, "password": {"wrong"}}
	for range 5 {
		env.postForm("/admin/login", form)
	}

	form.Set("password", "secret-pass")
	status, _, loc := env.postForm("/admin/login", form)
	assert.Equal(t, http.StatusSeeOther, status)
	assert.Equal(t, "/admin/login", loc)
	_, body, _ := env.get("/admin/login")
	assert.Contains(t, body, "Too many failed attempts")
}

func TestDashboardUsesSessionToken(t *testing.T) {
	b := newBackend(t)
	b.HandleFunc("GET /api/v1/contact/stats", func(w http.ResponseWriter, r *http.Request) {
		requireAdminToken(t, r)
		writeData(w, model.ContactStats{Total: 12, Unread: 3})
	})
	b.HandleFunc("GET /api/v1/contact/submissions", func(w http.ResponseWriter, r *http.Request) {
		requireAdminToken(t, r)
		writeList(w, []model.ContactSubmission{{ID: 9, Name: "Grace Hopper", Email: "grace@example.com", Status: model.StatusUnread, CreatedAt: time.Now()}}, 1)
	})
	b.HandleFunc("GET /api/v1/services", func(w http.ResponseWriter, r *http.Request) {
		requireAdminToken(t, r)
		writeList(w, []model.Service{{ID: 1}}, 4)
	})
	env := newTestEnv(t, b.URL())
	env.login()

	status, body, _ := env.get("/admin")
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "Welcome back, Ada")
	assert.Contains(t, body, "Grace Hopper")
	assert.Contains(t, body, "Services")

	status, _, loc := env.postForm("/admin/logout", nil)
	assert.Equal(t, http.StatusSeeOther, status)
	assert.Equal(t, "/admin/login", loc)
	status, _, _ = env.get("/admin")
	assert.Equal(t, http.StatusSeeOther, status)
}

func TestExpiredTokenEndsSession(t *testing.T) {
	b := newBackend(t)
	b.HandleFunc("GET /api/v1/projects", func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusUnauthorized, model.Envelope[any]{Message: "Invalid or expired token"})
	})
	env := newTestEnv(t, b.URL())
	env.login()

	status, _, loc := env.get("/admin/projects")
	assert.Equal(t, http.StatusSeeOther, status)
	assert.Equal(t, "/admin/login", loc)

	status, _, _ = env.get("/admin")
	assert.Equal(t, http.StatusSeeOther, status)
}

func TestResourceCreateSendsPayload(t *testing.T) {
	var got map[string]any
	b := newBackend(t)
	b.HandleFunc("POST /api/v1/services", func(w http.ResponseWriter, r *http.Request) {
		requireAdminToken(t, r)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		writeEnvelope(w, http.StatusCreated, model.Envelope[map[string]any]{Success: true, Message: "Service created", Data: map[string]any{"id": 5}})
	})
	env := newTestEnv(t, b.URL())
	env.login()

	status, _, loc := env.postForm("/admin/services", url.Values{
		"title":       {"Window Seats"},
		"description": {"Cushions for bay windows"},
		"features":    {"Foam\n\n Feather wrap "},
		"featured":    {"on"},
		"sortOrder":   {"3"},
		"status":      {model.StatusActive},
	})
	require.Equal(t, http.StatusSeeOther, status)
	assert.Equal(t, "/admin/services", loc)

	assert.Equal(t, "Window Seats", got["title"])
	assert.Equal(t, []any{"Foam", "Feather wrap"}, got["features"])
	assert.Equal(t, true, got["featured"])
	assert.InDelta(t, 3, got["sortOrder"], 0)
	assert.Equal(t, model.StatusActive, got["status"])

	_, body, _ := env.get("/admin/services")
	assert.Contains(t, body, "Service created successfully")
}

func TestResourceCreateShowsErrors(t *testing.T) {
	b := newBackend(t)
	b.HandleFunc("POST /api/v1/services", func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusConflict, model.Envelope[any]{
			Message: "A service with this slug already exists",
			Errors:  map[string]string{"slug": "slug is already taken"},
		})
	})
	env := newTestEnv(t, b.URL())
	env.login()

	status, body, _ := env.postForm("/admin/services", url.Values{"title": {""}, "status": {model.StatusActive}})
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Contains(t, body, "Title is required")

	form := url.Values{"title": {"Drapes"}, "description": {"Lined"}, "slug": {"drapes"}, "status": {model.StatusActive}}
	status, body, _ = env.postForm("/admin/services", form)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Contains(t, body, "A service with this slug already exists")
	assert.Contains(t, body, "slug is already taken")
	assert.Contains(t, body, `value="Drapes"`)
}

func TestResourceUpdateAndStatus(t *testing.T) {
	var status model.StatusInput
	var title, saved string
	b := newBackend(t)
	b.HandleFunc("PUT /api/v1/projects/{id}", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "8", r.PathValue("id"))
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		title, _ = body["title"].(string)
		saved, _ = body["status"].(string)
		writeData(w, body)
	})
	b.HandleFunc("PUT /api/v1/projects/{id}/status", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&status))
		writeData(w, map[string]any{"id": 8, "status": status.Status})
	})
	env := newTestEnv(t, b.URL())
	env.login()

	code, _, loc := env.postForm("/admin/projects/8", url.Values{
		"title": {"Loft"}, "description": {"Open plan"}, "status": {model.StatusDraft},
	})
	assert.Equal(t, http.StatusSeeOther, code)
	assert.Equal(t, "/admin/projects", loc)
	assert.Equal(t, "Loft", title)
	assert.Equal(t, model.StatusDraft, saved)

	code, _, _ = env.postForm("/admin/projects/8/status", url.Values{"status": {model.StatusPublished}})
	assert.Equal(t, http.StatusSeeOther, code)
	assert.Equal(t, model.StatusPublished, status.Status)
}

func TestSaveSettingsRefreshesSite(t *testing.T) {
	var saved map[string]json.RawMessage
	settings := map[string]json.RawMessage{"site_name": json.RawMessage(`"Textura"`)}
	b := newBackend(t)
	b.HandleFunc("GET /api/v1/settings", func(w http.ResponseWriter, r *http.Request) {
		writeData(w, settings)
	})
	b.HandleFunc("PUT /api/v1/settings", func(w http.ResponseWriter, r *http.Request) {
		requireAdminToken(t, r)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&saved))
		for k, v := range saved {
			settings[k] = v
		}
		writeData(w, settings)
	})
	env := newTestEnv(t, b.URL())
	env.login()

	status, _, loc := env.postForm("/admin/settings", url.Values{
		"key":   {"site_name", "", "featured_limit"},
		"value": {"Textura Atelier", "ignored", "6"},
	})
	require.Equal(t, http.StatusSeeOther, status)
	assert.Equal(t, "/admin/settings", loc)
	assert.JSONEq(t, `"Textura Atelier"`, string(saved["site_name"]))
	assert.JSONEq(t, `6`, string(saved["featured_limit"]))
	assert.Len(t, saved, 2)

	assert.Equal(t, "Textura Atelier", env.handler.site.View().Name)
}

func TestParseForm(t *testing.T) {
	var testimonials *AdminResource
	for _, res := range AdminResources() {
		if res.Path == "testimonials" {
			testimonials = res
		}
	}
	require.NotNil(t, testimonials)

	tests := []struct {
		name    string
		form    url.Values
		wantErr string
		check   func(t *testing.T, payload map[string]any)
	}{
		{
			name: "valid",
			form: url.Values{"clientName": {" Ada "}, "content": {"Superb"}, "rating": {"5"}, "status": {model.StatusActive}},
			check: func(t *testing.T, payload map[string]any) {
				assert.Equal(t, "Ada", payload["clientName"])
				assert.Equal(t, 5, payload["rating"])
				assert.Equal(t, false, payload["featured"])
			},
		},
		{
			name:    "missing required",
			form:    url.Values{"content": {"Superb"}, "status": {model.StatusActive}},
			wantErr: "clientName",
		},
		{
			name:    "bad number",
			form:    url.Values{"clientName": {"Ada"}, "content": {"Superb"}, "rating": {"five"}, "status": {model.StatusActive}},
			wantErr: "rating",
		},
		{
			name:    "unknown status",
			form:    url.Values{"clientName": {"Ada"}, "content": {"Superb"}, "status": {"SHOUTING"}},
			wantErr: "status",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload, values, errs := testimonials.ParseForm(tt.form)
			if tt.wantErr != "" {
				assert.Contains(t, errs, tt.wantErr)
				return
			}
			assert.Nil(t, errs)
			assert.NotNil(t, values)
			tt.check(t, payload)
		})
	}
}

func TestSettingValueRoundTrip(t *testing.T) {
	tests := []struct {
		text string
		raw  string
	}{
		{"Textura", `"Textura"`},
		{"12", `12`},
		{"true", `true`},
		{`{"a":1}`, `{"a":1}`},
		{"", `""`},
		{`"quoted"`, `"\"quoted\""`},
	}
	for _, tt := range tests {
		raw := settingValue(tt.text)
		assert.JSONEq(t, tt.raw, string(raw), tt.text)
		assert.Equal(t, tt.text, settingText(raw), tt.text)
	}
}
