// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/textura/internal/model"
)

func TestServiceCreateCleansFeatures(t *testing.T) {
	e := newTestEnv(t)

	rec := e.do(http.MethodPost, "/api/v1/services", map[string]any{
		"title":       "Test",
		"description": "D",
		"features":    []string{"a", "", "b"},
	}, true)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decodeEnvelope[model.Service](t, rec)
	assert.Equal(t, "test", created.Data.Slug)
	assert.Equal(t, model.StringList{"a", "b"}, created.Data.Features)

	list := decodeEnvelope[[]model.Service](t, e.do(http.MethodGet, "/api/v1/services", nil, false))
	require.NotNil(t, list.Pagination)
	assert.Equal(t, int64(1), list.Pagination.Total)
	assert.Equal(t, 1, list.Pagination.TotalPages)
	assert.False(t, list.Pagination.HasNext)
}

func TestResourceLifecycle(t *testing.T) {
	tests := []struct {
		path   string
		name   string
		create map[string]any
		update map[string]any
		// kept is a field absent from update that must survive it.
		kept string
	}{
		{"services", "Service",
			map[string]any{"title": "Test", "description": "D"},
			map[string]any{"price": "From $10"}, "title"},
		{"projects", "Project",
			map[string]any{"title": "Loft", "description": "Reupholstery", "category": "Residential"},
			map[string]any{"location": "Lyon"}, "category"},
		{"blog", "Blog post",
			map[string]any{"title": "Wool Care", "content": "Air it out.", "author": "Ada"},
			map[string]any{"excerpt": "Short"}, "author"},
		{"team", "Team member",
			map[string]any{"name": "Grace", "position": "Upholsterer"},
			map[string]any{"bio": "Thirty years"}, "position"},
		{"testimonials", "Testimonial",
			map[string]any{"clientName": "Ann", "content": "Wonderful work", "rating": 5},
			map[string]any{"company": "Maison"}, "content"},
		{"hero-slides", "Hero slide",
			map[string]any{"title": "Autumn", "image": "/uploads/a.jpg"},
			map[string]any{"subtitle": "New fabrics"}, "image"},
		{"clients", "Client",
			map[string]any{"name": "Maison Verre", "industry": "Hospitality"},
			map[string]any{"description": "Hotel group"}, "industry"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			e := newTestEnv(t)
			base := "/api/v1/" + tt.path

			rec := e.do(http.MethodPost, base, tt.create, true)
			require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
			created := decodeEnvelope[map[string]any](t, rec)
			assert.True(t, created.Success)
			assert.Equal(t, tt.name+" created successfully", created.Message)
			id := int64(created.Data["id"].(float64))
			itemURL := fmt.Sprintf("%s/%d", base, id)

			list := decodeEnvelope[[]map[string]any](t, e.do(http.MethodGet, base, nil, true))
			require.Len(t, list.Data, 1)
			assert.Equal(t, created.Data["id"], list.Data[0]["id"])

			rec = e.do(http.MethodPut, itemURL, tt.update, true)
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
			updated := decodeEnvelope[map[string]any](t, rec).Data
			for k, v := range tt.update {
				assert.Equal(t, v, updated[k], "updated field %s", k)
			}
			assert.Equal(t, created.Data[tt.kept], updated[tt.kept], "absent field %s keeps its value", tt.kept)

			rec = e.do(http.MethodDelete, itemURL, nil, true)
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
			assert.Equal(t, tt.name+" deleted successfully", decodeEnvelope[any](t, rec).Message)

			rec = e.do(http.MethodDelete, itemURL, nil, true)
			assert.Equal(t, http.StatusNotFound, rec.Code)
			env := decodeEnvelope[any](t, rec)
			assert.False(t, env.Success)
			assert.Equal(t, tt.name+" not found", env.Message)

			rec = e.do(http.MethodGet, itemURL, nil, true)
			assert.Equal(t, http.StatusNotFound, rec.Code)
		})
	}
}

func TestCreateRequiresAuth(t *testing.T) {
	e := newTestEnv(t)

	rec := e.do(http.MethodPost, "/api/v1/projects", map[string]any{"title": "X", "description": "Y"}, false)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, decodeEnvelope[any](t, rec).Success)
}

func TestCreateValidation(t *testing.T) {
	e := newTestEnv(t)

	tests := []struct {
		name      string
		path      string
		body      any
		wantField string
	}{
		{"service without title", "/api/v1/services", map[string]any{"description": "D"}, "title"},
		{"project bad status", "/api/v1/projects", map[string]any{"title": "T", "description": "D", "status": "LIVE"}, "status"},
		{"testimonial rating", "/api/v1/testimonials", map[string]any{"clientName": "A", "content": "Great", "rating": 9}, "rating"},
		{"hero without image", "/api/v1/hero-slides", map[string]any{"title": "T"}, "image"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := e.do(http.MethodPost, tt.path, tt.body, true)
			require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
			env := decodeEnvelope[any](t, rec)
			assert.False(t, env.Success)
			assert.Contains(t, env.Errors, tt.wantField)
		})
	}

	rec := e.do(http.MethodPost, "/api/v1/services", "{not json", true)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPublicListForcesPublicStatus(t *testing.T) {
	e := newTestEnv(t)

	for _, status := range []string{model.StatusPublished, model.StatusDraft} {
		rec := e.do(http.MethodPost, "/api/v1/projects", map[string]any{
			"title": "Project " + status, "description": "D", "status": status,
		}, true)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	}

	public := decodeEnvelope[[]model.Project](t, e.do(http.MethodGet, "/api/v1/projects?status=DRAFT", nil, false))
	require.Len(t, public.Data, 1)
	assert.Equal(t, model.StatusPublished, public.Data[0].Status)

	admin := decodeEnvelope[[]model.Project](t, e.do(http.MethodGet, "/api/v1/projects?status=DRAFT", nil, true))
	require.Len(t, admin.Data, 1)
	assert.Equal(t, model.StatusDraft, admin.Data[0].Status)

	rec := e.do(http.MethodGet, "/api/v1/projects/slug/project-draft", nil, false)
	assert.Equal(t, http.StatusNotFound, rec.Code, "drafts are hidden from anonymous callers")
	rec = e.do(http.MethodGet, "/api/v1/projects/slug/project-draft", nil, true)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSetStatus(t *testing.T) {
	e := newTestEnv(t)

	rec := e.do(http.MethodPost, "/api/v1/clients", map[string]any{"name": "Maison Verre"}, true)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	id := decodeEnvelope[model.Client](t, rec).Data.ID

	rec = e.do(http.MethodPut, fmt.Sprintf("/api/v1/clients/%d/status", id), map[string]string{"status": "inactive"}, true)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, model.StatusInactive, decodeEnvelope[model.Client](t, rec).Data.Status)

	rec = e.do(http.MethodPut, fmt.Sprintf("/api/v1/clients/%d/status", id), map[string]string{"status": "PUBLISHED"}, true)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = e.do(http.MethodPut, "/api/v1/clients/9999/status", map[string]string{"status": "ACTIVE"}, true)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestBlogSlugCountsViews(t *testing.T) {
	e := newTestEnv(t)

	rec := e.do(http.MethodPost, "/api/v1/blog", map[string]any{
		"title": "Caring for Linen", "content": "Wash cold.", "status": "PUBLISHED",
	}, true)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	post := decodeEnvelope[model.BlogPost](t, rec).Data
	require.NotNil(t, post.PublishedAt)

	for range 2 {
		rec = e.do(http.MethodGet, "/api/v1/blog/slug/caring-for-linen", nil, false)
		require.Equal(t, http.StatusOK, rec.Code)
	}
	rec = e.do(http.MethodGet, fmt.Sprintf("/api/v1/blog/%d", post.ID), nil, true)
	assert.Equal(t, int64(2), decodeEnvelope[model.BlogPost](t, rec).Data.Views)
}

func TestInvalidID(t *testing.T) {
	e := newTestEnv(t)
	rec := e.do(http.MethodGet, "/api/v1/team/abc", nil, false)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid team member ID", decodeEnvelope[any](t, rec).Message)
}

func TestUnknownRoute(t *testing.T) {
	e := newTestEnv(t)
	rec := e.do(http.MethodGet, "/api/v1/nope", nil, false)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.False(t, decodeEnvelope[any](t, rec).Success)
}
