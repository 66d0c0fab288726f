// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package render

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/alexedwards/scs/v2"

	"github.com/olegiv/textura/internal/model"
	"github.com/olegiv/textura/internal/testutil"
)

func TestCompact(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"no blank lines", "line1\nline2\nline3", "line1\nline2\nline3"},
		{"one blank line", "line1\n\nline2", "line1\nline2"},
		{"multiple blank lines", "line1\n\n\n\n\nline2", "line1\nline2"},
		{"blank lines with spaces", "line1\n  \n\t\nline2", "line1\nline2"},
		{"windows line endings", "line1\r\n\r\n\r\nline2", "line1\nline2"},
		{"blank lines at end", "line1\nline2\n\n\n", "line1\nline2\n"},
		{"empty input", "", ""},
		{"html", "<div>\n\n\n<p>text</p>\n\n\n</div>", "<div>\n<p>text</p>\n</div>"},
		{"textarea kept", "<textarea>a\n\nb</textarea>\n\n", "<textarea>a\n\nb</textarea>\n\n"},
		{"pre kept", "<pre>a\n\n\nb</pre>", "<pre>a\n\n\nb</pre>"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := string(compact([]byte(tt.input))); got != tt.expected {
				t.Errorf("compact(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"layouts/base.html":    {Data: []byte(`{{define "base"}}<html><title>{{.Title}}</title>{{template "layout" .}}</html>{{end}}`)},
		"layouts/site.html":    {Data: []byte(`{{define "layout"}}<main>{{template "flash" .}}{{template "content" .}}</main>{{end}}`)},
		"layouts/admin.html":   {Data: []byte(`{{define "layout"}}<aside>admin</aside>{{template "content" .}}{{end}}`)},
		"partials/flash.html":  {Data: []byte(`{{define "flash"}}{{if .Flash}}<div class="flash-{{.FlashType}}">{{.Flash}}</div>{{end}}{{end}}`)},
		"site/home.html":       {Data: []byte(`{{define "content"}}<h1>{{.Data}}</h1>{{end}}`)},
		"admin/dashboard.html": {Data: []byte(`{{define "content"}}<h1>Dashboard</h1>{{end}}`)},
		"auth/login.html":      {Data: []byte(`{{define "layout"}}<form>{{template "flash" .}}</form>{{end}}`)},
	}
}

func TestRendererParsesGroups(t *testing.T) {
	r, err := New(Config{TemplatesFS: testFS(), Logger: testutil.TestLogger()})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	for _, name := range []string{"site/home", "admin/dashboard", "auth/login"} {
		if !r.Has(name) {
			t.Errorf("template %s not registered", name)
		}
	}
	if r.Has("admin/home") {
		t.Error("site page registered under admin")
	}
}

func TestRenderStatusAndEscaping(t *testing.T) {
	r, err := New(Config{TemplatesFS: testFS(), Logger: testutil.TestLogger()})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Status(rec, req, http.StatusNotFound, "site/home", TemplateData{Title: "Home", Data: "<b>Linen</b>"})

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "&lt;b&gt;Linen&lt;/b&gt;") {
		t.Errorf("data not escaped: %s", body)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/html; charset=utf-8" {
		t.Errorf("Content-Type = %q", ct)
	}

	rec = httptest.NewRecorder()
	r.Page(rec, req, "site/missing", TemplateData{})
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("missing template status = %d, want 500", rec.Code)
	}
}

func TestFlashIsShownOnce(t *testing.T) {
	sm := scs.New()
	r, err := New(Config{TemplatesFS: testFS(), SessionManager: sm, Logger: testutil.TestLogger()})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	var bodies []string
	h := sm.LoadAndSave(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if req.URL.Path == "/set" {
			r.Flash(req, "success", "Saved")
			return
		}
		rec := httptest.NewRecorder()
		r.Page(rec, req, "auth/login", TemplateData{})
		bodies = append(bodies, rec.Body.String())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/set", nil))
	cookie := rec.Result().Cookies()[0]

	for range 2 {
		req := httptest.NewRequest(http.MethodGet, "/show", nil)
		req.AddCookie(cookie)
		h.ServeHTTP(httptest.NewRecorder(), req)
	}

	if len(bodies) != 2 {
		t.Fatalf("rendered %d pages, want 2", len(bodies))
	}
	if !strings.Contains(bodies[0], `<div class="flash-success">Saved</div>`) {
		t.Errorf("first page missing flash: %s", bodies[0])
	}
	if strings.Contains(bodies[1], "Saved") {
		t.Errorf("flash shown twice: %s", bodies[1])
	}
}

func TestFuncs(t *testing.T) {
	ts := time.Date(2026, 2, 3, 15, 4, 0, 0, time.UTC)
	var nilTime *time.Time

	if got := formatDate(ts); got != "Feb 3, 2026" {
		t.Errorf("formatDate = %q", got)
	}
	if got := formatDate(&ts); got != "Feb 3, 2026" {
		t.Errorf("formatDate(ptr) = %q", got)
	}
	if got := formatDate(nilTime); got != "" {
		t.Errorf("formatDate(nil) = %q", got)
	}
	if got := dateInput(ts); got != "2026-02-03" {
		t.Errorf("dateInput = %q", got)
	}
	if got := formatDateTime(ts); got != "Feb 3, 2026 3:04 PM" {
		t.Errorf("formatDateTime = %q", got)
	}
	if got := truncate("héllo world", 5); got != "héllo..." {
		t.Errorf("truncate = %q", got)
	}
	if got := stars(4); got != "★★★★☆" {
		t.Errorf("stars = %q", got)
	}
	if got := stars(9); got != "★★★★★" {
		t.Errorf("stars(9) = %q", got)
	}
	if got := statusClass(model.StatusUnread); got != "badge-warning" {
		t.Errorf("statusClass = %q", got)
	}
	if got := toJSON(map[string]string{"a": "</script>"}); strings.Contains(string(got), "</script>") {
		t.Errorf("toJSON not escaped: %s", got)
	}
	if _, err := dict("a"); err == nil {
		t.Error("dict with odd args should fail")
	}
}

func TestPageURL(t *testing.T) {
	q := url.Values{"category": {"Hospitality"}, "page": {"3"}}
	if got := pageURL(q, 2); got != "?category=Hospitality&page=2" {
		t.Errorf("pageURL = %q", got)
	}
	if got := pageURL(q, 1); got != "?category=Hospitality" {
		t.Errorf("pageURL page 1 = %q", got)
	}
	if q.Get("page") != "3" {
		t.Error("pageURL mutated its input")
	}
	if got := pageURL(nil, 1); got != "?" {
		t.Errorf("pageURL(nil) = %q", got)
	}
}
