// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package seo

import (
	"encoding/xml"
	"strings"
	"testing"
	"time"
)

func TestSitemapBuilder(t *testing.T) {
	b := NewSitemapBuilder("https://textura.example/")
	b.AddStatic("/", ChangeFreqDaily, "1.0")
	b.AddStatic("/services", ChangeFreqWeekly, "0.9")
	b.AddEntries("/blog", []Entry{
		{Slug: "linen-care", UpdatedAt: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)},
		{Slug: ""},
	}, "0.7")

	if b.Len() != 3 {
		t.Fatalf("Len = %d, want 3", b.Len())
	}

	data, err := b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if !strings.HasPrefix(string(data), xml.Header) {
		t.Error("missing XML header")
	}

	var sm Sitemap
	if err := xml.Unmarshal(data, &sm); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	want := []string{
		"https://textura.example/",
		"https://textura.example/services",
		"https://textura.example/blog/linen-care",
	}
	for i, u := range sm.URLs {
		if u.Loc != want[i] {
			t.Errorf("URL %d = %q, want %q", i, u.Loc, want[i])
		}
	}
	if sm.URLs[2].LastMod != "2026-03-01T10:00:00Z" {
		t.Errorf("LastMod = %q", sm.URLs[2].LastMod)
	}
}

func TestBuildRobots(t *testing.T) {
	tests := []struct {
		name     string
		cfg      RobotsConfig
		contains []string
		excludes []string
	}{
		{
			name:     "production",
			cfg:      RobotsConfig{SiteURL: "https://textura.example/"},
			contains: []string{"Disallow: /admin\n", "Disallow: /api\n", "Allow: /\n", "Sitemap: https://textura.example/sitemap.xml"},
		},
		{
			name:     "disallow all",
			cfg:      RobotsConfig{SiteURL: "https://textura.example", DisallowAll: true},
			contains: []string{"Disallow: /\n"},
			excludes: []string{"Sitemap:", "Allow: /"},
		},
		{
			name:     "extra paths",
			cfg:      RobotsConfig{DisallowPaths: []string{"/drafts"}},
			contains: []string{"Disallow: /drafts\n"},
			excludes: []string{"Sitemap:"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildRobots(tt.cfg)
			for _, s := range tt.contains {
				if !strings.Contains(got, s) {
					t.Errorf("robots.txt missing %q:\n%s", s, got)
				}
			}
			for _, s := range tt.excludes {
				if strings.Contains(got, s) {
					t.Errorf("robots.txt should not contain %q:\n%s", s, got)
				}
			}
		})
	}
}

func TestBuildMeta(t *testing.T) {
	site := SiteConfig{
		SiteName:        "Textura",
		SiteURL:         "https://textura.example/",
		SiteDescription: "Luxury textiles",
		DefaultImage:    "/static/img/og.jpg",
	}

	tests := []struct {
		name string
		page PageData
		want Meta
	}{
		{
			name: "home",
			page: PageData{},
			want: Meta{
				Title: "Textura", Description: "Luxury textiles", Canonical: "https://textura.example/",
				Image: "https://textura.example/static/img/og.jpg", Type: "website", SiteName: "Textura", Robots: "index,follow",
			},
		},
		{
			name: "article with overrides",
			page: PageData{
				Title: "Linen care", Path: "/blog/linen-care", MetaTitle: "Caring for linen",
				MetaDescription: "How to wash linen", Image: "https://cdn.example/linen.jpg", Article: true,
			},
			want: Meta{
				Title: "Caring for linen", Description: "How to wash linen", Canonical: "https://textura.example/blog/linen-care",
				Image: "https://cdn.example/linen.jpg", Type: "article", SiteName: "Textura", Robots: "index,follow",
			},
		},
		{
			name: "summary fallback and noindex",
			page: PageData{Title: "Contact", Path: "/contact", Summary: "  Write   to us ", NoIndex: true},
			want: Meta{
				Title: "Contact | Textura", Description: "Write to us", Canonical: "https://textura.example/contact",
				Image: "https://textura.example/static/img/og.jpg", Type: "website", SiteName: "Textura", Robots: "noindex,nofollow",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BuildMeta(tt.page, site); got != tt.want {
				t.Errorf("BuildMeta() =\n%+v\nwant\n%+v", got, tt.want)
			}
		})
	}
}

func TestTruncateText(t *testing.T) {
	long := strings.Repeat("velvet ", 40)
	got := truncateText(long, 50)
	if !strings.HasSuffix(got, "...") || len([]rune(got)) > 53 {
		t.Errorf("truncateText = %q", got)
	}
	if got := truncateText("short text", 50); got != "short text" {
		t.Errorf("truncateText = %q", got)
	}
}

func TestJSONLDEscapesScript(t *testing.T) {
	js := BuildOrganizationSchema(OrganizationSchema{Name: "</script><script>alert(1)</script>", URL: "https://x"})
	if strings.Contains(string(js), "</script>") {
		t.Errorf("JSON-LD not escaped: %s", js)
	}
	if !strings.Contains(string(js), `"@type":"Organization"`) {
		t.Errorf("missing type: %s", js)
	}

	published := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	art := BuildArticleSchema(Meta{Canonical: "https://x/blog/a"}, "A", "Elena", &published, time.Time{})
	for _, want := range []string{`"datePublished":"2026-01-02T03:04:05Z"`, `"name":"Elena"`, `"mainEntityOfPage":"https://x/blog/a"`} {
		if !strings.Contains(string(art), want) {
			t.Errorf("article schema missing %s: %s", want, art)
		}
	}
}
