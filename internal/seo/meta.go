// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package seo

import (
	"encoding/json"
	"html/template"
	"strings"
	"time"
)

// Meta holds the SEO tags rendered into a page head.
type Meta struct {
	Title       string // <title>, already suffixed with the site name
	Description string
	Canonical   string
	Image       string // absolute Open Graph image URL
	Type        string // Open Graph type: website or article
	SiteName    string
	Robots      string
}

// PageData describes one page for BuildMeta.
type PageData struct {
	Title           string
	Path            string // e.g. /blog/linen-care
	MetaTitle       string
	MetaDescription string
	Summary         string // used when MetaDescription is empty
	Image           string
	Article         bool
	NoIndex         bool
}

// SiteConfig contains site-wide settings for SEO.
type SiteConfig struct {
	SiteName        string
	SiteURL         string
	SiteDescription string
	DefaultImage    string
}

// BuildMeta creates Meta with fallbacks: meta title, then title; meta
// description, then summary, then the site description.
func BuildMeta(page PageData, site SiteConfig) Meta {
	siteURL := strings.TrimRight(site.SiteURL, "/")
	m := Meta{
		Type:     "website",
		SiteName: site.SiteName,
		Robots:   "index,follow",
	}
	if page.Article {
		m.Type = "article"
	}
	if page.NoIndex {
		m.Robots = "noindex,nofollow"
	}

	switch {
	case page.MetaTitle != "":
		m.Title = page.MetaTitle
	case page.Title != "":
		m.Title = page.Title + " | " + site.SiteName
	default:
		m.Title = site.SiteName
	}

	switch {
	case page.MetaDescription != "":
		m.Description = page.MetaDescription
	case page.Summary != "":
		m.Description = truncateText(page.Summary, 160)
	default:
		m.Description = site.SiteDescription
	}

	path := page.Path
	if path == "" {
		path = "/"
	}
	m.Canonical = siteURL + path

	if page.Image != "" {
		m.Image = makeAbsoluteURL(page.Image, siteURL)
	} else if site.DefaultImage != "" {
		m.Image = makeAbsoluteURL(site.DefaultImage, siteURL)
	}
	return m
}

// OrganizationSchema is JSON-LD Organization data for the home page.
type OrganizationSchema struct {
	Context     string   `json:"@context"`
	Type        string   `json:"@type"`
	Name        string   `json:"name"`
	URL         string   `json:"url"`
	Description string   `json:"description,omitempty"`
	Email       string   `json:"email,omitempty"`
	Telephone   string   `json:"telephone,omitempty"`
	SameAs      []string `json:"sameAs,omitempty"`
}

// ArticleSchema is JSON-LD Article data for a blog post.
type ArticleSchema struct {
	Context       string        `json:"@context"`
	Type          string        `json:"@type"`
	Headline      string        `json:"headline"`
	Description   string        `json:"description,omitempty"`
	Image         string        `json:"image,omitempty"`
	DatePublished string        `json:"datePublished,omitempty"`
	DateModified  string        `json:"dateModified,omitempty"`
	Author        *PersonSchema `json:"author,omitempty"`
	URL           string        `json:"mainEntityOfPage"`
}

// PersonSchema represents JSON-LD Person structured data.
type PersonSchema struct {
	Type string `json:"@type"`
	Name string `json:"name"`
}

// BuildArticleSchema returns JSON-LD for an article.
func BuildArticleSchema(m Meta, headline, author string, published *time.Time, modified time.Time) template.JS {
	a := ArticleSchema{
		Context:     "https://schema.org",
		Type:        "Article",
		Headline:    headline,
		Description: m.Description,
		Image:       m.Image,
		URL:         m.Canonical,
	}
	if published != nil {
		a.DatePublished = published.UTC().Format(time.RFC3339)
	}
	if !modified.IsZero() {
		a.DateModified = modified.UTC().Format(time.RFC3339)
	}
	if author != "" {
		a.Author = &PersonSchema{Type: "Person", Name: author}
	}
	return marshalJSONLD(a)
}

// BuildOrganizationSchema returns JSON-LD for the brand.
func BuildOrganizationSchema(org OrganizationSchema) template.JS {
	org.Context = "https://schema.org"
	org.Type = "Organization"
	return marshalJSONLD(org)
}

// marshalJSONLD marshals structured data for a script tag. json.Marshal
// escapes <, > and & so the result cannot close the tag.
func marshalJSONLD(v any) template.JS {
	data, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return template.JS(data) //nolint:gosec // escaped by json.Marshal
}

// truncateText truncates text to maxLen runes at a word boundary.
func truncateText(text string, maxLen int) string {
	text = strings.Join(strings.Fields(text), " ")
	runes := []rune(text)
	if len(runes) <= maxLen {
		return text
	}
	truncated := string(runes[:maxLen])
	if i := strings.LastIndex(truncated, " "); i > len(truncated)/2 {
		truncated = truncated[:i]
	}
	return strings.TrimSpace(truncated) + "..."
}

// makeAbsoluteURL prefixes relative URLs with the site URL.
func makeAbsoluteURL(url, siteURL string) string {
	if url == "" {
		return ""
	}
	if strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://") {
		return url
	}
	if !strings.HasPrefix(url, "/") {
		url = "/" + url
	}
	return siteURL + url
}
