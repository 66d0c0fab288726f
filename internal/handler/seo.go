// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/olegiv/textura/internal/fallback"
	"github.com/olegiv/textura/internal/model"
	"github.com/olegiv/textura/internal/seo"
)

// Sitemap serves /sitemap.xml built from the static pages and the public
// services, projects and posts.
func (h *Handler) Sitemap(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	all := model.ListQuery{Limit: model.MaxLimit}

	var services, projects, posts []seo.Entry
	var g errgroup.Group
	g.Go(func() error {
		items, _ := listPublic(ctx, h, "services", all, fallback.Services(), fallback.MatchService)
		for _, s := range items {
			services = append(services, seo.Entry{Slug: s.Slug, UpdatedAt: s.UpdatedAt})
		}
		return nil
	})
	g.Go(func() error {
		items, _ := listPublic(ctx, h, "projects", all, fallback.Projects(), fallback.MatchProject)
		for _, p := range items {
			projects = append(projects, seo.Entry{Slug: p.Slug, UpdatedAt: p.UpdatedAt})
		}
		return nil
	})
	g.Go(func() error {
		items, _ := listPublic(ctx, h, "blog", all, fallback.BlogPosts(), fallback.MatchBlogPost)
		for _, p := range items {
			posts = append(posts, seo.Entry{Slug: p.Slug, UpdatedAt: p.UpdatedAt})
		}
		return nil
	})
	_ = g.Wait()

	b := seo.NewSitemapBuilder(h.site.BaseURL())
	b.AddStatic("/", seo.ChangeFreqDaily, "1.0")
	for _, p := range []string{"/services", "/projects", "/blog"} {
		b.AddStatic(p, seo.ChangeFreqWeekly, "0.8")
	}
	for _, p := range []string{"/about", "/testimonials", "/contact"} {
		b.AddStatic(p, seo.ChangeFreqMonthly, "0.5")
	}
	b.AddEntries("/services", services, "0.7")
	b.AddEntries("/projects", projects, "0.7")
	b.AddEntries("/blog", posts, "0.6")

	out, err := b.Build()
	if err != nil {
		h.logger.ErrorContext(ctx, "building sitemap", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	_, _ = w.Write(out)
}

// Robots serves /robots.txt. Development builds ask crawlers to stay away.
func (h *Handler) Robots(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	_, _ = w.Write([]byte(seo.BuildRobots(seo.RobotsConfig{
		SiteURL:     h.site.BaseURL(),
		DisallowAll: h.isDev,
	})))
}
